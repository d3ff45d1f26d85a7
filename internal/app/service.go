// Package service provides the activity registry service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	repository "github.com/okian/signup/internal/adapters/repository"
	"github.com/okian/signup/internal/domain/model"
	"github.com/okian/signup/internal/domain/types"
	"github.com/okian/signup/pkg/logger"
	"github.com/okian/signup/pkg/metrics"
)

// Operation names used in logs and metrics labels.
const (
	opSignup     = "signup"
	opUnregister = "unregister"
)

// Service owns the activity registry and exposes list, signup and unregister.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	catalog []model.Activity

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog sets the seed activities used when the service starts.
func WithCatalog(catalog []model.Activity) Option {
	return func(s *Service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithStore injects a prebuilt store; the catalog is then ignored.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a new Service seeded with the default catalog.
func New(opts ...Option) *Service {
	s := &Service{
		catalog: model.DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the registry. Calling Start on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		store, err := repository.NewMemoryStore(ctx, s.catalog)
		if err != nil {
			return fmt.Errorf("build registry: %w", err)
		}
		s.store = store
	}

	s.started = true
	s.logger.Info(ctx, "activity registry started",
		logger.Int("activities", s.store.Count(ctx)),
		logger.Int("participants", s.store.ParticipantCount(ctx)),
	)
	s.refreshGaugesLocked(ctx)
	return nil
}

// Stop marks the service as stopped. Registry contents are kept so a
// restarted Service serves the same state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "activity registry stopped")
}

func (s *Service) registry() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// ListActivities returns every activity in seed order.
func (s *Service) ListActivities(ctx context.Context) ([]types.ActivityEntry, error) {
	store, err := s.registry()
	if err != nil {
		return nil, err
	}
	activities, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	out := make([]types.ActivityEntry, 0, len(activities))
	for _, a := range activities {
		out = append(out, types.ActivityEntry{
			Name: a.Name,
			Activity: types.Activity{
				Description:     a.Description,
				Schedule:        a.Schedule,
				MaxParticipants: a.MaxParticipants,
				Participants:    a.Participants,
			},
		})
	}
	return out, nil
}

// Signup registers email for the named activity.
// Fails with model.ErrNotFound for an unknown activity and
// model.ErrConflict when the email is already registered.
func (s *Service) Signup(ctx context.Context, activity, email string) (types.Message, error) {
	store, err := s.registry()
	if err != nil {
		return types.Message{}, err
	}

	if err := store.AddParticipant(ctx, activity, email); err != nil {
		s.recordFailure(ctx, opSignup, activity, email, err)
		return types.Message{}, fmt.Errorf("%s %q: %w", opSignup, activity, err)
	}

	metrics.RecordSignup()
	s.afterMutation(ctx, store, opSignup, activity, email)
	return types.Message{Message: fmt.Sprintf("Signed up %s for %s", email, activity)}, nil
}

// Unregister removes email from the named activity.
// Fails with model.ErrNotFound when the activity is unknown or the email is
// not registered for it.
func (s *Service) Unregister(ctx context.Context, activity, email string) (types.Message, error) {
	store, err := s.registry()
	if err != nil {
		return types.Message{}, err
	}

	if err := store.RemoveParticipant(ctx, activity, email); err != nil {
		s.recordFailure(ctx, opUnregister, activity, email, err)
		return types.Message{}, fmt.Errorf("%s %q: %w", opUnregister, activity, err)
	}

	metrics.RecordUnregistration()
	s.afterMutation(ctx, store, opUnregister, activity, email)
	return types.Message{Message: fmt.Sprintf("Unregistered %s from %s", email, activity)}, nil
}

func (s *Service) afterMutation(ctx context.Context, store repository.Store, op, activity, email string) {
	if a, err := store.Get(ctx, activity); err == nil {
		metrics.UpdateActivityParticipants(activity, len(a.Participants))
	}
	metrics.UpdateParticipantCount(store.ParticipantCount(ctx))
	s.logger.Debug(ctx, "registry updated",
		logger.String("op", op),
		logger.String("activity", activity),
		logger.String("email", email),
	)
}

func (s *Service) recordFailure(ctx context.Context, op, activity, email string, err error) {
	switch {
	case errors.Is(err, model.ErrConflict):
		metrics.RecordDuplicateSignup()
	case errors.Is(err, model.ErrNotFound):
		metrics.RecordNotFound(op)
	}
	s.logger.Debug(ctx, "registry operation rejected",
		logger.String("op", op),
		logger.String("activity", activity),
		logger.String("email", email),
		logger.Error(err),
	)
}

// refreshGaugesLocked publishes registry size gauges. Caller holds s.mu.
func (s *Service) refreshGaugesLocked(ctx context.Context) {
	activities, err := s.store.List(ctx)
	if err != nil {
		return
	}
	total := 0
	for _, a := range activities {
		metrics.UpdateActivityParticipants(a.Name, len(a.Participants))
		total += len(a.Participants)
	}
	metrics.UpdateActivityCount(len(activities))
	metrics.UpdateParticipantCount(total)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		ctx := context.Background()
		activities, err := s.store.List(ctx)
		if err != nil {
			return stats
		}
		perActivity := make(map[string]int, len(activities))
		total := 0
		for _, a := range activities {
			perActivity[a.Name] = len(a.Participants)
			total += len(a.Participants)
		}
		stats["activities"] = len(activities)
		stats["participants"] = total
		stats["participantsByActivity"] = perActivity

		s.refreshGaugesLocked(ctx)
	}

	return stats
}
