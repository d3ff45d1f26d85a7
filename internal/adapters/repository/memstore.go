package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/okian/signup/internal/domain/model"
)

// MemoryStore is an in-memory Store.
//
// The set of activities and their order are fixed at construction, so the
// index needs no locking. Each activity's participant list has its own
// mutex; the membership check and the mutation happen under it, which makes
// signup and unregister linearizable per activity.
type MemoryStore struct {
	order    []string
	byName   map[string]*entry
	recorder LatencyRecorder
}

type entry struct {
	mu       sync.Mutex
	activity model.Activity
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore seeds a store from catalog. Names must be unique and
// non-empty, and no activity may list the same participant twice.
func NewMemoryStore(_ context.Context, catalog []model.Activity, opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		order:    make([]string, 0, len(catalog)),
		byName:   make(map[string]*entry, len(catalog)),
		recorder: globalRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, a := range catalog {
		if a.Name == "" {
			return nil, fmt.Errorf("%w: empty activity name", ErrInvalidCatalog)
		}
		if _, dup := s.byName[a.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate activity %q", ErrInvalidCatalog, a.Name)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, p := range a.Participants {
			if _, dup := seen[p]; dup {
				return nil, fmt.Errorf("%w: activity %q lists %q twice", ErrInvalidCatalog, a.Name, p)
			}
			seen[p] = struct{}{}
		}
		s.order = append(s.order, a.Name)
		s.byName[a.Name] = &entry{activity: a.Clone()}
	}
	return s, nil
}

func (s *MemoryStore) observeQuery(start time.Time) {
	s.recorder.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}

func (s *MemoryStore) observeUpdate(start time.Time) {
	s.recorder.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
}

// List returns a deep copy of every activity in seed order.
func (s *MemoryStore) List(ctx context.Context) ([]model.Activity, error) {
	defer s.observeQuery(time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]model.Activity, 0, len(s.order))
	for _, name := range s.order {
		e := s.byName[name]
		e.mu.Lock()
		out = append(out, e.activity.Clone())
		e.mu.Unlock()
	}
	return out, nil
}

// Get returns a copy of the named activity.
func (s *MemoryStore) Get(ctx context.Context, name string) (model.Activity, error) {
	defer s.observeQuery(time.Now())
	if err := ctx.Err(); err != nil {
		return model.Activity{}, err
	}

	e, ok := s.byName[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activity.Clone(), nil
}

// AddParticipant appends email to the activity's participants.
func (s *MemoryStore) AddParticipant(ctx context.Context, name, email string) error {
	defer s.observeUpdate(time.Now())
	if err := ctx.Err(); err != nil {
		return err
	}

	e, ok := s.byName[name]
	if !ok {
		return ErrActivityNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.activity.HasParticipant(email) {
		return ErrAlreadyRegistered
	}
	e.activity.Participants = append(e.activity.Participants, email)
	return nil
}

// RemoveParticipant removes email from the activity's participants,
// keeping the order of the remaining ones.
func (s *MemoryStore) RemoveParticipant(ctx context.Context, name, email string) error {
	defer s.observeUpdate(time.Now())
	if err := ctx.Err(); err != nil {
		return err
	}

	e, ok := s.byName[name]
	if !ok {
		return ErrActivityNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	i := slices.Index(e.activity.Participants, email)
	if i < 0 {
		return ErrParticipantNotFound
	}
	e.activity.Participants = slices.Delete(e.activity.Participants, i, i+1)
	return nil
}

// Count returns the number of activities.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.order)
}

// ParticipantCount sums participants across activities.
func (s *MemoryStore) ParticipantCount(_ context.Context) int {
	total := 0
	for _, name := range s.order {
		e := s.byName[name]
		e.mu.Lock()
		total += len(e.activity.Participants)
		e.mu.Unlock()
	}
	return total
}
