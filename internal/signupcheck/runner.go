package signupcheck

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/signup/pkg/logger"
)

// PercentageMultiplier converts a ratio into a percentage.
const PercentageMultiplier = 100

// Run executes the complete signup check against a live service. The
// returned Stats are populated even when a step fails.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{
		StartTime: time.Now(),
	}
	defer func() {
		stats.EndTime = time.Now()
		stats.Duration = stats.EndTime.Sub(stats.StartTime)
		displayFinalStats(stats)
	}()

	logger.Get().Info(ctx, "starting signup check",
		logger.String("baseURL", config.BaseURL),
		logger.String("activity", config.Activity),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Bool("verbose", config.Verbose))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, stats); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Sequential membership scenario
	if err := runScenario(ctx, client, config, stats); err != nil {
		return stats, fmt.Errorf("membership scenario failed: %w", err)
	}

	// Step 3: Concurrent signups of one email
	if err := runRace(ctx, client, config, stats); err != nil {
		return stats, fmt.Errorf("concurrent signup check failed: %w", err)
	}

	logger.Get().Info(ctx, "signup check completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, stats *Stats) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Health(ctx)
	if err != nil {
		stats.fail()
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	return expectStatus(ctx, stats, "health", resp, http.StatusOK)
}

func newEmail() string {
	return "check-" + uuid.NewString() + "@" + emailDomain
}

// runScenario walks one fresh email through signup, duplicate signup and
// unregister, checking the listing after each mutation.
func runScenario(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) error {
	activity := config.Activity
	email := newEmail()
	logger.Get().Info(ctx, "running membership scenario",
		logger.String("activity", activity),
		logger.String("email", email))

	if err := expectMembership(ctx, client, stats, "absent before signup", activity, email, false); err != nil {
		return err
	}

	resp, err := client.Signup(ctx, activity, email)
	if err != nil {
		return err
	}
	if err := expectStatus(ctx, stats, "signup", resp, http.StatusOK); err != nil {
		return err
	}
	if err := expectMessage(ctx, stats, "signup message", resp, email, activity); err != nil {
		return err
	}
	if err := expectMembership(ctx, client, stats, "present after signup", activity, email, true); err != nil {
		return err
	}

	resp, err = client.Signup(ctx, activity, email)
	if err != nil {
		return err
	}
	if err := expectStatus(ctx, stats, "duplicate signup", resp, http.StatusBadRequest); err != nil {
		return err
	}

	resp, err = client.Unregister(ctx, activity, email)
	if err != nil {
		return err
	}
	if err := expectStatus(ctx, stats, "unregister", resp, http.StatusOK); err != nil {
		return err
	}
	if err := expectMessage(ctx, stats, "unregister message", resp, email, activity); err != nil {
		return err
	}
	if err := expectMembership(ctx, client, stats, "absent after unregister", activity, email, false); err != nil {
		return err
	}

	resp, err = client.Unregister(ctx, activity, email)
	if err != nil {
		return err
	}
	if err := expectStatus(ctx, stats, "repeat unregister", resp, http.StatusNotFound); err != nil {
		return err
	}

	resp, err = client.Signup(ctx, unknownActivity, email)
	if err != nil {
		return err
	}
	return expectStatus(ctx, stats, "unknown activity", resp, http.StatusNotFound)
}

// runRace signs one fresh email up from config.Workers clients at once.
// Exactly one must succeed; the rest must be rejected as duplicates.
func runRace(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) error {
	workers := max(config.Workers, 1)
	email := newEmail()
	logger.Get().Info(ctx, "running concurrent signups",
		logger.Int("workers", workers),
		logger.String("email", email))

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		successes int
		conflicts int
		firstErr  error
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			resp, err := client.Signup(ctx, config.Activity, email)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				if firstErr == nil {
					firstErr = err
				}
			case resp.Status == http.StatusOK:
				successes++
			case resp.Status == http.StatusBadRequest:
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	stats.ConcurrentSuccesses = successes
	stats.ConcurrentConflicts = conflicts

	// Cleanup happens regardless of the outcome so reruns start clean.
	if successes > 0 {
		if resp, err := client.Unregister(ctx, config.Activity, email); err != nil || resp.Status != http.StatusOK {
			logger.Get().Warn(ctx, "cleanup after concurrent signups failed", logger.String("email", email))
		}
	}

	if firstErr != nil {
		stats.fail()
		return firstErr
	}
	if successes != 1 || conflicts != workers-1 {
		stats.fail()
		return fmt.Errorf("%w: concurrent signups: %d succeeded and %d conflicted out of %d",
			ErrCheckFailed, successes, conflicts, workers)
	}
	stats.pass()
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var passRate float64
	if stats.Checks > 0 {
		passRate = float64(stats.Passed) / float64(stats.Checks) * PercentageMultiplier
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("checks", stats.Checks),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Int("concurrentSuccesses", stats.ConcurrentSuccesses),
		logger.Int("concurrentConflicts", stats.ConcurrentConflicts),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("passRate", passRate))
}
