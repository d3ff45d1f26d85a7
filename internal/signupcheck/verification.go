package signupcheck

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/signup/pkg/logger"
)

// expectStatus records a check comparing an observed status with want.
func expectStatus(ctx context.Context, stats *Stats, step string, resp Response, want int) error {
	if resp.Status != want {
		stats.fail()
		logger.Get().Error(ctx, "check failed",
			logger.String("step", step),
			logger.Int("want", want),
			logger.Int("got", resp.Status),
			logger.String("detail", decodeDetail(resp.Body)))
		return fmt.Errorf("%w: %s: want status %d, got %d", ErrCheckFailed, step, want, resp.Status)
	}
	stats.pass()
	logger.Get().Debug(ctx, "check passed", logger.String("step", step), logger.Int("status", resp.Status))
	return nil
}

// expectMessage records a check that a success message names every part.
func expectMessage(ctx context.Context, stats *Stats, step string, resp Response, parts ...string) error {
	msg := decodeMessage(resp.Body)
	for _, p := range parts {
		if !strings.Contains(msg, p) {
			stats.fail()
			logger.Get().Error(ctx, "check failed",
				logger.String("step", step),
				logger.String("message", msg),
				logger.String("missing", p))
			return fmt.Errorf("%w: %s: message %q does not mention %q", ErrCheckFailed, step, msg, p)
		}
	}
	stats.pass()
	return nil
}

// expectMembership records a check that email is (or is not) listed under activity.
func expectMembership(ctx context.Context, client *HTTPClient, stats *Stats, step, activity, email string, present bool) error {
	activities, err := client.ListActivities(ctx)
	if err != nil {
		stats.fail()
		return fmt.Errorf("%s: %w", step, err)
	}
	a, ok := activities[activity]
	if !ok {
		stats.fail()
		return fmt.Errorf("%w: %s: activity %q missing from list", ErrCheckFailed, step, activity)
	}
	if got := slices.Contains(a.Participants, email); got != present {
		stats.fail()
		logger.Get().Error(ctx, "check failed",
			logger.String("step", step),
			logger.String("email", email),
			logger.Bool("wantPresent", present))
		return fmt.Errorf("%w: %s: %s present=%t, want %t", ErrCheckFailed, step, email, got, present)
	}
	stats.pass()
	logger.Get().Debug(ctx, "check passed", logger.String("step", step))
	return nil
}
