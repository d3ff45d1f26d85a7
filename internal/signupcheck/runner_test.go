package signupcheck_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/signup/internal/adapters/http/api"
	service "github.com/okian/signup/internal/app"
	"github.com/okian/signup/internal/domain/types"
	"github.com/okian/signup/internal/signupcheck"
	"github.com/okian/signup/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func newServer(t *testing.T) (*httptest.Server, *service.Service) {
	t.Helper()
	svc := service.New()
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, svc
}

func testConfig(baseURL string) *signupcheck.Config {
	return &signupcheck.Config{
		BaseURL:  baseURL,
		Activity: signupcheck.DefaultActivity,
		Workers:  16,
		Timeout:  5 * time.Second,
	}
}

func TestRun_AgainstLiveService(t *testing.T) {
	srv, svc := newServer(t)
	before, err := svc.ListActivities(context.Background())
	require.NoError(t, err)

	stats, err := signupcheck.Run(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)

	assert.Zero(t, stats.Failed)
	assert.Equal(t, stats.Checks, stats.Passed)
	assert.Equal(t, 1, stats.ConcurrentSuccesses)
	assert.Equal(t, 15, stats.ConcurrentConflicts)
	assert.False(t, stats.EndTime.Before(stats.StartTime))

	after, err := svc.ListActivities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after, "the check must leave the registry as it found it")
}

func TestRun_PercentEncodedActivity(t *testing.T) {
	srv, _ := newServer(t)
	cfg := testConfig(srv.URL)
	cfg.Activity = "Programming Class"
	cfg.Workers = 1

	stats, err := signupcheck.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ConcurrentSuccesses)
	assert.Zero(t, stats.ConcurrentConflicts)
}

func TestRun_UnknownActivityFails(t *testing.T) {
	srv, _ := newServer(t)
	cfg := testConfig(srv.URL)
	cfg.Activity = "Underwater Basket Weaving"

	stats, err := signupcheck.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, signupcheck.ErrCheckFailed)
	assert.Equal(t, 1, stats.Failed)
}

func TestRun_DetectsMissingDuplicateCheck(t *testing.T) {
	// A server that appends every signup without checking membership.
	var (
		mu           sync.Mutex
		participants []string
	)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
	mux.HandleFunc("GET /activities", func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]types.Activity{
			"Chess Club": {Participants: participants},
		})
	})
	mux.HandleFunc("POST /activities/{name}/signup", func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		mu.Lock()
		participants = append(participants, email)
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(types.Message{
			Message: fmt.Sprintf("Signed up %s for %s", email, r.PathValue("name")),
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	stats, err := signupcheck.Run(context.Background(), testConfig(srv.URL))
	require.Error(t, err)
	assert.ErrorIs(t, err, signupcheck.ErrCheckFailed)
	assert.Contains(t, err.Error(), "duplicate signup")
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 5, stats.Passed)
}

func TestRun_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	stats, err := signupcheck.Run(context.Background(), testConfig(url))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service health check failed")
	assert.Equal(t, 1, stats.Failed)
}
