// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/signup/internal/domain/model"
	"github.com/okian/signup/internal/domain/types"
	"github.com/okian/signup/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListActivities(ctx context.Context) ([]types.ActivityEntry, error)
	Signup(ctx context.Context, activity, email string) (types.Message, error)
	Unregister(ctx context.Context, activity, email string) (types.Message, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. Each path also gets a catch-all
// pattern so a wrong method is answered with the JSON error body.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	route := func(method, path, endpoint string, h http.HandlerFunc) {
		mux.Handle(method+" "+path, RequestIDMiddleware(AccessLogMiddleware(MetricsMiddleware(h, endpoint))))
		mux.Handle(path, RequestIDMiddleware(AccessLogMiddleware(MetricsMiddleware(methodNotAllowed(method), endpoint))))
	}

	route(http.MethodGet, "/healthz", "healthz", s.healthHandler.HandleHealth)
	route(http.MethodGet, "/stats", "stats", s.statsHandler.HandleStats)
	route(http.MethodGet, "/activities", "activities", s.activitiesHandler.HandleList)
	route(http.MethodPost, "/activities/{activity_name}/signup", "signup", s.activitiesHandler.HandleSignup)
	route(http.MethodDelete, "/activities/{activity_name}/unregister", "unregister", s.activitiesHandler.HandleUnregister)

	mux.Handle("GET /metrics", s.healthHandler.MetricsHandler())
	mux.Handle("/metrics", methodNotAllowed(http.MethodGet))

	logger.Get().Debug(ctx, "api routes registered")
}

// methodNotAllowed answers requests whose path matched but whose method did not.
func methodNotAllowed(allow string) http.HandlerFunc {
	if allow == http.MethodGet {
		allow += ", " + http.MethodHead
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		const op = "api.route"
		w.Header().Set("Allow", allow)
		writeDomainError(w, NewKind(op, ErrMethodNotAllowed))
	}
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Detail: msg})
}

// writeDomainError maps registry and request errors onto HTTP statuses.
// The detail is the domain message or the request error cause so clients
// never see op tags.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := classify(err)

	var merr *model.Error
	if errors.As(err, &merr) {
		writeError(w, status, code, merr)
		return
	}
	if status == http.StatusInternalServerError {
		writeError(w, status, code, nil)
		return
	}
	var oerr *opError
	if errors.As(err, &oerr) {
		if oerr.err != nil {
			writeError(w, status, code, oerr.err)
			return
		}
		writeError(w, status, code, oerr.kind)
		return
	}
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, model.ErrConflict):
		return http.StatusBadRequest, "already_registered"
	case errors.Is(err, ErrBadRequest):
		return http.StatusUnprocessableEntity, "bad_request"
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
