package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/okian/signup/internal/domain/types"
)

// ActivitiesHandler serves the activity registry routes.
type ActivitiesHandler struct {
	deps Dependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps Dependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// activityList encodes as a JSON object keyed by activity name. Keys keep
// the registry order, which a Go map would lose.
type activityList []types.ActivityEntry

func (l activityList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Activity)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HandleList handles GET /activities requests.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_activities"
	list, err := h.deps.ListActivities(r.Context())
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, activityList(list))
}

// HandleSignup handles POST /activities/{activity_name}/signup requests.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	activity, email, ok := membershipParams(op, w, r)
	if !ok {
		return
	}
	msg, err := h.deps.Signup(r.Context(), activity, email)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// HandleUnregister handles DELETE /activities/{activity_name}/unregister requests.
func (h *ActivitiesHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	const op = "api.unregister"
	activity, email, ok := membershipParams(op, w, r)
	if !ok {
		return
	}
	msg, err := h.deps.Unregister(r.Context(), activity, email)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// membershipParams extracts the activity path segment and the email query
// parameter. An absent email yields 422; an empty one is passed through.
func membershipParams(op string, w http.ResponseWriter, r *http.Request) (activity, email string, ok bool) {
	q := r.URL.Query()
	if !q.Has("email") {
		writeDomainError(w, WrapKind(op, ErrBadRequest, ErrMissingEmail))
		return "", "", false
	}
	return r.PathValue("activity_name"), q.Get("email"), true
}
