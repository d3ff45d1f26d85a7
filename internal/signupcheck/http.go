package signupcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/signup/internal/domain/types"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Body   []byte
}

func (c *HTTPClient) do(ctx context.Context, method, path string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response body: %w", err)
	}
	return Response{Status: resp.StatusCode, Body: body}, nil
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func membershipPath(activity, op, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + op + "?email=" + url.QueryEscape(email)
}

// Health calls GET /healthz.
func (c *HTTPClient) Health(ctx context.Context) (Response, error) {
	return c.do(ctx, http.MethodGet, "/healthz")
}

// ListActivities calls GET /activities and decodes the result.
func (c *HTTPClient) ListActivities(ctx context.Context) (map[string]types.Activity, error) {
	resp, err := c.do(ctx, http.MethodGet, "/activities")
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("%w: list activities returned %d", ErrCheckFailed, resp.Status)
	}
	var out map[string]types.Activity
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return out, nil
}

// Signup calls POST /activities/{activity}/signup.
func (c *HTTPClient) Signup(ctx context.Context, activity, email string) (Response, error) {
	return c.do(ctx, http.MethodPost, membershipPath(activity, "signup", email))
}

// Unregister calls DELETE /activities/{activity}/unregister.
func (c *HTTPClient) Unregister(ctx context.Context, activity, email string) (Response, error) {
	return c.do(ctx, http.MethodDelete, membershipPath(activity, "unregister", email))
}

func decodeMessage(body []byte) string {
	var msg types.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return ""
	}
	return msg.Message
}

func decodeDetail(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Detail
}
