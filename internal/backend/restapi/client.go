// Package restapi implements service.Service against the to-do REST API.
//
// Every request funnels through a single client with a fixed base URL. The
// client attaches the stored access token as a bearer credential to every
// request except the public auth endpoints; a missing token is not an error
// here, the header is simply omitted and the server rejects what it must.
// No retries, no automatic token refresh, no request timeouts.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"todoctl/internal/service"
)

// TokenSource supplies the current access token, typically backed by the
// credential store via the session manager. An empty string means no token.
type TokenSource interface {
	AccessToken() string
}

// publicPaths are endpoints that never carry an authorization header.
// Matched exactly: /auth/token/refresh/ is not public.
var publicPaths = map[string]bool{
	"/auth/register/":               true,
	"/auth/token/":                  true,
	"/auth/password-reset/":         true,
	"/auth/password-reset-confirm/": true,
}

// Client is an HTTP client for the to-do REST API.
type Client struct {
	baseURL string
	tokens  TokenSource
	httpc   *http.Client
}

// New creates a Client for the API at baseURL, reading bearer tokens from
// tokens.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpc:   &http.Client{},
	}
}

// do performs one request. body is JSON-encoded when non-nil; a 2xx response
// body is decoded into out when out is non-nil. Non-2xx responses become
// tagged errors (see errors.go).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !publicPaths[path] {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, username, password string) (service.TokenPair, error) {
	var pair service.TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/token/", map[string]string{
		"username": username,
		"password": password,
	}, &pair)
	return pair, err
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, username, email, password string) (service.TokenPair, error) {
	var pair service.TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/register/", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &pair)
	return pair, err
}

// RefreshToken implements service.Service.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	var resp struct {
		Access string `json:"access"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/token/refresh/", map[string]string{
		"refresh": refresh,
	}, &resp)
	return resp.Access, err
}

// RequestPasswordReset implements service.Service.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/password-reset/", map[string]string{
		"email": email,
	}, &resp)
	return resp.Message, err
}

// ConfirmPasswordReset implements service.Service.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/password-reset-confirm/", map[string]string{
		"token":        token,
		"new_password": newPassword,
	}, &resp)
	return resp.Message, err
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/todos/", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, name string) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, http.MethodPost, "/todos/", map[string]any{
		"name":      name,
		"completed": false,
	}, &task)
	return task, err
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id int, patch service.TaskPatch) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/todos/%d/", id), patch, &task)
	return task, err
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/todos/%d/", id), nil, nil)
}

// Profile implements service.Service.
func (c *Client) Profile(ctx context.Context) (service.Profile, error) {
	var p service.Profile
	err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, &p)
	return p, err
}

// UpdateProfile implements service.Service.
func (c *Client) UpdateProfile(ctx context.Context, p service.Profile) (service.Profile, error) {
	var updated service.Profile
	err := c.do(ctx, http.MethodPatch, "/auth/profile/", p, &updated)
	return updated, err
}
