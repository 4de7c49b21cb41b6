// Package upstream is the HTTP client for the FitZone REST backend, the
// authoritative owner of members, trainers, and credentials.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"fitzone/internal/domain/member"
	"fitzone/internal/domain/session"
	"fitzone/internal/domain/trainer"
)

// APIError is a non-2xx response from the backend. Message carries the
// server's JSON error body when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// LoginResult is the backend's successful login response.
type LoginResult struct {
	Token string       `json:"token"`
	Role  string       `json:"role"`
	User  session.User `json:"user"`
}

// API is the full backend surface the web layer depends on. Tests substitute
// a fake; *Client is the real implementation.
type API interface {
	Login(ctx context.Context, username, password, role string) (LoginResult, error)

	ListMembers(ctx context.Context, token string) ([]member.Record, error)
	CreateMember(ctx context.Context, token string, p member.Payload) (member.Record, error)
	UpdateMember(ctx context.Context, token, id string, p member.Payload) (member.Record, error)
	DeleteMember(ctx context.Context, token, id string) error

	ListTrainers(ctx context.Context, token string) ([]trainer.Record, error)
	CreateTrainer(ctx context.Context, token string, p trainer.Payload) (trainer.Record, error)
	UpdateTrainer(ctx context.Context, token, id string, p trainer.Payload) (trainer.Record, error)
	DeleteTrainer(ctx context.Context, token, id string) error
}

// Client calls the backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// interface conformance
var _ API = (*Client)(nil)

// NewClient creates a client for the given base URL (e.g.
// "https://fitzone-backend.example.com/api"). No client-side timeout is set:
// a call lives exactly as long as the caller's context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Login authenticates against POST /auth/login. It is the only call that
// goes out without a bearer token.
func (c *Client) Login(ctx context.Context, username, password, role string) (LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
		"role":     role,
	}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// do issues one request: JSON-encode body (when non-nil), attach the bearer
// token (when non-empty), and JSON-decode into out (when non-nil). Every
// non-2xx status becomes an *APIError; transport failures are wrapped and
// surfaced the same way to callers, which treat both as "operation did not
// happen".
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("upstream_request_failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
		}
		var errBody struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		slog.Warn("upstream_error",
			"method", method, "path", path, "request_id", requestID,
			"status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}
