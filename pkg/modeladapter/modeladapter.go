package modeladapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/germanamz/directive/pkg/chats/chat"
	"github.com/germanamz/directive/pkg/chats/message"
)

// maxErrorBody caps how much of a non-2xx response body is kept in a StatusError.
const maxErrorBody = 4096

// Completer sends a chat to a model endpoint and returns the assistant's reply.
type Completer interface {
	Complete(ctx context.Context, c *chat.Chat) (message.Message, error)
}

// StatusError is returned by PostJSON when the endpoint answers with a
// non-2xx status. Message holds the endpoint's own error text when the body
// is a JSON object with an "error" field, otherwise the raw body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// ModelAdapter holds shared state for chat endpoint adapters. Embed it in
// concrete adapter structs to get the HTTP helpers and usage recording.
// Concrete types implement Completer themselves.
type ModelAdapter struct {
	Name    string            // Model identifier (e.g. "llama3").
	BaseURL string            // Endpoint base URL (no trailing slash).
	Client  *http.Client      // HTTP client; falls back to http.DefaultClient.
	Headers map[string]string // Extra headers applied to every request.

	mu        sync.Mutex
	lastUsage Usage
}

// New creates a ModelAdapter with the given settings.
// A nil client falls back to http.DefaultClient at call time.
func New(baseURL, model string, client *http.Client) ModelAdapter {
	return ModelAdapter{
		Name:    model,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}
}

// RecordUsage stores the token counts reported for the latest call.
func (a *ModelAdapter) RecordUsage(u Usage) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lastUsage = u
}

// LastUsage returns the token counts of the latest call.
func (a *ModelAdapter) LastUsage() Usage {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.lastUsage
}

// httpClient returns the configured client or http.DefaultClient. The
// default client has no timeout; callers bound a call through its context.
func (a *ModelAdapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}

	return http.DefaultClient
}

// NewRequest builds an *http.Request with the base URL and custom headers
// already applied.
func (a *ModelAdapter) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, body)
	if err != nil {
		return nil, err
	}

	for k, v := range a.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (a *ModelAdapter) Do(req *http.Request) (*http.Response, error) {
	return a.httpClient().Do(req) //nolint:gosec // URL is built from resolved host config, not user input.
}

// PostJSON marshals payload as JSON, sends a POST to the given path,
// checks for a 2xx status, and unmarshals the response body into dest.
// If dest is nil the response body is discarded after the status check.
func (a *ModelAdapter) PostJSON(ctx context.Context, path string, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := a.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// errorMessage extracts the "error" field of a JSON error body, falling back
// to the trimmed raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}

	return strings.TrimSpace(string(body))
}
