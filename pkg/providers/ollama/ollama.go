// Package ollama provides a Completer implementation for the Ollama chat API.
package ollama

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/germanamz/directive/pkg/chats/chat"
	"github.com/germanamz/directive/pkg/chats/message"
	"github.com/germanamz/directive/pkg/chats/role"
	"github.com/germanamz/directive/pkg/modeladapter"
)

const (
	chatPath = "/api/chat"

	// DefaultPort is the port an Ollama server listens on when the host
	// carries no scheme and no port.
	DefaultPort = "11434"
)

var _ modeladapter.Completer = (*Adapter)(nil)

// Adapter implements modeladapter.Completer for the Ollama /api/chat endpoint.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter for the Ollama server at host using model as the
// default model name. The host is normalized with NormalizeHost.
// A nil client falls back to http.DefaultClient at call time.
func New(host, model string, client *http.Client) (*Adapter, error) {
	baseURL, err := NormalizeHost(host)
	if err != nil {
		return nil, err
	}

	a := &Adapter{}
	a.ModelAdapter = modeladapter.New(baseURL, model, client)

	return a, nil
}

// NormalizeHost turns an OLLAMA_HOST style value into a base URL.
// A host without a scheme gets "http://" and, when it also lacks a port,
// DefaultPort. An empty hostname means the loopback address. A trailing
// slash is removed.
func NormalizeHost(host string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("ollama: empty host")
	}

	if !strings.Contains(host, "://") {
		hostPart, rest, _ := strings.Cut(host, "/")
		if _, _, err := net.SplitHostPort(hostPart); err != nil {
			hostPart = net.JoinHostPort(strings.Trim(hostPart, "[]"), DefaultPort)
		}
		if strings.HasPrefix(hostPart, ":") {
			hostPart = "127.0.0.1" + hostPart
		}
		host = "http://" + hostPart
		if rest != "" {
			host += "/" + rest
		}
	}

	u, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("ollama: invalid host %q: %w", host, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("ollama: invalid host %q: unsupported scheme %q", host, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("ollama: invalid host %q: missing hostname", host)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// WithModel returns an Adapter for the same server that requests model
// instead of a.Name. Headers and client are shared.
func (a *Adapter) WithModel(model string) modeladapter.Completer {
	b := &Adapter{}
	b.ModelAdapter = modeladapter.New(a.BaseURL, model, a.Client)
	b.Headers = a.Headers

	return b
}

// Complete sends the chat to Ollama with streaming disabled and returns the
// assistant's reply. The reply content is returned unmodified.
func (a *Adapter) Complete(ctx context.Context, c *chat.Chat) (message.Message, error) {
	req := a.buildRequest(c)

	var resp apiResponse
	if err := a.PostJSON(ctx, chatPath, req, &resp); err != nil {
		return message.Message{}, fmt.Errorf("ollama: %w", err)
	}

	if resp.Error != "" {
		return message.Message{}, fmt.Errorf("ollama: %s", resp.Error)
	}

	a.RecordUsage(modeladapter.Usage{
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
	})

	r := role.Role(resp.Message.Role)
	if !r.Valid() {
		r = role.Assistant
	}

	return message.New(r, resp.Message.Content), nil
}

// --- request types ---

type apiRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
	Stream   bool         `json:"stream"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- response types ---

type apiResponse struct {
	Model           string     `json:"model"`
	Message         apiMessage `json:"message"`
	Done            bool       `json:"done"`
	DoneReason      string     `json:"done_reason,omitempty"`
	PromptEvalCount int        `json:"prompt_eval_count"`
	EvalCount       int        `json:"eval_count"`
	Error           string     `json:"error,omitempty"`
}

func (a *Adapter) buildRequest(c *chat.Chat) apiRequest {
	req := apiRequest{
		Model:    a.Name,
		Messages: make([]apiMessage, 0, c.Len()),
	}

	for _, m := range c.Messages() {
		req.Messages = append(req.Messages, apiMessage{
			Role:    m.Role.String(),
			Content: m.Content,
		})
	}

	return req
}
