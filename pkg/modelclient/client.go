// Package modelclient is the Model Client: it holds the resolved endpoint
// configuration and submits single-turn chat requests, reporting failures
// through a tagged Result instead of a Go error.
package modelclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/germanamz/directive/pkg/chats/chat"
	"github.com/germanamz/directive/pkg/modeladapter"
	"github.com/germanamz/directive/pkg/providers/ollama"
)

// Backend binds a Completer to a model name.
type Backend interface {
	WithModel(model string) modeladapter.Completer
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(model string) modeladapter.Completer

// WithModel calls f(model).
func (f BackendFunc) WithModel(model string) modeladapter.Completer {
	return f(model)
}

type usageReporter interface {
	LastUsage() modeladapter.Usage
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// Client submits single-turn chat requests. Its Config is fixed at
// construction.
type Client struct {
	cfg     Config
	backend Backend
	log     *slog.Logger
}

// New creates a Client for an already resolved configuration.
func New(cfg Config, backend Backend, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		backend: backend,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewOllama creates a Client backed by the Ollama chat API at cfg.Host.
// A nil httpClient falls back to http.DefaultClient.
func NewOllama(cfg Config, httpClient *http.Client, opts ...Option) (*Client, error) {
	a, err := ollama.New(cfg.Host, cfg.Model, httpClient)
	if err != nil {
		return nil, fmt.Errorf("modelclient: %w", err)
	}
	return New(cfg, a, opts...), nil
}

// Config returns the client's resolved configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Generate sends prompt as the only user message to modelOverride, or to the
// configured model when modelOverride is empty. It never returns a Go error:
// any failure is reported as a Result with Kind KindModelService. The reply
// text is returned unmodified.
func (c *Client) Generate(ctx context.Context, prompt, modelOverride string) (res Result) {
	model := modelOverride
	if model == "" {
		model = c.cfg.Model
	}

	log := c.log.With("model", model, "host", c.cfg.Host)

	defer func() {
		if r := recover(); r != nil {
			log.Error("model call panicked", "panic", r)
			res = failure(fmt.Errorf("%v", r))
		}
	}()

	log.Debug("sending chat request", "prompt_bytes", len(prompt))

	completer := c.backend.WithModel(model)

	reply, err := completer.Complete(ctx, chat.SingleTurn(prompt))
	if err != nil {
		log.Warn("model call failed", "error", err)
		return failure(err)
	}

	attrs := []any{"reply_bytes", len(reply.Content)}
	if u, ok := completer.(usageReporter); ok {
		usage := u.LastUsage()
		attrs = append(attrs,
			"prompt_tokens", usage.PromptTokens,
			"completion_tokens", usage.CompletionTokens,
			"total_tokens", usage.Total(),
		)
	}
	log.Debug("received reply", attrs...)

	return Result{Text: reply.Content}
}

func failure(err error) Result {
	return Result{Err: &Error{
		Kind:    KindModelService,
		Message: err.Error(),
		Err:     err,
	}}
}
