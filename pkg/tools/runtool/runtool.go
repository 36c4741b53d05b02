// Package runtool wraps a single orchestrator run as a toolbox tool, so that
// MCP clients can execute a directive file.
package runtool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/germanamz/directive/pkg/directive"
	"github.com/germanamz/directive/pkg/orchestrator"
	"github.com/germanamz/directive/pkg/prompt"
	"github.com/germanamz/directive/pkg/tools/toolbox"
)

// Name is the tool name exposed to clients.
const Name = "run_directive"

const schema = `{
  "type": "object",
  "properties": {
    "path": {"type": "string", "description": "Directive file path. Defaults to directives/example.md."},
    "model": {"type": "string", "description": "Model to use instead of the configured one."}
  }
}`

// Input is the decoded tool input.
type Input struct {
	Path  string `json:"path"`
	Model string `json:"model"`
}

// Config holds what every run shares.
type Config struct {
	Connect     orchestrator.Connector
	Template    *prompt.Template
	DefaultPath string
	Logger      *slog.Logger
}

// New returns the run_directive tool. Each call performs one independent
// orchestrator run. A model service failure or a missing directive is
// returned as a tool error.
func New(cfg Config) toolbox.Tool {
	return toolbox.Tool{
		Name:        Name,
		Description: "Load a directive file, send it to the local Ollama model once and return the reply.",
		InputSchema: json.RawMessage(schema),
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var in Input
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &in); err != nil {
					return "", fmt.Errorf("runtool: invalid input: %w", err)
				}
			}
			return run(ctx, cfg, in)
		},
	}
}

func run(ctx context.Context, cfg Config, in Input) (string, error) {
	path := first(in.Path, cfg.DefaultPath, directive.DefaultPath)

	o := orchestrator.New(orchestrator.Options{
		Out:      io.Discard,
		Connect:  cfg.Connect,
		Template: cfg.Template,
		Model:    in.Model,
		Logger:   cfg.Logger,
	})

	outcome, err := o.Run(ctx, path)
	if err != nil {
		return "", err
	}

	switch outcome.Status {
	case orchestrator.StatusMissingDirective:
		return "", fmt.Errorf("directive file '%s' not found", path)
	case orchestrator.StatusEmptyDirective:
		return "", fmt.Errorf("directive file '%s' is empty", path)
	}

	if !outcome.Result.OK() {
		return "", errors.New(outcome.Result.String())
	}

	return outcome.Result.Text, nil
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
