package main

import (
	"context"
	"fmt"

	"github.com/germanamz/directive/pkg/config"
	"github.com/germanamz/directive/pkg/logging"
	"github.com/germanamz/directive/pkg/tools/mcpserver"
	"github.com/germanamz/directive/pkg/tools/runtool"
)

const mcpUsage = `Usage: directive mcp [flags]

Serve the run_directive tool over MCP on stdin/stdout. Logs go to stderr.

Flags:
`

func runMCP(ctx context.Context, args []string, s streams) error {
	fs := newFlagSet("mcp", mcpUsage, s.stderr)

	var common commonFlags
	common.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return usageError{msg: fmt.Sprintf("mcp takes no arguments, got %q", fs.Args())}
	}

	settings, err := config.Load(common.sources(s.environ))
	if err != nil {
		return err
	}

	log, err := logging.New(s.stderr, settings.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	tmpl, err := loadTemplate(settings.PromptTemplate)
	if err != nil {
		return err
	}

	srv := mcpserver.New("directive", version, log.Logger)
	srv.Register(runtool.New(runtool.Config{
		Connect:     ollamaConnector(settings.Model, log),
		Template:    tmpl,
		DefaultPath: settings.DirectivePath,
		Logger:      log.Logger,
	}))

	return srv.Serve(ctx, s.stdin, s.stdout)
}
