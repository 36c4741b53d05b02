package main

import (
	"context"
	"fmt"

	"github.com/germanamz/directive/pkg/config"
	"github.com/germanamz/directive/pkg/logging"
	"github.com/germanamz/directive/pkg/modelclient"
	"github.com/germanamz/directive/pkg/orchestrator"
	"github.com/germanamz/directive/pkg/prompt"
)

const directiveUsage = `Usage: directive [flags] [directive_path]
       directive <command> [flags]

Send a directive file to a local Ollama model and print the reply.
The directive defaults to directives/example.md.

Commands:
  init    Scaffold directives/example.md, .env and directive.yaml
  mcp     Serve the run_directive tool over MCP on stdio

Flags:
`

func runDirective(ctx context.Context, args []string, s streams) error {
	fs := newFlagSet("directive", directiveUsage, s.stderr)

	var common commonFlags
	common.register(fs)
	render := fs.Bool("render", false, "render the reply as markdown")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return usageError{msg: fmt.Sprintf("expected at most one directive path, got %d", fs.NArg())}
	}

	src := common.sources(s.environ)
	src.DirectivePath = fs.Arg(0)
	src.Render = *render

	settings, err := config.Load(src)
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

	log.Debug("resolved configuration",
		"host", settings.Model.Host,
		"model", settings.Model.Model,
		"directive", settings.DirectivePath,
	)

	tty := isTerminal(s.stdout)

	o := orchestrator.New(orchestrator.Options{
		Out:      s.stdout,
		Connect:  ollamaConnector(settings.Model, log),
		Template: tmpl,
		Style:    newStyle(tty, settings.Render),
		Wait:     newWaiter(tty, s.stdout),
		Logger:   log.Logger,
	})

	_, err = o.Run(ctx, settings.DirectivePath)
	return err
}

func ollamaConnector(cfg modelclient.Config, log *logging.Logger) orchestrator.Connector {
	return func() (orchestrator.Generator, error) {
		c, err := modelclient.NewOllama(cfg, nil, modelclient.WithLogger(log.Logger))
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func loadTemplate(path string) (*prompt.Template, error) {
	if path == "" {
		return prompt.Default(), nil
	}
	return prompt.LoadFile(path)
}
