package main

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/germanamz/directive/pkg/modelclient"
	"github.com/germanamz/directive/pkg/workdir"
)

const initUsage = `Usage: directive init [flags]

Scaffold directives/example.md, .env and directive.yaml. Existing files are
kept unless -force is given.

Flags:
`

func runInit(args []string, s streams) error {
	fs := newFlagSet("init", initUsage, s.stderr)
	dir := fs.String("dir", ".", "project directory")
	host := fs.String("host", modelclient.DefaultHost, "Ollama host written to .env")
	model := fs.String("model", modelclient.DefaultModel, "model name written to .env")
	yes := fs.Bool("yes", false, "skip the interactive form")
	force := fs.Bool("force", false, "overwrite existing files")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return usageError{msg: fmt.Sprintf("init takes no arguments, got %q", fs.Args())}
	}

	scaffold := workdir.Scaffold{Host: *host, Model: *model, Force: *force}

	if !*yes {
		if err := initForm(&scaffold); err != nil {
			return err
		}
	}

	d := workdir.New(*dir)

	written, err := workdir.Bootstrap(d, scaffold)
	if err != nil {
		return err
	}

	if len(written) == 0 {
		fmt.Fprintf(s.stdout, "Nothing to do, %s is already initialized\n", d.Root())
		return nil
	}

	for _, p := range written {
		fmt.Fprintf(s.stdout, "Created %s\n", p)
	}

	return nil
}

func initForm(s *workdir.Scaffold) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Ollama host").Value(&s.Host).Validate(nonEmpty("host")),
		huh.NewInput().Title("Default model").Value(&s.Model).Validate(nonEmpty("model")),
		huh.NewConfirm().Title("Overwrite existing files?").Value(&s.Force),
	)).Run()
}

func nonEmpty(field string) func(string) error {
	return func(v string) error {
		if v == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
