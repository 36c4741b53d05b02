// Package orchestrator runs a directive once: it loads the directive file,
// wraps it in the prompt template, asks the model a single time and prints
// the reply.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/germanamz/directive/pkg/directive"
	"github.com/germanamz/directive/pkg/modelclient"
	"github.com/germanamz/directive/pkg/prompt"
)

// Title is printed at the start of every run.
const Title = "Agentic Workflow Orchestrator"

const responseHeader = "--- Agent Response ---"

// Generator submits one prompt and reports the outcome as a Result.
// *modelclient.Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt, modelOverride string) modelclient.Result
}

// Connector creates the Generator. It is only called once the directive has
// been loaded.
type Connector func() (Generator, error)

// Status describes how a run ended.
type Status int

const (
	// StatusCompleted means the model was asked; the Result may still carry
	// a model service error.
	StatusCompleted Status = iota
	// StatusMissingDirective means the directive file does not exist.
	StatusMissingDirective
	// StatusEmptyDirective means the directive file has no content.
	StatusEmptyDirective
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusMissingDirective:
		return "missing_directive"
	case StatusEmptyDirective:
		return "empty_directive"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is what a run produced.
type Outcome struct {
	Status    Status
	Directive directive.Directive
	Prompt    string
	Result    modelclient.Result
}

// Style decorates printed text. Nil fields print text unchanged.
type Style struct {
	Title    func(string) string
	Progress func(string) string
	Error    func(string) string
	Response func(modelclient.Result) string
}

// Waiter runs the blocking model call. label is the progress line shown
// while it runs. The default Waiter prints label and calls fn.
type Waiter func(ctx context.Context, label string, fn func())

// Options configures an Orchestrator.
type Options struct {
	Out      io.Writer        // Progress and reply; required.
	Connect  Connector        // Required.
	Template *prompt.Template // Defaults to the built-in template.
	Model    string           // Per-run model override; empty uses the client's model.
	Style    Style
	Wait     Waiter
	Logger   *slog.Logger
}

// Orchestrator runs directives. It keeps no state between runs.
type Orchestrator struct {
	opts Options
	log  *slog.Logger
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	if opts.Template == nil {
		opts.Template = prompt.Default()
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Orchestrator{opts: opts, log: log}
}

// Run executes the directive at path, or directive.DefaultPath when path is
// empty. A missing or blank directive is reported on Out and returned as an
// Outcome with a nil error; the model is not contacted. Errors are returned
// only when the directive cannot be read or the client cannot be created.
func (o *Orchestrator) Run(ctx context.Context, path string) (Outcome, error) {
	if path == "" {
		path = directive.DefaultPath
	}

	o.banner()
	o.progress("Loading directive: " + path)

	d, ok, err := directive.Load(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("orchestrator: %w", err)
	}

	if !ok {
		o.log.Info("directive not found", "path", path)
		o.errorLine(fmt.Sprintf("Error: Directive file '%s' not found.", path))
		return Outcome{Status: StatusMissingDirective}, nil
	}

	if d.Empty() {
		o.log.Info("directive is empty", "path", path)
		o.errorLine(fmt.Sprintf("Error: Directive file '%s' is empty.", path))
		return Outcome{Status: StatusEmptyDirective, Directive: d}, nil
	}

	o.progress("Initializing Ollama Client...")

	client, err := o.opts.Connect()
	if err != nil {
		return Outcome{}, fmt.Errorf("orchestrator: %w", err)
	}

	p, err := o.opts.Template.Render(d.Text)
	if err != nil {
		return Outcome{}, fmt.Errorf("orchestrator: %w", err)
	}

	var res modelclient.Result
	o.wait(ctx, "Thinking...", func() {
		res = client.Generate(ctx, p, o.opts.Model)
	})

	if !res.OK() {
		o.log.Warn("model service error", "kind", res.Err.Kind, "error", res.Err.Message)
	}

	o.response(res)

	return Outcome{Status: StatusCompleted, Directive: d, Prompt: p, Result: res}, nil
}

func (o *Orchestrator) banner() {
	title := Title
	if o.opts.Style.Title != nil {
		title = o.opts.Style.Title(title)
	}
	o.println(title)
	o.println(strings.Repeat("-", runewidth.StringWidth(Title)))
}

func (o *Orchestrator) progress(line string) {
	if o.opts.Style.Progress != nil {
		line = o.opts.Style.Progress(line)
	}
	o.println(line)
}

func (o *Orchestrator) errorLine(line string) {
	if o.opts.Style.Error != nil {
		line = o.opts.Style.Error(line)
	}
	o.println(line)
}

func (o *Orchestrator) wait(ctx context.Context, label string, fn func()) {
	if o.opts.Wait != nil {
		o.opts.Wait(ctx, label, fn)
		return
	}
	o.progress(label)
	fn()
}

func (o *Orchestrator) response(res modelclient.Result) {
	body := res.String()
	if o.opts.Style.Response != nil {
		body = o.opts.Style.Response(res)
	}

	o.println("\n" + responseHeader + "\n")
	o.println(body)
	o.println("\n" + strings.Repeat("-", runewidth.StringWidth(responseHeader)))
}

func (o *Orchestrator) println(s string) {
	_, _ = fmt.Fprintln(o.opts.Out, s)
}
