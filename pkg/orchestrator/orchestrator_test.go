package orchestrator_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/germanamz/directive/pkg/chats/chat"
	"github.com/germanamz/directive/pkg/chats/message"
	"github.com/germanamz/directive/pkg/modeladapter"
	"github.com/germanamz/directive/pkg/modelclient"
	"github.com/germanamz/directive/pkg/orchestrator"
	"github.com/germanamz/directive/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoCompleter replies with the content of the last message it received.
type echoCompleter struct {
	calls int
	err   error
}

func (e *echoCompleter) Complete(_ context.Context, c *chat.Chat) (message.Message, error) {
	e.calls++
	if e.err != nil {
		return message.Message{}, e.err
	}
	msgs := c.Messages()
	return message.Assistant(msgs[len(msgs)-1].Content), nil
}

func newClient(e *echoCompleter) *modelclient.Client {
	return modelclient.New(modelclient.Defaults(), modelclient.BackendFunc(func(string) modeladapter.Completer {
		return e
	}))
}

type countingGenerator struct {
	calls  int
	models []string
}

func (g *countingGenerator) Generate(_ context.Context, _ string, model string) modelclient.Result {
	g.calls++
	g.models = append(g.models, model)
	return modelclient.Result{Text: "done"}
}

func writeDirective(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "directive.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func connectTo(g orchestrator.Generator, connects *int) orchestrator.Connector {
	return func() (orchestrator.Generator, error) {
		*connects++
		return g, nil
	}
}

func TestRun_MissingDirectiveSkipsModel(t *testing.T) {
	var out bytes.Buffer
	gen := &countingGenerator{}
	connects := 0

	o := orchestrator.New(orchestrator.Options{Out: &out, Connect: connectTo(gen, &connects)})

	path := filepath.Join(t.TempDir(), "missing.md")
	outcome, err := o.Run(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, orchestrator.StatusMissingDirective, outcome.Status)
	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, 0, connects)
	assert.Contains(t, out.String(), "Loading directive: "+path)
	assert.Contains(t, out.String(), "Error: Directive file '"+path+"' not found.")
	assert.NotContains(t, out.String(), "Thinking...")
}

func TestRun_EmptyDirectiveSkipsModel(t *testing.T) {
	var out bytes.Buffer
	gen := &countingGenerator{}
	connects := 0

	o := orchestrator.New(orchestrator.Options{Out: &out, Connect: connectTo(gen, &connects)})

	outcome, err := o.Run(context.Background(), writeDirective(t, ""))

	require.NoError(t, err)
	assert.Equal(t, orchestrator.StatusEmptyDirective, outcome.Status)
	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, 0, connects)
	assert.Contains(t, out.String(), "is empty.")
}

func TestRun_WhitespaceDirectiveIsSent(t *testing.T) {
	var out bytes.Buffer
	echo := &echoCompleter{}
	connects := 0

	o := orchestrator.New(orchestrator.Options{Out: &out, Connect: connectTo(newClient(echo), &connects)})

	outcome, err := o.Run(context.Background(), writeDirective(t, "   \n\t\n"))

	require.NoError(t, err)
	assert.Equal(t, orchestrator.StatusCompleted, outcome.Status)
	assert.Equal(t, 1, echo.calls)
	assert.Contains(t, outcome.Prompt, "DIRECTIVE:\n   \n\t\n")
	assert.NotContains(t, out.String(), "is empty.")
}

func TestRun_EndToEndEcho(t *testing.T) {
	var out bytes.Buffer
	echo := &echoCompleter{}
	connects := 0

	o := orchestrator.New(orchestrator.Options{Out: &out, Connect: connectTo(newClient(echo), &connects)})

	outcome, err := o.Run(context.Background(), writeDirective(t, "Summarize: The sky is blue."))

	require.NoError(t, err)
	assert.Equal(t, orchestrator.StatusCompleted, outcome.Status)
	assert.Equal(t, 1, echo.calls)
	assert.Equal(t, 1, connects)
	assert.Contains(t, outcome.Prompt, "Summarize: The sky is blue.")
	assert.Equal(t, outcome.Prompt, outcome.Result.Text)

	printed := out.String()
	assert.Contains(t, printed, "Agentic Workflow Orchestrator\n-----------------------------\n")
	assert.Contains(t, printed, "Initializing Ollama Client...")
	assert.Contains(t, printed, "Thinking...")
	assert.Contains(t, printed, "--- Agent Response ---")
	assert.Contains(t, printed, "Summarize: The sky is blue.")
	assert.True(t, strings.HasSuffix(printed, "\n----------------------\n"))
}

func TestRun_ModelErrorIsPrinted(t *testing.T) {
	var out bytes.Buffer
	echo := &echoCompleter{err: errors.New("connection refused")}
	connects := 0

	o := orchestrator.New(orchestrator.Options{Out: &out, Connect: connectTo(newClient(echo), &connects)})

	outcome, err := o.Run(context.Background(), writeDirective(t, "do it"))

	require.NoError(t, err)
	assert.Equal(t, orchestrator.StatusCompleted, outcome.Status)
	require.False(t, outcome.Result.OK())
	assert.Contains(t, out.String(), "Error connecting to Ollama: connection refused")
}

func TestRun_ModelOverride(t *testing.T) {
	gen := &countingGenerator{}
	connects := 0

	o := orchestrator.New(orchestrator.Options{
		Out:     &bytes.Buffer{},
		Connect: connectTo(gen, &connects),
		Model:   "mistral",
	})

	_, err := o.Run(context.Background(), writeDirective(t, "x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"mistral"}, gen.models)
}

func TestRun_CustomTemplateWaitAndStyle(t *testing.T) {
	var out bytes.Buffer
	echo := &echoCompleter{}
	connects := 0
	var waited []string

	tmpl, err := prompt.Parse("[[{{.Directive}}]]")
	require.NoError(t, err)

	o := orchestrator.New(orchestrator.Options{
		Out:      &out,
		Connect:  connectTo(newClient(echo), &connects),
		Template: tmpl,
		Wait: func(_ context.Context, label string, fn func()) {
			waited = append(waited, label)
			fn()
		},
		Style: orchestrator.Style{
			Title:    strings.ToUpper,
			Response: func(r modelclient.Result) string { return "<" + r.String() + ">" },
		},
	})

	_, err = o.Run(context.Background(), writeDirective(t, "hi"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Thinking..."}, waited)
	assert.Equal(t, 1, echo.calls)
	assert.Contains(t, out.String(), "AGENTIC WORKFLOW ORCHESTRATOR")
	assert.Contains(t, out.String(), "<[[hi]]>")
	assert.NotContains(t, out.String(), "Thinking...")
}

func TestRun_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "directives"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "directives", "example.md"), []byte("example"), 0o600))
	t.Chdir(dir)

	var out bytes.Buffer
	gen := &countingGenerator{}
	connects := 0

	o := orchestrator.New(orchestrator.Options{Out: &out, Connect: connectTo(gen, &connects)})

	outcome, err := o.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, orchestrator.StatusCompleted, outcome.Status)
	assert.Contains(t, out.String(), "Loading directive: directives/example.md")
}

func TestRun_ConnectError(t *testing.T) {
	o := orchestrator.New(orchestrator.Options{
		Out: &bytes.Buffer{},
		Connect: func() (orchestrator.Generator, error) {
			return nil, errors.New("bad host")
		},
	})

	_, err := o.Run(context.Background(), writeDirective(t, "x"))
	assert.EqualError(t, err, "orchestrator: bad host")
}

func TestRun_UnreadableDirective(t *testing.T) {
	gen := &countingGenerator{}
	connects := 0
	o := orchestrator.New(orchestrator.Options{Out: &bytes.Buffer{}, Connect: connectTo(gen, &connects)})

	_, err := o.Run(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "orchestrator: directive: read")
	assert.Equal(t, 0, gen.calls)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "completed", orchestrator.StatusCompleted.String())
	assert.Equal(t, "missing_directive", orchestrator.StatusMissingDirective.String())
	assert.Equal(t, "empty_directive", orchestrator.StatusEmptyDirective.String())
}
