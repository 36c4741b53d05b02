package runtool_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/germanamz/directive/pkg/modelclient"
	"github.com/germanamz/directive/pkg/orchestrator"
	"github.com/germanamz/directive/pkg/tools/runtool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	result modelclient.Result
	calls  int
	model  string
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, model string) modelclient.Result {
	f.calls++
	f.model = model
	return f.result
}

func connect(g orchestrator.Generator) orchestrator.Connector {
	return func() (orchestrator.Generator, error) { return g, nil }
}

func writeDirective(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "d.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func call(t *testing.T, cfg runtool.Config, input any) (string, error) {
	t.Helper()

	raw, err := json.Marshal(input)
	require.NoError(t, err)

	return runtool.New(cfg).Handler(context.Background(), raw)
}

func TestRunDirective_Reply(t *testing.T) {
	gen := &fakeGenerator{result: modelclient.Result{Text: "the summary\n"}}
	path := writeDirective(t, "Summarize: The sky is blue.")

	out, err := call(t, runtool.Config{Connect: connect(gen)}, runtool.Input{Path: path, Model: "phi3"})

	require.NoError(t, err)
	assert.Equal(t, "the summary\n", out)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "phi3", gen.model)
}

func TestRunDirective_DefaultPath(t *testing.T) {
	gen := &fakeGenerator{result: modelclient.Result{Text: "ok"}}
	path := writeDirective(t, "x")

	out, err := call(t, runtool.Config{Connect: connect(gen), DefaultPath: path}, map[string]any{})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestRunDirective_Missing(t *testing.T) {
	gen := &fakeGenerator{}
	path := filepath.Join(t.TempDir(), "nope.md")

	_, err := call(t, runtool.Config{Connect: connect(gen)}, runtool.Input{Path: path})

	assert.EqualError(t, err, "directive file '"+path+"' not found")
	assert.Equal(t, 0, gen.calls)
}

func TestRunDirective_ModelError(t *testing.T) {
	cause := errors.New("connection refused")
	gen := &fakeGenerator{result: modelclient.Result{Err: &modelclient.Error{
		Kind:    modelclient.KindModelService,
		Message: cause.Error(),
		Err:     cause,
	}}}

	_, err := call(t, runtool.Config{Connect: connect(gen)}, runtool.Input{Path: writeDirective(t, "x")})

	assert.EqualError(t, err, "Error connecting to Ollama: connection refused")
}

func TestRunDirective_InvalidInput(t *testing.T) {
	tool := runtool.New(runtool.Config{Connect: connect(&fakeGenerator{})})

	_, err := tool.Handler(context.Background(), json.RawMessage(`{"path": 3}`))
	assert.ErrorContains(t, err, "runtool: invalid input")
}

func TestNew_Schema(t *testing.T) {
	tool := runtool.New(runtool.Config{})

	assert.Equal(t, runtool.Name, tool.Name)
	assert.True(t, json.Valid(tool.InputSchema))
}
