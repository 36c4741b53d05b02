package workdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/directive/pkg/config"
	"github.com/germanamz/directive/pkg/directive"
	"github.com/germanamz/directive/pkg/modelclient"
)

func TestDir_PathAccessors(t *testing.T) {
	d := New("/tmp/project")

	assert.Equal(t, "/tmp/project", d.Root())
	assert.Equal(t, "/tmp/project/directives", d.DirectivesDir())
	assert.Equal(t, "/tmp/project/directives/example.md", d.ExamplePath())
	assert.Equal(t, "/tmp/project/.env", d.EnvPath())
	assert.Equal(t, "/tmp/project/directive.yaml", d.ConfigPath())
}

func TestBootstrap(t *testing.T) {
	d := New(t.TempDir())

	written, err := Bootstrap(d, Scaffold{Model: "phi3"})
	require.NoError(t, err)
	assert.Equal(t, []string{d.ExamplePath(), d.EnvPath(), d.ConfigPath()}, written)

	dir, ok, err := directive.Load(d.ExamplePath())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, dir.Text, "Summarize:")

	dotenv, err := config.LoadDotEnv(d.EnvPath())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", dotenv[modelclient.EnvHost])
	assert.Equal(t, "phi3", dotenv[modelclient.EnvModel])

	f, err := config.LoadFile(d.ConfigPath(), nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", f.Ollama.Host)
	assert.Equal(t, "phi3", f.Ollama.Model)
	assert.Equal(t, "directives/example.md", f.Directive.Path)
}

func TestBootstrap_DoesNotOverwrite(t *testing.T) {
	d := New(t.TempDir())
	require.NoError(t, os.MkdirAll(d.DirectivesDir(), 0o750))
	require.NoError(t, os.WriteFile(d.ExamplePath(), []byte("mine"), 0o600))

	written, err := Bootstrap(d, Scaffold{})
	require.NoError(t, err)
	assert.NotContains(t, written, d.ExamplePath())

	data, err := os.ReadFile(d.ExamplePath())
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestBootstrap_Force(t *testing.T) {
	d := New(t.TempDir())
	require.NoError(t, os.MkdirAll(d.DirectivesDir(), 0o750))
	require.NoError(t, os.WriteFile(d.ExamplePath(), []byte("mine"), 0o600))

	written, err := Bootstrap(d, Scaffold{Force: true})
	require.NoError(t, err)
	assert.Contains(t, written, d.ExamplePath())

	data, err := os.ReadFile(d.ExamplePath())
	require.NoError(t, err)
	assert.NotEqual(t, "mine", string(data))
}
