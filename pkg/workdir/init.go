package workdir

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/germanamz/directive/pkg/config"
	"github.com/germanamz/directive/pkg/modelclient"
)

const exampleDirective = `# Example directive

Summarize: The sky is blue because air molecules scatter short blue
wavelengths of sunlight more than long red ones.
`

// Scaffold describes the files Bootstrap writes.
type Scaffold struct {
	Host  string
	Model string
	Force bool // Overwrite existing files.
}

// Bootstrap creates the directives folder, an example directive, a .env
// file and directive.yaml. Existing files are kept unless s.Force is set.
// It returns the paths it wrote.
func Bootstrap(d Dir, s Scaffold) ([]string, error) {
	if err := os.MkdirAll(d.DirectivesDir(), 0o750); err != nil {
		return nil, fmt.Errorf("workdir: create directives dir: %w", err)
	}

	cfg := modelclient.Resolve(modelclient.Config{Host: s.Host, Model: s.Model}, nil, modelclient.Defaults())

	configYAML, err := yaml.Marshal(config.File{
		Ollama:    config.OllamaConfig{Host: cfg.Host, Model: cfg.Model},
		Directive: config.DirectiveConfig{Path: "directives/example.md"},
		Log:       config.LogConfig{Level: "warn"},
	})
	if err != nil {
		return nil, fmt.Errorf("workdir: marshal config: %w", err)
	}

	envFile := fmt.Sprintf("%s=%s\n%s=%s\n", modelclient.EnvHost, cfg.Host, modelclient.EnvModel, cfg.Model)

	files := []struct {
		path string
		data []byte
	}{
		{d.ExamplePath(), []byte(exampleDirective)},
		{d.EnvPath(), []byte(envFile)},
		{d.ConfigPath(), configYAML},
	}

	var written []string
	for _, f := range files {
		ok, err := writeNew(f.path, f.data, s.Force)
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, f.path)
		}
	}

	return written, nil
}
