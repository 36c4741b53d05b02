// Package prompt builds the instruction prompt that wraps a directive.
package prompt

import (
	"fmt"
	"os"
	"strings"
	"text/template"
)

// DefaultTemplate wraps the directive in a short instruction preamble and a
// trailing instruction block.
const DefaultTemplate = `You are an intelligent agent. Your goal is to follow the directive below.

DIRECTIVE:
{{.Directive}}

INSTRUCTIONS:
Identify the next step based on the directive and execute it or describe it.
If the directive asks you to summarize something, provide the summary.
`

// Data is the value a template is executed with.
type Data struct {
	Directive string
}

// Template renders prompts from directive text.
type Template struct {
	tmpl *template.Template
}

var defaultTemplate = must(Parse(DefaultTemplate))

// Parse compiles a prompt template. The template must reference
// {{.Directive}}.
func Parse(text string) (*Template, error) {
	if !strings.Contains(text, ".Directive") {
		return nil, fmt.Errorf("prompt: template does not reference .Directive")
	}

	t, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("prompt: parse template: %w", err)
	}

	return &Template{tmpl: t}, nil
}

// LoadFile reads and compiles a prompt template from path.
func LoadFile(path string) (*Template, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("prompt: load template: %w", err)
	}

	return Parse(string(data))
}

func must(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the built-in template.
func Default() *Template {
	return defaultTemplate
}

// Render returns the prompt for directive. The directive text is inserted
// verbatim.
func (t *Template) Render(directive string) (string, error) {
	var b strings.Builder
	if err := t.tmpl.Execute(&b, Data{Directive: directive}); err != nil {
		return "", fmt.Errorf("prompt: render: %w", err)
	}
	return b.String(), nil
}

// Build renders directive with the built-in template.
func Build(directive string) string {
	out, err := defaultTemplate.Render(directive)
	if err != nil {
		// The built-in template only references Data fields.
		panic(err)
	}
	return out
}
