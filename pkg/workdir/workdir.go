// Package workdir knows the layout of a directive project: the directives/
// folder, the .env file and the directive.yaml configuration. It also
// scaffolds that layout for the init command.
package workdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir is a value object that resolves paths within a project root.
type Dir struct {
	root string
}

// New creates a Dir rooted at root. The path is made absolute; no I/O is
// performed.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Root returns the absolute project root.
func (d Dir) Root() string { return d.root }

// DirectivesDir returns the directives folder.
func (d Dir) DirectivesDir() string { return filepath.Join(d.root, "directives") }

// ExamplePath returns the default directive file.
func (d Dir) ExamplePath() string { return filepath.Join(d.root, "directives", "example.md") }

// EnvPath returns the .env file.
func (d Dir) EnvPath() string { return filepath.Join(d.root, ".env") }

// ConfigPath returns the YAML configuration file.
func (d Dir) ConfigPath() string { return filepath.Join(d.root, "directive.yaml") }

// writeNew writes data to path unless the file exists and force is false.
// It reports whether the file was written.
func writeNew(path string, data []byte, force bool) (bool, error) {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("workdir: stat %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return false, fmt.Errorf("workdir: write %s: %w", path, err)
	}

	return true, nil
}
