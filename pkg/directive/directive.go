// Package directive loads directive files: plain text describing what the
// agent should do, consumed verbatim.
package directive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultPath is the directive used when none is given.
const DefaultPath = "directives/example.md"

// Directive is the raw content of a directive file.
type Directive struct {
	Path string
	Text string
}

// Empty reports whether the directive file has no content at all.
// Whitespace is content and is sent as is.
func (d Directive) Empty() bool {
	return d.Text == ""
}

// Load reads the directive at path. A path that does not exist is not an
// error: Load returns ok == false and the caller decides what to do. Other
// failures, such as path naming a directory, are returned as errors.
func Load(path string) (d Directive, ok bool, err error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the user's chosen directive file
	if errors.Is(err, fs.ErrNotExist) {
		return Directive{}, false, nil
	}
	if err != nil {
		return Directive{}, false, fmt.Errorf("directive: read %s: %w", path, err)
	}

	return Directive{Path: path, Text: string(data)}, true, nil
}
