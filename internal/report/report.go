// Package report renders check results for people and for tools.
package report

import (
	"fmt"
	"io"

	"nwlint/internal/runner"
)

// Writer renders a full run.
type Writer interface {
	Write(results []runner.FileResult) error
}

// New returns the writer for format, "text" or "json".
func New(format string, out io.Writer, colored bool) (Writer, error) {
	switch format {
	case "", "text":
		return NewTextWriter(out, colored), nil
	case "json":
		return NewJSONWriter(out), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
