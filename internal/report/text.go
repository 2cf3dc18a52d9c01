package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"nwlint/internal/runner"
)

// TextWriter prints one finding per line as path:line:col: message, with
// the column counted from 1.
type TextWriter struct {
	out io.Writer

	pathColor  *color.Color
	codeColor  *color.Color
	errorColor *color.Color
}

func NewTextWriter(out io.Writer, colored bool) *TextWriter {
	w := &TextWriter{
		out:        out,
		pathColor:  color.New(color.Bold),
		codeColor:  color.New(color.FgRed, color.Bold),
		errorColor: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{w.pathColor, w.codeColor, w.errorColor} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return w
}

func (w *TextWriter) Write(results []runner.FileResult) error {
	for _, res := range results {
		path := w.pathColor.Sprint(res.Path)
		if res.Err != nil {
			if _, err := fmt.Fprintf(w.out, "%s: %s\n", path, w.errorColor.Sprintf("error: %v", res.Err)); err != nil {
				return err
			}
			continue
		}
		for _, f := range res.Findings {
			msg := f.Message
			if rest, ok := strings.CutPrefix(msg, f.RuleID); ok && f.RuleID != "" {
				msg = w.codeColor.Sprint(f.RuleID) + rest
			}
			if _, err := fmt.Fprintf(w.out, "%s:%d:%d: %s\n", path, f.Line, f.Column+1, msg); err != nil {
				return err
			}
		}
	}
	return nil
}
