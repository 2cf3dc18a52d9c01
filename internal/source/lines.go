package source

import "strings"

// Lines is a read-only, 1-based view of a file's lines.
type Lines []string

// NewLines splits text on newlines. A trailing newline yields an explicit
// empty last entry, so the line after the last real line reads as blank.
func NewLines(text string) Lines {
	lines := strings.Split(text, "\n")
	if strings.HasSuffix(text, "\n") {
		lines = append(lines, "")
	}
	return Lines(lines)
}

// IsBlank reports whether the line holds only whitespace. The buffer's own
// last index and anything outside [1, len-1] are never blank.
func (l Lines) IsBlank(line int) bool {
	if line < 1 || line >= len(l) {
		return false
	}
	return strings.TrimSpace(l[line-1]) == ""
}

// IsComment reports whether the line starts with "#" or a docstring opener
// once surrounding whitespace is removed. Valid range is [1, len].
func (l Lines) IsComment(line int) bool {
	if line < 1 || line > len(l) {
		return false
	}
	s := strings.TrimSpace(l[line-1])
	return strings.HasPrefix(s, "#") || strings.HasPrefix(s, `"""`)
}
