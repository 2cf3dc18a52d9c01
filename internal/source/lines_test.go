package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLines_TrailingNewline(t *testing.T) {
	assert.Equal(t, Lines{"a", "b"}, NewLines("a\nb"))
	assert.Equal(t, Lines{"a", "b", "", ""}, NewLines("a\nb\n"))
}

func TestIsBlank(t *testing.T) {
	lines := NewLines("x = 1\n   \n\ty = 2\n")

	tests := []struct {
		name string
		line int
		want bool
	}{
		{"code", 1, false},
		{"whitespace only", 2, true},
		{"indented code", 3, false},
		{"split remainder past last line", 4, true},
		{"buffer last index", 5, false},
		{"beyond end", 6, false},
		{"zero", 0, false},
		{"negative", -3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lines.IsBlank(tt.line))
		})
	}
}

func TestIsBlank_NoTrailingNewline(t *testing.T) {
	lines := NewLines("if x:\n    pass")
	assert.False(t, lines.IsBlank(3), "probing past the end is not an error")
	assert.False(t, lines.IsBlank(2))
}

func TestIsComment(t *testing.T) {
	lines := NewLines("# top\n  x = 1  # trailing\n    \"\"\"doc\"\"\"\n'''single'''\n    # last")

	assert.True(t, lines.IsComment(1))
	assert.False(t, lines.IsComment(2), "trailing comment does not make a comment line")
	assert.True(t, lines.IsComment(3))
	assert.False(t, lines.IsComment(4), "only triple double quotes count")
	assert.True(t, lines.IsComment(5), "last line is inside the valid range")
	assert.False(t, lines.IsComment(6))
	assert.False(t, lines.IsComment(0))
}
