package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyLineBefore_If(t *testing.T) {
	t.Run("no blank line", func(t *testing.T) {
		src := "def func():\n    x = 1\n    if x > 0:\n        pass\n"
		fs := check(t, EmptyLineBefore, src)
		require.Len(t, fs, 1)
		assert.Equal(t, pos{3, 4}, pos{fs[0].Line, fs[0].Column})
		assert.Equal(t, "NWL104 required an empty line before If statement", fs[0].Message)
		assert.Equal(t, "NWL104", fs[0].RuleID)
	})

	t.Run("comment does not count as a blank line", func(t *testing.T) {
		src := "def func():\n    x = 1\n    # note\n    if x > 0:\n        pass\n"
		fs := check(t, EmptyLineBefore, src)
		require.Len(t, fs, 1)
		assert.Equal(t, 4, fs[0].Line)
	})

	t.Run("blank line above the comment", func(t *testing.T) {
		src := "def func():\n    x = 1\n\n    # note\n    if x > 0:\n        pass\n"
		assert.Empty(t, check(t, EmptyLineBefore, src))
	})

	t.Run("docstring line is skipped like a comment", func(t *testing.T) {
		src := "def func():\n    x = 1\n\n    \"\"\"Explain.\"\"\"\n    if x > 0:\n        pass\n"
		assert.Empty(t, check(t, EmptyLineBefore, src))
	})

	t.Run("first statement of a block", func(t *testing.T) {
		assert.Empty(t, check(t, EmptyLineBefore, "def func():\n    if x:\n        return 1\n"))
	})
}

func TestEmptyLineBefore_ElifIsNeverChecked(t *testing.T) {
	src := `def g(a):
    if a:
        x = 1
    elif a > 1:
        x = 2
`
	assert.Empty(t, check(t, EmptyLineBefore, src))
}

func TestEmptyLineBefore_ElseClause(t *testing.T) {
	src := `def g(a):
    if a:
        x = 1
    else:
        x = 2
`
	fs := check(t, EmptyLineBefore, src)
	require.Len(t, fs, 1)
	assert.Equal(t, pos{5, 8}, pos{fs[0].Line, fs[0].Column})
	assert.Equal(t, "NWL104 required an empty line before else clause", fs[0].Message)

	spaced := `def g(a):
    if a:
        x = 1

    else:
        x = 2
`
	assert.Empty(t, check(t, EmptyLineBefore, spaced))
}

func TestEmptyLineBefore_Try(t *testing.T) {
	src := `try:
    run()
except E:
    pass
finally:
    done()
`
	fs := check(t, EmptyLineBefore, src)
	assert.Equal(t, []pos{{3, 0}, {6, 4}}, positions(fs))
	assert.Equal(t, []string{
		"NWL104 required an empty line before except clause",
		"NWL104 required an empty line before finally clause",
	}, messages(fs))

	spaced := `try:
    run()

except E:
    pass

else:
    ok()

finally:
    done()
`
	assert.Empty(t, check(t, EmptyLineBefore, spaced))
}

func TestEmptyLineBefore_TryElse(t *testing.T) {
	src := `try:
    run()

except E:
    pass
else:
    ok()
`
	fs := check(t, EmptyLineBefore, src)
	require.Len(t, fs, 1)
	assert.Equal(t, pos{7, 4}, pos{fs[0].Line, fs[0].Column})
	assert.Equal(t, "NWL104 required an empty line before else clause", fs[0].Message)
}

func TestEmptyLineBefore_ModuleLevel(t *testing.T) {
	src := `import os
# helper
def f():
    return 1
`
	fs := check(t, EmptyLineBefore, src)
	require.Len(t, fs, 1)
	assert.Equal(t, pos{3, 0}, pos{fs[0].Line, fs[0].Column})
	assert.Equal(t, "NWL104 required an empty line before functiondef", fs[0].Message)
}

func TestEmptyLineBefore_TerminalStatements(t *testing.T) {
	src := `def h(x):
    y = x
    assert y, "y"
    for i in y:
        z = i
        raise Stop()

    return y
`
	fs := check(t, EmptyLineBefore, src)
	assert.Equal(t, []string{
		"NWL104 required an empty line before assert",
		"NWL104 required an empty line before for loop",
		"NWL104 required an empty line before raise",
	}, messages(fs))
	assert.Equal(t, []pos{{3, 4}, {4, 4}, {6, 8}}, positions(fs))
}

func TestEmptyLineBefore_ClassMethods(t *testing.T) {
	src := `class A:
    x = 1
    def f(self):
        pass

    @property
    def g(self):
        pass
`
	fs := check(t, EmptyLineBefore, src)
	require.Len(t, fs, 2)
	assert.Equal(t, 3, fs[0].Line)
	// The decorator line sits between the blank line and the def.
	assert.Equal(t, 7, fs[1].Line)
}
