package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertMessage(t *testing.T) {
	src := `def test():
    assert x
    assert x, ""
    assert x, "ok"
    assert x, f"{x}"
    assert x, build_message()
    assert x, b""
    assert x, '' ''
`
	fs := check(t, AssertMessage, src)

	require.Len(t, fs, 3)
	assert.Equal(t, []pos{{2, 4}, {3, 4}, {8, 4}}, positions(fs))
	assert.Equal(t, "NWL100 Empty assert message detected. Provide a descriptive message.", fs[0].Message)
	assert.Equal(t, "NWL100", fs[0].RuleID)
}

func TestAssertMessage_NestedAssertionsAreVisited(t *testing.T) {
	src := `class T:
    def check(self):
        for x in xs:
            if x:
                assert x
`
	assert.Equal(t, []pos{{5, 16}}, positions(check(t, AssertMessage, src)))
}
