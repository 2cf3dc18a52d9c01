package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stmt(kind Kind, start, end int) *Node {
	return &Node{Kind: kind, StartLine: start, EndLine: end}
}

// def f():        1
//     x = 1       2
//     if x:       3
//         pass    4
//     return x    5
func sampleTree() (root, fn, assign, ifNode, pass, ret *Node) {
	assign = stmt(KindAssign, 2, 2)
	pass = stmt(KindPass, 4, 4)
	ifNode = stmt(KindIf, 3, 4)
	ifNode.Head = []*Node{{Kind: KindName, Name: "x", StartLine: 3, EndLine: 3}}
	ifNode.Body = []*Node{pass}
	ret = stmt(KindReturn, 5, 5)
	fn = stmt(KindFunctionDef, 1, 5)
	fn.Body = []*Node{assign, ifNode, ret}
	root = stmt(KindModule, 1, 5)
	root.Body = []*Node{fn}
	return
}

func TestWalk_BreadthFirst(t *testing.T) {
	root, fn, assign, ifNode, _, ret := sampleTree()

	var seen []*Node
	Walk(root, func(n *Node) { seen = append(seen, n) })

	require.Len(t, seen, 7)
	assert.Same(t, root, seen[0])
	assert.Same(t, fn, seen[1])
	assert.Same(t, assign, seen[2])
	assert.Same(t, ifNode, seen[3])
	assert.Same(t, ret, seen[4])
	assert.Equal(t, KindName, seen[5].Kind)
	assert.Equal(t, KindPass, seen[6].Kind)
}

func TestEnclosing(t *testing.T) {
	root, fn, assign, ifNode, pass, ret := sampleTree()

	t.Run("innermost ancestor wins", func(t *testing.T) {
		assert.Same(t, ifNode, Enclosing(root, pass))
		assert.Same(t, fn, Enclosing(root, ret))
		assert.Same(t, fn, Enclosing(root, assign))
	})

	t.Run("falls back to root", func(t *testing.T) {
		assert.Same(t, root, Enclosing(root, fn))
	})

	t.Run("same start line is not enclosing", func(t *testing.T) {
		inline := stmt(KindReturn, 7, 7)
		oneLiner := stmt(KindIf, 7, 7)
		oneLiner.Body = []*Node{inline}
		mod := stmt(KindModule, 1, 7)
		mod.Body = []*Node{oneLiner}
		assert.Same(t, mod, Enclosing(mod, inline))
	})
}

func TestIsFirstChild(t *testing.T) {
	root, fn, assign, ifNode, pass, ret := sampleTree()

	assert.True(t, IsFirstChild(fn, assign))
	assert.False(t, IsFirstChild(fn, ifNode))
	assert.False(t, IsFirstChild(fn, ret))
	assert.True(t, IsFirstChild(ifNode, pass))
	assert.True(t, IsFirstChild(root, fn))
	assert.False(t, IsFirstChild(pass, ret), "node without slots")
	assert.False(t, IsFirstChild(nil, ret))

	t.Run("identity not equality", func(t *testing.T) {
		clone := *assign
		assert.False(t, IsFirstChild(fn, &clone))
	})

	t.Run("handlers and finalbody", func(t *testing.T) {
		h := stmt(KindExceptHandler, 3, 4)
		fin := stmt(KindPass, 6, 6)
		try := stmt(KindTry, 1, 6)
		try.Body = []*Node{stmt(KindPass, 2, 2)}
		try.Handlers = []*Node{h}
		try.FinalBody = []*Node{fin}
		assert.True(t, IsFirstChild(try, h))
		assert.True(t, IsFirstChild(try, fin))
	})
}

func TestCalleeName(t *testing.T) {
	call := &Node{Kind: KindCall, Func: &Node{Kind: KindAttribute, Name: "append"}}
	name, ok := call.CalleeName()
	assert.True(t, ok)
	assert.Equal(t, "append", name)

	sub := &Node{Kind: KindCall, Func: &Node{Kind: KindExpr}}
	_, ok = sub.CalleeName()
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "FunctionDef", KindFunctionDef.String())
	assert.Equal(t, "ExceptHandler", KindExceptHandler.String())
	assert.Equal(t, "Unknown", Kind(-1).String())
	assert.True(t, KindAssert.IsStatement())
	assert.False(t, KindCall.IsStatement())
}
