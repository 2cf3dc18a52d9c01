package pyparse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"nwlint/internal/syntax"
)

type converter struct {
	src []byte
}

var simpleStatements = map[string]syntax.Kind{
	"return_statement":        syntax.KindReturn,
	"raise_statement":         syntax.KindRaise,
	"break_statement":         syntax.KindBreak,
	"continue_statement":      syntax.KindContinue,
	"pass_statement":          syntax.KindPass,
	"import_statement":        syntax.KindImport,
	"import_from_statement":   syntax.KindImport,
	"future_import_statement": syntax.KindImport,
	"delete_statement":        syntax.KindDelete,
	"global_statement":        syntax.KindGlobal,
	"nonlocal_statement":      syntax.KindGlobal,
}

func isExtra(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "line_continuation":
		return true
	}
	return false
}

// namedChildren returns n's named children without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || isExtra(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

// startsWithKeyword reports whether n's first token is kw, e.g. "async".
func startsWithKeyword(n *sitter.Node, kw string) bool {
	if n.ChildCount() == 0 {
		return false
	}
	return n.Child(0).Type() == kw
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

// leaf creates a node spanning exactly the tree-sitter node.
func leaf(kind syntax.Kind, n *sitter.Node) *syntax.Node {
	start, end := n.StartPoint(), n.EndPoint()
	return &syntax.Node{
		Kind:      kind,
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column),
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column),
	}
}

// closeSpan moves a compound statement's end to the end of the last
// statement in its last populated slot.
func closeSpan(n *syntax.Node) {
	for _, slot := range [][]*syntax.Node{n.FinalBody, n.OrElse, n.Handlers, n.Body} {
		if len(slot) == 0 {
			continue
		}
		tail := slot[len(slot)-1]
		n.EndLine, n.EndCol = tail.EndLine, tail.EndCol
		return
	}
}

func (c *converter) module(root *sitter.Node) *syntax.Node {
	mod := leaf(syntax.KindModule, root)
	mod.Body = c.statements(namedChildren(root))
	return mod
}

func (c *converter) block(n *sitter.Node) []*syntax.Node {
	if n == nil {
		return nil
	}
	return c.statements(namedChildren(n))
}

func (c *converter) statements(nodes []*sitter.Node) []*syntax.Node {
	out := make([]*syntax.Node, 0, len(nodes))
	for _, n := range nodes {
		if s := c.statement(n); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (c *converter) statement(n *sitter.Node) *syntax.Node {
	switch n.Type() {
	case "function_definition":
		return c.functionDef(n, nil)
	case "class_definition":
		return c.classDef(n, nil)
	case "decorated_definition":
		return c.decorated(n)
	case "if_statement":
		return c.ifStatement(n)
	case "for_statement":
		return c.forStatement(n)
	case "while_statement":
		return c.whileStatement(n)
	case "try_statement":
		return c.tryStatement(n)
	case "with_statement":
		return c.withStatement(n)
	case "match_statement":
		return c.matchStatement(n)
	case "assert_statement":
		return c.assertStatement(n)
	case "expression_statement":
		return c.expressionStatement(n)
	}
	kind, ok := simpleStatements[n.Type()]
	if !ok {
		kind = syntax.KindStatement
	}
	s := leaf(kind, n)
	s.Head = c.expressions(namedChildren(n))
	return s
}

func (c *converter) decorated(n *sitter.Node) *syntax.Node {
	var decorators []*syntax.Node
	for _, child := range namedChildren(n) {
		if child.Type() != "decorator" {
			continue
		}
		decorators = append(decorators, c.expressions(namedChildren(child))...)
	}
	def := n.ChildByFieldName("definition")
	if def == nil {
		return nil
	}
	if def.Type() == "class_definition" {
		return c.classDef(def, decorators)
	}
	return c.functionDef(def, decorators)
}

func (c *converter) functionDef(n *sitter.Node, decorators []*syntax.Node) *syntax.Node {
	kind := syntax.KindFunctionDef
	if startsWithKeyword(n, "async") {
		kind = syntax.KindAsyncFunctionDef
	}
	fn := leaf(kind, n)
	if name := n.ChildByFieldName("name"); name != nil {
		fn.Name = c.text(name)
	}
	fn.Head = decorators
	for _, field := range []string{"type_parameters", "parameters", "return_type"} {
		if h := n.ChildByFieldName(field); h != nil {
			fn.Head = append(fn.Head, c.expression(h))
		}
	}
	fn.Body = c.block(n.ChildByFieldName("body"))
	closeSpan(fn)
	return fn
}

func (c *converter) classDef(n *sitter.Node, decorators []*syntax.Node) *syntax.Node {
	cls := leaf(syntax.KindClassDef, n)
	if name := n.ChildByFieldName("name"); name != nil {
		cls.Name = c.text(name)
	}
	cls.Head = decorators
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		cls.Head = append(cls.Head, c.expression(tp))
	}
	// Base classes are not a call: bases and keywords stay header
	// expressions.
	if bases := n.ChildByFieldName("superclasses"); bases != nil {
		cls.Head = append(cls.Head, c.expressions(namedChildren(bases))...)
	}
	cls.Body = c.block(n.ChildByFieldName("body"))
	closeSpan(cls)
	return cls
}

// ifStatement folds elif clauses into nested If nodes held in OrElse, each
// starting at its elif keyword and ending with the whole chain.
func (c *converter) ifStatement(n *sitter.Node) *syntax.Node {
	head := leaf(syntax.KindIf, n)
	if cond := n.ChildByFieldName("condition"); cond != nil {
		head.Head = []*syntax.Node{c.expression(cond)}
	}
	head.Body = c.block(n.ChildByFieldName("consequence"))

	links := []*syntax.Node{head}
	for _, alt := range namedChildren(n) {
		switch alt.Type() {
		case "elif_clause":
			link := leaf(syntax.KindIf, alt)
			if cond := alt.ChildByFieldName("condition"); cond != nil {
				link.Head = []*syntax.Node{c.expression(cond)}
			}
			link.Body = c.block(alt.ChildByFieldName("consequence"))
			links[len(links)-1].OrElse = []*syntax.Node{link}
			links = append(links, link)
		case "else_clause":
			links[len(links)-1].OrElse = c.block(alt.ChildByFieldName("body"))
		}
	}
	for i := len(links) - 1; i >= 0; i-- {
		closeSpan(links[i])
	}
	return head
}

func (c *converter) elseClause(n *sitter.Node) []*syntax.Node {
	for _, child := range namedChildren(n) {
		if child.Type() == "else_clause" {
			return c.block(child.ChildByFieldName("body"))
		}
	}
	return nil
}

func (c *converter) forStatement(n *sitter.Node) *syntax.Node {
	kind := syntax.KindFor
	if startsWithKeyword(n, "async") {
		kind = syntax.KindAsyncFor
	}
	loop := leaf(kind, n)
	for _, field := range []string{"left", "right"} {
		if h := n.ChildByFieldName(field); h != nil {
			loop.Head = append(loop.Head, c.expression(h))
		}
	}
	loop.Body = c.block(n.ChildByFieldName("body"))
	loop.OrElse = c.elseClause(n)
	closeSpan(loop)
	return loop
}

func (c *converter) whileStatement(n *sitter.Node) *syntax.Node {
	loop := leaf(syntax.KindWhile, n)
	if cond := n.ChildByFieldName("condition"); cond != nil {
		loop.Head = []*syntax.Node{c.expression(cond)}
	}
	loop.Body = c.block(n.ChildByFieldName("body"))
	loop.OrElse = c.elseClause(n)
	closeSpan(loop)
	return loop
}

func (c *converter) tryStatement(n *sitter.Node) *syntax.Node {
	try := leaf(syntax.KindTry, n)
	try.Body = c.block(n.ChildByFieldName("body"))
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "except_clause", "except_group_clause":
			try.Handlers = append(try.Handlers, c.exceptClause(child))
		case "else_clause":
			try.OrElse = c.block(child.ChildByFieldName("body"))
		case "finally_clause":
			for _, b := range namedChildren(child) {
				if b.Type() == "block" {
					try.FinalBody = c.block(b)
				}
			}
		}
	}
	closeSpan(try)
	return try
}

func (c *converter) exceptClause(n *sitter.Node) *syntax.Node {
	h := leaf(syntax.KindExceptHandler, n)
	for _, child := range namedChildren(n) {
		if child.Type() == "block" {
			h.Body = c.block(child)
			continue
		}
		h.Head = append(h.Head, c.expression(child))
	}
	closeSpan(h)
	return h
}

func (c *converter) withStatement(n *sitter.Node) *syntax.Node {
	kind := syntax.KindWith
	if startsWithKeyword(n, "async") {
		kind = syntax.KindAsyncWith
	}
	with := leaf(kind, n)
	for _, child := range namedChildren(n) {
		if child.Type() == "with_clause" {
			with.Head = append(with.Head, c.expressions(namedChildren(child))...)
		}
	}
	with.Body = c.block(n.ChildByFieldName("body"))
	closeSpan(with)
	return with
}

// matchStatement keeps the cases in Body; each case holds its own body.
func (c *converter) matchStatement(n *sitter.Node) *syntax.Node {
	m := leaf(syntax.KindMatch, n)
	for _, child := range namedChildren(n) {
		if child.Type() == "block" {
			for _, cc := range namedChildren(child) {
				if cc.Type() == "case_clause" {
					m.Body = append(m.Body, c.caseClause(cc))
				}
			}
			continue
		}
		m.Head = append(m.Head, c.expression(child))
	}
	closeSpan(m)
	return m
}

func (c *converter) caseClause(n *sitter.Node) *syntax.Node {
	cs := leaf(syntax.KindMatchCase, n)
	for _, child := range namedChildren(n) {
		if child.Type() == "block" {
			cs.Body = c.block(child)
			continue
		}
		cs.Head = append(cs.Head, c.expression(child))
	}
	closeSpan(cs)
	return cs
}

func (c *converter) assertStatement(n *sitter.Node) *syntax.Node {
	a := leaf(syntax.KindAssert, n)
	exprs := namedChildren(n)
	if len(exprs) > 0 {
		a.Head = []*syntax.Node{c.expression(exprs[0])}
	}
	if len(exprs) > 1 {
		a.Msg = c.expression(exprs[1])
	}
	return a
}

func (c *converter) expressionStatement(n *sitter.Node) *syntax.Node {
	exprs := namedChildren(n)
	if len(exprs) == 1 {
		switch exprs[0].Type() {
		case "assignment", "augmented_assignment":
			s := leaf(syntax.KindAssign, n)
			s.Head = c.expressions(namedChildren(exprs[0]))
			return s
		}
	}
	s := leaf(syntax.KindExprStmt, n)
	s.Head = c.expressions(exprs)
	return s
}
