package pyparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"nwlint/internal/syntax"
)

func (c *converter) expressions(nodes []*sitter.Node) []*syntax.Node {
	out := make([]*syntax.Node, 0, len(nodes))
	for _, n := range nodes {
		if e := c.expression(n); e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (c *converter) expression(n *sitter.Node) *syntax.Node {
	switch n.Type() {
	case "parenthesized_expression":
		// Parentheses have no node of their own; the inner expression keeps
		// its own position.
		if inner := namedChildren(n); len(inner) == 1 {
			return c.expression(inner[0])
		}
	case "identifier":
		e := leaf(syntax.KindName, n)
		e.Name = c.text(n)
		return e
	case "attribute":
		e := leaf(syntax.KindAttribute, n)
		if attr := n.ChildByFieldName("attribute"); attr != nil {
			e.Name = c.text(attr)
		}
		if obj := n.ChildByFieldName("object"); obj != nil {
			e.Head = []*syntax.Node{c.expression(obj)}
		}
		return e
	case "call":
		return c.call(n)
	case "keyword_argument":
		return c.keyword(n)
	case "dictionary_splat":
		e := leaf(syntax.KindKeyword, n)
		e.Head = c.expressions(namedChildren(n))
		return e
	case "list_splat":
		e := leaf(syntax.KindStarred, n)
		e.Head = c.expressions(namedChildren(n))
		return e
	case "string":
		return c.stringLiteral(n)
	case "concatenated_string":
		return c.concatenated(n)
	}
	e := leaf(syntax.KindExpr, n)
	e.Head = c.expressions(namedChildren(n))
	return e
}

func (c *converter) keyword(n *sitter.Node) *syntax.Node {
	kw := leaf(syntax.KindKeyword, n)
	if name := n.ChildByFieldName("name"); name != nil {
		kw.Name = c.text(name)
	}
	if v := n.ChildByFieldName("value"); v != nil {
		kw.Head = []*syntax.Node{c.expression(v)}
	}
	return kw
}

// call sorts the argument list into positional arguments (including *args)
// and keyword arguments (including **kwargs). A bare generator argument is
// the single positional argument.
func (c *converter) call(n *sitter.Node) *syntax.Node {
	call := leaf(syntax.KindCall, n)
	if fn := n.ChildByFieldName("function"); fn != nil {
		call.Func = c.expression(fn)
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return call
	}
	if args.Type() != "argument_list" {
		call.Args = []*syntax.Node{c.expression(args)}
		return call
	}
	for _, a := range namedChildren(args) {
		e := c.expression(a)
		if e.Kind == syntax.KindKeyword {
			call.Keywords = append(call.Keywords, e)
			continue
		}
		call.Args = append(call.Args, e)
	}
	return call
}

// stringLiteral classifies a literal by its prefix: f-strings are formatted,
// b-strings are bytes and everything else is a plain string whose Value is
// the raw text between the quotes.
func (c *converter) stringLiteral(n *sitter.Node) *syntax.Node {
	prefix, value := splitLiteral(c.text(n))
	e := leaf(literalKind(prefix), n)
	if e.Kind == syntax.KindFormattedStr {
		e.Head = c.interpolations(n)
		return e
	}
	e.Value = value
	return e
}

// interpolations returns the expressions embedded in an f-string.
func (c *converter) interpolations(n *sitter.Node) []*syntax.Node {
	var out []*syntax.Node
	for _, child := range namedChildren(n) {
		if child.Type() != "interpolation" {
			continue
		}
		if exprs := namedChildren(child); len(exprs) > 0 {
			out = append(out, c.expression(exprs[0]))
		}
	}
	return out
}

// concatenated folds implicitly concatenated literals ("a" "b") into one.
func (c *converter) concatenated(n *sitter.Node) *syntax.Node {
	kind := syntax.KindStr
	var embedded []*syntax.Node
	var b strings.Builder
	for _, part := range namedChildren(n) {
		prefix, value := splitLiteral(c.text(part))
		switch literalKind(prefix) {
		case syntax.KindFormattedStr:
			kind = syntax.KindFormattedStr
			embedded = append(embedded, c.interpolations(part)...)
		case syntax.KindBytes:
			if kind == syntax.KindStr {
				kind = syntax.KindBytes
			}
		}
		b.WriteString(value)
	}
	e := leaf(kind, n)
	if kind == syntax.KindFormattedStr {
		e.Head = embedded
		return e
	}
	e.Value = b.String()
	return e
}

func literalKind(prefix string) syntax.Kind {
	p := strings.ToLower(prefix)
	switch {
	case strings.Contains(p, "f"):
		return syntax.KindFormattedStr
	case strings.Contains(p, "b"):
		return syntax.KindBytes
	}
	return syntax.KindStr
}

// splitLiteral separates a literal's prefix letters from the content
// between its quotes.
func splitLiteral(lit string) (prefix, value string) {
	i := strings.IndexAny(lit, `'"`)
	if i < 0 {
		return "", lit
	}
	prefix, body := lit[:i], lit[i:]
	quote := body[:1]
	if strings.HasPrefix(body, strings.Repeat(quote, 3)) && len(body) >= 6 {
		quote = strings.Repeat(quote, 3)
	}
	if len(body) < 2*len(quote) {
		return prefix, ""
	}
	return prefix, body[len(quote) : len(body)-len(quote)]
}
