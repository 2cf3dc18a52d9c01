// Package pyparse turns Python source into syntax trees using the
// tree-sitter Python grammar. Positions follow CPython's ast module: lines
// are 1-based, columns are 0-based byte offsets, decorated definitions start
// at their def/class keyword and compound statements end where their last
// body statement ends.
package pyparse

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"nwlint/internal/source"
	"nwlint/internal/syntax"
)

// ErrSyntax is returned for source that does not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// File is a parsed source file.
type File struct {
	Path   string
	Source []byte
	Lines  source.Lines
	Tree   *syntax.Node
}

// Parser converts Python source into syntax trees. It is safe for
// concurrent use; every call gets its own tree-sitter parser.
type Parser struct {
	lang *sitter.Language
}

// NewParser creates a Python parser.
func NewParser() *Parser {
	return &Parser{lang: python.GetLanguage()}
}

// ParseFile reads and parses a single file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	f, err := p.ParseSource(ctx, path, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	return f, nil
}

// ParseSource parses src, which is reported as coming from path.
func (p *Parser) ParseSource(ctx context.Context, path string, src []byte) (*File, error) {
	tree, err := p.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return &File{
		Path:   path,
		Source: src,
		Lines:  source.NewLines(string(src)),
		Tree:   tree,
	}, nil
}

// Parse returns the module node for src.
func (p *Parser) Parse(ctx context.Context, src []byte) (*syntax.Node, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%w: empty parse tree", ErrSyntax)
	}
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			pt := bad.StartPoint()
			return nil, fmt.Errorf("%w at line %d, column %d", ErrSyntax, pt.Row+1, pt.Column+1)
		}
		return nil, ErrSyntax
	}

	c := &converter{src: src}
	return c.module(root), nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}
