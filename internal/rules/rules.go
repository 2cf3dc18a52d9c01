// Package rules holds the closed set of structural style rules.
package rules

import (
	"fmt"
	"strings"

	"nwlint/internal/lint"
	"nwlint/internal/syntax"
)

// All returns every rule in code order.
func All() []*lint.Rule {
	return []*lint.Rule{
		AssertMessage,
		CallFormatting,
		KeywordCall,
		EmptyLineAfter,
		EmptyLineBefore,
	}
}

// Lookup resolves a rule by code ("NWL101") or name ("call-formatting"),
// case-insensitively.
func Lookup(id string) (*lint.Rule, bool) {
	for _, r := range All() {
		if strings.EqualFold(r.Code, id) || strings.EqualFold(r.Name, id) {
			return r, true
		}
	}
	return nil, false
}

// Select returns the rules named in sel (all rules when sel is empty) minus
// those named in ignore, in code order. Unknown identifiers are an error.
func Select(sel, ignore []string) ([]*lint.Rule, error) {
	chosen := make(map[string]bool)
	for _, id := range sel {
		r, ok := Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown rule: %s", id)
		}
		chosen[r.Code] = true
	}
	skipped := make(map[string]bool)
	for _, id := range ignore {
		r, ok := Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown rule: %s", id)
		}
		skipped[r.Code] = true
	}

	var out []*lint.Rule
	for _, r := range All() {
		if len(sel) > 0 && !chosen[r.Code] {
			continue
		}
		if skipped[r.Code] {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// statementType is the human-readable construct name used in blank-line
// messages.
func statementType(n *syntax.Node) string {
	switch n.Kind {
	case syntax.KindIf:
		return "If statement"
	case syntax.KindFor:
		return "for loop"
	case syntax.KindWhile:
		return "while loop"
	case syntax.KindTry:
		return "try block"
	case syntax.KindExceptHandler:
		return "except clause"
	case syntax.KindWith:
		return "with statement"
	default:
		return strings.ToLower(n.Kind.String())
	}
}

// bodyType names the body of a branching construct.
func bodyType(n *syntax.Node) string {
	if n.Kind == syntax.KindIf {
		return statementType(n)
	}
	return strings.ToLower(n.Kind.String()) + " body"
}

func last(nodes []*syntax.Node) *syntax.Node {
	return nodes[len(nodes)-1]
}
