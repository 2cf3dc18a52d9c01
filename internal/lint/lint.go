// Package lint runs rules over a parsed source file and collects their
// findings.
package lint

import (
	"fmt"
	"sort"

	"nwlint/internal/source"
	"nwlint/internal/syntax"
)

// Finding is a single rule violation.
type Finding struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	RuleID  string `json:"rule"`
}

// Handler inspects one node on behalf of a rule.
type Handler func(p *Pass, n *syntax.Node)

// Rule is one checker: an identifier plus the node kinds it inspects.
type Rule struct {
	Code     string
	Name     string
	Doc      string
	Handlers map[syntax.Kind]Handler
}

// Pass is a single run of one rule against one file.
type Pass struct {
	Rule  *Rule
	Tree  *syntax.Node
	Lines source.Lines

	findings []Finding
}

// Report records a finding for the pass's rule.
func (p *Pass) Report(line, col int, msg string) {
	p.findings = append(p.findings, Finding{
		Line:    line,
		Column:  col,
		Message: msg,
		RuleID:  p.Rule.Code,
	})
}

// Reportf is Report with a rule-code prefixed, formatted message.
func (p *Pass) Reportf(line, col int, format string, args ...any) {
	p.Report(line, col, p.Rule.Code+" "+fmt.Sprintf(format, args...))
}

// Run walks the tree once for rule and returns its findings in discovery
// order.
func Run(rule *Rule, tree *syntax.Node, lines source.Lines) []Finding {
	p := &Pass{Rule: rule, Tree: tree, Lines: lines}
	p.walk(tree)
	return p.findings
}

// RunAll runs each rule independently and concatenates the results in rule
// order.
func RunAll(rules []*Rule, tree *syntax.Node, lines source.Lines) []Finding {
	var out []Finding
	for _, r := range rules {
		out = append(out, Run(r, tree, lines)...)
	}
	return out
}

func (p *Pass) walk(n *syntax.Node) {
	if n == nil {
		return
	}
	if h, ok := p.Rule.Handlers[n.Kind]; ok {
		h(p, n)
	}
	if n.Kind == syntax.KindIf {
		p.walkIfChain(n)
		return
	}
	for _, c := range n.Children() {
		p.walk(c)
	}
}

// walkIfChain recurses into every clause of an if/elif/else ladder. Elif
// links are not dispatched as new chain heads: the head's handler already
// saw them.
func (p *Pass) walkIfChain(n *syntax.Node) {
	for link := n; ; {
		for _, c := range link.Head {
			p.walk(c)
		}
		for _, c := range link.Body {
			p.walk(c)
		}
		next := ElifOf(link)
		if next == nil {
			for _, c := range link.OrElse {
				p.walk(c)
			}
			return
		}
		for _, c := range link.OrElse[1:] {
			p.walk(c)
		}
		link = next
	}
}

// ElifOf returns the If that continues the chain after n, or nil when n's
// alternate branch is empty or a plain else clause.
func ElifOf(n *syntax.Node) *syntax.Node {
	if n == nil || n.Kind != syntax.KindIf || len(n.OrElse) == 0 {
		return nil
	}
	if n.OrElse[0].Kind == syntax.KindIf {
		return n.OrElse[0]
	}
	return nil
}

// SortFindings orders findings by position, then by rule. Discovery order is
// the default everywhere else.
func SortFindings(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.RuleID < b.RuleID
	})
}
