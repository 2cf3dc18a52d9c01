package rules

import (
	"nwlint/internal/lint"
	"nwlint/internal/syntax"
)

// EmptyLineAfter requires a blank line after blocks and terminal
// statements. Branching constructs are checked clause by clause.
var EmptyLineAfter = &lint.Rule{
	Code: "NWL103",
	Name: "empty-line-after",
	Doc:  "blocks and terminal statements are followed by an empty line",
	Handlers: map[syntax.Kind]lint.Handler{
		syntax.KindFunctionDef: checkAfter,
		syntax.KindClassDef:    checkAfter,
		syntax.KindFor:         checkAfter,
		syntax.KindWhile:       checkAfter,
		syntax.KindWith:        checkAfter,
		syntax.KindReturn:      checkAfter,
		syntax.KindContinue:    checkAfter,
		syntax.KindBreak:       checkAfter,
		syntax.KindRaise:       checkAfter,
		syntax.KindAssert:      checkAfter,
		syntax.KindIf:          checkAfterIf,
		syntax.KindTry:         checkAfterTry,
	},
}

const afterMessage = "required an empty line after %s"

func checkAfter(p *lint.Pass, n *syntax.Node) {
	requireBlankAfter(p, n, statementType(n))
}

// checkAfterIf checks the body of every link of the chain, then the
// terminal else clause.
func checkAfterIf(p *lint.Pass, n *syntax.Node) {
	link := n
	requireBlankAfterSlot(p, link.Body, bodyType(link))
	for next := lint.ElifOf(link); next != nil; next = lint.ElifOf(link) {
		link = next
		requireBlankAfterSlot(p, link.Body, bodyType(link))
	}
	requireBlankAfterSlot(p, link.OrElse, "else clause")
}

func checkAfterTry(p *lint.Pass, n *syntax.Node) {
	requireBlankAfterSlot(p, n.Body, bodyType(n))
	for _, h := range n.Handlers {
		requireBlankAfter(p, h, statementType(h))
	}
	requireBlankAfterSlot(p, n.OrElse, "else clause")
	requireBlankAfterSlot(p, n.FinalBody, "finally clause")
}

func requireBlankAfterSlot(p *lint.Pass, slot []*syntax.Node, what string) {
	if len(slot) == 0 {
		return
	}
	requireBlankAfter(p, last(slot), what)
}

func requireBlankAfter(p *lint.Pass, n *syntax.Node, what string) {
	if !p.Lines.IsBlank(n.EndLine + 1) {
		p.Reportf(n.EndLine, n.EndCol, afterMessage, what)
	}
}
