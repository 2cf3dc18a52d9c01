package rules

import (
	"nwlint/internal/lint"
	"nwlint/internal/syntax"
)

// EmptyLineBefore requires a blank line, optionally followed by comment
// lines, before any block or terminal statement that does not open its
// enclosing block.
var EmptyLineBefore = &lint.Rule{
	Code: "NWL104",
	Name: "empty-line-before",
	Doc:  "blocks and terminal statements are preceded by an empty line unless they open their block",
	Handlers: map[syntax.Kind]lint.Handler{
		syntax.KindFunctionDef: checkBefore,
		syntax.KindClassDef:    checkBefore,
		syntax.KindFor:         checkBefore,
		syntax.KindWhile:       checkBefore,
		syntax.KindWith:        checkBefore,
		syntax.KindReturn:      checkBefore,
		syntax.KindRaise:       checkBefore,
		syntax.KindAssert:      checkBefore,
		syntax.KindIf:          checkBeforeIf,
		syntax.KindTry:         checkBeforeTry,
	},
}

const beforeMessage = "required an empty line before %s"

func checkBefore(p *lint.Pass, n *syntax.Node) {
	parent := syntax.Enclosing(p.Tree, n)
	if syntax.IsFirstChild(parent, n) {
		return
	}
	floor := 0
	if parent.Kind != syntax.KindModule {
		floor = parent.StartLine
	}
	if !blankAbove(p, n.StartLine-1, floor) {
		p.Reportf(n.StartLine, n.StartCol, beforeMessage, statementType(n))
	}
}

// checkBeforeIf checks the chain head and the terminal else clause. Elif
// links are the first child of the link before them and never need a check.
func checkBeforeIf(p *lint.Pass, n *syntax.Node) {
	checkBefore(p, n)

	link := n
	for next := lint.ElifOf(link); next != nil; next = lint.ElifOf(link) {
		link = next
		checkBefore(p, link)
	}
	checkBeforeClause(p, link, link.OrElse, "else clause")
}

func checkBeforeTry(p *lint.Pass, n *syntax.Node) {
	checkBefore(p, n)

	for _, h := range n.Handlers {
		if len(h.Body) == 0 {
			continue
		}
		if !blankAbove(p, h.Body[0].StartLine-2, n.StartLine) {
			p.Reportf(h.StartLine, h.StartCol, beforeMessage, statementType(h))
		}
	}
	checkBeforeClause(p, n, n.OrElse, "else clause")
	checkBeforeClause(p, n, n.FinalBody, "finally clause")
}

// checkBeforeClause checks the line above a clause header such as "else:".
// The scan starts two lines above the clause's first statement to step over
// the header and stops at the owner's first line.
func checkBeforeClause(p *lint.Pass, owner *syntax.Node, slot []*syntax.Node, what string) {
	if len(slot) == 0 {
		return
	}
	first := slot[0]
	if !blankAbove(p, first.StartLine-2, owner.StartLine) {
		p.Reportf(first.StartLine, first.StartCol, beforeMessage, what)
	}
}

// blankAbove walks up from cursor past comment lines, never going below
// floor, and reports whether it lands on a blank line.
func blankAbove(p *lint.Pass, cursor, floor int) bool {
	for cursor > floor && p.Lines.IsComment(cursor) {
		cursor--
	}
	return p.Lines.IsBlank(cursor)
}
