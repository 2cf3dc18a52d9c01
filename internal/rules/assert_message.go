package rules

import (
	"nwlint/internal/lint"
	"nwlint/internal/syntax"
)

// AssertMessage flags assertions without an informative message.
var AssertMessage = &lint.Rule{
	Code: "NWL100",
	Name: "assert-message",
	Doc:  "assert statements carry a non-empty message",
	Handlers: map[syntax.Kind]lint.Handler{
		syntax.KindAssert: checkAssert,
	},
}

func checkAssert(p *lint.Pass, n *syntax.Node) {
	if hasEmptyMessage(n) {
		p.Reportf(n.StartLine, n.StartCol, "Empty assert message detected. Provide a descriptive message.")
	}
}

// hasEmptyMessage is syntactic: only a missing message or a literal "" is
// empty, whatever the message would evaluate to.
func hasEmptyMessage(n *syntax.Node) bool {
	if n.Msg == nil {
		return true
	}
	return n.Msg.Kind == syntax.KindStr && n.Msg.Value == ""
}
