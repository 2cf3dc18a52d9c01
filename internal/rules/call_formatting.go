package rules

import (
	"nwlint/internal/lint"
	"nwlint/internal/syntax"
)

// CallFormatting requires a call's arguments to be either all on one line or
// one per line.
var CallFormatting = &lint.Rule{
	Code: "NWL101",
	Name: "call-formatting",
	Doc:  "call arguments are all on one line or each on its own line",
	Handlers: map[syntax.Kind]lint.Handler{
		syntax.KindCall: checkCallFormatting,
	},
}

func checkCallFormatting(p *lint.Pass, n *syntax.Node) {
	if !consistentLayout(argumentLines(n)) {
		p.Reportf(n.StartLine, n.StartCol, "Inconsistent Function call detected. Split each argument into a new line")
	}
}

// argumentLines returns the start line of every positional argument followed
// by every keyword argument. A keyword starts at its name, not its value.
func argumentLines(call *syntax.Node) []int {
	lines := make([]int, 0, len(call.Args)+len(call.Keywords))
	for _, a := range call.Args {
		lines = append(lines, a.StartLine)
	}
	for _, kw := range call.Keywords {
		lines = append(lines, kw.StartLine)
	}
	return lines
}

func consistentLayout(lines []int) bool {
	if len(lines) == 0 {
		return true
	}
	distinct := make(map[int]struct{}, len(lines))
	for _, l := range lines {
		distinct[l] = struct{}{}
	}
	return len(distinct) == 1 || len(distinct) == len(lines)
}
