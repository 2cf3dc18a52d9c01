package rules

import (
	"sort"

	"nwlint/internal/lint"
	"nwlint/internal/syntax"
)

// builtinCalls may be called positionally.
var builtinCalls = map[string]struct{}{
	"append":     {},
	"len":        {},
	"set":        {},
	"isinstance": {},
	"type":       {},
	"print":      {},
	"open":       {},
	"split":      {},
	"endswith":   {},
	"hasattr":    {},
	"startswith": {},
	"getattr":    {},
}

// KeywordCall flags positional arguments passed to anything outside the
// builtin allow-list. Keyword arguments next to a positional one do not
// excuse it.
var KeywordCall = &lint.Rule{
	Code: "NWL102",
	Name: "keyword-call",
	Doc:  "non-builtin calls pass arguments by keyword",
	Handlers: map[syntax.Kind]lint.Handler{
		syntax.KindCall: checkKeywordCall,
	},
}

func checkKeywordCall(p *lint.Pass, n *syntax.Node) {
	if len(n.Args) == 0 {
		return
	}
	name, ok := n.CalleeName()
	if !ok {
		return
	}
	if _, builtin := builtinCalls[name]; builtin {
		return
	}
	p.Reportf(n.StartLine, n.StartCol, "Non builtin positional function call detected. Pass the call with keyword arguments")
}

// BuiltinCalls lists the names exempt from NWL102, sorted.
func BuiltinCalls() []string {
	names := make([]string, 0, len(builtinCalls))
	for name := range builtinCalls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
