package syntax

// Kind identifies the category of a syntax node. The set is closed: the
// parser adapter folds everything the rules never inspect into Statement
// or Expr.
type Kind int

const (
	KindModule Kind = iota
	KindFunctionDef
	KindAsyncFunctionDef
	KindClassDef
	KindIf
	KindFor
	KindAsyncFor
	KindWhile
	KindTry
	KindExceptHandler
	KindWith
	KindAsyncWith
	KindMatch
	KindMatchCase
	KindReturn
	KindRaise
	KindBreak
	KindContinue
	KindAssert
	KindPass
	KindAssign
	KindExprStmt
	KindImport
	KindDelete
	KindGlobal
	KindStatement

	KindCall
	KindKeyword
	KindName
	KindAttribute
	KindStr
	KindBytes
	KindFormattedStr
	KindStarred
	KindExpr
)

var kindNames = [...]string{
	KindModule:           "Module",
	KindFunctionDef:      "FunctionDef",
	KindAsyncFunctionDef: "AsyncFunctionDef",
	KindClassDef:         "ClassDef",
	KindIf:               "If",
	KindFor:              "For",
	KindAsyncFor:         "AsyncFor",
	KindWhile:            "While",
	KindTry:              "Try",
	KindExceptHandler:    "ExceptHandler",
	KindWith:             "With",
	KindAsyncWith:        "AsyncWith",
	KindMatch:            "Match",
	KindMatchCase:        "MatchCase",
	KindReturn:           "Return",
	KindRaise:            "Raise",
	KindBreak:            "Break",
	KindContinue:         "Continue",
	KindAssert:           "Assert",
	KindPass:             "Pass",
	KindAssign:           "Assign",
	KindExprStmt:         "Expr",
	KindImport:           "Import",
	KindDelete:           "Delete",
	KindGlobal:           "Global",
	KindStatement:        "Statement",
	KindCall:             "Call",
	KindKeyword:          "Keyword",
	KindName:             "Name",
	KindAttribute:        "Attribute",
	KindStr:              "Str",
	KindBytes:            "Bytes",
	KindFormattedStr:     "JoinedStr",
	KindStarred:          "Starred",
	KindExpr:             "Expression",
}

// String returns the grammar class name of the kind, e.g. "FunctionDef".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// IsStatement reports whether nodes of this kind appear in statement slots.
func (k Kind) IsStatement() bool {
	return k <= KindStatement
}

// Node is a single element of a parsed source file. Lines are 1-based and
// columns are 0-based byte offsets; both ends of the span are inclusive
// lines. Nodes are built once by the parser and never mutated afterwards.
type Node struct {
	Kind      Kind
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int

	// Head holds header expressions (conditions, targets, decorators,
	// assigned values, ...) in source order.
	Head []*Node

	Body      []*Node
	Handlers  []*Node // Try only
	OrElse    []*Node
	FinalBody []*Node // Try only

	// Call slots.
	Func     *Node
	Args     []*Node
	Keywords []*Node

	// Msg is the message expression of an assertion, nil when absent.
	Msg *Node

	// Name is the identifier of Name nodes, the attribute of Attribute
	// nodes, the argument name of Keyword nodes and the defined name of
	// FunctionDef/ClassDef nodes.
	Name string

	// Value is the raw text between the quotes of Str and Bytes literals.
	Value string
}

// Children returns the direct children of n in traversal order: header
// expressions, call slots, the assertion message, then the statement slots
// in the order body, handlers, orelse, finalbody.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Head)+len(n.Args)+len(n.Keywords)+len(n.Body)+len(n.Handlers)+len(n.OrElse)+len(n.FinalBody)+2)
	out = append(out, n.Head...)
	if n.Func != nil {
		out = append(out, n.Func)
	}
	out = append(out, n.Args...)
	out = append(out, n.Keywords...)
	if n.Msg != nil {
		out = append(out, n.Msg)
	}
	out = append(out, n.Body...)
	out = append(out, n.Handlers...)
	out = append(out, n.OrElse...)
	out = append(out, n.FinalBody...)
	return out
}

// CalleeName returns the bare or attribute name a call invokes, and false
// for any other callee shape (subscripts, calls, lambdas, ...).
func (n *Node) CalleeName() (string, bool) {
	if n == nil || n.Kind != KindCall || n.Func == nil {
		return "", false
	}
	switch n.Func.Kind {
	case KindName, KindAttribute:
		return n.Func.Name, true
	}
	return "", false
}
