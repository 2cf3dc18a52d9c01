package syntax

// Walk visits every node reachable from root breadth-first, root first.
// Deeper nodes are always visited after the nodes that contain them.
func Walk(root *Node, fn func(*Node)) {
	if root == nil {
		return
	}
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		fn(n)
		queue = append(queue, n.Children()...)
	}
}

// Enclosing returns the innermost node whose span strictly contains n: the
// last node in Walk order that starts on an earlier line and ends on the
// same or a later line. The module root is never a candidate and is
// returned when nothing else qualifies. The whole tree is scanned on every
// call.
func Enclosing(root, n *Node) *Node {
	parent := root
	Walk(root, func(c *Node) {
		if c.Kind == KindModule {
			return
		}
		if c.StartLine < n.StartLine && c.EndLine >= n.EndLine {
			parent = c
		}
	})
	return parent
}

// IsFirstChild reports whether n is, by identity, the first element of one
// of parent's body, orelse, finalbody or handlers slots.
func IsFirstChild(parent, n *Node) bool {
	if parent == nil || n == nil {
		return false
	}
	for _, slot := range [][]*Node{parent.Body, parent.OrElse, parent.FinalBody, parent.Handlers} {
		if len(slot) > 0 && slot[0] == n {
			return true
		}
	}
	return false
}
