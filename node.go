package confctl

// Node is a single element of a parsed configuration tree: either a
// container (Value == nil, zero or more Children) or a leaf (Value set,
// never has children). Before/Middle/After hold the exact trivia bytes
// captured around Name so that an untouched subtree re-emits byte for
// byte (spec: Data Model, Node).
type Node struct {
	Name     string
	Value    *string
	Children []*Node
	Parent   *Node

	Before []byte
	Middle []byte
	After  []byte

	// ImplicitContainer is true when the source wrote "a b { ... }":
	// this node is a synthetic container whose sole original child came
	// from what looked like this node's value. Remove cascades through
	// it once it becomes childless.
	ImplicitContainer bool

	// NeedsReindent is set by reparent on nodes moved into the tree
	// (which is how Merge attaches new nodes); Merge then derives fresh
	// trivia for them via reindentNeeded. Value overwrites and parents
	// gaining their first child are not flagged, and the writer does
	// not consult it.
	NeedsReindent bool

	// Hidden is the query-time visibility mark toggled by Filter. It
	// never affects file rewrite, only the line-output path.
	Hidden bool
}

// newRoot builds the synthetic root container that owns all top-level
// nodes. It carries no trivia of its own and is never emitted as an
// element; only its Children and After (trailing EOF junk) are written.
func newRoot() *Node {
	return &Node{Name: "<root>"}
}

// IsContainer reports whether n has no value (and therefore may hold
// children). A container with no children yet is still a container.
func (n *Node) IsContainer() bool {
	return n.Value == nil
}

// IsLeaf reports whether n carries a value.
func (n *Node) IsLeaf() bool {
	return n.Value != nil
}

// SetValue assigns a leaf value in place, leaving Middle/After exactly
// as parsed. It does not set NeedsReindent: an overwritten leaf keeps
// its original trivia the same way mergeExisting does when updating a
// matched node, rather than being rewritten as if newly attached.
func (n *Node) SetValue(v string) {
	n.Value = &v
}

// ValueString returns the node's value, or "" for a container.
func (n *Node) ValueString() string {
	if n.Value == nil {
		return ""
	}
	return *n.Value
}

// appendChild appends c as the last child of n, setting the parent
// back-reference. It does not touch trivia; callers that attach a
// freshly created node should also set NeedsReindent.
func (n *Node) appendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// removeChild unlinks c from n's child list. It is a no-op if c is not
// a child of n.
func (n *Node) removeChild(c *Node) {
	for i, ch := range n.Children {
		if ch == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// reparent moves c from its current parent (if any) to be the new last
// child of n, and flags it for reindent — a move across a
// differently-indented parent must become internally consistent.
func (n *Node) reparent(c *Node) {
	if c.Parent != nil {
		c.Parent.removeChild(c)
	}
	n.appendChild(c)
	c.NeedsReindent = true
}

// Walk visits n and its descendants depth-first, pre-order. Returning
// false from fn stops the walk early (and aborts ancestors' loops too).
func Walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// Find returns every descendant of n (n itself included) matching pred.
func Find(n *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	Walk(n, func(m *Node) bool {
		if pred(m) {
			out = append(out, m)
		}
		return true
	})
	return out
}
