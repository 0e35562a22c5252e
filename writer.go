package confctl

import "bytes"

// writeNode implements cv_print_c: a depth-first, trivia-preserving
// emit. Hidden (Filter's visibility mark) is not consulted here: file
// rewrite emits every node, and only the query-output path (Leaves)
// skips hidden ones.
func writeNode(buf *bytes.Buffer, n *Node) {
	buf.Write(n.Before)
	buf.WriteString(n.Name)
	buf.Write(n.Middle)
	for _, c := range n.Children {
		writeNode(buf, c)
	}
	if n.IsLeaf() {
		buf.WriteString(n.ValueString())
	}
	buf.Write(n.After)
}

// writeRoot renders root's subtree back to the byte-for-byte source it
// parsed from (modulo any edits made since), per confctl_print_c.
func writeRoot(root *Node) []byte {
	var buf bytes.Buffer
	for _, c := range root.Children {
		writeNode(&buf, c)
	}
	buf.Write(root.After)
	return buf.Bytes()
}

// Leaf names one visible leaf reached while walking for query output:
// its path (the raw, unescaped names of its containers followed by its
// own name) and its raw value. Escaping these for "key=value" line output and joining them
// with '.' is the external collaborator's job (spec.md §1, §6.3) —
// the core only supplies the unescaped structure.
type Leaf struct {
	Path  []string
	Value string
}

// collectLeaves implements the traversal half of cv_print_lines
// (everything except buf_vis/the final formatting, which belong to the
// CLI): walk n's visible children depth-first, appending a Leaf for
// each visible value-bearing node reached, with prefix carrying the
// dotted container path built up so far.
func collectLeaves(n *Node, prefix []string, out *[]Leaf) {
	if n.Hidden {
		return
	}
	if n.IsContainer() {
		path := append(append([]string(nil), prefix...), n.Name)
		for _, c := range n.Children {
			collectLeaves(c, path, out)
		}
		return
	}
	*out = append(*out, Leaf{Path: append(append([]string(nil), prefix...), n.Name), Value: n.ValueString()})
}

// visibleLeaves returns every visible leaf under root, in document
// order, for query-mode output.
func visibleLeaves(root *Node) []Leaf {
	var out []Leaf
	for _, c := range root.Children {
		collectLeaves(c, nil, &out)
	}
	return out
}
