package confctl

// filterMatching implements cv_filter: for every child of cv, decide
// whether it survives the filter chain rooted at filter — a leaf-level
// filter segment with no children of its own matches any child by
// name alone ("show everything under acl.trusted"); one with children
// requires at least one of them to recursively match one of the
// child's own children too. Non-matching children are marked Hidden;
// matching ones are un-hidden so a previous Filter call's marks don't
// linger. Returns whether cv's own name matched filter's, so a caller
// one level up knows whether recursion here applies at all.
func filterMatching(cv, filter *Node) bool {
	if cv.Name != filter.Name {
		return false
	}

	for _, child := range cv.Children {
		var found bool
		if len(filter.Children) == 0 {
			found = true
		} else {
			for _, filterchild := range filter.Children {
				if filterMatching(child, filterchild) {
					found = true
				}
			}
		}
		child.Hidden = !found
	}
	return true
}

// Filter marks n's subtree's visibility (spec.md §5.4) according to the
// detached chain rooted at filter: everything not reachable by
// following filter's path is hidden from query-mode output, without
// altering the tree or the file it would round-trip to. filter must
// carry no value at any node; since parsePath accepts an '='-bearing
// expression just as happily as a bare one, Filter re-checks this
// itself rather than trusting the caller to have screened it out.
func Filter(n, filter *Node) error {
	if len(Find(filter, func(m *Node) bool { return m.IsLeaf() })) > 0 {
		return &FilterError{Msg: "filter must not specify a value"}
	}
	if !filterMatching(n, filter) {
		return &FilterError{Msg: "filter root name mismatch"}
	}
	return nil
}
