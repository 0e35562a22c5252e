package confctl

// parsePath implements spec.md §5.1: it turns a CLI-style expression
// such as "acl.trusted" or "acl.trusted=10/8" into a detached chain of
// single-child Nodes rooted at a synthetic root, mirroring
// confctl_var_from_line's behavior of building one node per
// dot-separated segment and, if an unescaped top-level '=' is seen,
// treating everything after it as the final segment's value.
//
// Quoting and escaping follow the same rules as the lexer's
// readName/readValue: a backslash escapes the next byte literally, and
// '"'/'\'' toggle quoted regions in which '.' and '=' lose their
// special meaning. Vis-style mnemonic escapes (\n, \t, \xHH) are not
// decoded here — the CLI front-end's unescapeC (cmd/confctl/escape.go)
// runs over the raw expression first, so by the time it reaches
// parsePath only structural backslash-escapes of '.', '=', '\''
// remain (a backslash-escaped '"' has already been decoded to a bare
// quote by then).
func parsePath(expr string) (*Node, error) {
	root := newRoot()
	parent := root

	b := newBuf()
	var quoted, squoted, escaped bool

	finishSegment := func() *Node {
		n := &Node{Name: b.String(), Middle: []byte(" ")}
		parent.appendChild(n)
		b = newBuf()
		return n
	}

	i := 0
	for i < len(expr) {
		ch := expr[i]
		i++

		if escaped {
			b.append(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if !squoted && ch == '"' {
			quoted = !quoted
			continue
		}
		if !quoted && ch == '\'' {
			squoted = !squoted
			continue
		}
		if quoted || squoted {
			b.append(ch)
			continue
		}
		if ch == '.' {
			if b.len() == 0 {
				return nil, &PathError{Expr: expr, Msg: "empty path segment"}
			}
			parent = finishSegment()
			continue
		}
		if ch == '=' {
			if b.len() == 0 {
				return nil, &PathError{Expr: expr, Msg: "empty path segment before '='"}
			}
			leaf := finishSegment()
			value := expr[i:]
			leaf.Value = &value
			return root, nil
		}
		b.append(ch)
	}
	if escaped {
		return nil, &PathError{Expr: expr, Msg: "trailing backslash"}
	}
	if quoted || squoted {
		return nil, &PathError{Expr: expr, Msg: "unterminated quote"}
	}
	if b.len() == 0 {
		return nil, &PathError{Expr: expr, Msg: "empty path segment"}
	}
	finishSegment()
	return root, nil
}

// ParsePath exports parsePath for callers outside the package (the
// cmd/confctl front-end's -w/-x expressions and positional filter
// names). Merge rejects a value where a container was expected, and
// Remove/Filter reject any chain that carries a value at all, so a
// single parse function serves all three call sites — exactly as
// confctl_var_from_line serves every caller in the original.
func ParsePath(expr string) (*Node, error) {
	return parsePath(expr)
}
