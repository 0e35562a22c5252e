package confctl

import "fmt"

// LexError reports a fatal lexical failure: premature EOF inside a
// quoted name/value, or an unterminated /* comment.
type LexError struct {
	Offset int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at byte %d: %s", e.Offset, e.Msg)
}

// PathError reports a malformed path expression ("a.b.c" or "a.b=v"):
// an empty segment, a trailing backslash, or an unterminated quote. A
// value present where a pure path was required is reported by Remove
// and Filter (RemoveError, FilterError), not by the path parser.
type PathError struct {
	Expr string
	Msg  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Expr, e.Msg)
}

// MergeError reports a merge-time type conflict: an attempt to
// overwrite a container node with a leaf value. Only that direction is
// reported; merging a longer path through an existing leaf is not an
// error.
type MergeError struct {
	Name string
	Msg  string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("cannot merge %q: %s", e.Name, e.Msg)
}

// RemoveError reports that a removal chain carried a value where a
// pure path was required.
type RemoveError struct {
	Msg string
}

func (e *RemoveError) Error() string { return "remove: " + e.Msg }

// FilterError reports that a filter chain carried a value where a pure
// path was required.
type FilterError struct {
	Msg string
}

func (e *FilterError) Error() string { return "filter: " + e.Msg }
