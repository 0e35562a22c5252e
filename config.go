package confctl

// Syntax carries the per-file syntax toggles from spec.md §6.1. All
// flags default to off; shell-style "#...\n" comments and both quote
// styles are always recognized regardless of these flags.
type Syntax struct {
	// EqualsSign gives newly added leaves " = " between name and value
	// instead of a single space. The lexer does not read it: whether or
	// not it is set, '=' (with any surrounding spaces) and plain
	// whitespace are both accepted as the separator, and whitespace
	// always ends a name.
	EqualsSign bool

	// Semicolon requires ';' to terminate a leaf; when false, a bare
	// newline terminates it.
	Semicolon bool

	// SlashSlashComments recognizes "//...\n" as comment trivia.
	SlashSlashComments bool

	// SlashStarComments recognizes "/*...*/" as comment trivia.
	SlashStarComments bool

	// RewriteInPlace uses the advisory-locked in-place save instead of
	// the default atomic temp-file-and-rename save.
	RewriteInPlace bool
}
