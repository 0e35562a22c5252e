package confctl

// lexer is a streaming byte reader with unget (push-back) capability,
// matching the original C implementation's getc/ungetc-driven scanner
// (libconfctl.c buf_read_before/name/middle/value/after, cv_load) but
// reading from an in-memory slice so push-back isn't limited to one
// byte — needed for the implicit-container reparse of spec.md §4.2
// case 3.
type lexer struct {
	src    []byte
	pos    int
	unget  []byte // LIFO stack of bytes to return before src[pos:]
	syntax Syntax
}

func newLexer(src []byte, syn Syntax) *lexer {
	return &lexer{src: src, syntax: syn}
}

func (l *lexer) next() (byte, bool) {
	if n := len(l.unget); n > 0 {
		ch := l.unget[n-1]
		l.unget = l.unget[:n-1]
		return ch, true
	}
	if l.pos >= len(l.src) {
		return 0, false
	}
	ch := l.src[l.pos]
	l.pos++
	return ch, true
}

// ungetByte pushes ch back so the next call to next() returns it.
func (l *lexer) ungetByte(ch byte) {
	l.unget = append(l.unget, ch)
}

// offset is an approximate byte offset for error messages: exact for
// bytes read straight from src, slightly optimistic while bytes sit on
// the unget stack (acceptable for diagnostics, not relied on for logic).
func (l *lexer) offset() int {
	return l.pos - len(l.unget)
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isNewline(ch byte) bool { return ch == '\n' || ch == '\r' }

// consumeBlockComment appends bytes to b until and including the
// closing "*/", given that the opening "/*" has already been appended.
// Returns a *LexError on premature EOF.
func (l *lexer) consumeBlockComment(b *buf) error {
	prevStar := false
	for {
		ch, ok := l.next()
		if !ok {
			return &LexError{Offset: l.offset(), Msg: "unterminated /* comment"}
		}
		b.append(ch)
		if prevStar && ch == '/' {
			return nil
		}
		prevStar = ch == '*'
	}
}

// peekComment reports whether the next one or two bytes start a
// recognized comment ('#' always; "//" and "/*" when their syntax
// flags are enabled). It pushes every byte it peeked back onto the
// stream, so callers that do treat them as a comment consume them
// themselves.
type commentKind int

const (
	commentNone commentKind = iota
	commentShell
	commentSlashSlash
	commentSlashStar
)

func (l *lexer) peekComment() commentKind {
	ch, ok := l.next()
	if !ok {
		return commentNone
	}
	if ch == '#' {
		l.ungetByte(ch)
		return commentShell
	}
	if ch != '/' {
		l.ungetByte(ch)
		return commentNone
	}
	ch2, ok2 := l.next()
	if !ok2 {
		l.ungetByte(ch)
		return commentNone
	}
	switch {
	case ch2 == '/' && l.syntax.SlashSlashComments:
		l.ungetByte(ch2)
		l.ungetByte(ch)
		return commentSlashSlash
	case ch2 == '*' && l.syntax.SlashStarComments:
		l.ungetByte(ch2)
		l.ungetByte(ch)
		return commentSlashStar
	default:
		l.ungetByte(ch2)
		l.ungetByte(ch)
		return commentNone
	}
}

// readBefore implements spec.md §4.2 read-before: accumulates
// whitespace, ';', shell/C comments as trivia. A '}' here belongs to
// the parent's close; it is accumulated, read greedily up to (not
// including) the next newline, and reported via closingBracket so the
// caller treats this buffer as the parent's After.
func (l *lexer) readBefore() (data []byte, closingBracket bool, err error) {
	b := newBuf()
	noNewline := false

	for {
		ch, ok := l.next()
		if !ok {
			return b.bytes(), true, nil
		}
		if noNewline && (ch == '\n' || ch == '\r' || ch == '}') {
			l.ungetByte(ch)
			break
		}
		switch {
		case ch == '#':
			b.append(ch)
			l.consumeLineComment(b)
			continue
		case ch == '/':
			l.ungetByte(ch)
			switch l.peekComment() {
			case commentSlashSlash:
				l.next()
				l.next()
				b.append('/')
				b.append('/')
				l.consumeLineComment(b)
				continue
			case commentSlashStar:
				l.next()
				l.next()
				b.append('/')
				b.append('*')
				if err := l.consumeBlockComment(b); err != nil {
					return nil, false, err
				}
				continue
			default:
				l.next()
			}
		case ch == '}':
			noNewline = true
			closingBracket = true
			b.append(ch)
			continue
		case isSpace(ch) || ch == ';':
			b.append(ch)
			continue
		}
		l.ungetByte(ch)
		break
	}
	return b.bytes(), closingBracket, nil
}

// consumeLineComment appends bytes up to (not including) the next
// newline, leaving the newline itself unconsumed.
func (l *lexer) consumeLineComment(b *buf) {
	for {
		ch, ok := l.next()
		if !ok {
			return
		}
		if isNewline(ch) {
			l.ungetByte(ch)
			return
		}
		b.append(ch)
	}
}

// readName implements spec.md §4.2 read-name: reads until an unquoted
// separator (whitespace, '=', '#', ';', '{', '}', newline, or a
// detected comment start), honoring quote/escape state.
func (l *lexer) readName() ([]byte, error) {
	b := newBuf()
	var quoted, squoted, escaped bool

	for {
		ch, ok := l.next()
		if !ok {
			if quoted || squoted {
				return nil, &LexError{Offset: l.offset(), Msg: "premature end of file in quoted name"}
			}
			break
		}
		if escaped {
			b.append(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			b.append(ch)
			escaped = true
			continue
		}
		if !squoted && ch == '"' {
			quoted = !quoted
			b.append(ch)
			continue
		}
		if !quoted && ch == '\'' {
			squoted = !squoted
			b.append(ch)
			continue
		}
		if quoted || squoted {
			b.append(ch)
			continue
		}
		if isSpace(ch) || ch == '=' || ch == '#' || ch == ';' || ch == '{' || ch == '}' {
			l.ungetByte(ch)
			break
		}
		if ch == '/' {
			l.ungetByte(ch)
			if l.peekComment() != commentNone {
				break
			}
			l.next()
		}
		b.append(ch)
	}
	return b.bytes(), nil
}

// readMiddle implements spec.md §4.2 read-middle: accumulates
// whitespace, '=', and a single '{'; '\' + newline is preserved here,
// any other escape is pushed back (it belongs to value).
func (l *lexer) readMiddle() (data []byte, openingBracket bool, err error) {
	b := newBuf()
	for {
		ch, ok := l.next()
		if !ok {
			break
		}
		if ch == '\\' {
			ch2, ok2 := l.next()
			if ok2 && isNewline(ch2) {
				b.append(ch)
				b.append(ch2)
				continue
			}
			if ok2 {
				l.ungetByte(ch2)
			}
			l.ungetByte(ch)
			break
		}
		if !l.syntax.Semicolon && isNewline(ch) {
			l.ungetByte(ch)
			for b.len() > 0 {
				last := b.last()
				if !isSpace(last) && last != '=' {
					break
				}
				b.stripLast()
				l.ungetByte(last)
			}
			break
		}
		if l.syntax.Semicolon && (ch == '#' || ch == ';') {
			l.ungetByte(ch)
			for b.len() > 0 {
				last := b.last()
				if !isSpace(last) && last != '=' {
					break
				}
				b.stripLast()
				l.ungetByte(last)
			}
			break
		}
		if ch == '{' && !openingBracket {
			openingBracket = true
			b.append(ch)
			continue
		}
		if isSpace(ch) || ch == '=' {
			b.append(ch)
			continue
		}
		l.ungetByte(ch)
		break
	}
	return b.bytes(), openingBracket, nil
}

// readValue implements spec.md §4.2 read-value: like read-name but
// also terminates on '{', '}', newline (unless in semicolon mode), and
// an unquoted comment start; reports opening-bracket when it stops on
// '{' (the case-3 signal). Trailing whitespace before the terminator
// migrates back onto the stream.
func (l *lexer) readValue() (data []byte, openingBracket bool, err error) {
	b := newBuf()
	var quoted, squoted, escaped bool

	for {
		ch, ok := l.next()
		if !ok {
			if quoted || squoted {
				return nil, false, &LexError{Offset: l.offset(), Msg: "premature end of file in quoted value"}
			}
			break
		}
		if escaped {
			b.append(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			b.append(ch)
			escaped = true
			continue
		}
		if !squoted && ch == '"' {
			quoted = !quoted
			b.append(ch)
			continue
		}
		if !quoted && ch == '\'' {
			squoted = !squoted
			b.append(ch)
			continue
		}
		if quoted || squoted {
			b.append(ch)
			continue
		}

		stripTrailingSpace := func() {
			for b.len() > 0 && isSpace(b.last()) {
				last := b.last()
				b.stripLast()
				l.ungetByte(last)
			}
		}

		if ch == '{' || ch == '}' || ch == '#' || ch == ';' || (!l.syntax.Semicolon && isNewline(ch)) {
			if ch == '{' {
				openingBracket = true
			}
			l.ungetByte(ch)
			stripTrailingSpace()
			break
		}
		if ch == '/' {
			l.ungetByte(ch)
			if l.peekComment() != commentNone {
				// peekComment already left ch (and any lookahead
				// byte) unread on the stream.
				stripTrailingSpace()
				break
			}
			l.next()
		}
		b.append(ch)
	}
	return b.bytes(), openingBracket, nil
}

// readAfter implements spec.md §4.2 read-after: accumulates
// whitespace (excluding newline), ';', and inline comments up to (but
// not including) the next newline.
func (l *lexer) readAfter() ([]byte, error) {
	b := newBuf()
	for {
		ch, ok := l.next()
		if !ok {
			break
		}
		if isNewline(ch) {
			l.ungetByte(ch)
			break
		}
		if ch == '#' {
			b.append(ch)
			l.consumeLineComment(b)
			continue
		}
		if ch == '/' {
			l.ungetByte(ch)
			switch l.peekComment() {
			case commentSlashSlash:
				l.next()
				l.next()
				b.append('/')
				b.append('/')
				l.consumeLineComment(b)
				continue
			case commentSlashStar:
				l.next()
				l.next()
				b.append('/')
				b.append('*')
				if err := l.consumeBlockComment(b); err != nil {
					return nil, err
				}
				continue
			default:
				l.next()
			}
		}
		if isSpace(ch) || ch == ';' {
			b.append(ch)
			continue
		}
		l.ungetByte(ch)
		break
	}
	return b.bytes(), nil
}

// readNodeBody parses the middle/(value|children)/after sequence for
// cur, whose name has already been read, looping to absorb any
// number of chained implicit-container levels (spec.md §4.2 case 3:
// "a b c { ... }" nests three deep).
func (l *lexer) readNodeBody(cur *Node) error {
	for {
		middle, openingBracket, err := l.readMiddle()
		if err != nil {
			return err
		}
		cur.Middle = middle

		if openingBracket {
			for {
				child := &Node{}
				done, err := l.readNode(cur, child)
				if err != nil {
					return err
				}
				if done {
					break
				}
			}
			return nil
		}

		value, valueOpeningBracket, err := l.readValue()
		if err != nil {
			return err
		}
		if !valueOpeningBracket {
			v := string(value)
			cur.Value = &v
			after, err := l.readAfter()
			if err != nil {
				return err
			}
			cur.After = after
			return nil
		}

		// Case 3: what looked like a value is actually the next
		// implicit level's name (or several). readValue already left
		// the '{' and the whitespace before it unread; push the value
		// bytes back in front of them, read the next name afresh,
		// chain it in as a new child, and keep looping on that child.
		cur.ImplicitContainer = true
		cur.Value = nil
		for i := len(value) - 1; i >= 0; i-- {
			l.ungetByte(value[i])
		}
		name, err := l.readName()
		if err != nil {
			return err
		}
		child := &Node{Name: string(name)}
		cur.appendChild(child)
		cur = child
	}
}

// readNode parses one child of parent starting at parent's current
// cursor position. It returns done=true (with parent.After populated)
// when the closing brace (or EOF) for parent was reached instead of a
// new node.
func (l *lexer) readNode(parent *Node, cur *Node) (done bool, err error) {
	before, closingBracket, err := l.readBefore()
	if err != nil {
		return false, err
	}
	if closingBracket {
		parent.After = before
		return true, nil
	}

	name, err := l.readName()
	if err != nil {
		return false, err
	}
	cur.Name = string(name)
	cur.Before = before
	parent.appendChild(cur)

	if err := l.readNodeBody(cur); err != nil {
		return false, err
	}
	return false, nil
}

// Parse reads src into a tree of Nodes under a synthetic root per
// spec.md §3 (Root node).
func Parse(src []byte, syn Syntax) (*File, error) {
	l := newLexer(src, syn)
	root := newRoot()
	for {
		child := &Node{}
		done, err := l.readNode(root, child)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return &File{root: root, syntax: syn}, nil
}
