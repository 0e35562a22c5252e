package confctl

import "testing"

// roundTripCases covers each of §4.2's three node shapes (bare leaf,
// explicit container, implicit container) plus the trivia edge cases
// called out in spec.md §8's concrete scenarios: shell comments,
// trailing inline comments, and equals-sign mode.
var roundTripCases = []struct {
	name string
	src  string
	syn  Syntax
}{
	{name: "empty file", src: ""},
	{name: "single leaf, newline terminated", src: "foo 1\nbar 2\n"},
	{name: "explicit container", src: "a { b { c 1 } }\n"},
	{name: "implicit container, one level", src: "on lan { addr 10.0.0.1 }\n"},
	{name: "implicit container, three levels", src: "a b c { d 1 }\n"},
	{name: "duplicate top-level names", src: "1 { foo }\n1 { bar }\n"},
	{name: "leading shell comment", src: "# top-level comment\nkey val # trailing\n"},
	{
		name: "equals-sign mode with quoted value",
		src:  "a = \"hello world\"\n",
		syn:  Syntax{EqualsSign: true},
	},
	{
		name: "semicolon mode",
		src:  "a 1; b 2;\n",
		syn:  Syntax{Semicolon: true},
	},
	{
		name: "slash-slash comment",
		src:  "a 1 // trailing\nb 2\n",
		syn:  Syntax{SlashSlashComments: true},
	},
	{
		name: "slash-star comment",
		src:  "a 1 /* block */\nb 2\n",
		syn:  Syntax{SlashStarComments: true},
	},
	{name: "single-quoted name with dot", src: "'a.b' 1\n"},
	{name: "escaped space in name", src: "a\\ b 1\n"},
	{name: "trailing junk after last close brace", src: "a { b 1 }\n\n\n"},
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range roundTripCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Parse([]byte(tc.src), tc.syn)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got := f.Bytes()
			if string(got) != tc.src {
				t.Fatalf("round trip mismatch:\n got:  %q\n want: %q", got, tc.src)
			}
		})
	}
}

// TestRoundTripStableFixedPoint checks spec.md §8 property 1's second
// half: re-parsing the emitted bytes and re-emitting again reaches a
// fixed point matching the first emit.
func TestRoundTripStableFixedPoint(t *testing.T) {
	for _, tc := range roundTripCases {
		t.Run(tc.name, func(t *testing.T) {
			f1, err := Parse([]byte(tc.src), tc.syn)
			if err != nil {
				t.Fatalf("first Parse: %v", err)
			}
			once := f1.Bytes()

			f2, err := Parse(once, tc.syn)
			if err != nil {
				t.Fatalf("second Parse: %v", err)
			}
			twice := f2.Bytes()

			if string(once) != string(twice) {
				t.Fatalf("not a fixed point:\n once:  %q\n twice: %q", once, twice)
			}
		})
	}
}

func TestImplicitContainerThreeLevelsShape(t *testing.T) {
	f, err := Parse([]byte("a b c { d 1 }\n"), Syntax{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := f.Root()
	if len(root.Children) != 1 || root.Children[0].Name != "a" {
		t.Fatalf("expected single top-level node 'a', got %+v", root.Children)
	}
	a := root.Children[0]
	if !a.ImplicitContainer || len(a.Children) != 1 || a.Children[0].Name != "b" {
		t.Fatalf("expected implicit container a->b, got %+v", a)
	}
	b := a.Children[0]
	if !b.ImplicitContainer || len(b.Children) != 1 || b.Children[0].Name != "c" {
		t.Fatalf("expected implicit container b->c, got %+v", b)
	}
	c := b.Children[0]
	if c.ImplicitContainer || len(c.Children) != 1 || c.Children[0].Name != "d" {
		t.Fatalf("expected explicit container c->d, got %+v", c)
	}
}

func TestLexErrorUnterminatedQuote(t *testing.T) {
	_, err := Parse([]byte("\"unterminated 1\n"), Syntax{})
	if err == nil {
		t.Fatal("expected a LexError for unterminated quote")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("expected *LexError, got %T: %v", err, err)
	}
}

func TestLexErrorUnterminatedBlockComment(t *testing.T) {
	_, err := Parse([]byte("a 1 /* unterminated\n"), Syntax{SlashStarComments: true})
	if err == nil {
		t.Fatal("expected a LexError for unterminated /* comment")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("expected *LexError, got %T: %v", err, err)
	}
}
