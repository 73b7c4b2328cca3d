package calc

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	num := func(text string, v float64, pos int) Token {
		return Token{Kind: TokenNum, Text: text, Num: v, Pos: pos}
	}
	id := func(text string, pos int) Token {
		return Token{Kind: TokenIdent, Text: text, Pos: pos}
	}
	op := func(text string, pos int, unary bool) Token {
		return Token{Kind: TokenOp, Text: text, Pos: pos, Unary: unary}
	}
	open := func(text string, pos int) Token {
		return Token{Kind: TokenOpen, Text: text, Pos: pos}
	}
	close := func(text string, pos int) Token {
		return Token{Kind: TokenClose, Text: text, Pos: pos}
	}
	cases := []struct {
		src    string
		tokens []Token
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// numbers
		{"0", []Token{num("0", 0, 1)}},
		{"9876543210", []Token{num("9876543210", 9876543210, 1)}},
		{"1 0", []Token{num("1", 1, 1), num("0", 0, 3)}},
		{"1.0", []Token{num("1.0", 1, 1)}},
		{"-1", []Token{op("-", 1, true), num("1", 1, 2)}},
		{"1e1", []Token{num("1e1", 10, 1)}},
		{"1e+1", []Token{num("1e+1", 10, 1)}},
		{"1e-1", []Token{num("1e-1", 0.1, 1)}},
		{"1E2", []Token{num("1E2", 100, 1)}},
		{"1.0e1", []Token{num("1.0e1", 10, 1)}},
		{".1", []Token{num(".1", 0.1, 1)}},
		{".1e1", []Token{num(".1e1", 1, 1)}},
		{"1.", []Token{num("1.", 1, 1)}},
		{"1e+21", []Token{num("1e+21", 1e21, 1)}},
		{"1e-400", []Token{num("1e-400", 0, 1)}},
		{"1+0", []Token{num("1", 1, 1), op("+", 2, false), num("0", 0, 3)}},
		{"1e1+1", []Token{num("1e1", 10, 1), op("+", 4, false), num("1", 1, 5)}},
		{"1*0", []Token{num("1", 1, 1), op("*", 2, false), num("0", 0, 3)}},
		{"(1)", []Token{open("(", 1), num("1", 1, 2), close(")", 3)}},
		// identifiers
		{"e", []Token{id("e", 1)}},
		{"e1", []Token{id("e1", 1)}},
		{"π", []Token{id("π", 1)}},
		{"eπ", []Token{id("eπ", 1)}},
		{"_1234_", []Token{id("_1234_", 1)}},
		{"e(", []Token{id("e", 1), open("(", 2)}},
		{"sin 30", []Token{id("sin", 1), num("30", 30, 5)}},
		{"√4", []Token{id("√", 1), num("4", 4, 2)}},
		{"√√x", []Token{id("√", 1), id("√", 2), id("x", 3)}},
		{"x√", []Token{id("x", 1), id("√", 2)}},
		// operators
		{"+", []Token{op("+", 1, true)}},
		{"++", []Token{op("+", 1, true), op("+", 2, true)}},
		{"a--b", []Token{id("a", 1), op("-", 2, false), op("-", 3, true), id("b", 4)}},
		{"5*-3", []Token{num("5", 5, 1), op("*", 2, false), op("-", 3, true), num("3", 3, 4)}},
		{"2×3÷4", []Token{num("2", 2, 1), op("×", 2, false), num("3", 3, 3), op("÷", 4, false), num("4", 4, 5)}},
		{"2^-1", []Token{num("2", 2, 1), op("^", 2, false), op("-", 3, true), num("1", 1, 4)}},
		{"50%-3", []Token{num("50", 50, 1), op("%", 3, false), op("-", 4, false), num("3", 3, 5)}},
		{"(-x)", []Token{open("(", 1), op("-", 2, true), id("x", 3), close(")", 4)}},
		{"f(1,-2)", []Token{id("f", 1), open("(", 2), num("1", 1, 3), {Kind: TokenSep, Text: ",", Pos: 4}, op("-", 5, true), num("2", 2, 6), close(")", 7)}},
		// brackets
		{"()", []Token{open("(", 1), close(")", 2)}},
		{"[]", []Token{open("[", 1), close("]", 2)}},
		{"{}", []Token{open("{", 1), close("}", 2)}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("%q failed to tokenize: %v", c.src, err)
			}
			if len(toks) != len(c.tokens) {
				t.Fatalf("%q gave wrong tokens:\n\twant %v\n\tgot  %v", c.src, c.tokens, toks)
			}
			for i, tok := range toks {
				if tok != c.tokens[i] {
					t.Errorf("%q: wrong token %d: want %+v, got %+v", c.src, i, c.tokens[i], tok)
				}
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind string
		col  int
	}{
		{"1e", "number", 3},
		{"1e+", "number", 4},
		{"1.1.1", "number", 5},
		{"1..2", "number", 4},
		{".", "number", 2},
		{"1a", "number", 3},
		{"2π", "number", 3},
		{"1e1.5", "number", 5},
		{"$", "", 2},
		{"a$", "", 3},
		{"$a", "", 2},
		{"0$", "number", 3},
		{"2 = 3", "", 4},
		{"2;3", "number", 3},
		{"x!", "", 3},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if toks != nil {
				t.Errorf("%q gave tokens %v with error", c.src, toks)
			}
			var le *LexError
			if !errors.As(err, &le) {
				t.Fatalf("%q gave wrong error: want *LexError, got %#v", c.src, err)
			}
			if le.Kind != c.kind {
				t.Errorf("%q gave wrong error kind: want %q, got %q", c.src, c.kind, le.Kind)
			}
			if le.Pos() != c.col {
				t.Errorf("%q gave wrong error position: want %d, got %d (%v)", c.src, c.col, le.Pos(), err)
			}
		})
	}
}

func TestTokenizeOverflow(t *testing.T) {
	for _, src := range []string{"1e999", "2+1e400"} {
		_, err := Tokenize(src)
		if !errors.As(err, new(*OverflowError)) {
			t.Errorf("%q gave wrong error: want *OverflowError, got %#v", src, err)
		}
	}
}
