package lexer

import (
	"testing"

	"github.com/hgoncalo/pascalsvm/internal/token"
)

func TestNextToken_IntegerLiteral(t *testing.T) {
	toks := collect(t, "123")
	if toks[0].Type != token.INTEGER || toks[0].Literal != "123" {
		t.Fatalf("got %v", toks[0])
	}
	if v, ok := toks[0].Value.(int); !ok || v != 123 {
		t.Fatalf("expected decoded Value=123, got %#v", toks[0].Value)
	}
}

func TestNextToken_RealLiteral(t *testing.T) {
	cases := []string{"1.5", "0.0", "3.14159", "1.0e10", "1.0E+5", "1.0e-3"}
	for _, c := range cases {
		toks := collect(t, c)
		if toks[0].Type != token.REAL {
			t.Errorf("%q: got %s, want REAL", c, toks[0].Type)
		}
		if _, ok := toks[0].Value.(float64); !ok {
			t.Errorf("%q: expected decoded float64 Value, got %#v", c, toks[0].Value)
		}
	}
}

func TestNextToken_IntegerDotDotNotReal(t *testing.T) {
	// "1..3" must tokenize as INTEGER, DOTDOT, INTEGER, not as a malformed real.
	toks := collect(t, "1..3")
	want := []token.Type{token.INTEGER, token.DOTDOT, token.INTEGER, token.EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
	if toks[0].Literal != "1" || toks[2].Literal != "3" {
		t.Errorf("unexpected literals: %q, %q", toks[0].Literal, toks[2].Literal)
	}
}

func TestNextToken_ArrayRangeDeclaration(t *testing.T) {
	toks := collect(t, "array[1..3] of integer")
	foundDotDot := false
	for _, tok := range toks {
		if tok.Type == token.DOTDOT {
			foundDotDot = true
		}
	}
	if !foundDotDot {
		t.Fatalf("expected a DOTDOT token in %v", toks)
	}
}
