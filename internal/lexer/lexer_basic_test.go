package lexer

import (
	"testing"

	"github.com/hgoncalo/pascalsvm/internal/token"
)

func collect(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestNextToken_ProgramSkeleton(t *testing.T) {
	input := `program H; begin writeln('ola') end.`

	expected := []token.Type{
		token.PROGRAM, token.IDENT, token.SEMICOLON,
		token.BEGIN, token.IDENT, token.LPAREN, token.STRING, token.RPAREN,
		token.END, token.DOT, token.EOF,
	}

	toks := collect(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(expected), toks)
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, want)
		}
	}
}

func TestNextToken_CaseInsensitiveKeywords(t *testing.T) {
	toks := collect(t, "BEGIN End BeGiN")
	for i, tok := range toks[:3] {
		if tok.Type != token.BEGIN && tok.Type != token.END {
			t.Errorf("token %d: expected keyword, got %s", i, tok.Type)
		}
	}
	if toks[0].Literal != "begin" || toks[2].Literal != "begin" {
		t.Errorf("canonical form should be lowercased, got %q and %q", toks[0].Literal, toks[2].Literal)
	}
}

func TestNextToken_IdentifierNotSplitFromKeywordPrefix(t *testing.T) {
	toks := collect(t, "beginx")
	if toks[0].Type != token.IDENT || toks[0].Literal != "beginx" {
		t.Errorf("expected single IDENT 'beginx', got %v", toks[0])
	}
}

func TestNextToken_LineTracking(t *testing.T) {
	toks := collect(t, "var\na\n:=\n1")
	if toks[0].Pos.Line != 1 {
		t.Errorf("'var' should be on line 1, got %d", toks[0].Pos.Line)
	}
	if toks[1].Pos.Line != 2 {
		t.Errorf("'a' should be on line 2, got %d", toks[1].Pos.Line)
	}
	if toks[2].Pos.Line != 3 {
		t.Errorf("':=' should be on line 3, got %d", toks[2].Pos.Line)
	}
	if toks[3].Pos.Line != 4 {
		t.Errorf("'1' should be on line 4, got %d", toks[3].Pos.Line)
	}
}
