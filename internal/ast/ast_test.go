package ast

import (
	"strings"
	"testing"

	"github.com/hgoncalo/pascalsvm/internal/token"
)

func TestProgramString(t *testing.T) {
	prog := &Program{
		Name: "H",
		Block: &Block{
			Compound: &CompoundStmt{
				Stmts: []Statement{
					&CallStmt{Name: "writeln", Args: []Expression{
						&ConstExpr{Kind: "texto", Value: "ola"},
					}},
				},
			},
		},
	}

	s := prog.String()
	if !strings.Contains(s, "program H;") {
		t.Errorf("expected program header, got %q", s)
	}
	if !strings.Contains(s, "writeln(ola)") {
		t.Errorf("expected call rendering, got %q", s)
	}
}

func TestForStmtDirection(t *testing.T) {
	f := &ForStmt{
		Var:   "i",
		Start: &ConstExpr{Kind: "integer", Value: 1},
		End:   &ConstExpr{Kind: "integer", Value: 10},
		Down:  true,
		Body:  &CompoundStmt{},
	}
	if !strings.Contains(f.String(), "downto") {
		t.Errorf("expected downto in %q", f.String())
	}
}

func TestArrayTypePos(t *testing.T) {
	a := &ArrayType{
		StartPos: token.Position{Line: 3, Column: 1},
		Ranges:   []Range{{Low: &ConstExpr{Kind: "integer", Value: 1}, High: &ConstExpr{Kind: "integer", Value: 3}}},
		Elem:     &SimpleType{Name: "integer"},
	}
	if a.Pos().Line != 3 {
		t.Errorf("got line %d, want 3", a.Pos().Line)
	}
	if a.String() != "array[1..3] of integer" {
		t.Errorf("got %q", a.String())
	}
}
