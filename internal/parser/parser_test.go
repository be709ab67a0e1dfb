package parser

import (
	"strings"
	"testing"

	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return prog
}

func TestParseProgramSkeleton(t *testing.T) {
	prog := parseProgram(t, `program H; begin writeln('ola') end.`)
	if prog.Name != "H" {
		t.Errorf("got name %q, want H", prog.Name)
	}
	if len(prog.Block.Compound.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Block.Compound.Stmts))
	}
	call, ok := prog.Block.Compound.Stmts[0].(*ast.CallStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.CallStmt", prog.Block.Compound.Stmts[0])
	}
	if call.Name != "writeln" {
		t.Errorf("got call name %q, want writeln", call.Name)
	}
}

func TestParseDeclarationSectionsAnyOrder(t *testing.T) {
	src := `program P;
var a: integer;
const c = 1;
type t = integer;
var b: integer;
begin a := c; b := a end.`
	prog := parseProgram(t, src)
	if len(prog.Block.Declarations) != 4 {
		t.Fatalf("got %d declarations, want 4", len(prog.Block.Declarations))
	}
}

func TestOperatorPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"not a = b", "not (a = b)"},
		{"a or b and c", "(a or (b and c))"},
		{"a < b and c > d", "((a < b) and (c > d))"},
		{"-a * b", "((0 - a) * b)"},
	}
	for _, c := range cases {
		src := "program P; begin x := " + c.src + " end."
		prog := parseProgram(t, src)
		assign := prog.Block.Compound.Stmts[0].(*ast.AssignStmt)
		if got := assign.RHS.String(); got != c.want {
			t.Errorf("parsing %q: got %q, want %q", c.src, got, c.want)
		}
	}
}

// TestNotBindsLooserThanRelational exercises the oddity spec.md calls out:
// `not` sits between `and` and the relational operators, so `not a = b`
// parses as `not (a = b)`, not `(not a) = b`.
func TestNotBindsLooserThanRelational(t *testing.T) {
	prog := parseProgram(t, `program P; begin x := not a = b end.`)
	assign := prog.Block.Compound.Stmts[0].(*ast.AssignStmt)
	not, ok := assign.RHS.(*ast.NotExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.NotExpr at top", assign.RHS)
	}
	bin, ok := not.Expr.(*ast.BinOpExpr)
	if !ok {
		t.Fatalf("got operand %T, want *ast.BinOpExpr", not.Expr)
	}
	if bin.Op != "=" {
		t.Fatalf("got operand op %q, want =", bin.Op)
	}
}

func TestDanglingElseBindsToNearestIf(t *testing.T) {
	src := `program P;
begin
  if a then if b then x := 1 else x := 2
end.`
	prog := parseProgram(t, src)
	outer := prog.Block.Compound.Stmts[0].(*ast.IfStmt)
	if outer.Else != nil {
		t.Fatalf("outer if should have no else clause, got %v", outer.Else)
	}
	inner, ok := outer.Then.(*ast.IfStmt)
	if !ok {
		t.Fatalf("outer then should be an IfStmt, got %T", outer.Then)
	}
	if inner.Else == nil {
		t.Fatalf("inner if should carry the else clause")
	}
}

func TestCallVsParenAmbiguity(t *testing.T) {
	prog := parseProgram(t, `program P; begin x := (1 + 2) * f(3) end.`)
	assign := prog.Block.Compound.Stmts[0].(*ast.AssignStmt)
	bin := assign.RHS.(*ast.BinOpExpr)
	if _, ok := bin.L.(*ast.BinOpExpr); !ok {
		t.Errorf("grouped expr should lower to its inner BinOpExpr, got %T", bin.L)
	}
	call, ok := bin.R.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CallExpr", bin.R)
	}
	if call.Name != "f" || len(call.Args) != 1 {
		t.Errorf("got call %+v", call)
	}
}

func TestForToAndDownto(t *testing.T) {
	prog := parseProgram(t, `program P; var i: integer; begin for i := 1 to 10 do i := i end.`)
	f := prog.Block.Compound.Stmts[0].(*ast.ForStmt)
	if f.Down {
		t.Errorf("expected ascending for, got downto")
	}

	prog = parseProgram(t, `program P; var i: integer; begin for i := 10 downto 1 do i := i end.`)
	f = prog.Block.Compound.Stmts[0].(*ast.ForStmt)
	if !f.Down {
		t.Errorf("expected downto for, got ascending")
	}
}

func TestFormatOperatorFoldsToFmtNode(t *testing.T) {
	prog := parseProgram(t, `program P; begin writeln(x : 5 : 2) end.`)
	call := prog.Block.Compound.Stmts[0].(*ast.CallStmt)
	fmtExpr, ok := call.Args[0].(*ast.FmtExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.FmtExpr", call.Args[0])
	}
	if fmtExpr.Width == nil || fmtExpr.Prec == nil {
		t.Errorf("expected both width and precision set, got %+v", fmtExpr)
	}
}

func TestFormatOperatorWidthOnly(t *testing.T) {
	prog := parseProgram(t, `program P; begin writeln(x : 5) end.`)
	call := prog.Block.Compound.Stmts[0].(*ast.CallStmt)
	fmtExpr, ok := call.Args[0].(*ast.FmtExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.FmtExpr", call.Args[0])
	}
	if fmtExpr.Prec != nil {
		t.Errorf("expected no precision, got %v", fmtExpr.Prec)
	}
}

func TestArrayTypeClosedForm(t *testing.T) {
	src := `program P; var v: array[1..3] of integer; begin v[1] := 1 end.`
	prog := parseProgram(t, src)
	decl := prog.Block.Declarations[0].(*ast.VarDecl)
	arr, ok := decl.Groups[0].Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("got %T, want *ast.ArrayType", decl.Groups[0].Type)
	}
	if len(arr.Ranges) != 1 {
		t.Fatalf("got %d ranges, want 1", len(arr.Ranges))
	}
}

func TestRecordWithVariantPart(t *testing.T) {
	src := `program P;
type
  shape = record
    id: integer;
    case kind: integer of
      1: (radius: integer);
      2: (side: integer)
  end;
var s: shape;
begin s.id := 1 end.`
	prog := parseProgram(t, src)
	typesDecl := prog.Block.Declarations[0].(*ast.TypesDecl)
	rec, ok := typesDecl.Bindings[0].Type.(*ast.RecordType)
	if !ok {
		t.Fatalf("got %T, want *ast.RecordType", typesDecl.Bindings[0].Type)
	}
	if rec.Variant == nil {
		t.Errorf("expected a variant part")
	}
}

func TestSyntaxErrorUnexpectedToken(t *testing.T) {
	p := New(lexer.New(`program P; begin x := end.`))
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if !strings.Contains(err.Error(), "Erro sintático: token inesperado") {
		t.Errorf("got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "na linha 1") {
		t.Errorf("expected a line number in %q", err.Error())
	}
}

func TestSyntaxErrorPrematureEOF(t *testing.T) {
	p := New(lexer.New(`program P; begin x := 1`))
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if !strings.Contains(err.Error(), "Erro sintático: fim de ficheiro inesperado") {
		t.Errorf("got %q", err.Error())
	}
}
