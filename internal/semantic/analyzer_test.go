package semantic

import (
	"strings"
	"testing"

	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/lexer"
	"github.com/hgoncalo/pascalsvm/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func analyze(t *testing.T, src string) error {
	t.Helper()
	prog := mustParse(t, src)
	return New().Analyze(prog)
}

func TestAnalyzeAcceptsScalarProgram(t *testing.T) {
	src := `program S; var a,b,s:integer; begin a := 1; b := 2; s:=a+b; writeln(s) end.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeAssignTypeMismatch(t *testing.T) {
	src := `program E; var b:boolean; begin b:=1 end.`
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected a type-mismatch error")
	}
	if !strings.Contains(err.Error(), "corresponde") {
		t.Errorf("got %q", err.Error())
	}
}

func TestAnalyzeIntegerToRealCoercion(t *testing.T) {
	src := `program P; var r:real; begin r := 1 end.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("integer->real coercion should be permitted: %v", err)
	}
}

func TestAnalyzeDuplicateDeclarationInScope(t *testing.T) {
	src := `program P; var a:integer; a:integer; begin a := 1 end.`
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected a duplicate-declaration error")
	}
	if !strings.Contains(err.Error(), "já foi declarada") {
		t.Errorf("got %q", err.Error())
	}
}

func TestAnalyzeUndeclaredIdentifier(t *testing.T) {
	src := `program P; begin x := 1 end.`
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected an undeclared-identifier error")
	}
}

func TestAnalyzeShadowingAcrossScopes(t *testing.T) {
	src := `program P;
var a: integer;
function f(a: integer): integer;
begin f := a end;
begin a := f(1) end.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("parameter shadowing an outer var should be permitted: %v", err)
	}
}

func TestAnalyzeFunctionSelfReferenceForReturn(t *testing.T) {
	src := `program F;
function sq(x:integer):integer;
begin sq:=x*x end;
var y:integer;
begin y := sq(7); writeln(y) end.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeRecursiveCallResolvesSelf(t *testing.T) {
	src := `program R;
function fact(n: integer): integer;
begin
  if n <= 1 then fact := 1 else fact := n * fact(n-1)
end;
var r: integer;
begin r := fact(5) end.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("recursive self-call should resolve: %v", err)
	}
}

func TestAnalyzeArityMismatch(t *testing.T) {
	src := `program P;
function f(a,b:integer):integer;
begin f := a + b end;
var r:integer;
begin r := f(1) end.`
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected an arity-mismatch error")
	}
}

func TestAnalyzeIfConditionMustBeBoolean(t *testing.T) {
	src := `program P; var a:integer; begin if a then a := 1 end.`
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected a non-boolean condition error")
	}
}

func TestAnalyzeForControlMustBeInteger(t *testing.T) {
	src := `program P; var r:real; begin for r := 1 to 2 do r := r end.`
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected a non-integer for-control error")
	}
}

func TestAnalyzeFieldAccessRequiresRecordType(t *testing.T) {
	src := `program P; var a:integer; begin a.x := 1 end.`
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected a field-access-on-non-record error")
	}
}

func TestAnalyzeRecordFieldAccess(t *testing.T) {
	src := `program P;
type point = record x, y: integer end;
var p: point;
begin p.x := 1; p.y := p.x end.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeArrayIndexRequiresArrayType(t *testing.T) {
	src := `program P; var a:integer; begin a[1] := 1 end.`
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected an index-on-non-array error")
	}
}

func TestAnalyzeArrayElementType(t *testing.T) {
	src := `program A;
var v: array[1..3] of integer; i:integer;
begin for i:=1 to 3 do v[i]:=i*i; writeln(v[2]) end.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeLabelMustBeDeclared(t *testing.T) {
	src := `program P; begin goto 1 end.`
	err := analyze(t, src)
	if err == nil {
		t.Fatal("expected an undeclared-label error")
	}
}

func TestAnalyzeLabelDeclaredAndUsed(t *testing.T) {
	src := `program P;
label 1;
begin
  goto 1;
  1: writeln('x')
end.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeCaseInsensitivity(t *testing.T) {
	lower := `program p; var a:integer; begin a := 1 end.`
	upper := `PROGRAM P; VAR A:INTEGER; BEGIN A := 1 END.`
	if err := analyze(t, lower); err != nil {
		t.Fatalf("lowercase form should be accepted: %v", err)
	}
	if err := analyze(t, upper); err != nil {
		t.Fatalf("uppercase form should be accepted: %v", err)
	}
}

func TestAnalyzeBuiltinLengthHigh(t *testing.T) {
	src := `program P;
var v: array[1..5] of integer; n: integer;
begin n := length(v); n := high(v) end.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeTypeCastSyntax(t *testing.T) {
	src := `program P; var r: real; i: integer; begin i := 1; r := real(i) end.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
