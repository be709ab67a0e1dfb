package codegen

import (
	"strings"
	"testing"

	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/lexer"
	"github.com/hgoncalo/pascalsvm/internal/parser"
	"github.com/hgoncalo/pascalsvm/internal/semantic"
)

// compile runs the full lex/parse/analyze/codegen pipeline and fails the
// test on any stage error, mirroring cmd/pascalsvm's own pipeline.
func compile(t *testing.T, src string) string {
	t.Helper()
	prog := mustParseProgram(t, src)

	if err := semantic.New().Analyze(prog); err != nil {
		t.Fatalf("unexpected semantic error: %v", err)
	}

	out, err := New().Compile(prog)
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}
	return out
}

func mustParseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

// indexOfLine returns the index of the first buf line equal to want, or -1.
func indexOfLine(lines []string, want string) int {
	for i, l := range lines {
		if strings.TrimSpace(l) == want {
			return i
		}
	}
	return -1
}

func TestCompileS1Hello(t *testing.T) {
	out := compile(t, `program H; begin writeln('ola') end.`)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	want := []string{"START", `PUSHS "ola"`, "WRITES", "WRITELN", "STOP"}
	var positions []int
	for _, w := range want {
		idx := indexOfLine(lines, w)
		if idx == -1 {
			t.Fatalf("expected line %q in output:\n%s", w, out)
		}
		positions = append(positions, idx)
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] <= positions[i-1] {
			t.Fatalf("expected %q before %q, got order %v in:\n%s", want[i-1], want[i], positions, out)
		}
	}
}

func TestCompileS2Sum(t *testing.T) {
	out := compile(t, `program S; var a,b,s:integer; begin read(a); read(b); s:=a+b; writeln(s) end.`)
	for _, want := range []string{"READ", "ATOI", "ADD", "WRITEI"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCompileS3ForLoopUsesInclusiveCompare(t *testing.T) {
	out := compile(t, `program L; var i,n:integer; begin n:=0; for i:=1 to 10 do n:=n+i; writeln(n) end.`)
	if !strings.Contains(out, "INFEQ") {
		t.Errorf("expected the ascending for-loop to use the inclusive INFEQ comparison, got:\n%s", out)
	}
	if strings.Contains(out, "\nINF\n") {
		t.Errorf("ascending for-loop should not use the strict INF comparison, got:\n%s", out)
	}
}

func TestCompileS3ForLoopDowntoUsesSupeq(t *testing.T) {
	out := compile(t, `program L; var i,n:integer; begin n:=0; for i:=10 downto 1 do n:=n+i; writeln(n) end.`)
	if !strings.Contains(out, "SUPEQ") {
		t.Errorf("expected the descending for-loop to use the inclusive SUPEQ comparison, got:\n%s", out)
	}
}

func TestCompileS4Array(t *testing.T) {
	out := compile(t, `program A; var v:array[1..3] of integer; i:integer; begin for i:=1 to 3 do v[i]:=i*i; writeln(v[2]) end.`)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	prologueWant := []string{"PUSHI 3", "ALLOCN", "STOREG 0"}
	for i, w := range prologueWant {
		if strings.TrimSpace(lines[i+1]) != w {
			t.Fatalf("expected prologue line %d to be %q, got %q in:\n%s", i+1, w, lines[i+1], out)
		}
	}
	if !strings.Contains(out, "CHECK 0,2") {
		t.Errorf("expected bounds check CHECK 0,2, got:\n%s", out)
	}
}

func TestCompileS5Function(t *testing.T) {
	out := compile(t, `program F; function sq(x:integer):integer; begin sq:=x*x end; var y:integer; begin y:=sq(7); writeln(y) end.`)
	if !strings.Contains(out, "SQ:") {
		t.Errorf("expected a SQ: label, got:\n%s", out)
	}
	if !strings.Contains(out, "PUSHA SQ") {
		t.Errorf("expected PUSHA SQ, got:\n%s", out)
	}
	if !strings.Contains(out, "CALL") {
		t.Errorf("expected CALL, got:\n%s", out)
	}
	if !strings.Contains(out, "RETURN") {
		t.Errorf("expected RETURN, got:\n%s", out)
	}
	// zero return slot, one argument before the call
	idx := strings.Index(out, "PUSHA SQ")
	before := out[:idx]
	beforeLines := strings.Split(strings.TrimRight(before, "\n"), "\n")
	if len(beforeLines) < 2 {
		t.Fatalf("expected at least a return slot and one argument before PUSHA SQ, got:\n%s", before)
	}
	if strings.TrimSpace(beforeLines[len(beforeLines)-2]) != "PUSHI 0" {
		t.Errorf("expected the return slot push (PUSHI 0) right before the argument, got:\n%s", before)
	}
}

func TestCompileEveryJumpTargetIsDefined(t *testing.T) {
	out := compile(t, `program L;
var i,n:integer;
begin
  n:=0;
  for i:=1 to 10 do
    if i > 5 then n:=n+i else n:=n-i;
  writeln(n)
end.`)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	labels := map[string]bool{}
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if strings.HasSuffix(l, ":") {
			labels[strings.TrimSuffix(l, ":")] = true
		}
	}
	for _, l := range lines {
		l = strings.TrimSpace(l)
		var target string
		switch {
		case strings.HasPrefix(l, "JUMP "):
			target = strings.TrimPrefix(l, "JUMP ")
		case strings.HasPrefix(l, "JZ "):
			target = strings.TrimPrefix(l, "JZ ")
		default:
			continue
		}
		if !labels[target] {
			t.Errorf("jump target %q has no matching label in:\n%s", target, out)
		}
	}
}

func TestCompileGlobalOffsetsAreWithinBounds(t *testing.T) {
	out := compile(t, `program G; var a,b,c:integer; begin a:=1; b:=2; c:=a+b end.`)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, l := range lines {
		l = strings.TrimSpace(l)
		for _, prefix := range []string{"STOREG ", "PUSHG "} {
			if strings.HasPrefix(l, prefix) {
				off := strings.TrimPrefix(l, prefix)
				if off != "0" && off != "1" && off != "2" {
					t.Errorf("global offset %q out of expected [0,2] range in:\n%s", l, out)
				}
			}
		}
	}
}

func TestCompileUnknownCalleeFails(t *testing.T) {
	// Bypass the semantic analyzer (which would itself reject this) to
	// exercise codegen's own "unknown callee" fault class directly.
	prog := mustParseProgram(t, `program P; begin undefinedproc() end.`)
	_, err := New().Compile(prog)
	if err == nil {
		t.Fatal("expected a codegen error for an unknown callee")
	}
}

func TestCompileNonFoldableArrayBoundFails(t *testing.T) {
	prog := mustParseProgram(t, `program P; var n: integer; v: array[1..n] of integer; begin v[1]:=1 end.`)
	_, err := New().Compile(prog)
	if err == nil {
		t.Fatal("expected a codegen error for a non-foldable array bound")
	}
}

func TestCompileCaseInsensitiveLabelCasing(t *testing.T) {
	lower := compile(t, `program p; procedure foo; begin writeln('x') end; begin foo end.`)
	upper := compile(t, `PROGRAM P; PROCEDURE FOO; BEGIN WRITELN('x') END; BEGIN FOO END.`)
	if lower != upper {
		t.Errorf("case-insensitive programs should emit identical code, got:\n%s\n---\n%s", lower, upper)
	}
}
