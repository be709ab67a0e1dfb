package errors

import (
	"strings"
	"testing"

	"github.com/hgoncalo/pascalsvm/internal/token"
)

func TestErrorImplementsErrorInterface(t *testing.T) {
	var err error = New(token.Position{Line: 3, Column: 5}, "mensagem de teste", "")
	if err.Error() != "mensagem de teste" {
		t.Errorf("got %q", err.Error())
	}
}

func TestFormatPlainHasNoEscapeCodes(t *testing.T) {
	e := New(token.Position{Line: 1, Column: 1}, "falha", "")
	if strings.Contains(e.Format(false), "\033") {
		t.Errorf("plain format should carry no escape codes, got %q", e.Format(false))
	}
}

func TestFormatColorWrapsInEscapeCodes(t *testing.T) {
	e := New(token.Position{Line: 1, Column: 1}, "falha", "")
	colored := e.Format(true)
	if !strings.Contains(colored, "falha") || !strings.Contains(colored, "\033[1m") {
		t.Errorf("expected colored output to wrap the message, got %q", colored)
	}
}

func TestWithCaretPointsAtReportedColumn(t *testing.T) {
	source := "program P;\nbegin\n  x := ;\nend.\n"
	e := New(token.Position{Line: 3, Column: 8}, "Erro sintático: token inesperado ';' na linha 3", source)

	out := e.WithCaret()
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "x := ;") {
		t.Errorf("expected the offending source line rendered, got %q", lines[0])
	}
	if want := strings.Repeat(" ", len("   3 | ")+8-1) + "^"; lines[1] != want {
		t.Errorf("expected a caret under column 8, got %q", lines[1])
	}
	if !strings.Contains(out, "Erro sintático") {
		t.Errorf("expected the message to follow the caret, got %q", out)
	}
}

func TestWithCaretOutOfRangeLineOmitsSourceContext(t *testing.T) {
	e := New(token.Position{Line: 99, Column: 1}, "falha", "program P; begin end.\n")
	out := e.WithCaret()
	if strings.Contains(out, "^") {
		t.Errorf("an out-of-range line should not render a caret, got %q", out)
	}
	if out != "falha" {
		t.Errorf("got %q, want bare message", out)
	}
}
