// Package errors formats compiler diagnostics with source context — a
// source line plus a caret pointing at the offending column.
package errors

import (
	"fmt"
	"strings"

	"github.com/hgoncalo/pascalsvm/internal/token"
)

// CompilerError is a single compilation diagnostic carrying its source
// position and the original text, for caret rendering.
type CompilerError struct {
	Message string
	Source  string
	Pos     token.Position
}

// New creates a CompilerError.
func New(pos token.Position, message, source string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the message alone, with no caret — the way the reference
// diagnostics are printed on stdout when color is false; with color true
// the message is wrapped in bold ANSI escapes. WithCaret renders the
// developer-facing form used by tests and --verbose output.
func (e *CompilerError) Format(color bool) string {
	if !color {
		return e.Message
	}
	return "\033[1m" + e.Message + "\033[0m"
}

// WithCaret renders the message preceded by the offending source line and
// a caret under the reported column, for development-time inspection.
func (e *CompilerError) WithCaret() string {
	var sb strings.Builder
	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		sb.WriteString("^\n")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
