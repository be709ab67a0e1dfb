package semantic

import "github.com/hgoncalo/pascalsvm/internal/token"

// Error is a single semantic diagnostic. Analysis halts at the first one,
// mirroring the fatal propagation policy for this stage.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string { return e.Message }

// haltError is the panic sentinel used to unwind the AST walk back to
// Analyze as soon as the first Error is recorded.
type haltError struct{ err *Error }

func (a *Analyzer) halt(pos token.Position, message string) {
	panic(haltError{err: &Error{Message: message, Pos: pos}})
}
