package parser

import "github.com/hgoncalo/pascalsvm/internal/token"

// Error is a single syntactic diagnostic. The grammar halts at the first
// one: Parser.Errors() never holds more than one entry.
type Error struct {
	Message string
	Pos     token.Position
}

// haltError is the panic value used to unwind the recursive-descent call
// stack back to ParseProgram as soon as the first Error is recorded. This
// mirrors the spec's "halt" requirement rather than the synchronize-and-
// continue recovery an IDE-facing parser would want.
type haltError struct{}
