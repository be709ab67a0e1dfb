// Package ast defines the abstract syntax tree node types produced by the
// parser and consumed by the semantic analyzer and code generator.
package ast

import (
	"bytes"
	"fmt"

	"github.com/hgoncalo/pascalsvm/internal/token"
)

// Node is the common interface every AST node implements.
type Node interface {
	Pos() token.Position
	String() string
}

// Declaration is a top-level or nested block declaration: consts, types,
// labels, var, function, or procedure.
type Declaration interface {
	Node
	declNode()
}

// Statement is anything that can appear in a statement list.
type Statement interface {
	Node
	stmtNode()
}

// Expression is anything that yields a value.
type Expression interface {
	Node
	exprNode()
}

// Program is the root node: `program NAME; BLOCK .`
type Program struct {
	NamePos token.Position
	Name    string
	Block   *Block
}

func (p *Program) Pos() token.Position { return p.NamePos }
func (p *Program) String() string {
	return fmt.Sprintf("program %s;\n%s.", p.Name, p.Block.String())
}

// Block groups a declaration sequence with the compound statement that
// follows it — the body of a program, function, or procedure.
type Block struct {
	StartPos     token.Position
	Declarations []Declaration
	Compound     *CompoundStmt
}

func (b *Block) Pos() token.Position { return b.StartPos }
func (b *Block) String() string {
	var buf bytes.Buffer
	for _, d := range b.Declarations {
		buf.WriteString(d.String())
		buf.WriteString("\n")
	}
	buf.WriteString(b.Compound.String())
	return buf.String()
}
