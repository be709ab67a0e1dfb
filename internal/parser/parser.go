// Package parser builds an AST from a token stream under a
// precedence-constrained expression grammar and Pascal's declaration and
// statement grammar.
package parser

import (
	"fmt"
	"strconv"

	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/lexer"
	"github.com/hgoncalo/pascalsvm/internal/token"
)

// Precedence levels, lowest to highest. `not` sits between `and` and the
// relational operators, so it binds tighter than `and`/`or` but looser than
// comparisons — `not a = b` parses as `not (a = b)`. The format operator
// `:` is handled only inside call-argument parsing (see parseCallArgs),
// since `:` is also ordinary punctuation in var/field/case-arm grammar.
const (
	LOWEST int = iota
	OR_PREC
	AND_PREC
	NOT_PREC
	RELATIONAL
	ADDITIVE
	MULTIPLICATIVE
)

var precedences = map[token.Type]int{
	token.OR:  OR_PREC,
	token.AND: AND_PREC,

	token.EQ:  RELATIONAL,
	token.NEQ: RELATIONAL,
	token.LT:  RELATIONAL,
	token.LE:  RELATIONAL,
	token.GT:  RELATIONAL,
	token.GE:  RELATIONAL,
	token.IN:  RELATIONAL,

	token.PLUS:  ADDITIVE,
	token.MINUS: ADDITIVE,

	token.STAR:  MULTIPLICATIVE,
	token.SLASH: MULTIPLICATIVE,
	token.DIV:   MULTIPLICATIVE,
	token.MOD:   MULTIPLICATIVE,
}

func precedenceOf(t token.Type) int {
	if p, ok := precedences[t]; ok {
		return p
	}
	return LOWEST
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser is a recursive-descent/Pratt hybrid parser over a single Lexer.
// It is not reusable across compilations.
type Parser struct {
	l *lexer.Lexer

	curTok  token.Token
	peekTok token.Token

	errors []Error

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New creates a Parser reading from l, primed with the first two tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.registerExpressionParsers()
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) peekPrecedence() int { return precedenceOf(p.peekTok.Type) }
func (p *Parser) curPrecedence() int  { return precedenceOf(p.curTok.Type) }

// Errors returns the diagnostics recorded so far — at most one, since
// parsing halts at the first.
func (p *Parser) Errors() []Error {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.curTok.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekTok.Type == t }

// expect asserts the current token's type, advances past it on success, and
// halts the parse on mismatch.
func (p *Parser) expect(t token.Type) token.Token {
	if p.curTok.Type == token.EOF {
		p.haltEOF()
	}
	if p.curTok.Type != t {
		p.haltUnexpected()
	}
	tok := p.curTok
	p.nextToken()
	return tok
}

func (p *Parser) haltUnexpected() {
	msg := fmt.Sprintf("Erro sintático: token inesperado '%s' na linha %d", p.curTok.Literal, p.curTok.Pos.Line)
	p.errors = append(p.errors, Error{Message: msg, Pos: p.curTok.Pos})
	panic(haltError{})
}

func (p *Parser) haltEOF() {
	p.errors = append(p.errors, Error{Message: "Erro sintático: fim de ficheiro inesperado", Pos: p.curTok.Pos})
	panic(haltError{})
}

// ParseProgram parses `program NAME; block .` and returns the AST, or nil
// if a syntax error halted the parse (inspect Errors() in that case).
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(haltError); ok {
				prog = nil
				err = fmt.Errorf("%s", p.errors[0].Message)
				return
			}
			panic(r)
		}
	}()

	pos := p.curTok.Pos
	p.expect(token.PROGRAM)
	name := p.expectIdentLiteral()
	p.expect(token.SEMICOLON)
	block := p.parseBlock()
	p.expect(token.DOT)

	return &ast.Program{NamePos: pos, Name: name, Block: block}, nil
}

func (p *Parser) expectIdentLiteral() string {
	if p.curTok.Type == token.EOF {
		p.haltEOF()
	}
	if p.curTok.Type != token.IDENT {
		p.haltUnexpected()
	}
	lit := p.curTok.Literal
	p.nextToken()
	return lit
}

// parseBlock parses a declaration sequence (const/type/label/var/function/
// procedure sections, in any order, any number of times) followed by
// `begin statement_list end`.
func (p *Parser) parseBlock() *ast.Block {
	pos := p.curTok.Pos
	block := &ast.Block{StartPos: pos}

	for {
		switch p.curTok.Type {
		case token.CONST:
			block.Declarations = append(block.Declarations, p.parseConstsDecl())
		case token.TYPE:
			block.Declarations = append(block.Declarations, p.parseTypesDecl())
		case token.LABEL:
			block.Declarations = append(block.Declarations, p.parseLabelsDecl())
		case token.VAR:
			block.Declarations = append(block.Declarations, p.parseVarDecl())
		case token.FUNCTION:
			block.Declarations = append(block.Declarations, p.parseFunctionDecl())
		case token.PROCEDURE:
			block.Declarations = append(block.Declarations, p.parseProcedureDecl())
		default:
			block.Compound = p.parseCompoundStmt()
			return block
		}
	}
}

func (p *Parser) parseIntLiteral() int {
	if p.curTok.Type == token.EOF {
		p.haltEOF()
	}
	if p.curTok.Type != token.INTEGER {
		p.haltUnexpected()
	}
	n, _ := strconv.Atoi(p.curTok.Literal)
	p.nextToken()
	return n
}
