package parser

import (
	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/token"
)

// registerExpressionParsers wires the prefix/infix tables. It runs once, in
// New, before the lexer has been primed — the functions themselves only
// touch p.curTok/p.peekTok at call time.
func (p *Parser) registerExpressionParsers() {
	p.prefixFns = map[token.Type]prefixParseFn{
		token.IDENT:   p.parseIdentOrDesignator,
		token.INTEGER: p.parseIntegerLit,
		token.REAL:    p.parseRealLit,
		token.CHAR:    p.parseCharLit,
		token.STRING:  p.parseStringLit,
		token.BOOLEAN: p.parseBooleanLit,
		token.LPAREN:  p.parseGroupedOrEnum,
		token.LBRACKET: p.parseSetLit,
		token.NOT:     p.parseNotExpr,
		token.MINUS:   p.parseUnaryMinus,
		token.PLUS:    p.parseUnaryPlus,
		token.INTEGER_TYPE: p.parseCastExpr,
		token.REAL_TYPE:    p.parseCastExpr,
	}

	p.infixFns = map[token.Type]infixParseFn{
		token.OR:    p.parseBinOp,
		token.AND:   p.parseBinOp,
		token.EQ:    p.parseBinOp,
		token.NEQ:   p.parseBinOp,
		token.LT:    p.parseBinOp,
		token.LE:    p.parseBinOp,
		token.GT:    p.parseBinOp,
		token.GE:    p.parseBinOp,
		token.IN:    p.parseBinOp,
		token.PLUS:  p.parseBinOp,
		token.MINUS: p.parseBinOp,
		token.STAR:  p.parseBinOp,
		token.SLASH: p.parseBinOp,
		token.DIV:   p.parseBinOp,
		token.MOD:   p.parseBinOp,
	}
}

// parseExpression is the Pratt loop: parse one prefix term, then keep
// absorbing infix operators whose precedence exceeds the caller's floor.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.curTok.Type]
	if !ok {
		if p.curTok.Type == token.EOF {
			p.haltEOF()
		}
		p.haltUnexpected()
	}
	left := prefix()

	for precedence < p.curPrecedence() {
		infix, ok := p.infixFns[p.curTok.Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseBinOp(left ast.Expression) ast.Expression {
	op := p.curTok
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinOpExpr{StartPos: op.Pos, Op: op.Literal, L: left, R: right}
}

func (p *Parser) parseNotExpr() ast.Expression {
	pos := p.curTok.Pos
	p.nextToken()
	return &ast.NotExpr{StartPos: pos, Expr: p.parseExpression(NOT_PREC)}
}

// parseUnaryMinus/parseUnaryPlus handle unary sign as `0 - expr` / a no-op
// wrapper at MULTIPLICATIVE-adjacent binding, tighter than any binary
// operator so `-a * b` parses as `(-a) * b`.
func (p *Parser) parseUnaryMinus() ast.Expression {
	pos := p.curTok.Pos
	p.nextToken()
	operand := p.parseExpression(MULTIPLICATIVE)
	return &ast.BinOpExpr{StartPos: pos, Op: "-", L: &ast.ConstExpr{StartPos: pos, Kind: "integer", Value: 0}, R: operand}
}

func (p *Parser) parseUnaryPlus() ast.Expression {
	p.nextToken()
	return p.parseExpression(MULTIPLICATIVE)
}

func (p *Parser) parseIntegerLit() ast.Expression {
	tok := p.curTok
	p.nextToken()
	return &ast.ConstExpr{StartPos: tok.Pos, Kind: "integer", Value: tok.Value}
}

func (p *Parser) parseRealLit() ast.Expression {
	tok := p.curTok
	p.nextToken()
	return &ast.ConstExpr{StartPos: tok.Pos, Kind: "real", Value: tok.Value}
}

func (p *Parser) parseCharLit() ast.Expression {
	tok := p.curTok
	p.nextToken()
	return &ast.ConstExpr{StartPos: tok.Pos, Kind: "char", Value: tok.Value}
}

func (p *Parser) parseStringLit() ast.Expression {
	tok := p.curTok
	p.nextToken()
	return &ast.ConstExpr{StartPos: tok.Pos, Kind: "texto", Value: tok.Value}
}

func (p *Parser) parseBooleanLit() ast.Expression {
	tok := p.curTok
	p.nextToken()
	return &ast.ConstExpr{StartPos: tok.Pos, Kind: "boolean", Value: tok.Value}
}

// parseCastExpr parses `integer(expr)` / `real(expr)` — the type-name
// keywords are recognized syntactically as single-argument calls, and the
// semantic analyzer treats a call whose callee resolves to a type as a
// cast.
func (p *Parser) parseCastExpr() ast.Expression {
	pos := p.curTok.Pos
	name := "integer"
	if p.curTok.Type == token.REAL_TYPE {
		name = "real"
	}
	p.nextToken()
	p.expect(token.LPAREN)
	arg := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return &ast.CallExpr{StartPos: pos, Name: name, Args: []ast.Expression{arg}}
}

// parseGroupedOrEnum parses `( expr )`. A bare `(` is always a grouping
// paren here — the call form is recognized earlier, in
// parseIdentOrDesignator, where an IDENT is immediately followed by `(`.
func (p *Parser) parseGroupedOrEnum() ast.Expression {
	p.expect(token.LPAREN)
	expr := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return expr
}

// parseSetLit parses `[ elem, elem, lo..hi, ... ]`, with an empty `[]`
// producing a set literal with no elements.
func (p *Parser) parseSetLit() ast.Expression {
	pos := p.curTok.Pos
	p.expect(token.LBRACKET)

	lit := &ast.SetLitExpr{StartPos: pos}
	if p.curTok.Type == token.RBRACKET {
		p.nextToken()
		return lit
	}

	for {
		elem := p.parseExpression(ADDITIVE)
		if p.curTok.Type == token.DOTDOT {
			p.nextToken()
			high := p.parseExpression(ADDITIVE)
			elem = &ast.BinOpExpr{StartPos: elem.Pos(), Op: "..", L: elem, R: high}
		}
		lit.Elems = append(lit.Elems, elem)
		if p.curTok.Type != token.COMMA {
			break
		}
		p.nextToken()
	}
	p.expect(token.RBRACKET)
	return lit
}

// parseIdentOrDesignator parses a name used as a value. A name immediately
// followed by `(` is a call — the rule that disambiguates a call from a
// parenthesized grouping; otherwise the name becomes a VarExpr and any run
// of `[idx,...]` / `.field` suffixes is greedily folded onto it.
func (p *Parser) parseIdentOrDesignator() ast.Expression {
	pos := p.curTok.Pos
	name := p.expectIdentLiteral()

	if p.curTok.Type == token.LPAREN {
		return p.parseCallArgs(pos, name)
	}

	var expr ast.Expression = &ast.VarExpr{StartPos: pos, Name: name}
	for {
		switch p.curTok.Type {
		case token.LBRACKET:
			p.nextToken()
			indices := []ast.Expression{p.parseExpression(LOWEST)}
			for p.curTok.Type == token.COMMA {
				p.nextToken()
				indices = append(indices, p.parseExpression(LOWEST))
			}
			p.expect(token.RBRACKET)
			expr = &ast.ArrayExpr{StartPos: pos, Base: expr, Indices: indices}
		case token.DOT:
			p.nextToken()
			field := p.expectIdentLiteral()
			expr = &ast.FieldExpr{StartPos: pos, Base: expr, Name: field}
		default:
			return expr
		}
	}
}

// parseCallArgs parses `name(arg, arg, ...)`, where an argument may carry a
// format suffix `: width` or `: width : prec`. The suffix is recognized
// only here, scoped to call arguments, so that `:` keeps its ordinary
// meaning everywhere else in the grammar.
func (p *Parser) parseCallArgs(pos token.Position, name string) ast.Expression {
	p.expect(token.LPAREN)

	call := &ast.CallExpr{StartPos: pos, Name: name}
	if p.curTok.Type == token.RPAREN {
		p.nextToken()
		return call
	}

	for {
		arg := p.parseExpression(LOWEST)
		if p.curTok.Type == token.COLON {
			p.nextToken()
			width := p.parseExpression(LOWEST)
			fmtExpr := &ast.FmtExpr{StartPos: arg.Pos(), Expr: arg, Width: width}
			if p.curTok.Type == token.COLON {
				p.nextToken()
				fmtExpr.Prec = p.parseExpression(LOWEST)
			}
			arg = fmtExpr
		}
		call.Args = append(call.Args, arg)
		if p.curTok.Type != token.COMMA {
			break
		}
		p.nextToken()
	}
	p.expect(token.RPAREN)
	return call
}
