package parser

import (
	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/token"
)

// parseCompoundStmt parses `begin stmt_list end`.
func (p *Parser) parseCompoundStmt() *ast.CompoundStmt {
	pos := p.curTok.Pos
	p.expect(token.BEGIN)
	stmts := p.parseStatementSeq(token.END)
	p.expect(token.END)
	return &ast.CompoundStmt{StartPos: pos, Stmts: stmts}
}

// parseStatementSeq parses statements separated by `;`, stopping when the
// current token is one of stops. A statement may be empty (two consecutive
// separators, or a trailing separator right before a stop token).
func (p *Parser) parseStatementSeq(stops ...token.Type) []ast.Statement {
	var stmts []ast.Statement
	for {
		if p.atAny(stops...) {
			return stmts
		}
		stmts = append(stmts, p.parseStatement())
		if p.curTok.Type != token.SEMICOLON {
			return stmts
		}
		p.nextToken()
	}
}

func (p *Parser) atAny(types ...token.Type) bool {
	for _, t := range types {
		if p.curTok.Type == t {
			return true
		}
	}
	return false
}

// parseStatement dispatches on the current token. An empty statement
// (curTok already a separator or stop keyword) is handled by each caller
// via parseStatementSeq/atAny; parseStatement itself always expects to
// find the start of an actual statement.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Type {
	case token.BEGIN:
		return p.parseCompoundStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.REPEAT:
		return p.parseRepeatStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.CASE:
		return p.parseCaseStmt()
	case token.WITH:
		return p.parseWithStmt()
	case token.GOTO:
		return p.parseGotoStmt()
	case token.INTEGER:
		if p.peekTok.Type == token.COLON {
			return p.parseLabeledStmt()
		}
		p.haltUnexpected()
	case token.IDENT:
		return p.parseIdentStatement()
	case token.SEMICOLON, token.END, token.UNTIL, token.ELSE:
		pos := p.curTok.Pos
		return &ast.EmptyStmt{StartPos: pos}
	case token.EOF:
		p.haltEOF()
	default:
		p.haltUnexpected()
	}
	return nil
}

// parseIdentStatement parses either an assignment or a procedure call
// starting from a bare identifier. It folds the same `[idx]`/`.field`
// designator chain parseIdentOrDesignator does, then branches on whether
// `:=` follows (assignment) or not (call, with or without parens — a
// procedure invoked with no arguments carries no parenthesis at all).
func (p *Parser) parseIdentStatement() ast.Statement {
	pos := p.curTok.Pos
	name := p.expectIdentLiteral()

	if p.curTok.Type == token.LPAREN {
		call := p.parseCallArgs(pos, name)
		return &ast.CallStmt{StartPos: pos, Name: name, Args: call.(*ast.CallExpr).Args}
	}

	var designator ast.Expression = &ast.VarExpr{StartPos: pos, Name: name}
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
			designator = &ast.ArrayExpr{StartPos: pos, Base: designator, Indices: indices}
			continue
		case token.DOT:
			p.nextToken()
			field := p.expectIdentLiteral()
			designator = &ast.FieldExpr{StartPos: pos, Base: designator, Name: field}
			continue
		}
		break
	}

	if p.curTok.Type == token.ASSIGN {
		p.nextToken()
		rhs := p.parseExpression(LOWEST)
		return &ast.AssignStmt{StartPos: pos, LHS: designator, RHS: rhs}
	}

	// Bare procedure call, no arguments: the designator chain degenerates
	// to a plain VarExpr since field/index access never applies to a
	// procedure name.
	return &ast.CallStmt{StartPos: pos, Name: name}
}

// parseIfStmt parses `if cond then stmt [else stmt]`. Dangling-else falls
// out of ordinary recursion: the innermost open `if` is the one whose
// recursive parseStatement call is still on the stack when `else` is seen,
// so it always claims the else clause.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	pos := p.curTok.Pos
	p.expect(token.IF)
	cond := p.parseExpression(LOWEST)
	p.expect(token.THEN)
	then := p.parseStatement()

	stmt := &ast.IfStmt{StartPos: pos, Cond: cond, Then: then}
	if p.curTok.Type == token.ELSE {
		p.nextToken()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	pos := p.curTok.Pos
	p.expect(token.WHILE)
	cond := p.parseExpression(LOWEST)
	p.expect(token.DO)
	body := p.parseStatement()
	return &ast.WhileStmt{StartPos: pos, Cond: cond, Body: body}
}

func (p *Parser) parseRepeatStmt() *ast.RepeatStmt {
	pos := p.curTok.Pos
	p.expect(token.REPEAT)
	body := p.parseStatementSeq(token.UNTIL)
	p.expect(token.UNTIL)
	cond := p.parseExpression(LOWEST)
	return &ast.RepeatStmt{StartPos: pos, Body: body, Cond: cond}
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	pos := p.curTok.Pos
	p.expect(token.FOR)
	v := p.expectIdentLiteral()
	p.expect(token.ASSIGN)
	start := p.parseExpression(LOWEST)

	down := false
	switch p.curTok.Type {
	case token.TO:
		p.nextToken()
	case token.DOWNTO:
		down = true
		p.nextToken()
	default:
		p.haltUnexpected()
	}
	end := p.parseExpression(LOWEST)
	p.expect(token.DO)
	body := p.parseStatement()

	return &ast.ForStmt{StartPos: pos, Var: v, Start: start, End: end, Down: down, Body: body}
}

// parseCaseStmt parses `case expr of label_list: stmt; ... [else stmt_list] end`.
func (p *Parser) parseCaseStmt() *ast.CaseStmt {
	pos := p.curTok.Pos
	p.expect(token.CASE)
	expr := p.parseExpression(LOWEST)
	p.expect(token.OF)

	stmt := &ast.CaseStmt{StartPos: pos, Expr: expr}
	for p.curTok.Type != token.END && p.curTok.Type != token.ELSE {
		labels := []ast.Expression{p.parseExpression(ADDITIVE)}
		for p.curTok.Type == token.COMMA {
			p.nextToken()
			labels = append(labels, p.parseExpression(ADDITIVE))
		}
		p.expect(token.COLON)
		body := p.parseStatement()
		stmt.Arms = append(stmt.Arms, ast.CaseArm{Labels: labels, Body: body})
		if p.curTok.Type == token.SEMICOLON {
			p.nextToken()
		}
	}

	if p.curTok.Type == token.ELSE {
		p.nextToken()
		stmt.Else = p.parseStatementSeq(token.END)
	}
	p.expect(token.END)
	return stmt
}

func (p *Parser) parseWithStmt() *ast.WithStmt {
	pos := p.curTok.Pos
	p.expect(token.WITH)
	vars := []ast.Expression{p.parseExpression(LOWEST)}
	for p.curTok.Type == token.COMMA {
		p.nextToken()
		vars = append(vars, p.parseExpression(LOWEST))
	}
	p.expect(token.DO)
	body := p.parseStatement()
	return &ast.WithStmt{StartPos: pos, Vars: vars, Body: body}
}

func (p *Parser) parseGotoStmt() *ast.GotoStmt {
	pos := p.curTok.Pos
	p.expect(token.GOTO)
	label := p.parseIntLiteral()
	return &ast.GotoStmt{StartPos: pos, Label: label}
}

func (p *Parser) parseLabeledStmt() *ast.LabeledStmt {
	pos := p.curTok.Pos
	label := p.parseIntLiteral()
	p.expect(token.COLON)
	stmt := p.parseStatement()
	return &ast.LabeledStmt{StartPos: pos, Label: label, Stmt: stmt}
}
