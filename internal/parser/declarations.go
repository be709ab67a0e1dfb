package parser

import (
	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/token"
)

// parseConstsDecl parses `const (name = expr;)+`.
func (p *Parser) parseConstsDecl() *ast.ConstsDecl {
	pos := p.curTok.Pos
	p.expect(token.CONST)

	decl := &ast.ConstsDecl{StartPos: pos}
	for p.curTok.Type == token.IDENT {
		name := p.expectIdentLiteral()
		p.expect(token.EQ)
		expr := p.parseExpression(LOWEST)
		p.expect(token.SEMICOLON)
		decl.Bindings = append(decl.Bindings, ast.ConstBinding{Name: name, Expr: expr})
	}
	return decl
}

// parseTypesDecl parses `type (name = type;)+`.
func (p *Parser) parseTypesDecl() *ast.TypesDecl {
	pos := p.curTok.Pos
	p.expect(token.TYPE)

	decl := &ast.TypesDecl{StartPos: pos}
	for p.curTok.Type == token.IDENT {
		name := p.expectIdentLiteral()
		p.expect(token.EQ)
		typ := p.parseType()
		p.expect(token.SEMICOLON)
		decl.Bindings = append(decl.Bindings, ast.TypeBinding{Name: name, Type: typ})
	}
	return decl
}

// parseLabelsDecl parses `label N, M, ...;`.
func (p *Parser) parseLabelsDecl() *ast.LabelsDecl {
	pos := p.curTok.Pos
	p.expect(token.LABEL)

	decl := &ast.LabelsDecl{StartPos: pos}
	decl.Labels = append(decl.Labels, p.parseIntLiteral())
	for p.curTok.Type == token.COMMA {
		p.nextToken()
		decl.Labels = append(decl.Labels, p.parseIntLiteral())
	}
	p.expect(token.SEMICOLON)
	return decl
}

// parseVarDecl parses `var (names: type;)+`.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	pos := p.curTok.Pos
	p.expect(token.VAR)

	decl := &ast.VarDecl{StartPos: pos}
	for p.curTok.Type == token.IDENT {
		names := p.parseIdentList()
		p.expect(token.COLON)
		typ := p.parseType()
		p.expect(token.SEMICOLON)
		decl.Groups = append(decl.Groups, ast.VarGroup{Names: names, Type: typ})
	}
	return decl
}

func (p *Parser) parseIdentList() []string {
	names := []string{p.expectIdentLiteral()}
	for p.curTok.Type == token.COMMA {
		p.nextToken()
		names = append(names, p.expectIdentLiteral())
	}
	return names
}

// parseParams parses the `(param_group; param_group; ...)` formal
// parameter list of a function or procedure, or returns nil if absent.
func (p *Parser) parseParams() []ast.Param {
	if p.curTok.Type != token.LPAREN {
		return nil
	}
	p.nextToken()

	var params []ast.Param
	for p.curTok.Type != token.RPAREN {
		mode := ast.ParamVal
		switch p.curTok.Type {
		case token.VAR:
			mode = ast.ParamVar
			p.nextToken()
		case token.CONST:
			mode = ast.ParamConst
			p.nextToken()
		}
		names := p.parseIdentList()
		p.expect(token.COLON)
		typ := p.parseType()
		params = append(params, ast.Param{Mode: mode, Names: names, Type: typ})
		if p.curTok.Type == token.SEMICOLON {
			p.nextToken()
		}
	}
	p.expect(token.RPAREN)
	return params
}

// parseFunctionDecl parses `function NAME(params): ReturnType; block;`.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	pos := p.curTok.Pos
	p.expect(token.FUNCTION)
	name := p.expectIdentLiteral()
	params := p.parseParams()
	p.expect(token.COLON)
	ret := p.parseType()
	p.expect(token.SEMICOLON)
	block := p.parseBlock()
	p.expect(token.SEMICOLON)

	return &ast.FunctionDecl{StartPos: pos, Name: name, Params: params, ReturnType: ret, Block: block}
}

// parseProcedureDecl parses `procedure NAME(params); block;`.
func (p *Parser) parseProcedureDecl() *ast.ProcedureDecl {
	pos := p.curTok.Pos
	p.expect(token.PROCEDURE)
	name := p.expectIdentLiteral()
	params := p.parseParams()
	p.expect(token.SEMICOLON)
	block := p.parseBlock()
	p.expect(token.SEMICOLON)

	return &ast.ProcedureDecl{StartPos: pos, Name: name, Params: params, Block: block}
}
