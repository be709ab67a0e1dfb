package parser

import (
	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/token"
)

// parseType parses a type denoter: a builtin scalar name, an alias
// reference, an array (closed or open), an enum, a subrange, `packed T`,
// a short string, `set of T`, `file of T`, or a record (with optional
// variant part).
func (p *Parser) parseType() ast.TypeExpr {
	pos := p.curTok.Pos

	switch p.curTok.Type {
	case token.INTEGER_TYPE:
		p.nextToken()
		return &ast.SimpleType{StartPos: pos, Name: "integer"}
	case token.REAL_TYPE:
		p.nextToken()
		return &ast.SimpleType{StartPos: pos, Name: "real"}
	case token.BOOLEAN_TYPE:
		p.nextToken()
		return &ast.SimpleType{StartPos: pos, Name: "boolean"}
	case token.CHAR_TYPE:
		p.nextToken()
		return &ast.SimpleType{StartPos: pos, Name: "char"}
	case token.PACKED:
		p.nextToken()
		return &ast.PackedType{StartPos: pos, Inner: p.parseType()}
	case token.ARRAY:
		return p.parseArrayType()
	case token.SET:
		p.nextToken()
		p.expect(token.OF)
		return &ast.SetType{StartPos: pos, Elem: p.parseType()}
	case token.FILE:
		p.nextToken()
		p.expect(token.OF)
		return &ast.FileType{StartPos: pos, Elem: p.parseType()}
	case token.RECORD:
		return p.parseRecordType()
	case token.LPAREN:
		return p.parseEnumType()
	case token.IDENT:
		name := p.expectIdentLiteral()
		if p.curTok.Type == token.LBRACKET {
			p.nextToken()
			length := p.parseExpression(LOWEST)
			p.expect(token.RBRACKET)
			return &ast.ShortStringType{StartPos: pos, Base: &ast.IdType{StartPos: pos, Name: name}, Len: length}
		}
		if p.curTok.Type == token.DOTDOT {
			low := ast.Expression(&ast.VarExpr{StartPos: pos, Name: name})
			p.nextToken()
			high := p.parseExpression(ADDITIVE)
			return &ast.SubrangeType{StartPos: pos, Low: low, High: high}
		}
		return &ast.IdType{StartPos: pos, Name: name}
	default:
		low := p.parseExpression(ADDITIVE)
		p.expect(token.DOTDOT)
		high := p.parseExpression(ADDITIVE)
		return &ast.SubrangeType{StartPos: pos, Low: low, High: high}
	}
}

// parseArrayType parses `array of T` (open form) or
// `array [r1, r2, ...] of T` (closed form, each ri a `const..const` range).
func (p *Parser) parseArrayType() *ast.ArrayType {
	pos := p.curTok.Pos
	p.expect(token.ARRAY)

	if p.curTok.Type == token.OF {
		p.nextToken()
		elem := p.parseType()
		return &ast.ArrayType{StartPos: pos, Ranges: nil, Elem: elem}
	}

	p.expect(token.LBRACKET)
	var ranges []ast.Range
	for {
		low := p.parseExpression(ADDITIVE)
		p.expect(token.DOTDOT)
		high := p.parseExpression(ADDITIVE)
		ranges = append(ranges, ast.Range{Low: low, High: high})
		if p.curTok.Type != token.COMMA {
			break
		}
		p.nextToken()
	}
	p.expect(token.RBRACKET)
	p.expect(token.OF)
	elem := p.parseType()
	return &ast.ArrayType{StartPos: pos, Ranges: ranges, Elem: elem}
}

func (p *Parser) parseEnumType() *ast.EnumType {
	pos := p.curTok.Pos
	p.expect(token.LPAREN)
	names := p.parseIdentList()
	p.expect(token.RPAREN)
	return &ast.EnumType{StartPos: pos, Names: names}
}

func (p *Parser) parseFieldGroups(stopAt token.Type) []ast.RecordField {
	var fields []ast.RecordField
	for p.curTok.Type == token.IDENT {
		names := p.parseIdentList()
		p.expect(token.COLON)
		typ := p.parseType()
		fields = append(fields, ast.RecordField{Names: names, Type: typ})
		if p.curTok.Type == token.SEMICOLON {
			p.nextToken()
		}
	}
	_ = stopAt
	return fields
}

// parseRecordType parses `record fields...; [case tag: T of labels: (...);...] end`.
func (p *Parser) parseRecordType() *ast.RecordType {
	pos := p.curTok.Pos
	p.expect(token.RECORD)

	fields := p.parseFieldGroups(token.END)

	var variant *ast.VariantPart
	if p.curTok.Type == token.CASE {
		p.nextToken()
		tagName := p.expectIdentLiteral()
		p.expect(token.COLON)
		tagType := p.parseType()
		p.expect(token.OF)

		var cases []ast.VariantCase
		for p.curTok.Type != token.END {
			labels := []ast.Expression{p.parseExpression(LOWEST)}
			for p.curTok.Type == token.COMMA {
				p.nextToken()
				labels = append(labels, p.parseExpression(LOWEST))
			}
			p.expect(token.COLON)
			p.expect(token.LPAREN)
			vfields := p.parseFieldGroups(token.RPAREN)
			p.expect(token.RPAREN)
			if p.curTok.Type == token.SEMICOLON {
				p.nextToken()
			}
			cases = append(cases, ast.VariantCase{Labels: labels, Fields: vfields})
		}
		variant = &ast.VariantPart{TagName: tagName, TagType: tagType, Cases: cases}
	}

	p.expect(token.END)
	return &ast.RecordType{StartPos: pos, Fields: fields, Variant: variant}
}
