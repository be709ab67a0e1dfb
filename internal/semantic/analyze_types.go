package semantic

import (
	"fmt"

	"github.com/hgoncalo/pascalsvm/internal/ast"
)

// resolveType translates a parsed type denoter into the checked Type
// algebra, folding array bounds and subrange bounds to integers eagerly —
// spec.md requires array bounds be compile-time constants, and a subrange
// is only ever used to size an array or annotate a variable, never carried
// further as a distinct nominal type.
func (a *Analyzer) resolveType(te ast.TypeExpr) *Type {
	switch t := te.(type) {
	case *ast.SimpleType:
		switch t.Name {
		case "integer":
			return Integer
		case "real":
			return Real
		case "boolean":
			return Boolean
		case "char":
			return Char
		}
		a.halt(t.Pos(), fmt.Sprintf("Tipo desconhecido '%s'.", t.Name))
	case *ast.IdType:
		sym := a.resolve(t, t.Name)
		if sym.Kind != KindTypeAlias {
			a.halt(t.Pos(), fmt.Sprintf("'%s' não é um tipo.", t.Name))
		}
		return sym.Type
	case *ast.ArrayType:
		elem := a.resolveType(t.Elem)
		if t.Ranges == nil {
			// Open array form: treated as a single unknown-size dimension,
			// sized by its actual argument at the call site. This spec
			// has no separate-compilation call sites for open arrays, so
			// a zero-length placeholder range is a safe stand-in.
			return ArrayOf(elem, []Range{{Low: 0, High: -1}})
		}
		ranges := make([]Range, len(t.Ranges))
		for i, r := range t.Ranges {
			low := a.foldConstInt(r.Low)
			high := a.foldConstInt(r.High)
			ranges[i] = Range{Low: low, High: high}
		}
		return ArrayOf(elem, ranges)
	case *ast.OpenArrayType:
		return ArrayOf(a.resolveType(t.Elem), []Range{{Low: 0, High: -1}})
	case *ast.EnumType:
		// An enumeration is represented as a subrange of integer over its
		// ordinal values; individual names resolve as integer constants.
		for i, name := range t.Names {
			a.define(t, &Symbol{Name: name, Kind: KindConstant, Type: Integer, Value: i})
		}
		return Integer
	case *ast.SubrangeType:
		low := a.foldConstInt(t.Low)
		high := a.foldConstInt(t.High)
		_ = low
		_ = high
		return Integer
	case *ast.PackedType:
		return a.resolveType(t.Inner)
	case *ast.ShortStringType:
		return Texto
	case *ast.SetType:
		return SetOf(a.resolveType(t.Elem))
	case *ast.FileType:
		return FileOf(a.resolveType(t.Elem))
	case *ast.RecordType:
		var fields []FieldInfo
		for _, f := range t.Fields {
			ft := a.resolveType(f.Type)
			for _, name := range f.Names {
				fields = append(fields, FieldInfo{Name: name, Type: ft})
			}
		}
		if t.Variant != nil {
			for _, c := range t.Variant.Cases {
				for _, f := range c.Fields {
					ft := a.resolveType(f.Type)
					for _, name := range f.Names {
						fields = append(fields, FieldInfo{Name: name, Type: ft})
					}
				}
			}
		}
		return RecordOf(fields)
	}
	a.halt(te.Pos(), "Tipo desconhecido.")
	return nil
}

// foldConstInt folds expr to an integer, halting if it isn't a constant
// integer expression — used for array/subrange bounds.
func (a *Analyzer) foldConstInt(expr ast.Expression) int {
	value, typ, ok := a.foldConst(expr)
	n, isInt := value.(int)
	if !ok || typ.Kind != KInteger || !isInt {
		a.halt(expr.Pos(), "Limite de intervalo deve ser uma expressão constante inteira.")
	}
	return n
}
