package codegen

import (
	"fmt"

	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/semantic"
)

// globalSlot describes one name bound at program scope: a scalar global
// cell, a heap-backed array (ALLOCN'd, its base address held in the
// scalar cell at Offset), a flattened record (Size consecutive cells
// starting at Offset), or a constant (never stored, only folded at each
// use site).
type globalSlot struct {
	Class string // "global", "array", "record", "const"
	Offset int
	Type   *semantic.Type
	ConstValue any
}

// localSlot is the equivalent for a subprogram's frame-relative names.
type localSlot struct {
	Class  string // "local", "array", "record"
	Index  int
	Type   *semantic.Type
}

type subInfo struct {
	Label      string
	ArgCount   int
	IsFunction bool
	ReturnType *semantic.Type
	Params     []semantic.ParamInfo
	Decl       ast.Node
}

// Error is a codegen diagnostic: a non-foldable array bound, an
// unsupported operator/operand combination, or an unknown callee — the
// three failure modes spec.md's error taxonomy assigns to this stage.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func (g *Generator) failf(format string, args ...any) {
	panic(&Error{Message: fmt.Sprintf(format, args...)})
}

// buildSymbolTable is codegen's own phase-1 pass over the top-level
// declarations: harvested independently of the semantic analyzer's
// symbol table, per spec.md's description of CodeGen state as a
// self-contained artifact of its own traversal.
func (g *Generator) buildSymbolTable(block *ast.Block) {
	for _, decl := range block.Declarations {
		switch d := decl.(type) {
		case *ast.ConstsDecl:
			for _, b := range d.Bindings {
				v, t, ok := g.foldConst(b.Expr)
				if !ok {
					g.failf("constante '%s' não é uma expressão constante suportada", b.Name)
				}
				g.consts[lowered(b.Name)] = globalSlot{Class: "const", Type: t, ConstValue: v}
			}
		case *ast.TypesDecl:
			for _, b := range d.Bindings {
				g.typeAliases[lowered(b.Name)] = g.resolveType(b.Type)
			}
		case *ast.LabelsDecl:
			for _, n := range d.Labels {
				g.declaredLabels[n] = true
			}
		case *ast.VarDecl:
			for _, grp := range d.Groups {
				t := g.resolveType(grp.Type)
				for _, name := range grp.Names {
					g.defineGlobal(name, t)
				}
			}
		case *ast.FunctionDecl:
			g.subs[lowered(d.Name)] = &subInfo{
				Label: upper(d.Name), ArgCount: len(flattenParamNames(d.Params)), IsFunction: true,
				ReturnType: g.resolveType(d.ReturnType), Params: g.codegenParamInfos(d.Params), Decl: d,
			}
		case *ast.ProcedureDecl:
			g.subs[lowered(d.Name)] = &subInfo{
				Label: upper(d.Name), ArgCount: len(flattenParamNames(d.Params)), IsFunction: false,
				Params: g.codegenParamInfos(d.Params), Decl: d,
			}
		}
	}
}

func (g *Generator) codegenParamInfos(params []ast.Param) []semantic.ParamInfo {
	var infos []semantic.ParamInfo
	for _, p := range params {
		t := g.resolveType(p.Type)
		for _, name := range p.Names {
			infos = append(infos, semantic.ParamInfo{Name: name, Type: t, Mode: p.Mode})
		}
	}
	return infos
}

func flattenParamNames(params []ast.Param) []string {
	var names []string
	for _, p := range params {
		names = append(names, p.Names...)
	}
	return names
}

// defineGlobal reserves global storage for one declared variable: a
// single cell for a scalar, one cell (holding a heap base address, with
// an ALLOCN emitted into the prologue) for an array, or Size() consecutive
// cells for a record.
func (g *Generator) defineGlobal(name string, t *semantic.Type) {
	switch t.Kind {
	case semantic.KArray:
		off := g.globalCount
		g.globalCount++
		size := t.Size()
		g.prologue = append(g.prologue, fmt.Sprintf("PUSHI %d", size), "ALLOCN", fmt.Sprintf("STOREG %d", off))
		g.globals[lowered(name)] = globalSlot{Class: "array", Offset: off, Type: t}
	case semantic.KRecord:
		off := g.globalCount
		g.globalCount += t.Size()
		g.globals[lowered(name)] = globalSlot{Class: "record", Offset: off, Type: t}
	default:
		off := g.globalCount
		g.globalCount++
		g.globals[lowered(name)] = globalSlot{Class: "global", Offset: off, Type: t}
	}
}

// resolveType mirrors the semantic analyzer's type resolution, folding
// array/subrange bounds via this package's own constant folder — codegen
// needs concrete integers to compute allocation sizes regardless of
// whether the analyzer already validated the same expression.
func (g *Generator) resolveType(te ast.TypeExpr) *semantic.Type {
	switch t := te.(type) {
	case *ast.SimpleType:
		switch t.Name {
		case "integer":
			return semantic.Integer
		case "real":
			return semantic.Real
		case "boolean":
			return semantic.Boolean
		case "char":
			return semantic.Char
		}
	case *ast.IdType:
		if g.currentSub != nil {
			if rt, ok := g.localTypes[lowered(t.Name)]; ok {
				return rt
			}
		}
		if rt, ok := g.typeAliases[lowered(t.Name)]; ok {
			return rt
		}
		g.failf("tipo '%s' não foi declarado", t.Name)
	case *ast.ArrayType:
		elem := g.resolveType(t.Elem)
		if t.Ranges == nil {
			return semantic.ArrayOf(elem, []semantic.Range{{Low: 0, High: -1}})
		}
		ranges := make([]semantic.Range, len(t.Ranges))
		for i, r := range t.Ranges {
			ranges[i] = semantic.Range{Low: g.foldConstInt(r.Low), High: g.foldConstInt(r.High)}
		}
		return semantic.ArrayOf(elem, ranges)
	case *ast.OpenArrayType:
		return semantic.ArrayOf(g.resolveType(t.Elem), []semantic.Range{{Low: 0, High: -1}})
	case *ast.EnumType:
		return semantic.Integer
	case *ast.SubrangeType:
		return semantic.Integer
	case *ast.PackedType:
		return g.resolveType(t.Inner)
	case *ast.ShortStringType:
		return semantic.Texto
	case *ast.SetType:
		return semantic.SetOf(g.resolveType(t.Elem))
	case *ast.FileType:
		return semantic.FileOf(g.resolveType(t.Elem))
	case *ast.RecordType:
		var fields []semantic.FieldInfo
		for _, f := range t.Fields {
			ft := g.resolveType(f.Type)
			for _, name := range f.Names {
				fields = append(fields, semantic.FieldInfo{Name: name, Type: ft})
			}
		}
		if t.Variant != nil {
			for _, c := range t.Variant.Cases {
				for _, f := range c.Fields {
					ft := g.resolveType(f.Type)
					for _, name := range f.Names {
						fields = append(fields, semantic.FieldInfo{Name: name, Type: ft})
					}
				}
			}
		}
		return semantic.RecordOf(fields)
	}
	g.failf("tipo desconhecido na geração de código")
	return nil
}

func (g *Generator) foldConstInt(expr ast.Expression) int {
	v, t, ok := g.foldConst(expr)
	n, isInt := v.(int)
	if !ok || t.Kind != semantic.KInteger || !isInt {
		g.failf("limite de array/subrange não é uma expressão constante inteira")
	}
	return n
}

// foldConst is the constant evaluator spec.md §4.4 requires for array
// bounds: integer/real/boolean/char literals, named constant references,
// and `+ - * / div mod` over numeric operands.
func (g *Generator) foldConst(expr ast.Expression) (any, *semantic.Type, bool) {
	switch e := expr.(type) {
	case *ast.ConstExpr:
		switch e.Kind {
		case "integer":
			return e.Value, semantic.Integer, true
		case "real":
			return e.Value, semantic.Real, true
		case "boolean":
			return e.Value, semantic.Boolean, true
		case "char":
			return e.Value, semantic.Char, true
		case "texto":
			return e.Value, semantic.Texto, true
		}
	case *ast.VarExpr:
		if g.currentSub != nil {
			if c, ok := g.localConsts[lowered(e.Name)]; ok {
				return c.ConstValue, c.Type, true
			}
		}
		if c, ok := g.consts[lowered(e.Name)]; ok {
			return c.ConstValue, c.Type, true
		}
	case *ast.BinOpExpr:
		lv, lt, lok := g.foldConst(e.L)
		rv, rt, rok := g.foldConst(e.R)
		if !lok || !rok || !lt.IsNumeric() || !rt.IsNumeric() {
			return nil, nil, false
		}
		return foldArith(e.Op, lv, lt, rv, rt)
	}
	return nil, nil, false
}
