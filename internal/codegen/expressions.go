package codegen

import (
	"strconv"
	"strings"

	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/semantic"
)

// lowerExprValue emits the instructions that leave expr's value on top of
// the stack, and returns its type (needed by the caller to pick an
// integer-vs-float opcode, or a coercion, at the next level up).
func (g *Generator) lowerExprValue(expr ast.Expression) *semantic.Type {
	switch e := expr.(type) {
	case *ast.ConstExpr:
		return g.lowerConst(e)
	case *ast.VarExpr:
		return g.lowerVarExpr(e)
	case *ast.ArrayExpr:
		_, _, elemType := g.emitArrayAddress(e)
		g.emit("LOADN")
		return elemType
	case *ast.FieldExpr:
		class, slot, typ := g.resolveRecordField(e)
		g.emitPush(class, slot)
		return typ
	case *ast.BinOpExpr:
		return g.lowerBinOp(e)
	case *ast.NotExpr:
		g.lowerExprValue(e.Expr)
		g.emit("NOT")
		return semantic.Boolean
	case *ast.CallExpr:
		return g.lowerCallValue(e)
	case *ast.SetLitExpr:
		return g.lowerSetLit(e)
	case *ast.FmtExpr:
		return g.lowerExprValue(e.Expr)
	}
	g.failf("expressão não suportada na geração de código")
	return nil
}

func (g *Generator) emitPush(class string, slot int) {
	switch class {
	case "local":
		g.emit("PUSHL " + strconv.Itoa(slot))
	default:
		g.emit("PUSHG " + strconv.Itoa(slot))
	}
}

func (g *Generator) lowerConst(e *ast.ConstExpr) *semantic.Type {
	switch e.Kind {
	case "integer":
		g.emit("PUSHI " + strconv.Itoa(e.Value.(int)))
		return semantic.Integer
	case "real":
		g.emit("PUSHF " + g.formatFloat(e.Value))
		return semantic.Real
	case "boolean":
		if e.Value.(bool) {
			g.emit("PUSHI 1")
		} else {
			g.emit("PUSHI 0")
		}
		return semantic.Boolean
	case "char":
		r, ok := e.Value.(rune)
		if !ok {
			g.failf("literal char com valor inesperado")
		}
		g.emit("PUSHI " + strconv.Itoa(int(r)))
		return semantic.Char
	case "texto":
		g.emit("PUSHS \"" + strings.ReplaceAll(e.Value.(string), "\"", "\"\"") + "\"")
		return semantic.Texto
	}
	g.failf("literal de tipo desconhecido")
	return nil
}

func (g *Generator) formatFloat(v any) string {
	switch f := v.(type) {
	case float64:
		return strconv.FormatFloat(f, 'g', -1, 64)
	case int:
		return strconv.Itoa(f) + ".0"
	}
	g.failf("literal real com valor inesperado")
	return ""
}

// constAsExpr turns a folded constant value back into a ConstExpr node, so
// a named constant reference can be lowered by recursing through
// lowerConst exactly as a literal would be.
func constAsExpr(t *semantic.Type, value any) *ast.ConstExpr {
	kind := "integer"
	switch t.Kind {
	case semantic.KReal:
		kind = "real"
	case semantic.KBoolean:
		kind = "boolean"
	case semantic.KChar:
		kind = "char"
	case semantic.KTexto:
		kind = "texto"
	}
	return &ast.ConstExpr{Kind: kind, Value: value}
}

func (g *Generator) lowerVarExpr(e *ast.VarExpr) *semantic.Type {
	ref, ok := g.resolveName(e.Name)
	if !ok {
		g.failf("identificador '%s' não foi declarado", e.Name)
	}
	switch ref.Class {
	case "const":
		return g.lowerConst(constAsExpr(ref.Type, ref.Const))
	case "local":
		g.emit("PUSHL " + strconv.Itoa(ref.Slot))
	case "global":
		g.emit("PUSHG " + strconv.Itoa(ref.Slot))
	case "localArray":
		g.emit("PUSHL " + strconv.Itoa(ref.Slot))
	case "globalArray":
		g.emit("PUSHG " + strconv.Itoa(ref.Slot))
	case "localRecord":
		g.emit("PUSHL " + strconv.Itoa(ref.Slot))
	case "globalRecord":
		g.emit("PUSHG " + strconv.Itoa(ref.Slot))
	default:
		g.failf("classe de armazenamento desconhecida para '%s'", e.Name)
	}
	return ref.Type
}

// emitArrayAddress emits the base address and a flattened, bounds-checked
// cell offset for a (possibly multi-dimensional) array access, leaving
// [address, offset] on the stack. It returns the storage class of the
// base ("local"/"global", informational only), the element count checked
// against, and the resulting element type after consuming e.Indices
// dimensions.
func (g *Generator) emitArrayAddress(e *ast.ArrayExpr) (string, int, *semantic.Type) {
	baseType := g.lowerExprValue(e.Base) // pushes the base address
	if baseType.Kind != semantic.KArray {
		g.failf("indexação requer um array")
	}

	ranges := baseType.Ranges
	if len(e.Indices) > len(ranges) {
		g.failf("demasiados índices para o array")
	}

	totalCount := 1
	for _, r := range ranges[:len(e.Indices)] {
		totalCount *= r.Size()
	}

	for i, idx := range e.Indices {
		r := ranges[i]
		if i > 0 {
			// Fold the running offset in: offset = offset*dimSize + thisIndex.
			// Stack order here is [..., offset]; scale it before pushing
			// this dimension's index, then combine the two.
			g.emit("PUSHI " + strconv.Itoa(r.Size()))
			g.emit("MUL")
		}
		g.lowerExprValue(idx)
		if r.Low != 0 {
			g.emit("PUSHI " + strconv.Itoa(r.Low))
			g.emit("SUB")
		}
		if i > 0 {
			g.emit("ADD")
		}
	}

	g.emit("CHECK 0," + strconv.Itoa(totalCount-1))

	elem := baseType.Elem
	remaining := ranges[len(e.Indices):]
	var elemType *semantic.Type
	if len(remaining) > 0 {
		elemType = semantic.ArrayOf(elem, remaining)
	} else {
		elemType = elem
	}
	if size := elemType.Size(); size != 1 {
		g.emit("PUSHI " + strconv.Itoa(size))
		g.emit("MUL")
	}

	return "array", totalCount, elemType
}

func (g *Generator) resolveRecordField(e *ast.FieldExpr) (string, int, *semantic.Type) {
	switch base := e.Base.(type) {
	case *ast.VarExpr:
		ref, ok := g.resolveName(base.Name)
		if !ok {
			g.failf("identificador '%s' não foi declarado", base.Name)
		}
		if ref.Class != "globalRecord" && ref.Class != "localRecord" {
			g.failf("acesso a campo requer uma variável record")
		}
		ft, off, found := ref.Type.FieldOffset(e.Name)
		if !found {
			g.failf("campo '%s' não existe neste record", e.Name)
		}
		class := "global"
		if ref.Class == "localRecord" {
			class = "local"
		}
		return class, ref.Slot + off, ft
	case *ast.FieldExpr:
		parentClass, parentSlot, parentType := g.resolveRecordField(base)
		if parentType.Kind != semantic.KRecord {
			g.failf("acesso a campo requer uma variável record")
		}
		ft, off, found := parentType.FieldOffset(e.Name)
		if !found {
			g.failf("campo '%s' não existe neste record", e.Name)
		}
		return parentClass, parentSlot + off, ft
	}
	g.failf("acesso a campo não suportado nesta expressão")
	return "", 0, nil
}

func (g *Generator) lowerBinOp(e *ast.BinOpExpr) *semantic.Type {
	switch e.Op {
	case "and", "or":
		g.lowerExprValue(e.L)
		g.lowerExprValue(e.R)
		if e.Op == "and" {
			g.emit("AND")
		} else {
			g.emit("OR")
		}
		return semantic.Boolean
	case "div":
		g.lowerExprValue(e.L)
		g.lowerExprValue(e.R)
		g.emit("DIV")
		return semantic.Integer
	case "mod":
		g.lowerExprValue(e.L)
		g.lowerExprValue(e.R)
		g.emit("MOD")
		return semantic.Integer
	}

	lt := g.lowerExprValue(e.L)
	rt := g.lowerExprValue(e.R)
	isFloat := lt.Kind == semantic.KReal || rt.Kind == semantic.KReal

	switch e.Op {
	case "+":
		g.emit(pick(isFloat, "FADD", "ADD"))
		return resultNumeric(isFloat)
	case "-":
		g.emit(pick(isFloat, "FSUB", "SUB"))
		return resultNumeric(isFloat)
	case "*":
		g.emit(pick(isFloat, "FMUL", "MUL"))
		return resultNumeric(isFloat)
	case "/":
		g.emit(pick(isFloat, "FDIV", "DIV"))
		return semantic.Real
	case "=":
		g.emit("EQUAL")
		return semantic.Boolean
	case "<>":
		g.emit("EQUAL")
		g.emit("NOT")
		return semantic.Boolean
	case "<":
		g.emit(pick(isFloat, "FINF", "INF"))
		return semantic.Boolean
	case "<=":
		g.emit(pick(isFloat, "FINFEQ", "INFEQ"))
		return semantic.Boolean
	case ">":
		g.emit(pick(isFloat, "FSUP", "SUP"))
		return semantic.Boolean
	case ">=":
		g.emit(pick(isFloat, "FSUPEQ", "SUPEQ"))
		return semantic.Boolean
	case "in":
		g.failf("operador 'in' não é suportado pelo conjunto fixo de instruções SVM")
	}
	g.failf("operador desconhecido '%s'", e.Op)
	return nil
}

func pick(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func resultNumeric(isFloat bool) *semantic.Type {
	if isFloat {
		return semantic.Real
	}
	return semantic.Integer
}

// lowerSetLit emits a constant-only approximation of a set literal: each
// element and range bound must fold to a compile-time integer, since the
// fixed SVM opcode set has no shift instruction to build a bitmask at
// runtime. The set is represented as an integer bitmask, bit i set iff i
// is a member.
func (g *Generator) lowerSetLit(e *ast.SetLitExpr) *semantic.Type {
	mask := 0
	for _, el := range e.Elems {
		if bo, ok := el.(*ast.BinOpExpr); ok && bo.Op == ".." {
			lo, _, lok := g.foldConst(bo.L)
			hi, _, hok := g.foldConst(bo.R)
			if !lok || !hok {
				g.failf("elementos de conjunto devem ser constantes")
			}
			for v := lo.(int); v <= hi.(int); v++ {
				mask |= 1 << uint(v)
			}
			continue
		}
		v, _, ok := g.foldConst(el)
		if !ok {
			g.failf("elementos de conjunto devem ser constantes")
		}
		mask |= 1 << uint(toInt(v))
	}
	g.emit("PUSHI " + strconv.Itoa(mask))
	return semantic.SetOf(semantic.Integer)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}
