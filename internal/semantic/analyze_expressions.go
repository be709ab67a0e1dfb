package semantic

import (
	"fmt"

	"github.com/hgoncalo/pascalsvm/internal/ast"
)

// foldConst evaluates expr at analysis time, used for const declarations
// and array/subrange bounds. It supports integer/real/boolean/char
// literals, named constant references, and `+ - * / div mod` over numeric
// operands — the same set spec.md's code generator folds, kept here too
// since the analyzer independently needs bound values to size arrays.
func (a *Analyzer) foldConst(expr ast.Expression) (value any, typ *Type, ok bool) {
	switch e := expr.(type) {
	case *ast.ConstExpr:
		switch e.Kind {
		case "integer":
			return e.Value, Integer, true
		case "real":
			return e.Value, Real, true
		case "boolean":
			return e.Value, Boolean, true
		case "char":
			return e.Value, Char, true
		case "texto":
			return e.Value, Texto, true
		}
		return nil, nil, false
	case *ast.VarExpr:
		sym, found := a.currentScope.Resolve(e.Name)
		if !found || sym.Kind != KindConstant {
			return nil, nil, false
		}
		return sym.Value, sym.Type, true
	case *ast.BinOpExpr:
		lv, lt, lok := a.foldConst(e.L)
		rv, rt, rok := a.foldConst(e.R)
		if !lok || !rok || !lt.IsNumeric() || !rt.IsNumeric() {
			return nil, nil, false
		}
		return foldArith(e.Op, lv, lt, rv, rt)
	}
	return nil, nil, false
}

func foldArith(op string, lv any, lt *Type, rv any, rt *Type) (any, *Type, bool) {
	if op == "div" || op == "mod" {
		if lt.Kind != KInteger || rt.Kind != KInteger {
			return nil, nil, false
		}
		l, r := lv.(int), rv.(int)
		if r == 0 {
			return nil, nil, false
		}
		if op == "div" {
			return l / r, Integer, true
		}
		return l % r, Integer, true
	}

	result := ResultType(lt, rt)
	if result.Kind == KReal {
		l, r := asFloat(lv), asFloat(rv)
		switch op {
		case "+":
			return l + r, Real, true
		case "-":
			return l - r, Real, true
		case "*":
			return l * r, Real, true
		case "/":
			if r == 0 {
				return nil, nil, false
			}
			return l / r, Real, true
		}
		return nil, nil, false
	}

	l, r := lv.(int), rv.(int)
	switch op {
	case "+":
		return l + r, Integer, true
	case "-":
		return l - r, Integer, true
	case "*":
		return l * r, Integer, true
	case "/":
		if r == 0 {
			return nil, nil, false
		}
		return float64(l) / float64(r), Real, true
	}
	return nil, nil, false
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

// analyzeExpr type-checks expr in the current scope and returns its type,
// halting on the first violated rule.
func (a *Analyzer) analyzeExpr(expr ast.Expression) *Type {
	switch e := expr.(type) {
	case *ast.ConstExpr:
		switch e.Kind {
		case "integer":
			return Integer
		case "real":
			return Real
		case "boolean":
			return Boolean
		case "char":
			return Char
		case "texto":
			return Texto
		}
		a.halt(e.Pos(), "Literal de tipo desconhecido.")
	case *ast.VarExpr:
		sym := a.resolve(e, e.Name)
		if sym.Kind == KindFunction && len(sym.Params) == 0 {
			return sym.Type
		}
		if sym.Kind == KindTypeAlias || sym.Kind == KindProcedure {
			a.halt(e.Pos(), fmt.Sprintf("'%s' não pode ser usado como valor.", e.Name))
		}
		return sym.Type
	case *ast.ArrayExpr:
		return a.analyzeArrayIndex(e)
	case *ast.FieldExpr:
		return a.analyzeFieldAccess(e)
	case *ast.BinOpExpr:
		return a.analyzeBinOp(e)
	case *ast.NotExpr:
		operand := a.analyzeExpr(e.Expr)
		if operand.Kind != KBoolean {
			a.halt(e.Pos(), "Operando de 'not' deve ser booleano.")
		}
		return Boolean
	case *ast.CallExpr:
		return a.analyzeCall(e)
	case *ast.SetLitExpr:
		var elemType *Type
		for _, el := range e.Elems {
			t := a.analyzeExpr(el)
			if elemType == nil {
				elemType = t
			}
		}
		if elemType == nil {
			elemType = Integer
		}
		return SetOf(elemType)
	case *ast.FmtExpr:
		inner := a.analyzeExpr(e.Expr)
		if t := a.analyzeExpr(e.Width); t.Kind != KInteger {
			a.halt(e.Width.Pos(), "Largura de formatação deve ser inteira.")
		}
		if e.Prec != nil {
			if t := a.analyzeExpr(e.Prec); t.Kind != KInteger {
				a.halt(e.Prec.Pos(), "Precisão de formatação deve ser inteira.")
			}
		}
		return inner
	}
	a.halt(expr.Pos(), "Expressão inválida.")
	return nil
}

func (a *Analyzer) analyzeBinOp(e *ast.BinOpExpr) *Type {
	l := a.analyzeExpr(e.L)
	r := a.analyzeExpr(e.R)

	switch e.Op {
	case "+", "-", "*", "/":
		if !l.IsNumeric() || !r.IsNumeric() {
			a.halt(e.Pos(), fmt.Sprintf("Operandos de '%s' devem ser numéricos.", e.Op))
		}
		if e.Op == "/" {
			return Real
		}
		return ResultType(l, r)
	case "div", "mod":
		if l.Kind != KInteger || r.Kind != KInteger {
			a.halt(e.Pos(), fmt.Sprintf("Operandos de '%s' devem ser inteiros.", e.Op))
		}
		return Integer
	case "=", "<>":
		if l.IsNumeric() && r.IsNumeric() {
			return Boolean
		}
		if !l.Equal(r) || (l.Kind != KBoolean && l.Kind != KChar && l.Kind != KTexto && l.Kind != KSet) {
			a.halt(e.Pos(), fmt.Sprintf("Operandos de '%s' devem ter o mesmo tipo.", e.Op))
		}
		return Boolean
	case "<", "<=", ">", ">=":
		if l.IsNumeric() && r.IsNumeric() {
			return Boolean
		}
		if !l.Equal(r) || (l.Kind != KChar && l.Kind != KTexto) {
			a.halt(e.Pos(), fmt.Sprintf("Operandos de '%s' devem ser numéricos ou do mesmo tipo ordenável.", e.Op))
		}
		return Boolean
	case "in":
		if r.Kind != KSet {
			a.halt(e.Pos(), "Operando direito de 'in' deve ser um conjunto.")
		}
		if !l.Equal(r.Elem) {
			a.halt(e.Pos(), "Operando esquerdo de 'in' não corresponde ao tipo do conjunto.")
		}
		return Boolean
	case "and", "or":
		if l.Kind != KBoolean || r.Kind != KBoolean {
			a.halt(e.Pos(), fmt.Sprintf("Operandos de '%s' devem ser booleanos.", e.Op))
		}
		return Boolean
	}
	a.halt(e.Pos(), fmt.Sprintf("Operador desconhecido '%s'.", e.Op))
	return nil
}
