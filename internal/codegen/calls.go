package codegen

import (
	"strconv"

	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/semantic"
)

var ioWriters = map[string]bool{"write": true, "writeln": true}
var ioReaders = map[string]bool{"read": true, "readln": true}

// lowerCallValue lowers a call used as a value: a built-in (length/high,
// chr, integer/real casts) or a user function. A procedure named in
// expression position fails with a diagnostic; procedure-call statements
// never reach here, since lowerCallStmt in statements.go lowers them.
func (g *Generator) lowerCallValue(e *ast.CallExpr) *semantic.Type {
	name := lowered(e.Name)
	switch name {
	case "length":
		return g.lowerLengthHigh(e, false)
	case "high":
		return g.lowerLengthHigh(e, true)
	case "chr":
		g.lowerExprValue(e.Args[0]) // chars are their ordinal value at runtime
		return semantic.Char
	case "integer":
		t := g.lowerExprValue(e.Args[0])
		if t.Kind == semantic.KReal {
			g.emit("FTOI")
		}
		return semantic.Integer
	case "real":
		t := g.lowerExprValue(e.Args[0])
		if t.Kind != semantic.KReal {
			g.emit("ITOF")
		}
		return semantic.Real
	}

	info, ok := g.subs[name]
	if !ok {
		g.failf("função '%s' não foi declarada", e.Name)
	}
	if !info.IsFunction {
		g.failf("'%s' é um procedimento, não pode ser usado como valor", e.Name)
	}
	g.emitCall(info, e.Args)
	return info.ReturnType
}

// lowerLengthHigh resolves length()/high() entirely at compile time: array
// bounds are always constant-folded, so there is never a need to carry
// array metadata at runtime.
func (g *Generator) lowerLengthHigh(e *ast.CallExpr, high bool) *semantic.Type {
	t := g.typeOfArg(e.Args[0])
	if t.Kind != semantic.KArray {
		g.failf("'%s' requer um argumento do tipo array", e.Name)
	}
	r := t.Ranges[0]
	if high {
		g.emit("PUSHI " + strconv.Itoa(r.High))
	} else {
		g.emit("PUSHI " + strconv.Itoa(r.Size()))
	}
	return semantic.Integer
}

// typeOfArg resolves an argument's static type without emitting anything,
// for the compile-time-only builtins (length, high).
func (g *Generator) typeOfArg(expr ast.Expression) *semantic.Type {
	switch e := expr.(type) {
	case *ast.VarExpr:
		ref, ok := g.resolveName(e.Name)
		if !ok {
			g.failf("identificador '%s' não foi declarado", e.Name)
		}
		return ref.Type
	case *ast.ArrayExpr:
		base := g.typeOfArg(e.Base)
		remaining := base.Ranges[len(e.Indices):]
		if len(remaining) == 0 {
			return base.Elem
		}
		return semantic.ArrayOf(base.Elem, remaining)
	case *ast.FieldExpr:
		switch base := e.Base.(type) {
		case *ast.VarExpr:
			ref, _ := g.resolveName(base.Name)
			ft, _, _ := ref.Type.FieldOffset(e.Name)
			return ft
		case *ast.FieldExpr:
			parent := g.typeOfArg(base)
			ft, _, _ := parent.FieldOffset(e.Name)
			return ft
		}
	}
	g.failf("não foi possível determinar o tipo do argumento")
	return nil
}

// emitCall pushes a zero return slot, then each argument by value in
// order, then transfers control — the fixed SVM opcode set has no
// distinct reference-parameter opcode, so var/const parameter modes are
// type-checked but all arguments are passed uniformly by value.
func (g *Generator) emitCall(info *subInfo, args []ast.Expression) {
	g.emit("PUSHI 0")
	for _, a := range args {
		g.lowerExprValue(a)
	}
	g.emit("PUSHA " + info.Label)
	g.emit("CALL")
}

// lowerIOCall handles write/writeln/read/readln/rewrite/assign/close as
// statements — these never leave a value on the stack, so they are
// dispatched from statements.go rather than through lowerExprValue.
func (g *Generator) lowerIOCall(e *ast.CallExpr) {
	name := lowered(e.Name)
	switch name {
	case "write", "writeln":
		for _, a := range e.Args {
			g.lowerWriteArg(a)
		}
		if name == "writeln" {
			g.emit("WRITELN")
		}
	case "read", "readln":
		for _, a := range e.Args {
			g.lowerReadArg(a)
		}
	case "rewrite", "assign", "close":
		// file-handling builtins have no SVM-level representation in this
		// target; they are accepted for source compatibility and compiled
		// to no-ops.
	default:
		info, ok := g.subs[name]
		if !ok {
			g.failf("procedimento '%s' não foi declarado", e.Name)
		}
		g.emitCall(info, e.Args)
	}
}

func (g *Generator) lowerWriteArg(arg ast.Expression) {
	if f, ok := arg.(*ast.FmtExpr); ok {
		arg = f.Expr // width/precision have no runtime formatting opcode to honor
	}
	t := g.lowerExprValue(arg)
	switch t.Kind {
	case semantic.KTexto:
		g.emit("WRITES")
	default:
		g.emit("WRITEI")
	}
}

// lowerReadArg reads one value from input into the lvalue expr names.
// Only scalar integer/char targets are supported: READ leaves a raw
// textual token on the stack for ATOI/CHARAT to interpret, and there is
// no SVM opcode to parse a float or a whole line into a texto variable.
func (g *Generator) lowerReadArg(expr ast.Expression) {
	g.emit("READ")
	t := g.typeOfArg(expr)
	if t != nil && t.Kind == semantic.KChar {
		g.emit("CHARAT 0")
	} else {
		g.emit("ATOI")
	}
	g.lowerStoreTo(expr)
}
