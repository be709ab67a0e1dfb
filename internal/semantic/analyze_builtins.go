package semantic

import "github.com/hgoncalo/pascalsvm/internal/ast"

// builtinProcedures/builtinFunctions are just registered so resolving
// their bare name (e.g. inside an error message) finds something; the
// actual signature checking for each happens in checkBuiltinCall below,
// since these all have either variadic or otherwise non-uniform argument
// shapes that a single Params list can't describe.
var builtinProcedures = []string{"write", "writeln", "read", "readln", "rewrite", "assign", "close"}
var builtinFunctions = []string{"length", "high", "chr"}

func (a *Analyzer) registerBuiltins() {
	for _, name := range builtinProcedures {
		a.global.Define(&Symbol{Name: name, Kind: KindProcedure, IsBuiltin: true})
	}
	for _, name := range builtinFunctions {
		a.global.Define(&Symbol{Name: name, Kind: KindFunction, IsBuiltin: true})
	}
}

// isBuiltinCallee reports whether name is one of the built-ins or a cast
// form (integer/real), handled by checkBuiltinCall rather than by ordinary
// user-symbol arity/type matching.
func isBuiltinCallee(name string) bool {
	switch lowered(name) {
	case "write", "writeln", "read", "readln", "rewrite", "assign", "close",
		"length", "high", "chr", "integer", "real":
		return true
	}
	return false
}

// checkBuiltinCall validates one of the pre-registered built-ins or a
// integer()/real() cast, returning its result type (Void for procedures).
func (a *Analyzer) checkBuiltinCall(e ast.Node, name string, args []ast.Expression) *Type {
	switch lowered(name) {
	case "write", "writeln":
		for _, arg := range args {
			a.analyzeExpr(arg)
		}
		return Void
	case "read", "readln":
		for _, arg := range args {
			t := a.analyzeExpr(arg)
			if t.Kind != KInteger && t.Kind != KReal && t.Kind != KChar && t.Kind != KTexto {
				a.halt(arg.Pos(), "Argumento de leitura tem tipo não suportado.")
			}
		}
		return Void
	case "rewrite", "close":
		if len(args) != 1 {
			a.halt(e.Pos(), "Esperado exatamente um argumento.")
		}
		if t := a.analyzeExpr(args[0]); t.Kind != KFile {
			a.halt(args[0].Pos(), "Argumento deve ser uma variável de ficheiro.")
		}
		return Void
	case "assign":
		if len(args) != 2 {
			a.halt(e.Pos(), "'assign' requer dois argumentos.")
		}
		if t := a.analyzeExpr(args[0]); t.Kind != KFile {
			a.halt(args[0].Pos(), "Primeiro argumento de 'assign' deve ser uma variável de ficheiro.")
		}
		if t := a.analyzeExpr(args[1]); t.Kind != KTexto {
			a.halt(args[1].Pos(), "Segundo argumento de 'assign' deve ser texto.")
		}
		return Void
	case "length", "high":
		if len(args) != 1 {
			a.halt(e.Pos(), "Esperado exatamente um argumento.")
		}
		if t := a.analyzeExpr(args[0]); t.Kind != KArray {
			a.halt(args[0].Pos(), "Argumento deve ser um array.")
		}
		return Integer
	case "chr":
		if len(args) != 1 {
			a.halt(e.Pos(), "'chr' requer um argumento.")
		}
		if t := a.analyzeExpr(args[0]); t.Kind != KInteger {
			a.halt(args[0].Pos(), "Argumento de 'chr' deve ser inteiro.")
		}
		return Char
	case "integer":
		if len(args) != 1 {
			a.halt(e.Pos(), "Conversão requer um argumento.")
		}
		a.analyzeExpr(args[0])
		return Integer
	case "real":
		if len(args) != 1 {
			a.halt(e.Pos(), "Conversão requer um argumento.")
		}
		a.analyzeExpr(args[0])
		return Real
	}
	return Void
}
