package semantic

import (
	"fmt"

	"github.com/hgoncalo/pascalsvm/internal/ast"
)

func (a *Analyzer) paramInfos(params []ast.Param) []ParamInfo {
	var infos []ParamInfo
	for _, p := range params {
		typ := a.resolveType(p.Type)
		for _, name := range p.Names {
			infos = append(infos, ParamInfo{Name: name, Type: typ, Mode: p.Mode})
		}
	}
	return infos
}

// analyzeFunctionDecl defines the function symbol in the enclosing scope
// (so recursive self-calls resolve), then walks its body in a fresh child
// scope that binds its parameters and, per spec.md §9, binds the
// function's own name to a dedicated return-slot variable symbol — so the
// "assigning to the function name is a return-value write" rule collapses
// to ordinary scope resolution instead of a name/arity heuristic.
func (a *Analyzer) analyzeFunctionDecl(d *ast.FunctionDecl) {
	params := a.paramInfos(d.Params)
	returnType := a.resolveType(d.ReturnType)

	sym := &Symbol{Name: d.Name, Kind: KindFunction, Type: returnType, Params: params}
	a.define(d, sym)

	prevScope, prevFunc, prevProc := a.currentScope, a.currentFunction, a.currentProcedure
	a.currentScope = NewScope(prevScope)
	a.currentFunction = sym
	a.currentProcedure = nil

	for _, p := range params {
		a.currentScope.Define(&Symbol{Name: p.Name, Kind: KindVariable, Type: p.Type})
	}
	a.currentScope.Define(&Symbol{Name: d.Name, Kind: KindVariable, Type: returnType, IsReturnSlot: true})

	a.analyzeBlock(d.Block)

	a.currentScope, a.currentFunction, a.currentProcedure = prevScope, prevFunc, prevProc
}

func (a *Analyzer) analyzeProcedureDecl(d *ast.ProcedureDecl) {
	params := a.paramInfos(d.Params)

	sym := &Symbol{Name: d.Name, Kind: KindProcedure, Params: params}
	a.define(d, sym)

	prevScope, prevFunc, prevProc := a.currentScope, a.currentFunction, a.currentProcedure
	a.currentScope = NewScope(prevScope)
	a.currentFunction = nil
	a.currentProcedure = sym

	for _, p := range params {
		a.currentScope.Define(&Symbol{Name: p.Name, Kind: KindVariable, Type: p.Type})
	}

	a.analyzeBlock(d.Block)

	a.currentScope, a.currentFunction, a.currentProcedure = prevScope, prevFunc, prevProc
}

// analyzeCall type-checks a call used as a value (function call, built-in,
// or cast), returning its result type.
func (a *Analyzer) analyzeCall(e *ast.CallExpr) *Type {
	return a.checkCall(e, e.Name, e.Args)
}

// checkCall resolves name as a callee and validates args against it: a
// built-in (including the integer()/real() casts), a type alias (cast,
// arity 1), or a user function/procedure (arity and per-argument
// coercion-aware type match).
func (a *Analyzer) checkCall(e ast.Node, name string, args []ast.Expression) *Type {
	if isBuiltinCallee(name) {
		return a.checkBuiltinCall(e, name, args)
	}

	sym := a.resolve(e, name)
	if sym.IsReturnSlot {
		// A call by the enclosing function's own name: skip the return
		// slot its body scope binds and use the function symbol defined
		// in an outer scope.
		for scope := a.currentScope; scope != nil; scope = scope.Parent() {
			if s, ok := scope.ResolveLocal(name); ok && !s.IsReturnSlot {
				sym = s
				break
			}
		}
	}
	switch sym.Kind {
	case KindTypeAlias:
		if len(args) != 1 {
			a.halt(e.Pos(), fmt.Sprintf("Conversão para '%s' requer um argumento.", name))
		}
		a.analyzeExpr(args[0])
		return sym.Type
	case KindFunction, KindProcedure:
		if len(args) != len(sym.Params) {
			a.halt(e.Pos(), fmt.Sprintf("'%s' espera %d argumento(s), recebeu %d.", name, len(sym.Params), len(args)))
		}
		for i, arg := range args {
			argType := a.analyzeExpr(arg)
			formal := sym.Params[i]
			if !CanCoerce(argType, formal.Type) {
				a.halt(arg.Pos(), fmt.Sprintf("Tipo do argumento %d de '%s' não corresponde ao parâmetro formal.", i+1, name))
			}
		}
		if sym.Kind == KindProcedure {
			return Void
		}
		return sym.Type
	}
	a.halt(e.Pos(), fmt.Sprintf("'%s' não é uma função, procedimento ou tipo.", name))
	return nil
}
