// Package semantic walks a parsed AST, resolves every name against a
// lexically scoped symbol table, and checks the type and arity rules a
// Pascal-family program must satisfy before code generation can proceed.
package semantic

import (
	"fmt"

	"github.com/hgoncalo/pascalsvm/internal/ast"
)

// Analyzer holds all state for a single analysis pass. It is not reusable
// across compilations.
type Analyzer struct {
	global *Scope

	currentScope     *Scope
	currentFunction  *Symbol // non-nil while walking a function body
	currentProcedure *Symbol // non-nil while walking a procedure body

	labelCounter int
}

// New creates an Analyzer with built-ins registered in its global scope.
func New() *Analyzer {
	a := &Analyzer{global: NewScope(nil)}
	a.currentScope = a.global
	a.registerBuiltins()
	return a
}

// Analyze type-checks prog, returning the first diagnostic encountered, if
// any. On success the AST's names are fully resolvable against a.global
// and every nested scope reachable from it.
func (a *Analyzer) Analyze(prog *ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if h, ok := r.(haltError); ok {
				err = h.err
				return
			}
			panic(r)
		}
	}()

	a.analyzeBlock(prog.Block)
	return nil
}

// analyzeBlock processes one declaration sequence — const/type/var/
// function/procedure sections, in whatever order the parser produced them
// — against the current scope, then walks the trailing compound statement.
// Declaration order within a scope determines visibility: a later
// declaration may reference an earlier one in the same scope, never the
// reverse.
func (a *Analyzer) analyzeBlock(block *ast.Block) {
	for _, decl := range block.Declarations {
		switch d := decl.(type) {
		case *ast.ConstsDecl:
			a.analyzeConstsDecl(d)
		case *ast.TypesDecl:
			a.analyzeTypesDecl(d)
		case *ast.LabelsDecl:
			a.analyzeLabelsDecl(d)
		case *ast.VarDecl:
			a.analyzeVarDecl(d)
		case *ast.FunctionDecl:
			a.analyzeFunctionDecl(d)
		case *ast.ProcedureDecl:
			a.analyzeProcedureDecl(d)
		}
	}

	if block.Compound != nil {
		a.analyzeStatement(block.Compound)
	}
}

func (a *Analyzer) define(pos ast.Node, sym *Symbol) {
	if !a.currentScope.Define(sym) {
		a.halt(pos.Pos(), fmt.Sprintf("Variável '%s' já foi declarada neste escopo.", sym.Name))
	}
}

func (a *Analyzer) resolve(pos ast.Node, name string) *Symbol {
	sym, ok := a.currentScope.Resolve(name)
	if !ok {
		a.halt(pos.Pos(), fmt.Sprintf("Identificador '%s' não foi declarado.", name))
	}
	return sym
}

func (a *Analyzer) analyzeConstsDecl(d *ast.ConstsDecl) {
	for _, b := range d.Bindings {
		value, typ, ok := a.foldConst(b.Expr)
		if !ok {
			a.halt(b.Expr.Pos(), fmt.Sprintf("Expressão constante inválida para '%s'.", b.Name))
		}
		a.define(d, &Symbol{Name: b.Name, Kind: KindConstant, Type: typ, Value: value})
	}
}

func (a *Analyzer) analyzeTypesDecl(d *ast.TypesDecl) {
	for _, b := range d.Bindings {
		typ := a.resolveType(b.Type)
		typ.Name = b.Name
		a.define(d, &Symbol{Name: b.Name, Kind: KindTypeAlias, Type: typ})
	}
}

func (a *Analyzer) analyzeLabelsDecl(d *ast.LabelsDecl) {
	for _, n := range d.Labels {
		name := fmt.Sprintf("%d", n)
		a.define(d, &Symbol{Name: name, Kind: KindLabel})
	}
}

func (a *Analyzer) analyzeVarDecl(d *ast.VarDecl) {
	for _, g := range d.Groups {
		typ := a.resolveType(g.Type)
		for _, name := range g.Names {
			a.define(d, &Symbol{Name: name, Kind: KindVariable, Type: typ})
		}
	}
}
