// Package codegen lowers a checked AST to SVM's line-oriented textual
// assembly: global slot allocation, heap-backed array storage, control-flow
// labels, and subprogram frames.
package codegen

import (
	"strconv"
	"strings"

	"github.com/hgoncalo/pascalsvm/internal/ast"
	"github.com/hgoncalo/pascalsvm/internal/semantic"
)

// Generator holds all state for lowering a single compilation unit. It is
// not reusable across compilations — construct a fresh one per Compile.
type Generator struct {
	buf      []string // the final instruction stream, append-only
	prologue []string // array-allocation instructions harvested in phase 1

	globalCount int
	globals     map[string]globalSlot
	consts      map[string]globalSlot
	typeAliases map[string]*semantic.Type
	subs        map[string]*subInfo
	declaredLabels map[int]bool

	labelCounter int

	// Per-subroutine frame, valid only while emitting that subroutine's
	// body in phase 3.
	locals        map[string]localSlot
	localCount    int
	currentSub    *subInfo
	localConsts   map[string]globalSlot
	localTypes    map[string]*semantic.Type
	localLabels   map[int]bool
}

// New creates an empty Generator.
func New() *Generator {
	return &Generator{
		globals:        make(map[string]globalSlot),
		consts:         make(map[string]globalSlot),
		typeAliases:    make(map[string]*semantic.Type),
		subs:           make(map[string]*subInfo),
		declaredLabels: make(map[int]bool),
	}
}

// Compile lowers prog to SVM assembly text. The caller is expected to have
// already run semantic.Analyze successfully; Compile still fails with a
// codegen Error for the three codegen-specific fault classes (non-foldable
// bound, unsupported operator/operand combination, unknown callee).
func (g *Generator) Compile(prog *ast.Program) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	g.buildSymbolTable(prog.Block)
	g.collectNestedSubs(prog.Block)

	g.emit("START")
	g.buf = append(g.buf, g.prologue...)
	g.lowerStatement(prog.Block.Compound)
	g.emit("STOP")

	for _, info := range g.subs {
		g.emitSubroutine(info)
	}

	return strings.Join(g.buf, "\n") + "\n", nil
}

func (g *Generator) emit(line string) {
	g.buf = append(g.buf, line)
}

// collectNestedSubs registers function/procedure declarations nested
// inside another subprogram's block into the same flat label namespace —
// this spec does not give nested procedures access to their enclosing
// subprogram's locals (no upvalue capture), only to the global scope, so
// flattening their labels is sufficient.
func (g *Generator) collectNestedSubs(block *ast.Block) {
	for _, decl := range block.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			if _, exists := g.subs[lowered(d.Name)]; !exists {
				g.subs[lowered(d.Name)] = &subInfo{
					Label: upper(d.Name), ArgCount: len(flattenParamNames(d.Params)), IsFunction: true,
					ReturnType: g.resolveType(d.ReturnType), Params: g.codegenParamInfos(d.Params), Decl: d,
				}
			}
			g.collectNestedSubs(d.Block)
		case *ast.ProcedureDecl:
			if _, exists := g.subs[lowered(d.Name)]; !exists {
				g.subs[lowered(d.Name)] = &subInfo{
					Label: upper(d.Name), ArgCount: len(flattenParamNames(d.Params)),
					Params: g.codegenParamInfos(d.Params), Decl: d,
				}
			}
			g.collectNestedSubs(d.Block)
		}
	}
}

// emitSubroutine emits one subprogram's label, frame-local body, and
// trailing RETURN. Parameters bind to local slots 0..nargs-1 in
// declaration order; a function additionally reserves slot nargs for its
// return value, written whenever the body assigns to the function's own
// name.
func (g *Generator) emitSubroutine(info *subInfo) {
	g.emit(info.Label + ":")

	prevLocals, prevCount, prevSub := g.locals, g.localCount, g.currentSub
	prevConsts, prevTypes, prevLabels := g.localConsts, g.localTypes, g.localLabels

	g.locals = make(map[string]localSlot)
	g.localConsts = make(map[string]globalSlot)
	g.localTypes = make(map[string]*semantic.Type)
	g.localLabels = make(map[int]bool)
	g.currentSub = info
	g.localCount = 0

	for _, p := range info.Params {
		g.locals[lowered(p.Name)] = localSlot{Class: "local", Index: g.localCount, Type: p.Type}
		g.localCount++
	}
	if info.IsFunction {
		g.locals[lowered(functionName(info.Decl))] = localSlot{Class: "local", Index: g.localCount, Type: info.ReturnType}
		g.localCount++
	}

	block := subroutineBlock(info.Decl)
	g.buildLocalSymbolTable(block)
	g.lowerStatement(block.Compound)

	g.emit("RETURN")

	g.locals, g.localCount, g.currentSub = prevLocals, prevCount, prevSub
	g.localConsts, g.localTypes, g.localLabels = prevConsts, prevTypes, prevLabels
}

func functionName(decl ast.Node) string {
	if f, ok := decl.(*ast.FunctionDecl); ok {
		return f.Name
	}
	return ""
}

func subroutineBlock(decl ast.Node) *ast.Block {
	switch d := decl.(type) {
	case *ast.FunctionDecl:
		return d.Block
	case *ast.ProcedureDecl:
		return d.Block
	}
	return nil
}

// buildLocalSymbolTable is phase 3's per-subroutine counterpart to
// buildSymbolTable: const/type declarations shadow the enclosing ones for
// the duration of this body, var declarations reserve frame-local slots
// (array locals are heap-backed exactly like array globals, just stored in
// a local cell via STOREL instead of STOREG), and nested function/
// procedure declarations are skipped here — collectNestedSubs already
// registered them globally.
func (g *Generator) buildLocalSymbolTable(block *ast.Block) {
	for _, decl := range block.Declarations {
		switch d := decl.(type) {
		case *ast.ConstsDecl:
			for _, b := range d.Bindings {
				v, t, ok := g.foldConst(b.Expr)
				if !ok {
					g.failf("constante local '%s' não é uma expressão constante suportada", b.Name)
				}
				g.localConsts[lowered(b.Name)] = globalSlot{Class: "const", Type: t, ConstValue: v}
			}
		case *ast.TypesDecl:
			for _, b := range d.Bindings {
				g.localTypes[lowered(b.Name)] = g.resolveType(b.Type)
			}
		case *ast.LabelsDecl:
			for _, n := range d.Labels {
				g.localLabels[n] = true
			}
		case *ast.VarDecl:
			for _, grp := range d.Groups {
				t := g.resolveType(grp.Type)
				for _, name := range grp.Names {
					g.defineLocal(name, t)
				}
			}
		}
	}
}

func (g *Generator) defineLocal(name string, t *semantic.Type) {
	switch t.Kind {
	case semantic.KArray:
		idx := g.localCount
		g.localCount++
		size := t.Size()
		g.emit("PUSHI " + strconv.Itoa(size))
		g.emit("ALLOCN")
		g.emit("STOREL " + strconv.Itoa(idx))
		g.locals[lowered(name)] = localSlot{Class: "array", Index: idx, Type: t}
	case semantic.KRecord:
		idx := g.localCount
		g.localCount += t.Size()
		g.locals[lowered(name)] = localSlot{Class: "record", Index: idx, Type: t}
	default:
		idx := g.localCount
		g.localCount++
		g.locals[lowered(name)] = localSlot{Class: "local", Index: idx, Type: t}
	}
}

