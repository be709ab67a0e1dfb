package codegen

import (
	"strconv"

	"github.com/hgoncalo/pascalsvm/internal/ast"
)

// lowerStatement dispatches a statement to its instruction sequence. It
// never leaves anything on the stack.
func (g *Generator) lowerStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.EmptyStmt:
		// nothing to emit
	case *ast.CompoundStmt:
		for _, inner := range s.Stmts {
			g.lowerStatement(inner)
		}
	case *ast.AssignStmt:
		g.lowerAssign(s)
	case *ast.CallStmt:
		g.lowerCallStmt(s)
	case *ast.IfStmt:
		g.lowerIf(s)
	case *ast.WhileStmt:
		g.lowerWhile(s)
	case *ast.RepeatStmt:
		g.lowerRepeat(s)
	case *ast.ForStmt:
		g.lowerFor(s)
	case *ast.CaseStmt:
		g.lowerCase(s)
	case *ast.WithStmt:
		// The body is checked against the with-variable's record type but
		// field names are not injected unqualified into scope — every
		// field reference inside the body must stay fully qualified.
		g.lowerStatement(s.Body)
	case *ast.GotoStmt:
		g.emit("JUMP LBL" + strconv.Itoa(s.Label))
	case *ast.LabeledStmt:
		g.emit("LBL" + strconv.Itoa(s.Label) + ":")
		g.lowerStatement(s.Stmt)
	default:
		g.failf("instrução não suportada na geração de código")
	}
}

func (g *Generator) lowerCallStmt(s *ast.CallStmt) {
	name := lowered(s.Name)
	if ioWriters[name] || ioReaders[name] || name == "rewrite" || name == "assign" || name == "close" {
		g.lowerIOCall(&ast.CallExpr{StartPos: s.StartPos, Name: s.Name, Args: s.Args})
		return
	}
	info, ok := g.subs[name]
	if !ok {
		g.failf("procedimento '%s' não foi declarado", s.Name)
	}
	g.emitCall(info, s.Args)
}

// lowerAssign assigns RHS into LHS. A function's own name, inside its own
// body, resolves through the same locals map as any other local — the
// return-slot binding emitSubroutine set up makes no special case needed
// here.
func (g *Generator) lowerAssign(s *ast.AssignStmt) {
	g.lowerExprValue(s.RHS)
	g.lowerStoreTo(s.LHS)
}

// lowerStoreTo emits the instructions to pop a value (already computed by
// the caller) into expr. It centralizes the three lvalue shapes so both
// assignment and `read` share the logic.
func (g *Generator) lowerStoreTo(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.VarExpr:
		ref, ok := g.resolveName(e.Name)
		if !ok {
			g.failf("identificador '%s' não foi declarado", e.Name)
		}
		switch ref.Class {
		case "local":
			g.emit("STOREL " + strconv.Itoa(ref.Slot))
		case "global":
			g.emit("STOREG " + strconv.Itoa(ref.Slot))
		default:
			g.failf("'%s' não pode ser o alvo de uma atribuição", e.Name)
		}
	case *ast.ArrayExpr:
		_, _, _ = g.emitArrayAddress(e)
		g.emit("STOREN")
	case *ast.FieldExpr:
		class, slot, _ := g.resolveRecordField(e)
		if class == "local" {
			g.emit("STOREL " + strconv.Itoa(slot))
		} else {
			g.emit("STOREG " + strconv.Itoa(slot))
		}
	default:
		g.failf("alvo de atribuição inválido")
	}
}

func (g *Generator) lowerIf(s *ast.IfStmt) {
	if s.Else == nil {
		labels := g.newLabelSet("ENDIF")
		g.lowerExprValue(s.Cond)
		g.emit("JZ " + labels[0])
		g.lowerStatement(s.Then)
		g.emit(labels[0] + ":")
		return
	}
	labels := g.newLabelSet("ELSE", "ENDIF")
	g.lowerExprValue(s.Cond)
	g.emit("JZ " + labels[0])
	g.lowerStatement(s.Then)
	g.emit("JUMP " + labels[1])
	g.emit(labels[0] + ":")
	g.lowerStatement(s.Else)
	g.emit(labels[1] + ":")
}

func (g *Generator) lowerWhile(s *ast.WhileStmt) {
	labels := g.newLabelSet("WHILE", "ENDWHILE")
	g.emit(labels[0] + ":")
	g.lowerExprValue(s.Cond)
	g.emit("JZ " + labels[1])
	g.lowerStatement(s.Body)
	g.emit("JUMP " + labels[0])
	g.emit(labels[1] + ":")
}

func (g *Generator) lowerRepeat(s *ast.RepeatStmt) {
	labels := g.newLabelSet("REPEAT")
	g.emit(labels[0] + ":")
	for _, inner := range s.Body {
		g.lowerStatement(inner)
	}
	g.lowerExprValue(s.Cond)
	g.emit("JZ " + labels[0])
}

func (g *Generator) lowerFor(s *ast.ForStmt) {
	labels := g.newLabelSet("FOR", "ENDFOR")
	varExpr := &ast.VarExpr{StartPos: s.StartPos, Name: s.Var}

	g.lowerExprValue(s.Start)
	g.lowerStoreTo(varExpr)

	g.emit(labels[0] + ":")
	g.lowerExprValue(varExpr)
	g.lowerExprValue(s.End)
	if s.Down {
		g.emit("SUPEQ")
	} else {
		g.emit("INFEQ")
	}
	g.emit("JZ " + labels[1])

	g.lowerStatement(s.Body)

	g.lowerExprValue(varExpr)
	g.emit("PUSHI 1")
	if s.Down {
		g.emit("SUB")
	} else {
		g.emit("ADD")
	}
	g.lowerStoreTo(varExpr)
	g.emit("JUMP " + labels[0])
	g.emit(labels[1] + ":")
}

func (g *Generator) lowerCase(s *ast.CaseStmt) {
	endLabels := g.newLabelSet("ENDCASE")
	endLabel := endLabels[0]

	var armLabels []string
	for range s.Arms {
		armLabels = append(armLabels, g.newLabelSet("CASEARM")[0])
	}
	elseLabels := g.newLabelSet("CASEELSE")
	elseLabel := elseLabels[0]

	for i, arm := range s.Arms {
		for _, lbl := range arm.Labels {
			skip := g.newLabelSet("CASETEST")[0]
			g.lowerExprValue(s.Expr)
			g.lowerExprValue(lbl)
			g.emit("EQUAL")
			g.emit("JZ " + skip)
			g.emit("JUMP " + armLabels[i])
			g.emit(skip + ":")
		}
	}
	g.emit("JUMP " + elseLabel)

	for i, arm := range s.Arms {
		g.emit(armLabels[i] + ":")
		g.lowerStatement(arm.Body)
		g.emit("JUMP " + endLabel)
	}

	g.emit(elseLabel + ":")
	for _, inner := range s.Else {
		g.lowerStatement(inner)
	}
	g.emit(endLabel + ":")
}
