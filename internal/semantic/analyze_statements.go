package semantic

import (
	"fmt"

	"github.com/hgoncalo/pascalsvm/internal/ast"
)

func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.EmptyStmt:
		// nothing to check
	case *ast.AssignStmt:
		a.analyzeAssign(s)
	case *ast.CallStmt:
		a.checkCall(s, s.Name, s.Args)
	case *ast.IfStmt:
		if t := a.analyzeExpr(s.Cond); t.Kind != KBoolean {
			a.halt(s.Cond.Pos(), "Condição de 'if' deve ser booleana.")
		}
		a.analyzeStatement(s.Then)
		if s.Else != nil {
			a.analyzeStatement(s.Else)
		}
	case *ast.WhileStmt:
		if t := a.analyzeExpr(s.Cond); t.Kind != KBoolean {
			a.halt(s.Cond.Pos(), "Condição de 'while' deve ser booleana.")
		}
		a.analyzeStatement(s.Body)
	case *ast.RepeatStmt:
		for _, st := range s.Body {
			a.analyzeStatement(st)
		}
		if t := a.analyzeExpr(s.Cond); t.Kind != KBoolean {
			a.halt(s.Cond.Pos(), "Condição de 'repeat/until' deve ser booleana.")
		}
	case *ast.ForStmt:
		a.analyzeFor(s)
	case *ast.CaseStmt:
		a.analyzeCase(s)
	case *ast.WithStmt:
		for _, v := range s.Vars {
			if t := a.analyzeExpr(v); t.Kind != KRecord {
				a.halt(v.Pos(), "'with' requer uma variável do tipo record.")
			}
		}
		a.analyzeStatement(s.Body)
	case *ast.GotoStmt:
		a.checkLabel(s, s.Label)
	case *ast.LabeledStmt:
		a.checkLabel(s, s.Label)
		a.analyzeStatement(s.Stmt)
	case *ast.CompoundStmt:
		for _, st := range s.Stmts {
			a.analyzeStatement(st)
		}
	default:
		a.halt(stmt.Pos(), "Comando desconhecido.")
	}
}

func (a *Analyzer) checkLabel(pos ast.Node, n int) {
	name := fmt.Sprintf("%d", n)
	sym, ok := a.currentScope.Resolve(name)
	if !ok || sym.Kind != KindLabel {
		a.halt(pos.Pos(), fmt.Sprintf("Label %d não foi declarada.", n))
	}
}

// analyzeAssign checks `lhs := rhs`. A bare-variable LHS whose name equals
// the enclosing function's own name is the return-value write — it
// resolves to the return-slot symbol bound in analyzeFunctionDecl, so no
// special case is needed here beyond the ordinary coercion check.
func (a *Analyzer) analyzeAssign(s *ast.AssignStmt) {
	lhsType := a.analyzeExpr(s.LHS)
	rhsType := a.analyzeExpr(s.RHS)
	if !CanCoerce(rhsType, lhsType) {
		a.halt(s.Pos(), "Tipo do lado direito não corresponde ao tipo do lado esquerdo na atribuição.")
	}
}

func (a *Analyzer) analyzeFor(s *ast.ForStmt) {
	sym := a.resolve(s, s.Var)
	if sym.Type == nil || sym.Type.Kind != KInteger {
		a.halt(s.Pos(), "Variável de controlo do 'for' deve ser inteira.")
	}
	if t := a.analyzeExpr(s.Start); t.Kind != KInteger {
		a.halt(s.Start.Pos(), "Valor inicial do 'for' deve ser inteiro.")
	}
	if t := a.analyzeExpr(s.End); t.Kind != KInteger {
		a.halt(s.End.Pos(), "Valor final do 'for' deve ser inteiro.")
	}
	a.analyzeStatement(s.Body)
}

func (a *Analyzer) analyzeCase(s *ast.CaseStmt) {
	selType := a.analyzeExpr(s.Expr)
	for _, arm := range s.Arms {
		for _, label := range arm.Labels {
			labelType := a.analyzeExpr(label)
			if !labelType.Equal(selType) {
				a.halt(label.Pos(), "Rótulo de 'case' não corresponde ao tipo da expressão selecionada.")
			}
		}
		a.analyzeStatement(arm.Body)
	}
	for _, st := range s.Else {
		a.analyzeStatement(st)
	}
}
