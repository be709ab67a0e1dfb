package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hgoncalo/pascalsvm/internal/token"
)

func (*AssignStmt) stmtNode()   {}
func (*CallStmt) stmtNode()     {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*RepeatStmt) stmtNode()   {}
func (*ForStmt) stmtNode()      {}
func (*CaseStmt) stmtNode()     {}
func (*WithStmt) stmtNode()     {}
func (*GotoStmt) stmtNode()     {}
func (*LabeledStmt) stmtNode()  {}
func (*CompoundStmt) stmtNode() {}
func (*EmptyStmt) stmtNode()    {}

// AssignStmt is `lhs := rhs`. LHS is a VarExpr, ArrayExpr, or FieldExpr.
type AssignStmt struct {
	StartPos token.Position
	LHS      Expression
	RHS      Expression
}

func (a *AssignStmt) Pos() token.Position { return a.StartPos }
func (a *AssignStmt) String() string      { return fmt.Sprintf("%s := %s", a.LHS.String(), a.RHS.String()) }

// CallStmt is a procedure call used as a statement.
type CallStmt struct {
	StartPos token.Position
	Name     string
	Args     []Expression
}

func (c *CallStmt) Pos() token.Position { return c.StartPos }
func (c *CallStmt) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}

// IfStmt is `if cond then then [else else]`. Else is nil when absent; the
// parser resolves dangling-else by binding to the nearest unmatched then.
type IfStmt struct {
	StartPos token.Position
	Cond     Expression
	Then     Statement
	Else     Statement
}

func (i *IfStmt) Pos() token.Position { return i.StartPos }
func (i *IfStmt) String() string {
	if i.Else != nil {
		return fmt.Sprintf("if %s then %s else %s", i.Cond.String(), i.Then.String(), i.Else.String())
	}
	return fmt.Sprintf("if %s then %s", i.Cond.String(), i.Then.String())
}

// WhileStmt is `while cond do body`.
type WhileStmt struct {
	StartPos token.Position
	Cond     Expression
	Body     Statement
}

func (w *WhileStmt) Pos() token.Position { return w.StartPos }
func (w *WhileStmt) String() string      { return fmt.Sprintf("while %s do %s", w.Cond.String(), w.Body.String()) }

// RepeatStmt is `repeat body... until cond`.
type RepeatStmt struct {
	StartPos token.Position
	Body     []Statement
	Cond     Expression
}

func (r *RepeatStmt) Pos() token.Position { return r.StartPos }
func (r *RepeatStmt) String() string {
	parts := make([]string, len(r.Body))
	for i, s := range r.Body {
		parts[i] = s.String()
	}
	return fmt.Sprintf("repeat %s until %s", strings.Join(parts, "; "), r.Cond.String())
}

// ForStmt is `for var := start to|downto end do body`.
type ForStmt struct {
	StartPos token.Position
	Var      string
	Start    Expression
	End      Expression
	Down     bool
	Body     Statement
}

func (f *ForStmt) Pos() token.Position { return f.StartPos }
func (f *ForStmt) String() string {
	dir := "to"
	if f.Down {
		dir = "downto"
	}
	return fmt.Sprintf("for %s := %s %s %s do %s", f.Var, f.Start.String(), dir, f.End.String(), f.Body.String())
}

// CaseArm is one `labels: stmt` arm of a case statement.
type CaseArm struct {
	Labels []Expression
	Body   Statement
}

// CaseStmt is `case expr of arms... [else stmts...] end`.
type CaseStmt struct {
	StartPos token.Position
	Expr     Expression
	Arms     []CaseArm
	Else     []Statement
}

func (c *CaseStmt) Pos() token.Position { return c.StartPos }
func (c *CaseStmt) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "case %s of\n", c.Expr.String())
	for _, arm := range c.Arms {
		parts := make([]string, len(arm.Labels))
		for i, l := range arm.Labels {
			parts[i] = l.String()
		}
		fmt.Fprintf(&buf, "  %s: %s;\n", strings.Join(parts, ", "), arm.Body.String())
	}
	buf.WriteString("end")
	return buf.String()
}

// WithStmt is `with vars... do body`.
type WithStmt struct {
	StartPos token.Position
	Vars     []Expression
	Body     Statement
}

func (w *WithStmt) Pos() token.Position { return w.StartPos }
func (w *WithStmt) String() string {
	parts := make([]string, len(w.Vars))
	for i, v := range w.Vars {
		parts[i] = v.String()
	}
	return fmt.Sprintf("with %s do %s", strings.Join(parts, ", "), w.Body.String())
}

// GotoStmt is `goto N`.
type GotoStmt struct {
	StartPos token.Position
	Label    int
}

func (g *GotoStmt) Pos() token.Position { return g.StartPos }
func (g *GotoStmt) String() string      { return fmt.Sprintf("goto %d", g.Label) }

// LabeledStmt is `N: stmt`.
type LabeledStmt struct {
	StartPos token.Position
	Label    int
	Stmt     Statement
}

func (l *LabeledStmt) Pos() token.Position { return l.StartPos }
func (l *LabeledStmt) String() string      { return fmt.Sprintf("%d: %s", l.Label, l.Stmt.String()) }

// EmptyStmt is the statement between two consecutive separators, or before
// `end`/`until` — Pascal's grammar allows a statement to be empty.
type EmptyStmt struct {
	StartPos token.Position
}

func (e *EmptyStmt) Pos() token.Position { return e.StartPos }
func (e *EmptyStmt) String() string      { return "" }

// CompoundStmt is `begin stmts... end`.
type CompoundStmt struct {
	StartPos token.Position
	Stmts    []Statement
}

func (c *CompoundStmt) Pos() token.Position { return c.StartPos }
func (c *CompoundStmt) String() string {
	var buf bytes.Buffer
	buf.WriteString("begin\n")
	for _, s := range c.Stmts {
		buf.WriteString("  ")
		buf.WriteString(s.String())
		buf.WriteString(";\n")
	}
	buf.WriteString("end")
	return buf.String()
}
