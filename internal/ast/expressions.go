package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hgoncalo/pascalsvm/internal/token"
)

func (*ConstExpr) exprNode()  {}
func (*VarExpr) exprNode()    {}
func (*ArrayExpr) exprNode()  {}
func (*FieldExpr) exprNode()  {}
func (*BinOpExpr) exprNode()  {}
func (*NotExpr) exprNode()    {}
func (*CallExpr) exprNode()   {}
func (*SetLitExpr) exprNode() {}
func (*FmtExpr) exprNode()    {}

// ConstExpr is a literal value. Kind is one of "integer", "real",
// "boolean", "char", "texto" and determines how Value is interpreted and
// how the code generator lowers it.
type ConstExpr struct {
	StartPos token.Position
	Kind     string
	Value    any
}

func (c *ConstExpr) Pos() token.Position { return c.StartPos }
func (c *ConstExpr) String() string      { return fmt.Sprintf("%v", c.Value) }

// VarExpr references a variable, constant, or parameterless function call
// by name; which of those it is is resolved by the semantic analyzer.
type VarExpr struct {
	StartPos token.Position
	Name     string
}

func (v *VarExpr) Pos() token.Position { return v.StartPos }
func (v *VarExpr) String() string      { return v.Name }

// ArrayExpr is `base[idx1, idx2, ...]`; each index descends one array
// dimension.
type ArrayExpr struct {
	StartPos token.Position
	Base     Expression
	Indices  []Expression
}

func (a *ArrayExpr) Pos() token.Position { return a.StartPos }
func (a *ArrayExpr) String() string {
	parts := make([]string, len(a.Indices))
	for i, idx := range a.Indices {
		parts[i] = idx.String()
	}
	return fmt.Sprintf("%s[%s]", a.Base.String(), strings.Join(parts, ", "))
}

// FieldExpr is `base.name`, a record field access.
type FieldExpr struct {
	StartPos token.Position
	Base     Expression
	Name     string
}

func (f *FieldExpr) Pos() token.Position { return f.StartPos }
func (f *FieldExpr) String() string      { return f.Base.String() + "." + f.Name }

// BinOpExpr is a binary operator application; Op is the lowercased
// operator spelling (`+`, `div`, `and`, `=`, ...).
type BinOpExpr struct {
	StartPos token.Position
	Op       string
	L, R     Expression
}

func (b *BinOpExpr) Pos() token.Position { return b.StartPos }
func (b *BinOpExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.L.String(), b.Op, b.R.String())
}

// NotExpr is `not expr`.
type NotExpr struct {
	StartPos token.Position
	Expr     Expression
}

func (n *NotExpr) Pos() token.Position { return n.StartPos }
func (n *NotExpr) String() string      { return "not " + n.Expr.String() }

// CallExpr is `name(args...)` used as a value — a function call, a
// built-in invocation, or (if name resolves to a type) a cast.
type CallExpr struct {
	StartPos token.Position
	Name     string
	Args     []Expression
}

func (c *CallExpr) Pos() token.Position { return c.StartPos }
func (c *CallExpr) String() string {
	var buf bytes.Buffer
	buf.WriteString(c.Name)
	buf.WriteString("(")
	for i, a := range c.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a.String())
	}
	buf.WriteString(")")
	return buf.String()
}

// SetLitExpr is a set constructor `[a, b, c..d]`.
type SetLitExpr struct {
	StartPos token.Position
	Elems    []Expression
}

func (s *SetLitExpr) Pos() token.Position { return s.StartPos }
func (s *SetLitExpr) String() string {
	parts := make([]string, len(s.Elems))
	for i, e := range s.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FmtExpr is the format operator `expr : width` or `expr : width : prec`.
// Prec is nil for the two-field form.
type FmtExpr struct {
	StartPos token.Position
	Expr     Expression
	Width    Expression
	Prec     Expression
}

func (f *FmtExpr) Pos() token.Position { return f.StartPos }
func (f *FmtExpr) String() string {
	if f.Prec != nil {
		return fmt.Sprintf("%s:%s:%s", f.Expr.String(), f.Width.String(), f.Prec.String())
	}
	return fmt.Sprintf("%s:%s", f.Expr.String(), f.Width.String())
}
