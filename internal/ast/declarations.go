package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hgoncalo/pascalsvm/internal/token"
)

func (*ConstsDecl) declNode()   {}
func (*TypesDecl) declNode()    {}
func (*LabelsDecl) declNode()   {}
func (*VarDecl) declNode()      {}
func (*FunctionDecl) declNode() {}
func (*ProcedureDecl) declNode() {}

// ConstBinding is one `name = expr` pair inside a const section.
type ConstBinding struct {
	Name string
	Expr Expression
}

// ConstsDecl is a `const ...;` section; Pascal allows several bindings per
// section and several sections per block.
type ConstsDecl struct {
	StartPos token.Position
	Bindings []ConstBinding
}

func (c *ConstsDecl) Pos() token.Position { return c.StartPos }
func (c *ConstsDecl) String() string {
	var buf bytes.Buffer
	buf.WriteString("const\n")
	for _, b := range c.Bindings {
		fmt.Fprintf(&buf, "  %s = %s;\n", b.Name, b.Expr.String())
	}
	return buf.String()
}

// TypeBinding is one `name = type` pair inside a type section.
type TypeBinding struct {
	Name string
	Type TypeExpr
}

// TypesDecl is a `type ...;` section.
type TypesDecl struct {
	StartPos token.Position
	Bindings []TypeBinding
}

func (t *TypesDecl) Pos() token.Position { return t.StartPos }
func (t *TypesDecl) String() string {
	var buf bytes.Buffer
	buf.WriteString("type\n")
	for _, b := range t.Bindings {
		fmt.Fprintf(&buf, "  %s = %s;\n", b.Name, b.Type.String())
	}
	return buf.String()
}

// LabelsDecl is a `label N, M, ...;` section; labels are integers in this
// grammar, never identifiers.
type LabelsDecl struct {
	StartPos token.Position
	Labels   []int
}

func (l *LabelsDecl) Pos() token.Position { return l.StartPos }
func (l *LabelsDecl) String() string {
	parts := make([]string, len(l.Labels))
	for i, n := range l.Labels {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "label " + strings.Join(parts, ", ") + ";"
}

// VarGroup is one `names: type` group inside a var section; a single
// section may declare several groups separated by `;`.
type VarGroup struct {
	Names []string
	Type  TypeExpr
}

// VarDecl is a `var ...;` section.
type VarDecl struct {
	StartPos token.Position
	Groups   []VarGroup
}

func (v *VarDecl) Pos() token.Position { return v.StartPos }
func (v *VarDecl) String() string {
	var buf bytes.Buffer
	buf.WriteString("var\n")
	for _, g := range v.Groups {
		fmt.Fprintf(&buf, "  %s: %s;\n", strings.Join(g.Names, ", "), g.Type.String())
	}
	return buf.String()
}

// ParamMode distinguishes by-value, var, and const formal parameters.
type ParamMode int

const (
	ParamVal ParamMode = iota
	ParamVar
	ParamConst
)

func (m ParamMode) String() string {
	switch m {
	case ParamVar:
		return "var"
	case ParamConst:
		return "const"
	default:
		return ""
	}
}

// Param is one formal parameter group, e.g. `var a, b: integer`.
type Param struct {
	Mode  ParamMode
	Names []string
	Type  TypeExpr
}

func (p Param) String() string {
	prefix := ""
	if p.Mode != ParamVal {
		prefix = p.Mode.String() + " "
	}
	return fmt.Sprintf("%s%s: %s", prefix, strings.Join(p.Names, ", "), p.Type.String())
}

func paramListString(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, "; ")
}

// FunctionDecl is a `function NAME(params): ReturnType; block;` definition.
type FunctionDecl struct {
	StartPos   token.Position
	Name       string
	Params     []Param
	ReturnType TypeExpr
	Block      *Block
}

func (f *FunctionDecl) Pos() token.Position { return f.StartPos }
func (f *FunctionDecl) String() string {
	return fmt.Sprintf("function %s(%s): %s;\n%s", f.Name, paramListString(f.Params), f.ReturnType.String(), f.Block.String())
}

// ProcedureDecl is a `procedure NAME(params); block;` definition.
type ProcedureDecl struct {
	StartPos token.Position
	Name     string
	Params   []Param
	Block    *Block
}

func (p *ProcedureDecl) Pos() token.Position { return p.StartPos }
func (p *ProcedureDecl) String() string {
	return fmt.Sprintf("procedure %s(%s);\n%s", p.Name, paramListString(p.Params), p.Block.String())
}
