package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hgoncalo/pascalsvm/internal/token"
)

// TypeExpr is a type as written in source, before the semantic analyzer
// resolves it to a semantic.Type.
type TypeExpr interface {
	Node
	typeNode()
}

func (*SimpleType) typeNode()     {}
func (*IdType) typeNode()         {}
func (*ArrayType) typeNode()      {}
func (*OpenArrayType) typeNode()  {}
func (*EnumType) typeNode()       {}
func (*SubrangeType) typeNode()   {}
func (*PackedType) typeNode()     {}
func (*ShortStringType) typeNode() {}
func (*SetType) typeNode()        {}
func (*FileType) typeNode()       {}
func (*RecordType) typeNode()     {}

// SimpleType names one of the built-in scalar types: integer, real,
// boolean, char.
type SimpleType struct {
	StartPos token.Position
	Name     string
}

func (s *SimpleType) Pos() token.Position { return s.StartPos }
func (s *SimpleType) String() string      { return s.Name }

// IdType references a type declared in a `type` section by name.
type IdType struct {
	StartPos token.Position
	Name     string
}

func (i *IdType) Pos() token.Position { return i.StartPos }
func (i *IdType) String() string      { return i.Name }

// Range is one `const..const` dimension of an array type.
type Range struct {
	Low  Expression
	High Expression
}

// ArrayType is the closed form `array [r1, r2, ...] of T`.
type ArrayType struct {
	StartPos token.Position
	Ranges   []Range
	Elem     TypeExpr
}

func (a *ArrayType) Pos() token.Position { return a.StartPos }
func (a *ArrayType) String() string {
	parts := make([]string, len(a.Ranges))
	for i, r := range a.Ranges {
		parts[i] = r.Low.String() + ".." + r.High.String()
	}
	return fmt.Sprintf("array[%s] of %s", strings.Join(parts, ", "), a.Elem.String())
}

// OpenArrayType is the open form `array of T`, used for formal parameters
// whose bounds are supplied by the caller's actual argument.
type OpenArrayType struct {
	StartPos token.Position
	Elem     TypeExpr
}

func (a *OpenArrayType) Pos() token.Position { return a.StartPos }
func (a *OpenArrayType) String() string      { return "array of " + a.Elem.String() }

// EnumType is `(a, b, c)`.
type EnumType struct {
	StartPos token.Position
	Names    []string
}

func (e *EnumType) Pos() token.Position { return e.StartPos }
func (e *EnumType) String() string      { return "(" + strings.Join(e.Names, ", ") + ")" }

// SubrangeType is `lo..hi` used directly as a type (not inside `array[]`).
type SubrangeType struct {
	StartPos token.Position
	Low      Expression
	High     Expression
}

func (s *SubrangeType) Pos() token.Position { return s.StartPos }
func (s *SubrangeType) String() string      { return s.Low.String() + ".." + s.High.String() }

// PackedType is `packed T`; packing affects storage layout only and has no
// bearing on this compiler's semantics.
type PackedType struct {
	StartPos token.Position
	Inner    TypeExpr
}

func (p *PackedType) Pos() token.Position { return p.StartPos }
func (p *PackedType) String() string      { return "packed " + p.Inner.String() }

// ShortStringType is `string[N]`, a fixed-capacity string.
type ShortStringType struct {
	StartPos token.Position
	Base     TypeExpr
	Len      Expression
}

func (s *ShortStringType) Pos() token.Position { return s.StartPos }
func (s *ShortStringType) String() string {
	return fmt.Sprintf("%s[%s]", s.Base.String(), s.Len.String())
}

// SetType is `set of T`.
type SetType struct {
	StartPos token.Position
	Elem     TypeExpr
}

func (s *SetType) Pos() token.Position { return s.StartPos }
func (s *SetType) String() string      { return "set of " + s.Elem.String() }

// FileType is `file of T`.
type FileType struct {
	StartPos token.Position
	Elem     TypeExpr
}

func (f *FileType) Pos() token.Position { return f.StartPos }
func (f *FileType) String() string      { return "file of " + f.Elem.String() }

// RecordField is one `names: type` field group inside a record.
type RecordField struct {
	Names []string
	Type  TypeExpr
}

// VariantCase is one `label(s): (fields)` arm of a record's variant part.
type VariantCase struct {
	Labels []Expression
	Fields []RecordField
}

// VariantPart is the optional `case tag: TagType of ...` tail of a record.
type VariantPart struct {
	TagName string
	TagType TypeExpr
	Cases   []VariantCase
}

// RecordType is `record fields...; [variant part] end`.
type RecordType struct {
	StartPos token.Position
	Fields   []RecordField
	Variant  *VariantPart
}

func (r *RecordType) Pos() token.Position { return r.StartPos }
func (r *RecordType) String() string {
	var buf bytes.Buffer
	buf.WriteString("record\n")
	for _, f := range r.Fields {
		fmt.Fprintf(&buf, "  %s: %s;\n", strings.Join(f.Names, ", "), f.Type.String())
	}
	if r.Variant != nil {
		fmt.Fprintf(&buf, "  case %s: %s of ...\n", r.Variant.TagName, r.Variant.TagType.String())
	}
	buf.WriteString("end")
	return buf.String()
}
