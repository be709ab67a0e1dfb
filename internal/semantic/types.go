package semantic

// Kind discriminates the small type algebra this compiler checks against:
// the four scalar kinds, texto (the string type), and three composite
// kinds (array, set, record). File types carry only an element for
// `assign`/`close` signature checking; they are otherwise opaque.
type Kind int

const (
	KInteger Kind = iota
	KReal
	KBoolean
	KChar
	KTexto
	KArray
	KSet
	KFile
	KRecord
	KVoid // absence of a value: a procedure's "return type"
)

func (k Kind) String() string {
	switch k {
	case KInteger:
		return "integer"
	case KReal:
		return "real"
	case KBoolean:
		return "boolean"
	case KChar:
		return "char"
	case KTexto:
		return "texto"
	case KArray:
		return "array"
	case KSet:
		return "set"
	case KFile:
		return "file"
	case KRecord:
		return "record"
	default:
		return "void"
	}
}

// Range is one array dimension's declared bounds, inclusive on both ends.
type Range struct {
	Low, High int
}

func (r Range) Size() int { return r.High - r.Low + 1 }

// FieldInfo is one record field, in declaration order — order matters,
// since the code generator lays record fields out as consecutive cells.
type FieldInfo struct {
	Name string
	Type *Type
}

// Type is the structural type representation shared by the analyzer and
// the code generator. Named type aliases are resolved to their underlying
// Type as soon as they're declared, so Equal below is a structural check —
// this spec has no need for nominal distinctness between two aliases of
// the same shape.
type Type struct {
	Kind   Kind
	Elem   *Type       // element type: array, set, file
	Ranges []Range     // array dimensions, outermost first
	Fields []FieldInfo // record fields, declaration order
	Name   string      // informational: alias/record name, for diagnostics
}

var (
	Integer = &Type{Kind: KInteger}
	Real    = &Type{Kind: KReal}
	Boolean = &Type{Kind: KBoolean}
	Char    = &Type{Kind: KChar}
	Texto   = &Type{Kind: KTexto}
	Void    = &Type{Kind: KVoid}
)

func ArrayOf(elem *Type, ranges []Range) *Type {
	return &Type{Kind: KArray, Elem: elem, Ranges: ranges}
}

func SetOf(elem *Type) *Type {
	return &Type{Kind: KSet, Elem: elem}
}

func FileOf(elem *Type) *Type {
	return &Type{Kind: KFile, Elem: elem}
}

func RecordOf(fields []FieldInfo) *Type {
	return &Type{Kind: KRecord, Fields: fields}
}

func (t *Type) IsNumeric() bool { return t.Kind == KInteger || t.Kind == KReal }

// Size is the number of SVM memory cells this type occupies, flattened:
// a scalar is one cell, an array is the product of its dimension sizes
// times its element size, a record is the sum of its field sizes.
func (t *Type) Size() int {
	switch t.Kind {
	case KArray:
		n := t.Elem.Size()
		for _, r := range t.Ranges {
			n *= r.Size()
		}
		return n
	case KRecord:
		n := 0
		for _, f := range t.Fields {
			n += f.Type.Size()
		}
		return n
	default:
		return 1
	}
}

// FieldOffset returns the cell offset of a named field within a record,
// case-insensitively, and whether it exists.
func (t *Type) FieldOffset(name string) (*Type, int, bool) {
	off := 0
	for _, f := range t.Fields {
		if eqFold(f.Name, name) {
			return f.Type, off, true
		}
		off += f.Type.Size()
	}
	return nil, 0, false
}

func eqFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Equal is structural equality, used for the "LHS type must equal RHS
// type" and "actual must equal formal" rules.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KArray:
		if len(t.Ranges) != len(other.Ranges) {
			return false
		}
		for i := range t.Ranges {
			if t.Ranges[i] != other.Ranges[i] {
				return false
			}
		}
		return t.Elem.Equal(other.Elem)
	case KSet, KFile:
		return t.Elem.Equal(other.Elem)
	case KRecord:
		if len(t.Fields) != len(other.Fields) {
			return false
		}
		for i := range t.Fields {
			if !eqFold(t.Fields[i].Name, other.Fields[i].Name) || !t.Fields[i].Type.Equal(other.Fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// CanCoerce reports whether a value of type from may be used where to is
// expected, under the two coercions spec.md permits: integer → real, and
// array-of-char ↔ texto.
func CanCoerce(from, to *Type) bool {
	if from.Equal(to) {
		return true
	}
	if from.Kind == KInteger && to.Kind == KReal {
		return true
	}
	if from.Kind == KTexto && to.Kind == KArray && to.Elem != nil && to.Elem.Kind == KChar {
		return true
	}
	if to.Kind == KTexto && from.Kind == KArray && from.Elem != nil && from.Elem.Kind == KChar {
		return true
	}
	return false
}

// ResultType widens two numeric operand types to the arithmetic result
// type: real if either is real, else integer.
func ResultType(a, b *Type) *Type {
	if a.Kind == KReal || b.Kind == KReal {
		return Real
	}
	return Integer
}
