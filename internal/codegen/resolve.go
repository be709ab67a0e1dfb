package codegen

import "github.com/hgoncalo/pascalsvm/internal/semantic"

// nameRef is what resolving a bare identifier against the current
// (local-then-global) scope chain yields: which storage class it lives
// in, its offset/index within that class, and its type.
type nameRef struct {
	Class string // "const", "local", "global", "localArray", "globalArray", "localRecord", "globalRecord"
	Slot  int
	Type  *semantic.Type
	Const any
}

// resolveName looks up name first against the active subroutine's frame
// (local consts, then locals), then against the program's global
// scope — mirroring the parent-chain lookup the semantic analyzer
// performs, but over codegen's own independently built tables.
func (g *Generator) resolveName(name string) (nameRef, bool) {
	key := lowered(name)

	if g.currentSub != nil {
		if c, ok := g.localConsts[key]; ok {
			return nameRef{Class: "const", Type: c.Type, Const: c.ConstValue}, true
		}
		if l, ok := g.locals[key]; ok {
			return nameRef{Class: classFor(l.Class, true), Slot: l.Index, Type: l.Type}, true
		}
	}

	if c, ok := g.consts[key]; ok {
		return nameRef{Class: "const", Type: c.Type, Const: c.ConstValue}, true
	}
	if gl, ok := g.globals[key]; ok {
		return nameRef{Class: classFor(gl.Class, false), Slot: gl.Offset, Type: gl.Type}, true
	}
	return nameRef{}, false
}

// classFor maps a slot's declared storage ("local"/"array"/"record") and
// whether it lives in the current frame into the class tag the expression/
// statement lowerers switch on.
func classFor(storage string, isLocal bool) string {
	switch storage {
	case "array":
		if isLocal {
			return "localArray"
		}
		return "globalArray"
	case "record":
		if isLocal {
			return "localRecord"
		}
		return "globalRecord"
	default:
		if isLocal {
			return "local"
		}
		return "global"
	}
}
