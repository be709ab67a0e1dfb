package semantic

import (
	"fmt"

	"github.com/hgoncalo/pascalsvm/internal/ast"
)

// analyzeFieldAccess checks `base.name`: base must have record type, and
// name must exist in its field map, matched case-insensitively.
func (a *Analyzer) analyzeFieldAccess(e *ast.FieldExpr) *Type {
	base := a.analyzeExpr(e.Base)
	if base.Kind != KRecord {
		a.halt(e.Pos(), "Acesso a campo requer um valor do tipo record.")
	}
	fieldType, _, found := base.FieldOffset(e.Name)
	if !found {
		a.halt(e.Pos(), fmt.Sprintf("Campo '%s' não existe neste record.", e.Name))
	}
	return fieldType
}
