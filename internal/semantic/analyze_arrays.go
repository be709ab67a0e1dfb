package semantic

import (
	"github.com/hgoncalo/pascalsvm/internal/ast"
)

// analyzeArrayIndex checks `base[idx1, idx2, ...]`: base must have array
// type, and each index descends one declared dimension. Multi-dimensional
// indexing in one bracket group (`v[i, j]`) and chained single-dimension
// indexing (`v[i][j]`) both resolve the same way, one dimension per index.
func (a *Analyzer) analyzeArrayIndex(e *ast.ArrayExpr) *Type {
	base := a.analyzeExpr(e.Base)
	if base.Kind != KArray {
		a.halt(e.Pos(), "Indexação requer um valor do tipo array.")
	}

	cur := base
	for _, idx := range e.Indices {
		idxType := a.analyzeExpr(idx)
		if idxType.Kind != KInteger && idxType.Kind != KChar {
			a.halt(idx.Pos(), "Índice de array deve ser inteiro.")
		}
		if cur.Kind != KArray {
			a.halt(e.Pos(), "Demasiados índices para o array.")
		}
		if len(cur.Ranges) > 1 {
			cur = &Type{Kind: KArray, Elem: cur.Elem, Ranges: cur.Ranges[1:]}
		} else {
			cur = cur.Elem
		}
	}
	return cur
}
