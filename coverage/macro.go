package coverage

import (
	"github.com/crillab/varsat/block"
	"github.com/crillab/varsat/expr"
)

// PostDefinitionName is the "dotted" variant name used for a macro's
// value after a conditional #define inside some block may have
// changed it, distinct from the bare pre-definition/Kconfig-modeled
// name.
func PostDefinitionName(macroName string) string {
	return macroName + "."
}

// DefineFormula builds the extra precondition conjunct for a macro
// conditionally (re)defined inside definingBlock (end-to-end scenario
// 4's "macro-defined symbol" case): the post-definition variant is
// forced true anywhere inside definingBlock, and outside it the two
// variants must agree with each other, since nothing there can have
// changed the macro's value.
func DefineFormula(definingBlock block.Block, macroName string) expr.Expr {
	post := PostDefinitionName(macroName)
	inBlock := expr.Var{Name: definingBlock.Name()}
	pre := expr.Var{Name: macroName}
	postVar := expr.Var{Name: post}
	outside := func(x expr.Expr) expr.Expr {
		return expr.And{L: x, R: expr.Not{X: inBlock}}
	}

	f := expr.Impl{L: inBlock, R: postVar}
	f2 := expr.Impl{L: outside(pre), R: postVar}
	f3 := expr.Impl{L: outside(postVar), R: pre}
	return expr.And{L: f, R: expr.And{L: f2, R: f3}}
}
