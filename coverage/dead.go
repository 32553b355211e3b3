package coverage

import (
	"fmt"

	"github.com/crillab/varsat/block"
	"github.com/crillab/varsat/cnf"
	"github.com/crillab/varsat/model"
	"github.com/crillab/varsat/sat"
)

// CheckBlock asks whether a single named block can ever be enabled
// under F0. When it cannot, it additionally extracts a minimal
// unsatisfiable subset of F0's clauses plus the forced-on unit clause,
// per GLOSSARY "MUS" and end-to-end scenario 1's
// "mus_test.c.B1.kconfig.globally.dead.mus" report.
func CheckBlock(tree block.Tree, m *model.Model, blockName string) (sat_ bool, mus [][]int, err error) {
	f0 := BaseFormula(tree, m, nil)
	reg := cnf.NewRegistry(cnf.Bound, nil)
	top, err := reg.Encode(f0)
	if err != nil {
		return false, nil, err
	}
	reg.AssertTop(top)

	id, ok := reg.CNFVars[blockName]
	if !ok {
		return false, nil, fmt.Errorf("coverage: unknown block %q", blockName)
	}

	ctx := sat.NewContext(reg)
	ctx.PushAssumptionVar(id)
	isSat, err := ctx.CheckSat()
	if err != nil {
		return false, nil, err
	}
	if isSat {
		return true, nil, nil
	}

	core, _, err := sat.MUS(reg, []int{id})
	if err != nil {
		return false, nil, err
	}
	return false, core, nil
}
