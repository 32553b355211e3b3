package coverage

import (
	"sort"
	"strconv"
	"strings"

	"github.com/crillab/varsat/block"
	"github.com/crillab/varsat/cnf"
	"github.com/crillab/varsat/model"
	"github.com/crillab/varsat/sat"
)

// isBlockName reports whether name has the synthetic "B<digits>" shape
// used for block presence variables, so it can be excluded from a
// projected configuration.
func isBlockName(name string) bool {
	if len(name) < 2 || name[0] != 'B' {
		return false
	}
	for _, r := range name[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func fullAssignment(reg *cnf.Registry, ctx *sat.Context) map[string]bool {
	out := make(map[string]bool, len(reg.CNFVars))
	for name, id := range reg.CNFVars {
		out[name] = ctx.DerefVar(id)
	}
	return out
}

// projectSolution narrows a full model readback to the names a
// Solution reports, dropping only the synthetic block-presence
// variables that exist to link guards to F0.
func projectSolution(assignment map[string]bool) Solution {
	out := make(Solution, len(assignment))
	for name, val := range assignment {
		if isBlockName(name) {
			continue
		}
		out[name] = val
	}
	return out
}

func configurationKey(assignment map[string]bool, m *model.Model) string {
	names := make([]string, 0, len(assignment))
	for name := range assignment {
		if isBlockName(name) {
			continue
		}
		if m != nil && !m.InConfigurationSpace(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatBool(assignment[name]))
		b.WriteByte(';')
	}
	return b.String()
}

// undeadFrom computes, per GLOSSARY, every block whose complementary
// sibling is in dead: it is forced on. Block only exposes
// PreviousSibling, so the complementary relationship is found by
// scanning in both directions.
func undeadFrom(tree block.Tree, dead map[string]bool) []string {
	undeadSet := make(map[string]bool)
	blocks := tree.Blocks()
	for _, b := range blocks {
		if dead[b.Name()] {
			continue
		}
		if sib := b.PreviousSibling(); sib != nil && dead[sib.Name()] {
			undeadSet[b.Name()] = true
		}
	}
	for _, b := range blocks {
		if dead[b.Name()] {
			continue
		}
		for _, other := range blocks {
			sib := other.PreviousSibling()
			if sib != nil && sib.Name() == b.Name() && dead[other.Name()] {
				undeadSet[b.Name()] = true
			}
		}
	}
	out := make([]string, 0, len(undeadSet))
	for name := range undeadSet {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// simpleStrategy runs Strategy A (§4.7): for each block in document
// order not yet covered, it pushes the single assumption "block is
// on" into a shared SAT context over F0, marks every block enabled in
// the resulting model as covered, and emits the projected
// configuration as a solution when its projected configuration is new
// and at least one previously-uncovered block became covered by it.
func simpleStrategy(tree block.Tree, m *model.Model) (*Result, error) {
	f0 := BaseFormula(tree, m, nil)
	reg := cnf.NewRegistry(cnf.Bound, nil)
	top, err := reg.Encode(f0)
	if err != nil {
		return nil, err
	}
	reg.AssertTop(top)
	ctx := sat.NewContext(reg)

	covered := make(map[string]bool)
	deadSet := make(map[string]bool)
	seenConfigs := make(map[string]bool)
	var solutions []Solution

	for _, b := range tree.Blocks() {
		if covered[b.Name()] {
			continue
		}
		id, ok := reg.CNFVars[b.Name()]
		if !ok {
			continue
		}

		ctx.PushAssumptionVar(id)
		sat, err := ctx.CheckSat()
		if err != nil {
			return nil, err
		}
		if !sat {
			deadSet[b.Name()] = true
			continue
		}

		assignment := fullAssignment(reg, ctx)
		newlyCovered := false
		for name, val := range assignment {
			if !isBlockName(name) {
				continue
			}
			if val && !covered[name] {
				covered[name] = true
				newlyCovered = true
			}
		}

		key := configurationKey(assignment, m)
		if !seenConfigs[key] {
			seenConfigs[key] = true
			if newlyCovered {
				solutions = append(solutions, projectSolution(assignment))
			}
		}
	}

	dead := make([]string, 0, len(deadSet))
	for name := range deadSet {
		dead = append(dead, name)
	}
	sort.Strings(dead)

	return &Result{
		Solutions: solutions,
		Dead:      dead,
		Undead:    undeadFrom(tree, deadSet),
	}, nil
}
