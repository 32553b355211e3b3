package coverage

import (
	"sort"

	"github.com/crillab/varsat/block"
	"github.com/crillab/varsat/cnf"
	"github.com/crillab/varsat/model"
	"github.com/crillab/varsat/sat"
)

// conflictsWithConfiguration walks candidate's previous-sibling chain
// up to (and including) the if-block that heads it, per §4.7's
// minimizing strategy: a block surely conflicts with configuration if
// any block on that chain — an earlier #elif/#else in the same
// if/else group, or the group's own #if — is already selected.
func conflictsWithConfiguration(candidate block.Block, configuration map[string]bool) bool {
	cur := candidate
	for cur != nil && cur.Parent() != nil {
		if configuration[cur.Name()] {
			return true
		}
		if cur.IsIfBlock() {
			break
		}
		cur = cur.PreviousSibling()
	}
	return false
}

// minimizeStrategy runs Strategy B (§4.7): starting from one SAT call
// over F0 with no assumptions (which seeds a first configuration from
// whatever blocks came out enabled), it repeatedly grows a fresh
// configuration by tentatively adding each not-yet-placed block in
// document order, skipping ones that surely conflict with a block
// already chosen this round, and re-solving under the accumulated
// assumption set. A block that is unsatisfiable entirely on its own is
// dead. Each round's accumulated configuration is emitted as a
// solution once every block still to place has been tried against it.
func minimizeStrategy(tree block.Tree, m *model.Model) (*Result, error) {
	f0 := BaseFormula(tree, m, nil)
	reg := cnf.NewRegistry(cnf.Bound, nil)
	top, err := reg.Encode(f0)
	if err != nil {
		return nil, err
	}
	reg.AssertTop(top)
	ctx := sat.NewContext(reg)

	blocks := tree.Blocks()
	placed := make(map[string]bool)
	deadSet := make(map[string]bool)
	var solutions []Solution

	solve := func(configuration map[string]bool) (bool, map[string]bool, error) {
		for name := range configuration {
			id, ok := reg.CNFVars[name]
			if !ok {
				continue
			}
			ctx.PushAssumptionVar(id)
		}
		sat, err := ctx.CheckSat()
		if err != nil {
			return false, nil, err
		}
		if !sat {
			return false, nil, nil
		}
		return true, fullAssignment(reg, ctx), nil
	}

	configuration := make(map[string]bool)
	sat0, assignment0, err := solve(configuration)
	if err != nil {
		return nil, err
	}
	if sat0 {
		for name, val := range assignment0 {
			if val && isBlockName(name) && name != tree.Root().Name() {
				configuration[name] = true
				placed[name] = true
			}
		}
		if len(configuration) > 0 {
			solutions = append(solutions, projectSolution(assignment0))
			configuration = make(map[string]bool)
		}
	}

	for len(placed)+len(deadSet) < len(blocks) {
		for _, b := range blocks {
			name := b.Name()
			if placed[name] || deadSet[name] {
				continue
			}
			if _, ok := reg.CNFVars[name]; !ok {
				placed[name] = true
				continue
			}
			if conflictsWithConfiguration(b, configuration) {
				continue
			}

			configuration[name] = true
			sat, _, err := solve(configuration)
			if err != nil {
				return nil, err
			}
			if !sat {
				if len(configuration) == 1 {
					deadSet[name] = true
					configuration = make(map[string]bool)
				} else {
					delete(configuration, name)
				}
				continue
			}
			placed[name] = true
		}

		if len(configuration) == 0 {
			continue
		}
		_, assignment, err := solve(configuration)
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, projectSolution(assignment))
		configuration = make(map[string]bool)
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
