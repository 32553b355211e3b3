package sat

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/crillab/varsat/cnf"
)

// MUS computes a minimal unsatisfiable subset of reg's clauses plus
// extra additional clauses (e.g. the unit clause forcing a block's
// presence variable true), per GLOSSARY "MUS": every candidate clause
// c_i is rewritten as `-s_i \/ c_i` for a fresh selector s_i, every
// s_i is assumed, and gini's Why() — which already minimizes its
// failed-assumption output, per its own doc comment — names exactly
// the selectors whose clauses are jointly responsible for the
// conflict. ok is false when the combined clause set is satisfiable,
// in which case no MUS exists.
func MUS(reg *cnf.Registry, extra ...[]int) (core [][]int, ok bool, err error) {
	all := make([][]int, 0, len(reg.Clauses)+len(extra))
	all = append(all, reg.Clauses...)
	all = append(all, extra...)

	g := gini.New()
	base := reg.VarCount + 1
	selectors := make([]z.Lit, len(all))
	for i, clause := range all {
		s := z.Dimacs2Lit(base + i)
		selectors[i] = s
		g.Add(s.Not())
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull)
	}

	g.Assume(selectors...)
	switch g.Solve() {
	case 1:
		return nil, false, nil
	case -1:
		failed := g.Why(nil)
		failedSet := make(map[z.Lit]bool, len(failed))
		for _, l := range failed {
			failedSet[l] = true
		}
		for i, s := range selectors {
			if failedSet[s] {
				core = append(core, all[i])
			}
		}
		return core, true, nil
	default:
		return nil, false, ErrInterrupted
	}
}
