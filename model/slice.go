package model

import (
	"sort"

	"github.com/crillab/varsat/expr"
)

// freeVars collects every Var name reachable in e into out. It walks
// e bottom-up via expr.Walk with an identity reconstruction, matching
// the "one function per traversal" style of the expr visitor protocol.
func freeVars(e expr.Expr, out map[string]struct{}) {
	expr.Walk(e, expr.Visitor{
		Const: func(v expr.Const) expr.Expr { return v },
		Var: func(v expr.Var) expr.Expr {
			out[v.Name] = struct{}{}
			return v
		},
		Not:  func(x expr.Expr) expr.Expr { return expr.Not{X: x} },
		And:  func(l, r expr.Expr) expr.Expr { return expr.And{L: l, R: r} },
		Or:   func(l, r expr.Expr) expr.Expr { return expr.Or{L: l, R: r} },
		Impl: func(l, r expr.Expr) expr.Expr { return expr.Impl{L: l, R: r} },
		Eq:   func(l, r expr.Expr) expr.Expr { return expr.Eq{L: l, R: r} },
		Call: func(name string, args []expr.Expr) expr.Expr {
			return expr.Call{Name: name, Args: args}
		},
		Any: func() expr.Expr { return expr.Any{} },
	})
}

// FindInterestingItems computes the least fixed point described in
// §4.5: starting from seed (symbol names in either bare or
// CONFIG_-prefixed form, as textually used in code guards), it
// repeatedly adds every symbol name referenced by the local formula of
// an already-included symbol. The result is keyed by bare dictionary
// names.
func (m *Model) FindInterestingItems(seed map[string]struct{}) map[string]struct{} {
	included := make(map[string]struct{}, len(seed))
	queue := make([]string, 0, len(seed))
	for name := range seed {
		b := baseName(name)
		if _, ok := included[b]; !ok {
			included[b] = struct{}{}
			queue = append(queue, b)
		}
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		f, ok := m.dict.LocalFormula(name)
		if !ok {
			continue
		}
		refs := make(map[string]struct{})
		freeVars(f, refs)
		for ref := range refs {
			if _, ok := included[ref]; !ok {
				included[ref] = struct{}{}
				queue = append(queue, ref)
			}
		}
	}
	return included
}

// DoIntersect implements §4.5's doIntersect: it slices from seed
// (pulling in ALWAYS_ON/ALWAYS_OFF names and their transitive
// dependencies unconditionally, since their closures must appear in
// every base formula), then joins `name -> local_formula(name)` over
// the slice, tying each symbol's bare-name variable to its
// CONFIG_-prefixed guard-expression counterpart via a biconditional
// bridge (the "AssociatedSymbols" relationship of §3's CNF registry).
// known distinguishes seed names the caller itself considers defined
// (e.g. via a macro definition outside the dictionary) from genuinely
// missing ones; a name absent from both the dictionary and known is
// reported in missing.
//
// This does not itself assert ALWAYS_ON names true or ALWAYS_OFF names
// false, nor negate missing names for a complete model: both are the
// base-file-formula's responsibility (§4.7 points 3 and 4), applied
// once per file rather than once per slice.
func (m *Model) DoIntersect(seed map[string]struct{}, known func(name string) bool) (expr.Expr, map[string]struct{}, int) {
	// ALWAYS_ON/ALWAYS_OFF items and their transitive dependencies
	// always need to appear in the slice, even if nothing in seed
	// reached them, so their own local formulas get joined in below.
	sliceSeed := make(map[string]struct{}, len(seed))
	for name := range seed {
		sliceSeed[name] = struct{}{}
	}
	for _, name := range m.AlwaysOn() {
		sliceSeed[name] = struct{}{}
	}
	for _, name := range m.AlwaysOff() {
		sliceSeed[name] = struct{}{}
	}
	included := m.FindInterestingItems(sliceSeed)

	missing := make(map[string]struct{})
	for name := range seed {
		base := baseName(name)
		if _, ok := m.dict.Lookup(base); ok {
			continue
		}
		if known != nil && known(name) {
			continue
		}
		missing[name] = struct{}{}
	}

	names := make([]string, 0, len(included))
	for name := range included {
		names = append(names, name)
	}
	sort.Strings(names)

	formula := expr.True
	validCount := 0
	for _, base := range names {
		local, ok := m.dict.LocalFormula(base)
		if !ok {
			continue
		}
		validCount++
		formula = expr.And{L: formula, R: expr.Impl{L: expr.Var{Name: base}, R: local}}
		formula = expr.And{L: formula, R: expr.Eq{L: expr.Var{Name: fullName(base)}, R: expr.Var{Name: base}}}
	}

	return formula, missing, validCount
}
