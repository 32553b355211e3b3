// Package coverage implements the block-coverage analyzer (C8): it
// builds a base-file formula F0 over a block tree and a configuration
// model, then enumerates covering configurations with either the
// greedy or minimizing strategy.
package coverage

import (
	"sort"

	"github.com/crillab/varsat/block"
	"github.com/crillab/varsat/expr"
	"github.com/crillab/varsat/model"
)

// freeVars collects every Var name reachable in e, the same identity
// walk model.FindInterestingItems uses on each local formula.
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

// BaseFormula builds F0 per §4.7: the block tree's code constraints
// (the whole file, or — for a scoped query — each block in scope
// additionally asserted ON and joined), the intersected Kconfig slice,
// the negation of missing names when the model is complete, and one
// literal per ALWAYS_ON/ALWAYS_OFF name. m may be nil, in which case
// F0 is just the code-constraints term.
func BaseFormula(tree block.Tree, m *model.Model, scope []block.Block) expr.Expr {
	code := codeConstraintsFor(tree, scope)
	if m == nil {
		return code
	}

	// Every free name in the code formula is a slicing candidate except
	// the synthetic block-presence variables: those are never Kconfig
	// symbols, so DoIntersect's own dictionary lookup would otherwise
	// report each one as "missing" and, for a complete model, negate it.
	seed := make(map[string]struct{})
	freeVars(code, seed)
	configSeed := make(map[string]struct{})
	for name := range seed {
		if isBlockName(name) {
			continue
		}
		configSeed[name] = struct{}{}
	}

	kconfigFormula, missing, _ := m.DoIntersect(configSeed, nil)
	formula := expr.And{L: code, R: kconfigFormula}

	var out expr.Expr = formula
	if !m.Incomplete() {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out = expr.And{L: out, R: expr.Not{X: expr.Var{Name: name}}}
		}
	}

	for _, name := range m.AlwaysOn() {
		out = expr.And{L: out, R: expr.Var{Name: name}}
	}
	for _, name := range m.AlwaysOff() {
		out = expr.And{L: out, R: expr.Not{X: expr.Var{Name: name}}}
	}

	return out
}

// codeConstraintsFor builds the code half of F0. For a scoped query
// (a specific block's precondition) it joins each scoped block's own
// upward-walked defining chain, additionally asserted on, per §4.7's
// scoped baseFileExpression. For the whole file it instead joins the
// root's own literal (plus its file-presence biconditional) with
// exactly one defining equation per block in the tree — each block
// contributes only its own local equation, not its ancestors', since
// every ancestor already appears once via its own entry in the tree.
func codeConstraintsFor(tree block.Tree, scope []block.Block) expr.Expr {
	if len(scope) == 0 {
		joined := tree.Root().CodeConstraints()
		for _, b := range tree.Blocks() {
			joined = expr.And{L: joined, R: ownEquation(b)}
		}
		return joined
	}
	joined := expr.True
	for _, b := range scope {
		joined = expr.And{L: joined, R: b.CodeConstraints()}
		joined = expr.And{L: joined, R: expr.Var{Name: b.Name()}}
	}
	return joined
}

// ownEquation rebuilds a single block's own defining equivalence
// "name <-> parent && guard" (omitting the parent factor for a direct
// child of the root) from the public Block interface, matching the
// per-node rule inside StaticBlock.CodeConstraints's upward walk.
func ownEquation(b block.Block) expr.Expr {
	parent := b.Parent()
	if parent == nil {
		return expr.Var{Name: b.Name()}
	}
	rhs := b.Guard()
	if parent.Parent() != nil {
		rhs = expr.And{L: expr.Var{Name: parent.Name()}, R: b.Guard()}
	}
	return expr.Eq{L: expr.Var{Name: b.Name()}, R: rhs}
}
