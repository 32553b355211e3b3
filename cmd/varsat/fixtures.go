package main

import (
	"github.com/crillab/varsat/block"
	"github.com/crillab/varsat/coverage"
	"github.com/crillab/varsat/expr"
)

// namedFixtures maps the fixed filenames from §8's end-to-end scenarios
// to the block.Tree the CLI's own smoke tests exercise, since the real
// preprocessor front end that would produce these trees from source is
// an external collaborator (§1 Non-goals).
var namedFixtures = map[string]func() block.Tree{
	"mus_test.c":      musTestFixture,
	"preconditions.c": preconditionsFixture,
	"coverage_wl.c":   coverageWlFixture,
	"cpppc-define.c":  cpppcDefineFixture,
}

// musTestFixture is scenario 1: one if/else pair guarded by CONFIG_BAR.
func musTestFixture() block.Tree {
	b := block.NewBuilder("mus_test.c")
	root := b.Root()
	b0 := b.AddIf(root, expr.Var{Name: "CONFIG_BAR"})
	b.AddElse(b0, nil)
	return b.Build()
}

// preconditionsFixture is scenario 2: a nested if-chain two levels deep.
func preconditionsFixture() block.Tree {
	b := block.NewBuilder("preconditions.c")
	root := b.Root()
	b2 := b.AddIf(root, expr.Var{Name: "CONFIG_TOPLEVEL_C"})
	b.AddIf(b2, expr.Var{Name: "CONFIG_LEVEL_C_B"})
	return b.Build()
}

// coverageWlFixture is scenario 3: two independent if/else pairs.
func coverageWlFixture() block.Tree {
	b := block.NewBuilder("coverage_wl.c")
	root := b.Root()
	a0 := b.AddIf(root, expr.Var{Name: "CONFIG_TO_BE_SET"})
	b.AddElse(a0, nil)
	c0 := b.AddIf(root, expr.Var{Name: "CONFIG_OFF"})
	b.AddElse(c0, nil)
	return b.Build()
}

// cpppcDefineFixture is scenario 4: a block guarded by CONFIG_A defines
// CONFIG_C, and a sibling block guards on the post-definition variant.
func cpppcDefineFixture() block.Tree {
	b := block.NewBuilder("cpppc-define.c")
	root := b.Root()
	b.AddIf(root, expr.Var{Name: "CONFIG_A"})
	b.AddIf(root, expr.Var{Name: coverage.PostDefinitionName("CONFIG_C")})
	return b.Build()
}
