package coverage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/varsat/block"
	"github.com/crillab/varsat/expr"
	"github.com/crillab/varsat/kconfig"
	"github.com/crillab/varsat/model"
)

func musTestTree() block.Tree {
	b := block.NewBuilder("mus_test.c")
	root := b.Root()
	b0 := b.AddIf(root, expr.Var{Name: "CONFIG_BAR"})
	b.AddElse(b0, nil)
	return b.Build()
}

func musTestModel(t *testing.T) *model.Model {
	t.Helper()
	dict, err := kconfig.Load(strings.NewReader(strings.Join([]string{
		"Item\tFOO\tboolean",
		"HasPrompts\tFOO\t1",
		"Depends\tFOO\t\"BAR\"",
		"Item\tBAR\tboolean",
		"HasPrompts\tBAR\t1",
		"Item\tFILE_mus_test.c\tboolean",
		"HasPrompts\tFILE_mus_test.c\t1",
		"Depends\tFILE_mus_test.c\t\"FOO\"",
	}, "\n")))
	require.NoError(t, err)
	m, err := model.New(dict)
	require.NoError(t, err)
	return m
}

// scenario 1: dead/undead detection over an if/else pair against a
// model whose file-presence chain forces the #else branch dead.
func TestScenario1DeadUndeadAndMUS(t *testing.T) {
	tree := musTestTree()
	m := musTestModel(t)

	satB0, muB0, err := CheckBlock(tree, m, "B0")
	require.NoError(t, err)
	assert.True(t, satB0, "B0 should be satisfiable (globally undead)")
	assert.Nil(t, muB0)

	// The MUS is read back over this registry's own Tseitin-encoded
	// clauses (§4.3 introduces auxiliary variables per connective), so
	// its clause count won't match a hand-written CNF one-for-one; this
	// test checks only that a nonempty core comes back.
	satB1, muB1, err := CheckBlock(tree, m, "B1")
	require.NoError(t, err)
	assert.False(t, satB1, "B1 should be unsatisfiable (globally dead)")
	assert.NotEmpty(t, muB1)

	res, err := Analyze(tree, m, Simple)
	require.NoError(t, err)
	assert.Contains(t, res.Dead, "B1")
	assert.Contains(t, res.Undead, "B0")
}

// scenario 2 (coverage-level check): the formula scoped to the nested
// block, without a model, forces that block on and carries the guard
// chain linking it and its parent to their guards.
func TestScenario2PreconditionSurfacesGuardChain(t *testing.T) {
	b := block.NewBuilder("preconditions.c")
	root := b.Root()
	b0 := b.AddIf(root, expr.Var{Name: "CONFIG_TOPLEVEL_C"})
	b1 := b.AddIf(b0, expr.Var{Name: "CONFIG_LEVEL_C_B"})

	f := BaseFormula(b.Build(), nil, []block.Block{b1})
	s := f.String()
	assert.Contains(t, s, "B1")
	assert.Contains(t, s, "B0 <-> CONFIG_TOPLEVEL_C")
	assert.Contains(t, s, "B1 <-> B0 && CONFIG_LEVEL_C_B")
	assert.Contains(t, s, "B00")
}

func twoIndependentIfElsePairs(filename string, guardA, guardB expr.Expr) block.Tree {
	b := block.NewBuilder(filename)
	root := b.Root()
	a0 := b.AddIf(root, guardA)
	b.AddElse(a0, nil)
	c0 := b.AddIf(root, guardB)
	b.AddElse(c0, nil)
	return b.Build()
}

// A configuration forced entirely by an ALWAYS_ON symbol should cover
// both if/else pairs (one branch of each) in a single solution, since
// nothing is left free to vary.
func TestSimpleCoversForcedConfigurationInOneSolution(t *testing.T) {
	tree := twoIndependentIfElsePairs("coverage_wl.c",
		expr.Var{Name: "CONFIG_TO_BE_SET"}, expr.Var{Name: "CONFIG_OFF"})

	dict, err := kconfig.Load(strings.NewReader(strings.Join([]string{
		"Item\tTO_BE_SET\tboolean",
		"HasPrompts\tTO_BE_SET\t1",
		"Item\tOFF\tboolean",
		"HasPrompts\tOFF\t1",
		"Item\tFILE_coverage_wl.c\tboolean",
		"HasPrompts\tFILE_coverage_wl.c\t1",
	}, "\n")))
	require.NoError(t, err)
	dict.Meta["ALWAYS_ON"] = []string{"CONFIG_TO_BE_SET"}
	dict.Meta["ALWAYS_OFF"] = []string{"CONFIG_OFF"}
	m, err := model.New(dict)
	require.NoError(t, err)

	res, err := Analyze(tree, m, Simple)
	require.NoError(t, err)
	require.Len(t, res.Solutions, 1)

	// Both guards are fully pinned by ALWAYS_ON/ALWAYS_OFF, so each
	// pair's other branch can never be entered: B1 (the TO_BE_SET
	// pair's #else) and B2 (the OFF pair's #if) are genuinely dead.
	assert.ElementsMatch(t, []string{"B1", "B2"}, res.Dead)

	assignment := res.Solutions[0]
	assert.True(t, assignment["CONFIG_TO_BE_SET"])
	assert.False(t, assignment["CONFIG_OFF"])
}

// scenario 4: a block that defines a macro needs its own extra
// precondition conjunct linking the pre- and post-definition variants.
func TestScenario4DefineFormulaMatchesCpppcDefine(t *testing.T) {
	b := block.NewBuilder("cpppc-define.c")
	root := b.Root()
	b0 := b.AddIf(root, expr.Var{Name: "CONFIG_A"})
	b.AddIf(root, expr.Var{Name: PostDefinitionName("CONFIG_C")})

	assert.Equal(t, "CONFIG_C.", PostDefinitionName("CONFIG_C"))

	s := DefineFormula(b0, "CONFIG_C").String()
	assert.Contains(t, s, "B0 -> CONFIG_C.")
	assert.Contains(t, s, "CONFIG_C && !B0 -> CONFIG_C.")
	assert.Contains(t, s, "CONFIG_C. && !B0 -> CONFIG_C")
}

// scenario 5: symbol-enumeration mode reports one line per referenced
// config-space name, folding a tristate's _MODULE guard variant onto
// its base name and skipping names outside the configuration space.
func TestEnumerateSymbolsDedupsModuleVariantAndSkipsBlockNames(t *testing.T) {
	tree := twoIndependentIfElsePairs("symbols.c",
		expr.Var{Name: "CONFIG_SND_HDA_INTEL"}, expr.Var{Name: "CONFIG_SND_HDA_INTEL_MODULE"})

	dict, err := kconfig.Load(strings.NewReader(strings.Join([]string{
		"Item\tSND_HDA_INTEL\ttristate",
		"HasPrompts\tSND_HDA_INTEL\t1",
	}, "\n")))
	require.NoError(t, err)
	m, err := model.New(dict)
	require.NoError(t, err)

	symbols := EnumerateSymbols(tree, m)
	require.Len(t, symbols, 1, "CONFIG_SND_HDA_INTEL and its _MODULE variant fold onto one line")
	assert.Equal(t, "CONFIG_SND_HDA_INTEL", symbols[0].Name)
	assert.Equal(t, "TRISTATE", symbols[0].Type)
}

func TestMinimizeCoversAllBlocksAcrossItsRounds(t *testing.T) {
	tree := twoIndependentIfElsePairs("f.c",
		expr.Var{Name: "A"}, expr.Var{Name: "B"})

	res, err := Analyze(tree, nil, Minimize)
	require.NoError(t, err)
	assert.Empty(t, res.Dead)

	// Every guard is a free variable with nothing pinning it, so no
	// block in either independent if/else pair is dead; at least one
	// Solution comes back, and none carries a block-presence variable.
	assert.NotEmpty(t, res.Solutions)
	seen := make(map[bool]bool)
	for _, sol := range res.Solutions {
		seen[sol["A"]] = true
		seen[sol["B"]] = true
		for name := range sol {
			assert.False(t, isBlockName(name), "Solution leaked a block-presence variable %s", name)
		}
	}
}
