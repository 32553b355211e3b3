package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/varsat/kconfig"
)

func loadModel(t *testing.T, lines ...string) *Model {
	t.Helper()
	dict, err := kconfig.Load(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	m, err := New(dict)
	require.NoError(t, err)
	return m
}

func TestFindInterestingItemsFollowsDependencyChain(t *testing.T) {
	m := loadModel(t,
		"Item\tFOO\tboolean",
		"Depends\tFOO\t\"BAR\"",
		"Item\tBAR\tboolean",
		"Depends\tBAR\t\"BAZ\"",
		"Item\tBAZ\tboolean",
		"Item\tUNRELATED\tboolean",
	)

	seed := map[string]struct{}{"CONFIG_FOO": {}}
	included := m.FindInterestingItems(seed)

	assert.Contains(t, included, "FOO")
	assert.Contains(t, included, "BAR")
	assert.Contains(t, included, "BAZ")
	assert.NotContains(t, included, "UNRELATED")
}

func TestFindInterestingItemsAcceptsBareOrPrefixedSeed(t *testing.T) {
	m := loadModel(t, "Item\tFOO\tboolean")

	byBare := m.FindInterestingItems(map[string]struct{}{"FOO": {}})
	byPrefixed := m.FindInterestingItems(map[string]struct{}{"CONFIG_FOO": {}})
	assert.Equal(t, byBare, byPrefixed)
}

func TestDoIntersectReportsMissingUnlessKnown(t *testing.T) {
	m := loadModel(t, "Item\tFOO\tboolean")

	seed := map[string]struct{}{"CONFIG_FOO": {}, "CONFIG_GHOST": {}}
	_, missing, valid := m.DoIntersect(seed, nil)
	assert.Equal(t, 1, valid)
	assert.Contains(t, missing, "CONFIG_GHOST")
	assert.NotContains(t, missing, "CONFIG_FOO")

	_, missing2, _ := m.DoIntersect(seed, func(name string) bool { return name == "CONFIG_GHOST" })
	assert.NotContains(t, missing2, "CONFIG_GHOST")
}

func TestDoIntersectJoinsLocalFormulasAndBridgesPrefixedNames(t *testing.T) {
	m := loadModel(t,
		"Item\tFOO\tboolean",
		"Depends\tFOO\t\"BAR\"",
		"Item\tBAR\tboolean",
	)

	seed := map[string]struct{}{"CONFIG_FOO": {}}
	f, _, _ := m.DoIntersect(seed, nil)
	s := f.String()

	assert.Contains(t, s, "FOO -> BAR")
	assert.Contains(t, s, "CONFIG_FOO <-> FOO")
	assert.Contains(t, s, "CONFIG_BAR <-> BAR")
}

func TestDoIntersectPullsInAlwaysOnAndOffClosures(t *testing.T) {
	m := loadModel(t,
		"Item\tFOO\tboolean",
		"Item\tON\tboolean",
		"Depends\tON\t\"OFF\"",
		"Item\tOFF\tboolean",
	)
	m.alwaysOn["CONFIG_ON"] = true
	m.alwaysOff["CONFIG_OFF"] = true

	f, _, _ := m.DoIntersect(map[string]struct{}{"CONFIG_FOO": {}}, nil)
	s := f.String()
	// ON's own local formula (ON -> OFF) must be joined even though
	// neither ON nor OFF was in the seed, because ALWAYS_ON pulls ON
	// (and its dependency closure) into the slice.
	assert.Contains(t, s, "ON -> OFF")
	assert.Contains(t, s, "CONFIG_ON <-> ON")
	assert.Contains(t, s, "CONFIG_OFF <-> OFF")
}
