package kconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBasicFacts(t *testing.T) {
	input := strings.Join([]string{
		"Item\tFOO\tboolean",
		"Depends\tFOO\t\"BAR\"",
		"HasPrompts\tFOO\t1",
		"Default\tFOO\t\"1\"\t\"BAR\"",
		"ItemSelects\tFOO\t\"BAZ\"\t\"BAR\"",
		"Definition\tFOO\t\"foo.c:12\"",
	}, "\n")

	d, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	foo, ok := d.Lookup("FOO")
	require.True(t, ok)
	assert.Equal(t, Boolean, foo.Type)
	assert.Equal(t, "BAR", foo.Dependency)
	assert.Equal(t, 1, foo.HasPrompts)
	require.Len(t, foo.Defaults, 1)
	assert.Equal(t, "1", foo.Defaults[0].Value)
	assert.Equal(t, "BAR", foo.Defaults[0].Visibility)
	require.Len(t, foo.Selects, 1)
	assert.Equal(t, "BAZ", foo.Selects[0].Target)
	assert.Equal(t, "foo.c:12", foo.DefinitionSite)
}

func TestLoadChoiceGroup(t *testing.T) {
	input := strings.Join([]string{
		"Item\tA\tboolean",
		"Item\tB\tboolean",
		"ChoiceItem\tA\tCHOICE_1",
		"ChoiceItem\tB\tCHOICE_1",
		"Choice\tCHOICE_1\trequired\tboolean",
	}, "\n")

	d, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	c, ok := d.Choices["CHOICE_1"]
	require.True(t, ok)
	assert.True(t, c.Required)
	assert.False(t, c.Tristate)
	assert.Equal(t, []string{"A", "B"}, c.Members)

	a, _ := d.Lookup("A")
	assert.Equal(t, "CHOICE_1", a.ChoiceGroup)
}

func TestLoadSkipsMalformedLinesButKeepsGoing(t *testing.T) {
	input := strings.Join([]string{
		"Item\tFOO\tboolean",
		"Item\tBAD_TYPE\tnotatype",
		"NotAFact\twhatever",
		"Item\tBAR\ttristate",
	}, "\n")

	d, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	_, ok := d.Lookup("FOO")
	assert.True(t, ok)
	_, ok = d.Lookup("BAR")
	assert.True(t, ok)
	// BAD_TYPE line failed to parse a type, so no symbol record with a
	// valid type was created for it beyond the zero-value lookup.
	bad, ok := d.Lookup("BAD_TYPE")
	if ok {
		assert.Equal(t, Boolean, bad.Type) // untouched default
	}
}

func TestUnquoteHandlesEscapesAndEmptyString(t *testing.T) {
	s, err := unquote(`"a\"b\\c"`)
	require.NoError(t, err)
	assert.Equal(t, `a"b\c`, s)

	s, err = unquote(`""`)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = unquote("noquotes")
	assert.Error(t, err)
}

func TestSymbolTypeIDRoundTrip(t *testing.T) {
	for _, ty := range []SymbolType{Boolean, Tristate, Int, Hex, String, Other} {
		got, err := SymbolTypeFromTypeID(ty.TypeID())
		require.NoError(t, err)
		assert.Equal(t, ty, got)
	}
	_, err := SymbolTypeFromTypeID(0)
	assert.Error(t, err)
}
