package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceptanceVectors(t *testing.T) {
	cases := []struct {
		input   string
		accept  bool
		printed string // checked only when accept is true and non-empty
	}{
		{input: "", accept: false},
		{input: "A", accept: true, printed: "A"},
		{input: "! A", accept: true, printed: "!A"},
		{input: "--0--", accept: false},
		{input: "A &&", accept: false},
		{input: "(A && B) || C", accept: true, printed: "A && B || C"},
		{input: "A -> B", accept: true, printed: "A -> B"},
		{input: " -> B", accept: false},
		{input: "foo(x,y,z)", accept: true},
		{input: "0 || 1 || 'r'", accept: true, printed: "0 || 1 || 1"},
	}

	for _, tc := range cases {
		e, err := Parse(tc.input)
		if !tc.accept {
			assert.Errorf(t, err, "expected %q to be rejected", tc.input)
			continue
		}
		require.NoErrorf(t, err, "expected %q to be accepted", tc.input)
		if tc.printed != "" {
			assert.Equal(t, tc.printed, e.String())
		}
	}
}

func TestParseNot(t *testing.T) {
	e, err := Parse("!A")
	require.NoError(t, err)
	n, ok := e.(Not)
	require.True(t, ok)
	assert.True(t, IsVar(n.X, "A"))
}

func TestParseAssociativity(t *testing.T) {
	e, err := Parse("A && B && C")
	require.NoError(t, err)
	// right-recursive parse: A && (B && C)
	top, ok := e.(And)
	require.True(t, ok)
	assert.True(t, IsVar(top.L, "A"))
	inner, ok := top.R.(And)
	require.True(t, ok)
	assert.True(t, IsVar(inner.L, "B"))
	assert.True(t, IsVar(inner.R, "C"))
}

func TestParseCallWithArgs(t *testing.T) {
	e, err := Parse("foo(x,y,z)")
	require.NoError(t, err)
	c, ok := e.(Call)
	require.True(t, ok)
	assert.Equal(t, "foo", c.Name)
	require.Len(t, c.Args, 3)
	assert.True(t, IsVar(c.Args[0], "x"))
	assert.True(t, IsVar(c.Args[1], "y"))
	assert.True(t, IsVar(c.Args[2], "z"))
}

func TestParseRelationalCollapsesToCall(t *testing.T) {
	e, err := Parse("x < y")
	require.NoError(t, err)
	c, ok := e.(Call)
	require.True(t, ok)
	assert.Equal(t, "x<y", c.Name)
	assert.Empty(t, c.Args)
}

func TestParseEquivAndPrecedence(t *testing.T) {
	e, err := Parse("A <-> B -> C || D && E")
	require.NoError(t, err)
	top, ok := e.(Eq)
	require.True(t, ok)
	assert.True(t, IsVar(top.L, "A"))
	_, ok = top.R.(Impl)
	assert.True(t, ok)
}

func TestParseHexAndDecimalLiterals(t *testing.T) {
	e, err := Parse("0x0")
	require.NoError(t, err)
	assert.Equal(t, Const{Value: false}, e)

	e, err = Parse("0x1B")
	require.NoError(t, err)
	assert.Equal(t, Const{Value: true}, e)
}

func TestPrintRoundTripUpToReassociation(t *testing.T) {
	inputs := []string{
		"A && B || C",
		"A -> B && C",
		"!A || B",
		"A <-> B",
	}
	for _, in := range inputs {
		e, err := Parse(in)
		require.NoError(t, err)
		e2, err := Parse(e.String())
		require.NoError(t, err)
		assert.True(t, e.Equal(e2), "round-trip mismatch for %q: %q -> %q", in, e.String(), e2.String())
	}
}
