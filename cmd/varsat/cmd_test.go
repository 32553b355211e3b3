package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModelFile(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.model")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	return path
}

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newAnalyzeCmd()
	switch args[0] {
	case "symbols":
		cmd = newSymbolsCmd()
	case "mus":
		cmd = newMUSCmd()
	case "cnf":
		cmd = newCNFCmd()
	}
	cmd.SetArgs(args[1:])
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestAnalyzeCommandReportsDeadAndUndeadForMusTestFixture(t *testing.T) {
	modelPath := writeModelFile(t,
		"Item\tFOO\tboolean",
		"HasPrompts\tFOO\t1",
		"Depends\tFOO\t\"BAR\"",
		"Item\tBAR\tboolean",
		"HasPrompts\tBAR\t1",
		"Item\tFILE_mus_test.c\tboolean",
		"HasPrompts\tFILE_mus_test.c\t1",
		"Depends\tFILE_mus_test.c\t\"FOO\"",
	)

	out := runCmd(t, "analyze", modelPath, "mus_test.c")
	assert.Contains(t, out, "dead B1")
	assert.Contains(t, out, "undead B0")
}

func TestMUSCommandReportsCoreForDeadBlock(t *testing.T) {
	modelPath := writeModelFile(t,
		"Item\tFOO\tboolean",
		"HasPrompts\tFOO\t1",
		"Depends\tFOO\t\"BAR\"",
		"Item\tBAR\tboolean",
		"HasPrompts\tBAR\t1",
		"Item\tFILE_mus_test.c\tboolean",
		"HasPrompts\tFILE_mus_test.c\t1",
		"Depends\tFILE_mus_test.c\t\"FOO\"",
	)

	cmd := newMUSCmd()
	cmd.SetArgs([]string{"--block=B1", modelPath, "mus_test.c"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "globally dead")
}

func TestCNFCommandWritesDimacsHeader(t *testing.T) {
	out := runCmd(t, "cnf", "preconditions.c")
	assert.Contains(t, out, "p cnf")
	assert.Contains(t, out, "c File Format Version: 2.0")
}
