package langcaps

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	js, ok := Lookup("javascript")
	require.True(t, ok)
	require.True(t, js.SupportsEval)
	require.True(t, js.SupportsIO)
	require.NotEmpty(t, js.Sample)
	require.NotEmpty(t, js.SampleIO)

	py, ok := Lookup("python")
	require.True(t, ok)
	require.False(t, py.SupportsEval)
	require.True(t, py.SupportsIO)

	_, ok = Lookup("cobol")
	require.False(t, ok)
}

func TestSolveSignatureOK(t *testing.T) {
	require.True(t, SolveSignatureOK("javascript", "function solve(input) { return input }"))
	require.True(t, SolveSignatureOK("javascript", "function  solve (x) {}"))
	require.False(t, SolveSignatureOK("javascript", "const solve = (x) => x"))

	require.True(t, SolveSignatureOK("python", "def solve(data):\n    return data"))
	require.False(t, SolveSignatureOK("python", "solve = lambda x: x"))

	require.False(t, SolveSignatureOK("cobol", "function solve()"))
}
