package table_test

import (
	"testing"

	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/surface"
	"github.com/dekarrin/llparse/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, text string) grammar.Grammar {
	t.Helper()
	g, err := surface.Load(text, surface.Options{})
	require.NoError(t, err)
	return g
}

// Scenario A: the worked parenthesized-expression grammar has no conflicts
// and a predictable table.
func Test_Build_ScenarioA_NoConflicts(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : F | ( S + F ) ;
		F : a ;
	`)

	tbl, conflicts, err := table.Build(g)
	require.NoError(t, err)
	assert.Empty(conflicts)

	S, _ := g.Rule("S")
	F, _ := g.Rule("F")
	aTerm, _ := g.Term("a")
	parenTerm, _ := g.Term("(")

	cellSa := tbl.Get(S.Head, aTerm)
	require.Len(t, cellSa, 1)
	assert.Equal("F", cellSa[0].String())

	cellSparen := tbl.Get(S.Head, parenTerm)
	require.Len(t, cellSparen, 1)
	assert.Equal("(S+F)", cellSparen[0].String())

	cellFa := tbl.Get(F.Head, aTerm)
	require.Len(t, cellFa, 1)
	assert.Equal("a", cellFa[0].String())
}

// Scenario B: first/first conflict. S : E | E a ; E : b | ε.
// Cell (S, b) must hold two alternates.
func Test_Build_ScenarioB_FirstFirstConflict(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : E | E a ;
		E : b | ε ;
	`)

	_, conflicts, err := table.Build(g)
	require.NoError(t, err)
	assert.NotEmpty(conflicts)

	found := false
	for _, c := range conflicts {
		if c.NonTerminal.Name() == "S" && c.Terminal.Name() == "b" {
			found = true
			assert.Len(c.Alternates, 2)
		}
	}
	assert.True(found, "expected a conflict at (S, b)")
}

// Scenario C: left-factored resolution of B has no conflicts.
func Test_Build_ScenarioC_LeftFactoredNoConflict(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : b E | E ;
		E : a | ε ;
	`)

	tbl, conflicts, err := table.Build(g)
	require.NoError(t, err)
	assert.Empty(conflicts)

	S, _ := g.Rule("S")
	bTerm, _ := g.Term("b")
	cell := tbl.Get(S.Head, bTerm)
	require.Len(t, cell, 1)
	assert.Equal("bE", cell[0].String())
}

// Scenario D: left-recursion diagnostic. S : E ; E : E + a | b | c.
// Cells (E, b) and (E, c) each hold two alternates.
func Test_Build_ScenarioD_LeftRecursionConflict(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : E ;
		E : E + a | b | c ;
	`)

	_, conflicts, err := table.Build(g)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, c := range conflicts {
		if c.NonTerminal.Name() == "E" {
			seen[c.Terminal.Name()] = true
		}
	}
	assert.True(seen["b"])
	assert.True(seen["c"])
}

// Scenario F: classic dangling-else ambiguity surfaces as a conflict at
// (EStatement, else).
func Test_Build_ScenarioF_DanglingElse(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		Statement : if E then Statement EStatement | a ;
		EStatement : else Statement | ε ;
		E : b ;
	`)

	_, conflicts, err := table.Build(g)
	require.NoError(t, err)

	found := false
	for _, c := range conflicts {
		if c.NonTerminal.Name() == "EStatement" && c.Terminal.Name() == "else" {
			found = true
		}
	}
	assert.True(found, "expected a conflict at (EStatement, else)")
}

// Scenario E: Z : + a | ε, reached only after T, exercises a FOLLOW set
// that includes EndMarker alongside a real terminal.
func Test_Build_ScenarioE_EpsilonFollowsToEndMarker(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : E ;
		E : T Z ;
		Z : + a | ε ;
		T : b | c ;
	`)

	tbl, conflicts, err := table.Build(g)
	require.NoError(t, err)
	assert.Empty(conflicts)

	Z, _ := g.Rule("Z")
	plusTerm, _ := g.Term("+")

	cellZplus := tbl.Get(Z.Head, plusTerm)
	require.Len(t, cellZplus, 1)
	assert.Equal("+a", cellZplus[0].String())

	cellZend := tbl.Get(Z.Head, g.EndMarker())
	require.Len(t, cellZend, 1)
	assert.Equal("ε", cellZend[0].String())
}

func Test_Build_RenderString(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : F | ( S + F ) ;
		F : a ;
	`)

	tbl, _, err := table.Build(g)
	require.NoError(t, err)
	assert.NotEmpty(tbl.String())
}
