package analysis_test

import (
	"testing"

	"github.com/dekarrin/llparse/internal/analysis"
	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, text string) grammar.Grammar {
	t.Helper()
	g, err := surface.Load(text, surface.Options{})
	require.NoError(t, err)
	return g
}

func names(syms []grammar.Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.String()
	}
	return out
}

// Scenario A from the worked examples: a simple parenthesized-expression
// grammar with no conflicts.
func Test_Solve_ScenarioA(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : F | ( S + F ) ;
		F : a ;
	`)

	sets, err := analysis.Solve(g)
	assert.NoError(err)

	S, _ := g.Rule("S")
	F, _ := g.Rule("F")

	assert.ElementsMatch([]string{"a", "("}, names(sets.First.Get(analysis.Seq{S.Head})))
	assert.ElementsMatch([]string{"a"}, names(sets.First.Get(analysis.Seq{F.Head})))
	assert.ElementsMatch([]string{"$", ")", "+"}, names(sets.Follow.Get(analysis.Seq{F.Head})))
	assert.ElementsMatch([]string{"$"}, names(sets.Follow.Get(analysis.Seq{S.Head})))
}

// Scenario B: S : E | E a ; E : b | ε. FIRST(E) includes Epsilon and
// FOLLOW(S) must include EndMarker since S can derive the empty string too.
func Test_Solve_ScenarioB_Epsilon(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : E | E a ;
		E : b | ε ;
	`)

	sets, err := analysis.Solve(g)
	assert.NoError(err)

	E, _ := g.Rule("E")
	firstE := sets.First.Get(analysis.Seq{E.Head})
	assert.True(hasEpsilon(firstE), "Epsilon should be in FIRST(E) since E derives the empty string")

	S, _ := g.Rule("S")
	followS := sets.Follow.Get(analysis.Seq{S.Head})
	assert.Contains(names(followS), "$")
}

func Test_Solve_Idempotent(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : F | ( S + F ) ;
		F : a ;
	`)

	sets1, err := analysis.Solve(g)
	assert.NoError(err)
	sets2, err := analysis.Solve(g)
	assert.NoError(err)

	S, _ := g.Rule("S")
	assert.ElementsMatch(
		names(sets1.First.Get(analysis.Seq{S.Head})),
		names(sets2.First.Get(analysis.Seq{S.Head})),
	)
}

func Test_Store_DirtyFlag(t *testing.T) {
	assert := assert.New(t)

	s := analysis.NewStore()
	a := grammar.NewTerminal("a")
	b := grammar.NewTerminal("b")

	assert.False(s.Dirty())

	s.Add(analysis.Seq{a}, a)
	assert.True(s.Dirty(), "adding to a brand new bucket should dirty the store")

	s.ClearDirty()
	s.Add(analysis.Seq{a}, a)
	assert.False(s.Dirty(), "re-adding an existing member should not dirty the store")

	s.Add(analysis.Seq{a}, b)
	assert.True(s.Dirty(), "widening a bucket should dirty the store")

	s.ClearDirty()
	s.Remove(analysis.Seq{a}, b)
	assert.True(s.Dirty(), "narrowing a bucket should dirty the store")

	s.ClearDirty()
	s.Remove(analysis.Seq{a}, b)
	assert.False(s.Dirty(), "removing an absent member should not dirty the store")
}

func hasEpsilon(syms []grammar.Symbol) bool {
	for _, s := range syms {
		if s.Kind() == grammar.Epsilon {
			return true
		}
	}
	return false
}
