package surface_test

import (
	"testing"

	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_ParsesRulesAndAlternates(t *testing.T) {
	assert := assert.New(t)

	g, err := surface.Load(`
		S : F | ( S + F ) ;
		F : a ;
	`, surface.Options{})
	require.NoError(t, err)

	assert.Equal("S", g.Start().Name())

	S, ok := g.Rule("S")
	require.True(t, ok)
	assert.Len(S.Alternates, 2)

	F, ok := g.Rule("F")
	require.True(t, ok)
	assert.Len(F.Alternates, 1)

	_, isTerm := g.Term("a")
	assert.True(isTerm)
	_, isTerm = g.Term("(")
	assert.True(isTerm)
}

func Test_Load_ForwardReference(t *testing.T) {
	assert := assert.New(t)

	// E is referenced by S before its own rule line appears.
	g, err := surface.Load(`
		S : E a ;
		E : b ;
	`, surface.Options{})
	require.NoError(t, err)

	S, _ := g.Rule("S")
	require.Len(t, S.Alternates, 1)
	assert.Equal(grammar.NonTerminal, S.Alternates[0][0].Kind())
	assert.Equal("E", S.Alternates[0][0].Name())
}

func Test_Load_EpsilonAlternate(t *testing.T) {
	assert := assert.New(t)

	g, err := surface.Load(`S : ε ;`, surface.Options{})
	require.NoError(t, err)

	S, _ := g.Rule("S")
	require.Len(t, S.Alternates, 1)
	assert.True(S.Alternates[0].IsEpsilon())
}

func Test_Load_CustomEpsilonGlyph(t *testing.T) {
	assert := assert.New(t)

	g, err := surface.Load(`S : eps ;`, surface.Options{EpsilonName: "eps"})
	require.NoError(t, err)

	S, _ := g.Rule("S")
	require.Len(t, S.Alternates, 1)
	assert.True(S.Alternates[0].IsEpsilon())
}

func Test_Load_MalformedLine_IsGrammarError(t *testing.T) {
	assert := assert.New(t)

	_, err := surface.Load("this is not a rule", surface.Options{})
	assert.Error(err)
}

func Test_Load_UndefinedNonTerminal_IsGrammarError(t *testing.T) {
	assert := assert.New(t)

	_, err := surface.Load(`S : T a ;`, surface.Options{})
	assert.Error(err)
}

func Test_LoadTOML_ParsesRulesAndTerminals(t *testing.T) {
	assert := assert.New(t)

	data := []byte(`
start = "S"

[[rule]]
head = "S"
alternates = [["(", "S", "+", "F", ")"], ["F"]]

[[rule]]
head = "F"
alternates = [["a"]]
`)

	g, err := surface.LoadTOML(data)
	require.NoError(t, err)

	assert.Equal("S", g.Start().Name())
	S, _ := g.Rule("S")
	assert.Len(S.Alternates, 2)
}

func Test_LoadTOML_MissingStart_IsGrammarError(t *testing.T) {
	assert := assert.New(t)

	_, err := surface.LoadTOML([]byte(`
[[rule]]
head = "S"
alternates = [["a"]]
`))
	assert.Error(err)
}

func Test_LoadTOML_MalformedTOML_IsGrammarError(t *testing.T) {
	assert := assert.New(t)

	_, err := surface.LoadTOML([]byte("not = [valid toml"))
	assert.Error(err)
}
