package recognize_test

import (
	"errors"
	"testing"

	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/lex"
	"github.com/dekarrin/llparse/internal/perr"
	"github.com/dekarrin/llparse/internal/recognize"
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

func Test_Run_ScenarioA(t *testing.T) {
	g := mustLoad(t, `
		S : F | ( S + F ) ;
		F : a ;
	`)
	tbl, conflicts, err := table.Build(g)
	require.NoError(t, err)
	require.Empty(t, conflicts)

	testCases := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{name: "single grouping", input: "( a + a )", expectErr: false},
		{name: "nested grouping", input: "( ( a + a ) + a )", expectErr: false},
		{name: "truncated input", input: "( a +", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			stream, err := lex.StreamOf(tc.input)
			require.NoError(t, err)

			err = recognize.Run(tbl, g, stream)
			if tc.expectErr {
				assert.Error(err)
				assert.True(errors.Is(err, perr.ErrParse))
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Run_TruncatedInput_Classification(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : F | ( S + F ) ;
		F : a ;
	`)
	tbl, _, err := table.Build(g)
	require.NoError(t, err)

	stream, err := lex.StreamOf("( a +")
	require.NoError(t, err)

	err = recognize.Run(tbl, g, stream)
	require.Error(t, err)

	var perr2 *recognize.ParseError
	require.ErrorAs(t, err, &perr2)
	assert.Equal(recognize.Truncated, perr2.Classification)
}

func Test_Run_TrailingInput_Classification(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : a ;
	`)
	tbl, _, err := table.Build(g)
	require.NoError(t, err)

	stream, err := lex.StreamOf("a a")
	require.NoError(t, err)

	err = recognize.Run(tbl, g, stream)
	require.Error(t, err)

	var perr2 *recognize.ParseError
	require.ErrorAs(t, err, &perr2)
	assert.Equal(recognize.Trailing, perr2.Classification)
}

func Test_Run_EmptyInput_EpsilonAdmittingStart(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : ε ;
	`)
	tbl, _, err := table.Build(g)
	require.NoError(t, err)

	stream, err := lex.StreamOf("")
	require.NoError(t, err)

	err = recognize.Run(tbl, g, stream)
	assert.NoError(err)
}

func Test_Run_RepeatedParse_SameVerdict(t *testing.T) {
	assert := assert.New(t)

	g := mustLoad(t, `
		S : F | ( S + F ) ;
		F : a ;
	`)
	tbl, _, err := table.Build(g)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		stream, err := lex.StreamOf("( a + a )")
		require.NoError(t, err)
		assert.NoError(recognize.Run(tbl, g, stream))
	}
}
