package lex_test

import (
	"testing"

	"github.com/dekarrin/llparse/internal/lex"
	"github.com/dekarrin/llparse/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tokenize_ClassifiesKinds(t *testing.T) {
	assert := assert.New(t)

	toks, err := lex.Tokenize(`a 42 "hello there"`)
	require.NoError(t, err)

	require.Len(t, toks, 6) // NAME, WS, INTEGER, WS, STRING, END
	assert.Equal(token.NAME, toks[0].Type)
	assert.Equal("a", toks[0].Value)
	assert.Equal(token.WHITESPACE, toks[1].Type)
	assert.Equal(token.INTEGER, toks[2].Type)
	assert.Equal("42", toks[2].Value)
	assert.Equal(token.WHITESPACE, toks[3].Type)
	assert.Equal(token.STRING, toks[4].Type)
	assert.Equal("hello there", toks[4].Value)
	assert.Equal(token.END, toks[5].Type)
}

func Test_Tokenize_CaseFoldsNames(t *testing.T) {
	assert := assert.New(t)

	toks, err := lex.Tokenize("HELLO")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal("hello", toks[0].Value)
}

func Test_Tokenize_EmptyInput_YieldsOnlyEnd(t *testing.T) {
	assert := assert.New(t)

	toks, err := lex.Tokenize("")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(token.END, toks[0].Type)
}

func Test_Tokenize_UnterminatedString_IsTokenizationError(t *testing.T) {
	assert := assert.New(t)

	_, err := lex.Tokenize(`a "unterminated`)
	assert.Error(err)
}

func Test_StreamOf_WrapsTokensForRecognizer(t *testing.T) {
	assert := assert.New(t)

	stream, err := lex.StreamOf("a b")
	require.NoError(t, err)

	first, ok := stream.Next()
	assert.True(ok)
	assert.Equal("a", first.Value)

	second, ok := stream.Next()
	assert.True(ok)
	assert.Equal("b", second.Value)

	end, ok := stream.Next()
	assert.True(ok)
	assert.Equal(token.END, end.Type)
}
