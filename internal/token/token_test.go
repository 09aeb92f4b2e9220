package token_test

import (
	"testing"

	"github.com/dekarrin/llparse/internal/token"
	"github.com/stretchr/testify/assert"
)

func Test_Stack_PushPopPeek(t *testing.T) {
	assert := assert.New(t)

	var s token.Stack[string]
	assert.Equal(0, s.Len())

	s.Push("a")
	s.Push("b")
	s.Push("c")
	assert.Equal(3, s.Len())
	assert.Equal("c", s.Peek())

	assert.Equal("c", s.Pop())
	assert.Equal("b", s.Pop())
	assert.Equal(1, s.Len())
	assert.Equal("a", s.Peek())
}

func Test_Stack_Slice_TopDown(t *testing.T) {
	assert := assert.New(t)

	var s token.Stack[int]
	s.Push(1)
	s.Push(2)
	s.Push(3)

	assert.Equal([]int{3, 2, 1}, s.Slice())
}

func Test_Stack_Pop_EmptyPanics(t *testing.T) {
	assert := assert.New(t)

	var s token.Stack[int]
	assert.Panics(func() { s.Pop() })
}

func Test_Stream_PeekIsIdempotent(t *testing.T) {
	assert := assert.New(t)

	src := token.NewSliceSource([]token.Token{
		{Type: token.NAME, Value: "a"},
		{Type: token.END},
	})
	stream := token.NewStream(src)

	first, ok := stream.Peek()
	assert.True(ok)
	assert.Equal("a", first.Value)

	second, ok := stream.Peek()
	assert.True(ok)
	assert.Equal(first, second)

	next, ok := stream.Next()
	assert.True(ok)
	assert.Equal("a", next.Value)

	end, ok := stream.Peek()
	assert.True(ok)
	assert.Equal(token.END, end.Type)
}

func Test_Stream_SkipsWhitespace(t *testing.T) {
	assert := assert.New(t)

	src := token.NewSliceSource([]token.Token{
		{Type: token.WHITESPACE, Value: " "},
		{Type: token.NAME, Value: "a"},
		{Type: token.WHITESPACE, Value: "\t"},
		{Type: token.NAME, Value: "b"},
		{Type: token.END},
	})
	stream := token.NewStream(src)

	first, ok := stream.Next()
	assert.True(ok)
	assert.Equal("a", first.Value)

	second, ok := stream.Next()
	assert.True(ok)
	assert.Equal("b", second.Value)

	third, ok := stream.Next()
	assert.True(ok)
	assert.Equal(token.END, third.Type)
}

func Test_Stream_ExhaustedWithoutEnd(t *testing.T) {
	assert := assert.New(t)

	src := token.NewSliceSource(nil)
	stream := token.NewStream(src)

	_, ok := stream.Peek()
	assert.False(ok)
}
