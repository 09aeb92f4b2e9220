package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Symbol_Equal(t *testing.T) {
	testCases := []struct {
		name     string
		a        Symbol
		b        Symbol
		expected bool
	}{
		{
			name:     "terminals with same name and different values are equal",
			a:        NewTerminalValue("int", 5),
			b:        NewTerminalValue("int", 6),
			expected: true,
		},
		{
			name:     "terminals with different names are not equal",
			a:        NewTerminal("int"),
			b:        NewTerminal("str"),
			expected: false,
		},
		{
			name:     "nonterminal equals its own start-flagged variant",
			a:        NewNonTerminal("S"),
			b:        NewStart("S"),
			expected: true,
		},
		{
			name:     "two epsilons with different display names are equal",
			a:        NewEpsilon("ε"),
			b:        NewEpsilon("eps"),
			expected: true,
		},
		{
			name:     "two end markers with different display names are equal",
			a:        NewEndMarker("$"),
			b:        NewEndMarker("EOF"),
			expected: true,
		},
		{
			name:     "terminal is not equal to a nonterminal of the same name",
			a:        NewTerminal("S"),
			b:        NewNonTerminal("S"),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expected, tc.a.Equal(tc.b))
		})
	}
}

func Test_Symbol_Key_SetMembership(t *testing.T) {
	assert := assert.New(t)

	set := map[Key]bool{}
	set[NewTerminalValue("int", 5).Key()] = true
	set[NewTerminalValue("int", 6).Key()] = true

	assert.Len(set, 1, "Terminal(int, 5) and Terminal(int, 6) should collapse to one key")
}

func Test_Builder_Build(t *testing.T) {
	testCases := []struct {
		name      string
		build     func(b *Builder)
		expectErr bool
	}{
		{
			name:      "no start rule",
			build:     func(b *Builder) {},
			expectErr: true,
		},
		{
			name: "undefined nonterminal reference",
			build: func(b *Builder) {
				a := b.Terminal("a")
				b.Rule("S", Alternate{NewNonTerminal("T"), a})
			},
			expectErr: true,
		},
		{
			name: "valid single-rule grammar",
			build: func(b *Builder) {
				a := b.Terminal("a")
				b.Rule("S", Alternate{a})
			},
			expectErr: false,
		},
		{
			name: "zero-length alternate is a warning, not an error",
			build: func(b *Builder) {
				b.Rule("S", Alternate{})
			},
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			b := NewBuilder("S")
			tc.build(b)
			g, err := b.Build()

			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.True(g.Start().IsStart())
		})
	}
}

func Test_Builder_Build_ZeroLengthAlternateWarns(t *testing.T) {
	assert := assert.New(t)

	b := NewBuilder("S")
	b.Rule("S", Alternate{})

	g, err := b.Build()
	assert.NoError(err)
	assert.NotEmpty(g.Warnings())
}
