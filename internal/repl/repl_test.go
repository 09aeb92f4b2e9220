package repl_test

import (
	"io"
	"strings"
	"testing"

	"github.com/dekarrin/llparse/internal/repl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DirectReader_ReadsSuccessiveLines(t *testing.T) {
	r := repl.NewDirectReader(strings.NewReader("a + a\n( a )\n"))
	defer r.Close()

	line1, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "a + a", line1)

	line2, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "( a )", line2)
}

func Test_DirectReader_EOFOnExhaustion(t *testing.T) {
	r := repl.NewDirectReader(strings.NewReader("only line\n"))
	defer r.Close()

	_, err := r.ReadLine()
	require.NoError(t, err)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}
