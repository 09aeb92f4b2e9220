// Package repl contains identifiers used in getting line input for the
// llparse interactive recognizer shell.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads successive lines of input to recognize against a loaded
// grammar. It must have Close called on it before disposal.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// directLineReader implements LineReader by reading any generic input
// stream directly. It does not sanitize the input of control and escape
// sequences and is suitable for use with piped, non-interactive stdin.
type directLineReader struct {
	r *bufio.Reader
}

// interactiveLineReader implements LineReader by reading from stdin using a
// Go implementation of the GNU Readline library, keeping input clear of
// typing and editing escape sequences and enabling command history. This
// should in general only be used when directly connected to a TTY.
type interactiveLineReader struct {
	rl *readline.Instance
}

// NewDirectReader creates a new LineReader that reads lines from r without
// going through readline.
func NewDirectReader(r io.Reader) LineReader {
	return &directLineReader{r: bufio.NewReader(r)}
}

// NewInteractiveReader creates a new LineReader backed by readline, prompting
// with prompt before each line. The returned LineReader must have Close
// called on it before disposal to properly tear down readline resources.
func NewInteractiveReader(prompt string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &interactiveLineReader{rl: rl}, nil
}

func (d *directLineReader) Close() error {
	return nil
}

func (i *interactiveLineReader) Close() error {
	return i.rl.Close()
}

// ReadLine reads the next line of input. If at end of input, the returned
// string will be empty and error will be io.EOF.
func (d *directLineReader) ReadLine() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadLine reads the next line of input from the readline instance. If at
// end of input, the returned string will be empty and error will be io.EOF.
func (i *interactiveLineReader) ReadLine() (string, error) {
	line, err := i.rl.Readline()
	if err != nil {
		return "", err
	}
	return line, nil
}
