// Package lex provides a concrete tokenizer fulfilling the recognizer's
// token.Source contract: it splits raw text into WHITESPACE, NAME,
// INTEGER, STRING, and a final END token, the way the original prototype's
// word-by-word tokenizer did.
package lex

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/dekarrin/llparse/internal/perr"
	"github.com/dekarrin/llparse/internal/token"
	"golang.org/x/text/cases"
)

// Lexer splits a string into a sequence of token.Token, implementing
// token.Source. NAME lexemes are case-folded with golang.org/x/text/cases
// so that terminal names match regardless of the input's casing, mirroring
// how the tunascript lexer normalizes identifiers before classifying them.
type Lexer struct {
	runes []rune
	pos   int
	fold  cases.Caser
	done  bool
}

// New builds a Lexer over src. Matching against grammar Terminal names is
// case-insensitive: NAME lexemes are folded to lower case before being
// handed to the recognizer.
func New(src string) *Lexer {
	return &Lexer{
		runes: []rune(src),
		fold:  cases.Fold(),
	}
}

// Next implements token.Source.
func (l *Lexer) Next() (token.Token, bool) {
	if l.done {
		return token.Token{}, false
	}

	if l.pos >= len(l.runes) {
		l.done = true
		return token.Token{Type: token.END, Pos: l.pos}, true
	}

	start := l.pos
	ch := l.runes[l.pos]

	switch {
	case unicode.IsSpace(ch):
		for l.pos < len(l.runes) && unicode.IsSpace(l.runes[l.pos]) {
			l.pos++
		}
		return token.Token{Type: token.WHITESPACE, Value: string(l.runes[start:l.pos]), Pos: start}, true

	case ch == '"':
		l.pos++
		for l.pos < len(l.runes) && l.runes[l.pos] != '"' {
			l.pos++
		}
		if l.pos >= len(l.runes) {
			// lexeme ran off the end without a closing quote
			l.done = true
			return token.Token{}, false
		}
		l.pos++ // consume closing quote
		return token.Token{Type: token.STRING, Value: string(l.runes[start+1 : l.pos-1]), Pos: start}, true

	default:
		for l.pos < len(l.runes) && !unicode.IsSpace(l.runes[l.pos]) && l.runes[l.pos] != '"' {
			l.pos++
		}
		word := string(l.runes[start:l.pos])
		if _, err := strconv.Atoi(word); err == nil {
			return token.Token{Type: token.INTEGER, Value: word, Pos: start}, true
		}
		return token.Token{Type: token.NAME, Value: l.fold.String(word), Pos: start}, true
	}
}

// Err reports the tokenization failure that caused Next to stop returning
// tokens partway through the input (an unterminated quoted string), or nil
// if the lexer simply ran to completion.
func (l *Lexer) Err() error {
	if l.done && l.pos < len(l.runes) && l.runes[l.pos] == '"' {
		return perr.Tokenization(fmt.Sprintf("unterminated quoted string starting at position %d", l.pos))
	}
	return nil
}

// Tokenize runs l to completion and returns the full token slice, or a
// tokenization error if a malformed lexeme (e.g. an unbalanced quote) was
// encountered. The returned slice's last element is always an END token on
// success.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	var out []token.Token
	for {
		t, ok := l.Next()
		if !ok {
			if err := l.Err(); err != nil {
				return nil, err
			}
			return nil, perr.Tokenization(fmt.Sprintf("unexpected end of input at position %d", l.pos))
		}
		out = append(out, t)
		if t.Type == token.END {
			return out, nil
		}
	}
}

// StreamOf tokenizes src and wraps the result in a token.Stream, ready for
// the recognizer.
func StreamOf(src string) (*token.Stream, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return token.NewStream(token.NewSliceSource(toks)), nil
}
