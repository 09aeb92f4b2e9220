// Package recognize drives a pushdown automaton over an LL(1) parsing
// table and a token stream, accepting or rejecting the input. It builds no
// parse tree; it is a recognizer, not a parser in the tree-building sense.
package recognize

import (
	"fmt"
	"strings"

	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/perr"
	"github.com/dekarrin/llparse/internal/table"
	"github.com/dekarrin/llparse/internal/token"
)

// Classification distinguishes the ways a parse can fail.
type Classification int

const (
	// Mismatch: top of stack is a Terminal that does not match the
	// lookahead terminal, and input remains.
	Mismatch Classification = iota

	// NoEntry: top of stack is a NonTerminal with no table entry for the
	// lookahead terminal, and input remains.
	NoEntry

	// Truncated: the lookahead is end-of-input but the stack still expects
	// more symbols to complete the derivation.
	Truncated

	// Trailing: the stack has reduced to just EndMarker — the derivation
	// is complete — but the input has more tokens left before END.
	Trailing
)

func (c Classification) String() string {
	switch c {
	case Mismatch:
		return "mismatch"
	case NoEntry:
		return "no table entry"
	case Truncated:
		return "truncated input"
	case Trailing:
		return "trailing input"
	default:
		return "unknown"
	}
}

// ParseError reports a recognition failure: the classification, the
// offending token, and a snapshot of the stack (top first) at the moment
// of failure.
type ParseError struct {
	Classification Classification
	Token          token.Token
	Stack          []grammar.Symbol
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %q", e.Classification, e.Token)
	if len(e.Stack) > 0 {
		fmt.Fprintf(&b, " (stack top: %s)", e.Stack[0])
	}
	return b.String()
}

// Is reports that every ParseError is classified perr.ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == perr.ErrParse
}

// Run recognizes the tokens produced by stream against tbl, the LL(1)
// table built for g. It returns nil on acceptance, or a *ParseError on
// rejection.
func Run(tbl table.Table, g grammar.Grammar, stream *token.Stream) error {
	var stack token.Stack[grammar.Symbol]
	stack.Push(g.EndMarker())
	stack.Push(g.Start())

	for stack.Len() > 0 {
		tok, ok := stream.Peek()
		if !ok {
			return fail(Truncated, token.Token{Type: token.END}, stack)
		}

		top := stack.Peek()
		la := lookahead(g, tok)

		switch top.Kind() {
		case grammar.Terminal:
			if top.Equal(la) {
				stack.Pop()
				stream.Next()
				continue
			}
			if la.Kind() == grammar.EndMarker {
				return fail(Truncated, tok, stack)
			}
			return fail(Mismatch, tok, stack)

		case grammar.Epsilon:
			stack.Pop()
			continue

		case grammar.NonTerminal:
			cell := tbl.Get(top, la)
			if len(cell) == 0 {
				if la.Kind() == grammar.EndMarker {
					return fail(Truncated, tok, stack)
				}
				return fail(NoEntry, tok, stack)
			}
			stack.Pop()
			alt := cell[0]
			for i := len(alt) - 1; i >= 0; i-- {
				if alt[i].Kind() == grammar.Epsilon {
					// Epsilon is the sole symbol of its alternate; pushing
					// it would just be popped again next iteration, so
					// skip it.
					continue
				}
				stack.Push(alt[i])
			}
			continue

		case grammar.EndMarker:
			if tok.Type == token.END {
				stack.Pop()
				stream.Next()
				continue
			}
			return fail(Trailing, tok, stack)
		}
	}

	return nil
}

// lookahead converts tok into the Terminal (or EndMarker) symbol used for
// table lookups and matching: EndMarker if tok is the END token, else a
// Terminal whose name is tok's lexeme/value.
func lookahead(g grammar.Grammar, tok token.Token) grammar.Symbol {
	if tok.Type == token.END {
		return g.EndMarker()
	}
	if t, ok := g.Term(tok.Value); ok {
		return t
	}
	return grammar.NewTerminalValue(tok.Value, tok.Value)
}

func fail(c Classification, tok token.Token, stack token.Stack[grammar.Symbol]) *ParseError {
	return &ParseError{
		Classification: c,
		Token:          tok,
		Stack:          stack.Slice(),
	}
}
