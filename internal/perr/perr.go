// Package perr holds the error taxonomy shared across the grammar analysis
// and recognizer packages. It contains the Error type, which can be created
// with one or more 'cause' errors, and a set of sentinel errors, one per
// error kind. Calling errors.Is on an Error with a sentinel as the target
// returns true if the sentinel is among its causes.
package perr

import "errors"

var (
	// ErrGrammar classifies a malformed grammar: a missing rule for a
	// referenced NonTerminal, an undeclared Start, or a zero-length
	// Alternate lacking an explicit Epsilon.
	ErrGrammar = errors.New("grammar is ill-formed")

	// ErrConflict classifies an LL(1) parsing-table cell holding more than
	// one Alternate.
	ErrConflict = errors.New("LL(1) conflict in parsing table")

	// ErrTokenization classifies a malformed lexeme surfaced by the
	// upstream lexer, such as an unbalanced quote.
	ErrTokenization = errors.New("tokenization failed")

	// ErrParse classifies a recognizer failure: no table entry for
	// (top, lookahead), a terminal mismatch, truncated input, or trailing
	// input.
	ErrParse = errors.New("parse failed")

	// ErrProgramming classifies a caller passing an unsupported key or
	// value shape to the FIRST/FOLLOW store; this should never happen for
	// a correctly driven solver and indicates a bug in the caller.
	ErrProgramming = errors.New("programming error")
)

// Error is a typed error returned by functions in this module. It carries a
// message plus zero or more causes. Error is compatible with errors.Is:
// calling errors.Is on an Error with any of its causes (including the
// sentinels above) as the target returns true.
//
// If Error has at least one cause, Error() returns its message followed by
// the first cause's message. Error should not be constructed directly; use
// New or Wrap.
type Error struct {
	msg   string
	cause []error
}

// New creates a new Error with the given message and the given causes. At
// least one cause is typically one of the sentinel Err* values above, so
// that callers can classify the error with errors.Is without string
// matching.
func New(msg string, causes ...error) Error {
	e := Error{msg: msg}
	if len(causes) > 0 {
		e.cause = make([]error, len(causes))
		copy(e.cause, causes)
	}
	return e
}

// Grammar wraps err as an ErrGrammar-classified Error with msg.
func Grammar(msg string, wrapped ...error) Error {
	return New(msg, append([]error{ErrGrammar}, wrapped...)...)
}

// Conflict wraps err as an ErrConflict-classified Error with msg.
func Conflict(msg string, wrapped ...error) Error {
	return New(msg, append([]error{ErrConflict}, wrapped...)...)
}

// Tokenization wraps err as an ErrTokenization-classified Error with msg.
func Tokenization(msg string, wrapped ...error) Error {
	return New(msg, append([]error{ErrTokenization}, wrapped...)...)
}

// Parse wraps err as an ErrParse-classified Error with msg.
func Parse(msg string, wrapped ...error) Error {
	return New(msg, append([]error{ErrParse}, wrapped...)...)
}

// Programming wraps err as an ErrProgramming-classified Error with msg.
func Programming(msg string, wrapped ...error) Error {
	return New(msg, append([]error{ErrProgramming}, wrapped...)...)
}

// Error returns e's message, concatenated with its first cause's message if
// it has one.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}
	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap returns e's causes, for use with errors.Is/errors.As. Returns nil
// if e has no causes.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}
