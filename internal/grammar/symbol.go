// Package grammar holds the symbol algebra and grammar containers that the
// rest of the analysis pipeline is built on: terminals, nonterminals, the
// two per-grammar sentinels (Epsilon and EndMarker), alternates, rules, and
// the Grammar itself.
//
// A Grammar is built once via a Builder and is read-only from then on; no
// exported method mutates an already-built Grammar.
package grammar

import "strings"

// Kind distinguishes the variants of the symbol tagged union.
type Kind int

const (
	// Terminal is a symbol that appears only on the right-hand side of
	// rules and corresponds to a token from the input.
	Terminal Kind = iota

	// NonTerminal is a symbol appearing on the left of at least one rule.
	// The grammar's Start symbol is an ordinary NonTerminal with its
	// IsStart flag set; the flag does not affect equality.
	NonTerminal

	// Epsilon represents the empty string. A grammar has exactly one
	// Epsilon sentinel; all Epsilon symbols compare equal regardless of
	// display name.
	Epsilon

	// EndMarker represents end-of-input. A grammar has exactly one
	// EndMarker sentinel; all EndMarker symbols compare equal regardless
	// of display name.
	EndMarker
)

func (k Kind) String() string {
	switch k {
	case Terminal:
		return "Terminal"
	case NonTerminal:
		return "NonTerminal"
	case Epsilon:
		return "Epsilon"
	case EndMarker:
		return "EndMarker"
	default:
		return "Kind(?)"
	}
}

// Symbol is a single member of the tagged union described in the data
// model: a Terminal, a NonTerminal (optionally flagged as Start), Epsilon,
// or EndMarker.
//
// Symbol is not itself directly comparable with == for grammar-equality
// purposes when a Terminal carries an attached Value of non-comparable
// type; use Equal or Key instead. Two Terminals with the same name and
// different Values are equal.
type Symbol struct {
	kind    Kind
	name    string
	start   bool
	isToken bool
	value   interface{}
}

// NewTerminal builds a Terminal symbol with the given name. The name is
// what equality and table lookups are keyed on.
func NewTerminal(name string) Symbol {
	return Symbol{kind: Terminal, name: name}
}

// NewTerminalValue builds a Terminal symbol with the given name and an
// attached value carried from the input. The value is opaque to the
// recognizer: two Terminals with the same name and different values are
// equal, and the value plays no part in hashing or matching.
func NewTerminalValue(name string, value interface{}) Symbol {
	return Symbol{kind: Terminal, name: name, value: value, isToken: true}
}

// NewNonTerminal builds an ordinary (non-start) NonTerminal symbol.
func NewNonTerminal(name string) Symbol {
	return Symbol{kind: NonTerminal, name: name}
}

// NewStart builds a NonTerminal symbol flagged as the grammar's
// distinguished start symbol. It is, for equality purposes, indistinguishable
// from a NonTerminal of the same name; IsStart reports the flag separately.
func NewStart(name string) Symbol {
	return Symbol{kind: NonTerminal, name: name, start: true}
}

// NewEpsilon builds the Epsilon sentinel using name for display only; all
// Epsilon symbols compare equal to one another regardless of name.
func NewEpsilon(name string) Symbol {
	return Symbol{kind: Epsilon, name: name}
}

// NewEndMarker builds the EndMarker sentinel using name for display only;
// all EndMarker symbols compare equal to one another regardless of name.
func NewEndMarker(name string) Symbol {
	return Symbol{kind: EndMarker, name: name}
}

// Kind reports which variant of the tagged union s is.
func (s Symbol) Kind() Kind { return s.kind }

// Name is the display/matching name of s. For Epsilon and EndMarker it is
// informational only and does not participate in equality.
func (s Symbol) Name() string { return s.name }

// IsStart reports whether s is the grammar's distinguished start symbol.
// Only meaningful when Kind() == NonTerminal.
func (s Symbol) IsStart() bool { return s.kind == NonTerminal && s.start }

// Value is the attached value of a Terminal carried from the input, if any.
// It has no bearing on equality or hashing.
func (s Symbol) Value() interface{} { return s.value }

// Equal reports whether s and o denote the same grammar symbol: Terminal
// and NonTerminal compare by Kind and Name (ignoring Value and the start
// flag); Epsilon and EndMarker compare true against any other symbol of the
// same Kind, regardless of Name.
func (s Symbol) Equal(o Symbol) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case Epsilon, EndMarker:
		return true
	default:
		return s.name == o.name
	}
}

// Key is the comparable, hashable projection of a Symbol used as a map key
// by the FIRST/FOLLOW store and the parsing table. Two symbols with the
// same Key are Equal, and vice versa.
type Key struct {
	kind Kind
	name string
}

// Key returns the comparable projection of s, suitable for use as a map key.
func (s Symbol) Key() Key {
	switch s.kind {
	case Epsilon, EndMarker:
		return Key{kind: s.kind}
	default:
		return Key{kind: s.kind, name: s.name}
	}
}

func (k Key) String() string {
	switch k.kind {
	case Epsilon:
		return "ε"
	case EndMarker:
		return "$"
	default:
		return k.name
	}
}

// Kind reports the Kind of the symbol this Key was derived from.
func (k Key) Kind() Kind { return k.kind }

// String gives a diagnostic rendering of the symbol: its display name, with
// a "*" suffix for the flagged Start symbol.
func (s Symbol) String() string {
	var b strings.Builder
	b.WriteString(s.name)
	if s.kind == NonTerminal && s.start {
		b.WriteByte('*')
	}
	return b.String()
}
