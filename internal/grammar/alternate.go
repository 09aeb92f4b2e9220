package grammar

import "strings"

// Alternate is one right-hand side of a Rule: an ordered sequence of
// symbols. A length-zero Alternate is permitted but discouraged; callers
// should instead use an Alternate holding only the grammar's Epsilon
// sentinel to denote the empty production.
type Alternate []Symbol

// IsEpsilon reports whether alt is the single-symbol Epsilon production.
func (alt Alternate) IsEpsilon() bool {
	return len(alt) == 1 && alt[0].Kind() == Epsilon
}

// Equal reports whether alt and o have the same symbols in the same order.
func (alt Alternate) Equal(o Alternate) bool {
	if len(alt) != len(o) {
		return false
	}
	for i := range alt {
		if !alt[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// String concatenates the names of alt's member symbols. Used only for
// diagnostics; it is not a parseable representation.
func (alt Alternate) String() string {
	var b strings.Builder
	for _, s := range alt {
		b.WriteString(s.String())
	}
	if b.Len() == 0 {
		return "<empty>"
	}
	return b.String()
}

// Rule binds a NonTerminal to its list of Alternates.
type Rule struct {
	// Head is the NonTerminal (or Start) this rule defines.
	Head Symbol

	// Alternates are the right-hand sides of the rule, in declaration
	// order. Declaration order matters: the table builder and the
	// recognizer both treat the first alternate placed in a table cell as
	// the one the recognizer uses, so alternates keep their original
	// order through analysis.
	Alternates []Alternate
}

// String renders r the way the textual surface grammar would, e.g.
// "S -> ( S + F ) | a".
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Head.Name())
	b.WriteString(" -> ")
	for i, alt := range r.Alternates {
		if i > 0 {
			b.WriteString(" | ")
		}
		for j, sym := range alt {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(sym.String())
		}
	}
	return b.String()
}
