package grammar

import (
	"fmt"
	"sort"

	"github.com/dekarrin/llparse/internal/perr"
)

// Grammar bundles a Start symbol, the set of Terminals, the set of
// NonTerminals (implied by rule keys), a mapping from NonTerminal name to
// its Rule, and the grammar's Epsilon and EndMarker sentinels.
//
// A Grammar is constructed once via a Builder and is read-only thereafter;
// no method here mutates it.
type Grammar struct {
	start     Symbol
	epsilon   Symbol
	endMarker Symbol

	terms    map[string]Symbol
	termOrd  []string
	rules    map[string]Rule
	ruleOrd  []string
	warnings []error
}

// Start returns the grammar's distinguished start symbol.
func (g Grammar) Start() Symbol { return g.start }

// Epsilon returns the grammar's Epsilon sentinel.
func (g Grammar) Epsilon() Symbol { return g.epsilon }

// EndMarker returns the grammar's EndMarker sentinel.
func (g Grammar) EndMarker() Symbol { return g.endMarker }

// Term looks up a Terminal by name, reporting false if no such terminal was
// declared.
func (g Grammar) Term(name string) (Symbol, bool) {
	t, ok := g.terms[name]
	return t, ok
}

// Terminals returns the grammar's terminals in declaration order.
func (g Grammar) Terminals() []Symbol {
	out := make([]Symbol, len(g.termOrd))
	for i, name := range g.termOrd {
		out[i] = g.terms[name]
	}
	return out
}

// Rule looks up the Rule defining nonterminal name, reporting false if no
// such rule exists.
func (g Grammar) Rule(name string) (Rule, bool) {
	r, ok := g.rules[name]
	return r, ok
}

// NonTerminals returns the grammar's nonterminal names in declaration
// order, Start first.
func (g Grammar) NonTerminals() []string {
	out := make([]string, len(g.ruleOrd))
	copy(out, g.ruleOrd)
	return out
}

// Warnings returns non-fatal diagnostics noted while the grammar was built,
// such as a zero-length Alternate accepted without an explicit Epsilon.
func (g Grammar) Warnings() []error {
	return g.warnings
}

// Builder accumulates terminals and rules and produces a validated
// Grammar. Use NewBuilder to create one.
type Builder struct {
	startName   string
	epsilonName string
	endName     string

	terms   map[string]Symbol
	termOrd []string
	rules   map[string]Rule
	ruleOrd []string
}

// NewBuilder begins a Builder whose Start symbol will be named startName.
// The Epsilon and EndMarker sentinel glyphs default to "ε" and "$" but may
// be overridden with EpsilonName/EndMarkerName before Build is called.
func NewBuilder(startName string) *Builder {
	return &Builder{
		startName:   startName,
		epsilonName: "ε",
		endName:     "$",
		terms:       make(map[string]Symbol),
		rules:       make(map[string]Rule),
	}
}

// EpsilonName overrides the display glyph used for the Epsilon sentinel.
func (b *Builder) EpsilonName(name string) *Builder {
	b.epsilonName = name
	return b
}

// EndMarkerName overrides the display glyph used for the EndMarker
// sentinel.
func (b *Builder) EndMarkerName(name string) *Builder {
	b.endName = name
	return b
}

// Terminal declares a terminal by name, if not already declared, and
// returns its Symbol. Declaring the same name twice is harmless; the first
// declaration wins.
func (b *Builder) Terminal(name string) Symbol {
	if t, ok := b.terms[name]; ok {
		return t
	}
	t := NewTerminal(name)
	b.terms[name] = t
	b.termOrd = append(b.termOrd, name)
	return t
}

// Rule adds one Alternate to the rule for nonterminal name, creating the
// rule if this is its first Alternate. Alternates accumulate in the order
// Rule is called.
func (b *Builder) Rule(name string, alt Alternate) *Builder {
	r, ok := b.rules[name]
	if !ok {
		head := NewNonTerminal(name)
		if name == b.startName {
			head = NewStart(name)
		}
		r = Rule{Head: head}
		b.ruleOrd = append(b.ruleOrd, name)
	}
	r.Alternates = append(r.Alternates, alt)
	b.rules[name] = r
	return b
}

// Build validates the accumulated terminals and rules against the
// invariants in the data model and, if they hold, returns the resulting
// Grammar. Validation failures (an undeclared Start, or an Alternate symbol
// referencing a NonTerminal with no rule) are returned as a single
// perr.Error classified ErrGrammar. A zero-length Alternate lacking an
// explicit Epsilon is accepted but recorded as a Warning, not rejected.
func (b *Builder) Build() (Grammar, error) {
	g := Grammar{
		epsilon:   NewEpsilon(b.epsilonName),
		endMarker: NewEndMarker(b.endName),
		terms:     b.terms,
		termOrd:   b.termOrd,
		rules:     b.rules,
		ruleOrd:   b.ruleOrd,
	}

	startRule, ok := b.rules[b.startName]
	if !ok {
		return Grammar{}, perr.Grammar(fmt.Sprintf("start symbol %q has no rule", b.startName))
	}
	g.start = startRule.Head

	var problems []string
	for _, name := range g.ruleOrd {
		rule := g.rules[name]
		for _, alt := range rule.Alternates {
			if len(alt) == 0 {
				g.warnings = append(g.warnings, fmt.Errorf("rule %q has a zero-length alternate; use an explicit Epsilon instead", name))
				continue
			}
			for _, sym := range alt {
				if sym.Kind() != NonTerminal {
					continue
				}
				if _, ok := g.rules[sym.Name()]; !ok {
					problems = append(problems, fmt.Sprintf("%s -> ...: nonterminal %q has no rule", name, sym.Name()))
				}
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return Grammar{}, perr.Grammar(fmt.Sprintf("%d undefined nonterminal(s): %v", len(problems), problems))
	}

	return g, nil
}
