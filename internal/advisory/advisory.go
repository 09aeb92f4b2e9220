// Package advisory offers grammar-rewriting diagnostics a grammar author
// can run by hand to investigate why a grammar isn't LL(1): left-recursion
// removal and left-factoring. Neither rewrite is ever invoked by the table
// builder or the recognizer; both are explicit, opt-in entry points for a
// CLI subcommand or an admin HTTP endpoint, per the Non-goal that rules out
// automatic left-recursion removal or left-factoring as parser behavior.
//
// Both rewrites assume the input grammar has no epsilon productions other
// than explicit Epsilon alternates and no unit productions (A -> B with
// both NonTerminals); a grammar built by surface.Load or surface.LoadTOML
// from a test fixture ordinarily satisfies this. Callers with a grammar
// that doesn't should left-factor or clean it up first; these rewrites
// don't attempt the fuller epsilon/unit-production elimination passes the
// textbook algorithm assumes as a preprocessing step.
package advisory

import (
	"fmt"

	"github.com/dekarrin/llparse/internal/grammar"
)

// working is a mutable scratch copy of a grammar's rules, used internally
// by the rewrites; converted back to a grammar.Grammar (via Build) once
// the rewrite settles.
type working struct {
	start     string
	epsilon   string
	endMarker string
	order     []string
	rules     map[string][]grammar.Alternate
	terminals map[string]grammar.Symbol
}

func newWorking(g grammar.Grammar) *working {
	w := &working{
		start:     g.Start().Name(),
		epsilon:   g.Epsilon().Name(),
		endMarker: g.EndMarker().Name(),
		rules:     make(map[string][]grammar.Alternate),
		terminals: make(map[string]grammar.Symbol),
	}
	for _, t := range g.Terminals() {
		w.terminals[t.Name()] = t
	}
	for _, name := range g.NonTerminals() {
		rule, _ := g.Rule(name)
		w.order = append(w.order, name)
		w.rules[name] = append([]grammar.Alternate(nil), rule.Alternates...)
	}
	return w
}

func (w *working) term(name string) grammar.Symbol {
	if t, ok := w.terminals[name]; ok {
		return t
	}
	t := grammar.NewTerminal(name)
	w.terminals[name] = t
	return t
}

// uniqueName generates a name derived from original guaranteed not to
// collide with any nonterminal already in w, by appending "'" until it's
// free.
func (w *working) uniqueName(original string) string {
	name := original + "'"
	for {
		if _, ok := w.rules[name]; !ok {
			return name
		}
		name += "'"
	}
}

func (w *working) insertAfter(name, after string) {
	for i, n := range w.order {
		if n == after {
			w.order = append(w.order[:i+1], append([]string{name}, w.order[i+1:]...)...)
			return
		}
	}
	w.order = append(w.order, name)
}

func (w *working) build() (grammar.Grammar, error) {
	b := grammar.NewBuilder(w.start).EpsilonName(w.epsilon).EndMarkerName(w.endMarker)
	nonTerms := make(map[string]bool, len(w.order))
	for _, name := range w.order {
		nonTerms[name] = true
	}
	for _, name := range w.order {
		for _, alt := range w.rules[name] {
			var rewritten grammar.Alternate
			for _, sym := range alt {
				switch sym.Kind() {
				case grammar.NonTerminal:
					if nonTerms[sym.Name()] {
						rewritten = append(rewritten, grammar.NewNonTerminal(sym.Name()))
					} else {
						rewritten = append(rewritten, b.Terminal(sym.Name()))
					}
				case grammar.Epsilon:
					rewritten = append(rewritten, grammar.NewEpsilon(w.epsilon))
				default:
					rewritten = append(rewritten, b.Terminal(sym.Name()))
				}
			}
			b.Rule(name, rewritten)
		}
	}
	return b.Build()
}

func isEpsilonAlt(alt grammar.Alternate) bool {
	return alt.IsEpsilon()
}

func epsilonAlt(name string) grammar.Alternate {
	return grammar.Alternate{grammar.NewEpsilon(name)}
}

// Result carries an advisory rewrite's product alongside a human-readable
// note about what changed, for display next to the original grammar's
// table.
type Result struct {
	Grammar grammar.Grammar
	Note    string
}

func (r Result) String() string {
	return fmt.Sprintf("%s\n%s", r.Note, r.Grammar.Start())
}
