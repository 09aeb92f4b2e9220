// Package table builds the LL(1) predictive parsing table T[A, a] from a
// grammar's FIRST/FOLLOW sets, and reports any LL(1) conflicts found along
// the way instead of rejecting the grammar.
package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/llparse/internal/analysis"
	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/perr"
)

type cellKey struct {
	nt   grammar.Key
	term grammar.Key
}

// Table is the predictive parsing table. A cell T[A, a] holds zero or more
// Alternates; more than one means the grammar is not LL(1) at that cell.
// The recognizer always uses the first Alternate placed in a cell.
type Table struct {
	cells map[cellKey][]grammar.Alternate
	nts   []grammar.Symbol
	cols  []grammar.Symbol
}

// Get returns the Alternates recorded for (nt, term), in the order they
// were added during Build. Returns nil if the cell is empty.
func (t Table) Get(nt, term grammar.Symbol) []grammar.Alternate {
	return t.cells[cellKey{nt: nt.Key(), term: term.Key()}]
}

// NonTerminals returns the row domain of the table, in grammar declaration
// order.
func (t Table) NonTerminals() []grammar.Symbol { return t.nts }

// Columns returns the column domain of the table — the grammar's terminals
// plus EndMarker — in grammar declaration order, EndMarker last.
func (t Table) Columns() []grammar.Symbol { return t.cols }

func (t *Table) add(nt, term grammar.Symbol, alt grammar.Alternate) {
	k := cellKey{nt: nt.Key(), term: term.Key()}
	for _, existing := range t.cells[k] {
		if existing.Equal(alt) {
			return
		}
	}
	t.cells[k] = append(t.cells[k], alt)
}

// Conflict describes a single LL(1) conflict: a cell holding more than one
// Alternate.
type Conflict struct {
	NonTerminal grammar.Symbol
	Terminal    grammar.Symbol
	Alternates  []grammar.Alternate
}

func (c Conflict) Error() string {
	alts := make([]string, len(c.Alternates))
	for i, a := range c.Alternates {
		alts[i] = a.String()
	}
	return fmt.Sprintf("conflict at (%s, %s): %s", c.NonTerminal, c.Terminal, strings.Join(alts, " / "))
}

// Is reports that every Conflict is classified as perr.ErrConflict, so
// callers can test `errors.Is(err, perr.ErrConflict)` against one.
func (c Conflict) Is(target error) bool {
	return target == perr.ErrConflict
}

// Build constructs the LL(1) parsing table for g. It never fails on a
// non-LL(1) grammar; instead it returns every Conflict found so the caller
// can decide what to do (reject, log, offer the advisory rewrites). err is
// non-nil only if the FIRST/FOLLOW solve itself failed, which happens only
// for a programming error (an ill-shaped FIRST/FOLLOW key), since g is
// assumed already grammar.Builder-validated.
func Build(g grammar.Grammar) (Table, []Conflict, error) {
	sets, err := analysis.Solve(g)
	if err != nil {
		return Table{}, nil, err
	}

	t := Table{cells: make(map[cellKey][]grammar.Alternate)}
	for _, name := range g.NonTerminals() {
		rule, _ := g.Rule(name)
		t.nts = append(t.nts, rule.Head)
	}
	t.cols = append(t.cols, g.Terminals()...)
	t.cols = append(t.cols, g.EndMarker())

	for _, name := range g.NonTerminals() {
		rule, _ := g.Rule(name)
		A := rule.Head
		for _, alt := range rule.Alternates {
			firstAlpha := sets.First.Get(analysis.Seq(alt))

			// 1. for each terminal a in FIRST(alpha), add alpha to T[A, a].
			for _, a := range firstAlpha {
				if a.Kind() == grammar.Terminal {
					t.add(A, a, alt)
				}
			}

			// 2. if Epsilon in FIRST(alpha), for each terminal b in
			// FOLLOW(A) (which may include EndMarker), add alpha to T[A, b].
			if hasEpsilonSym(firstAlpha) {
				for _, b := range sets.Follow.Get(analysis.Seq{A}) {
					t.add(A, b, alt)
				}
			}
		}
	}

	return t, t.conflicts(), nil
}

func (t Table) conflicts() []Conflict {
	var out []Conflict
	for _, nt := range t.nts {
		for _, term := range t.cols {
			cell := t.Get(nt, term)
			if len(cell) > 1 {
				out = append(out, Conflict{NonTerminal: nt, Terminal: term, Alternates: cell})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NonTerminal.Name() != out[j].NonTerminal.Name() {
			return out[i].NonTerminal.Name() < out[j].NonTerminal.Name()
		}
		return out[i].Terminal.String() < out[j].Terminal.String()
	})
	return out
}

// IsLL1 reports whether conflicts is empty, i.e. Build found no cell with
// more than one Alternate.
func IsLL1(conflicts []Conflict) bool {
	return len(conflicts) == 0
}

func hasEpsilonSym(syms []grammar.Symbol) bool {
	for _, s := range syms {
		if s.Kind() == grammar.Epsilon {
			return true
		}
	}
	return false
}
