package analysis

import (
	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/perr"
)

// Sets is the pair of converged Stores a solve produces.
type Sets struct {
	First  *Store
	Follow *Store
}

// Solve runs the FIRST/FOLLOW fixed-point procedure over g to convergence
// and returns the two populated Stores. The Stores are safe to read
// concurrently once returned; Solve itself is single-threaded and mutates
// only its own local Stores during the computation.
func Solve(g grammar.Grammar) (Sets, error) {
	first := NewStore()
	follow := NewStore()

	// Initialization, per the fixed-point contract:
	// 1. for each NonTerminal A and each Alternate w of A, create empty
	//    FIRST(A) and empty FIRST(w) buckets.
	for _, name := range g.NonTerminals() {
		rule, _ := g.Rule(name)
		first.AddEmpty(Seq{rule.Head})
		for _, alt := range rule.Alternates {
			first.AddEmpty(Seq(alt))
		}
	}
	// 2. FOLLOW(Start) = { EndMarker }.
	follow.Add(Seq{g.Start()}, g.EndMarker())

	for {
		first.ClearDirty()
		follow.ClearDirty()

		if err := passA(first); err != nil {
			return Sets{}, err
		}
		passB(g, first)
		passC(g, first, follow)

		if !first.Dirty() && !follow.Dirty() {
			break
		}
	}

	return Sets{First: first, Follow: follow}, nil
}

// passA implements step (a): for every key `word` = [X, ...rest] currently
// in FIRST, propagate FIRST(X) (and, through an epsilon-admitting X,
// FIRST(rest)) into FIRST(word).
func passA(first *Store) error {
	for _, word := range first.Keys() {
		if len(word) == 0 {
			continue
		}
		X := word[0]
		rest := Seq(word[1:])

		switch X.Kind() {
		case grammar.Terminal:
			first.Add(word, X)
		case grammar.NonTerminal:
			firstX := first.Get(Seq{X})
			if !hasEpsilon(firstX) {
				first.Add(word, firstX...)
			} else {
				first.Add(word, withoutEpsilon(firstX)...)
				first.Add(word, first.Get(rest)...)
			}
		case grammar.Epsilon:
			if len(word) == 1 {
				first.Add(word, X)
			} else {
				return perr.Programming("Epsilon may only appear as the sole symbol of a FIRST key")
			}
		case grammar.EndMarker:
			return perr.Programming("EndMarker may not appear in a FIRST key")
		}
	}
	return nil
}

// passB implements step (b): for every rule A -> w, add FIRST(w) to
// FIRST(A).
func passB(g grammar.Grammar, first *Store) {
	for _, name := range g.NonTerminals() {
		rule, _ := g.Rule(name)
		for _, alt := range rule.Alternates {
			first.Add(Seq{rule.Head}, first.Get(Seq(alt))...)
		}
	}
}

// passC implements step (c): for every rule A -> X1...Xn and each position
// i where Xi is a NonTerminal, add FIRST of the suffix after Xi to
// FOLLOW(Xi), and add FOLLOW(A) to FOLLOW(Xi) too when that suffix can
// vanish.
func passC(g grammar.Grammar, first, follow *Store) {
	for _, name := range g.NonTerminals() {
		rule, _ := g.Rule(name)
		for _, alt := range rule.Alternates {
			for i, Xi := range alt {
				if Xi.Kind() != grammar.NonTerminal {
					continue
				}
				suffix := Seq(alt[i+1:])
				first.AddEmpty(suffix)

				suffixFirst := first.Get(suffix)
				follow.Add(Seq{Xi}, withoutEpsilon(suffixFirst)...)

				if len(suffix) == 0 || hasEpsilon(suffixFirst) {
					follow.Add(Seq{Xi}, follow.Get(Seq{rule.Head})...)
				}
			}
		}
	}
}

func hasEpsilon(syms []grammar.Symbol) bool {
	for _, s := range syms {
		if s.Kind() == grammar.Epsilon {
			return true
		}
	}
	return false
}

func withoutEpsilon(syms []grammar.Symbol) []grammar.Symbol {
	out := make([]grammar.Symbol, 0, len(syms))
	for _, s := range syms {
		if s.Kind() != grammar.Epsilon {
			out = append(out, s)
		}
	}
	return out
}
