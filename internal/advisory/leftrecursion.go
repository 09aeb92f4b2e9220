package advisory

import "github.com/dekarrin/llparse/internal/grammar"

// RemoveLeftRecursion returns a new grammar equivalent to g but with all
// direct and indirect left recursion eliminated, following Algorithm 4.19
// from the Dragon Book: nonterminals are given an arbitrary order A1..An;
// for each Ai, occurrences of Aj (j < i) at the head of one of Ai's
// alternates are substituted out using Aj's own alternates, then any
// remaining immediate left recursion on Ai is eliminated by introducing a
// new nonterminal Ai'.
//
// RemoveLeftRecursion never runs automatically; it is an explicit,
// opt-in rewrite for a grammar author investigating table conflicts (see
// the package doc's precondition note).
func RemoveLeftRecursion(g grammar.Grammar) (Result, error) {
	w := newWorking(g)

	changed := true
	for changed {
		changed = false
		order := append([]string(nil), w.order...)

		for i := 0; i < len(order); i++ {
			Ai := order[i]
			for j := 0; j < i; j++ {
				Aj := order[j]
				var rewritten []grammar.Alternate
				for _, alt := range w.rules[Ai] {
					if len(alt) > 0 && alt[0].Kind() == grammar.NonTerminal && alt[0].Name() == Aj {
						changed = true
						gamma := alt[1:]
						for _, delta := range w.rules[Aj] {
							var expanded grammar.Alternate
							if isEpsilonAlt(delta) {
								expanded = append(expanded, gamma...)
							} else {
								expanded = append(expanded, delta...)
								expanded = append(expanded, gamma...)
							}
							if len(expanded) == 0 {
								expanded = epsilonAlt(w.epsilon)
							}
							rewritten = append(rewritten, expanded)
						}
					} else {
						rewritten = append(rewritten, alt)
					}
				}
				w.rules[Ai] = rewritten
			}

			// eliminate immediate left recursion on Ai: split its
			// alternates into those starting with Ai (alphas, recursive)
			// and the rest (betas).
			var alphas, betas []grammar.Alternate
			for _, alt := range w.rules[Ai] {
				if len(alt) > 0 && alt[0].Kind() == grammar.NonTerminal && alt[0].Name() == Ai {
					alphas = append(alphas, alt[1:])
				} else {
					betas = append(betas, alt)
				}
			}

			if len(alphas) == 0 {
				continue
			}
			changed = true

			AiPrime := w.uniqueName(Ai)
			aiPrimeSym := grammar.NewNonTerminal(AiPrime)

			var newAi []grammar.Alternate
			for _, beta := range betas {
				alt := append(grammar.Alternate(nil), beta...)
				alt = append(alt, aiPrimeSym)
				newAi = append(newAi, alt)
			}
			if len(newAi) == 0 {
				// no non-recursive alternative survives; Ai can only
				// produce Ai' directly.
				newAi = append(newAi, grammar.Alternate{aiPrimeSym})
			}

			var newAiPrime []grammar.Alternate
			for _, alpha := range alphas {
				alt := append(grammar.Alternate(nil), alpha...)
				alt = append(alt, aiPrimeSym)
				newAiPrime = append(newAiPrime, alt)
			}
			newAiPrime = append(newAiPrime, epsilonAlt(w.epsilon))

			w.rules[Ai] = newAi
			w.rules[AiPrime] = newAiPrime
			w.insertAfter(AiPrime, Ai)
		}
	}

	built, err := w.build()
	if err != nil {
		return Result{}, err
	}
	return Result{Grammar: built, Note: "left recursion eliminated per Dragon Book Algorithm 4.19"}, nil
}
