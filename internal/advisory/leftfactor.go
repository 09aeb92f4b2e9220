package advisory

import "github.com/dekarrin/llparse/internal/grammar"

// LeftFactor returns a new grammar equivalent to g but with every
// nonterminal's alternates left-factored: wherever two or more of a
// nonterminal A's alternates share a common prefix alpha, they are
// replaced by A -> alpha A' and A' -> (the suffixes), following Algorithm
// 4.21 from the Dragon Book.
//
// Like RemoveLeftRecursion, LeftFactor never runs automatically; it exists
// purely as an advisory rewrite a grammar author can invoke by hand.
func LeftFactor(g grammar.Grammar) (Result, error) {
	w := newWorking(g)

	changed := true
	for changed {
		changed = false
		order := append([]string(nil), w.order...)

		for _, A := range order {
			alts := w.rules[A]

			var prefix grammar.Alternate
			for j := range alts {
				for k := j + 1; k < len(alts); k++ {
					lcp := longestCommonPrefix(alts[j], alts[k])
					if len(lcp) > len(prefix) {
						prefix = lcp
					}
				}
			}

			if len(prefix) == 0 || isEpsilonAlt(prefix) {
				continue
			}
			changed = true

			var gamma, betas []grammar.Alternate
			for _, alt := range alts {
				if hasPrefix(alt, prefix) {
					beta := alt[len(prefix):]
					if len(beta) == 0 {
						beta = epsilonAlt(w.epsilon)
					}
					betas = append(betas, beta)
				} else {
					gamma = append(gamma, alt)
				}
			}

			APrime := w.uniqueName(A)
			aPrimeSym := grammar.NewNonTerminal(APrime)

			newA := append(grammar.Alternate(nil), prefix...)
			newA = append(newA, aPrimeSym)

			w.rules[A] = append([]grammar.Alternate{newA}, gamma...)
			w.rules[APrime] = betas
			w.insertAfter(APrime, A)
		}
	}

	built, err := w.build()
	if err != nil {
		return Result{}, err
	}
	return Result{Grammar: built, Note: "left factored per Dragon Book Algorithm 4.21"}, nil
}

func longestCommonPrefix(a, b grammar.Alternate) grammar.Alternate {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var out grammar.Alternate
	for i := 0; i < n; i++ {
		if !a[i].Equal(b[i]) {
			break
		}
		out = append(out, a[i])
	}
	return out
}

func hasPrefix(alt, prefix grammar.Alternate) bool {
	if len(prefix) > len(alt) {
		return false
	}
	for i := range prefix {
		if !alt[i].Equal(prefix[i]) {
			return false
		}
	}
	return true
}
