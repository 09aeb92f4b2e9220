// Package surface is the external collaborator the core spec treats as out
// of scope: concrete grammar loaders that build a grammar.Grammar from a
// textual or TOML representation. Only the abstract product — a
// grammar.Grammar — is contracted by the core; this package is the
// concrete producer used by the tests, the CLI, and the HTTP API's upload
// endpoint.
package surface

import (
	"fmt"
	"strings"

	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/perr"
)

// Options configures a Load call.
type Options struct {
	// EpsilonName overrides the glyph recognized as an explicit Epsilon
	// production; defaults to "ε".
	EpsilonName string

	// EndMarkerName overrides the glyph used for the EndMarker sentinel in
	// rendered output; the textual surface never reads an explicit
	// end-marker symbol from input. Defaults to "$".
	EndMarkerName string
}

func (o Options) withDefaults() Options {
	if o.EpsilonName == "" {
		o.EpsilonName = "ε"
	}
	if o.EndMarkerName == "" {
		o.EndMarkerName = "$"
	}
	return o
}

// Load parses the one-rule-per-line textual grammar notation:
//
//	NT : sym sym ... | sym ... ;
//
// one rule per line, alternates separated by "|", symbols separated by
// whitespace. The first nonterminal named on the left of a rule is taken
// as the grammar's Start symbol. A symbol is a NonTerminal if some line
// defines a rule for it (regardless of where in the file that definition
// appears); every other symbol is a Terminal. The EpsilonName glyph
// (default "ε") denotes the empty production and must appear alone in its
// alternate.
func Load(text string, opts Options) (grammar.Grammar, error) {
	opts = opts.withDefaults()

	lines := splitLines(text)

	type rawRule struct {
		head  string
		alts  [][]string
		order int
	}
	var order []string
	rules := make(map[string]*rawRule)

	for ln, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return grammar.Grammar{}, perr.Grammar(fmt.Sprintf("line %d: not a rule of the form 'NT : sym sym ...': %q", ln+1, line))
		}
		head := strings.TrimSpace(parts[0])
		if head == "" {
			return grammar.Grammar{}, perr.Grammar(fmt.Sprintf("line %d: empty nonterminal name", ln+1))
		}

		rr, ok := rules[head]
		if !ok {
			rr = &rawRule{head: head}
			rules[head] = rr
			order = append(order, head)
		}

		for _, altStr := range strings.Split(parts[1], "|") {
			altStr = strings.TrimSpace(altStr)
			var syms []string
			if altStr != "" {
				syms = strings.Fields(altStr)
			}
			rr.alts = append(rr.alts, syms)
		}
	}

	if len(order) == 0 {
		return grammar.Grammar{}, perr.Grammar("no rules found in grammar text")
	}

	nonTerminals := make(map[string]bool, len(order))
	for _, name := range order {
		nonTerminals[name] = true
	}

	b := grammar.NewBuilder(order[0]).EpsilonName(opts.EpsilonName).EndMarkerName(opts.EndMarkerName)

	for _, name := range order {
		rr := rules[name]
		for _, symNames := range rr.alts {
			var alt grammar.Alternate
			for _, sn := range symNames {
				switch {
				case sn == opts.EpsilonName:
					alt = append(alt, grammar.NewEpsilon(opts.EpsilonName))
				case nonTerminals[sn]:
					alt = append(alt, grammar.NewNonTerminal(sn))
				default:
					alt = append(alt, b.Terminal(sn))
				}
			}
			b.Rule(name, alt)
		}
	}

	return b.Build()
}

func splitLines(text string) []string {
	// Rules may be terminated either by a newline or by ";", matching the
	// two conventions seen across the grammar fixtures used in tests.
	text = strings.ReplaceAll(text, ";", "\n")
	return strings.Split(text, "\n")
}
