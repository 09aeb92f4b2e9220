package surface

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/perr"
)

// tomlDoc is the on-disk shape of the TOML grammar format: a grammar
// checked into config management rather than typed as loose text.
//
//	start = "S"
//	epsilon = "eps"
//	endmarker = "$"
//
//	[[rule]]
//	head = "S"
//	alternates = [["(", "S", "+", "F", ")"], ["F"]]
type tomlDoc struct {
	Start     string     `toml:"start"`
	Epsilon   string     `toml:"epsilon"`
	EndMarker string     `toml:"endmarker"`
	Rules     []tomlRule `toml:"rule"`
	Terminals []string   `toml:"terminals"`
}

type tomlRule struct {
	Head       string     `toml:"head"`
	Alternates [][]string `toml:"alternates"`
}

// LoadTOML parses the TOML grammar format, an alternative to Load's
// line-oriented text that's friendlier to config management: an explicit
// [[rule]] table per NonTerminal instead of one line per rule.
func LoadTOML(data []byte) (grammar.Grammar, error) {
	var doc tomlDoc
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return grammar.Grammar{}, perr.Grammar(fmt.Sprintf("malformed TOML grammar: %s", err), err)
	}
	if doc.Start == "" {
		return grammar.Grammar{}, perr.Grammar("TOML grammar missing required \"start\" key")
	}

	epsilonName := doc.Epsilon
	if epsilonName == "" {
		epsilonName = "ε"
	}
	endName := doc.EndMarker
	if endName == "" {
		endName = "$"
	}

	nonTerminals := make(map[string]bool, len(doc.Rules))
	for _, r := range doc.Rules {
		nonTerminals[r.Head] = true
	}

	b := grammar.NewBuilder(doc.Start).EpsilonName(epsilonName).EndMarkerName(endName)
	for _, name := range doc.Terminals {
		b.Terminal(name)
	}

	for _, r := range doc.Rules {
		for _, symNames := range r.Alternates {
			var alt grammar.Alternate
			for _, sn := range symNames {
				switch {
				case sn == epsilonName:
					alt = append(alt, grammar.NewEpsilon(epsilonName))
				case nonTerminals[sn]:
					alt = append(alt, grammar.NewNonTerminal(sn))
				default:
					alt = append(alt, b.Terminal(sn))
				}
			}
			b.Rule(r.Head, alt)
		}
	}

	return b.Build()
}
