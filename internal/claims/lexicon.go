// Package claims assesses the regulatory risk of marketing claims
// against a term lexicon and recommends follow-up actions.
package claims

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Lexicon holds the claim terms that trigger risk escalation. Terms are
// matched case-insensitively as substrings of the claim text.
type Lexicon struct {
	HighRisk   []string `yaml:"high_risk"`
	MediumRisk []string `yaml:"medium_risk"`
}

// DefaultLexicon returns the built-in term lists covering common
// substantiation-requiring and efficacy claims in English and French.
func DefaultLexicon() Lexicon {
	return Lexicon{
		HighRisk: []string{
			"clinically proven", "clinically tested", "clinically demonstrated",
			"dermatologist tested", "dermatologist approved", "dermatologist recommended",
			"doctor recommended", "physician recommended",
			"scientifically proven", "scientifically tested",
			"medically proven", "fda approved", "fda cleared",
			"patented", "patent pending",
			"cliniquement prouvé", "testé cliniquement",
			"dermatologiquement testé",
		},
		MediumRisk: []string{
			"reduces", "eliminates", "removes", "prevents",
			"anti-aging", "anti-wrinkle", "anti-acne",
			"repairs", "restores", "regenerates", "renews",
			"strengthens", "fortifies", "rebuilds",
			"treats", "heals", "cures",
			"deeply moisturizes", "intensely hydrates",
			"réduit", "élimine", "prévient",
		},
	}
}

// LoadLexicon reads a lexicon from a YAML file. Missing lists fall back
// to the defaults, so a file may override only one tier.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, eris.Wrapf(err, "claims: reading lexicon %s", path)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, eris.Wrapf(err, "claims: parsing lexicon %s", path)
	}

	defaults := DefaultLexicon()
	if len(lex.HighRisk) == 0 {
		lex.HighRisk = defaults.HighRisk
	}
	if len(lex.MediumRisk) == 0 {
		lex.MediumRisk = defaults.MediumRisk
	}
	return lex, nil
}
