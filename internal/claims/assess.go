package claims

import (
	"strings"

	"github.com/prooflab/artcheck/internal/model"
	"github.com/prooflab/artcheck/internal/normalize"
)

// Assessor classifies claim statements against a risk lexicon.
type Assessor struct {
	lexicon Lexicon
	regions []string
}

// NewAssessor builds an Assessor over the given lexicon. regions is the
// set of regulated regions a High or Medium finding applies to.
func NewAssessor(lexicon Lexicon, regions []string) *Assessor {
	if len(regions) == 0 {
		regions = []string{"USA", "EU", "UK"}
	}
	return &Assessor{lexicon: lexicon, regions: regions}
}

// Assess classifies a single claim statement. One high-risk hit makes
// the whole claim High regardless of other content. Every lexicon hit is
// recorded verbatim, across both tiers, so the audit trail survives the
// tier decision.
func (a *Assessor) Assess(claimText string, language model.Language) model.ClaimRiskResult {
	lowered := normalize.ForComparison(claimText)

	var highHits, mediumHits []string
	for _, term := range a.lexicon.HighRisk {
		if strings.Contains(lowered, strings.ToLower(term)) {
			highHits = append(highHits, term)
		}
	}
	for _, term := range a.lexicon.MediumRisk {
		if strings.Contains(lowered, strings.ToLower(term)) {
			mediumHits = append(mediumHits, term)
		}
	}

	r := model.ClaimRiskResult{
		Language:     language,
		ClaimText:    claimText,
		MatchedTerms: append(highHits, mediumHits...),
	}

	switch {
	case len(highHits) > 0:
		r.RiskLevel = model.RiskHigh
		r.Regions = a.regions
		r.RecommendedAction = model.ActionEscalate
	case len(mediumHits) > 0:
		r.RiskLevel = model.RiskMedium
		r.Regions = a.regions
		r.RecommendedAction = model.ActionLegalReview
	default:
		r.RiskLevel = model.RiskLow
		r.RecommendedAction = model.ActionNone
	}
	return r
}

// AssessFields runs the classifier over every claim-bearing field in the
// set. A field qualifies when its name contains "claim"; multi-line
// values are split into one statement per line.
func (a *Assessor) AssessFields(fields []model.Field) []model.ClaimRiskResult {
	var results []model.ClaimRiskResult
	for _, f := range fields {
		if !strings.Contains(strings.ToLower(f.Name), "claim") {
			continue
		}
		for _, line := range strings.Split(f.Value, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			results = append(results, a.Assess(line, f.Language))
		}
	}
	return results
}
