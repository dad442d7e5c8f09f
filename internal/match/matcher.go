// Package match classifies copy-vs-artwork field pairs, decides which
// fields need visual confirmation, and folds visually verified values
// back into prior results.
package match

import (
	"fmt"

	"github.com/agext/levenshtein"

	"github.com/prooflab/artcheck/internal/config"
	"github.com/prooflab/artcheck/internal/model"
	"github.com/prooflab/artcheck/internal/normalize"
)

// Matcher classifies (copy, artwork) value pairs into match categories.
type Matcher struct {
	nearThreshold float64
	zoom          *ZoomDetector
}

// NewMatcher creates a Matcher with the given thresholds and zoom rules.
func NewMatcher(matchCfg config.MatchConfig, zoomCfg config.ZoomConfig) *Matcher {
	nt := matchCfg.NearThreshold
	if nt <= 0 {
		nt = 95.0
	}
	return &Matcher{
		nearThreshold: nt,
		zoom:          NewZoomDetector(zoomCfg),
	}
}

// Score returns the fuzzy similarity of two values in [0,100] after
// canonicalization. The metric is symmetric, deterministic, and exactly
// 100 for canonically identical strings.
func (m *Matcher) Score(a, b string) float64 {
	ca, cb := normalize.ForComparison(a), normalize.ForComparison(b)
	if ca == cb {
		return 100.0
	}
	return levenshtein.Similarity(ca, cb, nil) * 100
}

// Classify compares a copy field against the artwork value (nil when the
// field was not found in the artwork) and produces a MatchResult. The
// zoom trigger rules are evaluated as part of classification, so every
// result carries its escalation flag from the start.
func (m *Matcher) Classify(f model.Field, artworkValue *string) model.MatchResult {
	r := model.MatchResult{
		FieldName:    f.Name,
		Language:     f.Language,
		Panel:        f.Panel,
		CopyValue:    f.Value,
		ArtworkValue: artworkValue,
	}

	if artworkValue == nil {
		r.FuzzyScore = 0
		r.MatchType = model.MatchMissing
		r.Notes = append(r.Notes, "not found - requires visual confirmation")
	} else {
		r.FuzzyScore = m.Score(f.Value, *artworkValue)
		r.MatchType = model.MatchTypeFor(true, r.FuzzyScore, m.nearThreshold)

		switch r.MatchType {
		case model.MatchNear:
			r.Notes = append(r.Notes, fmt.Sprintf("near match (%.1f%%) - verify differences", r.FuzzyScore))
		case model.MatchMismatch:
			r.Notes = append(r.Notes, fmt.Sprintf("mismatch detected (%.1f%%)", r.FuzzyScore))
		}
	}

	r.RequiresVisual, r.ZoomReasons = m.zoom.Evaluate(f, r)
	return r
}

// Reconcile folds an externally verified value into a prior result by
// re-running classification with the verified value as the artwork
// value. The escalation flag persists as an audit trail, and the result
// is marked visually verified, which is terminal. Reconciling twice with
// the same value reproduces the same result.
func (m *Matcher) Reconcile(prev model.MatchResult, verifiedValue string) model.MatchResult {
	v := verifiedValue
	r := m.Classify(model.Field{
		Name:     prev.FieldName,
		Language: prev.Language,
		Panel:    prev.Panel,
		Value:    prev.CopyValue,
		Source:   model.SourceCopyDoc,
	}, &v)

	r.RequiresVisual = prev.RequiresVisual
	r.ZoomReasons = prev.ZoomReasons
	r.VisuallyVerified = true
	r.Notes = append(r.Notes, fmt.Sprintf("visually verified on %s %s", prev.Panel, prev.Language))
	return r
}
