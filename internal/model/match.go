package model

// MatchType classifies the outcome of a copy-vs-artwork field comparison.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchNear     MatchType = "near"
	MatchMismatch MatchType = "mismatch"
	MatchMissing  MatchType = "missing"
)

// MatchTypeFor derives the match type from artwork presence and fuzzy
// score. This is the only place allowed to assign a MatchType: missing
// iff the artwork value is absent, exact iff score == 100, near iff
// nearThreshold <= score < 100, mismatch otherwise. Boundaries are
// inclusive on the upper side, so a score of exactly nearThreshold is
// near and exactly 100 is exact.
func MatchTypeFor(artworkPresent bool, score, nearThreshold float64) MatchType {
	switch {
	case !artworkPresent:
		return MatchMissing
	case score >= 100:
		return MatchExact
	case score >= nearThreshold:
		return MatchNear
	default:
		return MatchMismatch
	}
}

// MatchResult records the comparison of one copy field against the
// artwork. Created by the matcher; mutated at most once, by visual
// reconciliation, which is terminal.
type MatchResult struct {
	FieldName    string    `json:"field_name"`
	Language     Language  `json:"language"`
	Panel        Panel     `json:"panel"`
	CopyValue    string    `json:"copy_value"`
	ArtworkValue *string   `json:"artwork_value,omitempty"` // nil = missing in artwork
	MatchType    MatchType `json:"match_type"`
	FuzzyScore   float64   `json:"fuzzy_score"` // 0..100
	Notes        []string  `json:"notes,omitempty"`

	// RequiresVisual marks fields where automated extraction alone is
	// not trusted. It persists after reconciliation as an audit trail.
	RequiresVisual bool     `json:"requires_visual"`
	ZoomReasons    []string `json:"zoom_reasons,omitempty"`

	// VisuallyVerified is set once a reconciled value has superseded
	// the automated extraction. No further automated re-classification
	// may occur afterwards.
	VisuallyVerified bool `json:"visually_verified"`
}

// Key returns the field identity this result refers to.
func (r MatchResult) Key() FieldKey {
	return FieldKey{Name: r.FieldName, Panel: r.Panel, Language: r.Language}
}

// Final reports whether the result can be finalized without visual
// confirmation. Triggered fields stay open until reconciled.
func (r MatchResult) Final() bool {
	return !r.RequiresVisual || r.VisuallyVerified
}
