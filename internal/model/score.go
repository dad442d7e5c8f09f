package model

// Area names used by the score aggregator.
const (
	AreaArtworkMatch = "artwork_match"
	AreaCopyQuality  = "copy_quality"
	AreaClaims       = "claims"
	AreaConversion   = "conversion"
	AreaFontSize     = "font_size"
	AreaBarcode      = "barcode"
)

// AreaScore summarizes one verification area. Matches counts
// exact-equivalent passes only; near/mismatch/missing/fail all count
// against the area.
type AreaScore struct {
	Checks  int     `json:"checks"`
	Matches int     `json:"matches"`
	Percent float64 `json:"percent"` // rounded to one decimal
}

// Fix is one ranked entry in the fix list.
type Fix struct {
	Priority int      `json:"priority"` // 1 = fail, 2 = attention
	Field    string   `json:"field"`
	Panel    Panel    `json:"panel"`
	Language Language `json:"language"`
	Issue    string   `json:"issue"`
	Action   string   `json:"action"`
}

// Score is the fully derived aggregation of all section results. It is
// recomputed from scratch on every run, never updated incrementally.
type Score struct {
	PerArea        map[string]AreaScore `json:"per_area"`
	OverallPercent float64              `json:"overall_percent"`

	// TopFixes is the display-truncated head of AllFixes; the full
	// ranked list always remains available.
	TopFixes []Fix `json:"top_fixes"`
	AllFixes []Fix `json:"all_fixes"`

	// AttentionList holds near-match entries not already in TopFixes.
	AttentionList []Fix `json:"attention_list,omitempty"`
}
