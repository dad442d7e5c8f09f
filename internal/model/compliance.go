package model

// ConversionCheck verifies that a declared volume conversion is
// mathematically correct within an absolute tolerance.
type ConversionCheck struct {
	SourceLabel     string  `json:"source_label"`
	DeclaredML      float64 `json:"declared_ml"`
	DeclaredValue   float64 `json:"declared_value"`
	CalculatedValue float64 `json:"calculated_value"`
	Unit            string  `json:"unit"`
	Diff            float64 `json:"diff"`
	WithinTolerance bool    `json:"within_tolerance"`
}

// FontSizeResult records one font-size compliance check for one region.
type FontSizeResult struct {
	Location      string  `json:"location"`
	TextSample    string  `json:"text_sample"`
	SizePt        float64 `json:"size_pt"`
	Region        string  `json:"region"`
	RequiredMinPt float64 `json:"required_min_pt"`
	Passes        bool    `json:"passes"`
}

// ScanStatus reports how a barcode decode attempt ended. Failed and
// Unavailable are reportable degraded states, not errors.
type ScanStatus string

const (
	ScanSuccess     ScanStatus = "success"
	ScanFailed      ScanStatus = "failed"
	ScanUnavailable ScanStatus = "unavailable"
)

// BarcodeResult records one barcode decode and check-digit validation.
type BarcodeResult struct {
	Symbology       string     `json:"symbology"`
	DecodedDigits   *string    `json:"decoded_digits,omitempty"`
	CheckDigitValid *bool      `json:"check_digit_valid,omitempty"`
	ScanStatus      ScanStatus `json:"scan_status"`
	Notes           string     `json:"notes,omitempty"`
}

// IssueSeverity grades a copy-quality finding.
type IssueSeverity string

const (
	SeverityFail      IssueSeverity = "fail"
	SeverityAttention IssueSeverity = "attention"
)

// QualityIssue is a single copy-quality finding from the normalizer.
type QualityIssue struct {
	Language       Language      `json:"language"`
	FieldName      string        `json:"field_name"`
	OriginalText   string        `json:"original_text"`
	IssueType      string        `json:"issue_type"`
	Recommendation string        `json:"recommendation"`
	Severity       IssueSeverity `json:"severity"`
}
