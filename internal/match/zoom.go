package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/prooflab/artcheck/internal/config"
	"github.com/prooflab/artcheck/internal/model"
)

// Unit tokens whose presence makes automated extraction untrustworthy.
var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d+\s*(?:mg|g|kg|ml|l|oz|fl\.?\s*oz|pt|qt|gal)\b`),
	regexp.MustCompile(`(?i)\b\d+\s*(?:mm|cm|m|in|inch|inches|ft|feet)\b`),
	regexp.MustCompile(`(?i)\bUS\s+FL\.?\s*OZ\.?\b`),
}

var (
	digitRe   = regexp.MustCompile(`\d`)
	decimalRe = regexp.MustCompile(`\d+\.\d+`)
)

// ZoomDetector decides when a field needs visual confirmation beyond
// automated extraction. Evaluation is total and side-effect-free.
type ZoomDetector struct {
	fontThresholdPt float64
	negationRes     []*regexp.Regexp
	negationWords   []string
}

// NewZoomDetector compiles the trigger rules from config.
func NewZoomDetector(cfg config.ZoomConfig) *ZoomDetector {
	threshold := cfg.FontSizeThresholdPt
	if threshold <= 0 {
		threshold = 6.5
	}
	d := &ZoomDetector{fontThresholdPt: threshold, negationWords: cfg.NegationWords}
	for _, w := range cfg.NegationWords {
		d.negationRes = append(d.negationRes,
			regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(strings.ToLower(w))+`\b`))
	}
	return d
}

// Evaluate returns whether the field must be escalated to visual
// confirmation, with one reason per trigger that fired. A field that is
// numerically or semantically sensitive is escalated even when the
// automated match looks exact, because extraction of small or
// symbol-laden text is unreliable.
func (d *ZoomDetector) Evaluate(f model.Field, r model.MatchResult) (bool, []string) {
	var reasons []string

	if f.FontSizePt != nil && *f.FontSizePt <= d.fontThresholdPt {
		reasons = append(reasons, fmt.Sprintf("font size %.1fpt <= %.1fpt threshold", *f.FontSizePt, d.fontThresholdPt))
	}
	if f.Confidence != nil && *f.Confidence < 1.0 {
		reasons = append(reasons, fmt.Sprintf("extraction confidence %.0f%% < 100%%", *f.Confidence*100))
	}
	if r.FuzzyScore < 100 {
		reasons = append(reasons, fmt.Sprintf("fuzzy match %.1f%% < 100%%", r.FuzzyScore))
	}

	text := f.Value
	if text != "" {
		if digitRe.MatchString(text) {
			reasons = append(reasons, "contains numbers")
		}
		if strings.Contains(text, "%") {
			reasons = append(reasons, "contains percentage")
		}
		if decimalRe.MatchString(text) {
			reasons = append(reasons, "contains decimal numbers")
		}
		for _, re := range unitPatterns {
			if re.MatchString(text) {
				reasons = append(reasons, "contains units")
				break
			}
		}
		for i, re := range d.negationRes {
			if re.MatchString(text) {
				reasons = append(reasons, fmt.Sprintf("contains negation word: %q", d.negationWords[i]))
				break
			}
		}
	}

	return len(reasons) > 0, reasons
}
