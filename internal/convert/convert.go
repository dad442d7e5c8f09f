// Package convert verifies declared volume conversions between mL and
// fl oz against the standard conversion factor.
package convert

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/prooflab/artcheck/internal/model"
)

// MLToFlOz is the standard mL to US fl oz conversion factor.
const MLToFlOz = 0.033814

// DefaultTolerance is the acceptable absolute difference in the
// converted unit.
const DefaultTolerance = 0.10

var recognizedUnits = map[string]bool{
	"fl oz": true,
	"floz":  true,
	"oz":    true,
}

var (
	mlRe   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*mL\b`)
	flOzRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:US\s*)?FL\.?\s*OZ\.?`)
)

// ConvertAndCheck computes the expected fl oz value for a declared mL
// volume and compares the declared value against it. The difference is
// computed on the unrounded conversion; CalculatedValue is rounded to
// four decimals for display. An unrecognized unit is an error, not a
// tolerance failure.
func ConvertAndCheck(sourceLabel string, declaredML, declaredValue float64, unit string, tolerance float64) (model.ConversionCheck, error) {
	canonical := strings.ToLower(strings.TrimSpace(unit))
	canonical = strings.ReplaceAll(canonical, ".", "")
	canonical = strings.Join(strings.Fields(canonical), " ")
	if !recognizedUnits[canonical] {
		return model.ConversionCheck{}, eris.Errorf("convert: unrecognized unit %q", unit)
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	calculated := declaredML * MLToFlOz
	diff := math.Abs(declaredValue - calculated)

	return model.ConversionCheck{
		SourceLabel:     sourceLabel,
		DeclaredML:      declaredML,
		DeclaredValue:   declaredValue,
		CalculatedValue: math.Round(calculated*10000) / 10000,
		Unit:            "fl oz",
		Diff:            diff,
		WithinTolerance: diff <= tolerance,
	}, nil
}

// ParseFillWeight extracts the declared mL and fl oz values from a fill
// weight declaration such as "250 ML / 8.5 US FL. OZ.". Either value may
// be absent.
func ParseFillWeight(text string) (ml, flOz *float64) {
	if m := mlRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			ml = &v
		}
	}
	if m := flOzRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			flOz = &v
		}
	}
	return ml, flOz
}
