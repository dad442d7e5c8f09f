// Package compliance runs the regulatory checks that sit outside text
// matching: minimum font sizes per region and barcode integrity.
package compliance

import (
	"sort"

	"github.com/prooflab/artcheck/internal/model"
)

// CheckFontSize compares a measured font size against the minimum for
// every configured region, producing one result per region. Regions are
// reported in sorted order so output is stable across runs.
func CheckFontSize(location, textSample string, sizePt float64, minimaPt map[string]float64) []model.FontSizeResult {
	regions := make([]string, 0, len(minimaPt))
	for r := range minimaPt {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	results := make([]model.FontSizeResult, 0, len(regions))
	for _, region := range regions {
		min := minimaPt[region]
		results = append(results, model.FontSizeResult{
			Location:      location,
			TextSample:    textSample,
			SizePt:        sizePt,
			Region:        region,
			RequiredMinPt: min,
			Passes:        sizePt >= min,
		})
	}
	return results
}

// SmallestFont returns the field carrying the smallest known font size,
// or nil when no field has one. The smallest measurement is what the
// regional minima are checked against.
func SmallestFont(fields []model.Field) *model.Field {
	var smallest *model.Field
	for i := range fields {
		f := &fields[i]
		if f.FontSizePt == nil {
			continue
		}
		if smallest == nil || *f.FontSizePt < *smallest.FontSizePt {
			smallest = f
		}
	}
	return smallest
}
