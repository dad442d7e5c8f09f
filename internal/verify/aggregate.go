package verify

import (
	"fmt"
	"math"
	"sort"

	"github.com/prooflab/artcheck/internal/model"
)

// fixEntry pairs a Fix with the attention bookkeeping the aggregator
// needs before truncation.
type fixEntry struct {
	fix    model.Fix
	isNear bool
}

// Aggregate derives the Score from a complete report snapshot. It is a
// pure function of the report contents and is recomputed from scratch
// after every change, never updated incrementally.
func Aggregate(r *Report, topDisplay int) model.Score {
	if topDisplay <= 0 {
		topDisplay = 5
	}

	perArea := map[string]model.AreaScore{
		model.AreaArtworkMatch: matchArea(r.Matches),
		model.AreaCopyQuality:  qualityArea(r.QualityChecked, r.QualityIssues),
		model.AreaClaims:       claimsArea(r.ClaimRisks),
		model.AreaConversion:   conversionArea(r.Conversions),
		model.AreaFontSize:     fontArea(r.FontSizes),
		model.AreaBarcode:      barcodeArea(r.Barcodes),
	}

	// An area with zero checks contributes no term to the mean. Absence
	// of an applicable check is not a failure of one.
	var sum float64
	var n int
	for _, a := range perArea {
		if a.Checks > 0 {
			sum += float64(a.Matches) / float64(a.Checks) * 100
			n++
		}
	}
	overall := 0.0
	if n > 0 {
		overall = round1(sum / float64(n))
	}

	entries := collectFixes(r)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].fix, entries[j].fix
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Panel != b.Panel {
			return a.Panel < b.Panel
		}
		return a.Field < b.Field
	})

	all := make([]model.Fix, len(entries))
	for i, e := range entries {
		all[i] = e.fix
	}

	top := all
	if len(top) > topDisplay {
		top = top[:topDisplay]
	}

	var attention []model.Fix
	for _, e := range entries[min(topDisplay, len(entries)):] {
		if e.isNear {
			attention = append(attention, e.fix)
		}
	}

	return model.Score{
		PerArea:        perArea,
		OverallPercent: overall,
		TopFixes:       top,
		AllFixes:       all,
		AttentionList:  attention,
	}
}

func matchArea(matches []model.MatchResult) model.AreaScore {
	a := model.AreaScore{Checks: len(matches)}
	for _, m := range matches {
		if m.MatchType == model.MatchExact {
			a.Matches++
		}
	}
	return finishArea(a)
}

func qualityArea(checked int, issues []model.QualityIssue) model.AreaScore {
	flagged := make(map[string]bool)
	for _, q := range issues {
		flagged[string(q.Language)+"\x00"+q.FieldName] = true
	}
	a := model.AreaScore{Checks: checked, Matches: checked - len(flagged)}
	if a.Matches < 0 {
		a.Matches = 0
	}
	return finishArea(a)
}

func claimsArea(risks []model.ClaimRiskResult) model.AreaScore {
	a := model.AreaScore{Checks: len(risks)}
	for _, c := range risks {
		if c.RiskLevel == model.RiskLow {
			a.Matches++
		}
	}
	return finishArea(a)
}

func conversionArea(checks []model.ConversionCheck) model.AreaScore {
	a := model.AreaScore{Checks: len(checks)}
	for _, c := range checks {
		if c.WithinTolerance {
			a.Matches++
		}
	}
	return finishArea(a)
}

func fontArea(results []model.FontSizeResult) model.AreaScore {
	a := model.AreaScore{Checks: len(results)}
	for _, f := range results {
		if f.Passes {
			a.Matches++
		}
	}
	return finishArea(a)
}

func barcodeArea(results []model.BarcodeResult) model.AreaScore {
	var a model.AreaScore
	for _, b := range results {
		switch b.ScanStatus {
		case model.ScanUnavailable:
			// Not an applicable check.
		case model.ScanSuccess:
			a.Checks++
			if b.CheckDigitValid != nil && *b.CheckDigitValid {
				a.Matches++
			}
		default:
			a.Checks++
		}
	}
	return finishArea(a)
}

func finishArea(a model.AreaScore) model.AreaScore {
	if a.Checks > 0 {
		a.Percent = round1(float64(a.Matches) / float64(a.Checks) * 100)
	}
	return a
}

func collectFixes(r *Report) []fixEntry {
	var entries []fixEntry

	for _, m := range r.Matches {
		switch m.MatchType {
		case model.MatchMissing:
			entries = append(entries, fixEntry{fix: model.Fix{
				Priority: 1, Field: m.FieldName, Panel: m.Panel, Language: m.Language,
				Issue:  "missing from artwork",
				Action: "confirm visually or add to artwork",
			}})
		case model.MatchMismatch:
			entries = append(entries, fixEntry{fix: model.Fix{
				Priority: 1, Field: m.FieldName, Panel: m.Panel, Language: m.Language,
				Issue:  fmt.Sprintf("mismatch (%.1f%%)", m.FuzzyScore),
				Action: "correct artwork text to match copy",
			}})
		case model.MatchNear:
			entries = append(entries, fixEntry{isNear: true, fix: model.Fix{
				Priority: 2, Field: m.FieldName, Panel: m.Panel, Language: m.Language,
				Issue:  fmt.Sprintf("near match (%.1f%%)", m.FuzzyScore),
				Action: "verify differences",
			}})
		}
	}

	for _, q := range r.QualityIssues {
		p := 2
		if q.Severity == model.SeverityFail {
			p = 1
		}
		entries = append(entries, fixEntry{fix: model.Fix{
			Priority: p, Field: q.FieldName, Language: q.Language,
			Issue:  q.IssueType,
			Action: q.Recommendation,
		}})
	}

	for _, c := range r.ClaimRisks {
		switch c.RiskLevel {
		case model.RiskHigh:
			entries = append(entries, fixEntry{fix: model.Fix{
				Priority: 1, Field: c.ClaimText, Language: c.Language,
				Issue:  "high-risk claim",
				Action: "escalate for substantiation",
			}})
		case model.RiskMedium:
			entries = append(entries, fixEntry{fix: model.Fix{
				Priority: 2, Field: c.ClaimText, Language: c.Language,
				Issue:  "efficacy claim",
				Action: "legal review",
			}})
		}
	}

	for _, c := range r.Conversions {
		if !c.WithinTolerance {
			entries = append(entries, fixEntry{fix: model.Fix{
				Priority: 1, Field: c.SourceLabel,
				Issue:  fmt.Sprintf("conversion off by %.4f %s", c.Diff, c.Unit),
				Action: fmt.Sprintf("correct to %.4f %s", c.CalculatedValue, c.Unit),
			}})
		}
	}

	for _, f := range r.FontSizes {
		if !f.Passes {
			entries = append(entries, fixEntry{fix: model.Fix{
				Priority: 1, Field: f.Location,
				Issue:  fmt.Sprintf("font %.1fpt below %s minimum %.1fpt", f.SizePt, f.Region, f.RequiredMinPt),
				Action: "increase font size",
			}})
		}
	}

	for _, b := range r.Barcodes {
		switch {
		case b.ScanStatus == model.ScanFailed:
			entries = append(entries, fixEntry{fix: model.Fix{
				Priority: 1, Field: "Barcode",
				Issue:  b.Notes,
				Action: "verify barcode manually",
			}})
		case b.ScanStatus == model.ScanSuccess && b.CheckDigitValid != nil && !*b.CheckDigitValid:
			entries = append(entries, fixEntry{fix: model.Fix{
				Priority: 1, Field: "Barcode",
				Issue:  "check digit invalid",
				Action: "correct barcode digits",
			}})
		}
	}

	return entries
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
