package extract

import (
	"context"
	"strings"

	"github.com/agext/levenshtein"
	pdf "github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"

	"github.com/prooflab/artcheck/internal/model"
	"github.com/prooflab/artcheck/internal/normalize"
)

// locateThreshold is the minimum similarity for a text run window to be
// accepted as the artwork-side value of a copy field. Below it the field
// is reported as not found rather than matched to unrelated text.
const locateThreshold = 0.6

// maxRunWindow bounds how many consecutive rows one field value may span.
const maxRunWindow = 3

// textRun is one row of artwork text with the smallest font size seen in
// the row.
type textRun struct {
	value  string
	fontPt float64
}

// DirectText extracts fields from the PDF text layer. It only works on
// artwork whose text has not been outlined or rasterized; Probe reports
// how much usable text is present so auto mode can decide.
type DirectText struct{}

// NewDirectText creates a text-layer extractor.
func NewDirectText() *DirectText {
	return &DirectText{}
}

// Probe returns the number of usable text runs in the PDF.
func (d *DirectText) Probe(pdfPath string) (int, error) {
	runs, err := readRuns(pdfPath)
	if err != nil {
		return 0, err
	}
	return len(runs), nil
}

// Extract locates each copy field in the PDF text layer. Located fields
// carry the matched artwork text and the smallest font size of the rows
// it spans; confidence is left unset since the text layer is exact.
func (d *DirectText) Extract(ctx context.Context, pdfPath string, copyFields []model.Field) ([]model.Field, error) {
	runs, err := readRuns(pdfPath)
	if err != nil {
		return nil, err
	}

	var out []model.Field
	for _, f := range copyFields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if found, ok := locate(runs, f); ok {
			out = append(out, found)
		}
	}
	return out, nil
}

func readRuns(pdfPath string) ([]textRun, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: opening pdf %s", pdfPath)
	}
	defer f.Close()

	var runs []textRun
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var sb strings.Builder
			var fontPt float64
			for _, t := range row.Content {
				sb.WriteString(t.S)
				if t.FontSize > 0 && (fontPt == 0 || t.FontSize < fontPt) {
					fontPt = t.FontSize
				}
			}
			value := normalize.Canonical(sb.String())
			if value == "" {
				continue
			}
			runs = append(runs, textRun{value: value, fontPt: fontPt})
		}
	}
	return runs, nil
}

// locate finds the window of consecutive runs most similar to the copy
// field value. Long values may span multiple rows of artwork text, so
// windows up to maxRunWindow rows are considered.
func locate(runs []textRun, f model.Field) (model.Field, bool) {
	want := normalize.ForComparison(f.Value)

	var bestScore float64
	var bestValue string
	var bestFont float64

	for i := range runs {
		var parts []string
		var fontPt float64
		for w := 0; w < maxRunWindow && i+w < len(runs); w++ {
			r := runs[i+w]
			parts = append(parts, r.value)
			if r.fontPt > 0 && (fontPt == 0 || r.fontPt < fontPt) {
				fontPt = r.fontPt
			}
			cand := strings.Join(parts, " ")
			score := levenshtein.Similarity(normalize.ForComparison(cand), want, nil)
			if score > bestScore {
				bestScore = score
				bestValue = cand
				bestFont = fontPt
			}
		}
	}

	if bestScore < locateThreshold {
		return model.Field{}, false
	}

	found := model.Field{
		Name:     f.Name,
		Language: f.Language,
		Panel:    f.Panel,
		Value:    bestValue,
		Source:   model.SourceArtwork,
	}
	if bestFont > 0 {
		found.FontSizePt = &bestFont
	}
	return found, true
}
