package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/artcheck/internal/config"
	"github.com/prooflab/artcheck/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Match:      config.MatchConfig{NearThreshold: 95.0},
		Conversion: config.ConversionConfig{Tolerance: 0.10},
		Zoom: config.ZoomConfig{
			FontSizeThresholdPt: 6.5,
			NegationWords:       []string{"no", "not", "free", "only", "without"},
		},
		Rules: config.RulesConfig{
			Acronyms:        []string{"ML", "FL", "OZ", "NP", "SPF"},
			INCIConnectors:  []string{"of", "and", "de"},
			UppercaseExempt: []string{"Ingredient List", "Fill Weight", "Address Block"},
		},
		Claims: config.ClaimsConfig{RegulatedRegions: []string{"USA", "EU", "UK"}},
		Fonts:  config.FontConfig{RegionMinimaPt: map[string]float64{"USA": 4.5, "EU": 6.0}},
		Score:  config.ScoreConfig{TopFixesDisplay: 5},
	}
}

func pt(v float64) *float64 { return &v }

func testInput() Input {
	return Input{
		CopyFields: []model.Field{
			{Name: "Brand Name", Language: "EN", Panel: model.PanelFront,
				Value: "lumina", Source: model.SourceCopyDoc},
			{Name: "Marketing Copy", Language: "EN", Panel: model.PanelFront,
				Value: "gentle cleanser for daily use", Source: model.SourceCopyDoc},
			{Name: "Fill Weight", Language: "EN", Panel: model.PanelFront,
				Value: "250 mL / 8.5 FL OZ", Source: model.SourceCopyDoc},
		},
		ArtworkFields: []model.Field{
			{Name: "Brand Name", Language: "EN", Panel: model.PanelFront,
				Value: "lumina", Source: model.SourceArtwork, FontSizePt: pt(7.5)},
			{Name: "Marketing Copy", Language: "EN", Panel: model.PanelFront,
				Value: "gentle cleanser for daly use", Source: model.SourceArtwork, FontSizePt: pt(9.0)},
		},
	}
}

func TestPipelineRun(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	r, err := p.Run(context.Background(), testInput())
	require.NoError(t, err)

	require.Len(t, r.Matches, 3)
	byField := make(map[string]model.MatchResult)
	for _, m := range r.Matches {
		byField[m.FieldName] = m
	}

	assert.Equal(t, model.MatchExact, byField["Brand Name"].MatchType)
	assert.Equal(t, model.MatchNear, byField["Marketing Copy"].MatchType)
	assert.Equal(t, model.MatchMissing, byField["Fill Weight"].MatchType)

	require.Len(t, r.Conversions, 1)
	assert.True(t, r.Conversions[0].WithinTolerance)
	assert.InDelta(t, 8.4535, r.Conversions[0].CalculatedValue, 0.0001)

	// Smallest artwork font is 7.5pt, checked against USA and EU minima.
	require.Len(t, r.FontSizes, 2)
	for _, f := range r.FontSizes {
		assert.True(t, f.Passes)
		assert.InDelta(t, 7.5, f.SizePt, 0.001)
	}

	require.Len(t, r.Barcodes, 1)
	assert.Equal(t, model.ScanUnavailable, r.Barcodes[0].ScanStatus)

	assert.Equal(t, 3, r.QualityChecked)
	assert.Empty(t, r.QualityIssues)

	assert.InDelta(t, 83.3, r.Score.OverallPercent, 0.001)
}

func TestPipelineRunDeterministic(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	r1, err := p.Run(context.Background(), testInput())
	require.NoError(t, err)
	r2, err := p.Run(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
}

func TestPipelineRunValidation(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	_, err = p.Run(context.Background(), Input{})
	require.Error(t, err)
	assert.True(t, model.IsInputError(err))

	in := testInput()
	in.CopyFields[1].Value = "   "
	_, err = p.Run(context.Background(), in)
	require.Error(t, err)
	assert.True(t, model.IsInputError(err))
	assert.Contains(t, err.Error(), "Marketing Copy")
}

func TestApplyVerifiedValues(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	r, err := p.Run(context.Background(), testInput())
	require.NoError(t, err)

	key := model.FieldKey{Name: "Fill Weight", Panel: model.PanelFront, Language: "EN"}
	err = p.ApplyVerifiedValues(r, map[model.FieldKey]string{key: "250 mL / 8.5 FL OZ"})
	require.NoError(t, err)

	var fill model.MatchResult
	for _, m := range r.Matches {
		if m.FieldName == "Fill Weight" {
			fill = m
		}
	}
	assert.Equal(t, model.MatchExact, fill.MatchType)
	assert.True(t, fill.VisuallyVerified)
	assert.True(t, fill.RequiresVisual, "audit trail survives reconciliation")

	// 2 of 3 exact now; the score is recomputed over the new snapshot.
	assert.InDelta(t, 91.7, r.Score.OverallPercent, 0.001)
}

func TestApplyVerifiedValuesUnknownKey(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	r, err := p.Run(context.Background(), testInput())
	require.NoError(t, err)

	bogus := model.FieldKey{Name: "Nonexistent", Panel: model.PanelBack, Language: "FR"}
	err = p.ApplyVerifiedValues(r, map[model.FieldKey]string{bogus: "value"})
	require.Error(t, err)
	assert.True(t, model.IsInputError(err))
	assert.Contains(t, err.Error(), "Nonexistent")
}
