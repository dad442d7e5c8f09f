package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/artcheck/internal/config"
	"github.com/prooflab/artcheck/internal/model"
)

func testZoomConfig() config.ZoomConfig {
	return config.ZoomConfig{
		FontSizeThresholdPt: 6.5,
		NegationWords: []string{
			"no", "not", "free", "only", "without", "never", "none", "zero",
			"moins", "sans", "non", "aucun",
		},
	}
}

func newTestMatcher() *Matcher {
	return NewMatcher(config.MatchConfig{NearThreshold: 95.0}, testZoomConfig())
}

func copyField(name, value string) model.Field {
	return model.Field{
		Name: name, Language: "EN", Panel: model.PanelFront,
		Value: value, Source: model.SourceCopyDoc,
	}
}

func strPtr(s string) *string { return &s }

func TestScoreIdenticalCanonicalPairs(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name string
		a, b string
	}{
		{"identical", "gentle cleanser", "gentle cleanser"},
		{"case differs", "Gentle Cleanser", "gentle cleanser"},
		{"whitespace differs", "gentle  cleanser", "gentle cleanser"},
		{"curly apostrophe", "l’eau micellaire", "l'eau micellaire"},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, 100.0, m.Score(tt.a, tt.b), 1e-9)
		})
	}
}

func TestScoreSymmetric(t *testing.T) {
	m := newTestMatcher()

	pairs := [][2]string{
		{"hello", "hallo"},
		{"gentle foaming cleanser", "gentle foaming cleansr"},
		{"250 mL", "8.5 fl oz"},
		{"", "something"},
	}
	for _, p := range pairs {
		assert.InDelta(t, m.Score(p[0], p[1]), m.Score(p[1], p[0]), 1e-12)
	}
}

func TestScoreKnownRatio(t *testing.T) {
	m := newTestMatcher()
	// One substitution over five runes.
	assert.InDelta(t, 80.0, m.Score("hello", "hallo"), 0.01)
}

func TestClassifyMissingArtwork(t *testing.T) {
	m := newTestMatcher()

	r := m.Classify(copyField("Marketing Copy", "gentle cleanser for daily use"), nil)

	assert.Equal(t, model.MatchMissing, r.MatchType)
	assert.Zero(t, r.FuzzyScore)
	assert.Nil(t, r.ArtworkValue)
	require.NotEmpty(t, r.Notes)
	assert.Contains(t, r.Notes[0], "not found")
	assert.True(t, r.RequiresVisual, "missing fields always escalate")
}

func TestClassifyExact(t *testing.T) {
	m := newTestMatcher()

	r := m.Classify(copyField("Marketing Copy", "gentle cleanser for daily use"),
		strPtr("Gentle  cleanser for daily use"))

	assert.Equal(t, model.MatchExact, r.MatchType)
	assert.InDelta(t, 100.0, r.FuzzyScore, 1e-9)
	assert.False(t, r.RequiresVisual, "clean exact match needs no escalation")
}

func TestClassifyMismatch(t *testing.T) {
	m := newTestMatcher()

	r := m.Classify(copyField("Marketing Copy", "gentle cleanser"), strPtr("harsh detergent"))

	assert.Equal(t, model.MatchMismatch, r.MatchType)
	assert.Less(t, r.FuzzyScore, 95.0)
	require.NotEmpty(t, r.Notes)
	assert.Contains(t, r.Notes[0], "mismatch")
	assert.True(t, r.RequiresVisual)
}

func TestClassifyBoundaryInclusive(t *testing.T) {
	// One substitution over 16 runes scores exactly 93.75, which is a
	// dyadic fraction and therefore exact in floating point. With the
	// near threshold set to that score, the boundary must resolve
	// upward to near, not mismatch.
	m := NewMatcher(config.MatchConfig{NearThreshold: 93.75}, testZoomConfig())

	a := strings.Repeat("a", 15) + "b"
	b := strings.Repeat("a", 16)
	require.InDelta(t, 93.75, m.Score(a, b), 1e-12)

	r := m.Classify(copyField("Marketing Copy", a), &b)
	assert.Equal(t, model.MatchNear, r.MatchType)
}

func TestClassifyNear(t *testing.T) {
	m := newTestMatcher()

	// One substitution over 40 runes: 97.5.
	a := strings.Repeat("a", 39) + "b"
	b := strings.Repeat("a", 40)
	r := m.Classify(copyField("Marketing Copy", a), &b)

	assert.Equal(t, model.MatchNear, r.MatchType)
	assert.InDelta(t, 97.5, r.FuzzyScore, 0.01)
	require.NotEmpty(t, r.Notes)
	assert.Contains(t, r.Notes[0], "near match")
}

func TestReconcile(t *testing.T) {
	m := newTestMatcher()

	prev := m.Classify(copyField("Fill Weight", "250 mL / 8.5 fl oz"), nil)
	require.Equal(t, model.MatchMissing, prev.MatchType)
	require.True(t, prev.RequiresVisual)

	r := m.Reconcile(prev, "250 mL / 8.5 fl oz")

	assert.Equal(t, model.MatchExact, r.MatchType)
	assert.InDelta(t, 100.0, r.FuzzyScore, 1e-9)
	assert.True(t, r.VisuallyVerified)
	assert.True(t, r.RequiresVisual, "escalation flag persists as audit trail")
	require.NotEmpty(t, r.Notes)
	assert.Contains(t, r.Notes[len(r.Notes)-1], "visually verified on Front EN")
}

func TestReconcileIdempotent(t *testing.T) {
	m := newTestMatcher()

	prev := m.Classify(copyField("Fill Weight", "250 mL / 8.5 fl oz"), strPtr("250mL/8.5floz"))
	first := m.Reconcile(prev, "250 mL / 8.5 fl oz")
	second := m.Reconcile(first, "250 mL / 8.5 fl oz")

	assert.Equal(t, first.MatchType, second.MatchType)
	assert.Equal(t, first.FuzzyScore, second.FuzzyScore)
	assert.Equal(t, first.ArtworkValue, second.ArtworkValue)
	assert.Equal(t, first.Notes, second.Notes)
}
