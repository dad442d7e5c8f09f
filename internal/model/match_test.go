package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchTypeFor(t *testing.T) {
	tests := []struct {
		name    string
		present bool
		score   float64
		want    MatchType
	}{
		{"absent artwork is missing regardless of score", false, 100, MatchMissing},
		{"absent artwork zero score", false, 0, MatchMissing},
		{"perfect score is exact", true, 100, MatchExact},
		{"score at near threshold is near", true, 95.0, MatchNear},
		{"score just under threshold is mismatch", true, 94.999, MatchMismatch},
		{"score just under 100 is near", true, 99.9, MatchNear},
		{"zero score is mismatch", true, 0, MatchMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchTypeFor(tt.present, tt.score, 95.0)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldSetByKey(t *testing.T) {
	fs := NewFieldSet([]Field{
		{Name: "Fill Weight", Panel: PanelFront, Language: "EN", Value: "250 mL"},
		{Name: "Fill Weight", Panel: PanelFront, Language: "FR", Value: "250 mL"},
	})

	f := fs.ByKey(FieldKey{Name: "Fill Weight", Panel: PanelFront, Language: "EN"})
	assert.NotNil(t, f)
	assert.Equal(t, "250 mL", f.Value)

	assert.Nil(t, fs.ByKey(FieldKey{Name: "Fill Weight", Panel: PanelBack, Language: "EN"}))
	assert.Equal(t, []Language{"EN", "FR"}, fs.Languages())
}

func TestIsInputError(t *testing.T) {
	err := NewInputError("no copy value for %s", "Front/EN/Fill Weight")
	assert.True(t, IsInputError(err))
	assert.False(t, IsInputError(assert.AnError))
}
