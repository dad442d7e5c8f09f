package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/artcheck/internal/config"
)

func TestNewArtworkExtractor(t *testing.T) {
	acfg := config.AnthropicConfig{Key: "sk-test", Model: "claude-sonnet-4-5-20250929", MaxTokens: 2048}

	e, err := NewArtworkExtractor(config.ExtractConfig{Backend: "direct"}, acfg)
	require.NoError(t, err)
	assert.IsType(t, &DirectText{}, e)

	e, err = NewArtworkExtractor(config.ExtractConfig{Backend: "vision"}, acfg)
	require.NoError(t, err)
	assert.IsType(t, &VisionAssisted{}, e)

	e, err = NewArtworkExtractor(config.ExtractConfig{Backend: "auto", MinTextRuns: 5}, acfg)
	require.NoError(t, err)
	assert.IsType(t, &autoExtractor{}, e)
}

func TestNewArtworkExtractorVisionNeedsKey(t *testing.T) {
	_, err := NewArtworkExtractor(config.ExtractConfig{Backend: "vision"}, config.AnthropicConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic key")
}

func TestNewArtworkExtractorAutoWithoutKey(t *testing.T) {
	// Auto mode stays usable for text-layer artwork even with no API key.
	e, err := NewArtworkExtractor(config.ExtractConfig{Backend: "auto", MinTextRuns: 5}, config.AnthropicConfig{})
	require.NoError(t, err)
	auto, ok := e.(*autoExtractor)
	require.True(t, ok)
	assert.Nil(t, auto.vision)
}

func TestNewArtworkExtractorUnknownBackend(t *testing.T) {
	_, err := NewArtworkExtractor(config.ExtractConfig{Backend: "osmosis"}, config.AnthropicConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}
