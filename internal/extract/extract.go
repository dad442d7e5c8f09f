// Package extract reads copy documents and pulls field values out of
// print-ready artwork PDFs.
package extract

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/prooflab/artcheck/internal/config"
	"github.com/prooflab/artcheck/internal/model"
	"github.com/prooflab/artcheck/internal/resilience"
	"github.com/prooflab/artcheck/pkg/anthropic"
)

// ArtworkExtractor locates the given copy fields in an artwork PDF and
// returns the artwork-side values it found. Fields it cannot locate are
// simply absent from the result; the matcher reports those as missing.
type ArtworkExtractor interface {
	Extract(ctx context.Context, pdfPath string, copyFields []model.Field) ([]model.Field, error)
}

// NewArtworkExtractor selects a backend from configuration. "auto"
// probes the PDF text layer and falls back to vision when the artwork
// has outlined or rasterized text.
func NewArtworkExtractor(cfg config.ExtractConfig, acfg config.AnthropicConfig) (ArtworkExtractor, error) {
	newVision := func() (*VisionAssisted, error) {
		if acfg.Key == "" {
			return nil, eris.New("extract: vision backend requires anthropic key")
		}
		client := anthropic.RateLimited(anthropic.NewClient(acfg.Key), acfg.RequestsPerMinute)
		retryCfg := resilience.DefaultRetryConfig()
		if acfg.MaxAttempts > 0 {
			retryCfg.MaxAttempts = acfg.MaxAttempts
		}
		return NewVisionAssisted(withRetry(client, retryCfg), acfg.Model, acfg.MaxTokens), nil
	}

	switch cfg.Backend {
	case "direct":
		return NewDirectText(), nil
	case "vision":
		return newVision()
	case "auto", "":
		direct := NewDirectText()
		vision, err := newVision()
		if err != nil {
			// No key configured: auto mode still works for artwork with
			// a usable text layer.
			vision = nil
		}
		return &autoExtractor{
			direct:      direct,
			vision:      vision,
			minTextRuns: cfg.MinTextRuns,
		}, nil
	default:
		return nil, eris.Errorf("extract: unknown backend %q", cfg.Backend)
	}
}

// autoExtractor probes the text layer once per run and picks a backend.
type autoExtractor struct {
	direct      *DirectText
	vision      *VisionAssisted
	minTextRuns int
}

func (a *autoExtractor) Extract(ctx context.Context, pdfPath string, copyFields []model.Field) ([]model.Field, error) {
	n, err := a.direct.Probe(pdfPath)
	if err == nil && n >= a.minTextRuns {
		return a.direct.Extract(ctx, pdfPath, copyFields)
	}
	if a.vision == nil {
		if err != nil {
			return nil, eris.Wrapf(err, "extract: text layer unusable and no vision backend configured")
		}
		return nil, eris.Errorf("extract: text layer has %d runs (need %d) and no vision backend configured", n, a.minTextRuns)
	}
	return a.vision.Extract(ctx, pdfPath, copyFields)
}
