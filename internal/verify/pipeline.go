// Package verify runs the full artwork verification pipeline and
// aggregates the results into a single score.
package verify

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prooflab/artcheck/internal/claims"
	"github.com/prooflab/artcheck/internal/compliance"
	"github.com/prooflab/artcheck/internal/config"
	"github.com/prooflab/artcheck/internal/convert"
	"github.com/prooflab/artcheck/internal/match"
	"github.com/prooflab/artcheck/internal/model"
	"github.com/prooflab/artcheck/internal/normalize"
)

// Input is one (copy document, artwork) pair ready for verification.
// BarcodeImage is the rendered artwork region to scan, nil when no
// rendering is available.
type Input struct {
	CopyFields    []model.Field
	ArtworkFields []model.Field
	BarcodeImage  image.Image
}

// Report is the complete structured output of one verification run.
// Presentation (tables, markdown, emoji) is the caller's concern.
type Report struct {
	Matches        []model.MatchResult     `json:"matches"`
	QualityChecked int                     `json:"quality_checked"`
	QualityIssues  []model.QualityIssue    `json:"quality_issues,omitempty"`
	ClaimRisks     []model.ClaimRiskResult `json:"claim_risks,omitempty"`
	Conversions    []model.ConversionCheck `json:"conversions,omitempty"`
	FontSizes      []model.FontSizeResult  `json:"font_sizes,omitempty"`
	Barcodes       []model.BarcodeResult   `json:"barcodes,omitempty"`
	Score          model.Score             `json:"score"`
}

// Pipeline wires the verification stages together. It is safe for
// concurrent use; all state is immutable after construction.
type Pipeline struct {
	cfg      *config.Config
	matcher  *match.Matcher
	quality  *normalize.Checker
	assessor *claims.Assessor
}

// NewPipeline builds a Pipeline from configuration, loading the claim
// lexicon from file when one is configured.
func NewPipeline(cfg *config.Config) (*Pipeline, error) {
	lexicon := claims.DefaultLexicon()
	if cfg.Claims.LexiconPath != "" {
		var err error
		lexicon, err = claims.LoadLexicon(cfg.Claims.LexiconPath)
		if err != nil {
			return nil, err
		}
	}

	return &Pipeline{
		cfg:      cfg,
		matcher:  match.NewMatcher(cfg.Match, cfg.Zoom),
		quality:  normalize.NewChecker(cfg.Rules),
		assessor: claims.NewAssessor(lexicon, cfg.Claims.RegulatedRegions),
	}, nil
}

// Run executes the pipeline: validate, match, quality, claims,
// conversion, font size, barcode, then aggregate over the complete
// snapshot. Field comparisons run concurrently over disjoint inputs;
// aggregation only starts once every result is in place. Re-running with
// identical input reproduces identical output.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Report, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	r := &Report{QualityChecked: len(in.CopyFields)}

	artSet := model.NewFieldSet(in.ArtworkFields)
	r.Matches = make([]model.MatchResult, len(in.CopyFields))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range in.CopyFields {
		g.Go(func() error {
			var artValue *string
			eval := f
			if af := artSet.ByKey(f.Key()); af != nil {
				v := af.Value
				artValue = &v
				// Font size and confidence come from the artwork side.
				if af.FontSizePt != nil {
					eval.FontSizePt = af.FontSizePt
				}
				if af.Confidence != nil {
					eval.Confidence = af.Confidence
				}
			}
			r.Matches[i] = p.matcher.Classify(eval, artValue)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, f := range in.CopyFields {
		r.QualityIssues = append(r.QualityIssues, p.quality.Check(f)...)
	}

	r.ClaimRisks = p.assessor.AssessFields(in.CopyFields)

	for _, f := range in.CopyFields {
		ml, flOz := convert.ParseFillWeight(f.Value)
		if ml == nil || flOz == nil {
			continue
		}
		check, err := convert.ConvertAndCheck(f.Name, *ml, *flOz, "fl oz", p.cfg.Conversion.Tolerance)
		if err != nil {
			return nil, err
		}
		r.Conversions = append(r.Conversions, check)
	}

	if smallest := compliance.SmallestFont(in.ArtworkFields); smallest != nil {
		r.FontSizes = compliance.CheckFontSize(
			fmt.Sprintf("%s panel", smallest.Panel),
			smallest.Value,
			*smallest.FontSizePt,
			p.cfg.Fonts.RegionMinimaPt,
		)
	}

	r.Barcodes = append(r.Barcodes, compliance.DecodeAndValidate(in.BarcodeImage))

	r.Score = Aggregate(r, p.cfg.Score.TopFixesDisplay)

	zap.L().Info("verify: run complete",
		zap.Int("fields", len(in.CopyFields)),
		zap.Int("quality_issues", len(r.QualityIssues)),
		zap.Int("claims", len(r.ClaimRisks)),
		zap.Float64("overall_percent", r.Score.OverallPercent))

	return r, nil
}

// ApplyVerifiedValues folds visually verified values into a prior
// report: each addressed field is reconciled and the score is recomputed
// from scratch over the updated snapshot. Keys with no matching result
// are reported, not silently dropped.
func (p *Pipeline) ApplyVerifiedValues(r *Report, verified map[model.FieldKey]string) error {
	byKey := make(map[model.FieldKey]int, len(r.Matches))
	for i := range r.Matches {
		byKey[r.Matches[i].Key()] = i
	}

	var missing []string
	for k := range verified {
		if _, ok := byKey[k]; !ok {
			missing = append(missing, k.String())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return model.NewInputError("verify: no match result for %s", strings.Join(missing, ", "))
	}

	for k, v := range verified {
		i := byKey[k]
		r.Matches[i] = p.matcher.Reconcile(r.Matches[i], v)
	}

	r.Score = Aggregate(r, p.cfg.Score.TopFixesDisplay)
	return nil
}

func validate(in Input) error {
	if len(in.CopyFields) == 0 {
		return model.NewInputError("verify: copy document has no fields")
	}
	for _, f := range in.CopyFields {
		if strings.TrimSpace(f.Value) == "" {
			return model.NewInputError("verify: copy field %s has no value", f.Key())
		}
	}
	return nil
}
