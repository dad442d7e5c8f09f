package extract

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/prooflab/artcheck/internal/model"
	"github.com/prooflab/artcheck/pkg/anthropic"
)

const visionSystemPrompt = `You read print-ready packaging artwork PDFs. Given a list of expected fields, locate each one on the artwork and transcribe its text exactly as printed, keeping line breaks, punctuation, and capitalization. Estimate the font size in points where possible. Respond with JSON only, no prose:
{"fields":[{"name":"...","panel":"...","language":"...","value":"...","font_size_pt":6.0,"confidence":0.95}]}
Omit fields you cannot find. Confidence is your certainty in the transcription, between 0 and 1.`

// VisionAssisted extracts fields by attaching the artwork PDF to a
// vision model request. Used when the text layer is outlined or
// rasterized. Returned fields carry confidence below 1.0, which keeps
// them flagged for visual confirmation downstream.
type VisionAssisted struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewVisionAssisted creates a vision-backed extractor.
func NewVisionAssisted(client anthropic.Client, modelID string, maxTokens int64) *VisionAssisted {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &VisionAssisted{client: client, model: modelID, maxTokens: maxTokens}
}

// visionField is the wire shape of one extracted field.
type visionField struct {
	Name       string   `json:"name"`
	Panel      string   `json:"panel"`
	Language   string   `json:"language"`
	Value      string   `json:"value"`
	FontSizePt *float64 `json:"font_size_pt,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Extract sends the artwork PDF with the expected field list and parses
// the model's transcription. Only fields that were actually requested
// are returned; anything else the model volunteers is dropped.
func (v *VisionAssisted) Extract(ctx context.Context, pdfPath string, copyFields []model.Field) ([]model.Field, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: reading artwork %s", pdfPath)
	}

	resp, err := v.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     v.model,
		MaxTokens: v.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(visionSystemPrompt),
		Messages: []anthropic.Message{
			anthropic.NewDocumentMessage(
				base64.StdEncoding.EncodeToString(data),
				buildFieldPrompt(copyFields),
			),
		},
	})
	if err != nil {
		return nil, err
	}
	resp.Usage.LogCost(v.model, "extract")

	fields, err := parseVisionResponse(resp.Text(), copyFields)
	if err != nil {
		return nil, err
	}

	zap.L().Info("extract: vision pass complete",
		zap.Int("requested", len(copyFields)),
		zap.Int("located", len(fields)))
	return fields, nil
}

func buildFieldPrompt(copyFields []model.Field) string {
	var sb strings.Builder
	sb.WriteString("Locate these fields on the artwork:\n")
	for _, f := range copyFields {
		fmt.Fprintf(&sb, "- name=%q panel=%q language=%q\n", f.Name, f.Panel, f.Language)
	}
	return sb.String()
}

func parseVisionResponse(text string, copyFields []model.Field) ([]model.Field, error) {
	text = stripCodeFence(text)

	var payload struct {
		Fields []visionField `json:"fields"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, eris.Wrap(err, "extract: parsing vision response")
	}

	requested := make(map[model.FieldKey]bool, len(copyFields))
	for _, f := range copyFields {
		requested[f.Key()] = true
	}

	var out []model.Field
	for _, vf := range payload.Fields {
		f := model.Field{
			Name:       vf.Name,
			Language:   model.Language(strings.ToUpper(vf.Language)),
			Panel:      model.Panel(vf.Panel),
			Value:      vf.Value,
			Source:     model.SourceArtwork,
			FontSizePt: vf.FontSizePt,
			Confidence: vf.Confidence,
		}
		if !requested[f.Key()] || strings.TrimSpace(f.Value) == "" {
			continue
		}
		if f.Confidence == nil {
			c := 0.9
			f.Confidence = &c
		}
		out = append(out, f)
	}
	return out, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
