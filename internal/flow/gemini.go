package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is the generation model used when none is configured.
// Matches the text/audio-capable model the product was built against.
const DefaultModel = "gemini-2.0-flash"

// Gemini implements Generator against the hosted Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGemini creates a Gemini-backed generator. The API key is required;
// an empty model falls back to DefaultModel.
func NewGemini(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{client: client, model: model, logger: logger}, nil
}

// GenerateJSON submits the prompt (plus optional inline audio) and returns
// the schema-constrained JSON text the model produced.
func (g *Gemini) GenerateJSON(ctx context.Context, req ModelRequest) ([]byte, Usage, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Audio != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Audio.Data, req.Audio.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, Usage{}, fmt.Errorf("%w: gemini call: %v", ErrGenerationFailed, err)
	}

	var usage Usage
	if resp.UsageMetadata != nil {
		usage = Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}

	text := resp.Text()
	if text == "" {
		return nil, usage, fmt.Errorf("%w: model returned no text candidate", ErrGenerationFailed)
	}

	g.logger.Debug("gemini call complete",
		"model", g.model,
		"duration", time.Since(start),
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens)

	return []byte(text), usage, nil
}
