// Package flow defines the AI generation operations: each flow pairs a
// validated input with a schema-constrained model call and a typed output.
// Flows are stateless and make exactly one model call; they never retry.
package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var (
	// ErrInvalidInput marks a flow input that fails its preconditions.
	// No model call is made when this is returned.
	ErrInvalidInput = errors.New("invalid flow input")

	// ErrGenerationFailed marks a model call that errored or produced
	// output that does not match the flow's schema.
	ErrGenerationFailed = errors.New("generation failed")
)

// Usage reports token consumption for one model call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is the combined token count charged against the user's counter.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// AudioPart is inline binary audio attached to a model request.
type AudioPart struct {
	MIMEType string
	Data     []byte
}

// ModelRequest is one prompt submission with a required response schema.
type ModelRequest struct {
	Prompt string
	Audio  *AudioPart
	Schema *genai.Schema
}

// Generator submits a request to a hosted generation model and returns the
// raw JSON it produced, already constrained to the request schema.
type Generator interface {
	GenerateJSON(ctx context.Context, req ModelRequest) ([]byte, Usage, error)
}

// Service exposes all flows against a single generator.
type Service struct {
	gen Generator
}

// NewService creates a flow service backed by the given generator.
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// callJSON runs one model call and decodes the result into out.
func (s *Service) callJSON(ctx context.Context, req ModelRequest, out any) (Usage, error) {
	raw, usage, err := s.gen.GenerateJSON(ctx, req)
	if err != nil {
		return usage, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return usage, fmt.Errorf("%w: decode model output: %v", ErrGenerationFailed, err)
	}
	return usage, nil
}
