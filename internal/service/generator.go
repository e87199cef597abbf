package service

import (
	"fmt"

	"adrs/internal/models"
)

// Generation is the raw output of one simulated inference.
type Generation struct {
	Output     string
	Reasoning  string
	Confidence float64
}

// Generator produces a model output, a rationale, and a confidence score
// for an input. A real model integration replaces the mock behind this
// interface without touching any other component.
type Generator interface {
	Generate(input string, intent models.Intent) Generation
	Name() string
	Version() string
}

const (
	mockGeneratorName    = "gpt-4-mock"
	mockGeneratorVersion = "1.0"

	confidenceInformationQuery   = 0.85
	confidenceGeneralInteraction = 0.92

	// Number of input characters echoed into an information-query rationale.
	reasoningPreviewChars = 30
)

// MockGenerator is a deterministic stand-in for a real model. Given the
// same input and intent it always yields the same generation.
type MockGenerator struct{}

func NewMockGenerator() MockGenerator { return MockGenerator{} }

func (MockGenerator) Name() string    { return mockGeneratorName }
func (MockGenerator) Version() string { return mockGeneratorVersion }

func (g MockGenerator) Generate(input string, intent models.Intent) Generation {
	gen := Generation{
		Output: fmt.Sprintf("This is a simulated AI response for: %s", input),
	}
	switch intent {
	case models.IntentInformationQuery:
		gen.Reasoning = fmt.Sprintf(
			"The system identified a request for information. It retrieved relevant context from internal knowledge bases to formulate a fact-based response to '%s...'.",
			preview(input, reasoningPreviewChars),
		)
		gen.Confidence = confidenceInformationQuery
	default:
		gen.Reasoning = "The system processed a general interaction using standard model weights and safety filters."
		gen.Confidence = confidenceGeneralInteraction
	}
	return gen
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
