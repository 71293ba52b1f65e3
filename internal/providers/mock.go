package providers

import (
	"context"

	"paperbrief/internal/models"
)

// MockProvider returns deterministic output without network access. Tests
// script failures through Errs; the CLI uses it for offline smoke runs.
type MockProvider struct {
	Text  string  // response body; a canned summary when empty
	Errs  []error // consumed one per call before Text is served
	Calls int
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error) {
	_ = ctx
	m.Calls++
	if len(m.Errs) > 0 {
		err := m.Errs[0]
		m.Errs = m.Errs[1:]
		if err != nil {
			return models.GenerationResponse{}, err
		}
	}
	text := m.Text
	if text == "" {
		text = "## Mock Summary\n\nAuthors: Mock Author\n\nDeterministic mock output for offline runs."
	}
	model := req.Config.Model
	if model == "" {
		model = "mock-llm-v1"
	}
	return models.GenerationResponse{Text: text, Model: model, Provider: "mock"}, nil
}
