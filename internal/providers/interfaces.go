package providers

import (
	"context"

	"paperbrief/internal/models"
)

// Provider generates one summary per call against a hosted model API.
// Implementations must detect a missing credential locally and return
// util.ErrAuthentication before any network traffic.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error)
}

// ModelInfo describes one model a provider exposes.
type ModelInfo struct {
	Name    string
	Methods []string
}

// ModelLister is implemented by providers that can enumerate their models.
// The CLI uses it to pick a default model when none was configured.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// FirstGenerateModel returns the first listed model that supports content
// generation.
func FirstGenerateModel(infos []ModelInfo) (string, bool) {
	for _, m := range infos {
		for _, method := range m.Methods {
			if method == "generateContent" {
				return m.Name, true
			}
		}
	}
	return "", false
}

// CallRecord captures one provider attempt for the audit log.
type CallRecord struct {
	Stage      string
	Provider   string
	Model      string
	Attempt    int
	RequestSHA string
	Status     string
	ErrorKind  string
	LatencyMS  int64
}

// CallRecorder persists call records. Recording failures must not fail the
// call itself.
type CallRecorder interface {
	RecordCall(ctx context.Context, rec CallRecord) error
}

// NopRecorder drops every record. Used when no audit database is configured.
type NopRecorder struct{}

func (NopRecorder) RecordCall(context.Context, CallRecord) error { return nil }
