package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"paperbrief/internal/models"
	"paperbrief/internal/util"
)

// GeminiProvider talks to Google's Generative Language REST API.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGeminiProvider(apiKey, baseURL string, timeout time.Duration) *GeminiProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *GeminiProvider) Name() string { return "gemini" }

func (g *GeminiProvider) Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error) {
	if g.apiKey == "" {
		return models.GenerationResponse{}, fmt.Errorf("gemini: %w", util.ErrAuthentication)
	}
	model := strings.TrimSpace(req.Config.Model)
	if model == "" {
		return models.GenerationResponse{}, fmt.Errorf("gemini: no model selected: %w", util.ErrInvalidModel)
	}

	genCfg := map[string]any{}
	if req.Config.MaxOutputTokens > 0 {
		genCfg["maxOutputTokens"] = req.Config.MaxOutputTokens
	}
	payload, _ := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]string{{"text": req.Prompt}}},
		},
		"generationConfig": genCfg,
	})

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, model)
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	httpReq.Header.Set("x-goog-api-key", g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return models.GenerationResponse{}, WrapTransportError("gemini", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return models.GenerationResponse{}, ClassifyHTTPError("gemini", resp.StatusCode, body)
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		UsageMetadata struct {
			TotalTokenCount int `json:"totalTokenCount"`
		} `json:"usageMetadata"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.GenerationResponse{}, fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return models.GenerationResponse{}, fmt.Errorf("gemini returned no candidates")
	}
	var text strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return models.GenerationResponse{}, fmt.Errorf("gemini returned an empty candidate")
	}
	return models.GenerationResponse{
		Text:       text.String(),
		Model:      model,
		Provider:   "gemini",
		TokensUsed: parsed.UsageMetadata.TotalTokenCount,
		Latency:    time.Since(start),
	}, nil
}

// ListModels enumerates the models visible to the configured key.
func (g *GeminiProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", util.ErrAuthentication)
	}
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1beta/models?pageSize=200", nil)
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, WrapTransportError("gemini", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, ClassifyHTTPError("gemini", resp.StatusCode, body)
	}

	var parsed struct {
		Models []struct {
			Name                       string   `json:"name"`
			SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
		} `json:"models"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode gemini model list: %w", err)
	}
	out := make([]ModelInfo, 0, len(parsed.Models))
	for _, m := range parsed.Models {
		out = append(out, ModelInfo{
			Name:    strings.TrimPrefix(m.Name, "models/"),
			Methods: m.SupportedGenerationMethods,
		})
	}
	return out, nil
}
