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

// OpenAIProvider uses the standard OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenAIProvider(apiKey, baseURL string, timeout time.Duration) *OpenAIProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (o *OpenAIProvider) Name() string { return "openai" }

func (o *OpenAIProvider) Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error) {
	if o.apiKey == "" {
		return models.GenerationResponse{}, fmt.Errorf("openai: %w", util.ErrAuthentication)
	}
	model := strings.TrimSpace(req.Config.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}

	fields := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a research paper summarizer. Reply in markdown only."},
			{"role": "user", "content": req.Prompt},
		},
	}
	if req.Config.MaxOutputTokens > 0 {
		fields["max_tokens"] = req.Config.MaxOutputTokens
	}
	payload, _ := json.Marshal(fields)

	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return models.GenerationResponse{}, WrapTransportError("openai", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return models.GenerationResponse{}, ClassifyHTTPError("openai", resp.StatusCode, body)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.GenerationResponse{}, fmt.Errorf("decode openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return models.GenerationResponse{}, fmt.Errorf("openai returned empty choices")
	}
	return models.GenerationResponse{
		Text:       parsed.Choices[0].Message.Content,
		Model:      model,
		Provider:   "openai",
		TokensUsed: parsed.Usage.TotalTokens,
		Latency:    time.Since(start),
	}, nil
}
