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

// GroqProvider supports generation via Groq's OpenAI-compatible API.
type GroqProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGroqProvider(apiKey, baseURL string, timeout time.Duration) *GroqProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://api.groq.com/openai"
	}
	return &GroqProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *GroqProvider) Name() string { return "groq" }

func (g *GroqProvider) Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error) {
	if g.apiKey == "" {
		return models.GenerationResponse{}, fmt.Errorf("groq: %w", util.ErrAuthentication)
	}
	model := strings.TrimSpace(req.Config.Model)
	if model == "" {
		model = "llama-3.1-8b-instant"
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

	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return models.GenerationResponse{}, WrapTransportError("groq", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return models.GenerationResponse{}, ClassifyHTTPError("groq", resp.StatusCode, body)
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
		return models.GenerationResponse{}, fmt.Errorf("decode groq response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return models.GenerationResponse{}, fmt.Errorf("groq returned empty choices")
	}
	return models.GenerationResponse{
		Text:       parsed.Choices[0].Message.Content,
		Model:      model,
		Provider:   "groq",
		TokensUsed: parsed.Usage.TotalTokens,
		Latency:    time.Since(start),
	}, nil
}
