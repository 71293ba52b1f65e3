package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paperbrief/internal/models"
	"paperbrief/internal/util"
)

func geminiRequest(model string) models.GenerationRequest {
	return models.GenerationRequest{
		Prompt: "Summarize the document.",
		Config: models.GenerationConfig{Model: model, MaxOutputTokens: 256},
	}
}

func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{
			"candidates":[{"content":{"parts":[{"text":"## Roofline Modeling"},{"text":" of RPC Throughput"}]}}],
			"usageMetadata":{"totalTokenCount":42}
		}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key", srv.URL, 5*time.Second)
	resp, err := p.Generate(context.Background(), geminiRequest("gemini-2.0-flash"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "## Roofline Modeling of RPC Throughput" {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.Provider != "gemini" || resp.Model != "gemini-2.0-flash" {
		t.Errorf("call metadata = %q/%q", resp.Provider, resp.Model)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("tokens = %d", resp.TokensUsed)
	}
	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if _, ok := gotBody["contents"]; !ok {
		t.Error("request body missing contents")
	}
	genCfg, ok := gotBody["generationConfig"].(map[string]any)
	if !ok || genCfg["maxOutputTokens"] != float64(256) {
		t.Errorf("generationConfig = %v", gotBody["generationConfig"])
	}
}

func TestGeminiMissingKeyNoNetworkCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	p := NewGeminiProvider("", srv.URL, time.Second)
	_, err := p.Generate(context.Background(), geminiRequest("gemini-2.0-flash"))
	if !errors.Is(err, util.ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
	if calls != 0 {
		t.Fatalf("missing key still reached the server %d times", calls)
	}
}

func TestGeminiErrorStatuses(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   error
	}{
		{429, `{"error":{"message":"quota exceeded"}}`, util.ErrRateLimited},
		{400, `{"error":{"message":"API key not valid. Please pass a valid API key."}}`, util.ErrAuthentication},
		{404, `{"error":{"message":"models/nope is not found"}}`, util.ErrInvalidModel},
		{503, `{"error":{"message":"service unavailable"}}`, util.ErrTransient},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		}))
		p := NewGeminiProvider("k", srv.URL, time.Second)
		_, err := p.Generate(context.Background(), geminiRequest("gemini-2.0-flash"))
		srv.Close()
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestGeminiEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("k", srv.URL, time.Second)
	_, err := p.Generate(context.Background(), geminiRequest("gemini-2.0-flash"))
	if err == nil || !strings.Contains(err.Error(), "no candidates") {
		t.Fatalf("err = %v", err)
	}
}

func TestGeminiListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models":[
			{"name":"models/embedding-001","supportedGenerationMethods":["embedContent"]},
			{"name":"models/gemini-2.0-flash","supportedGenerationMethods":["generateContent","countTokens"]}
		]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("k", srv.URL, time.Second)
	infos, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(infos) != 2 || infos[1].Name != "gemini-2.0-flash" {
		t.Fatalf("infos = %+v", infos)
	}

	name, ok := FirstGenerateModel(infos)
	if !ok || name != "gemini-2.0-flash" {
		t.Fatalf("FirstGenerateModel = %q, %v", name, ok)
	}
}

func TestFirstGenerateModelNone(t *testing.T) {
	_, ok := FirstGenerateModel([]ModelInfo{{Name: "embed", Methods: []string{"embedContent"}}})
	if ok {
		t.Fatal("embedding-only list should not yield a generate model")
	}
}
