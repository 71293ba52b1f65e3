package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paperbrief/internal/models"
	"paperbrief/internal/util"
)

func TestOpenAIGenerate(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{
			"choices":[{"message":{"content":"## A Title\n\nBody."}}],
			"usage":{"total_tokens":17}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, 5*time.Second)
	req := models.GenerationRequest{
		Prompt: "Summarize.",
		Config: models.GenerationConfig{Model: "gpt-4o-mini", MaxOutputTokens: 512},
	}
	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "## A Title\n\nBody." || resp.TokensUsed != 17 {
		t.Errorf("resp = %+v", resp)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody["model"] != "gpt-4o-mini" {
		t.Errorf("model in payload = %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(512) {
		t.Errorf("max_tokens in payload = %v", gotBody["max_tokens"])
	}
}

func TestOpenAIDefaultModel(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"## T"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, time.Second)
	resp, err := p.Generate(context.Background(), models.GenerationRequest{Prompt: "x"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gotBody["model"] != "gpt-4o-mini" || resp.Model != "gpt-4o-mini" {
		t.Errorf("default model not applied: payload=%v resp=%q", gotBody["model"], resp.Model)
	}
	if _, present := gotBody["max_tokens"]; present {
		t.Error("max_tokens sent despite zero configured limit")
	}
}

func TestOpenAIMissingKey(t *testing.T) {
	p := NewOpenAIProvider("", "http://127.0.0.1:1", time.Second)
	_, err := p.Generate(context.Background(), models.GenerationRequest{Prompt: "x"})
	if !errors.Is(err, util.ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, time.Second)
	_, err := p.Generate(context.Background(), models.GenerationRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("empty choices must be an error")
	}
}

func TestOpenAIUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-bad", srv.URL, time.Second)
	_, err := p.Generate(context.Background(), models.GenerationRequest{Prompt: "x"})
	if !errors.Is(err, util.ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
}
