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

func TestGroqDefaultModel(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"## T"}}]}`))
	}))
	defer srv.Close()

	p := NewGroqProvider("gsk-test", srv.URL, time.Second)
	resp, err := p.Generate(context.Background(), models.GenerationRequest{Prompt: "x"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gotBody["model"] != "llama-3.1-8b-instant" || resp.Model != "llama-3.1-8b-instant" {
		t.Errorf("default model not applied: payload=%v resp=%q", gotBody["model"], resp.Model)
	}
}

func TestGroqServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	p := NewGroqProvider("gsk-test", srv.URL, time.Second)
	_, err := p.Generate(context.Background(), models.GenerationRequest{Prompt: "x"})
	if !errors.Is(err, util.ErrTransient) {
		t.Fatalf("err = %v, want ErrTransient", err)
	}
}

func TestGroqMissingKey(t *testing.T) {
	p := NewGroqProvider("", "http://127.0.0.1:1", time.Second)
	_, err := p.Generate(context.Background(), models.GenerationRequest{Prompt: "x"})
	if !errors.Is(err, util.ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
}
