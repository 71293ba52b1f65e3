package summary

import (
	"strings"
	"testing"

	"paperbrief/internal/models"
)

func TestBuildPromptDeterministic(t *testing.T) {
	cfg := models.GenerationConfig{Model: "m", Style: models.StyleConcise}
	a := BuildPrompt("Some document text.", cfg, 1000)
	b := BuildPrompt("Some document text.", cfg, 1000)
	if a.Prompt != b.Prompt {
		t.Fatal("identical inputs produced different prompts")
	}
	if a.Truncated {
		t.Error("short input should not be marked truncated")
	}
	if !strings.Contains(a.Prompt, "Some document text.") {
		t.Error("prompt does not contain the document text")
	}
}

func TestBuildPromptTruncatesFromEnd(t *testing.T) {
	head := "Roofline Modeling of RPC Throughput. "
	text := head + strings.Repeat("filler sentence about microbenchmarks. ", 500)
	cfg := models.GenerationConfig{Style: models.StyleConcise}

	req := BuildPrompt(text, cfg, 200)
	if !req.Truncated {
		t.Fatal("oversized input not marked truncated")
	}
	if !strings.Contains(req.Prompt, head) {
		t.Error("truncation dropped the beginning of the document")
	}
	if !strings.Contains(req.Prompt, TruncationMarker) {
		t.Error("truncated prompt missing truncation marker")
	}
	if strings.Contains(req.Prompt, text) {
		t.Error("prompt still contains the full oversized document")
	}
}

func TestBuildPromptNoMarkerWhenUnderLimit(t *testing.T) {
	req := BuildPrompt("tiny", models.GenerationConfig{}, 100)
	if req.Truncated || strings.Contains(req.Prompt, TruncationMarker) {
		t.Fatal("input under the limit must not carry a truncation marker")
	}
}

func TestBuildPromptStyleInstruction(t *testing.T) {
	concise := BuildPrompt("doc", models.GenerationConfig{Style: models.StyleConcise}, 0)
	detailed := BuildPrompt("doc", models.GenerationConfig{Style: models.StyleDetailed}, 0)
	if concise.Prompt == detailed.Prompt {
		t.Fatal("style setting did not change the prompt")
	}
	if !strings.Contains(concise.Prompt, "one short paragraph") {
		t.Error("concise prompt missing its style instruction")
	}
	if !strings.Contains(detailed.Prompt, "several paragraphs") {
		t.Error("detailed prompt missing its style instruction")
	}
}

func TestBuildPromptZeroLimitDisablesTruncation(t *testing.T) {
	text := strings.Repeat("x", 5000)
	req := BuildPrompt(text, models.GenerationConfig{}, 0)
	if req.Truncated {
		t.Fatal("limit of zero should disable truncation")
	}
	if !strings.Contains(req.Prompt, text) {
		t.Error("full document text missing from prompt")
	}
}
