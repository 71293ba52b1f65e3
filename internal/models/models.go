package models

import (
	"fmt"
	"strings"
	"time"
)

// Style selects how expansive the generated synopsis should be.
type Style string

const (
	StyleConcise  Style = "concise"
	StyleDetailed Style = "detailed"
)

func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleConcise, "":
		return StyleConcise, nil
	case StyleDetailed:
		return StyleDetailed, nil
	default:
		return "", fmt.Errorf("unknown style %q (want %q or %q)", s, StyleConcise, StyleDetailed)
	}
}

// SourceDocument is the extracted form of one input PDF. It is built once at
// pipeline start and discarded after prompt construction.
type SourceDocument struct {
	Path  string `json:"path,omitempty"`
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

// GenerationConfig carries the caller-supplied generation options. It is
// never mutated after construction.
type GenerationConfig struct {
	Model            string `json:"model"`
	MaxOutputTokens  int    `json:"max_output_tokens"`
	Style            Style  `json:"style"`
	IncludeReference bool   `json:"include_reference"`
}

// GenerationRequest is the prompt plus a snapshot of the config it was built
// under. Built once per invocation and passed by value.
type GenerationRequest struct {
	Prompt    string           `json:"prompt"`
	Config    GenerationConfig `json:"config"`
	Truncated bool             `json:"truncated,omitempty"`
}

// GenerationResponse is the raw model output plus call metadata.
type GenerationResponse struct {
	Text       string        `json:"text"`
	Model      string        `json:"model"`
	Provider   string        `json:"provider"`
	TokensUsed int           `json:"tokens_used,omitempty"`
	Latency    time.Duration `json:"latency,omitempty"`
}

// SummaryResult is the parsed, validated summary. Title is non-empty whenever
// parsing succeeded; Authors may be empty when the model listed none.
type SummaryResult struct {
	Title    string   `json:"title"`
	Authors  []string `json:"authors,omitempty"`
	Synopsis string   `json:"synopsis,omitempty"`
}

// ReferenceStatus distinguishes a found citation from a lookup that came up
// empty and from a lookup that was never attempted.
type ReferenceStatus string

const (
	ReferenceResolved   ReferenceStatus = "resolved"
	ReferenceUnresolved ReferenceStatus = "unresolved"
	ReferenceSkipped    ReferenceStatus = "skipped"
)

// Reference is the citation-lookup outcome. Citation and Score are only set
// when Status is resolved.
type Reference struct {
	Status   ReferenceStatus `json:"status"`
	Citation string          `json:"citation,omitempty"`
	Score    float64         `json:"score,omitempty"`
}

func ResolvedReference(citation string, score float64) Reference {
	return Reference{Status: ReferenceResolved, Citation: citation, Score: score}
}

func UnresolvedReference() Reference {
	return Reference{Status: ReferenceUnresolved}
}

func SkippedReference() Reference {
	return Reference{Status: ReferenceSkipped}
}
