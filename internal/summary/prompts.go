// Package summary turns extracted document text into a generation request,
// parses the model's markdown reply, and renders the final output document.
package summary

import (
	"strings"

	"paperbrief/internal/models"
)

// TruncationMarker is appended to prompts whose document text was cut to fit
// the configured input limit.
const TruncationMarker = "[... document truncated for length ...]"

const promptTemplate = `You are a research paper summarizer.
Summarize the document below.

Respond in markdown with exactly this shape:
## <document title>
Authors: <comma-separated author names, or omit this line if no authors are stated>

<synopsis>

Rules:
- The title heading must repeat the document's own title verbatim.
- Do not invent authors; list only names stated in the document.
- Do not add sections beyond title, authors, and synopsis.
`

const (
	conciseInstruction  = "- Keep the synopsis to one short paragraph.\n"
	detailedInstruction = "- Write a thorough synopsis of several paragraphs covering goals, methods, results, and limitations.\n"
)

// BuildPrompt combines document text and generation settings into a request.
// It is a pure function: identical inputs produce identical requests.
// Oversized text keeps its beginning, where title and abstract live, and
// gains a trailing truncation marker.
func BuildPrompt(text string, cfg models.GenerationConfig, maxInputRunes int) models.GenerationRequest {
	body := text
	truncated := false
	if maxInputRunes > 0 {
		if runes := []rune(text); len(runes) > maxInputRunes {
			body = strings.TrimSpace(string(runes[:maxInputRunes])) + "\n\n" + TruncationMarker
			truncated = true
		}
	}

	var b strings.Builder
	b.WriteString(promptTemplate)
	if cfg.Style == models.StyleDetailed {
		b.WriteString(detailedInstruction)
	} else {
		b.WriteString(conciseInstruction)
	}
	b.WriteString("\nDocument:\n\n")
	b.WriteString(body)

	return models.GenerationRequest{Prompt: b.String(), Config: cfg, Truncated: truncated}
}
