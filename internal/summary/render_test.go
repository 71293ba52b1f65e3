package summary

import (
	"strings"
	"testing"

	"paperbrief/internal/models"
)

func TestRenderMarkdownShape(t *testing.T) {
	sum := models.SummaryResult{
		Title:    "Roofline Modeling of RPC Throughput",
		Authors:  []string{"Ada Lovelace", "Grace Hopper"},
		Synopsis: "Applies roofline analysis to RPC stacks.",
	}
	ref := models.ResolvedReference("Lovelace, A. et al. (2024). Roofline Modeling of RPC Throughput.", 0.9)

	out := RenderMarkdown(sum, ref)
	if !strings.HasPrefix(out, "## Roofline Modeling of RPC Throughput\n") {
		t.Fatalf("output does not start with the title heading: %q", out)
	}

	titleAt := strings.Index(out, "## Roofline")
	authorsAt := strings.Index(out, "**Authors:** Ada Lovelace, Grace Hopper")
	synopsisAt := strings.Index(out, "Applies roofline analysis")
	refAt := strings.Index(out, "### Reference")
	citeAt := strings.Index(out, "Lovelace, A. et al.")

	for name, at := range map[string]int{
		"authors": authorsAt, "synopsis": synopsisAt, "reference": refAt, "citation": citeAt,
	} {
		if at == -1 {
			t.Fatalf("%s section missing from output:\n%s", name, out)
		}
	}
	if !(titleAt < authorsAt && authorsAt < synopsisAt && synopsisAt < refAt && refAt < citeAt) {
		t.Errorf("sections out of order:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("output missing trailing newline")
	}
}

func TestRenderMarkdownDeterministic(t *testing.T) {
	sum := models.SummaryResult{Title: "T", Authors: []string{"A"}, Synopsis: "S"}
	ref := models.ResolvedReference("cite", 0.8)
	if RenderMarkdown(sum, ref) != RenderMarkdown(sum, ref) {
		t.Fatal("identical inputs produced different output bytes")
	}
}

func TestRenderMarkdownOmitsUnresolvedReference(t *testing.T) {
	sum := models.SummaryResult{Title: "T", Synopsis: "S"}
	for _, ref := range []models.Reference{
		models.UnresolvedReference(),
		models.SkippedReference(),
	} {
		out := RenderMarkdown(sum, ref)
		if strings.Contains(out, "Reference") {
			t.Errorf("reference section present for status %q:\n%s", ref.Status, out)
		}
	}
}

func TestRenderMarkdownOmitsEmptySections(t *testing.T) {
	out := RenderMarkdown(models.SummaryResult{Title: "Bare"}, models.SkippedReference())
	if out != "## Bare\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderMarkdownRoundTrip(t *testing.T) {
	sum := models.SummaryResult{
		Title:    "Consensus Without Clocks",
		Authors:  []string{"Ada Lovelace", "Grace Hopper"},
		Synopsis: "First paragraph.\n\nSecond paragraph.",
	}
	out := RenderMarkdown(sum, models.SkippedReference())

	parsed, err := ParseSummary(out)
	if err != nil {
		t.Fatalf("ParseSummary(render output): %v", err)
	}
	if parsed.Title != sum.Title {
		t.Errorf("title round trip: %q", parsed.Title)
	}
	if len(parsed.Authors) != 2 || parsed.Authors[0] != sum.Authors[0] {
		t.Errorf("authors round trip: %v", parsed.Authors)
	}
	if parsed.Synopsis != sum.Synopsis {
		t.Errorf("synopsis round trip: %q", parsed.Synopsis)
	}

	again := RenderMarkdown(parsed, models.SkippedReference())
	if again != out {
		t.Errorf("re-rendering parsed output changed bytes:\n%q\nvs\n%q", again, out)
	}
}
