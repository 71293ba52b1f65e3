package summary

import (
	"strings"

	"paperbrief/internal/models"
)

// RenderMarkdown assembles the output document in fixed section order:
// title, authors, synopsis, and the reference when one was resolved. It is a
// pure function and produces identical bytes for identical input.
func RenderMarkdown(sum models.SummaryResult, ref models.Reference) string {
	var b strings.Builder

	b.WriteString("## ")
	b.WriteString(strings.TrimSpace(sum.Title))
	b.WriteString("\n")

	if len(sum.Authors) > 0 {
		b.WriteString("\n**Authors:** ")
		b.WriteString(strings.Join(sum.Authors, ", "))
		b.WriteString("\n")
	}

	if s := strings.TrimSpace(sum.Synopsis); s != "" {
		b.WriteString("\n")
		b.WriteString(s)
		b.WriteString("\n")
	}

	if ref.Status == models.ReferenceResolved && strings.TrimSpace(ref.Citation) != "" {
		b.WriteString("\n### Reference\n\n")
		b.WriteString(strings.TrimSpace(ref.Citation))
		b.WriteString("\n")
	}

	return b.String()
}
