package summary

import (
	"fmt"
	"strings"

	"paperbrief/internal/models"
	"paperbrief/internal/util"
)

// ParseSummary validates and normalizes raw model output into a
// SummaryResult. It tolerates heading level variance, label lines, bold
// titles, code fences, and missing optional sections; it fails only when no
// identifiable title exists.
func ParseSummary(raw string) (models.SummaryResult, error) {
	text := stripCodeFence(strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n")))
	if text == "" {
		return models.SummaryResult{}, fmt.Errorf("empty model output: %w", util.ErrMalformedResponse)
	}

	lines := strings.Split(text, "\n")
	var res models.SummaryResult
	var body []string
	titleFound := false
	authorsFound := false

	for idx := 0; idx < len(lines); idx++ {
		trimmed := strings.TrimSpace(lines[idx])

		// Preamble before the title ("Here is the summary:", blank lines)
		// is dropped.
		if !titleFound {
			if t, ok := titleFromLine(trimmed); ok {
				res.Title = t
				titleFound = true
			}
			continue
		}

		if !authorsFound {
			if v, ok := labelValue(trimmed, "authors"); ok {
				res.Authors = splitAuthors(v)
				authorsFound = true
				continue
			}
			if v, ok := labelValue(trimmed, "author"); ok {
				res.Authors = splitAuthors(v)
				authorsFound = true
				continue
			}
			if headingNamed(trimmed, "authors", "author") {
				names, next := consumeAuthorsBlock(lines, idx+1)
				res.Authors = names
				authorsFound = true
				idx = next - 1
				continue
			}
		}

		if headingNamed(trimmed, "synopsis", "summary", "abstract") {
			continue
		}
		body = append(body, lines[idx])
	}

	if !titleFound {
		return models.SummaryResult{}, fmt.Errorf("parse model output: %w", util.ErrMalformedResponse)
	}
	res.Synopsis = strings.TrimSpace(strings.Join(body, "\n"))
	return res, nil
}

func titleFromLine(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if t, ok := headingText(s); ok {
		t = trimEmphasis(t)
		if t == "" || isReservedName(t) {
			return "", false
		}
		return t, true
	}
	if v, ok := labelValue(s, "title"); ok {
		v = trimEmphasis(v)
		if v == "" {
			return "", false
		}
		return v, true
	}
	if t, ok := boldOnly(s); ok {
		t = strings.TrimSpace(t)
		if t == "" || isReservedName(t) {
			return "", false
		}
		return t, true
	}
	return "", false
}

// headingText returns the text of a markdown heading line of any level,
// tolerating missing space after the hashes and trailing closing hashes.
func headingText(s string) (string, bool) {
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	i := 0
	for i < len(s) && s[i] == '#' {
		i++
	}
	if i > 6 {
		return "", false
	}
	t := strings.TrimSpace(s[i:])
	t = strings.TrimSpace(strings.TrimRight(t, "#"))
	return t, true
}

func headingNamed(s string, names ...string) bool {
	t, ok := headingText(s)
	if !ok {
		return false
	}
	t = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(trimEmphasis(t)), ":"))
	for _, n := range names {
		if t == n {
			return true
		}
	}
	return false
}

func isReservedName(t string) bool {
	switch strings.ToLower(strings.TrimSuffix(strings.TrimSpace(t), ":")) {
	case "authors", "author", "synopsis", "summary", "abstract", "reference", "references":
		return true
	}
	return false
}

// labelValue matches lines like "Authors: A, B" or "**Title:** X",
// case-insensitively, and returns the value after the colon.
func labelValue(s, label string) (string, bool) {
	clean := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "*", ""), "_", ""))
	low := strings.ToLower(clean)
	prefix := label + ":"
	if !strings.HasPrefix(low, prefix) {
		return "", false
	}
	return strings.TrimSpace(clean[len(prefix):]), true
}

func boldOnly(s string) (string, bool) {
	for _, m := range []string{"**", "__"} {
		if strings.HasPrefix(s, m) && strings.HasSuffix(s, m) && len(s) > 2*len(m) {
			inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, m), m))
			if inner != "" && !strings.Contains(inner, m) {
				return inner, true
			}
		}
	}
	return "", false
}

func trimEmphasis(s string) string {
	s = strings.TrimSpace(s)
	for {
		next := s
		for _, m := range []string{"**", "__", "*", "_", "`"} {
			if strings.HasPrefix(next, m) && strings.HasSuffix(next, m) && len(next) > 2*len(m) {
				next = strings.TrimSpace(next[len(m) : len(next)-len(m)])
			}
		}
		if next == s {
			return s
		}
		s = next
	}
}

func splitAuthors(v string) []string {
	v = strings.ReplaceAll(v, " and ", ",")
	v = strings.ReplaceAll(v, "&", ",")
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(strings.TrimSpace(p), "-*"))
		if p == "" {
			continue
		}
		if strings.EqualFold(p, "unknown") || strings.EqualFold(p, "n/a") || strings.EqualFold(p, "none") {
			continue
		}
		out = append(out, p)
	}
	return out
}

// consumeAuthorsBlock gathers names from a bullet list or a single
// comma-separated line following an Authors heading. It returns the gathered
// names and the index of the first unconsumed line.
func consumeAuthorsBlock(lines []string, start int) ([]string, int) {
	names := []string{}
	i := start
	for ; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if t == "" {
			if len(names) > 0 {
				i++
				break
			}
			continue
		}
		if strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") || strings.HasPrefix(t, "+ ") {
			names = append(names, splitAuthors(t[2:])...)
			continue
		}
		if len(names) == 0 {
			names = append(names, splitAuthors(t)...)
			i++
		}
		break
	}
	return names, i
}

func stripCodeFence(s string) string {
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```markdown")
		s = strings.TrimPrefix(s, "```md")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
