// Package extract converts PDF documents into plain text for prompting.
// Only the embedded text layer is read; scanned image-only PDFs are not
// handled.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"paperbrief/internal/models"
	"paperbrief/internal/util"
)

// Extract parses a PDF held in memory and returns its text with all pages
// concatenated in document order.
func Extract(data []byte) (doc models.SourceDocument, err error) {
	defer recoverParsePanic(&err)
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.SourceDocument{}, fmt.Errorf("%w: open pdf: %v", util.ErrExtraction, err)
	}
	return readPages(r, "")
}

// ExtractFile parses the PDF at path.
func ExtractFile(path string) (doc models.SourceDocument, err error) {
	defer recoverParsePanic(&err)
	f, r, err := pdf.Open(path)
	if err != nil {
		return models.SourceDocument{}, fmt.Errorf("%w: open pdf %s: %v", util.ErrExtraction, path, err)
	}
	defer f.Close()
	return readPages(r, path)
}

// recoverParsePanic converts parser panics on malformed files into an
// extraction error; the pdf package panics on some corrupt inputs instead of
// returning one.
func recoverParsePanic(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: malformed pdf: %v", util.ErrExtraction, r)
	}
}

func readPages(r *pdf.Reader, path string) (models.SourceDocument, error) {
	total := r.NumPage()
	if total == 0 {
		return models.SourceDocument{}, fmt.Errorf("%w: document has no pages", util.ErrExtraction)
	}

	fonts := make(map[string]*pdf.Font)
	var parts []string
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				fonts[name] = &f
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			// A single unreadable page should not lose the rest of the
			// document; the empty-total check below still catches the case
			// where nothing was extractable.
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	text := util.SanitizeText(strings.Join(parts, "\n\n"))
	if text == "" {
		return models.SourceDocument{}, fmt.Errorf("extract %d pages: %w", total, util.ErrNoExtractableText)
	}
	return models.SourceDocument{Path: path, Text: text, Pages: total}, nil
}

// FileExtractor adapts ExtractFile for callers that take an extractor
// dependency.
type FileExtractor struct{}

func (FileExtractor) ExtractFile(path string) (models.SourceDocument, error) {
	return ExtractFile(path)
}
