// Package parser provides PDF parsing, one section per page.
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ragforge/doc-chunker/internal/document"
)

// parsePDF extracts plain text page by page. Every non-empty page becomes
// one paragraph section stamped with its 1-based page number. Pages whose
// text cannot be extracted are skipped.
func parsePDF(data []byte) ([]document.Section, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var sections []document.Section
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		pageNum := num
		sections = append(sections, document.Section{
			Content: text,
			Page:    &pageNum,
			Type:    document.SectionParagraph,
		})
	}

	return sections, nil
}
