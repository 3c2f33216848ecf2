// Package parser turns raw document bytes into ordered sections for the
// chunking engine. Each supported format has its own parsing rules; the
// format is chosen by the file extension.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ragforge/doc-chunker/internal/document"
)

// ErrUnsupportedFormat is returned for file types the parser cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Parser converts raw file bytes into document sections.
type Parser struct {
	encodings []string
}

// NewParser creates a parser that tries the given encodings, in order, when
// decoding text formats. An empty list selects the default chain.
func NewParser(encodings []string) *Parser {
	if len(encodings) == 0 {
		encodings = DefaultEncodings()
	}
	return &Parser{encodings: encodings}
}

// Parse converts file bytes into ordered sections. The filename's extension
// selects the format; unsupported extensions return ErrUnsupportedFormat.
func (p *Parser) Parse(filename string, data []byte) ([]document.Section, error) {
	switch ext := extensionOf(filename); ext {
	case "txt":
		return parseText(p.decode(data)), nil
	case "md":
		return parseMarkdown(p.decode(data)), nil
	case "csv":
		return parseDelimited(p.decode(data), ',')
	case "tsv":
		return parseDelimited(p.decode(data), '\t')
	case "json":
		return parseJSON(p.decode(data))
	case "pdf":
		return parsePDF(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// extensionOf returns the lowercased file extension without the dot.
func extensionOf(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// parseText splits plain text into paragraph sections on blank lines.
func parseText(text string) []document.Section {
	var sections []document.Section
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sections = append(sections, document.Section{
			Content: para,
			Type:    document.SectionParagraph,
		})
	}
	return sections
}
