// Package parser provides Markdown parsing into heading, code and paragraph
// sections.
package parser

import (
	"strings"

	"github.com/ragforge/doc-chunker/internal/document"
)

// parseMarkdown walks the lines of a Markdown document. Heading lines open a
// new heading section and set the heading inherited by the sections that
// follow. Fenced blocks become code sections with the fence lines removed.
// Consecutive non-blank lines are joined with spaces into one paragraph
// section. Inline formatting is left untouched.
func parseMarkdown(text string) []document.Section {
	lines := strings.Split(text, "\n")

	var sections []document.Section
	heading := ""

	for i := 0; i < len(lines); {
		line := lines[i]

		switch {
		case strings.HasPrefix(line, "#"):
			heading = strings.TrimSpace(strings.TrimLeft(line, "#"))
			sections = append(sections, document.Section{
				Content: heading,
				Heading: heading,
				Type:    document.SectionHeading,
			})
			i++

		case strings.HasPrefix(strings.TrimSpace(line), "```"):
			var code []string
			i++
			for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
				code = append(code, lines[i])
				i++
			}
			sections = append(sections, document.Section{
				Content: strings.Join(code, "\n"),
				Heading: heading,
				Type:    document.SectionCode,
			})
			i++ // closing fence

		case strings.TrimSpace(line) != "":
			para := []string{line}
			i++
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" && !strings.HasPrefix(lines[i], "#") {
				para = append(para, lines[i])
				i++
			}
			if joined := strings.TrimSpace(strings.Join(para, " ")); joined != "" {
				sections = append(sections, document.Section{
					Content: joined,
					Heading: heading,
					Type:    document.SectionParagraph,
				})
			}

		default:
			i++
		}
	}

	return sections
}
