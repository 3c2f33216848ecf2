// Package document defines the section model shared by the parsers and the
// chunking engine. A parsed document is an ordered list of sections, each
// carrying its structural type and whatever position metadata the source
// format provides.
package document

// SectionType classifies the structural role of a parsed section.
type SectionType string

const (
	// SectionParagraph is running prose text
	SectionParagraph SectionType = "paragraph"

	// SectionHeading is a document heading line
	SectionHeading SectionType = "heading"

	// SectionCode is a verbatim code block
	SectionCode SectionType = "code"

	// SectionTable is tabular data, one or more newline-separated rows
	SectionTable SectionType = "table"
)

// Section is one structurally typed unit of a parsed document. Sections are
// read-only inputs to the chunking engine; the engine never mutates them.
type Section struct {
	// Text content of the section
	Content string `json:"content"`

	// Structural type of the section
	Type SectionType `json:"section_type"`

	// Page number in the source document, 1-based, when the format has pages
	Page *int `json:"page,omitempty"`

	// Nearest enclosing heading, when known
	Heading string `json:"heading,omitempty"`
}
