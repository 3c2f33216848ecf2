package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragforge/doc-chunker/internal/document"
)

func TestParser_Text(t *testing.T) {
	p := NewParser(nil)

	data := []byte("First paragraph spans\na couple of lines.\n\nSecond paragraph.\n\n\n\n  \n\nThird.")
	sections, err := p.Parse("notes.txt", data)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, "First paragraph spans\na couple of lines.", sections[0].Content)
	assert.Equal(t, "Second paragraph.", sections[1].Content)
	assert.Equal(t, "Third.", sections[2].Content)
	for _, s := range sections {
		assert.Equal(t, document.SectionParagraph, s.Type)
	}
}

func TestParser_Markdown(t *testing.T) {
	p := NewParser(nil)

	data := []byte(strings.Join([]string{
		"# Guide",
		"",
		"Intro paragraph",
		"continues here.",
		"",
		"```go",
		"code := 1",
		"",
		"more()",
		"```",
		"",
		"## Usage",
		"",
		"Run it.",
	}, "\n"))

	sections, err := p.Parse("guide.md", data)
	require.NoError(t, err)
	require.Len(t, sections, 5)

	assert.Equal(t, document.SectionHeading, sections[0].Type)
	assert.Equal(t, "Guide", sections[0].Content)
	assert.Equal(t, "Guide", sections[0].Heading)

	assert.Equal(t, document.SectionParagraph, sections[1].Type)
	assert.Equal(t, "Intro paragraph continues here.", sections[1].Content)
	assert.Equal(t, "Guide", sections[1].Heading)

	assert.Equal(t, document.SectionCode, sections[2].Type)
	assert.Equal(t, "code := 1\n\nmore()", sections[2].Content)
	assert.Equal(t, "Guide", sections[2].Heading)

	assert.Equal(t, document.SectionHeading, sections[3].Type)
	assert.Equal(t, "Usage", sections[3].Content)

	assert.Equal(t, document.SectionParagraph, sections[4].Type)
	assert.Equal(t, "Run it.", sections[4].Content)
	assert.Equal(t, "Usage", sections[4].Heading)
}

func TestParser_MarkdownParagraphBeforeHeading(t *testing.T) {
	p := NewParser(nil)

	sections, err := p.Parse("doc.md", []byte("Lead text.\n\n# Title"))
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, "Lead text.", sections[0].Content)
	assert.Equal(t, "", sections[0].Heading)
	assert.Equal(t, document.SectionHeading, sections[1].Type)
}

func TestParser_CSV(t *testing.T) {
	p := NewParser(nil)

	data := []byte("id,name\n1,Alice\n2,Bob\n3,X,extra\n")
	sections, err := p.Parse("people.csv", data)
	require.NoError(t, err)
	require.Len(t, sections, 4)

	assert.Equal(t, document.SectionHeading, sections[0].Type)
	assert.Equal(t, "id | name", sections[0].Content)

	assert.Equal(t, document.SectionTable, sections[1].Type)
	assert.Equal(t, "id: 1 | name: Alice", sections[1].Content)
	assert.Equal(t, "id: 2 | name: Bob", sections[2].Content)

	// A row whose field count differs from the header is joined as-is.
	assert.Equal(t, "3 | X | extra", sections[3].Content)

	for _, s := range sections[1:] {
		assert.Equal(t, "", s.Heading)
	}
}

func TestParser_CSVEmpty(t *testing.T) {
	p := NewParser(nil)

	sections, err := p.Parse("empty.csv", []byte(""))
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestParser_TSV(t *testing.T) {
	p := NewParser(nil)

	sections, err := p.Parse("data.tsv", []byte("a\tb\n1\t2\n"))
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, "a | b", sections[0].Content)
	assert.Equal(t, "a: 1 | b: 2", sections[1].Content)
}

func TestParser_JSON(t *testing.T) {
	p := NewParser(nil)

	data := []byte(`{
		"title": "T",
		"meta": {"author": "A", "year": 2024},
		"tags": ["x", "y"],
		"ok": true,
		"note": null
	}`)

	sections, err := p.Parse("meta.json", data)
	require.NoError(t, err)
	require.Len(t, sections, 4)

	assert.Equal(t, "title: T", sections[0].Content)
	assert.Equal(t, "title", sections[0].Heading)

	assert.Equal(t, "meta.author: A", sections[1].Content)
	assert.Equal(t, "meta.author", sections[1].Heading)

	// Array elements inherit the array's path as their heading.
	assert.Equal(t, "tags[0]: x", sections[2].Content)
	assert.Equal(t, "tags", sections[2].Heading)
	assert.Equal(t, "tags[1]: y", sections[3].Content)
	assert.Equal(t, "tags", sections[3].Heading)

	for _, s := range sections {
		assert.Equal(t, document.SectionParagraph, s.Type)
	}
}

func TestParser_JSONRootArray(t *testing.T) {
	p := NewParser(nil)

	sections, err := p.Parse("list.json", []byte(`["a", {"b": "c"}, 5]`))
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, "[0]: a", sections[0].Content)
	assert.Equal(t, "", sections[0].Heading)
	assert.Equal(t, "[1].b: c", sections[1].Content)
	assert.Equal(t, "[1].b", sections[1].Heading)
}

func TestParser_JSONScalarDocument(t *testing.T) {
	p := NewParser(nil)

	sections, err := p.Parse("scalar.json", []byte("42"))
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestParser_JSONInvalid(t *testing.T) {
	p := NewParser(nil)

	_, err := p.Parse("bad.json", []byte("{broken"))
	require.Error(t, err)

	_, err = p.Parse("trailing.json", []byte(`{"a": "b"} extra`))
	require.Error(t, err)
}

func TestParser_PDFInvalid(t *testing.T) {
	p := NewParser(nil)

	_, err := p.Parse("junk.pdf", []byte("this is not a pdf"))
	require.Error(t, err)
}

func TestParser_UnsupportedFormat(t *testing.T) {
	p := NewParser(nil)

	_, err := p.Parse("report.docx", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "docx")
}

func TestParser_DecodeEUCKR(t *testing.T) {
	p := NewParser(nil)

	// "한글 문서" encoded as EUC-KR.
	data := []byte{0xC7, 0xD1, 0xB1, 0xDB, 0x20, 0xB9, 0xAE, 0xBC, 0xAD}
	sections, err := p.Parse("korean.txt", data)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "한글 문서", sections[0].Content)
}

func TestParser_DecodeLatin1(t *testing.T) {
	p := NewParser(nil)

	// "café" encoded as latin-1: the trailing 0xE9 is invalid utf-8 and
	// an incomplete EUC-KR sequence, so the chain falls through.
	data := []byte{0x63, 0x61, 0x66, 0xE9}
	sections, err := p.Parse("menu.txt", data)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "café", sections[0].Content)
}

func TestParser_DecodeExhaustedChain(t *testing.T) {
	// With only utf-8 configured, invalid bytes are replaced rather than
	// failing the parse.
	p := NewParser([]string{"utf-8"})

	sections, err := p.Parse("dirty.txt", []byte("ok \xFF end"))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Contains(t, sections[0].Content, "ok")
	assert.Contains(t, sections[0].Content, "end")
	assert.Contains(t, sections[0].Content, "�")
}
