// Package chunker provides the chunk type and its construction helpers.
package chunker

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ragforge/doc-chunker/internal/document"
)

// Chunk represents a single bounded-size piece of a document, ready for
// embedding and retrieval.
type Chunk struct {
	// Unique identifier for this chunk (deterministic)
	ID string `json:"id"`

	// The actual content
	Content string `json:"content"`

	// Origin and position metadata
	Metadata Metadata `json:"metadata"`
}

// Metadata describes where a chunk came from and its position within the
// full result set for one document.
type Metadata struct {
	// Caller-supplied document identifier, typically the file name
	Source string `json:"source"`

	// Page number inherited from the section, when known
	Page *int `json:"page,omitempty"`

	// Heading inherited from the section, when any
	Heading string `json:"heading,omitempty"`

	// Structural type of the originating section
	SectionType string `json:"section_type"`

	// 0-based position within the document's full chunk list
	ChunkIndex int `json:"chunk_index"`

	// Size of the document's full chunk list, identical on every chunk
	TotalChunks int `json:"total_chunks"`

	// Content length in runes
	CharCount int `json:"char_count"`

	// Estimated token count of the content
	TokenCount int `json:"token_count"`

	// Programming language, set on chunks produced by the code strategy
	Language string `json:"language,omitempty"`

	// Declared symbol name, reserved for callers that enrich chunks
	FunctionName string `json:"function_name,omitempty"`
}

// newChunk builds a chunk from content and its originating section. Char and
// token counts are computed here so every construction path records them.
func newChunk(content string, section document.Section, source string) Chunk {
	return Chunk{
		Content: content,
		Metadata: Metadata{
			Source:      source,
			Page:        section.Page,
			Heading:     section.Heading,
			SectionType: string(section.Type),
			CharCount:   utf8.RuneCountInString(content),
			TokenCount:  EstimateTokens(content),
		},
	}
}

// newCodeChunk builds a chunk tagged with the detected language.
func newCodeChunk(content string, section document.Section, source, lang string) Chunk {
	c := newChunk(content, section, source)
	c.Metadata.Language = lang
	return c
}

// stampIndices assigns positions and IDs across a document's full chunk
// list. IDs are UUIDv5 values derived from source, position and content, so
// identical inputs always produce identical chunk lists.
func stampIndices(chunks []Chunk, source string) {
	for i := range chunks {
		chunks[i].Metadata.ChunkIndex = i
		chunks[i].Metadata.TotalChunks = len(chunks)
		chunks[i].ID = chunkID(source, i, chunks[i].Content)
	}
}

// chunkID derives a stable UUID for a chunk from its origin and position.
func chunkID(source string, index int, content string) string {
	name := fmt.Sprintf("%s#%d:%s", source, index, content)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
