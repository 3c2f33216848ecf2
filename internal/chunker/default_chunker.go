// Package chunker provides the default structure-aware chunking strategy
// for prose documents.
package chunker

import (
	"strings"

	"github.com/ragforge/doc-chunker/internal/document"
)

// DefaultChunker is the general-purpose strategy. It respects section
// structure where it can: code sections stay whole, tables that fit the
// budget stay whole, and prose is packed sentence by sentence with overlap.
type DefaultChunker struct {
	config Config
}

// NewDefaultChunker creates a default chunker with the given budgets.
func NewDefaultChunker(cfg Config) *DefaultChunker {
	return &DefaultChunker{config: cfg.withDefaults()}
}

// Name returns the chunker strategy name.
func (d *DefaultChunker) Name() string {
	return string(StrategyDefault)
}

// Chunk splits sections into chunks, concatenating the per-section results
// in input order.
func (d *DefaultChunker) Chunk(sections []document.Section, source string) ([]Chunk, error) {
	var chunks []Chunk
	for _, section := range sections {
		chunks = append(chunks, d.chunkSection(section, source)...)
	}
	stampIndices(chunks, source)
	return chunks, nil
}

func (d *DefaultChunker) chunkSection(section document.Section, source string) []Chunk {
	if strings.TrimSpace(section.Content) == "" {
		return nil
	}

	// Code sections are kept whole regardless of size.
	if section.Type == document.SectionCode {
		return []Chunk{newChunk(section.Content, section, source)}
	}

	// Tables that fit the budget stay together.
	if section.Type == document.SectionTable && EstimateTokens(section.Content) <= d.config.MaxTokens {
		return []Chunk{newChunk(section.Content, section, source)}
	}

	return packProse(section.Content, section, source, d.config)
}
