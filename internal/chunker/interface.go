// Package chunker provides interfaces and types for document chunking.
// Chunking is the process of splitting parsed document sections into
// bounded-size, overlap-preserving pieces suitable for embedding and
// retrieval.
package chunker

import (
	"github.com/ragforge/doc-chunker/internal/document"
)

// Chunker defines the interface for all chunking strategies.
type Chunker interface {
	// Chunk splits the parsed sections of one document into chunks.
	// The source name identifies the document and is stamped into every
	// chunk's metadata.
	Chunk(sections []document.Section, source string) ([]Chunk, error)

	// Name returns the strategy name.
	Name() string
}

// Strategy identifies one of the interchangeable chunking algorithms.
type Strategy string

const (
	// StrategyAuto selects a strategy per document from its extension
	// and section mix
	StrategyAuto Strategy = "auto"

	// StrategyDefault is the general-purpose structure-aware strategy
	StrategyDefault Strategy = "default"

	// StrategyCode splits source files at declaration boundaries
	StrategyCode Strategy = "code"

	// StrategyTabular splits tables into row batches under a repeated header
	StrategyTabular Strategy = "tabular"
)

// Config holds the token budgets every strategy is built with.
type Config struct {
	// Maximum tokens per chunk. Single irreducible units (one long word,
	// one code line, one table row) may exceed it.
	MaxTokens int

	// Token overlap carried between consecutive chunks of one section
	OverlapTokens int
}

// DefaultConfig returns the default chunking configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     500,
		OverlapTokens: 50,
	}
}

// withDefaults replaces unusable budget values so every strategy operates on
// a positive chunk budget. An overlap of zero is a valid choice and is kept.
func (c Config) withDefaults() Config {
	if c.MaxTokens <= 0 {
		c.MaxTokens = 500
	}
	if c.OverlapTokens < 0 {
		c.OverlapTokens = 50
	}
	return c
}
