// Package chunker provides the domain-aware facade that picks a strategy
// per document and delegates chunking to it.
package chunker

import (
	"log/slog"

	"github.com/ragforge/doc-chunker/internal/document"
)

// DomainAwareChunker is the public entry point of the engine. In auto mode
// it selects a strategy per document from the source extension and section
// mix; a pinned strategy always wins.
type DomainAwareChunker struct {
	config   Config
	strategy Strategy
	registry *Registry
	logger   *slog.Logger
}

// NewDomainAwareChunker creates the facade. An empty strategy means auto.
// A pinned strategy is validated here so a configuration mistake surfaces at
// construction time, not on the first document.
func NewDomainAwareChunker(cfg Config, strategy Strategy, logger *slog.Logger) (*DomainAwareChunker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strategy == "" {
		strategy = StrategyAuto
	}

	registry := NewRegistry(cfg)
	if strategy != StrategyAuto {
		if _, err := registry.CreateChunker(strategy); err != nil {
			return nil, err
		}
	}

	return &DomainAwareChunker{
		config:   cfg.withDefaults(),
		strategy: strategy,
		registry: registry,
		logger:   logger,
	}, nil
}

// Chunk splits the sections of one document using the selected strategy.
// An empty section list yields an empty result, not an error.
func (d *DomainAwareChunker) Chunk(sections []document.Section, source string) ([]Chunk, error) {
	strategy := d.selectStrategy(source, sections)

	chunker, err := d.registry.CreateChunker(strategy)
	if err != nil {
		return nil, err
	}

	chunks, err := chunker.Chunk(sections, source)
	if err != nil {
		return nil, err
	}

	totalTokens := 0
	for _, chunk := range chunks {
		totalTokens += chunk.Metadata.TokenCount
	}
	d.logger.Info("chunking complete",
		"source", source,
		"strategy", string(strategy),
		"chunks", len(chunks),
		"total_tokens", totalTokens)

	return chunks, nil
}

// selectStrategy resolves the strategy for one document. A pinned strategy
// wins, then the extension map; extension-selected default is overridden to
// tabular when more than half of the sections are tables.
func (d *DomainAwareChunker) selectStrategy(source string, sections []document.Section) Strategy {
	if d.strategy != StrategyAuto {
		return d.strategy
	}

	strategy := d.registry.GetStrategy(source, "")
	if strategy != StrategyDefault || len(sections) == 0 {
		return strategy
	}

	tables := 0
	for _, section := range sections {
		if section.Type == document.SectionTable {
			tables++
		}
	}
	if float64(tables)/float64(len(sections)) > 0.5 {
		d.logger.Debug("table-heavy content, switching strategy",
			"source", source,
			"table_sections", tables,
			"total_sections", len(sections))
		return StrategyTabular
	}

	return strategy
}
