// Package chunker provides tabular chunking that splits large tables into
// row batches while repeating the header in every chunk.
package chunker

import (
	"strings"

	"github.com/ragforge/doc-chunker/internal/document"
)

// TabularChunker splits table sections into batches of rows prefixed with
// the table header, so every chunk keeps its column context. Non-table
// sections fall back to plain prose packing.
type TabularChunker struct {
	config Config
}

// NewTabularChunker creates a tabular chunker with the given budgets.
func NewTabularChunker(cfg Config) *TabularChunker {
	return &TabularChunker{config: cfg.withDefaults()}
}

// Name returns the chunker strategy name.
func (t *TabularChunker) Name() string {
	return string(StrategyTabular)
}

// Chunk splits sections into chunks, concatenating the per-section results
// in input order.
func (t *TabularChunker) Chunk(sections []document.Section, source string) ([]Chunk, error) {
	var chunks []Chunk
	for _, section := range sections {
		if section.Type == document.SectionTable {
			chunks = append(chunks, t.chunkTable(section, source)...)
		} else {
			chunks = append(chunks, packProse(section.Content, section, source, t.config)...)
		}
	}
	stampIndices(chunks, source)
	return chunks, nil
}

// chunkTable batches the rows of one table section. The first line is
// treated as the header and is prepended to every batch. The batch size is
// derived from the average row estimate, so heavily skewed row lengths can
// push individual batches past the budget.
func (t *TabularChunker) chunkTable(section document.Section, source string) []Chunk {
	content := section.Content
	if strings.TrimSpace(content) == "" {
		return nil
	}

	if EstimateTokens(content) <= t.config.MaxTokens {
		return []Chunk{newChunk(content, section, source)}
	}

	lines := strings.Split(content, "\n")
	header := lines[0]

	rows := make([]string, 0, len(lines)-1)
	for _, row := range lines[1:] {
		if strings.TrimSpace(row) == "" {
			continue
		}
		rows = append(rows, row)
	}

	headerTokens := EstimateTokens(header)
	available := t.config.MaxTokens - headerTokens - t.config.OverlapTokens
	if available <= 0 || len(rows) == 0 {
		// The header dominates the budget, or there is nothing to batch.
		return packProse(content, section, source, t.config)
	}

	avgRowTokens := 0
	for _, row := range rows {
		avgRowTokens += EstimateTokens(row)
	}
	avgRowTokens /= len(rows)
	if avgRowTokens < 1 {
		avgRowTokens = 1
	}

	rowsPerChunk := available / avgRowTokens
	if rowsPerChunk < 1 {
		rowsPerChunk = 1
	}

	var chunks []Chunk
	for _, group := range groupRows(rows, rowsPerChunk) {
		chunks = append(chunks, newChunk(header+"\n"+strings.Join(group, "\n"), section, source))
	}
	return chunks
}

// groupRows batches rows with a trailing-row overlap carried between
// consecutive batches. The overlap is at least one row so neighboring
// batches always share context, and the trailing remainder always becomes a
// final batch.
func groupRows(rows []string, rowsPerChunk int) [][]string {
	if len(rows) == 0 {
		return nil
	}

	overlap := rowsPerChunk / 2
	if overlap < 1 {
		overlap = 1
	}

	var (
		groups  [][]string
		current []string
	)

	for _, row := range rows {
		current = append(current, row)

		if len(current) >= rowsPerChunk {
			groups = append(groups, current)

			carry := overlap
			if carry > len(current) {
				carry = len(current)
			}
			current = append([]string(nil), current[len(current)-carry:]...)
		}
	}

	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}
