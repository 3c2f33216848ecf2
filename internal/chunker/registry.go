// Package chunker provides the strategy registry mapping file types to
// chunking strategies.
package chunker

import (
	"fmt"
	"path/filepath"
	"strings"
)

// extensionStrategies maps lowercased file extensions to strategy names.
// Extensions not listed here select the default strategy.
var extensionStrategies = map[string]Strategy{
	// Code files
	"py":    StrategyCode,
	"pyi":   StrategyCode,
	"js":    StrategyCode,
	"jsx":   StrategyCode,
	"ts":    StrategyCode,
	"tsx":   StrategyCode,
	"java":  StrategyCode,
	"go":    StrategyCode,
	"rs":    StrategyCode,
	"cpp":   StrategyCode,
	"c":     StrategyCode,
	"h":     StrategyCode,
	"cs":    StrategyCode,
	"php":   StrategyCode,
	"rb":    StrategyCode,
	"swift": StrategyCode,
	"kt":    StrategyCode,
	"scala": StrategyCode,
	"sh":    StrategyCode,
	"bash":  StrategyCode,
	"zsh":   StrategyCode,
	"sql":   StrategyCode,

	// Tabular files
	"csv":  StrategyTabular,
	"tsv":  StrategyTabular,
	"xlsx": StrategyTabular,
	"xls":  StrategyTabular,

	// Documents
	"txt":  StrategyDefault,
	"md":   StrategyDefault,
	"pdf":  StrategyDefault,
	"docx": StrategyDefault,
	"doc":  StrategyDefault,
	"rtf":  StrategyDefault,
	"html": StrategyDefault,
	"json": StrategyDefault,
	"xml":  StrategyDefault,
	"yaml": StrategyDefault,
	"yml":  StrategyDefault,
}

// Registry maps file extensions and content hints to chunking strategies and
// creates chunkers configured with its token budgets.
type Registry struct {
	config Config
}

// NewRegistry creates a registry whose chunkers use the given budgets.
func NewRegistry(cfg Config) *Registry {
	return &Registry{config: cfg.withDefaults()}
}

// GetStrategy returns the strategy for a source name. A non-empty content
// hint wins over extension detection; an extension not in the map selects
// the default strategy.
func (r *Registry) GetStrategy(source string, hint Strategy) Strategy {
	if hint != "" {
		return hint
	}
	if strategy, ok := extensionStrategies[extension(source)]; ok {
		return strategy
	}
	return StrategyDefault
}

// CreateChunker creates a chunker for the given strategy. Unknown strategy
// names are an error, never silently replaced with the default.
func (r *Registry) CreateChunker(strategy Strategy) (Chunker, error) {
	switch strategy {
	case StrategyCode:
		return NewCodeChunker(r.config), nil
	case StrategyTabular:
		return NewTabularChunker(r.config), nil
	case StrategyDefault:
		return NewDefaultChunker(r.config), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(strategy))
	}
}

// extension returns the lowercased file extension without the dot.
func extension(source string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(source)), ".")
}
