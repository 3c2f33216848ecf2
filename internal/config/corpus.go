// Package config provides corpus-specific configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CorpusConfig describes one document collection to chunk as a unit.
// Each corpus has its own YAML file in configs/corpora/.
type CorpusConfig struct {
	// Unique corpus identifier (lowercase, hyphenated)
	Name string `yaml:"name"`

	// Human-readable display name
	DisplayName string `yaml:"display_name"`

	// Directory tree holding the corpus documents
	Root string `yaml:"root"`

	// File extensions to include when scanning the tree
	IncludeExtensions []string `yaml:"include_extensions"`

	// Paths/patterns to exclude from scanning
	ExcludePaths []string `yaml:"exclude_paths"`

	// Chunking configuration overrides
	Chunking CorpusChunkingConfig `yaml:"chunking"`
}

// CorpusChunkingConfig holds corpus-specific chunking overrides. Zero values
// leave the global setting in place.
type CorpusChunkingConfig struct {
	// Override for maximum tokens per chunk
	MaxTokens int `yaml:"max_tokens,omitempty"`

	// Override for token overlap between chunks
	OverlapTokens int `yaml:"overlap_tokens,omitempty"`

	// Override for strategy selection: auto | code | tabular | default
	Strategy string `yaml:"strategy,omitempty"`
}

// ShouldIncludeFile checks if a file should be included based on extension.
func (c *CorpusConfig) ShouldIncludeFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.IncludeExtensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if e == ext {
			return true
		}
	}
	return false
}

// ShouldExcludePath checks if a path matches any exclusion pattern.
func (c *CorpusConfig) ShouldExcludePath(path string) bool {
	for _, pattern := range c.ExcludePaths {
		// Check direct prefix match
		if strings.HasPrefix(path, pattern) {
			return true
		}

		// Check glob pattern match
		matched, err := filepath.Match(pattern, filepath.Base(path))
		if err == nil && matched {
			return true
		}

		// Check if pattern is a directory prefix
		if strings.HasSuffix(pattern, "/") {
			if strings.Contains(path, pattern) {
				return true
			}
		}
	}
	return false
}

// EffectiveChunking returns the chunking config with this corpus's overrides
// applied on top of the global settings.
func (c *CorpusConfig) EffectiveChunking(global ChunkingConfig) ChunkingConfig {
	result := global

	if c.Chunking.MaxTokens > 0 {
		result.MaxTokens = c.Chunking.MaxTokens
	}
	if c.Chunking.OverlapTokens > 0 {
		result.OverlapTokens = c.Chunking.OverlapTokens
	}
	if c.Chunking.Strategy != "" {
		result.Strategy = c.Chunking.Strategy
	}

	return result
}

// Validate checks the corpus configuration for errors.
func (c *CorpusConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}

	// Validate name format (lowercase, alphanumeric, hyphens)
	for _, r := range c.Name {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return fmt.Errorf("name must contain only lowercase letters, numbers, and hyphens")
		}
	}

	if c.Root == "" {
		return fmt.Errorf("root is required")
	}

	validStrategies := map[string]bool{
		"auto":    true,
		"code":    true,
		"tabular": true,
		"default": true,
		"":        true, // Empty uses the global setting
	}
	if !validStrategies[c.Chunking.Strategy] {
		return fmt.Errorf("invalid chunking strategy: %s", c.Chunking.Strategy)
	}

	if c.Chunking.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative")
	}
	if c.Chunking.OverlapTokens < 0 {
		return fmt.Errorf("overlap_tokens must not be negative")
	}
	if c.Chunking.MaxTokens > 0 && c.Chunking.OverlapTokens >= c.Chunking.MaxTokens {
		return fmt.Errorf("overlap_tokens must be less than max_tokens")
	}

	return nil
}

// LoadCorpusConfig loads a single corpus configuration from file.
func LoadCorpusConfig(path string) (*CorpusConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus config: %w", err)
	}

	var cfg CorpusConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse corpus config: %w", err)
	}

	applyCorpusDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("corpus config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadAllCorpora loads all corpus configurations from the config directory.
func LoadAllCorpora(configDir string) (map[string]*CorpusConfig, error) {
	corpora := make(map[string]*CorpusConfig)

	entries, err := os.ReadDir(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus config directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		path := filepath.Join(configDir, name)
		cfg, err := LoadCorpusConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}

		corpora[cfg.Name] = cfg
	}

	return corpora, nil
}

// GetCorpus loads a specific corpus configuration by name.
func GetCorpus(configDir, name string) (*CorpusConfig, error) {
	// Try common file naming patterns
	patterns := []string{
		filepath.Join(configDir, name+".yaml"),
		filepath.Join(configDir, name+".yml"),
	}

	for _, path := range patterns {
		if _, err := os.Stat(path); err == nil {
			return LoadCorpusConfig(path)
		}
	}

	// Fallback: search all files for a matching name
	corpora, err := LoadAllCorpora(configDir)
	if err != nil {
		return nil, err
	}

	if cfg, ok := corpora[name]; ok {
		return cfg, nil
	}

	return nil, fmt.Errorf("corpus not found: %s", name)
}

// applyCorpusDefaults sets default values for missing corpus configuration
// fields. The include list defaults to every format the parser understands.
func applyCorpusDefaults(cfg *CorpusConfig) {
	if cfg.DisplayName == "" {
		cfg.DisplayName = cfg.Name
	}

	if len(cfg.IncludeExtensions) == 0 {
		cfg.IncludeExtensions = []string{".txt", ".md", ".csv", ".tsv", ".json", ".pdf"}
	}

	if len(cfg.ExcludePaths) == 0 {
		cfg.ExcludePaths = []string{
			".git/",
			"vendor/",
			"node_modules/",
		}
	}
}
