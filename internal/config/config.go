// Package config provides configuration loading for the chunking tools.
// It defines a unified configuration structure for all components (chunking,
// parsing, output, logging) backed by a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config represents the global application configuration.
// All fields are loaded from configs/config.yaml.
type Config struct {
	Chunking ChunkingConfig `yaml:"chunking"`
	Parser   ParserConfig   `yaml:"parser"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ChunkingConfig holds the token budgets and strategy selection.
type ChunkingConfig struct {
	// Maximum tokens per chunk
	MaxTokens int `yaml:"max_tokens"`

	// Token overlap between consecutive chunks
	OverlapTokens int `yaml:"overlap_tokens"`

	// Strategy: auto | code | tabular | default
	Strategy string `yaml:"strategy"`
}

// ParserConfig holds document parsing settings.
type ParserConfig struct {
	// Encodings tried in order when decoding text files
	EncodingFallbacks []string `yaml:"encoding_fallbacks"`
}

// OutputConfig holds chunk output settings.
type OutputConfig struct {
	// Output format: jsonl (one chunk per line) | json (indented array)
	Format string `yaml:"format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Log level: debug | info | warn | error
	Level string `yaml:"level"`

	// Output format: json | text
	Format string `yaml:"format"`
}

// Manager handles configuration loading.
type Manager struct {
	configPath string
	config     *Config
	mu         sync.RWMutex
}

// NewManager creates a new configuration manager.
func NewManager(configPath string) *Manager {
	return &Manager{configPath: configPath}
}

// Load reads and parses the configuration file.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	m.config = &cfg
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	// Chunking defaults
	if cfg.Chunking.MaxTokens == 0 {
		cfg.Chunking.MaxTokens = 500
	}
	if cfg.Chunking.OverlapTokens == 0 {
		cfg.Chunking.OverlapTokens = 50
	}
	if cfg.Chunking.Strategy == "" {
		cfg.Chunking.Strategy = "auto"
	}

	// Parser defaults
	if len(cfg.Parser.EncodingFallbacks) == 0 {
		cfg.Parser.EncodingFallbacks = []string{"utf-8", "cp949", "euc-kr", "latin-1"}
	}

	// Output defaults
	if cfg.Output.Format == "" {
		cfg.Output.Format = "jsonl"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	validStrategies := map[string]bool{
		"auto":    true,
		"code":    true,
		"tabular": true,
		"default": true,
	}
	if !validStrategies[cfg.Chunking.Strategy] {
		return fmt.Errorf("invalid chunking strategy: %s", cfg.Chunking.Strategy)
	}
	if cfg.Chunking.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if cfg.Chunking.OverlapTokens < 0 {
		return fmt.Errorf("overlap_tokens must not be negative")
	}
	if cfg.Chunking.OverlapTokens >= cfg.Chunking.MaxTokens {
		return fmt.Errorf("overlap_tokens must be less than max_tokens")
	}

	validOutputFormats := map[string]bool{
		"jsonl": true,
		"json":  true,
	}
	if !validOutputFormats[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validLogFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid log format: %s", cfg.Logging.Format)
	}

	return nil
}

// LoadFromEnv loads configuration from the path in the CHUNKER_CONFIG env
// var, falling back to configs/config.yaml. A missing file at the fallback
// path yields the built-in defaults; an explicitly configured path must
// exist.
func LoadFromEnv() (*Config, error) {
	configPath := os.Getenv("CHUNKER_CONFIG")
	explicit := configPath != ""
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("config file: %w", err)
	}

	manager := NewManager(configPath)
	if err := manager.Load(); err != nil {
		return nil, err
	}
	return manager.Get(), nil
}
