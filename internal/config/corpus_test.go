package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCorpusConfig(t *testing.T) {
	path := writeCorpusFile(t, t.TempDir(), "manuals.yaml", `
name: manuals
display_name: Service Manuals
root: /data/manuals
include_extensions:
  - .md
  - .pdf
exclude_paths:
  - "archive/"
  - "*.bak"
chunking:
  max_tokens: 350
  overlap_tokens: 35
  strategy: default
`)

	cfg, err := LoadCorpusConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "manuals", cfg.Name)
	assert.Equal(t, "Service Manuals", cfg.DisplayName)
	assert.Equal(t, "/data/manuals", cfg.Root)
	assert.Equal(t, []string{".md", ".pdf"}, cfg.IncludeExtensions)
	assert.Equal(t, []string{"archive/", "*.bak"}, cfg.ExcludePaths)
	assert.Equal(t, 350, cfg.Chunking.MaxTokens)
	assert.Equal(t, 35, cfg.Chunking.OverlapTokens)
	assert.Equal(t, "default", cfg.Chunking.Strategy)
}

func TestLoadCorpusConfigDefaults(t *testing.T) {
	path := writeCorpusFile(t, t.TempDir(), "docs.yaml", "name: docs\nroot: ./docs\n")

	cfg, err := LoadCorpusConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.DisplayName)
	assert.Equal(t, []string{".txt", ".md", ".csv", ".tsv", ".json", ".pdf"}, cfg.IncludeExtensions)
	assert.Equal(t, []string{".git/", "vendor/", "node_modules/"}, cfg.ExcludePaths)
	assert.Zero(t, cfg.Chunking.MaxTokens)
	assert.Empty(t, cfg.Chunking.Strategy)
}

func TestLoadCorpusConfigMissingFile(t *testing.T) {
	_, err := LoadCorpusConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read corpus config")
}

func TestCorpusConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "root: ./docs\n",
			wantErr: "name is required",
		},
		{
			name:    "bad name characters",
			content: "name: My Docs\nroot: ./docs\n",
			wantErr: "lowercase letters",
		},
		{
			name:    "missing root",
			content: "name: docs\n",
			wantErr: "root is required",
		},
		{
			name:    "unknown strategy",
			content: "name: docs\nroot: ./docs\nchunking:\n  strategy: semantic\n",
			wantErr: "invalid chunking strategy",
		},
		{
			name:    "negative max tokens",
			content: "name: docs\nroot: ./docs\nchunking:\n  max_tokens: -10\n",
			wantErr: "max_tokens must not be negative",
		},
		{
			name:    "overlap not below max",
			content: "name: docs\nroot: ./docs\nchunking:\n  max_tokens: 100\n  overlap_tokens: 120\n",
			wantErr: "overlap_tokens must be less than max_tokens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCorpusFile(t, t.TempDir(), "corpus.yaml", tt.content)
			_, err := LoadCorpusConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCorpusShouldIncludeFile(t *testing.T) {
	cfg := &CorpusConfig{
		// One spelled with the dot, one without
		IncludeExtensions: []string{".md", "txt"},
	}

	assert.True(t, cfg.ShouldIncludeFile("docs/guide.md"))
	assert.True(t, cfg.ShouldIncludeFile("NOTES.TXT"))
	assert.False(t, cfg.ShouldIncludeFile("data/export.csv"))
	assert.False(t, cfg.ShouldIncludeFile("Makefile"))
}

func TestCorpusShouldExcludePath(t *testing.T) {
	cfg := &CorpusConfig{
		ExcludePaths: []string{"drafts/", "*.tmp", "internal"},
	}

	// Directory prefix
	assert.True(t, cfg.ShouldExcludePath("drafts/plan.md"))
	// Directory pattern anywhere in the path
	assert.True(t, cfg.ShouldExcludePath("docs/drafts/old.md"))
	// Glob against the base name
	assert.True(t, cfg.ShouldExcludePath("docs/scratch.tmp"))
	// Plain prefix
	assert.True(t, cfg.ShouldExcludePath("internal/readme.md"))

	assert.False(t, cfg.ShouldExcludePath("docs/guide.md"))
}

func TestCorpusEffectiveChunking(t *testing.T) {
	global := ChunkingConfig{MaxTokens: 500, OverlapTokens: 50, Strategy: "auto"}

	t.Run("no overrides keeps global", func(t *testing.T) {
		cfg := &CorpusConfig{}
		assert.Equal(t, global, cfg.EffectiveChunking(global))
	})

	t.Run("partial override", func(t *testing.T) {
		cfg := &CorpusConfig{Chunking: CorpusChunkingConfig{MaxTokens: 300}}
		got := cfg.EffectiveChunking(global)
		assert.Equal(t, 300, got.MaxTokens)
		assert.Equal(t, 50, got.OverlapTokens)
		assert.Equal(t, "auto", got.Strategy)
	})

	t.Run("full override", func(t *testing.T) {
		cfg := &CorpusConfig{Chunking: CorpusChunkingConfig{
			MaxTokens:     200,
			OverlapTokens: 20,
			Strategy:      "tabular",
		}}
		got := cfg.EffectiveChunking(global)
		assert.Equal(t, ChunkingConfig{MaxTokens: 200, OverlapTokens: 20, Strategy: "tabular"}, got)
	})
}

func TestLoadAllCorpora(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "docs.yaml", "name: docs\nroot: ./docs\n")
	writeCorpusFile(t, dir, "wiki.yml", "name: wiki\nroot: ./wiki\n")
	writeCorpusFile(t, dir, "readme.txt", "not a corpus config\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	corpora, err := LoadAllCorpora(dir)
	require.NoError(t, err)

	require.Len(t, corpora, 2)
	assert.Contains(t, corpora, "docs")
	assert.Contains(t, corpora, "wiki")
}

func TestLoadAllCorporaInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "bad.yaml", "name: BAD NAME\nroot: ./x\n")

	_, err := LoadAllCorpora(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestGetCorpus(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "docs.yaml", "name: docs\nroot: ./docs\n")
	// File name does not match the corpus name inside it
	writeCorpusFile(t, dir, "legacy.yaml", "name: archive\nroot: ./archive\n")

	cfg, err := GetCorpus(dir, "docs")
	require.NoError(t, err)
	assert.Equal(t, "docs", cfg.Name)

	// Found by scanning when no file is named after the corpus
	cfg, err = GetCorpus(dir, "archive")
	require.NoError(t, err)
	assert.Equal(t, "archive", cfg.Name)

	_, err = GetCorpus(dir, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corpus not found")
}
