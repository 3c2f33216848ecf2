// Package ingest coordinates the document pipeline: read -> parse -> chunk.
// It processes batches of files concurrently and collects per-file results
// for output.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ragforge/doc-chunker/internal/chunker"
	"github.com/ragforge/doc-chunker/internal/config"
	"github.com/ragforge/doc-chunker/internal/parser"
)

// defaultWorkers is the concurrency used when the caller does not set one.
const defaultWorkers = 4

// Runner drives the parse-then-chunk pipeline over document files. One
// runner is safe for concurrent use; the same chunking facade serves all
// workers.
type Runner struct {
	parser  *parser.Parser
	chunker *chunker.DomainAwareChunker
	workers int
	logger  *slog.Logger
	cache   *Cache
}

// FileResult holds the outcome of processing one input file. Err is set
// when the file failed; the other fields describe the successful path.
type FileResult struct {
	// Input path as given by the caller
	Path string

	// Base name of the path, used as the chunk source identifier
	Source string

	// Number of sections the parser produced
	Sections int

	// Chunks produced for this file
	Chunks []chunker.Chunk

	// True when the cache showed the file unchanged and chunking was skipped
	Skipped bool

	// Wall time spent on this file
	Duration time.Duration

	// Failure, when the file could not be processed
	Err error
}

// NewRunner creates a pipeline runner from the application configuration.
// The chunking strategy is validated here, so an unknown pinned strategy
// fails before any file is read.
func NewRunner(cfg *config.Config, workers int, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = defaultWorkers
	}

	facade, err := chunker.NewDomainAwareChunker(
		chunker.Config{
			MaxTokens:     cfg.Chunking.MaxTokens,
			OverlapTokens: cfg.Chunking.OverlapTokens,
		},
		chunker.Strategy(cfg.Chunking.Strategy),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("create chunker: %w", err)
	}

	return &Runner{
		parser:  parser.NewParser(cfg.Parser.EncodingFallbacks),
		chunker: facade,
		workers: workers,
		logger:  logger,
	}, nil
}

// SetCache attaches a content-hash cache. Files whose hash matches the
// cached entry are skipped on subsequent runs, and cache entries for files
// no longer present in the batch are pruned at the start of Run.
func (r *Runner) SetCache(c *Cache) {
	r.cache = c
}

// Run processes the given files concurrently and returns one result per
// file, in input order. A file that fails to parse or chunk is recorded in
// its result and logged; it does not abort the batch. The returned error is
// non-nil only when the context is canceled.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	if r.cache != nil {
		r.pruneStale(paths)
	}

	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = r.processFile(path)
			if results[i].Err != nil {
				r.logger.Error("file failed",
					"path", path,
					"error", results[i].Err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// processFile runs the pipeline for a single file.
func (r *Runner) processFile(path string) FileResult {
	start := time.Now()
	result := FileResult{
		Path:   path,
		Source: filepath.Base(path),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("read file: %w", err)
		return result
	}

	var contentHash string
	if r.cache != nil {
		sum := sha256.Sum256(data)
		contentHash = hex.EncodeToString(sum[:])

		if !r.cache.HasChanged(path, contentHash) {
			r.logger.Debug("file unchanged, skipping", "path", path)
			result.Skipped = true
			result.Duration = time.Since(start)
			return result
		}
	}

	sections, err := r.parser.Parse(result.Source, data)
	if err != nil {
		result.Err = fmt.Errorf("parse: %w", err)
		return result
	}
	result.Sections = len(sections)

	chunks, err := r.chunker.Chunk(sections, result.Source)
	if err != nil {
		result.Err = fmt.Errorf("chunk: %w", err)
		return result
	}

	if r.cache != nil {
		chunkIDs := make([]string, len(chunks))
		for i, c := range chunks {
			chunkIDs[i] = c.ID
		}

		var modTime time.Time
		if info, err := os.Stat(path); err == nil {
			modTime = info.ModTime()
		}

		r.cache.Set(path, CacheEntry{
			ContentHash: contentHash,
			ModTime:     modTime,
			ChunkedAt:   time.Now(),
			ChunkIDs:    chunkIDs,
		})
	}

	result.Chunks = chunks
	result.Duration = time.Since(start)
	return result
}

// pruneStale removes cache entries for files that are no longer part of the
// batch, so deleted documents do not linger in the cache file.
func (r *Runner) pruneStale(paths []string) {
	current := make(map[string]bool, len(paths))
	for _, p := range paths {
		current[p] = true
	}

	var pruned int
	for _, cached := range r.cache.GetAllFiles() {
		if !current[cached] {
			r.cache.Delete(cached)
			pruned++
		}
	}

	if pruned > 0 {
		r.logger.Info("pruned stale cache entries", "count", pruned)
	}
}
