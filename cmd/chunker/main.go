// Chunker CLI - batch document chunking tool
//
// Usage:
//
//	chunker report.pdf                     # chunk one file to stdout
//	chunker -out chunks.jsonl docs/*.md    # write chunks to a file
//	chunker -strategy tabular export.txt   # pin a strategy
//	chunker -max-tokens 300 notes.txt      # override the chunk budget
//	chunker -corpus docs                   # chunk a configured corpus
//	chunker -corpus docs -cache-dir .cache # skip files unchanged since last run
//
// Chunks are written as JSON, one object per line by default. Logs go to
// stderr so the output stream stays clean.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ragforge/doc-chunker/internal/chunker"
	"github.com/ragforge/doc-chunker/internal/config"
	"github.com/ragforge/doc-chunker/internal/ingest"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: $CHUNKER_CONFIG or configs/config.yaml)")
	outPath := flag.String("out", "", "Output file (default: stdout)")
	strategy := flag.String("strategy", "", "Chunking strategy: auto | code | tabular | default")
	maxTokens := flag.Int("max-tokens", 0, "Maximum tokens per chunk")
	overlapTokens := flag.Int("overlap-tokens", -1, "Token overlap between chunks")
	outputFormat := flag.String("format", "", "Output format: jsonl | json")
	workers := flag.Int("workers", 0, "Number of concurrent workers")
	corpusName := flag.String("corpus", "", "Chunk a configured corpus instead of explicit files")
	corporaDir := flag.String("corpora-dir", "configs/corpora", "Directory holding corpus config files")
	cacheDir := flag.String("cache-dir", "", "Cache directory for incremental runs (corpus mode only)")
	full := flag.Bool("full", false, "Re-chunk every file, ignoring the cache")
	flag.Parse()

	files := flag.Args()
	if *corpusName == "" && len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one input file or -corpus is required")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  chunker report.pdf                     # chunk one file to stdout")
		fmt.Fprintln(os.Stderr, "  chunker -out chunks.jsonl docs/*.md    # write chunks to a file")
		fmt.Fprintln(os.Stderr, "  chunker -strategy tabular export.txt   # pin a strategy")
		fmt.Fprintln(os.Stderr, "  chunker -corpus docs                   # chunk a configured corpus")
		os.Exit(1)
	}
	if *corpusName != "" && len(files) > 0 {
		fmt.Fprintln(os.Stderr, "Error: -corpus cannot be combined with file arguments")
		os.Exit(1)
	}
	if *cacheDir != "" && *corpusName == "" {
		fmt.Fprintln(os.Stderr, "Error: -cache-dir requires -corpus")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Corpus overrides sit between the config file and the command line
	var corpus *config.CorpusConfig
	if *corpusName != "" {
		corpus, err = config.GetCorpus(*corporaDir, *corpusName)
		if err != nil {
			slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load corpus", "corpus", *corpusName, "error", err)
			os.Exit(1)
		}
		cfg.Chunking = corpus.EffectiveChunking(cfg.Chunking)
	}

	// Command line flags override the file
	if *strategy != "" {
		cfg.Chunking.Strategy = *strategy
	}
	if *maxTokens > 0 {
		cfg.Chunking.MaxTokens = *maxTokens
	}
	if *overlapTokens >= 0 {
		cfg.Chunking.OverlapTokens = *overlapTokens
	}
	if *outputFormat != "" {
		cfg.Output.Format = *outputFormat
	}

	logger := newLogger(cfg.Logging)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	runner, err := ingest.NewRunner(cfg, *workers, logger)
	if err != nil {
		logger.Error("failed to create runner", "error", err)
		os.Exit(1)
	}

	var cache *ingest.Cache
	if corpus != nil {
		files, err = ingest.Discover(ctx, corpus)
		if err != nil {
			logger.Error("failed to discover corpus files", "corpus", corpus.Name, "error", err)
			os.Exit(1)
		}
		logger.Info("corpus discovered",
			"corpus", corpus.Name,
			"root", corpus.Root,
			"files", len(files))

		if *cacheDir != "" {
			cache, err = ingest.NewCache(*cacheDir, corpus.Name)
			if err != nil {
				logger.Error("failed to open cache", "error", err)
				os.Exit(1)
			}
			if *full {
				cache.Clear()
			}
			runner.SetCache(cache)
		}
	}

	results, err := runner.Run(ctx, files)
	if err != nil {
		logger.Error("chunking aborted", "error", err)
		os.Exit(1)
	}

	if cache != nil {
		if err := cache.Save(); err != nil {
			logger.Warn("failed to save cache", "error", err)
		}
	}

	out := io.Writer(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			logger.Error("failed to create output file", "path", *outPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := writeChunks(out, results, cfg.Output.Format); err != nil {
		logger.Error("failed to write output", "error", err)
		os.Exit(1)
	}

	// Print summary
	totalChunks := 0
	totalSections := 0
	skipped := 0
	var failed []ingest.FileResult
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result)
			continue
		}
		if result.Skipped {
			skipped++
			continue
		}
		totalChunks += len(result.Chunks)
		totalSections += result.Sections
	}

	fmt.Fprintln(os.Stderr, "\n=== Chunking Summary ===")
	fmt.Fprintf(os.Stderr, "Files processed: %d\n", len(results)-len(failed)-skipped)
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Files skipped (unchanged): %d\n", skipped)
	}
	fmt.Fprintf(os.Stderr, "Sections parsed: %d\n", totalSections)
	fmt.Fprintf(os.Stderr, "Chunks created: %d\n", totalChunks)

	if len(failed) > 0 {
		fmt.Fprintf(os.Stderr, "Errors: %d\n", len(failed))
		for _, result := range failed {
			fmt.Fprintf(os.Stderr, "  - %s: %v\n", result.Path, result.Err)
		}
		os.Exit(1)
	}

	logger.Info("chunking completed successfully")
}

// loadConfig loads the explicit config path when given, otherwise falls back
// to the environment lookup.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	manager := config.NewManager(path)
	if err := manager.Load(); err != nil {
		return nil, err
	}
	return manager.Get(), nil
}

// newLogger builds the process logger from the logging config. DEBUG and
// LOG_FORMAT environment variables override the configured level and format.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}

	format := cfg.Format
	if env := os.Getenv("LOG_FORMAT"); env != "" {
		format = env
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

// writeChunks writes every chunk of every successful file, in input order.
// The jsonl format emits one JSON object per line; json emits one indented
// array.
func writeChunks(out io.Writer, results []ingest.FileResult, format string) error {
	if format == "json" {
		all := make([]chunker.Chunk, 0)
		for _, result := range results {
			all = append(all, result.Chunks...)
		}
		data, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = out.Write(data)
		return err
	}

	enc := json.NewEncoder(out)
	for _, result := range results {
		for _, chunk := range result.Chunks {
			if err := enc.Encode(chunk); err != nil {
				return err
			}
		}
	}
	return nil
}
