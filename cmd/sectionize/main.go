// Sectionize CLI - inspect how documents parse into sections
//
// Runs only the parsing stage of the pipeline and prints the resulting
// sections, one JSON object per input file. Useful for checking what the
// chunking engine will see before tuning budgets or strategies.
//
// Usage:
//
//	sectionize report.pdf              # print sections as JSON lines
//	sectionize -pretty notes.md        # indented output
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ragforge/doc-chunker/internal/config"
	"github.com/ragforge/doc-chunker/internal/document"
	"github.com/ragforge/doc-chunker/internal/parser"
)

// fileSections is the output record for one parsed file.
type fileSections struct {
	File     string             `json:"file"`
	Sections []document.Section `json:"sections"`
}

func main() {
	configPath := flag.String("config", "", "Path to config file (default: $CHUNKER_CONFIG or configs/config.yaml)")
	pretty := flag.Bool("pretty", false, "Indent the JSON output")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one input file is required")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  sectionize report.pdf          # print sections as JSON lines")
		fmt.Fprintln(os.Stderr, "  sectionize -pretty notes.md    # indented output")
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	p := parser.NewParser(cfg.Parser.EncodingFallbacks)
	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	hasErrors := false
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Error("failed to read file", "path", file, "error", err)
			hasErrors = true
			continue
		}

		sections, err := p.Parse(file, data)
		if err != nil {
			logger.Error("failed to parse file", "path", file, "error", err)
			hasErrors = true
			continue
		}

		if err := enc.Encode(fileSections{File: file, Sections: sections}); err != nil {
			logger.Error("failed to write output", "error", err)
			os.Exit(1)
		}
	}

	if hasErrors {
		os.Exit(1)
	}
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
