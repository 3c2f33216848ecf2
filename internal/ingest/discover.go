package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ragforge/doc-chunker/internal/config"
)

// Discover walks the corpus root and returns the paths of all files that
// match the corpus include/exclude rules. Paths are returned in lexical
// walk order, so repeated runs over an unchanged tree see the same list.
func Discover(ctx context.Context, corpus *config.CorpusConfig) ([]string, error) {
	root := corpus.Root

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("corpus root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus root is not a directory: %s", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		// Exclusion rules match against the relative path
		if corpus.ShouldExcludePath(relPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if corpus.ShouldIncludeFile(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk corpus root: %w", err)
	}

	return files, nil
}
