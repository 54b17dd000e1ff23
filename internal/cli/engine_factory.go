package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/arbor"
)

// OpenEngine resolves the document under path, builds an engine with the
// given options and performs the initial load. Inspection commands use it
// for one-shot reads where no session or persistence is involved.
func OpenEngine(ctx context.Context, path string, opts ...arbor.Option) (*arbor.Engine, error) {
	docPath, err := resolveDocument(path)
	if err != nil {
		return nil, err
	}

	engine, err := arbor.New(docPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	if err := engine.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load outline: %w", err)
	}

	return engine, nil
}

// createEngine initializes an Arbor engine with standard CLI conventions.
func createEngine(opts RunOptions, logger *slog.Logger) (*arbor.Engine, error) {
	docPath, err := resolveDocument(opts.DirPath)
	if err != nil {
		return nil, err
	}

	engineOpts := []arbor.Option{
		arbor.WithLogger(logger),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, arbor.WithLifecycleHooks(createDebugHooks(logger)))
	}

	engine, err := arbor.New(docPath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return engine, nil
}

// resolveDocument maps a path argument to a loadable document. Files pass
// through untouched; a directory is probed for a document by convention:
// outline.*, then index.*, then a file named after the directory itself.
// A directory without a conventional entrypoint but holding loose supported
// documents resolves to itself, and the source merges them as siblings.
func resolveDocument(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	names := []string{"outline", "index", filepath.Base(path)}
	extensions := []string{".yaml", ".yml", ".json"}
	for _, name := range names {
		for _, ext := range extensions {
			candidate := filepath.Join(path, name+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	if dirHasDocuments(path, extensions) {
		return path, nil
	}

	return "", fmt.Errorf("no outline document in %s (looked for outline/index/%s with .yaml, .yml or .json)",
		path, filepath.Base(path))
}

// dirHasDocuments reports whether dir directly contains at least one file
// with one of the given extensions.
func dirHasDocuments(dir string, extensions []string) bool {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		for _, want := range extensions {
			if ext == want {
				return true
			}
		}
	}
	return false
}
