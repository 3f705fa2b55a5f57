// Package pipeline orchestrates the staged runs: directory walk and
// per-document analysis, then taxonomy synthesis, then plan generation.
// Every stage reads the previous stage's persisted artifact, so a crashed
// run restarts from the last completed stage.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tobi-alade/docsorter/internal/extract"
	"github.com/tobi-alade/docsorter/internal/index"
)

// ErrNoEligibleFiles means the walk found nothing with a supported
// extension under the root directory.
var ErrNoEligibleFiles = errors.New("no eligible files found")

// Stats aggregates one indexing run.
type Stats struct {
	Scanned  int // directory entries visited
	Matched  int // eligible files discovered
	Analyzed int
	Failed   int // extraction failures
	Skipped  int // empty documents
	Reused   int // records served from the ledger
}

// Analyzer produces exactly one record per file and never fails the walk.
type Analyzer interface {
	Analyze(ctx context.Context, path string) index.Record
}

// Indexer walks a root directory and analyzes every eligible file. With
// workers > 1 documents are analyzed concurrently by a bounded pool; each
// document's own sub-steps stay strictly ordered, and the results keep
// discovery order regardless of worker count.
type Indexer struct {
	analyzer Analyzer
	ledger   *index.Ledger // optional; enables commit-per-record and resume
	workers  int
	resume   bool
	logger   *slog.Logger
}

func NewIndexer(analyzer Analyzer, ledger *index.Ledger, workers int, resume bool, logger *slog.Logger) *Indexer {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		analyzer: analyzer,
		ledger:   ledger,
		workers:  workers,
		resume:   resume,
		logger:   logger,
	}
}

// BuildIndex enumerates eligible files under root and returns one record
// per file, in discovery order. Ineligible and hidden files are ignored
// silently; per-file analysis failures become records, never walk aborts.
func (ix *Indexer) BuildIndex(ctx context.Context, root string) ([]index.Record, Stats, error) {
	start := time.Now()

	paths, stats, err := ix.discover(root)
	if err != nil {
		return nil, stats, err
	}
	if len(paths) == 0 {
		return nil, stats, fmt.Errorf("%w under %s", ErrNoEligibleFiles, root)
	}

	var runID string
	if ix.ledger != nil {
		if runID, err = ix.ledger.BeginRun(ctx, root); err != nil {
			return nil, stats, err
		}
	}

	records := make([]index.Record, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)

	for i, path := range paths {
		g.Go(func() error {
			// Stop launching new analyses once the run is cancelled;
			// in-flight ones finish on their own.
			if err := gctx.Err(); err != nil {
				return err
			}

			if ix.resume && ix.ledger != nil {
				if rec, ok, err := ix.ledger.Lookup(gctx, root, path); err == nil && ok {
					ix.logger.Debug("index.reuse", "path", path)
					rec.Reused = true
					records[i] = rec
					return nil
				}
			}

			rec := ix.analyzer.Analyze(gctx, path)
			if ix.ledger != nil {
				if err := ix.ledger.Commit(gctx, runID, root, rec); err != nil {
					ix.logger.Error("index.ledger_commit.failed", "path", path, "error", err)
				}
			}
			records[i] = rec
			return nil
		})
	}

	waitErr := g.Wait()

	if ix.ledger != nil && waitErr == nil {
		if err := ix.ledger.FinishRun(ctx, runID); err != nil {
			ix.logger.Warn("index.ledger_finish.failed", "error", err)
		}
	}

	// A cancelled run still returns what it completed.
	out := records[:0]
	for _, rec := range records {
		if rec.Status == "" {
			continue
		}
		out = append(out, rec)
		switch {
		case rec.Reused:
			stats.Reused++
		case rec.Status == index.StatusAnalyzed:
			stats.Analyzed++
		case rec.Status == index.StatusExtractionFailed, rec.Status.IsError():
			stats.Failed++
		case rec.Status == index.StatusSkipped:
			stats.Skipped++
		}
	}

	ix.logger.Info("index.build.done",
		"root", root,
		"matched", stats.Matched,
		"analyzed", stats.Analyzed,
		"failed", stats.Failed,
		"reused", stats.Reused,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, stats, waitErr
}

// discover walks root collecting eligible file paths in walk order.
func (ix *Indexer) discover(root string) ([]string, Stats, error) {
	var paths []string
	var stats Stats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			ix.logger.Warn("index.walk.error", "path", path, "error", walkErr)
			return nil // continue walking
		}
		if isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !extract.Supported(path) {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
