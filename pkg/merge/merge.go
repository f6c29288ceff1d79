// Package merge implements the concurrent file-collection and size-bounded
// aggregation engine: it walks a directory tree, filters paths against an
// inclusion/exclusion rule set, reads the selected files through a bounded
// worker pool, and concatenates their rendered blocks in deterministic walk
// order into one or more Markdown documents.
package merge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Run executes the whole pipeline. Per-file and per-directory failures are
// logged and isolated; only configuration problems, artifact-write failures,
// and an unauthorized overwrite return an error. The returned Summary is
// valid even on error for whatever work completed.
func Run(ctx context.Context, args Arguments, logger *zap.Logger) (Summary, error) {
	start := time.Now()
	var summary Summary

	args, err := args.normalize()
	if err != nil {
		return summary, err
	}

	rules, err := CompileRules(args.Languages, args.Patterns, args.IgnorePatterns, args.Table)
	if err != nil {
		return summary, err
	}

	logger.Info("Starting merge",
		zap.String("sourceDir", args.SourceDir),
		zap.Strings("languages", args.Languages),
		zap.Strings("patterns", args.Patterns),
		zap.Int("workers", args.Workers),
		zap.Int("splitSizeKB", args.SplitSizeKB))

	files, stats, err := Collect(args.SourceDir, rules, args.Table, logger)
	if err != nil {
		return summary, fmt.Errorf("failed to collect files: %w", err)
	}
	summary.Skipped = stats.skippedFiles
	summary.PrunedDirs = stats.prunedDirs

	if len(files) == 0 {
		logger.Warn("No files matched the rule set, nothing to merge")
		return summary, nil
	}
	logger.Info("Collected files", zap.Int("count", len(files)), zap.Int("prunedDirs", stats.prunedDirs))

	if !args.Force {
		existing, err := CheckExisting(args.Output)
		if err != nil {
			return summary, err
		}
		if len(existing) > 0 {
			return summary, fmt.Errorf("%w: %s", ErrOutputExists, strings.Join(existing, ", "))
		}
	}

	args.Reporter.Discovered(len(files))

	header := renderHeader(args.SourceDir, args.Languages, args.Patterns, len(files))
	writer := newUnitWriter(args.Output, int64(args.SplitSizeKB)*1024, header, args.Reporter, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan fetchResult)
	go fetchAll(ctx, files, args.Workers, results, logger)

	// Reorder buffer: completions arrive in arbitrary order and are parked
	// until the next-expected submission index shows up, then flushed in
	// one run. Output order is therefore walk order, whatever the read
	// latencies were.
	pending := make(map[int]fetchResult, args.Workers)
	next := 0
	var fatal error

	for res := range results {
		if fatal != nil {
			continue // drain so the workers can finish
		}
		pending[res.index] = res

		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			f := files[next]
			next++

			if r.err != nil {
				logger.Warn("Failed to read file, omitting from output",
					zap.String("path", f.RelPath),
					zap.Error(r.err))
				summary.Failed++
				args.Reporter.Fetched(f.RelPath)
				continue
			}

			if err := writer.Append(renderBlock(f, r.content)); err != nil {
				fatal = err
				cancel()
				break
			}
			summary.Included++
			args.Reporter.Fetched(f.RelPath)
		}
	}

	if fatal != nil {
		return summary, fatal
	}
	if err := ctx.Err(); err != nil {
		logger.Warn("Merge aborted, unfinished output unit discarded",
			zap.Int("filesMerged", summary.Included))
		return summary, err
	}

	if err := writer.Close(); err != nil {
		return summary, err
	}

	summary.Units = len(writer.written)
	summary.TotalBytes = writer.total
	summary.Artifacts = writer.written
	args.Reporter.Done(summary)

	logger.Info("Merge completed",
		zap.Int("included", summary.Included),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Int("units", summary.Units),
		zap.Int64("totalBytes", summary.TotalBytes),
		zap.Duration("elapsed", time.Since(start)))
	return summary, nil
}
