// File: pkg/merge/collector.go
package merge

import (
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"codemerge/pkg/language"
)

// collectStats counts what the walk saw but did not select.
type collectStats struct {
	skippedFiles int
	prunedDirs   int
}

// Collect walks root depth-first, siblings in lexical order, and returns the
// files accepted by the rule set in that order. Excluded directories are
// pruned before descent, so nothing inside them is ever visited. Unreadable
// paths are logged and skipped; the walk itself never fails on them.
// Symlinked directories are not followed, which also rules out cycles.
func Collect(root string, rules *Rules, table *language.Table, logger *zap.Logger) ([]SourceFile, collectStats, error) {
	var files []SourceFile
	var stats collectStats

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, stats, err
	}

	walkErr := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Cannot access path, skipping",
				zap.String("path", p),
				zap.Error(err))
			return nil
		}
		if p == absRoot {
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, p)
		if relErr != nil {
			logger.Warn("Cannot relativize path, skipping", zap.String("path", p), zap.Error(relErr))
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rules.Excluded(rel) {
				logger.Debug("Skipping excluded subtree", zap.String("dir", rel))
				stats.prunedDirs++
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks and other irregular entries are not merged.
		if !d.Type().IsRegular() {
			return nil
		}

		if rules.Excluded(rel) || !rules.Includes(rel) {
			stats.skippedFiles++
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			logger.Warn("Cannot stat file, skipping", zap.String("path", rel), zap.Error(infoErr))
			return nil
		}

		files = append(files, SourceFile{
			Path:     p,
			RelPath:  rel,
			Size:     info.Size(),
			Language: table.TagFor(p),
		})
		logger.Debug("Selected file", zap.String("path", rel), zap.Int64("sizeBytes", info.Size()))
		return nil
	})

	return files, stats, walkErr
}
