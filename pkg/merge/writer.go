// File: pkg/merge/writer.go
package merge

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// unitWriter accumulates rendered blocks into size-bounded output units.
// Each unit is buffered in memory and hits the disk only when finalized, so
// an aborted run never leaves a partial document behind.
type unitWriter struct {
	base       string // output path of unit 1; later units derive from it
	splitLimit int64  // bytes per unit; 0 means a single unbounded unit
	header     string // document header opening every unit

	buf      bytes.Buffer
	blocks   int // blocks in the unit being built
	index    int // 1-based sequence index of the unit being built
	written  []string
	total    int64
	logger   *zap.Logger
	reporter Reporter
}

func newUnitWriter(base string, splitLimit int64, header string, reporter Reporter, logger *zap.Logger) *unitWriter {
	w := &unitWriter{
		base:       base,
		splitLimit: splitLimit,
		header:     header,
		index:      1,
		logger:     logger,
		reporter:   reporter,
	}
	w.buf.WriteString(header)
	return w
}

// Append adds one rendered block to the current unit, finalizing it first
// when the block would push the unit past the split limit and the unit
// already holds at least one block. A block larger than the limit by itself
// therefore occupies exactly one unit; blocks are never split mid-file.
func (w *unitWriter) Append(block string) error {
	if w.splitLimit > 0 && w.blocks > 0 && int64(w.buf.Len()+len(block)) > w.splitLimit {
		if err := w.finalize(); err != nil {
			return err
		}
	}
	w.buf.WriteString(block)
	w.blocks++
	return nil
}

// Close finalizes the unit in progress. Units that hold no blocks are never
// written.
func (w *unitWriter) Close() error {
	if w.blocks == 0 {
		return nil
	}
	return w.finalize()
}

// finalize writes the buffered unit to its artifact in one operation and
// starts the next unit. Write failures are fatal to the run.
func (w *unitWriter) finalize() error {
	name := unitName(w.base, w.index)
	size := int64(w.buf.Len())

	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(name, w.buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output unit %s: %w", name, err)
	}

	w.logger.Info("Finalized output unit",
		zap.String("path", name),
		zap.Int64("sizeBytes", size),
		zap.Int("blocks", w.blocks))
	w.reporter.UnitWritten(name, size)

	w.written = append(w.written, name)
	w.total += size
	w.index++
	w.blocks = 0
	w.buf.Reset()
	w.buf.WriteString(w.header)
	return nil
}

// unitName derives the artifact name for a unit. The first unit keeps the
// base name; later units embed their sequence index before the extension.
func unitName(base string, index int) string {
	if index == 1 {
		return base
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_%d%s", stem, index, ext)
}

// CheckExisting reports output artifacts already on disk for the given base
// name, including split siblings from earlier runs. Callers decide whether
// to overwrite or abort; the writer itself never silently overwrites.
func CheckExisting(base string) ([]string, error) {
	var existing []string
	if _, err := os.Stat(base); err == nil {
		existing = append(existing, base)
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	siblings, err := filepath.Glob(fmt.Sprintf("%s_*%s", stem, ext))
	if err != nil {
		return nil, err
	}
	existing = append(existing, siblings...)
	return existing, nil
}

// RemoveArtifacts deletes stale output files before an authorized overwrite,
// so leftovers from a longer previous run cannot linger next to new units.
func RemoveArtifacts(paths []string, logger *zap.Logger) error {
	for _, p := range paths {
		logger.Warn("Removing existing output artifact", zap.String("path", p))
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing artifact %s: %w", p, err)
		}
	}
	return nil
}
