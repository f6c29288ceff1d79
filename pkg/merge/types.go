package merge

import (
	"errors"
	"fmt"

	"codemerge/pkg/language"
)

// Arguments holds the configuration for one merge run.
type Arguments struct {
	SourceDir      string   // Root directory to scan.
	Output         string   // Base path of the merged output document.
	Languages      []string // Language identifiers selecting files by extension.
	Patterns       []string // Glob patterns selecting files by name.
	IgnorePatterns []string // Glob patterns excluding files or whole subtrees.
	SplitSizeKB    int      // Split threshold in KB; 0 produces a single document.
	Workers        int      // Number of concurrent file readers.
	Force          bool     // Overwrite existing output artifacts without asking.

	Table    *language.Table // Language lookup; nil selects the built-in table.
	Reporter Reporter        // Progress observer; nil disables reporting.
}

// SourceFile is one file accepted by the rule set, in walk order.
type SourceFile struct {
	Path     string // Absolute path on disk.
	RelPath  string // Slash-normalized path relative to the scanned root.
	Size     int64  // File size in bytes at discovery time.
	Language string // Fence tag derived from the extension.
}

// Summary reports the outcome of a merge run.
type Summary struct {
	Included   int      // Files rendered into the output.
	Skipped    int      // Files visited but not selected by the rules.
	Failed     int      // Files that could not be read or decoded.
	PrunedDirs int      // Excluded subtrees never descended into.
	Units      int      // Output documents written.
	TotalBytes int64    // Bytes written across all units.
	Artifacts  []string // Paths of the written documents, in sequence order.
}

// Limits applied to the worker count; the default matches the CLI default.
const (
	DefaultWorkers = 4
	MaxWorkers     = 16
)

// ErrOutputExists signals that output artifacts are already on disk and the
// caller has not authorized overwriting them.
var ErrOutputExists = errors.New("output artifact already exists")

// ConfigError reports an invalid run configuration, detected before any
// filesystem work begins.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}
