package merge

import (
	"os"

	"codemerge/pkg/language"
)

// normalize validates the run configuration and fills in defaults. It is the
// only place configuration failures are produced; everything after it deals
// in per-file errors.
func (a Arguments) normalize() (Arguments, error) {
	if a.SourceDir == "" {
		return a, configErrorf("source directory is required")
	}
	info, err := os.Stat(a.SourceDir)
	if err != nil || !info.IsDir() {
		return a, configErrorf("source path does not exist or is not a directory: %s", a.SourceDir)
	}

	if len(a.Languages) == 0 && len(a.Patterns) == 0 {
		return a, configErrorf("at least one language or file pattern must be specified")
	}

	if a.Output == "" {
		return a, configErrorf("output path is required")
	}

	if a.SplitSizeKB < 0 {
		return a, configErrorf("split size must be >= 0, got %d", a.SplitSizeKB)
	}

	if a.Workers <= 0 {
		a.Workers = DefaultWorkers
	}
	if a.Workers > MaxWorkers {
		a.Workers = MaxWorkers
	}

	if a.Table == nil {
		a.Table = language.Builtin()
	}
	if a.Reporter == nil {
		a.Reporter = nopReporter{}
	}

	return a, nil
}
