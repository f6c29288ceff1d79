package merge

import (
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter observes pipeline progress. It is a pure observer: the pipeline
// never waits on it and its absence changes nothing about the output.
type Reporter interface {
	Discovered(files int)
	Fetched(relPath string)
	UnitWritten(path string, size int64)
	Done(s Summary)
}

type nopReporter struct{}

func (nopReporter) Discovered(int)           {}
func (nopReporter) Fetched(string)           {}
func (nopReporter) UnitWritten(string, int64) {}
func (nopReporter) Done(Summary)             {}

// NewReporter returns a terminal progress bar when enabled and stderr is a
// terminal, and a no-op reporter otherwise.
func NewReporter(enabled bool) Reporter {
	if !enabled || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nopReporter{}
	}
	return &barReporter{}
}

// barReporter renders a best-effort progress bar over fetched files. Bar
// errors are ignored; rendering problems must never affect the pipeline.
type barReporter struct {
	bar *progressbar.ProgressBar
}

func (r *barReporter) Discovered(files int) {
	r.bar = progressbar.NewOptions(files,
		progressbar.OptionSetDescription("merging"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *barReporter) Fetched(string) {
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

func (r *barReporter) UnitWritten(string, int64) {}

func (r *barReporter) Done(Summary) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}
