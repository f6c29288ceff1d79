// File: pkg/merge/fetcher.go
package merge

import (
	"bytes"
	"context"
	"errors"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// errNotText marks content the merger cannot represent inside a code fence.
var errNotText = errors.New("content is not decodable text")

// fetchResult carries one file's outcome, tagged with its submission index
// so the aggregator can replay completions in input order.
type fetchResult struct {
	index   int
	content string
	err     error
}

// fetchAll reads files with at most workers simultaneous reads and sends one
// result per issued read on out, in whatever order they complete. The
// channel is closed once every issued read has finished. Cancelling ctx
// stops new reads from being issued; reads already running drain normally.
// Read failures travel inside the result and never abort sibling reads.
func fetchAll(ctx context.Context, files []SourceFile, workers int, out chan<- fetchResult, logger *zap.Logger) {
	defer close(out)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range files {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			content, err := readFileText(files[i].Path)
			select {
			case out <- fetchResult{index: i, content: content, err: err}:
			case <-gctx.Done():
			}
			return nil
		})
	}

	_ = g.Wait()
	logger.Debug("All read workers finished")
}

// readFileText loads a file fully into memory and verifies that it is
// decodable text. The handle is released on every path by os.ReadFile.
func readFileText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if isBinary(data) {
		return "", errNotText
	}
	return string(data), nil
}

// isBinary reports whether content cannot be merged as text: it contains a
// NUL byte or is not valid UTF-8.
func isBinary(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}
