package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codemerge/pkg/language"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func relPaths(files []SourceFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

func TestCollectDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"c.py":     "c",
		"a.py":     "a",
		"b/x.py":   "x",
		"b/a/y.py": "y",
	})

	rules := compile(t, []string{"python"}, nil, nil)
	files, _, err := Collect(root, rules, language.Builtin(), zap.NewNop())
	require.NoError(t, err)

	// depth-first, siblings lexical
	assert.Equal(t, []string{"a.py", "b/a/y.py", "b/x.py", "c.py"}, relPaths(files))
	assert.Equal(t, "python", files[0].Language)
	assert.Equal(t, int64(1), files[0].Size)
}

func TestCollectPrunesExcludedSubtree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":                 "a",
		"node_modules/big.py":  "should never be visited",
		"node_modules/d/e.py":  "nor this",
		"src/node_modules/f.py": "pruned at any depth",
		"src/ok.py":            "ok",
	})

	rules := compile(t, []string{"python"}, nil, []string{"node_modules"})
	files, stats, err := Collect(root, rules, language.Builtin(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py", "src/ok.py"}, relPaths(files))
	assert.Equal(t, 2, stats.prunedDirs)
	assert.Zero(t, stats.skippedFiles, "pruned subtrees contribute no per-file skips")
}

func TestCollectSkipsExcludedAndUnmatchedFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":        "a",
		"b/ignore.tmp": "t",
		"notes.txt":   "n",
	})

	rules := compile(t, []string{"python"}, nil, []string{"*.tmp"})
	files, stats, err := Collect(root, rules, language.Builtin(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py"}, relPaths(files))
	assert.Equal(t, 2, stats.skippedFiles)
}

func TestCollectDoesNotFollowSymlinkedDirs(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "a"})
	writeTree(t, outside, map[string]string{"linked.py": "l"})

	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	rules := compile(t, []string{"python"}, nil, nil)
	files, _, err := Collect(root, rules, language.Builtin(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py"}, relPaths(files))
}
