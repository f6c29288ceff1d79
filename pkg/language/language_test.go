package language

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagFor(t *testing.T) {
	table := Builtin()

	tests := []struct {
		path string
		want string
	}{
		{"src/app.py", "python"},
		{"src/APP.PY", "python"},
		{"web/index.ts", "typescript"},
		{"web/style.css", "html"},
		{"include/defs.h", "cpp"},
		{"README", DefaultTag},
		{"data.bin", DefaultTag},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.TagFor(tt.path), "path %s", tt.path)
	}
}

func TestExtensionsFor(t *testing.T) {
	table := Builtin()

	exts, err := table.ExtensionsFor([]string{"python", "go"})
	require.NoError(t, err)
	assert.Contains(t, exts, ".py")
	assert.Contains(t, exts, ".pyx")
	assert.Contains(t, exts, ".go")
	assert.NotContains(t, exts, ".rs")

	_, err = table.ExtensionsFor([]string{"cobol"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cobol")
}

func TestLoadMergesOverBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.yaml")
	content := "kotlin:\n  - .kt\n  - kts\npython:\n  - .py\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := Load(path)
	require.NoError(t, err)

	// new language added, extension normalized with a leading dot
	assert.Equal(t, "kotlin", table.TagFor("Main.kt"))
	assert.Equal(t, "kotlin", table.TagFor("build.kts"))
	exts, err := table.ExtensionsFor([]string{"kotlin"})
	require.NoError(t, err)
	assert.Contains(t, exts, ".kt")
	assert.Contains(t, exts, ".kts")

	// custom python entry replaces the built-in extension set
	exts, err = table.ExtensionsFor([]string{"python"})
	require.NoError(t, err)
	assert.NotContains(t, exts, ".pyx")

	// untouched built-ins survive
	assert.Equal(t, "go", table.TagFor("main.go"))
}

func TestLoadRejectsEmptyEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kotlin: []\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
