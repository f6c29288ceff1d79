// Package language maps language identifiers to file-extension sets, used
// both to select files and to tag the code fences in the merged output.
package language

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// DefaultTag is the fence tag used for extensions no language claims.
const DefaultTag = "plaintext"

// extensions owned by each supported language identifier.
var builtinExtensions = map[string][]string{
	"python":     {".py", ".pyw", ".pyx"},
	"java":       {".java"},
	"cpp":        {".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx", ".h"},
	"javascript": {".js", ".jsx", ".ts", ".tsx"},
	"go":         {".go"},
	"rust":       {".rs"},
	"c":          {".c", ".h"},
	"html":       {".html", ".htm", ".css"},
	"shell":      {".sh", ".bash", ".zsh"},
	"csharp":     {".cs"},
	"php":        {".php", ".phtml", ".php3", ".php4", ".php5", ".phps"},
}

// fence tag per extension. Not derivable from builtinExtensions: ".h" is
// claimed by both c and cpp, ".ts"/".tsx" fence as typescript, and ".css"
// falls under the html group.
var builtinTags = map[string]string{
	".py": "python", ".pyw": "python", ".pyx": "python",
	".java": "java",
	".cpp":  "cpp", ".cc": "cpp", ".cxx": "cpp",
	".hpp": "cpp", ".hh": "cpp", ".hxx": "cpp", ".h": "cpp",
	".js": "javascript", ".jsx": "javascript",
	".ts": "typescript", ".tsx": "typescript",
	".go": "go",
	".rs": "rust",
	".c":  "c",
	".html": "html", ".htm": "html", ".css": "html",
	".sh": "shell", ".bash": "shell", ".zsh": "shell",
	".cs":  "csharp",
	".php": "php", ".phtml": "php", ".php3": "php",
	".php4": "php", ".php5": "php", ".phps": "php",
}

// Table is an immutable language lookup, built once at startup.
type Table struct {
	extensions map[string][]string // language identifier -> extensions
	tags       map[string]string   // extension -> fence tag
}

// Builtin returns the table of supported languages.
func Builtin() *Table {
	return &Table{extensions: builtinExtensions, tags: builtinTags}
}

// Load merges a YAML file of the form `tag: [.ext, ...]` over the built-in
// table. Extensions are normalized to lowercase with a leading dot; entries
// for an existing language replace its built-in extension set.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read languages file: %w", err)
	}

	var custom map[string][]string
	if err := yaml.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("failed to parse languages file %s: %w", path, err)
	}

	extensions := make(map[string][]string, len(builtinExtensions)+len(custom))
	for tag, exts := range builtinExtensions {
		extensions[tag] = exts
	}
	tags := make(map[string]string, len(builtinTags))
	for ext, tag := range builtinTags {
		tags[ext] = tag
	}

	for tag, exts := range custom {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || len(exts) == 0 {
			return nil, fmt.Errorf("languages file %s: entry %q has no extensions", path, tag)
		}
		normalized := make([]string, 0, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized = append(normalized, ext)
			tags[ext] = tag
		}
		extensions[tag] = normalized
	}

	return &Table{extensions: extensions, tags: tags}, nil
}

// ExtensionsFor resolves language identifiers to the union of their
// extension sets. Unknown identifiers are an error naming the supported set.
func (t *Table) ExtensionsFor(languages []string) (map[string]struct{}, error) {
	exts := make(map[string]struct{})
	for _, lang := range languages {
		list, ok := t.extensions[strings.ToLower(lang)]
		if !ok {
			return nil, fmt.Errorf("unsupported language %q (supported: %s)", lang, strings.Join(t.Tags(), ", "))
		}
		for _, ext := range list {
			exts[ext] = struct{}{}
		}
	}
	return exts, nil
}

// TagFor returns the fence tag for a path's extension, matching
// case-insensitively, or DefaultTag when no language claims it.
func (t *Table) TagFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if tag, ok := t.tags[ext]; ok {
		return tag
	}
	return DefaultTag
}

// Tags returns the sorted list of supported language identifiers.
func (t *Table) Tags() []string {
	tags := make([]string, 0, len(t.extensions))
	for tag := range t.extensions {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
