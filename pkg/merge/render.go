package merge

import (
	"path/filepath"
	"strconv"
	"strings"
)

// renderBlock produces a file's contribution to the output document: a
// heading with the root-relative path, a fenced region tagged with the
// language identifier, and a blank-line separator. Size accounting happens
// on this rendered text, not on the raw file size.
func renderBlock(f SourceFile, content string) string {
	var b strings.Builder
	b.Grow(len(content) + len(f.RelPath) + len(f.Language) + 16)
	b.WriteString("## ")
	b.WriteString(f.RelPath)
	b.WriteString("\n\n```")
	b.WriteString(f.Language)
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n```\n\n")
	return b.String()
}

// renderHeader builds the document header repeated at the top of every
// output unit. It deliberately carries no timestamp: repeated runs over an
// unchanged tree must produce byte-identical documents.
func renderHeader(sourceDir string, languages, patterns []string, fileCount int) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(filepath.Base(sourceDir))
	b.WriteString(" merged sources\n\n")
	if len(languages) > 0 {
		b.WriteString("- **Languages:** ")
		b.WriteString(strings.Join(languages, ", "))
		b.WriteString("\n")
	}
	if len(patterns) > 0 {
		b.WriteString("- **Patterns:** ")
		b.WriteString(strings.Join(patterns, ", "))
		b.WriteString("\n")
	}
	b.WriteString("- **Files:** ")
	b.WriteString(strconv.Itoa(fileCount))
	b.WriteString("\n\n---\n\n")
	return b.String()
}
