// File: pkg/merge/matcher.go
package merge

import (
	"path"
	"strings"

	"github.com/gobwas/glob"

	"codemerge/pkg/language"
)

// pattern is one compiled glob rule. A pattern containing a path separator
// is applied to the full slash-normalized relative path; otherwise it is
// applied to the base name only.
type pattern struct {
	g        glob.Glob
	raw      string
	fullPath bool
}

func (p pattern) match(relPath, base string) bool {
	if p.fullPath {
		return p.g.Match(relPath)
	}
	return p.g.Match(base)
}

// Rules is the compiled inclusion/exclusion rule set. A path is included
// iff it satisfies at least one inclusion predicate (extension set or
// include glob) and no exclusion predicate. Rules carries no state and is
// safe for concurrent use.
type Rules struct {
	extensions map[string]struct{}
	include    []pattern
	ignore     []pattern
}

// CompileRules resolves language identifiers against the lookup table and
// compiles the include and ignore globs. Invalid patterns and unknown
// languages surface as ConfigError.
func CompileRules(languages, includes, ignores []string, table *language.Table) (*Rules, error) {
	exts, err := table.ExtensionsFor(languages)
	if err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}

	r := &Rules{extensions: exts}
	if r.include, err = compilePatterns(includes); err != nil {
		return nil, err
	}
	if r.ignore, err = compilePatterns(ignores); err != nil {
		return nil, err
	}
	return r, nil
}

func compilePatterns(raw []string) ([]pattern, error) {
	patterns := make([]pattern, 0, len(raw))
	for _, p := range raw {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, configErrorf("invalid glob pattern %q: %v", p, err)
		}
		patterns = append(patterns, pattern{g: g, raw: p, fullPath: strings.Contains(p, "/")})
	}
	return patterns, nil
}

// Includes reports whether a file at the given relative path satisfies the
// inclusion predicates. Extension matching is case-insensitive.
func (r *Rules) Includes(relPath string) bool {
	base := path.Base(relPath)

	if _, ok := r.extensions[strings.ToLower(path.Ext(base))]; ok {
		return true
	}
	for _, p := range r.include {
		if p.match(relPath, base) {
			return true
		}
	}
	return false
}

// Excluded reports whether a relative path matches any exclusion predicate.
// It applies to files and directories alike; an excluded directory prunes
// its whole subtree.
func (r *Rules) Excluded(relPath string) bool {
	base := path.Base(relPath)
	for _, p := range r.ignore {
		if p.match(relPath, base) {
			return true
		}
	}
	return false
}
