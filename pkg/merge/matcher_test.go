package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codemerge/pkg/language"
)

func compile(t *testing.T, languages, includes, ignores []string) *Rules {
	t.Helper()
	rules, err := CompileRules(languages, includes, ignores, language.Builtin())
	require.NoError(t, err)
	return rules
}

func TestIncludesByLanguage(t *testing.T) {
	rules := compile(t, []string{"python"}, nil, nil)

	assert.True(t, rules.Includes("a.py"))
	assert.True(t, rules.Includes("sub/dir/b.pyw"))
	assert.True(t, rules.Includes("A.PY"), "extension match is case-insensitive")
	assert.False(t, rules.Includes("a.go"))
	assert.False(t, rules.Includes("README"))
}

func TestIncludesByPattern(t *testing.T) {
	rules := compile(t, nil, []string{"*.cpp", "*test*.py"}, nil)

	assert.True(t, rules.Includes("main.cpp"))
	assert.True(t, rules.Includes("deep/nested/main.cpp"), "base-name pattern applies at any depth")
	assert.True(t, rules.Includes("unit_test_io.py"))
	assert.False(t, rules.Includes("main.py"))
}

func TestIncludePatternWithSeparatorMatchesFullPath(t *testing.T) {
	rules := compile(t, nil, []string{"src/*.go"}, nil)

	assert.True(t, rules.Includes("src/main.go"))
	assert.False(t, rules.Includes("main.go"))
	assert.False(t, rules.Includes("other/main.go"))
}

func TestExcluded(t *testing.T) {
	rules := compile(t, []string{"python"}, nil, []string{"*.tmp", "node_modules"})

	assert.True(t, rules.Excluded("scratch.tmp"))
	assert.True(t, rules.Excluded("b/scratch.tmp"))
	assert.True(t, rules.Excluded("node_modules"), "directory exclusion by base name")
	assert.True(t, rules.Excluded("deps/node_modules"))
	assert.False(t, rules.Excluded("a.py"))
}

func TestCompileRulesErrors(t *testing.T) {
	_, err := CompileRules([]string{"cobol"}, nil, nil, language.Builtin())
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)

	_, err = CompileRules(nil, []string{"[unclosed"}, nil, language.Builtin())
	require.ErrorAs(t, err, &cfgErr)
}
