package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCUE(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPatterns_Directory(t *testing.T) {
	result, errs := LoadPatterns(filepath.Join("testdata", "patterns"), LoadModeCollectAll)
	require.Empty(t, errs)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.FileCount)
	require.Len(t, result.Patterns, 3)
	assert.Equal(t, "person", result.Patterns[0].Name)
	assert.Equal(t, "company", result.Patterns[1].Name)
	assert.Equal(t, "anyone", result.Patterns[2].Name)

	def, ok := result.Find("company")
	require.True(t, ok)
	assert.Equal(t, []string{"Company"}, def.Labels)

	_, ok = result.Find("missing")
	assert.False(t, ok)
}

func TestLoadPatterns_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCUE(t, dir, "one.cue", `pattern: p: { variable: "p", conditions: { b: 1, a: 2 } }`)

	result, errs := LoadPatterns(path, LoadModeFailFast)
	require.Empty(t, errs)
	require.Len(t, result.Patterns, 1)
	assert.Equal(t, []string{"b", "a"}, result.Patterns[0].Conditions.Keys())
}

func TestLoadPatterns_PathErrors(t *testing.T) {
	dir := t.TempDir()
	emptyDir := filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(emptyDir, 0755))
	notCUE := writeCUE(t, dir, "notes.txt", "hello")
	broken := writeCUE(t, dir, "broken.cue", "pattern: {")

	tests := []struct {
		name     string
		path     string
		wantCode string
	}{
		{"missing path", filepath.Join(dir, "nope"), ErrCodeNotFound},
		{"empty directory", emptyDir, ErrCodeNoFiles},
		{"not a cue file", notCUE, ErrCodeNoFiles},
		{"syntax error", broken, ErrCodeBuildFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, errs := LoadPatterns(tt.path, LoadModeCollectAll)
			assert.Nil(t, result)
			require.Len(t, errs, 1)

			var loadErr *LoadError
			require.True(t, errors.As(errs[0], &loadErr))
			assert.Equal(t, tt.wantCode, loadErr.Code)
		})
	}
}

func TestLoadPatterns_NoDefinitions(t *testing.T) {
	path := writeCUE(t, t.TempDir(), "empty.cue", `other: 1`)

	result, errs := LoadPatterns(path, LoadModeCollectAll)
	require.NotNil(t, result)
	require.Len(t, errs, 1)

	var loadErr *LoadError
	require.True(t, errors.As(errs[0], &loadErr))
	assert.Equal(t, ErrCodeNoPatterns, loadErr.Code)
}

func TestLoadPatterns_Modes(t *testing.T) {
	path := writeCUE(t, t.TempDir(), "bad.cue", `
pattern: {
	a: { variable: 1 }
	b: { labels: [true] }
	c: { variable: "c" }
}
`)

	_, failFast := LoadPatterns(path, LoadModeFailFast)
	require.Len(t, failFast, 1)

	result, all := LoadPatterns(path, LoadModeCollectAll)
	require.Len(t, all, 2)
	require.Len(t, result.Patterns, 1)

	var first, second *LoadError
	require.True(t, errors.As(all[0], &first))
	require.True(t, errors.As(all[1], &second))
	assert.Equal(t, ErrCodeInvalidVariable, first.Code)
	assert.Contains(t, first.Message, "pattern.a")
	assert.Equal(t, ErrCodeInvalidLabels, second.Code)
	assert.True(t, first.Pos.IsValid())
	assert.NotEmpty(t, first.Location())
}

func TestMapFieldToErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeInvalidVariable, MapFieldToErrorCode("variable"))
	assert.Equal(t, ErrCodeInvalidLabels, MapFieldToErrorCode("labels"))
	assert.Equal(t, ErrCodeInvalidConditions, MapFieldToErrorCode("conditions"))
	assert.Equal(t, ErrCodeInvalidExpanded, MapFieldToErrorCode("expanded"))
	assert.Equal(t, ErrCodeInvalidPattern, MapFieldToErrorCode("pattern"))
	assert.Equal(t, ErrCodeGeneric, MapFieldToErrorCode("cue"))
}
