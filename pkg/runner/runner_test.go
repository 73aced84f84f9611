package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/fsutil"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint/rules"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/runner"
)

func newRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	rules.RegisterAll(reg)
	return reg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func findResult(results []lint.RuleViolations, ruleID string) (lint.RuleViolations, bool) {
	for _, rv := range results {
		if rv.RuleID == ruleID {
			return rv, true
		}
	}
	return lint.RuleViolations{}, false
}

func TestLintFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "# Title\n\nSome text.  \n")

	result, err := runner.LintFile(context.Background(), path, newRegistry(), nil)
	require.NoError(t, err)
	assert.Equal(t, path, result.Path)
	assert.Len(t, result.Lines, 3)

	rv, ok := findResult(result.Results, "MD009")
	require.True(t, ok)
	require.Len(t, rv.Violations, 1)
	assert.Equal(t, 3, rv.Violations[0].Line)
}

func TestLintFileMissingFinalNewline(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "# Title\n\nSome text.")

	result, err := runner.LintFile(context.Background(), path, newRegistry(), nil)
	require.NoError(t, err)

	rv, ok := findResult(result.Results, "MD047")
	require.True(t, ok)
	require.Len(t, rv.Violations, 1)
	assert.Equal(t, 3, rv.Violations[0].Line)
	assert.Contains(t, rv.Violations[0].Message, "newline")
}

func TestLintFileFinalNewlineDisabled(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "# Title")

	off := false
	cfg := &config.Config{Rules: map[string]config.RuleConfig{
		"MD047": {Enabled: &off},
	}}

	result, err := runner.LintFile(context.Background(), path, newRegistry(), cfg)
	require.NoError(t, err)

	_, ok := findResult(result.Results, "MD047")
	assert.False(t, ok)
}

func TestLintFileNotFound(t *testing.T) {
	t.Parallel()

	_, err := runner.LintFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"), newRegistry(), nil)
	assert.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestFixFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "#Heading\nSome text.  \n")

	outcome, err := runner.FixFile(context.Background(), path, newRegistry(), nil, nil, false)
	require.NoError(t, err)
	assert.True(t, outcome.Written)
	assert.True(t, outcome.Result.Changed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Heading\n\nSome text.\n", string(content))
}

func TestFixFileDryRun(t *testing.T) {
	t.Parallel()

	original := "Some text.  \n"
	path := writeFile(t, t.TempDir(), "doc.md", original)

	outcome, err := runner.FixFile(context.Background(), path, newRegistry(), nil, nil, true)
	require.NoError(t, err)
	assert.False(t, outcome.Written)
	assert.True(t, outcome.Result.Changed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestFixFileClean(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "# Title\n\nAll good.\n")

	outcome, err := runner.FixFile(context.Background(), path, newRegistry(), nil, nil, false)
	require.NoError(t, err)
	assert.False(t, outcome.Written)
	assert.False(t, outcome.Result.Changed)
}

func TestFixFileAddsFinalNewline(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "# Title\n\nNo newline at end.")

	outcome, err := runner.FixFile(context.Background(), path, newRegistry(), nil, nil, false)
	require.NoError(t, err)
	assert.True(t, outcome.Written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nNo newline at end.\n", string(content))
}

func TestFixFilePreservesMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("Some text.  \n"), 0o600))

	outcome, err := runner.FixFile(context.Background(), path, newRegistry(), nil, nil, false)
	require.NoError(t, err)
	assert.True(t, outcome.Written)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A second run finds nothing to do and leaves the file alone.
	outcome, err = runner.FixFile(context.Background(), path, newRegistry(), nil, nil, false)
	require.NoError(t, err)
	assert.False(t, outcome.Written)
	assert.False(t, outcome.Result.Changed)
}

func TestFixFileRestrictedIDs(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "#Heading\nSome text.  \n")

	outcome, err := runner.FixFile(context.Background(), path, newRegistry(), nil, []string{"MD009"}, false)
	require.NoError(t, err)
	assert.True(t, outcome.Written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	// Only the trailing spaces rule ran; the heading stays broken.
	assert.Equal(t, "#Heading\nSome text.\n", string(content))
}

func TestLintPaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.md", "# A\n\ntext  \n")
	writeFile(t, root, "b.md", "# B\n\nclean text\n")
	writeFile(t, root, "notes.txt", "not markdown\n")

	reg := newRegistry()
	results, errs := runner.LintPaths(context.Background(), []string{root}, reg, nil)
	assert.Empty(t, errs)
	require.Len(t, results, 2)

	// Passing the same root twice must not duplicate results.
	results, errs = runner.LintPaths(context.Background(), []string{root, root}, reg, nil)
	assert.Empty(t, errs)
	assert.Len(t, results, 2)
}

func TestLintPathsIgnorePatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "keep.md", "# Keep\n")
	writeFile(t, root, "skip.md", "# Skip\n")

	cfg := &config.Config{Ignore: []string{"skip.md"}}
	results, errs := runner.LintPaths(context.Background(), []string{root}, newRegistry(), cfg)
	assert.Empty(t, errs)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(root, "keep.md"), results[0].Path)
}
