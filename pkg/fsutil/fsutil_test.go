package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "# Title\n")

	content, snap, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", string(content))
	require.NotNil(t, snap)
	assert.Equal(t, path, snap.Path)
	assert.Equal(t, int64(len(content)), snap.Size)
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(dir, "missing.md"))
	assert.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(context.Background(), dir)
	assert.ErrorIs(t, err, fsutil.ErrIsDirectory)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = fsutil.ReadFile(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSnapshotModified(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "original\n")

	_, snap, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	modified, err := snap.Modified(context.Background())
	require.NoError(t, err)
	assert.False(t, modified)

	require.NoError(t, os.WriteFile(path, []byte("rewritten by someone else\n"), 0o644))
	modified, err = snap.Modified(context.Background())
	require.NoError(t, err)
	assert.True(t, modified)
}

func TestSnapshotModifiedDeletion(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "content\n")

	_, snap, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	modified, err := snap.Modified(context.Background())
	require.NoError(t, err)
	assert.True(t, modified)
}

func TestSnapshotNil(t *testing.T) {
	t.Parallel()

	var snap *fsutil.Snapshot
	_, err := snap.Modified(context.Background())
	assert.ErrorIs(t, err, fsutil.ErrNilSnapshot)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new content\n"), 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content\n", string(content))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomicPreservesMode(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "old\n")
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new\n"), 0o600))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "same\n")

	wrote, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("same\n"), 0)
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("different\n"), 0)
	require.NoError(t, err)
	assert.True(t, wrote)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "different\n", string(content))
}

func TestIsMarkdownFile(t *testing.T) {
	t.Parallel()

	assert.True(t, fsutil.IsMarkdownFile("README.md"))
	assert.True(t, fsutil.IsMarkdownFile("notes.MARKDOWN"))
	assert.True(t, fsutil.IsMarkdownFile("a/b/c.mdown"))
	assert.False(t, fsutil.IsMarkdownFile("main.go"))
	assert.False(t, fsutil.IsMarkdownFile("md"))
}

func TestIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rel      string
		patterns []string
		want     bool
	}{
		{"no patterns", "docs/readme.md", nil, false},
		{"exact match", "CHANGELOG.md", []string{"CHANGELOG.md"}, true},
		{"basename match", "docs/CHANGELOG.md", []string{"CHANGELOG.md"}, true},
		{"directory prefix", "vendor/pkg/readme.md", []string{"vendor/**"}, true},
		{"direct child glob", "docs/api.md", []string{"docs/*.md"}, true},
		{"unrelated", "docs/api.md", []string{"vendor/**"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fsutil.Ignored(tt.rel, tt.patterns))
		})
	}
}

func TestDiscoverMarkdown(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "readme.md", "# hi\n")
	writeFile(t, root, "main.go", "package main\n")

	sub := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "guide.md", "# guide\n")

	skipped := filepath.Join(root, "node_modules")
	require.NoError(t, os.Mkdir(skipped, 0o755))
	writeFile(t, skipped, "dep.md", "# dep\n")

	files, err := fsutil.DiscoverMarkdown(context.Background(), root, nil)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(root, "docs", "guide.md"), files[0])
	assert.Equal(t, filepath.Join(root, "readme.md"), files[1])
}

func TestDiscoverMarkdownIgnorePatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "readme.md", "# hi\n")

	sub := filepath.Join(root, "drafts")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "wip.md", "# wip\n")

	files, err := fsutil.DiscoverMarkdown(context.Background(), root, []string{"drafts/**"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(root, "readme.md"), files[0])
}

func TestDiscoverMarkdownSingleFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	md := writeFile(t, root, "doc.md", "# hi\n")
	other := writeFile(t, root, "doc.txt", "hi\n")

	files, err := fsutil.DiscoverMarkdown(context.Background(), md, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{md}, files)

	files, err = fsutil.DiscoverMarkdown(context.Background(), other, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}
