package fsutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Directories never descended into during discovery.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// IsMarkdownFile reports whether path has a markdown extension.
func IsMarkdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown":
		return true
	}
	return false
}

// Ignored reports whether relPath matches any of the glob patterns.
// Patterns match against the slash-separated relative path, each path
// segment, and any directory prefix, so "docs/**" style configs behave
// the way users expect without a full glob engine.
func Ignored(relPath string, patterns []string) bool {
	rel := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/**")
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
		for prefix := rel; prefix != "." && prefix != "/"; prefix = filepath.ToSlash(filepath.Dir(prefix)) {
			if ok, _ := filepath.Match(pattern, prefix); ok {
				return true
			}
		}
	}
	return false
}

// DiscoverMarkdown walks root and returns every markdown file not
// excluded by the ignore patterns, in walk order. A root that is itself
// a file is returned as-is when it is markdown.
func DiscoverMarkdown(ctx context.Context, root string, ignore []string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	root = abs

	if stat, statErr := os.Stat(root); statErr == nil && !stat.IsDir() {
		if IsMarkdownFile(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if skipDirs[d.Name()] || Ignored(rel, ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsMarkdownFile(path) || Ignored(rel, ignore) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}
	return files, nil
}
