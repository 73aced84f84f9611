package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths holds the configuration files found during discovery.
// Missing files are empty strings, not errors.
type ConfigPaths struct {
	// User is the user-level config, e.g.
	// ~/.config/markdownlint-mcp/config.yaml.
	User string

	// Project is the nearest markdownlint config found by searching
	// upward from the working directory.
	Project string

	// Explicit is a config path given on the command line.
	Explicit string
}

// projectConfigFiles are searched in order of preference at each level.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".markdownlint.json",
	".markdownlint.yaml",
	".markdownlint.yml",
}

// vcsRootMarkers end the upward search: config above a repository root
// belongs to someone else's project.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := findProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		User:    findUserConfig(),
		Project: project,
	}, nil
}

// findUserConfig returns the user-level config path, if one exists.
func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
		path := filepath.Join(configHome, "markdownlint-mcp", name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// findProjectConfig searches upward from startDir for a markdownlint
// config file, stopping at a VCS root, the home directory, or the
// filesystem root.
func findProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}

		for _, name := range projectConfigFiles {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsJSONConfig reports whether path holds a JSON config file.
func IsJSONConfig(path string) bool {
	return filepath.Ext(path) == ".json"
}
