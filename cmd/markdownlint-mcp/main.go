// Package main is the entry point for the markdownlint-mcp CLI and
// MCP server.
package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/cli"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/logging"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/fsutil"

	// Import rules package to register built-in rules via init().
	_ "github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint/rules"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// MCP clients commonly configure servers through a local .env file.
	// Missing files are fine.
	_ = godotenv.Load()

	if level := os.Getenv("MDLINTMCP_LOG_LEVEL"); level != "" {
		logging.SetLevel(level)
	}

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrLintIssuesFound is just a signal for the exit code.
		if errors.Is(err, cli.ErrLintIssuesFound) {
			return cli.ExitLintIssues
		}

		logging.Default().Error("command failed", logging.FieldError, err)
		switch {
		case errors.Is(err, cli.ErrConfigLoad):
			return cli.ExitConfigError
		case errors.Is(err, fsutil.ErrNotFound),
			errors.Is(err, fsutil.ErrPermissionDenied),
			errors.Is(err, fsutil.ErrIsDirectory):
			return cli.ExitIOError
		default:
			return cli.ExitInternalError
		}
	}

	return cli.ExitSuccess
}
