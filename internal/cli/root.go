// Package cli provides the Cobra command structure for markdownlint-mcp.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "markdownlint-mcp",
		Short: "Markdown style linter with auto-fix and an MCP server",
		Long: `markdownlint-mcp lints Markdown files against the familiar MD-series
style rules and fixes what it safely can. Fixes run repeatedly until the
document converges, so correctors never leave half-applied state behind.

Besides the CLI, the serve command exposes lint and fix as Model Context
Protocol tools over stdio for editor agents.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newServeCommand(info))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
