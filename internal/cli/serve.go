package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/logging"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/mcpserver"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
	_ "github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint/rules" // Register built-in rules
)

func newServeCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve lint and fix tools over the Model Context Protocol",
		Long: `Start an MCP server on stdin/stdout exposing three tools:

  lint               Lint a markdown file and report violations
  fix                Auto-fix a file, converging to a clean state
  get_configuration  Show the resolved configuration for a directory

Intended to be launched by an MCP client; logs go to stderr.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			logger := logging.Default()

			// An MCP client talks JSON-RPC over stdin; a human at a
			// terminal is almost certainly a mistake.
			if term.IsTerminal(int(os.Stdin.Fd())) {
				logger.Warn("stdin is a terminal; this command expects an MCP client on stdio")
			}

			logger.Info("starting MCP server",
				logging.FieldVersion, info.Version)

			srv := mcpserver.New(lint.DefaultRegistry, info.Version, logger)
			if err := srv.ServeStdio(); err != nil {
				return fmt.Errorf("serve MCP: %w", err)
			}
			return nil
		},
	}
}
