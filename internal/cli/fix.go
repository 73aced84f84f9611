package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/logging"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/fsutil"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/reporter"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/runner"
)

type fixFlags struct {
	format string
	ignore []string
	rules  []string
	dryRun bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Auto-fix Markdown style issues",
		Long: `Fix Markdown style issues in place.

Correctors run repeatedly until the document converges. Files are
rewritten atomically, and a file that changes on disk mid-fix is left
alone. Detection-only issues are reported but never touched.

Examples:
  markdownlint-mcp fix                     # Fix current directory
  markdownlint-mcp fix README.md           # Fix one file
  markdownlint-mcp fix --dry-run           # Show what would change
  markdownlint-mcp fix --rules MD009,MD012 # Fix only specific rules`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&flags.rules, "rules", nil, "rule IDs or names to fix")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "report fixes without writing files")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, flags *fixFlags) error {
	cliCfg := &config.Config{
		Format:   config.OutputFormat(flags.format),
		Ignore:   flags.ignore,
		FixRules: flags.rules,
		DryRun:   flags.dryRun,
	}

	loaded, err := resolveConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	color, _ := cmd.Flags().GetString("color")
	rep, err := reporter.New(cfg.Format, reporter.Options{
		Writer: os.Stdout,
		Color:  color,
		Config: cfg,
	})
	if err != nil {
		return err
	}

	logger := logging.Default()
	report := &reporter.Report{}
	remaining := 0

	for _, root := range roots {
		files, err := fsutil.DiscoverMarkdown(ctx, root, cfg.Ignore)
		if err != nil {
			report.Files = append(report.Files, reporter.FileReport{Err: err})
			continue
		}
		for _, file := range files {
			outcome, err := runner.FixFile(ctx, file, lint.DefaultRegistry, cfg, cfg.FixRules, cfg.DryRun)
			if err != nil {
				report.Files = append(report.Files, reporter.FileReport{Path: file, Err: err})
				continue
			}

			logger.Debug("fixed file",
				logging.FieldPath, file,
				logging.FieldFixed, outcome.Result.Fixed,
				logging.FieldIterations, outcome.Result.Iterations,
				logging.FieldReason, string(outcome.Result.Reason))

			remaining += lint.CountViolations(outcome.Result.After)
			report.Files = append(report.Files, reporter.FileReport{
				Path:    file,
				Results: outcome.Result.After,
				Fixed:   outcome.Result.Fixed,
			})
		}
	}

	if cfg.DryRun {
		logger.Info("dry run: no files written")
	}

	if _, err := rep.Report(ctx, report); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if remaining > 0 {
		return ErrLintIssuesFound
	}
	return nil
}
