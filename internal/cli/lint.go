package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/configloader"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/logging"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/fsutil"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
	_ "github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint/rules" // Register built-in rules
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/reporter"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/runner"
)

type lintFlags struct {
	format string
	ignore []string
	watch  bool
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Markdown files",
		Long: `Lint Markdown files for style issues.

Without arguments, lints all markdown files under the current directory.

Examples:
  markdownlint-mcp lint                  # Lint current directory
  markdownlint-mcp lint docs/ README.md  # Lint specific paths
  markdownlint-mcp lint --format json    # Machine-readable output for CI
  markdownlint-mcp lint --watch          # Re-lint on file changes`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "watch files and re-lint on change")

	return cmd
}

// resolveConfig loads configuration with CLI flags layered on top.
func resolveConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfigLoad, err)
	}

	logger := logging.Default()
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loaded.LoadedFrom)
	}
	return loaded, nil
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
	cliCfg := &config.Config{
		Format: config.OutputFormat(flags.format),
		Ignore: flags.ignore,
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

	if flags.watch {
		return watchLint(ctx, roots, cfg, rep)
	}

	total, err := lintOnce(ctx, roots, cfg, rep)
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrLintIssuesFound
	}
	return nil
}

// lintOnce runs a single lint pass over roots and reports it.
func lintOnce(ctx context.Context, roots []string, cfg *config.Config, rep reporter.Reporter) (int, error) {
	results, errs := runner.LintPaths(ctx, roots, lint.DefaultRegistry, cfg)

	report := &reporter.Report{}
	for _, result := range results {
		report.Files = append(report.Files, reporter.FileReport{
			Path:    result.Path,
			Results: result.Results,
		})
	}
	for _, err := range errs {
		report.Files = append(report.Files, reporter.FileReport{Err: err})
	}

	total, err := rep.Report(ctx, report)
	if err != nil {
		return 0, fmt.Errorf("report: %w", err)
	}
	return total, nil
}

// watchLint re-lints whenever a markdown file under roots changes.
// The pass always covers all roots: a change in one file can affect
// nothing else, but re-discovering keeps new and deleted files honest.
func watchLint(ctx context.Context, roots []string, cfg *config.Config, rep reporter.Reporter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	logger := logging.Default()
	if err := addWatchDirs(watcher, roots); err != nil {
		return err
	}

	if _, err := lintOnce(ctx, roots, cfg, rep); err != nil {
		return err
	}
	logger.Info("watching for changes", logging.FieldFiles, roots)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			// New directories need watching too.
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}
			if !fsutil.IsMarkdownFile(event.Name) {
				continue
			}
			logger.Debug("change detected", logging.FieldPath, event.Name)
			if _, err := lintOnce(ctx, roots, cfg, rep); err != nil {
				return err
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, watchErr)
		}
	}
}

// addWatchDirs registers every directory under roots with the watcher.
func addWatchDirs(watcher *fsnotify.Watcher, roots []string) error {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			if err := watcher.Add(filepath.Dir(root)); err != nil {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			continue
		}
		walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if base := filepath.Base(path); base == ".git" || base == "node_modules" || base == "vendor" {
					return filepath.SkipDir
				}
				return watcher.Add(path)
			}
			return nil
		})
		if walkErr != nil {
			return fmt.Errorf("watch %s: %w", root, walkErr)
		}
	}
	return nil
}
