// Package runner executes lint and fix passes over files on disk. It
// owns the read-check-write cycle so the engine packages stay pure.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/fix"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/fsutil"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// ErrModifiedDuringFix is returned when a file changed on disk between
// reading it and writing the fixed content.
var ErrModifiedDuringFix = errors.New("file modified during fix")

// finalNewlineRuleID is the rule owning the trailing newline of a file.
// The line model cannot represent a missing final newline, so the runner
// reports and repairs it on the rule's behalf.
const finalNewlineRuleID = "MD047"

// LintResult holds the outcome of linting one file.
type LintResult struct {
	Path    string
	Lines   []string
	Results []lint.RuleViolations
}

// LintFile reads and lints a single file.
func LintFile(ctx context.Context, path string, reg *lint.Registry, cfg *config.Config) (*LintResult, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	lines, trailingNewline := lint.SplitLines(string(content))
	results := lint.Detect(reg, lines, cfg, nil)
	if !trailingNewline && len(content) > 0 {
		results = appendFinalNewlineViolation(reg, cfg, results, len(lines))
	}

	return &LintResult{Path: path, Lines: lines, Results: results}, nil
}

// appendFinalNewlineViolation reports a missing final newline under the
// owning rule.
func appendFinalNewlineViolation(reg *lint.Registry, cfg *config.Config, results []lint.RuleViolations, lastLine int) []lint.RuleViolations {
	rule, ok := reg.GetByID(finalNewlineRuleID)
	if !ok || (cfg != nil && !cfg.RuleEnabled(finalNewlineRuleID)) {
		return results
	}

	violation := lint.NewViolation(lastLine, "File should end with a single newline character")
	for i, rv := range results {
		if rv.RuleID == finalNewlineRuleID {
			results[i].Violations = append(rv.Violations, violation)
			return results
		}
	}
	results = append(results, lint.RuleViolations{
		RuleID:     rule.ID(),
		RuleName:   rule.Name(),
		Fixable:    rule.CanFix(),
		Violations: []lint.Violation{violation},
	})
	return results
}

// FixOutcome holds the result of fixing one file.
type FixOutcome struct {
	Path    string
	Result  fix.Result
	Written bool
}

// FixFile reads a file, runs the fix loop, and writes the corrected
// content back atomically. With dryRun set the file is never written.
// A nil or empty ids slice means every enabled fixable rule.
func FixFile(ctx context.Context, path string, reg *lint.Registry, cfg *config.Config, ids []string, dryRun bool) (*FixOutcome, error) {
	content, snapshot, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	lines, trailingNewline := lint.SplitLines(string(content))
	result := fix.Run(reg, lines, cfg, ids, 0)

	addNewline := !trailingNewline && len(content) > 0 && fixesFinalNewline(reg, cfg, ids)
	outcome := &FixOutcome{Path: path, Result: result}
	if !result.Changed && !addNewline {
		return outcome, nil
	}
	if dryRun {
		return outcome, nil
	}

	modified, err := snapshot.Modified(ctx)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", path, err)
	}
	if modified {
		return nil, fmt.Errorf("%w: %s", ErrModifiedDuringFix, path)
	}

	text := lint.JoinLines(result.Lines, trailingNewline || addNewline)
	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(text), snapshot.Mode)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	outcome.Written = written
	return outcome, nil
}

// fixesFinalNewline reports whether the final newline rule participates
// in this fix run.
func fixesFinalNewline(reg *lint.Registry, cfg *config.Config, ids []string) bool {
	if cfg != nil && !cfg.RuleEnabled(finalNewlineRuleID) {
		return false
	}
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if canonical, _, ok := reg.Resolve(id); ok && canonical == finalNewlineRuleID {
			return true
		}
	}
	return false
}

// LintPaths lints every markdown file under the given roots, honoring
// the config's ignore patterns. Results keep discovery order with
// duplicates removed.
func LintPaths(ctx context.Context, roots []string, reg *lint.Registry, cfg *config.Config) ([]*LintResult, []error) {
	var ignore []string
	if cfg != nil {
		ignore = cfg.Ignore
	}

	var results []*LintResult
	var errs []error
	seen := make(map[string]bool)

	for _, root := range roots {
		files, err := fsutil.DiscoverMarkdown(ctx, root, ignore)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, file := range files {
			if seen[file] {
				continue
			}
			seen[file] = true
			result, err := LintFile(ctx, file, reg, cfg)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			results = append(results, result)
		}
	}
	return results, errs
}
