package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/ui/pretty"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
)

// TextReporter formats results as styled terminal output, one block per
// file with violations.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, report *Report) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil || len(report.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		return 0, nil
	}

	total := 0
	filesWithIssues := 0
	fixed := 0

	for _, file := range report.Files {
		fixed += file.Fixed
		if file.Err != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Err)))
			continue
		}

		count := 0
		for _, rv := range file.Results {
			count += len(rv.Violations)
		}
		if count == 0 {
			continue
		}
		filesWithIssues++
		total += count

		fmt.Fprintf(r.bw, "%s %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Dim.Render(fmt.Sprintf("(%d issues)", count)))

		for _, rv := range file.Results {
			severity := string(config.SeverityWarning)
			if r.opts.Config != nil {
				severity = string(r.opts.Config.RuleSeverity(rv.RuleID))
			}
			for _, v := range rv.Violations {
				location := fmt.Sprintf("%d", v.Line)
				if v.HasRange() {
					location = fmt.Sprintf("%d:%d", v.Line, v.Column)
				}
				line := fmt.Sprintf("  %s  %s  %s  %s",
					r.styles.Location.Render(fmt.Sprintf("%-7s", location)),
					r.styles.Severity(severity).Render(fmt.Sprintf("%-7s", severity)),
					r.styles.RuleID.Render(fmt.Sprintf("%s/%s", rv.RuleID, rv.RuleName)),
					r.styles.Message.Render(v.Message))
				if rv.Fixable {
					line += "  " + r.styles.Fixable.Render("[fixable]")
				}
				fmt.Fprintln(r.bw, line)
			}
		}
		fmt.Fprintln(r.bw)
	}

	r.writeSummary(len(report.Files), filesWithIssues, total, fixed)
	return total, nil
}

func (r *TextReporter) writeSummary(files, filesWithIssues, total, fixed int) {
	if fixed > 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render(
			fmt.Sprintf("Fixed %d issues.", fixed)))
	}
	if total == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render(
			fmt.Sprintf("%d files checked, no issues found.", files)))
		return
	}
	fmt.Fprintln(r.bw, r.styles.Failure.Render(
		fmt.Sprintf("%d files checked, %d issues in %d files.", files, total, filesWithIssues)))
}
