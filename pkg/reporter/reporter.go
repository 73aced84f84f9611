// Package reporter formats lint results for terminals and machines.
package reporter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// bufWriterSize is the buffer size for output writers (64 KiB).
const bufWriterSize = 64 * 1024

// FileReport holds one file's results.
type FileReport struct {
	Path    string
	Results []lint.RuleViolations

	// Fixed is the number of violations removed when fixing.
	Fixed int

	// Err is set when the file could not be processed.
	Err error
}

// Report is the full result set handed to a Reporter.
type Report struct {
	Files []FileReport
}

// TotalViolations counts remaining violations across all files.
func (r *Report) TotalViolations() int {
	total := 0
	for _, file := range r.Files {
		total += lint.CountViolations(file.Results)
	}
	return total
}

// Reporter formats and writes a Report.
type Reporter interface {
	// Report writes formatted output and returns the number of issues
	// reported.
	Report(ctx context.Context, report *Report) (int, error)
}

// Options configures reporter construction.
type Options struct {
	// Writer is the destination, typically os.Stdout.
	Writer io.Writer

	// Color controls colorized output: "auto", "always", or "never".
	Color string

	// Config resolves per-rule severity. Nil means all defaults.
	Config *config.Config
}

// New creates a Reporter for the given output format.
func New(format config.OutputFormat, opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Color == "" {
		opts.Color = "auto"
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatText, "":
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}
