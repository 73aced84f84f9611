package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult holds one file's violations.
type JSONFileResult struct {
	Path       string          `json:"path"`
	Violations []JSONViolation `json:"violations"`
	Fixed      int             `json:"fixed,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// JSONViolation is a single flattened violation.
type JSONViolation struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"`
	Length   int    `json:"length,omitempty"`
	Fixable  bool   `json:"fixable"`
}

// JSONSummary holds aggregate counts.
type JSONSummary struct {
	FilesChecked    int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	TotalIssues     int `json:"totalIssues"`
	TotalFixed      int `json:"totalFixed"`
}

// JSONReporter emits machine-readable output.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, report *Report) (int, error) {
	out := JSONOutput{Files: []JSONFileResult{}}

	if report != nil {
		for _, file := range report.Files {
			out.Files = append(out.Files, r.fileResult(file))
		}
	}

	out.Summary.FilesChecked = len(out.Files)
	for _, file := range out.Files {
		if len(file.Violations) > 0 {
			out.Summary.FilesWithIssues++
		}
		out.Summary.TotalIssues += len(file.Violations)
		out.Summary.TotalFixed += file.Fixed
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("flush output: %w", err)
	}
	return out.Summary.TotalIssues, nil
}

func (r *JSONReporter) fileResult(file FileReport) JSONFileResult {
	result := JSONFileResult{Path: file.Path, Violations: []JSONViolation{}, Fixed: file.Fixed}
	if file.Err != nil {
		result.Error = file.Err.Error()
		return result
	}

	for _, rv := range file.Results {
		severity := string(config.SeverityWarning)
		if r.opts.Config != nil {
			severity = string(r.opts.Config.RuleSeverity(rv.RuleID))
		}
		for _, v := range rv.Violations {
			result.Violations = append(result.Violations, JSONViolation{
				RuleID:   rv.RuleID,
				RuleName: rv.RuleName,
				Severity: severity,
				Message:  v.Message,
				Line:     v.Line,
				Column:   v.Column,
				Length:   v.Length,
				Fixable:  rv.Fixable,
			})
		}
	}
	return result
}
