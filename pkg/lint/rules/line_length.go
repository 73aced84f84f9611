package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// LineLengthRule checks for lines over the configured length.
// Detection only: rewrapping prose is an editorial decision.
type LineLengthRule struct {
	lint.BaseRule
}

// NewLineLengthRule creates a new line length rule.
func NewLineLengthRule() *LineLengthRule {
	return &LineLengthRule{
		BaseRule: lint.NewBaseRule(
			"MD013",
			"line-length",
			"Line length should not be excessive",
			[]string{"line_length"},
			false,
		),
	}
}

// Detect reports lines longer than the limit, counted in runes. Code
// blocks, headings, and tables have their own toggles, and a long line
// without a break opportunity past the limit is left alone.
func (r *LineLengthRule) Detect(lines []string, opts config.Options) []lint.Violation {
	limit := opts.Int("line_length", 120)
	checkCode := opts.Bool("code_blocks", true)
	checkHeadings := opts.Bool("headings", true)
	checkTables := opts.Bool("tables", true)

	fenced := lint.FencedBlockLines(lines)
	tables := lint.TableLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		length := utf8.RuneCountInString(line)
		if length <= limit {
			continue
		}
		if !checkCode && (fenced[i] || lint.IsIndentedCode(lines, i)) {
			continue
		}
		if !checkHeadings {
			if _, ok := lint.ParseATXHeading(line); ok {
				continue
			}
		}
		if !checkTables && tables[i] {
			continue
		}
		// No space beyond the limit means the line cannot be wrapped,
		// long URLs being the usual case.
		if !strings.Contains(string([]rune(line)[limit:]), " ") {
			continue
		}
		violations = append(violations,
			lint.NewViolation(i+1, fmt.Sprintf("Line length %d exceeds %d", length, limit)).
				WithRange(limit+1, length-limit))
	}
	return violations
}
