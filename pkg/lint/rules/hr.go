package rules

import (
	"fmt"
	"regexp"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// hrPattern matches a thematic break: three or more of the same marker,
// optionally separated by spaces.
var hrPattern = regexp.MustCompile(`^ {0,3}((?:\* *){3,}|(?:- *){3,}|(?:_ *){3,})\s*$`)

// HRStyleRule enforces a single style for horizontal rules.
type HRStyleRule struct {
	lint.BaseRule
}

// NewHRStyleRule creates a new horizontal rule style rule.
func NewHRStyleRule() *HRStyleRule {
	return &HRStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD035",
			"hr-style",
			"Horizontal rule style should be consistent",
			[]string{"hr"},
			true,
		),
	}
}

// hrLines returns the 0-based lines holding horizontal rules. A dash run
// directly under text is a setext underline, not a rule.
func hrLines(lines []string) []int {
	fenced := lint.FencedBlockLines(lines)

	var out []int
	for i, line := range lines {
		if fenced[i] || !hrPattern.MatchString(line) {
			continue
		}
		if i > 0 {
			if _, setext := lint.IsSetextHeading(lines, i-1); setext {
				continue
			}
		}
		out = append(out, i)
	}
	return out
}

// Detect reports horizontal rules not matching the configured style.
func (r *HRStyleRule) Detect(lines []string, opts config.Options) []lint.Violation {
	want := opts.String("style", "---")

	var violations []lint.Violation
	for _, i := range hrLines(lines) {
		if lines[i] != want {
			violations = append(violations, lint.NewViolation(i+1,
				fmt.Sprintf("Horizontal rule style %q, expected %q", lines[i], want)))
		}
	}
	return violations
}

// Correct replaces each horizontal rule line with the configured style.
func (r *HRStyleRule) Correct(lines []string, opts config.Options) []string {
	want := opts.String("style", "---")

	out := lint.CloneLines(lines)
	for _, i := range hrLines(lines) {
		out[i] = want
	}
	return out
}
