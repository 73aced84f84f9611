package rules

import (
	"regexp"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// multipleSpaceBlockquotePattern matches ">  text" style defects, nested
// markers included.
var multipleSpaceBlockquotePattern = regexp.MustCompile(`^(\s*(?:>\s*)*>)(\s{2,})(\S.*)$`)

// NoMultipleSpaceBlockquoteRule checks the spacing after blockquote markers.
type NoMultipleSpaceBlockquoteRule struct {
	lint.BaseRule
}

// NewNoMultipleSpaceBlockquoteRule creates a new blockquote spacing rule.
func NewNoMultipleSpaceBlockquoteRule() *NoMultipleSpaceBlockquoteRule {
	return &NoMultipleSpaceBlockquoteRule{
		BaseRule: lint.NewBaseRule(
			"MD027",
			"no-multiple-space-blockquote",
			"Multiple spaces after blockquote symbol",
			[]string{"blockquote", "whitespace"},
			true,
		),
	}
}

// Detect reports blockquote lines with more than one space after the
// final '>' marker.
func (r *NoMultipleSpaceBlockquoteRule) Detect(lines []string, _ config.Options) []lint.Violation {
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if inBlock[i] {
			continue
		}
		m := multipleSpaceBlockquotePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		violations = append(violations,
			lint.NewViolation(i+1, "Multiple spaces after blockquote symbol").
				WithRange(len(m[1])+1, len(m[2])))
	}
	return violations
}

// Correct collapses the spacing after the marker to a single space.
func (r *NoMultipleSpaceBlockquoteRule) Correct(lines []string, _ config.Options) []string {
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		if inBlock[i] {
			out[i] = line
			continue
		}
		out[i] = multipleSpaceBlockquotePattern.ReplaceAllString(line, "$1 $3")
	}
	return out
}

// NoBlanksBlockquoteRule checks for blank lines inside blockquotes.
// Detection only: a blank line between quoted lines is ambiguous, the
// author may have meant one blockquote or two, so no automatic rewrite
// is safe.
type NoBlanksBlockquoteRule struct {
	lint.BaseRule
}

// NewNoBlanksBlockquoteRule creates a new blank-line-in-blockquote rule.
func NewNoBlanksBlockquoteRule() *NoBlanksBlockquoteRule {
	return &NoBlanksBlockquoteRule{
		BaseRule: lint.NewBaseRule(
			"MD028",
			"no-blanks-blockquote",
			"Blank line inside blockquote",
			[]string{"blockquote", "blank_lines"},
			false,
		),
	}
}

// Detect reports blank lines whose neighbors are both blockquote lines.
func (r *NoBlanksBlockquoteRule) Detect(lines []string, _ config.Options) []lint.Violation {
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i := 1; i < len(lines)-1; i++ {
		if inBlock[i] || !lint.IsBlank(lines[i]) {
			continue
		}
		if lint.IsBlockquote(lines[i-1]) && lint.IsBlockquote(lines[i+1]) {
			violations = append(violations,
				lint.NewViolation(i+1, "Blank line inside blockquote"))
		}
	}
	return violations
}
