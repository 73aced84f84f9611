package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// TrailingWhitespaceRule checks for trailing whitespace on lines.
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates a new trailing whitespace rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"MD009",
			"no-trailing-spaces",
			"Lines should not have trailing spaces",
			[]string{"whitespace"},
			true,
		),
	}
}

// Detect reports every line with trailing spaces or tabs.
func (r *TrailingWhitespaceRule) Detect(lines []string, opts config.Options) []lint.Violation {
	ignoreCodeBlocks := opts.Bool("ignore_code_blocks", false)

	var inBlock []bool
	if ignoreCodeBlocks {
		inBlock = lint.FencedBlockLines(lines)
	}

	var violations []lint.Violation
	for i, line := range lines {
		if ignoreCodeBlocks && inBlock[i] {
			continue
		}
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == line {
			continue
		}
		violations = append(violations,
			lint.NewViolation(i+1, "Trailing whitespace").
				WithRange(len(trimmed)+1, len(line)-len(trimmed)))
	}
	return violations
}

// Correct strips trailing spaces and tabs from every line.
func (r *TrailingWhitespaceRule) Correct(lines []string, opts config.Options) []string {
	ignoreCodeBlocks := opts.Bool("ignore_code_blocks", false)

	var inBlock []bool
	if ignoreCodeBlocks {
		inBlock = lint.FencedBlockLines(lines)
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if ignoreCodeBlocks && inBlock[i] {
			out[i] = line
			continue
		}
		out[i] = strings.TrimRight(line, " \t")
	}
	return out
}

// HardTabsRule checks for hard tab characters.
type HardTabsRule struct {
	lint.BaseRule
}

// NewHardTabsRule creates a new hard tabs rule.
func NewHardTabsRule() *HardTabsRule {
	return &HardTabsRule{
		BaseRule: lint.NewBaseRule(
			"MD010",
			"no-hard-tabs",
			"Hard tabs should be replaced with spaces",
			[]string{"whitespace"},
			true,
		),
	}
}

// Detect reports every line containing a tab character.
func (r *HardTabsRule) Detect(lines []string, opts config.Options) []lint.Violation {
	includeCode := opts.Bool("code_blocks", true)

	var inBlock []bool
	if !includeCode {
		inBlock = lint.FencedBlockLines(lines)
	}

	var violations []lint.Violation
	for i, line := range lines {
		if !includeCode && inBlock[i] {
			continue
		}
		col := strings.IndexByte(line, '\t')
		if col < 0 {
			continue
		}
		violations = append(violations,
			lint.NewViolation(i+1, "Hard tab character").
				WithRange(col+1, 1))
	}
	return violations
}

// Correct replaces each tab with the configured number of spaces.
func (r *HardTabsRule) Correct(lines []string, opts config.Options) []string {
	includeCode := opts.Bool("code_blocks", true)
	spacesPerTab := opts.Int("spaces_per_tab", 4)
	if spacesPerTab < 1 {
		spacesPerTab = 4
	}
	replacement := strings.Repeat(" ", spacesPerTab)

	var inBlock []bool
	if !includeCode {
		inBlock = lint.FencedBlockLines(lines)
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if !includeCode && inBlock[i] {
			out[i] = line
			continue
		}
		out[i] = strings.ReplaceAll(line, "\t", replacement)
	}
	return out
}

// MultipleBlankLinesRule checks for consecutive blank lines beyond the
// configured maximum, at document start and end included.
type MultipleBlankLinesRule struct {
	lint.BaseRule
}

// NewMultipleBlankLinesRule creates a new multiple blank lines rule.
func NewMultipleBlankLinesRule() *MultipleBlankLinesRule {
	return &MultipleBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"MD012",
			"no-multiple-blanks",
			"Multiple consecutive blank lines should be collapsed",
			[]string{"whitespace", "blank_lines"},
			true,
		),
	}
}

func maxBlanks(opts config.Options) int {
	maximum := opts.Int("maximum", 1)
	if maximum < 0 {
		maximum = 1
	}
	return maximum
}

// Detect reports one violation per blank line beyond the allowed run.
func (r *MultipleBlankLinesRule) Detect(lines []string, opts config.Options) []lint.Violation {
	maximum := maxBlanks(opts)
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	streak := 0
	for i, line := range lines {
		if !lint.IsBlank(line) || inBlock[i] {
			streak = 0
			continue
		}
		streak++
		if streak > maximum {
			violations = append(violations, lint.NewViolation(i+1,
				fmt.Sprintf("Multiple consecutive blank lines (maximum %d)", maximum)))
		}
	}
	return violations
}

// Correct rebuilds the document keeping at most the allowed number of
// consecutive blank lines.
func (r *MultipleBlankLinesRule) Correct(lines []string, opts config.Options) []string {
	maximum := maxBlanks(opts)
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, 0, len(lines))
	streak := 0
	for i, line := range lines {
		if lint.IsBlank(line) && !inBlock[i] {
			streak++
			if streak > maximum {
				continue
			}
		} else {
			streak = 0
		}
		out = append(out, line)
	}
	return out
}

// trailingBlankPattern matches lines that are only whitespace.
var trailingBlankPattern = regexp.MustCompile(`^\s*$`)

// FinalNewlineRule checks that the document does not end in blank lines.
// The single trailing newline itself is tracked outside the line model.
type FinalNewlineRule struct {
	lint.BaseRule
}

// NewFinalNewlineRule creates a new final newline rule.
func NewFinalNewlineRule() *FinalNewlineRule {
	return &FinalNewlineRule{
		BaseRule: lint.NewBaseRule(
			"MD047",
			"single-trailing-newline",
			"Files should end with a single newline character",
			[]string{"blank_lines"},
			true,
		),
	}
}

// Detect reports blank lines at the end of the document.
func (r *FinalNewlineRule) Detect(lines []string, _ config.Options) []lint.Violation {
	var violations []lint.Violation
	for i := len(lines) - 1; i >= 0; i-- {
		if !trailingBlankPattern.MatchString(lines[i]) {
			break
		}
		violations = append(violations,
			lint.NewViolation(i+1, "Trailing blank line at end of file"))
	}
	// Report in document order.
	for left, right := 0, len(violations)-1; left < right; left, right = left+1, right-1 {
		violations[left], violations[right] = violations[right], violations[left]
	}
	return violations
}

// Correct removes blank lines from the end of the document.
func (r *FinalNewlineRule) Correct(lines []string, _ config.Options) []string {
	end := len(lines)
	for end > 0 && trailingBlankPattern.MatchString(lines[end-1]) {
		end--
	}
	return lint.CloneLines(lines[:end])
}
