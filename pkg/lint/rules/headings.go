package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

var (
	// missingSpaceATXPattern matches "#Heading" style defects.
	missingSpaceATXPattern = regexp.MustCompile(`^(#{1,6})([^#\s].*)$`)

	// multipleSpaceATXPattern matches "#  Heading" style defects.
	multipleSpaceATXPattern = regexp.MustCompile(`^(#{1,6})(\s{2,})(\S.*)$`)

	// missingSpaceClosedATXPattern matches "# Heading#" style defects.
	missingSpaceClosedATXPattern = regexp.MustCompile(`^(#{1,6}\s+.*?[^#\s])(#+\s*)$`)

	// multipleSpaceClosedATXPattern matches "# Heading  #" style defects.
	multipleSpaceClosedATXPattern = regexp.MustCompile(`^(#{1,6}\s+.*?\S)(\s{2,})(#+\s*)$`)

	// indentedHeadingPattern matches headings preceded by whitespace.
	indentedHeadingPattern = regexp.MustCompile(`^(\s+)(#{1,6}\s.*)$`)
)

// NoMissingSpaceATXRule checks for a space between ATX hashes and text.
type NoMissingSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMissingSpaceATXRule creates a new missing-space ATX rule.
func NewNoMissingSpaceATXRule() *NoMissingSpaceATXRule {
	return &NoMissingSpaceATXRule{
		BaseRule: lint.NewBaseRule(
			"MD018",
			"no-missing-space-atx",
			"No space after hash on ATX style heading",
			[]string{"headings", "spaces"},
			true,
		),
	}
}

// Detect reports ATX headings missing the space after the hashes.
func (r *NoMissingSpaceATXRule) Detect(lines []string, _ config.Options) []lint.Violation {
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if inBlock[i] {
			continue
		}
		m := missingSpaceATXPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		violations = append(violations,
			lint.NewViolation(i+1, "No space after hash on ATX style heading").
				WithRange(len(m[1])+1, 1))
	}
	return violations
}

// Correct inserts the missing space after the hashes.
func (r *NoMissingSpaceATXRule) Correct(lines []string, _ config.Options) []string {
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		if inBlock[i] {
			out[i] = line
			continue
		}
		out[i] = missingSpaceATXPattern.ReplaceAllString(line, "$1 $2")
	}
	return out
}

// NoMultipleSpaceATXRule checks for extra spaces after ATX hashes.
type NoMultipleSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMultipleSpaceATXRule creates a new multiple-space ATX rule.
func NewNoMultipleSpaceATXRule() *NoMultipleSpaceATXRule {
	return &NoMultipleSpaceATXRule{
		BaseRule: lint.NewBaseRule(
			"MD019",
			"no-multiple-space-atx",
			"Multiple spaces after hash on ATX style heading",
			[]string{"headings", "spaces"},
			true,
		),
	}
}

// Detect reports ATX headings with more than one space after the hashes.
func (r *NoMultipleSpaceATXRule) Detect(lines []string, _ config.Options) []lint.Violation {
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if inBlock[i] {
			continue
		}
		m := multipleSpaceATXPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		violations = append(violations,
			lint.NewViolation(i+1, "Multiple spaces after hash on ATX style heading").
				WithRange(len(m[1])+1, len(m[2])))
	}
	return violations
}

// Correct collapses the spacing after the hashes to a single space.
func (r *NoMultipleSpaceATXRule) Correct(lines []string, _ config.Options) []string {
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		if inBlock[i] {
			out[i] = line
			continue
		}
		out[i] = multipleSpaceATXPattern.ReplaceAllString(line, "$1 $3")
	}
	return out
}

// NoMissingSpaceClosedATXRule checks spacing before closing hashes.
type NoMissingSpaceClosedATXRule struct {
	lint.BaseRule
}

// NewNoMissingSpaceClosedATXRule creates a new missing-space closed ATX rule.
func NewNoMissingSpaceClosedATXRule() *NoMissingSpaceClosedATXRule {
	return &NoMissingSpaceClosedATXRule{
		BaseRule: lint.NewBaseRule(
			"MD020",
			"no-missing-space-closed-atx",
			"No space inside hashes on closed ATX style heading",
			[]string{"headings", "spaces"},
			true,
		),
	}
}

// Detect reports closed ATX headings missing the space before the closing
// hashes.
func (r *NoMissingSpaceClosedATXRule) Detect(lines []string, _ config.Options) []lint.Violation {
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if inBlock[i] {
			continue
		}
		m := missingSpaceClosedATXPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		violations = append(violations,
			lint.NewViolation(i+1, "No space inside hashes on closed ATX style heading").
				WithRange(len(m[1])+1, 1))
	}
	return violations
}

// Correct inserts the missing space before the closing hashes.
func (r *NoMissingSpaceClosedATXRule) Correct(lines []string, _ config.Options) []string {
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		if inBlock[i] {
			out[i] = line
			continue
		}
		out[i] = missingSpaceClosedATXPattern.ReplaceAllString(line, "$1 $2")
	}
	return out
}

// NoMultipleSpaceClosedATXRule checks for extra spaces before closing hashes.
type NoMultipleSpaceClosedATXRule struct {
	lint.BaseRule
}

// NewNoMultipleSpaceClosedATXRule creates a new multiple-space closed ATX rule.
func NewNoMultipleSpaceClosedATXRule() *NoMultipleSpaceClosedATXRule {
	return &NoMultipleSpaceClosedATXRule{
		BaseRule: lint.NewBaseRule(
			"MD021",
			"no-multiple-space-closed-atx",
			"Multiple spaces inside hashes on closed ATX style heading",
			[]string{"headings", "spaces"},
			true,
		),
	}
}

// Detect reports closed ATX headings with multiple spaces before the
// closing hashes.
func (r *NoMultipleSpaceClosedATXRule) Detect(lines []string, _ config.Options) []lint.Violation {
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if inBlock[i] {
			continue
		}
		m := multipleSpaceClosedATXPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		violations = append(violations,
			lint.NewViolation(i+1, "Multiple spaces inside hashes on closed ATX style heading").
				WithRange(len(m[1])+1, len(m[2])))
	}
	return violations
}

// Correct collapses the spacing before the closing hashes.
func (r *NoMultipleSpaceClosedATXRule) Correct(lines []string, _ config.Options) []string {
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		if inBlock[i] {
			out[i] = line
			continue
		}
		out[i] = multipleSpaceClosedATXPattern.ReplaceAllString(line, "$1 $3")
	}
	return out
}

// HeadingStartLeftRule checks that headings start at the beginning of the line.
type HeadingStartLeftRule struct {
	lint.BaseRule
}

// NewHeadingStartLeftRule creates a new heading-start-left rule.
func NewHeadingStartLeftRule() *HeadingStartLeftRule {
	return &HeadingStartLeftRule{
		BaseRule: lint.NewBaseRule(
			"MD023",
			"heading-start-left",
			"Headings must start at the beginning of the line",
			[]string{"headings", "spaces"},
			true,
		),
	}
}

// Detect reports indented ATX headings.
func (r *HeadingStartLeftRule) Detect(lines []string, _ config.Options) []lint.Violation {
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if inBlock[i] || lint.IsIndentedCode(lines, i) {
			continue
		}
		m := indentedHeadingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		violations = append(violations,
			lint.NewViolation(i+1, "Heading must start at the beginning of the line").
				WithRange(1, len(m[1])))
	}
	return violations
}

// Correct strips the indentation from heading lines.
func (r *HeadingStartLeftRule) Correct(lines []string, _ config.Options) []string {
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		if inBlock[i] || lint.IsIndentedCode(lines, i) {
			out[i] = line
			continue
		}
		out[i] = indentedHeadingPattern.ReplaceAllString(line, "$2")
	}
	return out
}

// NoTrailingPunctuationRule checks for trailing punctuation in headings.
type NoTrailingPunctuationRule struct {
	lint.BaseRule
}

// NewNoTrailingPunctuationRule creates a new trailing punctuation rule.
func NewNoTrailingPunctuationRule() *NoTrailingPunctuationRule {
	return &NoTrailingPunctuationRule{
		BaseRule: lint.NewBaseRule(
			"MD026",
			"no-trailing-punctuation",
			"Trailing punctuation in heading",
			[]string{"headings"},
			true,
		),
	}
}

const defaultHeadingPunctuation = ".,;:!"

// Detect reports headings whose text ends in punctuation.
func (r *NoTrailingPunctuationRule) Detect(lines []string, opts config.Options) []lint.Violation {
	punctuation := opts.String("punctuation", defaultHeadingPunctuation)
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if inBlock[i] {
			continue
		}
		heading, ok := lint.ParseATXHeading(line)
		if !ok || heading.Text == "" {
			continue
		}
		last := heading.Text[len(heading.Text)-1]
		if !strings.ContainsRune(punctuation, rune(last)) {
			continue
		}
		violations = append(violations, lint.NewViolation(i+1,
			fmt.Sprintf("Trailing punctuation in heading: %q", string(last))))
	}
	return violations
}

// Correct strips trailing punctuation from heading text.
func (r *NoTrailingPunctuationRule) Correct(lines []string, opts config.Options) []string {
	punctuation := opts.String("punctuation", defaultHeadingPunctuation)
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line
		if inBlock[i] {
			continue
		}
		heading, ok := lint.ParseATXHeading(line)
		if !ok || heading.Text == "" {
			continue
		}
		text := strings.TrimRight(heading.Text, punctuation)
		if text == heading.Text || text == "" {
			continue
		}
		out[i] = renderATXHeading(heading.Level, text, heading.Closed)
	}
	return out
}

// renderATXHeading renders a heading in ATX or closed-ATX form.
func renderATXHeading(level int, text string, closed bool) string {
	hashes := strings.Repeat("#", level)
	if closed {
		return hashes + " " + text + " " + hashes
	}
	return hashes + " " + text
}

// HeadingIncrementRule checks that heading levels increment by one.
// Detection only: choosing the intended level requires author intent.
type HeadingIncrementRule struct {
	lint.BaseRule
}

// NewHeadingIncrementRule creates a new heading increment rule.
func NewHeadingIncrementRule() *HeadingIncrementRule {
	return &HeadingIncrementRule{
		BaseRule: lint.NewBaseRule(
			"MD001",
			"heading-increment",
			"Heading levels should only increment by one level at a time",
			[]string{"headings"},
			false,
		),
	}
}

// Detect reports headings that jump more than one level.
func (r *HeadingIncrementRule) Detect(lines []string, _ config.Options) []lint.Violation {
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	prevLevel := 0
	skipNext := false

	for i, line := range lines {
		if skipNext {
			skipNext = false
			continue
		}
		if inBlock[i] {
			continue
		}

		level := 0
		if heading, ok := lint.ParseATXHeading(line); ok {
			level = heading.Level
		} else if setext, ok := lint.IsSetextHeading(lines, i); ok {
			level = setext
			skipNext = true
		}
		if level == 0 {
			continue
		}

		if prevLevel > 0 && level > prevLevel+1 {
			violations = append(violations, lint.NewViolation(i+1,
				fmt.Sprintf("Heading level jumped from H%d to H%d", prevLevel, level)))
		}
		prevLevel = level
	}
	return violations
}

// HeadingStyleRule enforces a consistent heading style.
type HeadingStyleRule struct {
	lint.BaseRule
}

// NewHeadingStyleRule creates a new heading style rule.
func NewHeadingStyleRule() *HeadingStyleRule {
	return &HeadingStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD003",
			"heading-style",
			"Heading style should be consistent",
			[]string{"headings"},
			true,
		),
	}
}

// Heading style values accepted by the "style" option.
const (
	headingStyleATX       = "atx"
	headingStyleATXClosed = "atx_closed"
	headingStyleSetext    = "setext"
)

func headingStyleOption(opts config.Options) string {
	switch style := opts.String("style", headingStyleATX); style {
	case headingStyleATX, headingStyleATXClosed, headingStyleSetext:
		return style
	default:
		return headingStyleATX
	}
}

// Detect reports headings whose style disagrees with the configured target.
func (r *HeadingStyleRule) Detect(lines []string, opts config.Options) []lint.Violation {
	target := headingStyleOption(opts)
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	skipNext := false
	for i, line := range lines {
		if skipNext {
			skipNext = false
			continue
		}
		if inBlock[i] {
			continue
		}

		if heading, ok := lint.ParseATXHeading(line); ok {
			style := headingStyleATX
			if heading.Closed {
				style = headingStyleATXClosed
			}
			// Setext cannot express levels past 2; ATX is the agreed fallback.
			want := target
			if target == headingStyleSetext && heading.Level > 2 {
				want = headingStyleATX
			}
			if style != want {
				violations = append(violations, lint.NewViolation(i+1,
					fmt.Sprintf("Heading style %q, expected %q", style, want)))
			}
			continue
		}

		if _, ok := lint.IsSetextHeading(lines, i); ok {
			skipNext = true
			if target != headingStyleSetext {
				violations = append(violations, lint.NewViolation(i+1,
					fmt.Sprintf("Heading style %q, expected %q", headingStyleSetext, target)))
			}
		}
	}
	return violations
}

// Correct rewrites headings into the configured style. Setext detection
// consumes the text and underline lines atomically; conversion to setext
// only applies to levels 1 and 2, deeper headings fall back to ATX.
func (r *HeadingStyleRule) Correct(lines []string, opts config.Options) []string {
	target := headingStyleOption(opts)
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if inBlock[i] {
			out = append(out, line)
			continue
		}

		if heading, ok := lint.ParseATXHeading(line); ok {
			out = append(out, renderHeading(target, heading.Level, heading.Text)...)
			continue
		}

		if level, ok := lint.IsSetextHeading(lines, i); ok {
			text := strings.TrimSpace(line)
			out = append(out, renderHeading(target, level, text)...)
			i++ // Underline consumed.
			continue
		}

		out = append(out, line)
	}
	return out
}

// renderHeading renders a heading in the target style, possibly as two
// lines for setext.
func renderHeading(style string, level int, text string) []string {
	switch style {
	case headingStyleSetext:
		if level == 1 {
			return []string{text, strings.Repeat("=", max(len(text), 1))}
		}
		if level == 2 {
			return []string{text, strings.Repeat("-", max(len(text), 1))}
		}
		return []string{renderATXHeading(level, text, false)}
	case headingStyleATXClosed:
		return []string{renderATXHeading(level, text, true)}
	default:
		return []string{renderATXHeading(level, text, false)}
	}
}
