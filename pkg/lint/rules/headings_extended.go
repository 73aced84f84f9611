package rules

import (
	"fmt"
	"strings"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// headingSpan marks a heading block: ATX headings span one line, setext
// headings span the text line and the underline.
type headingSpan struct {
	start int // 0-based first line
	end   int // 0-based last line (inclusive)
	level int
	text  string
}

// headingSpans collects all heading blocks outside fenced code.
func headingSpans(lines []string) []headingSpan {
	inBlock := lint.FencedBlockLines(lines)

	var spans []headingSpan
	for i := 0; i < len(lines); i++ {
		if inBlock[i] {
			continue
		}
		if heading, ok := lint.ParseATXHeading(lines[i]); ok {
			spans = append(spans, headingSpan{start: i, end: i, level: heading.Level, text: heading.Text})
			continue
		}
		if level, ok := lint.IsSetextHeading(lines, i); ok {
			spans = append(spans, headingSpan{
				start: i,
				end:   i + 1,
				level: level,
				text:  strings.TrimSpace(lines[i]),
			})
			i++
		}
	}
	return spans
}

// HeadingBlankLinesRule checks that headings are surrounded by blank lines.
type HeadingBlankLinesRule struct {
	lint.BaseRule
}

// NewHeadingBlankLinesRule creates a new blanks-around-headings rule.
func NewHeadingBlankLinesRule() *HeadingBlankLinesRule {
	return &HeadingBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"MD022",
			"blanks-around-headings",
			"Headings should be surrounded by blank lines",
			[]string{"headings", "blank_lines"},
			true,
		),
	}
}

// Detect reports headings missing a blank line before or after.
func (r *HeadingBlankLinesRule) Detect(lines []string, _ config.Options) []lint.Violation {
	var violations []lint.Violation
	for _, span := range headingSpans(lines) {
		if span.start > 0 && !lint.IsBlank(lines[span.start-1]) {
			violations = append(violations,
				lint.NewViolation(span.start+1, "Heading should be preceded by a blank line"))
		}
		if span.end < len(lines)-1 && !lint.IsBlank(lines[span.end+1]) {
			violations = append(violations,
				lint.NewViolation(span.start+1, "Heading should be followed by a blank line"))
		}
	}
	return violations
}

// Correct inserts blank lines around headings in a single forward pass;
// inserted lines never re-trigger within the pass.
func (r *HeadingBlankLinesRule) Correct(lines []string, _ config.Options) []string {
	spans := headingSpans(lines)
	starts := make(map[int]headingSpan, len(spans))
	for _, span := range spans {
		starts[span.start] = span
	}

	out := make([]string, 0, len(lines)+2*len(spans))
	for i := 0; i < len(lines); i++ {
		span, isHeading := starts[i]
		if !isHeading {
			out = append(out, lines[i])
			continue
		}

		if i > 0 && len(out) > 0 && !lint.IsBlank(out[len(out)-1]) {
			out = append(out, "")
		}
		out = append(out, lines[span.start:span.end+1]...)
		if span.end < len(lines)-1 && !lint.IsBlank(lines[span.end+1]) {
			out = append(out, "")
		}
		i = span.end
	}
	return out
}

// NoDuplicateHeadingRule checks for headings with identical text.
// Detection only: deduplicating requires choosing new heading text.
type NoDuplicateHeadingRule struct {
	lint.BaseRule
}

// NewNoDuplicateHeadingRule creates a new duplicate heading rule.
func NewNoDuplicateHeadingRule() *NoDuplicateHeadingRule {
	return &NoDuplicateHeadingRule{
		BaseRule: lint.NewBaseRule(
			"MD024",
			"no-duplicate-heading",
			"Multiple headings with the same content",
			[]string{"headings"},
			false,
		),
	}
}

// Detect reports headings whose text repeats an earlier heading.
func (r *NoDuplicateHeadingRule) Detect(lines []string, _ config.Options) []lint.Violation {
	seen := make(map[string]int)

	var violations []lint.Violation
	for _, span := range headingSpans(lines) {
		key := strings.ToLower(span.text)
		if first, ok := seen[key]; ok {
			violations = append(violations, lint.NewViolation(span.start+1,
				fmt.Sprintf("Heading duplicates the heading on line %d", first)))
			continue
		}
		seen[key] = span.start + 1
	}
	return violations
}

// SingleH1Rule checks that there is at most one top-level heading.
type SingleH1Rule struct {
	lint.BaseRule
}

// NewSingleH1Rule creates a new single H1 rule.
func NewSingleH1Rule() *SingleH1Rule {
	return &SingleH1Rule{
		BaseRule: lint.NewBaseRule(
			"MD025",
			"single-h1",
			"Multiple top-level headings in the same document",
			[]string{"headings"},
			false,
		),
	}
}

// Detect flags every H1 after the first.
func (r *SingleH1Rule) Detect(lines []string, _ config.Options) []lint.Violation {
	var violations []lint.Violation
	count := 0
	for _, span := range headingSpans(lines) {
		if span.level != 1 {
			continue
		}
		count++
		if count > 1 {
			violations = append(violations, lint.NewViolation(span.start+1,
				fmt.Sprintf("Multiple top-level headings (this is H1 #%d)", count)))
		}
	}
	return violations
}

// FirstLineHeadingRule checks that the document starts with a top-level
// heading.
type FirstLineHeadingRule struct {
	lint.BaseRule
}

// NewFirstLineHeadingRule creates a new first-line heading rule.
func NewFirstLineHeadingRule() *FirstLineHeadingRule {
	return &FirstLineHeadingRule{
		BaseRule: lint.NewBaseRule(
			"MD041",
			"first-line-heading",
			"First line in a file should be a top-level heading",
			[]string{"headings", "metadata"},
			false,
		),
	}
}

// Detect reports when the first non-blank line is not a heading of the
// configured level.
func (r *FirstLineHeadingRule) Detect(lines []string, opts config.Options) []lint.Violation {
	level := opts.Int("level", 1)
	if level < 1 || level > 6 {
		level = 1
	}

	first := -1
	for i, line := range lines {
		if !lint.IsBlank(line) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}

	if heading, ok := lint.ParseATXHeading(lines[first]); ok && heading.Level == level {
		return nil
	}
	if setext, ok := lint.IsSetextHeading(lines, first); ok && setext == level {
		return nil
	}

	return []lint.Violation{lint.NewViolation(first+1,
		fmt.Sprintf("First line should be a level %d heading", level))}
}

// RequiredHeadingsRule checks the document against a configured heading
// outline. Without the "headings" option the rule reports nothing.
type RequiredHeadingsRule struct {
	lint.BaseRule
}

// NewRequiredHeadingsRule creates a new required headings rule.
func NewRequiredHeadingsRule() *RequiredHeadingsRule {
	return &RequiredHeadingsRule{
		BaseRule: lint.NewBaseRule(
			"MD043",
			"required-headings",
			"Required heading structure",
			[]string{"headings", "metadata"},
			false,
		),
	}
}

// Detect matches document headings against the required outline.
// A "*" entry matches zero or more arbitrary headings.
func (r *RequiredHeadingsRule) Detect(lines []string, opts config.Options) []lint.Violation {
	required := opts.StringSlice("headings", nil)
	if len(required) == 0 {
		return nil
	}

	spans := headingSpans(lines)

	req := 0
	for _, span := range spans {
		if req >= len(required) {
			return []lint.Violation{lint.NewViolation(span.start+1,
				fmt.Sprintf("Unexpected heading %q beyond required structure", span.text))}
		}
		if required[req] == "*" {
			// Wildcard: consume headings until the next literal matches.
			if req+1 < len(required) && headingMatches(required[req+1], span) {
				req += 2
			}
			continue
		}
		if !headingMatches(required[req], span) {
			return []lint.Violation{lint.NewViolation(span.start+1,
				fmt.Sprintf("Expected heading %q, found %q", required[req], renderOutlineEntry(span)))}
		}
		req++
	}

	if req < len(required) && required[req] != "*" {
		line := len(lines)
		if line == 0 {
			line = 1
		}
		return []lint.Violation{lint.NewViolation(line,
			fmt.Sprintf("Missing required heading %q", required[req]))}
	}
	return nil
}

// headingMatches compares a required outline entry ("## Title" or "Title")
// against a heading span.
func headingMatches(entry string, span headingSpan) bool {
	want := strings.TrimSpace(entry)
	if heading, ok := lint.ParseATXHeading(want); ok {
		return heading.Level == span.level && strings.EqualFold(heading.Text, span.text)
	}
	return strings.EqualFold(want, span.text)
}

func renderOutlineEntry(span headingSpan) string {
	return strings.Repeat("#", span.level) + " " + span.text
}
