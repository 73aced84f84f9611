package rules

import (
	"regexp"
	"strings"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

var (
	// emphasisSpacePattern matches emphasis whose content is padded with
	// whitespace, e.g. "** bold **" or "* text *". Both delimiters are
	// captured; callers must check they match, RE2 has no backreferences.
	emphasisSpacePattern = regexp.MustCompile(`(\*{1,2}|_{1,2})(\s+[^*_]+?\s*|\s*[^*_]+?\s+)(\*{1,2}|_{1,2})`)

	// codeSpanSpacePattern matches single-backtick code spans padded with
	// whitespace.
	codeSpanSpacePattern = regexp.MustCompile("`(\\s+[^`]+?\\s*|\\s*[^`]+?\\s+)`")

	strongAsteriskPattern   = regexp.MustCompile(`\*\*([^*\s](?:[^*]*[^*\s])?)\*\*`)
	strongUnderscorePattern = regexp.MustCompile(`__([^_\s](?:[^_]*[^_\s])?)__`)

	// emphasisOnlyLinePattern matches a line that is nothing but a single
	// emphasized or strong span. Delimiters are captured separately and
	// compared by the caller.
	emphasisOnlyLinePattern = regexp.MustCompile(`^\s*(\*{1,2}|_{1,2})([^*_]+)(\*{1,2}|_{1,2})\s*$`)
)

// Emphasis marker style values accepted by MD049 and MD050.
const (
	emphasisStyleConsistent = "consistent"
	emphasisStyleAsterisk   = "asterisk"
	emphasisStyleUnderscore = "underscore"
)

// NoSpaceInEmphasisRule checks for spaces just inside emphasis markers.
type NoSpaceInEmphasisRule struct {
	lint.BaseRule
}

// NewNoSpaceInEmphasisRule creates a new space-in-emphasis rule.
func NewNoSpaceInEmphasisRule() *NoSpaceInEmphasisRule {
	return &NoSpaceInEmphasisRule{
		BaseRule: lint.NewBaseRule(
			"MD037",
			"no-space-in-emphasis",
			"Spaces inside emphasis markers",
			[]string{"emphasis", "whitespace"},
			true,
		),
	}
}

// paddedEmphasisRanges returns the index ranges of padded emphasis spans,
// skipping inline code and spans whose content is only whitespace.
func paddedEmphasisRanges(line string) [][2]int {
	var ranges [][2]int
	for _, idx := range emphasisSpacePattern.FindAllStringSubmatchIndex(line, -1) {
		if line[idx[2]:idx[3]] != line[idx[6]:idx[7]] {
			continue
		}
		if lint.InInlineCode(line, idx[0]) {
			continue
		}
		if strings.TrimSpace(line[idx[4]:idx[5]]) == "" {
			continue
		}
		// A match butting up against another marker character is a slice
		// of a longer run, not a padded span.
		if idx[0] > 0 && line[idx[0]-1] == line[idx[0]] {
			continue
		}
		if idx[1] < len(line) && line[idx[1]] == line[idx[1]-1] {
			continue
		}
		// A marker at the line start that parses as a list item is a
		// bullet, not emphasis.
		if idx[0] == 0 {
			if _, ok := lint.ParseListItem(line); ok {
				continue
			}
		}
		ranges = append(ranges, [2]int{idx[0], idx[1]})
	}
	return ranges
}

// Detect reports emphasis spans with padded content.
func (r *NoSpaceInEmphasisRule) Detect(lines []string, _ config.Options) []lint.Violation {
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		for _, rng := range paddedEmphasisRanges(line) {
			violations = append(violations,
				lint.NewViolation(i+1, "Spaces inside emphasis markers").
					WithRange(rng[0]+1, rng[1]-rng[0]))
		}
	}
	return violations
}

// Correct trims the padding inside each flagged span.
func (r *NoSpaceInEmphasisRule) Correct(lines []string, _ config.Options) []string {
	fenced := lint.FencedBlockLines(lines)

	out := lint.CloneLines(lines)
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		ranges := paddedEmphasisRanges(line)
		for j := len(ranges) - 1; j >= 0; j-- {
			start, end := ranges[j][0], ranges[j][1]
			parts := emphasisSpacePattern.FindStringSubmatch(line[start:end])
			line = line[:start] + parts[1] + strings.TrimSpace(parts[2]) + parts[1] + line[end:]
		}
		out[i] = line
	}
	return out
}

// NoSpaceInCodeRule checks for spaces just inside code span backticks.
type NoSpaceInCodeRule struct {
	lint.BaseRule
}

// NewNoSpaceInCodeRule creates a new space-in-code rule.
func NewNoSpaceInCodeRule() *NoSpaceInCodeRule {
	return &NoSpaceInCodeRule{
		BaseRule: lint.NewBaseRule(
			"MD038",
			"no-space-in-code",
			"Spaces inside code span elements",
			[]string{"code", "whitespace"},
			true,
		),
	}
}

// paddedCodeSpans returns the index ranges of padded code spans. Spans
// whose trimmed content starts or ends with a backtick keep their
// padding, which is how a literal backtick is written.
func paddedCodeSpans(line string) [][2]int {
	var ranges [][2]int
	for _, idx := range codeSpanSpacePattern.FindAllStringSubmatchIndex(line, -1) {
		content := strings.TrimSpace(line[idx[2]:idx[3]])
		if content == "" {
			continue
		}
		if strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") {
			continue
		}
		ranges = append(ranges, [2]int{idx[0], idx[1]})
	}
	return ranges
}

// Detect reports padded code spans.
func (r *NoSpaceInCodeRule) Detect(lines []string, _ config.Options) []lint.Violation {
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		for _, rng := range paddedCodeSpans(line) {
			violations = append(violations,
				lint.NewViolation(i+1, "Spaces inside code span elements").
					WithRange(rng[0]+1, rng[1]-rng[0]))
		}
	}
	return violations
}

// Correct trims the padding inside each flagged span.
func (r *NoSpaceInCodeRule) Correct(lines []string, _ config.Options) []string {
	fenced := lint.FencedBlockLines(lines)

	out := lint.CloneLines(lines)
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		ranges := paddedCodeSpans(line)
		for j := len(ranges) - 1; j >= 0; j-- {
			start, end := ranges[j][0], ranges[j][1]
			line = line[:start] + "`" + strings.TrimSpace(line[start+1:end-1]) + "`" + line[end:]
		}
		out[i] = line
	}
	return out
}

// emphasisSpans finds single-marker emphasis spans of the given marker
// character, skipping strong markers and intraword underscores.
func emphasisSpans(line string, marker byte) [][2]int {
	var spans [][2]int
	isWord := func(b byte) bool {
		return b == '_' || b == marker ||
			(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
	}

	i := 0
	for i < len(line) {
		if line[i] != marker {
			i++
			continue
		}
		// Skip strong markers entirely.
		if i+1 < len(line) && line[i+1] == marker {
			i += 2
			continue
		}
		if marker == '_' && i > 0 && isWord(line[i-1]) {
			i++
			continue
		}
		// Find the closing marker.
		end := -1
		for j := i + 1; j < len(line); j++ {
			if line[j] != marker {
				continue
			}
			if j+1 < len(line) && line[j+1] == marker {
				break
			}
			if marker == '_' && j+1 < len(line) && isWord(line[j+1]) {
				continue
			}
			end = j
			break
		}
		if end < 0 || strings.TrimSpace(line[i+1:end]) == "" {
			i++
			continue
		}
		if !lint.InInlineCode(line, i) {
			spans = append(spans, [2]int{i, end + 1})
		}
		i = end + 1
	}
	return spans
}

// EmphasisStyleRule enforces the marker used for emphasis.
type EmphasisStyleRule struct {
	lint.BaseRule
}

// NewEmphasisStyleRule creates a new emphasis style rule.
func NewEmphasisStyleRule() *EmphasisStyleRule {
	return &EmphasisStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD049",
			"emphasis-style",
			"Emphasis style should be consistent",
			[]string{"emphasis"},
			true,
		),
	}
}

func resolveEmphasisStyle(opts config.Options, fallback string) string {
	style := opts.String("style", emphasisStyleAsterisk)
	if style != emphasisStyleAsterisk && style != emphasisStyleUnderscore {
		return fallback
	}
	return style
}

// Detect reports emphasis using the wrong marker.
func (r *EmphasisStyleRule) Detect(lines []string, opts config.Options) []lint.Violation {
	wrong := byte('_')
	if resolveEmphasisStyle(opts, emphasisStyleAsterisk) == emphasisStyleUnderscore {
		wrong = '*'
	}
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		for _, span := range emphasisSpans(line, wrong) {
			violations = append(violations,
				lint.NewViolation(i+1, "Emphasis style should be consistent").
					WithRange(span[0]+1, span[1]-span[0]))
		}
	}
	return violations
}

// Correct swaps the emphasis markers, leaving the content alone.
func (r *EmphasisStyleRule) Correct(lines []string, opts config.Options) []string {
	wrong, want := byte('_'), byte('*')
	if resolveEmphasisStyle(opts, emphasisStyleAsterisk) == emphasisStyleUnderscore {
		wrong, want = '*', '_'
	}
	fenced := lint.FencedBlockLines(lines)

	out := lint.CloneLines(lines)
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		spans := emphasisSpans(line, wrong)
		for j := len(spans) - 1; j >= 0; j-- {
			start, end := spans[j][0], spans[j][1]
			line = line[:start] + string(want) + line[start+1:end-1] + string(want) + line[end:]
		}
		out[i] = line
	}
	return out
}

// StrongStyleRule enforces the marker used for strong emphasis.
type StrongStyleRule struct {
	lint.BaseRule
}

// NewStrongStyleRule creates a new strong style rule.
func NewStrongStyleRule() *StrongStyleRule {
	return &StrongStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD050",
			"strong-style",
			"Strong style should be consistent",
			[]string{"emphasis"},
			true,
		),
	}
}

// Detect reports strong emphasis using the wrong marker.
func (r *StrongStyleRule) Detect(lines []string, opts config.Options) []lint.Violation {
	pattern := strongUnderscorePattern
	if resolveEmphasisStyle(opts, emphasisStyleAsterisk) == emphasisStyleUnderscore {
		pattern = strongAsteriskPattern
	}
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		for _, idx := range pattern.FindAllStringIndex(line, -1) {
			if lint.InInlineCode(line, idx[0]) {
				continue
			}
			violations = append(violations,
				lint.NewViolation(i+1, "Strong style should be consistent").
					WithRange(idx[0]+1, idx[1]-idx[0]))
		}
	}
	return violations
}

// Correct swaps the strong markers, leaving the content alone.
func (r *StrongStyleRule) Correct(lines []string, opts config.Options) []string {
	pattern, want := strongUnderscorePattern, "**"
	if resolveEmphasisStyle(opts, emphasisStyleAsterisk) == emphasisStyleUnderscore {
		pattern, want = strongAsteriskPattern, "__"
	}
	fenced := lint.FencedBlockLines(lines)

	out := lint.CloneLines(lines)
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		out[i] = pattern.ReplaceAllStringFunc(line, func(match string) string {
			start := strings.Index(line, match)
			if start >= 0 && lint.InInlineCode(line, start) {
				return match
			}
			return want + match[2:len(match)-2] + want
		})
	}
	return out
}

// NoEmphasisAsHeadingRule checks for whole lines of emphasized text used
// in place of a heading. Detection only: promoting text to a heading
// needs a level only the author knows.
type NoEmphasisAsHeadingRule struct {
	lint.BaseRule
}

// NewNoEmphasisAsHeadingRule creates a new emphasis-as-heading rule.
func NewNoEmphasisAsHeadingRule() *NoEmphasisAsHeadingRule {
	return &NoEmphasisAsHeadingRule{
		BaseRule: lint.NewBaseRule(
			"MD036",
			"no-emphasis-as-heading",
			"Emphasis used instead of a heading",
			[]string{"emphasis", "headings"},
			false,
		),
	}
}

// Detect reports paragraph lines that are a single emphasized span,
// surrounded by blank lines and not ending in punctuation.
func (r *NoEmphasisAsHeadingRule) Detect(lines []string, opts config.Options) []lint.Violation {
	punctuation := opts.String("punctuation", ".,;:!?")
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		match := emphasisOnlyLinePattern.FindStringSubmatch(line)
		if match == nil || match[1] != match[3] {
			continue
		}
		text := strings.TrimSpace(match[2])
		if text == "" || strings.ContainsAny(text[len(text)-1:], punctuation) {
			continue
		}
		if i > 0 && !lint.IsBlank(lines[i-1]) {
			continue
		}
		if i < len(lines)-1 && !lint.IsBlank(lines[i+1]) {
			continue
		}
		violations = append(violations, lint.NewViolation(i+1, "Emphasis used instead of a heading"))
	}
	return violations
}
