package rules

import (
	"regexp"
	"strings"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

var (
	// reversedLinkPattern matches (text)[url] where the parenthesized part
	// may contain one nested level of parentheses.
	reversedLinkPattern = regexp.MustCompile(`\(((?:[^()]|\([^()]*\))*)\)\[([^\]]*)\]`)

	// bareURLPattern matches an http(s) URL not already wrapped in angle
	// brackets or markdown link syntax.
	bareURLPattern = regexp.MustCompile(`https?://[^\s<>\[\]()]+`)

	inlineLinkPattern = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)]*)\)`)
)

// NoReversedLinksRule checks for links written as (text)[url].
type NoReversedLinksRule struct {
	lint.BaseRule
}

// NewNoReversedLinksRule creates a new reversed link syntax rule.
func NewNoReversedLinksRule() *NoReversedLinksRule {
	return &NoReversedLinksRule{
		BaseRule: lint.NewBaseRule(
			"MD011",
			"no-reversed-links",
			"Reversed link syntax",
			[]string{"links"},
			true,
		),
	}
}

// Detect reports reversed links outside code.
func (r *NoReversedLinksRule) Detect(lines []string, _ config.Options) []lint.Violation {
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		for _, match := range reversedLinkPattern.FindAllStringIndex(line, -1) {
			if lint.InInlineCode(line, match[0]) {
				continue
			}
			violations = append(violations,
				lint.NewViolation(i+1, "Reversed link syntax").
					WithRange(match[0]+1, match[1]-match[0]))
		}
	}
	return violations
}

// Correct rewrites (text)[url] to [text](url), leaving code untouched.
func (r *NoReversedLinksRule) Correct(lines []string, _ config.Options) []string {
	fenced := lint.FencedBlockLines(lines)

	out := lint.CloneLines(lines)
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		out[i] = reversedLinkPattern.ReplaceAllStringFunc(line, func(match string) string {
			start := strings.Index(line, match)
			if start >= 0 && lint.InInlineCode(line, start) {
				return match
			}
			parts := reversedLinkPattern.FindStringSubmatch(match)
			return "[" + parts[1] + "](" + parts[2] + ")"
		})
	}
	return out
}

// NoBareURLsRule checks for URLs that are not enclosed in angle brackets
// or link syntax.
type NoBareURLsRule struct {
	lint.BaseRule
}

// NewNoBareURLsRule creates a new bare URL rule.
func NewNoBareURLsRule() *NoBareURLsRule {
	return &NoBareURLsRule{
		BaseRule: lint.NewBaseRule(
			"MD034",
			"no-bare-urls",
			"Bare URL used",
			[]string{"links", "url"},
			true,
		),
	}
}

// bareURLsIn returns the index ranges of bare URLs on a single line.
// URLs already inside [text](url) syntax are not bare.
func bareURLsIn(line string) [][2]int {
	links := inlineLinkPattern.FindAllStringIndex(line, -1)
	inLink := func(pos int) bool {
		for _, span := range links {
			if pos >= span[0] && pos < span[1] {
				return true
			}
		}
		return false
	}

	var ranges [][2]int
	for _, match := range bareURLPattern.FindAllStringIndex(line, -1) {
		start, end := match[0], match[1]
		if start > 0 && (line[start-1] == '<' || line[start-1] == '(' || line[start-1] == '"' || line[start-1] == '[') {
			continue
		}
		if inLink(start) {
			continue
		}
		if lint.InInlineCode(line, start) {
			continue
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

// Detect reports bare URLs outside code.
func (r *NoBareURLsRule) Detect(lines []string, _ config.Options) []lint.Violation {
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		for _, rng := range bareURLsIn(line) {
			violations = append(violations,
				lint.NewViolation(i+1, "Bare URL used").
					WithRange(rng[0]+1, rng[1]-rng[0]))
		}
	}
	return violations
}

// Correct wraps bare URLs in angle brackets.
func (r *NoBareURLsRule) Correct(lines []string, _ config.Options) []string {
	fenced := lint.FencedBlockLines(lines)

	out := lint.CloneLines(lines)
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		ranges := bareURLsIn(line)
		for j := len(ranges) - 1; j >= 0; j-- {
			start, end := ranges[j][0], ranges[j][1]
			line = line[:start] + "<" + line[start:end] + ">" + line[end:]
		}
		out[i] = line
	}
	return out
}

// NoSpaceInLinksRule checks for link text padded with spaces.
type NoSpaceInLinksRule struct {
	lint.BaseRule
}

// NewNoSpaceInLinksRule creates a new space-in-link-text rule.
func NewNoSpaceInLinksRule() *NoSpaceInLinksRule {
	return &NoSpaceInLinksRule{
		BaseRule: lint.NewBaseRule(
			"MD039",
			"no-space-in-links",
			"Spaces inside link text",
			[]string{"links", "whitespace"},
			true,
		),
	}
}

// Detect reports links whose text has leading or trailing spaces.
func (r *NoSpaceInLinksRule) Detect(lines []string, _ config.Options) []lint.Violation {
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		for _, idx := range inlineLinkPattern.FindAllStringSubmatchIndex(line, -1) {
			if lint.InInlineCode(line, idx[0]) {
				continue
			}
			text := line[idx[4]:idx[5]]
			if text != strings.TrimSpace(text) {
				violations = append(violations,
					lint.NewViolation(i+1, "Spaces inside link text").
						WithRange(idx[0]+1, idx[1]-idx[0]))
			}
		}
	}
	return violations
}

// Correct trims the link text in place.
func (r *NoSpaceInLinksRule) Correct(lines []string, _ config.Options) []string {
	fenced := lint.FencedBlockLines(lines)

	out := lint.CloneLines(lines)
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		out[i] = inlineLinkPattern.ReplaceAllStringFunc(line, func(match string) string {
			start := strings.Index(line, match)
			if start >= 0 && lint.InInlineCode(line, start) {
				return match
			}
			parts := inlineLinkPattern.FindStringSubmatch(match)
			return parts[1] + "[" + strings.TrimSpace(parts[2]) + "](" + parts[3] + ")"
		})
	}
	return out
}

// NoEmptyLinksRule checks for links with no destination.
// Detection only: a destination cannot be invented.
type NoEmptyLinksRule struct {
	lint.BaseRule
}

// NewNoEmptyLinksRule creates a new empty link rule.
func NewNoEmptyLinksRule() *NoEmptyLinksRule {
	return &NoEmptyLinksRule{
		BaseRule: lint.NewBaseRule(
			"MD042",
			"no-empty-links",
			"No empty links",
			[]string{"links"},
			false,
		),
	}
}

// Detect reports links whose destination is empty or just a fragment "#".
func (r *NoEmptyLinksRule) Detect(lines []string, _ config.Options) []lint.Violation {
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		for _, idx := range inlineLinkPattern.FindAllStringSubmatchIndex(line, -1) {
			if line[idx[2]:idx[3]] == "!" {
				continue
			}
			if lint.InInlineCode(line, idx[0]) {
				continue
			}
			dest := strings.TrimSpace(line[idx[6]:idx[7]])
			if dest == "" || dest == "#" {
				violations = append(violations,
					lint.NewViolation(i+1, "No empty links").
						WithRange(idx[0]+1, idx[1]-idx[0]))
			}
		}
	}
	return violations
}

// NoAltTextRule checks that images carry alternate text.
// Detection only: alt text must be written by a human.
type NoAltTextRule struct {
	lint.BaseRule
}

// NewNoAltTextRule creates a new image alt text rule.
func NewNoAltTextRule() *NoAltTextRule {
	return &NoAltTextRule{
		BaseRule: lint.NewBaseRule(
			"MD045",
			"no-alt-text",
			"Images should have alternate text",
			[]string{"images", "accessibility"},
			false,
		),
	}
}

// Detect reports image references with empty alt text.
func (r *NoAltTextRule) Detect(lines []string, _ config.Options) []lint.Violation {
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		for _, idx := range inlineLinkPattern.FindAllStringSubmatchIndex(line, -1) {
			if line[idx[2]:idx[3]] != "!" {
				continue
			}
			if lint.InInlineCode(line, idx[0]) {
				continue
			}
			if strings.TrimSpace(line[idx[4]:idx[5]]) == "" {
				violations = append(violations,
					lint.NewViolation(i+1, "Images should have alternate text").
						WithRange(idx[0]+1, idx[1]-idx[0]))
			}
		}
	}
	return violations
}
