package rules

import (
	"fmt"
	"strings"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// ProperNamesRule checks that configured names use their canonical
// capitalization, e.g. "JavaScript" rather than "javascript".
type ProperNamesRule struct {
	lint.BaseRule
}

// NewProperNamesRule creates a new proper names rule.
func NewProperNamesRule() *ProperNamesRule {
	return &ProperNamesRule{
		BaseRule: lint.NewBaseRule(
			"MD044",
			"proper-names",
			"Proper names should have the correct capitalization",
			[]string{"spelling"},
			true,
		),
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// properNameMatches returns the index ranges on a line where a name
// appears with the wrong capitalization. Boundaries are checked manually
// so names with non-word characters, "C++" for one, still anchor on the
// word characters they do contain.
func properNameMatches(line, name string) [][2]int {
	lower := strings.ToLower(line)
	target := strings.ToLower(name)

	var ranges [][2]int
	for from := 0; ; {
		rel := strings.Index(lower[from:], target)
		if rel < 0 {
			break
		}
		start := from + rel
		end := start + len(name)
		from = start + 1

		if start > 0 && isWordByte(name[0]) && isWordByte(line[start-1]) {
			continue
		}
		if end < len(line) && isWordByte(name[len(name)-1]) && isWordByte(line[end]) {
			continue
		}
		if line[start:end] == name {
			continue
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

// Detect reports wrongly capitalized occurrences of the configured names.
func (r *ProperNamesRule) Detect(lines []string, opts config.Options) []lint.Violation {
	names := opts.StringSlice("names", nil)
	if len(names) == 0 {
		return nil
	}
	checkCode := opts.Bool("code_blocks", false)
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if !checkCode && fenced[i] {
			continue
		}
		for _, name := range names {
			for _, rng := range properNameMatches(line, name) {
				if !checkCode && lint.InInlineCode(line, rng[0]) {
					continue
				}
				violations = append(violations,
					lint.NewViolation(i+1, fmt.Sprintf("Proper name %q should be %q", line[rng[0]:rng[1]], name)).
						WithRange(rng[0]+1, rng[1]-rng[0]))
			}
		}
	}
	return violations
}

// Correct rewrites each wrong occurrence with the canonical form.
func (r *ProperNamesRule) Correct(lines []string, opts config.Options) []string {
	names := opts.StringSlice("names", nil)
	if len(names) == 0 {
		return lint.CloneLines(lines)
	}
	checkCode := opts.Bool("code_blocks", false)
	fenced := lint.FencedBlockLines(lines)

	out := lint.CloneLines(lines)
	for i, line := range lines {
		if !checkCode && fenced[i] {
			continue
		}
		for _, name := range names {
			ranges := properNameMatches(line, name)
			for j := len(ranges) - 1; j >= 0; j-- {
				start, end := ranges[j][0], ranges[j][1]
				if !checkCode && lint.InInlineCode(line, start) {
					continue
				}
				line = line[:start] + name + line[end:]
			}
		}
		out[i] = line
	}
	return out
}
