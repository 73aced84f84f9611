package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// Bullet style values accepted by the "style" option of MD004.
const (
	bulletStyleConsistent = "consistent"
	bulletStyleAsterisk   = "asterisk"
	bulletStyleDash       = "dash"
	bulletStylePlus       = "plus"
)

func bulletForStyle(style string) string {
	switch style {
	case bulletStyleAsterisk:
		return "*"
	case bulletStyleDash:
		return "-"
	case bulletStylePlus:
		return "+"
	default:
		return ""
	}
}

// UnorderedListStyleRule checks that unordered list markers are consistent.
type UnorderedListStyleRule struct {
	lint.BaseRule
}

// NewUnorderedListStyleRule creates a new unordered list style rule.
func NewUnorderedListStyleRule() *UnorderedListStyleRule {
	return &UnorderedListStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD004",
			"ul-style",
			"Unordered list style should be consistent",
			[]string{"lists", "bullet"},
			true,
		),
	}
}

// Detect reports bullets that differ from the expected marker. With the
// default "consistent" style the first bullet in the document decides;
// ordered list markers are never considered.
func (r *UnorderedListStyleRule) Detect(lines []string, opts config.Options) []lint.Violation {
	expected := bulletForStyle(opts.String("style", bulletStyleConsistent))
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if inBlock[i] {
			continue
		}
		item, ok := lint.ParseListItem(line)
		if !ok || item.Ordered() {
			continue
		}
		if expected == "" {
			expected = item.Marker
			continue
		}
		if item.Marker != expected {
			violations = append(violations,
				lint.NewViolation(i+1, fmt.Sprintf("Unordered list marker %q, expected %q", item.Marker, expected)).
					WithRange(len(item.Indent)+1, 1))
		}
	}
	return violations
}

// Correct rewrites every deviating bullet to the expected marker,
// preserving indentation and content.
func (r *UnorderedListStyleRule) Correct(lines []string, opts config.Options) []string {
	expected := bulletForStyle(opts.String("style", bulletStyleConsistent))
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line
		if inBlock[i] {
			continue
		}
		item, ok := lint.ParseListItem(line)
		if !ok || item.Ordered() {
			continue
		}
		if expected == "" {
			expected = item.Marker
			continue
		}
		if item.Marker != expected {
			out[i] = item.Indent + expected + item.Spacing + item.Content
		}
	}
	return out
}

// ULIndentRule checks unordered list indentation.
type ULIndentRule struct {
	lint.BaseRule
}

// NewULIndentRule creates a new unordered list indent rule.
func NewULIndentRule() *ULIndentRule {
	return &ULIndentRule{
		BaseRule: lint.NewBaseRule(
			"MD007",
			"ul-indent",
			"Unordered list indentation should use a fixed step",
			[]string{"lists", "bullet", "indentation"},
			true,
		),
	}
}

func ulIndentStep(opts config.Options) int {
	indent := opts.Int("indent", 2)
	if indent < 1 {
		indent = 2
	}
	return indent
}

// Detect reports bullets whose indentation is not a multiple of the step.
func (r *ULIndentRule) Detect(lines []string, opts config.Options) []lint.Violation {
	step := ulIndentStep(opts)
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if inBlock[i] {
			continue
		}
		item, ok := lint.ParseListItem(line)
		if !ok || item.Ordered() || strings.Contains(item.Indent, "\t") {
			continue
		}
		if len(item.Indent)%step != 0 {
			violations = append(violations, lint.NewViolation(i+1,
				fmt.Sprintf("Unordered list indentation of %d, expected a multiple of %d", len(item.Indent), step)).
				WithRange(1, len(item.Indent)))
		}
	}
	return violations
}

// Correct snaps bullet indentation down to the nearest multiple of the step.
func (r *ULIndentRule) Correct(lines []string, opts config.Options) []string {
	step := ulIndentStep(opts)
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line
		if inBlock[i] {
			continue
		}
		item, ok := lint.ParseListItem(line)
		if !ok || item.Ordered() || strings.Contains(item.Indent, "\t") {
			continue
		}
		if len(item.Indent)%step != 0 {
			indent := strings.Repeat(" ", (len(item.Indent)/step)*step)
			out[i] = indent + item.Marker + item.Spacing + item.Content
		}
	}
	return out
}

// ListMarkerSpaceRule checks the spacing between list markers and content.
type ListMarkerSpaceRule struct {
	lint.BaseRule
}

// NewListMarkerSpaceRule creates a new list marker space rule.
func NewListMarkerSpaceRule() *ListMarkerSpaceRule {
	return &ListMarkerSpaceRule{
		BaseRule: lint.NewBaseRule(
			"MD030",
			"list-marker-space",
			"Spaces after list markers",
			[]string{"lists", "whitespace"},
			true,
		),
	}
}

// Detect reports list items with more than the expected single space after
// the marker, or with tab spacing.
func (r *ListMarkerSpaceRule) Detect(lines []string, opts config.Options) []lint.Violation {
	want := opts.Int("spaces", 1)
	if want < 1 {
		want = 1
	}
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if inBlock[i] {
			continue
		}
		item, ok := lint.ParseListItem(line)
		if !ok {
			continue
		}
		if len(item.Spacing) != want || strings.Contains(item.Spacing, "\t") {
			violations = append(violations, lint.NewViolation(i+1,
				fmt.Sprintf("Spaces after list marker: %d, expected %d", len(item.Spacing), want)).
				WithRange(len(item.Indent)+len(item.Marker)+1, len(item.Spacing)))
		}
	}
	return violations
}

// Correct normalizes the spacing after every list marker.
func (r *ListMarkerSpaceRule) Correct(lines []string, opts config.Options) []string {
	want := opts.Int("spaces", 1)
	if want < 1 {
		want = 1
	}
	spacing := strings.Repeat(" ", want)
	inBlock := lint.FencedBlockLines(lines)

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line
		if inBlock[i] {
			continue
		}
		item, ok := lint.ParseListItem(line)
		if !ok {
			continue
		}
		if len(item.Spacing) != want || strings.Contains(item.Spacing, "\t") {
			out[i] = item.Indent + item.Marker + spacing + item.Content
		}
	}
	return out
}

// BlanksAroundListsRule checks that lists are surrounded by blank lines.
type BlanksAroundListsRule struct {
	lint.BaseRule
}

// NewBlanksAroundListsRule creates a new blanks-around-lists rule.
func NewBlanksAroundListsRule() *BlanksAroundListsRule {
	return &BlanksAroundListsRule{
		BaseRule: lint.NewBaseRule(
			"MD032",
			"blanks-around-lists",
			"Lists should be surrounded by blank lines",
			[]string{"lists", "blank_lines"},
			true,
		),
	}
}

// listRuns returns [start, end] 0-based inclusive spans of list blocks,
// trimmed of leading and trailing blank lines, outside fenced code.
func listRuns(lines []string) [][2]int {
	inList := lint.ListLines(lines)
	inBlock := lint.FencedBlockLines(lines)

	var runs [][2]int
	i := 0
	for i < len(lines) {
		if !inList[i] || inBlock[i] {
			i++
			continue
		}
		start := i
		for i < len(lines) && inList[i] && !inBlock[i] {
			i++
		}
		end := i - 1
		for start <= end && lint.IsBlank(lines[start]) {
			start++
		}
		for end >= start && lint.IsBlank(lines[end]) {
			end--
		}
		if start <= end {
			runs = append(runs, [2]int{start, end})
		}
	}
	return runs
}

// Detect reports list blocks missing a blank line before or after.
func (r *BlanksAroundListsRule) Detect(lines []string, _ config.Options) []lint.Violation {
	var violations []lint.Violation
	for _, run := range listRuns(lines) {
		if run[0] > 0 && !lint.IsBlank(lines[run[0]-1]) {
			violations = append(violations,
				lint.NewViolation(run[0]+1, "List should be preceded by a blank line"))
		}
		if run[1] < len(lines)-1 && !lint.IsBlank(lines[run[1]+1]) {
			violations = append(violations,
				lint.NewViolation(run[1]+1, "List should be followed by a blank line"))
		}
	}
	return violations
}

// Correct inserts the missing blank lines in a single forward pass.
func (r *BlanksAroundListsRule) Correct(lines []string, _ config.Options) []string {
	runs := listRuns(lines)
	needBefore := make(map[int]bool)
	needAfter := make(map[int]bool)
	for _, run := range runs {
		if run[0] > 0 && !lint.IsBlank(lines[run[0]-1]) {
			needBefore[run[0]] = true
		}
		if run[1] < len(lines)-1 && !lint.IsBlank(lines[run[1]+1]) {
			needAfter[run[1]] = true
		}
	}

	out := make([]string, 0, len(lines)+2*len(runs))
	for i, line := range lines {
		if needBefore[i] {
			out = append(out, "")
		}
		out = append(out, line)
		if needAfter[i] {
			out = append(out, "")
		}
	}
	return out
}

// ListIndentRule checks that sibling list items share the same indentation.
// Detection only: re-indenting requires knowing the intended nesting.
type ListIndentRule struct {
	lint.BaseRule
}

// NewListIndentRule creates a new list indent consistency rule.
func NewListIndentRule() *ListIndentRule {
	return &ListIndentRule{
		BaseRule: lint.NewBaseRule(
			"MD005",
			"list-indent",
			"Inconsistent indentation for list items at the same level",
			[]string{"lists", "indentation"},
			false,
		),
	}
}

// Detect walks each list block with an indent stack; an item whose indent
// neither matches an open level nor opens a deeper one is inconsistent.
func (r *ListIndentRule) Detect(lines []string, _ config.Options) []lint.Violation {
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for _, run := range listRuns(lines) {
		var stack []int
		for i := run[0]; i <= run[1]; i++ {
			if inBlock[i] {
				continue
			}
			item, ok := lint.ParseListItem(lines[i])
			if !ok {
				continue
			}
			indent := len(item.Indent)

			switch {
			case len(stack) == 0 || indent > stack[len(stack)-1]:
				stack = append(stack, indent)
			default:
				// Dedent: pop to a matching open level.
				matched := false
				for len(stack) > 0 {
					if stack[len(stack)-1] == indent {
						matched = true
						break
					}
					stack = stack[:len(stack)-1]
				}
				if !matched {
					violations = append(violations, lint.NewViolation(i+1,
						fmt.Sprintf("Inconsistent list item indentation of %d", indent)))
					stack = append(stack, indent)
				}
			}
		}
	}
	return violations
}

var orderedMarkerPattern = regexp.MustCompile(`^(\d+)[.)]$`)

// OrderedListPrefixRule checks ordered list numbering.
// Detection only: renumbering would guess at intended item grouping.
type OrderedListPrefixRule struct {
	lint.BaseRule
}

// NewOrderedListPrefixRule creates a new ordered list prefix rule.
func NewOrderedListPrefixRule() *OrderedListPrefixRule {
	return &OrderedListPrefixRule{
		BaseRule: lint.NewBaseRule(
			"MD029",
			"ol-prefix",
			"Ordered list item prefix",
			[]string{"lists", "ol"},
			false,
		),
	}
}

// Detect reports ordered items that neither count up from the first item
// nor repeat it (the all-ones style).
func (r *OrderedListPrefixRule) Detect(lines []string, _ config.Options) []lint.Violation {
	inBlock := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for _, run := range listRuns(lines) {
		var first, prev, count int
		allOnes := true
		for i := run[0]; i <= run[1]; i++ {
			if inBlock[i] {
				continue
			}
			item, ok := lint.ParseListItem(lines[i])
			if !ok || !item.Ordered() {
				continue
			}
			m := orderedMarkerPattern.FindStringSubmatch(item.Marker)
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}

			count++
			if count == 1 {
				first, prev = n, n
				allOnes = n == 1
				continue
			}

			ordered := n == prev+1
			repeated := allOnes && n == 1
			if !ordered && !repeated {
				violations = append(violations, lint.NewViolation(i+1,
					fmt.Sprintf("Ordered list item prefix %d, expected %d or %d", n, prev+1, first)))
			}
			if n != 1 {
				allOnes = false
			}
			prev = n
		}
	}
	return violations
}
