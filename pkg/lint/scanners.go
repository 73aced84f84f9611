package lint

import (
	"regexp"
	"strings"
)

// Context scanners: single forward passes that classify each line so rules
// can avoid firing inside the wrong construct. They are cheap and are
// re-derived per rule invocation; no cross-call caching.

var (
	fenceOpenPattern = regexp.MustCompile("^(`{3,}|~{3,})(.*)$")

	listItemPattern = regexp.MustCompile(`^(\s*)([-+*]|\d+[.)])(\s+)(.*)$`)

	tableDelimiterPattern = regexp.MustCompile(`^[\s|:-]+$`)

	atxHeadingPattern = regexp.MustCompile(`^(\s*)(#{1,6})(\s+)(.*?)(\s+#+\s*)?$`)

	setextUnderlinePattern = regexp.MustCompile(`^\s{0,3}(=+|-+)\s*$`)
)

// Fence describes an opening code fence line.
type Fence struct {
	// Char is the fence character, '`' or '~'.
	Char byte

	// Length is the number of fence characters.
	Length int

	// Info is the info string following the fence (may be empty).
	Info string
}

// ParseFence parses a line as a code fence delimiter.
func ParseFence(line string) (Fence, bool) {
	trimmed := strings.TrimSpace(line)
	m := fenceOpenPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Fence{}, false
	}
	return Fence{
		Char:   m[1][0],
		Length: len(m[1]),
		Info:   strings.TrimSpace(m[2]),
	}, true
}

// FencedBlockLines returns a per-line flag marking lines inside fenced code
// blocks. The delimiter lines themselves are marked. The tracker toggles on
// a 3+ run of backticks or tildes; a closing fence must use the opening
// fence character, and the open state carries across the whole document.
func FencedBlockLines(lines []string) []bool {
	inBlock := make([]bool, len(lines))
	var open byte

	for i, line := range lines {
		fence, ok := ParseFence(line)
		switch {
		case ok && open == 0:
			open = fence.Char
			inBlock[i] = true
		case ok && fence.Char == open && fence.Info == "":
			inBlock[i] = true
			open = 0
		default:
			inBlock[i] = open != 0
		}
	}

	return inBlock
}

// IsIndentedCode reports whether lines[i] is an indented code line: 4+
// spaces or a leading tab, preceded by a blank line (or the document
// start). Only the immediately preceding line is consulted; no state is
// carried.
func IsIndentedCode(lines []string, i int) bool {
	if i < 0 || i >= len(lines) {
		return false
	}
	line := lines[i]
	if IsBlank(line) {
		return false
	}
	indented := strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
	if !indented {
		return false
	}
	return i == 0 || IsBlank(lines[i-1])
}

// ListItem describes a parsed list item marker line.
type ListItem struct {
	// Indent is the leading whitespace before the marker.
	Indent string

	// Marker is the list marker ("-", "+", "*", "3." or "3)").
	Marker string

	// Spacing is the whitespace between marker and content.
	Spacing string

	// Content is the text after the marker.
	Content string
}

// Ordered returns true for numbered markers.
func (li ListItem) Ordered() bool {
	return len(li.Marker) > 1
}

// ParseListItem parses a line as a list item marker line.
func ParseListItem(line string) (ListItem, bool) {
	m := listItemPattern.FindStringSubmatch(line)
	if m == nil || strings.TrimSpace(m[4]) == "" {
		return ListItem{}, false
	}
	return ListItem{Indent: m[1], Marker: m[2], Spacing: m[3], Content: m[4]}, true
}

// ListLines returns a per-line flag marking lines that belong to a list.
// "In list" persists across blank lines until a non-blank, non-list-item
// line is seen. Fenced code is not considered: callers combine this with
// FencedBlockLines when the distinction matters.
func ListLines(lines []string) []bool {
	inList := make([]bool, len(lines))
	active := false

	for i, line := range lines {
		switch {
		case IsBlank(line):
			inList[i] = active
		default:
			if _, ok := ParseListItem(line); ok {
				active = true
			} else if !strings.HasPrefix(line, " ") {
				active = false
			}
			inList[i] = active
		}
	}

	return inList
}

// IsTableDelimiter reports whether the line is a table header/body
// separator: only '-', ':', '|' and whitespace, with at least one dash.
func IsTableDelimiter(line string) bool {
	if !strings.Contains(line, "-") || !tableDelimiterPattern.MatchString(line) {
		return false
	}
	return true
}

// TableRuns returns the [start, end] line index pairs (inclusive, 0-based)
// of table-like runs: two or more consecutive lines containing '|' whose
// second line is the delimiter row.
func TableRuns(lines []string) [][2]int {
	var runs [][2]int

	i := 0
	for i < len(lines) {
		if !strings.Contains(lines[i], "|") || IsBlank(lines[i]) {
			i++
			continue
		}
		start := i
		for i < len(lines) && strings.Contains(lines[i], "|") && !IsBlank(lines[i]) {
			i++
		}
		end := i - 1
		if end > start && IsTableDelimiter(lines[start+1]) {
			runs = append(runs, [2]int{start, end})
		}
	}

	return runs
}

// TableLines returns a per-line flag marking lines inside table runs.
func TableLines(lines []string) []bool {
	inTable := make([]bool, len(lines))
	for _, run := range TableRuns(lines) {
		for i := run[0]; i <= run[1]; i++ {
			inTable[i] = true
		}
	}
	return inTable
}

// IsBlockquote reports whether the line's trimmed content starts with '>'.
func IsBlockquote(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ">")
}

// ATXHeading describes a parsed ATX heading line.
type ATXHeading struct {
	// Indent is the leading whitespace before the hashes.
	Indent string

	// Level is the heading level, 1-6.
	Level int

	// Text is the heading text without surrounding markers.
	Text string

	// Closed is true when the heading carries trailing hashes.
	Closed bool
}

// ParseATXHeading parses a line as an ATX heading. Headings missing the
// space after the hashes do not parse; rules that flag that defect match
// the raw hash run themselves.
func ParseATXHeading(line string) (ATXHeading, bool) {
	m := atxHeadingPattern.FindStringSubmatch(line)
	if m == nil {
		return ATXHeading{}, false
	}
	return ATXHeading{
		Indent: m[1],
		Level:  len(m[2]),
		Text:   strings.TrimSpace(m[4]),
		Closed: m[5] != "",
	}, true
}

// SetextLevel returns the heading level implied by a setext underline
// line: 1 for '=' runs, 2 for '-' runs, 0 for anything else. Callers must
// verify the preceding line holds plain non-blank text; detection consumes
// both lines atomically.
func SetextLevel(line string) int {
	m := setextUnderlinePattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	if m[1][0] == '=' {
		return 1
	}
	return 2
}

// IsSetextHeading reports whether lines[i] is the text line of a setext
// heading and returns its level. The text line must be non-blank and not
// itself a list item, blockquote, or ATX heading.
func IsSetextHeading(lines []string, i int) (int, bool) {
	if i < 0 || i+1 >= len(lines) {
		return 0, false
	}
	line := lines[i]
	if IsBlank(line) || IsBlockquote(line) {
		return 0, false
	}
	if _, ok := ParseListItem(line); ok {
		return 0, false
	}
	if _, ok := ParseATXHeading(line); ok {
		return 0, false
	}
	level := SetextLevel(lines[i+1])
	if level == 0 {
		return 0, false
	}
	// A '-' underline under a possible list/hr context is ambiguous; require
	// the underline not to parse as a list item.
	if _, ok := ParseListItem(lines[i+1]); ok {
		return 0, false
	}
	return level, true
}

// InInlineCode reports whether the 0-based column col of line falls inside
// an inline code span, judged by an odd count of backticks before it.
func InInlineCode(line string, col int) bool {
	if col > len(line) {
		col = len(line)
	}
	return strings.Count(line[:col], "`")%2 == 1
}
