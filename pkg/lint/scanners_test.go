package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

func TestParseFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantChar byte
		wantLen  int
		wantInfo string
	}{
		{name: "backtick fence", line: "```", wantOK: true, wantChar: '`', wantLen: 3},
		{name: "backtick fence with language", line: "```go", wantOK: true, wantChar: '`', wantLen: 3, wantInfo: "go"},
		{name: "tilde fence", line: "~~~", wantOK: true, wantChar: '~', wantLen: 3},
		{name: "long fence", line: "`````", wantOK: true, wantChar: '`', wantLen: 5},
		{name: "indented fence", line: "  ```python", wantOK: true, wantChar: '`', wantLen: 3, wantInfo: "python"},
		{name: "two backticks is not a fence", line: "``", wantOK: false},
		{name: "prose", line: "some text", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fence, ok := lint.ParseFence(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantChar, fence.Char)
			assert.Equal(t, tt.wantLen, fence.Length)
			assert.Equal(t, tt.wantInfo, fence.Info)
		})
	}
}

func TestFencedBlockLines(t *testing.T) {
	t.Parallel()

	lines := []string{
		"text",
		"```go",
		"code",
		"```",
		"after",
	}
	want := []bool{false, true, true, true, false}
	assert.Equal(t, want, lint.FencedBlockLines(lines))
}

func TestFencedBlockLines_UnclosedCarriesToEnd(t *testing.T) {
	t.Parallel()

	lines := []string{"a", "```", "b", "c"}
	want := []bool{false, true, true, true}
	assert.Equal(t, want, lint.FencedBlockLines(lines))
}

func TestFencedBlockLines_MismatchedCharDoesNotClose(t *testing.T) {
	t.Parallel()

	lines := []string{"```", "~~~", "x", "```"}
	want := []bool{true, true, true, true}
	assert.Equal(t, want, lint.FencedBlockLines(lines))
}

func TestIsIndentedCode(t *testing.T) {
	t.Parallel()

	lines := []string{
		"text",
		"",
		"    code",
		"    more code",
		"text again",
		"    not code, no blank before",
	}

	assert.False(t, lint.IsIndentedCode(lines, 0))
	assert.False(t, lint.IsIndentedCode(lines, 1))
	assert.True(t, lint.IsIndentedCode(lines, 2))
	// Continuation lines are not re-flagged; only the run start is.
	assert.False(t, lint.IsIndentedCode(lines, 3))
	assert.False(t, lint.IsIndentedCode(lines, 5))
	assert.False(t, lint.IsIndentedCode(lines, -1))
	assert.False(t, lint.IsIndentedCode(lines, 99))
}

func TestParseListItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		line        string
		wantOK      bool
		wantMarker  string
		wantOrdered bool
		wantIndent  string
	}{
		{name: "dash bullet", line: "- item", wantOK: true, wantMarker: "-"},
		{name: "asterisk bullet", line: "* item", wantOK: true, wantMarker: "*"},
		{name: "plus bullet", line: "+ item", wantOK: true, wantMarker: "+"},
		{name: "ordered dot", line: "1. item", wantOK: true, wantMarker: "1.", wantOrdered: true},
		{name: "ordered paren", line: "2) item", wantOK: true, wantMarker: "2)", wantOrdered: true},
		{name: "indented bullet", line: "  - nested", wantOK: true, wantMarker: "-", wantIndent: "  "},
		{name: "hr is not a list item", line: "---", wantOK: false},
		{name: "bare marker without content", line: "- ", wantOK: false},
		{name: "prose", line: "not a list", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item, ok := lint.ParseListItem(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantMarker, item.Marker)
			assert.Equal(t, tt.wantOrdered, item.Ordered())
			assert.Equal(t, tt.wantIndent, item.Indent)
		})
	}
}

func TestListLines(t *testing.T) {
	t.Parallel()

	lines := []string{
		"intro",
		"- one",
		"- two",
		"",
		"- three",
		"outro",
	}
	want := []bool{false, true, true, true, true, false}
	assert.Equal(t, want, lint.ListLines(lines))
}

func TestListLines_IndentedContinuation(t *testing.T) {
	t.Parallel()

	lines := []string{
		"- item",
		"  continuation",
		"done",
	}
	want := []bool{true, true, false}
	assert.Equal(t, want, lint.ListLines(lines))
}

func TestIsTableDelimiter(t *testing.T) {
	t.Parallel()

	assert.True(t, lint.IsTableDelimiter("|---|---|"))
	assert.True(t, lint.IsTableDelimiter("| :--- | ---: |"))
	assert.True(t, lint.IsTableDelimiter("--- | ---"))
	assert.False(t, lint.IsTableDelimiter("| a | b |"))
	assert.False(t, lint.IsTableDelimiter("| | |"))
	assert.False(t, lint.IsTableDelimiter("plain text"))
}

func TestTableRuns(t *testing.T) {
	t.Parallel()

	lines := []string{
		"before",
		"| a | b |",
		"|---|---|",
		"| 1 | 2 |",
		"",
		"| not | a table without delimiter |",
		"after",
	}

	runs := lint.TableRuns(lines)
	require.Len(t, runs, 1)
	assert.Equal(t, [2]int{1, 3}, runs[0])

	inTable := lint.TableLines(lines)
	assert.Equal(t, []bool{false, true, true, true, false, false, false}, inTable)
}

func TestParseATXHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		line       string
		wantOK     bool
		wantLevel  int
		wantText   string
		wantClosed bool
	}{
		{name: "h1", line: "# Title", wantOK: true, wantLevel: 1, wantText: "Title"},
		{name: "h3", line: "### Deep", wantOK: true, wantLevel: 3, wantText: "Deep"},
		{name: "closed atx", line: "## Title ##", wantOK: true, wantLevel: 2, wantText: "Title", wantClosed: true},
		{name: "missing space does not parse", line: "#Title", wantOK: false},
		{name: "seven hashes is not a heading", line: "####### Nope", wantOK: false},
		{name: "prose", line: "text", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			heading, ok := lint.ParseATXHeading(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantLevel, heading.Level)
			assert.Equal(t, tt.wantText, heading.Text)
			assert.Equal(t, tt.wantClosed, heading.Closed)
		})
	}
}

func TestSetextLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, lint.SetextLevel("==="))
	assert.Equal(t, 2, lint.SetextLevel("---"))
	assert.Equal(t, 2, lint.SetextLevel("  ----  "))
	assert.Equal(t, 0, lint.SetextLevel("text"))
	assert.Equal(t, 0, lint.SetextLevel("- item"))
}

func TestIsSetextHeading(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Title",
		"=====",
		"",
		"Subtitle",
		"--------",
		"",
		"# ATX",
		"=====",
	}

	level, ok := lint.IsSetextHeading(lines, 0)
	require.True(t, ok)
	assert.Equal(t, 1, level)

	level, ok = lint.IsSetextHeading(lines, 3)
	require.True(t, ok)
	assert.Equal(t, 2, level)

	// A blank line cannot be setext text.
	_, ok = lint.IsSetextHeading(lines, 2)
	assert.False(t, ok)

	// An ATX heading is never the text line of a setext heading.
	_, ok = lint.IsSetextHeading(lines, 6)
	assert.False(t, ok)

	// Out of range.
	_, ok = lint.IsSetextHeading(lines, len(lines)-1)
	assert.False(t, ok)
}

func TestInInlineCode(t *testing.T) {
	t.Parallel()

	line := "text `code` more"
	assert.False(t, lint.InInlineCode(line, 0))
	assert.True(t, lint.InInlineCode(line, 7))
	assert.False(t, lint.InInlineCode(line, 12))
	assert.False(t, lint.InInlineCode(line, 999))
}
