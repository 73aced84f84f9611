package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		text         string
		wantLines    []string
		wantTrailing bool
	}{
		{
			name:         "empty text",
			text:         "",
			wantLines:    []string{},
			wantTrailing: false,
		},
		{
			name:         "single line no newline",
			text:         "hello",
			wantLines:    []string{"hello"},
			wantTrailing: false,
		},
		{
			name:         "single line with newline",
			text:         "hello\n",
			wantLines:    []string{"hello"},
			wantTrailing: true,
		},
		{
			name:         "multiple lines",
			text:         "one\ntwo\nthree\n",
			wantLines:    []string{"one", "two", "three"},
			wantTrailing: true,
		},
		{
			name:         "windows line endings",
			text:         "one\r\ntwo\r\n",
			wantLines:    []string{"one", "two"},
			wantTrailing: true,
		},
		{
			name:         "bare carriage returns",
			text:         "one\rtwo",
			wantLines:    []string{"one", "two"},
			wantTrailing: false,
		},
		{
			name:         "blank lines preserved",
			text:         "one\n\n\ntwo",
			wantLines:    []string{"one", "", "", "two"},
			wantTrailing: false,
		},
		{
			name:         "only a newline",
			text:         "\n",
			wantLines:    []string{""},
			wantTrailing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines, trailing := lint.SplitLines(tt.text)
			assert.Equal(t, tt.wantLines, lines)
			assert.Equal(t, tt.wantTrailing, trailing)
		})
	}
}

func TestJoinLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", lint.JoinLines(nil, true))
	assert.Equal(t, "", lint.JoinLines([]string{}, false))
	assert.Equal(t, "one", lint.JoinLines([]string{"one"}, false))
	assert.Equal(t, "one\n", lint.JoinLines([]string{"one"}, true))
	assert.Equal(t, "one\ntwo\n", lint.JoinLines([]string{"one", "two"}, true))
}

func TestSplitJoinRoundTrip(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"one",
		"one\n",
		"one\n\ntwo\n",
		"\n",
		"a\nb\nc",
	} {
		lines, trailing := lint.SplitLines(text)
		assert.Equal(t, text, lint.JoinLines(lines, trailing), "round trip for %q", text)
	}
}

func TestCloneLines(t *testing.T) {
	t.Parallel()

	original := []string{"a", "b"}
	clone := lint.CloneLines(original)

	assert.Equal(t, original, clone)

	clone[0] = "changed"
	assert.Equal(t, "a", original[0])

	assert.Empty(t, lint.CloneLines(nil))
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, lint.IsBlank(""))
	assert.True(t, lint.IsBlank("   "))
	assert.True(t, lint.IsBlank("\t \t"))
	assert.False(t, lint.IsBlank("x"))
	assert.False(t, lint.IsBlank("  x  "))
}
