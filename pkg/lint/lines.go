package lint

import "strings"

// Document text is handled as an ordered sequence of lines. SplitLines and
// JoinLines convert between the text and line forms; the trailing-newline
// state is carried by the caller so a document round-trips byte for byte.

// SplitLines normalizes line endings and splits text into lines.
// It returns the lines and whether the text ended with a newline.
// Empty text yields an empty (non-nil) slice.
func SplitLines(text string) ([]string, bool) {
	if text == "" {
		return []string{}, false
	}

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	trailing := strings.HasSuffix(normalized, "\n")
	if trailing {
		normalized = normalized[:len(normalized)-1]
	}

	return strings.Split(normalized, "\n"), trailing
}

// JoinLines reassembles lines into text, appending a final newline when
// trailingNewline is set. Joining an empty slice yields the empty string.
func JoinLines(lines []string, trailingNewline bool) string {
	if len(lines) == 0 {
		return ""
	}
	text := strings.Join(lines, "\n")
	if trailingNewline {
		text += "\n"
	}
	return text
}

// CloneLines returns a fresh copy of lines. Correctors use this to satisfy
// the "new sequence, same content" requirement on no-op paths.
func CloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// IsBlank returns true if the line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
