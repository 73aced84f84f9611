package rules

import (
	"fmt"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// fenceSpan marks a fenced code block: the opening fence line, the closing
// fence line (or the last document line when unclosed), and the fence.
type fenceSpan struct {
	open  int // 0-based opening fence line
	close int // 0-based closing fence line, or len(lines)-1 when unclosed
	fence lint.Fence
}

// fenceSpans collects every fenced code block in document order.
func fenceSpans(lines []string) []fenceSpan {
	var spans []fenceSpan
	var current *fenceSpan

	for i, line := range lines {
		fence, ok := lint.ParseFence(line)
		if !ok {
			continue
		}
		if current == nil {
			spans = append(spans, fenceSpan{open: i, close: len(lines) - 1, fence: fence})
			current = &spans[len(spans)-1]
			continue
		}
		if fence.Char == current.fence.Char && fence.Info == "" {
			current.close = i
			current = nil
		}
	}
	return spans
}

// BlanksAroundFencesRule checks that fenced code blocks are surrounded by
// blank lines.
type BlanksAroundFencesRule struct {
	lint.BaseRule
}

// NewBlanksAroundFencesRule creates a new blanks-around-fences rule.
func NewBlanksAroundFencesRule() *BlanksAroundFencesRule {
	return &BlanksAroundFencesRule{
		BaseRule: lint.NewBaseRule(
			"MD031",
			"blanks-around-fences",
			"Fenced code blocks should be surrounded by blank lines",
			[]string{"code", "blank_lines"},
			true,
		),
	}
}

// Detect reports fenced blocks missing a blank line before or after.
func (r *BlanksAroundFencesRule) Detect(lines []string, _ config.Options) []lint.Violation {
	var violations []lint.Violation
	for _, span := range fenceSpans(lines) {
		if span.open > 0 && !lint.IsBlank(lines[span.open-1]) {
			violations = append(violations,
				lint.NewViolation(span.open+1, "Fenced code block should be preceded by a blank line"))
		}
		if span.close < len(lines)-1 && !lint.IsBlank(lines[span.close+1]) {
			violations = append(violations,
				lint.NewViolation(span.close+1, "Fenced code block should be followed by a blank line"))
		}
	}
	return violations
}

// Correct inserts the missing blank lines in a single forward pass.
func (r *BlanksAroundFencesRule) Correct(lines []string, _ config.Options) []string {
	spans := fenceSpans(lines)
	needBefore := make(map[int]bool)
	needAfter := make(map[int]bool)
	for _, span := range spans {
		if span.open > 0 && !lint.IsBlank(lines[span.open-1]) {
			needBefore[span.open] = true
		}
		if span.close < len(lines)-1 && !lint.IsBlank(lines[span.close+1]) {
			needAfter[span.close] = true
		}
	}

	out := make([]string, 0, len(lines)+2*len(spans))
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

// Fence style values accepted by the "style" option of MD048.
const (
	fenceStyleConsistent = "consistent"
	fenceStyleBacktick   = "backtick"
	fenceStyleTilde      = "tilde"
)

// CodeFenceStyleRule enforces a consistent fence character.
type CodeFenceStyleRule struct {
	lint.BaseRule
}

// NewCodeFenceStyleRule creates a new code fence style rule.
func NewCodeFenceStyleRule() *CodeFenceStyleRule {
	return &CodeFenceStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD048",
			"code-fence-style",
			"Code fence style should be consistent",
			[]string{"code"},
			true,
		),
	}
}

func fenceCharForStyle(style string) byte {
	switch style {
	case fenceStyleBacktick:
		return '`'
	case fenceStyleTilde:
		return '~'
	default:
		return 0
	}
}

// Detect reports fences using the wrong character. With the default
// "consistent" style the first fence decides.
func (r *CodeFenceStyleRule) Detect(lines []string, opts config.Options) []lint.Violation {
	want := fenceCharForStyle(opts.String("style", fenceStyleConsistent))

	var violations []lint.Violation
	for _, span := range fenceSpans(lines) {
		if want == 0 {
			want = span.fence.Char
			continue
		}
		if span.fence.Char != want {
			violations = append(violations, lint.NewViolation(span.open+1,
				fmt.Sprintf("Code fence style %q, expected %q", string(span.fence.Char), string(want))))
		}
	}
	return violations
}

// Correct rewrites deviating fence delimiter lines, preserving fence
// length, indentation, and the info string.
func (r *CodeFenceStyleRule) Correct(lines []string, opts config.Options) []string {
	want := fenceCharForStyle(opts.String("style", fenceStyleConsistent))

	out := lint.CloneLines(lines)
	for _, span := range fenceSpans(lines) {
		if want == 0 {
			want = span.fence.Char
			continue
		}
		if span.fence.Char == want {
			continue
		}
		out[span.open] = rewriteFenceLine(lines[span.open], want)
		if span.close > span.open {
			if _, ok := lint.ParseFence(lines[span.close]); ok {
				out[span.close] = rewriteFenceLine(lines[span.close], want)
			}
		}
	}
	return out
}

// rewriteFenceLine swaps the fence character of a delimiter line.
func rewriteFenceLine(line string, want byte) string {
	fence, ok := lint.ParseFence(line)
	if !ok {
		return line
	}
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	delimiter := strings.Repeat(string(want), fence.Length)
	if fence.Info != "" {
		return indent + delimiter + fence.Info
	}
	return indent + delimiter
}

// CodeBlockLanguageRule checks that fenced code blocks declare a language.
// Detection only, but the message proposes a language detected from the
// block content.
type CodeBlockLanguageRule struct {
	lint.BaseRule
}

// NewCodeBlockLanguageRule creates a new fenced code language rule.
func NewCodeBlockLanguageRule() *CodeBlockLanguageRule {
	return &CodeBlockLanguageRule{
		BaseRule: lint.NewBaseRule(
			"MD040",
			"fenced-code-language",
			"Fenced code blocks should have a language specified",
			[]string{"code", "language"},
			false,
		),
	}
}

// Detect reports opening fences without an info string.
func (r *CodeBlockLanguageRule) Detect(lines []string, _ config.Options) []lint.Violation {
	var violations []lint.Violation
	for _, span := range fenceSpans(lines) {
		if span.fence.Info != "" {
			continue
		}
		msg := "Fenced code block is missing a language"
		if lang := guessLanguage(lines, span); lang != "" {
			msg = fmt.Sprintf("Fenced code block is missing a language (content looks like %s)", lang)
		}
		violations = append(violations, lint.NewViolation(span.open+1, msg))
	}
	return violations
}

// guessLanguage runs content-based language detection over the block body.
func guessLanguage(lines []string, span fenceSpan) string {
	if span.close <= span.open+1 {
		return ""
	}
	body := strings.Join(lines[span.open+1:span.close], "\n")
	if strings.TrimSpace(body) == "" {
		return ""
	}
	lang, safe := enry.GetLanguageByClassifier([]byte(body), nil)
	if !safe || lang == "" {
		return ""
	}
	return lang
}

// Code block style values accepted by the "style" option of MD046.
const (
	codeBlockStyleFenced   = "fenced"
	codeBlockStyleIndented = "indented"
)

// CodeBlockStyleRule checks that code blocks use a single style.
// Detection only: converting between fenced and indented blocks reflows
// surrounding content.
type CodeBlockStyleRule struct {
	lint.BaseRule
}

// NewCodeBlockStyleRule creates a new code block style rule.
func NewCodeBlockStyleRule() *CodeBlockStyleRule {
	return &CodeBlockStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD046",
			"code-block-style",
			"Code block style should be consistent",
			[]string{"code"},
			false,
		),
	}
}

// Detect reports code blocks of the unwanted style.
func (r *CodeBlockStyleRule) Detect(lines []string, opts config.Options) []lint.Violation {
	style := opts.String("style", codeBlockStyleFenced)
	if style != codeBlockStyleFenced && style != codeBlockStyleIndented {
		style = codeBlockStyleFenced
	}

	var violations []lint.Violation
	switch style {
	case codeBlockStyleIndented:
		for _, span := range fenceSpans(lines) {
			violations = append(violations, lint.NewViolation(span.open+1,
				"Fenced code block, expected indented style"))
		}
	default:
		inList := lint.ListLines(lines)
		for i := range lines {
			// Only the first line of an indented run is reported.
			if lint.IsIndentedCode(lines, i) && !inList[i] {
				violations = append(violations, lint.NewViolation(i+1,
					"Indented code block, expected fenced style"))
			}
		}
	}
	return violations
}

// CommandsShowOutputRule checks for shell blocks where every command is
// prefixed with a dollar sign but no output is shown.
// Detection only: stripping prompts may change copy-paste semantics the
// author intended.
type CommandsShowOutputRule struct {
	lint.BaseRule
}

// NewCommandsShowOutputRule creates a new commands-show-output rule.
func NewCommandsShowOutputRule() *CommandsShowOutputRule {
	return &CommandsShowOutputRule{
		BaseRule: lint.NewBaseRule(
			"MD014",
			"commands-show-output",
			"Dollar signs used before commands without showing output",
			[]string{"code"},
			false,
		),
	}
}

// Detect reports fenced blocks where every non-blank line starts with "$ ".
func (r *CommandsShowOutputRule) Detect(lines []string, _ config.Options) []lint.Violation {
	var violations []lint.Violation
	for _, span := range fenceSpans(lines) {
		if span.close <= span.open+1 {
			continue
		}
		body := lines[span.open+1 : span.close]
		commands := 0
		allPrompts := true
		for _, line := range body {
			if lint.IsBlank(line) {
				continue
			}
			if strings.HasPrefix(strings.TrimSpace(line), "$ ") {
				commands++
			} else {
				allPrompts = false
				break
			}
		}
		if allPrompts && commands > 0 {
			violations = append(violations, lint.NewViolation(span.open+2,
				"Dollar signs used before commands without showing output"))
		}
	}
	return violations
}
