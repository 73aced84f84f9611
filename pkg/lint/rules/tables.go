package rules

import (
	"fmt"
	"strings"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// Pipe style values accepted by the "style" option of MD055.
const (
	pipeStyleConsistent         = "consistent"
	pipeStyleLeadingAndTrailing = "leading_and_trailing"
	pipeStyleLeadingOnly        = "leading_only"
	pipeStyleTrailingOnly       = "trailing_only"
	pipeStyleNoLeadingOrTrail   = "no_leading_or_trailing"
)

// pipeEdges reports whether a table row carries a leading and a trailing
// pipe.
func pipeEdges(line string) (leading, trailing bool) {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|"), strings.HasSuffix(trimmed, "|") && len(trimmed) > 1
}

func pipeStyleOf(leading, trailing bool) string {
	switch {
	case leading && trailing:
		return pipeStyleLeadingAndTrailing
	case leading:
		return pipeStyleLeadingOnly
	case trailing:
		return pipeStyleTrailingOnly
	default:
		return pipeStyleNoLeadingOrTrail
	}
}

// TablePipeStyleRule checks that table rows use pipes at the row edges
// consistently.
type TablePipeStyleRule struct {
	lint.BaseRule
}

// NewTablePipeStyleRule creates a new table pipe style rule.
func NewTablePipeStyleRule() *TablePipeStyleRule {
	return &TablePipeStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD055",
			"table-pipe-style",
			"Table pipe style should be consistent",
			[]string{"tables"},
			true,
		),
	}
}

func resolvePipeStyle(opts config.Options, lines []string, runs [][2]int) string {
	style := opts.String("style", pipeStyleConsistent)
	switch style {
	case pipeStyleLeadingAndTrailing, pipeStyleLeadingOnly, pipeStyleTrailingOnly, pipeStyleNoLeadingOrTrail:
		return style
	}
	// Consistent: the first table row decides.
	for _, run := range runs {
		return pipeStyleOf(pipeEdges(lines[run[0]]))
	}
	return pipeStyleLeadingAndTrailing
}

// Detect reports table rows deviating from the expected edge pipe style.
func (r *TablePipeStyleRule) Detect(lines []string, opts config.Options) []lint.Violation {
	runs := lint.TableRuns(lines)
	want := resolvePipeStyle(opts, lines, runs)

	var violations []lint.Violation
	for _, run := range runs {
		for i := run[0]; i <= run[1]; i++ {
			got := pipeStyleOf(pipeEdges(lines[i]))
			if got != want {
				violations = append(violations, lint.NewViolation(i+1,
					fmt.Sprintf("Table pipe style %s, expected %s", got, want)))
			}
		}
	}
	return violations
}

// Correct adds or strips edge pipes on each table row to match the
// expected style, preserving cell content.
func (r *TablePipeStyleRule) Correct(lines []string, opts config.Options) []string {
	runs := lint.TableRuns(lines)
	want := resolvePipeStyle(opts, lines, runs)

	out := lint.CloneLines(lines)
	for _, run := range runs {
		for i := run[0]; i <= run[1]; i++ {
			if pipeStyleOf(pipeEdges(lines[i])) == want {
				continue
			}
			out[i] = restyleTableRow(lines[i], want)
		}
	}
	return out
}

// restyleTableRow rewrites the edge pipes of one row.
func restyleTableRow(line, want string) string {
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	row := strings.TrimSpace(line)

	row = strings.TrimPrefix(row, "|")
	if len(row) > 0 {
		row = strings.TrimSuffix(row, "|")
	}
	row = strings.TrimSpace(row)

	switch want {
	case pipeStyleLeadingAndTrailing:
		return indent + "| " + row + " |"
	case pipeStyleLeadingOnly:
		return indent + "| " + row
	case pipeStyleTrailingOnly:
		return indent + row + " |"
	default:
		return indent + row
	}
}

// TableColumnCountRule checks that every table row has the same number of
// cells as the header. Detection only: padding or dropping cells guesses
// at the author's data.
type TableColumnCountRule struct {
	lint.BaseRule
}

// NewTableColumnCountRule creates a new table column count rule.
func NewTableColumnCountRule() *TableColumnCountRule {
	return &TableColumnCountRule{
		BaseRule: lint.NewBaseRule(
			"MD056",
			"table-column-count",
			"Table rows should have the same number of cells",
			[]string{"tables"},
			false,
		),
	}
}

// cellCount counts the cells of a table row, ignoring escaped pipes.
func cellCount(line string) int {
	trimmed := strings.TrimSpace(line)
	leading := strings.HasPrefix(trimmed, "|")
	trailing := strings.HasSuffix(trimmed, "|") && len(trimmed) > 1

	pipes := 0
	escaped := false
	for _, r := range trimmed {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			pipes++
		}
	}

	cells := pipes + 1
	if leading {
		cells--
	}
	if trailing {
		cells--
	}
	if cells < 1 {
		cells = 1
	}
	return cells
}

// Detect reports rows whose cell count differs from the header row.
// The delimiter row sets the expectation together with the header, so
// only rows below it are compared.
func (r *TableColumnCountRule) Detect(lines []string, _ config.Options) []lint.Violation {
	var violations []lint.Violation
	for _, run := range lint.TableRuns(lines) {
		want := cellCount(lines[run[0]])
		for i := run[0] + 1; i <= run[1]; i++ {
			if lint.IsTableDelimiter(lines[i]) {
				continue
			}
			if got := cellCount(lines[i]); got != want {
				violations = append(violations, lint.NewViolation(i+1,
					fmt.Sprintf("Table row has %d cells, expected %d", got, want)))
			}
		}
	}
	return violations
}

// BlanksAroundTablesRule checks that tables are surrounded by blank lines.
type BlanksAroundTablesRule struct {
	lint.BaseRule
}

// NewBlanksAroundTablesRule creates a new blanks-around-tables rule.
func NewBlanksAroundTablesRule() *BlanksAroundTablesRule {
	return &BlanksAroundTablesRule{
		BaseRule: lint.NewBaseRule(
			"MD058",
			"blanks-around-tables",
			"Tables should be surrounded by blank lines",
			[]string{"tables", "blank_lines"},
			true,
		),
	}
}

// Detect reports tables missing a blank line before or after.
func (r *BlanksAroundTablesRule) Detect(lines []string, _ config.Options) []lint.Violation {
	var violations []lint.Violation
	for _, run := range lint.TableRuns(lines) {
		if run[0] > 0 && !lint.IsBlank(lines[run[0]-1]) {
			violations = append(violations,
				lint.NewViolation(run[0]+1, "Table should be preceded by a blank line"))
		}
		if run[1] < len(lines)-1 && !lint.IsBlank(lines[run[1]+1]) {
			violations = append(violations,
				lint.NewViolation(run[1]+1, "Table should be followed by a blank line"))
		}
	}
	return violations
}

// Correct inserts the missing blank lines in a single forward pass.
func (r *BlanksAroundTablesRule) Correct(lines []string, _ config.Options) []string {
	runs := lint.TableRuns(lines)
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
