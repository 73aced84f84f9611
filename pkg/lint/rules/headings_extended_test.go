package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint/rules"
)

func TestHeadingBlankLines(t *testing.T) {
	t.Parallel()

	rule := rules.NewHeadingBlankLinesRule()

	lines := []string{"text", "# Heading", "more text"}
	violations := rule.Detect(lines, nil)
	assert.Equal(t, []int{2, 2}, violationLines(violations))

	want := []string{"text", "", "# Heading", "", "more text"}
	assert.Equal(t, want, rule.Correct(lines, nil))
}

func TestHeadingBlankLines_DocumentEdgesNeedNoBlanks(t *testing.T) {
	t.Parallel()

	rule := rules.NewHeadingBlankLinesRule()
	lines := []string{"# Start", "", "text", "", "## End"}

	assert.Empty(t, rule.Detect(lines, nil))
	assert.Equal(t, lines, rule.Correct(lines, nil))
}

func TestHeadingBlankLines_SetextSpansBothLines(t *testing.T) {
	t.Parallel()

	rule := rules.NewHeadingBlankLinesRule()

	lines := []string{"intro", "Title", "=====", "body"}
	assert.Equal(t, []int{2, 2}, violationLines(rule.Detect(lines, nil)))

	want := []string{"intro", "", "Title", "=====", "", "body"}
	assert.Equal(t, want, rule.Correct(lines, nil))
}

func TestNoDuplicateHeading(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoDuplicateHeadingRule()
	assert.False(t, rule.CanFix())

	lines := []string{"# Setup", "", "## Usage", "", "# setup"}
	violations := rule.Detect(lines, nil)
	require.Len(t, violations, 1)
	assert.Equal(t, 5, violations[0].Line)
}

func TestSingleH1(t *testing.T) {
	t.Parallel()

	rule := rules.NewSingleH1Rule()

	lines := []string{"# First", "", "# Second", "", "## Fine"}
	violations := rule.Detect(lines, nil)
	assert.Equal(t, []int{3}, violationLines(violations))
}

func TestFirstLineHeading(t *testing.T) {
	t.Parallel()

	rule := rules.NewFirstLineHeadingRule()

	assert.Empty(t, rule.Detect([]string{"# Title", "text"}, nil))
	assert.Equal(t, []int{1}, violationLines(rule.Detect([]string{"text first"}, nil)))

	// Leading blanks are skipped before judging the first content line.
	assert.Empty(t, rule.Detect([]string{"", "# Title"}, nil))

	// An empty document has no first line to judge.
	assert.Empty(t, rule.Detect([]string{""}, nil))
}

func TestFirstLineHeading_ConfiguredLevel(t *testing.T) {
	t.Parallel()

	rule := rules.NewFirstLineHeadingRule()
	opts := config.Options{"level": 2}

	assert.Empty(t, rule.Detect([]string{"## Section"}, opts))
	assert.Equal(t, []int{1}, violationLines(rule.Detect([]string{"# Title"}, opts)))
}

func TestRequiredHeadings(t *testing.T) {
	t.Parallel()

	rule := rules.NewRequiredHeadingsRule()
	opts := config.Options{"headings": []string{"# Overview", "## Install"}}

	good := []string{"# Overview", "", "## Install"}
	assert.Empty(t, rule.Detect(good, opts))

	wrong := []string{"# Overview", "", "## Setup"}
	violations := rule.Detect(wrong, opts)
	require.Len(t, violations, 1)
	assert.Equal(t, 3, violations[0].Line)

	missing := []string{"# Overview"}
	violations = rule.Detect(missing, opts)
	require.Len(t, violations, 1)
}

func TestRequiredHeadings_Wildcard(t *testing.T) {
	t.Parallel()

	rule := rules.NewRequiredHeadingsRule()
	opts := config.Options{"headings": []string{"# Overview", "*"}}

	lines := []string{"# Overview", "", "## Anything", "", "### Else"}
	assert.Empty(t, rule.Detect(lines, opts))
}

func TestRequiredHeadings_NoConfigReportsNothing(t *testing.T) {
	t.Parallel()

	rule := rules.NewRequiredHeadingsRule()
	assert.Empty(t, rule.Detect([]string{"# Whatever"}, nil))
}
