package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint/rules"
)

func TestNoMultipleSpaceBlockquote(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoMultipleSpaceBlockquoteRule()

	lines := []string{">  padded", "> fine"}
	violations := rule.Detect(lines, nil)
	require.Len(t, violations, 1)
	assert.Equal(t, 1, violations[0].Line)

	assert.Equal(t, []string{"> padded", "> fine"}, rule.Correct(lines, nil))
}

func TestNoMultipleSpaceBlockquote_Nested(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoMultipleSpaceBlockquoteRule()

	lines := []string{"> >  nested padding"}
	assert.Equal(t, []int{1}, violationLines(rule.Detect(lines, nil)))
	assert.Equal(t, []string{"> > nested padding"}, rule.Correct(lines, nil))
}

func TestNoBlanksBlockquote(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoBlanksBlockquoteRule()
	assert.False(t, rule.CanFix())

	lines := []string{"> quoted", "", "> continued"}
	violations := rule.Detect(lines, nil)
	assert.Equal(t, []int{2}, violationLines(violations))

	// The identity correction leaves the ambiguity to the author.
	assert.Equal(t, lines, rule.Correct(lines, nil))
}

func TestNoBlanksBlockquote_SeparateParagraphsPass(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoBlanksBlockquoteRule()
	lines := []string{"> quoted", "", "plain text"}
	assert.Empty(t, rule.Detect(lines, nil))
}
