package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint/rules"
)

func TestNoReversedLinks(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoReversedLinksRule()

	lines := []string{"(click)[https://x.test]"}
	violations := rule.Detect(lines, nil)
	require.Len(t, violations, 1)
	assert.Equal(t, 1, violations[0].Line)
	assert.Equal(t, 1, violations[0].Column)

	assert.Equal(t, []string{"[click](https://x.test)"}, rule.Correct(lines, nil))
}

func TestNoReversedLinks_ValidLinkUntouched(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoReversedLinksRule()
	lines := []string{"[click](https://x.test)"}

	assert.Empty(t, rule.Detect(lines, nil))
	assert.Equal(t, lines, rule.Correct(lines, nil))
}

func TestNoReversedLinks_SkipsInlineCode(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoReversedLinksRule()
	lines := []string{"see `(x)[y]` for the syntax"}

	assert.Empty(t, rule.Detect(lines, nil))
	assert.Equal(t, lines, rule.Correct(lines, nil))
}

func TestNoBareURLs(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoBareURLsRule()

	lines := []string{"see https://example.test for details"}
	violations := rule.Detect(lines, nil)
	require.Len(t, violations, 1)
	assert.Equal(t, 5, violations[0].Column)

	assert.Equal(t, []string{"see <https://example.test> for details"}, rule.Correct(lines, nil))
}

func TestNoBareURLs_AlreadyWrappedOrLinked(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoBareURLsRule()
	lines := []string{
		"<https://example.test>",
		"[text](https://example.test)",
		"`https://example.test`",
	}

	assert.Empty(t, rule.Detect(lines, nil))
	assert.Equal(t, lines, rule.Correct(lines, nil))
}

func TestNoBareURLs_URLAsLinkText(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoBareURLsRule()
	lines := []string{"[https://example.test](https://example.test)"}

	assert.Empty(t, rule.Detect(lines, nil))
	assert.Equal(t, lines, rule.Correct(lines, nil))
}

func TestNoBareURLs_MultiplePerLine(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoBareURLsRule()
	lines := []string{"https://a.test and https://b.test"}

	assert.Len(t, rule.Detect(lines, nil), 2)
	assert.Equal(t, []string{"<https://a.test> and <https://b.test>"}, rule.Correct(lines, nil))
}

func TestNoSpaceInLinks(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoSpaceInLinksRule()

	lines := []string{"[ padded ](https://x.test)"}
	assert.Equal(t, []int{1}, violationLines(rule.Detect(lines, nil)))
	assert.Equal(t, []string{"[padded](https://x.test)"}, rule.Correct(lines, nil))
}

func TestNoSpaceInLinks_InteriorSpacesAreFine(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoSpaceInLinksRule()
	lines := []string{"[two words](https://x.test)"}

	assert.Empty(t, rule.Detect(lines, nil))
	assert.Equal(t, lines, rule.Correct(lines, nil))
}

func TestNoEmptyLinks(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoEmptyLinksRule()
	assert.False(t, rule.CanFix())

	lines := []string{"[text]()", "[text](#)", "[text](https://x.test)"}
	assert.Equal(t, []int{1, 2}, violationLines(rule.Detect(lines, nil)))
}

func TestNoEmptyLinks_ImagesAreNotLinks(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoEmptyLinksRule()
	assert.Empty(t, rule.Detect([]string{"![alt]()"}, nil))
}

func TestNoAltText(t *testing.T) {
	t.Parallel()

	rule := rules.NewNoAltTextRule()
	assert.False(t, rule.CanFix())

	lines := []string{"![](image.png)", "![described](image.png)"}
	assert.Equal(t, []int{1}, violationLines(rule.Detect(lines, nil)))
}
