package rules

import (
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// RegisterAll registers every built-in rule with the given registry.
func RegisterAll(reg *lint.Registry) {
	// Whitespace and blank lines.
	reg.Register(NewTrailingWhitespaceRule())
	reg.Register(NewHardTabsRule())
	reg.Register(NewMultipleBlankLinesRule())
	reg.Register(NewFinalNewlineRule())

	// Headings.
	reg.Register(NewHeadingIncrementRule())
	reg.Register(NewHeadingStyleRule())
	reg.Register(NewNoMissingSpaceATXRule())
	reg.Register(NewNoMultipleSpaceATXRule())
	reg.Register(NewNoMissingSpaceClosedATXRule())
	reg.Register(NewNoMultipleSpaceClosedATXRule())
	reg.Register(NewHeadingBlankLinesRule())
	reg.Register(NewHeadingStartLeftRule())
	reg.Register(NewNoDuplicateHeadingRule())
	reg.Register(NewSingleH1Rule())
	reg.Register(NewNoTrailingPunctuationRule())
	reg.Register(NewFirstLineHeadingRule())
	reg.Register(NewRequiredHeadingsRule())

	// Lists.
	reg.Register(NewUnorderedListStyleRule())
	reg.Register(NewListIndentRule())
	reg.Register(NewULIndentRule())
	reg.Register(NewOrderedListPrefixRule())
	reg.Register(NewListMarkerSpaceRule())
	reg.Register(NewBlanksAroundListsRule())

	// Blockquotes.
	reg.Register(NewNoMultipleSpaceBlockquoteRule())
	reg.Register(NewNoBlanksBlockquoteRule())

	// Code blocks and fences.
	reg.Register(NewCommandsShowOutputRule())
	reg.Register(NewBlanksAroundFencesRule())
	reg.Register(NewCodeBlockLanguageRule())
	reg.Register(NewCodeBlockStyleRule())
	reg.Register(NewCodeFenceStyleRule())

	// Links, images, and references.
	reg.Register(NewNoReversedLinksRule())
	reg.Register(NewNoBareURLsRule())
	reg.Register(NewNoSpaceInLinksRule())
	reg.Register(NewNoEmptyLinksRule())
	reg.Register(NewNoAltTextRule())
	reg.Register(NewReferenceLinksImagesRule())
	reg.Register(NewLinkImageReferenceDefinitionsRule())

	// Emphasis and inline style.
	reg.Register(NewNoEmphasisAsHeadingRule())
	reg.Register(NewNoSpaceInEmphasisRule())
	reg.Register(NewNoSpaceInCodeRule())
	reg.Register(NewEmphasisStyleRule())
	reg.Register(NewStrongStyleRule())

	// Tables.
	reg.Register(NewTablePipeStyleRule())
	reg.Register(NewTableColumnCountRule())
	reg.Register(NewBlanksAroundTablesRule())

	// Everything else.
	reg.Register(NewLineLengthRule())
	reg.Register(NewHRStyleRule())
	reg.Register(NewProperNamesRule())

	// Names kept from older rule sets so existing configs keep working.
	reg.RegisterAlias("header-increment", "MD001")
	reg.RegisterAlias("header-style", "MD003")
	reg.RegisterAlias("hard-tabs", "MD010")
	reg.RegisterAlias("blanks-around-headers", "MD022")
	reg.RegisterAlias("header-start-left", "MD023")
	reg.RegisterAlias("no-duplicate-header", "MD024")
	reg.RegisterAlias("single-title", "MD025")
	reg.RegisterAlias("first-line-h1", "MD041")
	reg.RegisterAlias("no-newline-eof", "MD047")
}

func init() {
	RegisterAll(lint.DefaultRegistry)
}
