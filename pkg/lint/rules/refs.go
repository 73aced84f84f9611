package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

var (
	// refDefinitionPattern matches a link reference definition line.
	refDefinitionPattern = regexp.MustCompile(`^\s{0,3}\[([^\]]+)\]:\s*\S`)

	// refUsagePattern matches full ([text][label]) and collapsed
	// ([label][]) reference links.
	refUsagePattern = regexp.MustCompile(`!?\[([^\]]*)\]\[([^\]]*)\]`)

	// shortcutUsagePattern matches shortcut reference links: [label] not
	// followed by ( or [ or :.
	shortcutUsagePattern = regexp.MustCompile(`!?\[([^\]]+)\]`)
)

// refDefinitions maps a lowercased label to the 0-based line of its
// definition. Later duplicates keep the first definition, matching link
// resolution order.
func refDefinitions(lines []string) map[string]int {
	fenced := lint.FencedBlockLines(lines)

	defs := make(map[string]int)
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		match := refDefinitionPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(match[1]))
		if _, seen := defs[label]; !seen {
			defs[label] = i
		}
	}
	return defs
}

// refUsages collects every lowercased label used by a reference link,
// keyed to the 0-based lines where each label appears.
func refUsages(lines []string) map[string][]int {
	fenced := lint.FencedBlockLines(lines)

	usages := make(map[string][]int)
	add := func(label string, line int) {
		label = strings.ToLower(strings.TrimSpace(label))
		if label != "" {
			usages[label] = append(usages[label], line)
		}
	}

	for i, line := range lines {
		if fenced[i] || refDefinitionPattern.MatchString(line) {
			continue
		}
		consumed := make([]bool, len(line))
		for _, idx := range refUsagePattern.FindAllStringSubmatchIndex(line, -1) {
			if lint.InInlineCode(line, idx[0]) {
				continue
			}
			for j := idx[0]; j < idx[1]; j++ {
				consumed[j] = true
			}
			label := line[idx[4]:idx[5]]
			if label == "" {
				// Collapsed form: the text is the label.
				label = line[idx[2]:idx[3]]
			}
			add(label, i)
		}
		for _, idx := range shortcutUsagePattern.FindAllStringSubmatchIndex(line, -1) {
			if consumed[idx[0]] || lint.InInlineCode(line, idx[0]) {
				continue
			}
			// Not a shortcut if followed by an inline destination or a
			// second label.
			if idx[1] < len(line) && (line[idx[1]] == '(' || line[idx[1]] == '[' || line[idx[1]] == ':') {
				continue
			}
			add(line[idx[2]:idx[3]], i)
		}
	}
	return usages
}

// ReferenceLinksImagesRule checks that reference links resolve to a
// definition. Detection only: a missing definition cannot be invented.
type ReferenceLinksImagesRule struct {
	lint.BaseRule
}

// NewReferenceLinksImagesRule creates a new reference link resolution rule.
func NewReferenceLinksImagesRule() *ReferenceLinksImagesRule {
	return &ReferenceLinksImagesRule{
		BaseRule: lint.NewBaseRule(
			"MD052",
			"reference-links-images",
			"Reference links and images should use a label that is defined",
			[]string{"links", "images"},
			false,
		),
	}
}

// Detect reports full and collapsed reference links whose label has no
// definition. Shortcut candidates are skipped: plain bracketed text is
// too common to flag reliably.
func (r *ReferenceLinksImagesRule) Detect(lines []string, _ config.Options) []lint.Violation {
	defs := refDefinitions(lines)
	fenced := lint.FencedBlockLines(lines)

	var violations []lint.Violation
	for i, line := range lines {
		if fenced[i] || refDefinitionPattern.MatchString(line) {
			continue
		}
		for _, idx := range refUsagePattern.FindAllStringSubmatchIndex(line, -1) {
			if lint.InInlineCode(line, idx[0]) {
				continue
			}
			label := line[idx[4]:idx[5]]
			if label == "" {
				label = line[idx[2]:idx[3]]
			}
			key := strings.ToLower(strings.TrimSpace(label))
			if key == "" {
				continue
			}
			if _, ok := defs[key]; !ok {
				violations = append(violations,
					lint.NewViolation(i+1, fmt.Sprintf("Missing link or image reference definition: %q", label)).
						WithRange(idx[0]+1, idx[1]-idx[0]))
			}
		}
	}
	return violations
}

// LinkImageReferenceDefinitionsRule checks for definitions nothing uses.
type LinkImageReferenceDefinitionsRule struct {
	lint.BaseRule
}

// NewLinkImageReferenceDefinitionsRule creates a new unused reference
// definition rule.
func NewLinkImageReferenceDefinitionsRule() *LinkImageReferenceDefinitionsRule {
	return &LinkImageReferenceDefinitionsRule{
		BaseRule: lint.NewBaseRule(
			"MD053",
			"link-image-reference-definitions",
			"Link and image reference definitions should be needed",
			[]string{"links", "images"},
			true,
		),
	}
}

// unusedDefinitionLines returns the 0-based lines of definitions no
// reference uses, honoring the "ignored_definitions" option.
func unusedDefinitionLines(lines []string, opts config.Options) map[int]string {
	ignored := make(map[string]bool)
	for _, label := range opts.StringSlice("ignored_definitions", []string{"//"}) {
		ignored[strings.ToLower(label)] = true
	}

	usages := refUsages(lines)
	unused := make(map[int]string)
	for label, line := range refDefinitions(lines) {
		if ignored[label] {
			continue
		}
		if _, used := usages[label]; !used {
			unused[line] = label
		}
	}
	return unused
}

// Detect reports unused reference definitions.
func (r *LinkImageReferenceDefinitionsRule) Detect(lines []string, opts config.Options) []lint.Violation {
	unused := unusedDefinitionLines(lines, opts)

	var violations []lint.Violation
	for i := range lines {
		if label, ok := unused[i]; ok {
			violations = append(violations, lint.NewViolation(i+1,
				fmt.Sprintf("Unused link or image reference definition: %q", label)))
		}
	}
	return violations
}

// Correct removes unused definition lines.
func (r *LinkImageReferenceDefinitionsRule) Correct(lines []string, opts config.Options) []string {
	unused := unusedDefinitionLines(lines, opts)
	if len(unused) == 0 {
		return lint.CloneLines(lines)
	}

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if _, drop := unused[i]; drop {
			continue
		}
		out = append(out, line)
	}
	return out
}
