package lint

import "github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"

// RuleViolations pairs a rule identifier with the violations it produced
// in one detection pass.
type RuleViolations struct {
	RuleID     string      `json:"rule_id"`
	RuleName   string      `json:"rule_name,omitempty"`
	Fixable    bool        `json:"fixable"`
	Violations []Violation `json:"violations"`
}

// CountViolations sums the violations across all rules.
func CountViolations(results []RuleViolations) int {
	total := 0
	for _, rv := range results {
		total += len(rv.Violations)
	}
	return total
}

// Detect runs the detectors of the named rules against lines and returns
// the non-empty results in sorted registry order. A nil or empty ids slice
// runs every enabled rule in the registry.
func Detect(reg *Registry, lines []string, cfg *config.Config, ids []string) []RuleViolations {
	var wanted map[string]bool
	if len(ids) > 0 {
		wanted = make(map[string]bool, len(ids))
		for _, id := range ids {
			if canonical, _, ok := reg.Resolve(id); ok {
				wanted[canonical] = true
			}
		}
	}

	var results []RuleViolations
	for _, rule := range reg.Rules() {
		if wanted != nil && !wanted[rule.ID()] {
			continue
		}
		if !cfg.RuleEnabled(rule.ID()) {
			continue
		}
		violations := rule.Detect(lines, cfg.RuleOptions(rule.ID()))
		if len(violations) == 0 {
			continue
		}
		results = append(results, RuleViolations{
			RuleID:     rule.ID(),
			RuleName:   rule.Name(),
			Fixable:    rule.CanFix(),
			Violations: violations,
		})
	}
	return results
}
