package configloader

import "github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"

// merge combines two configurations, override winning. Scalars override
// when set, rule maps merge per-rule, and slices replace wholesale.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Default != nil {
		result.Default = override.Default
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	// DryRun can only be switched on by an overlay; a config file cannot
	// unset a CLI flag.
	if override.DryRun {
		result.DryRun = true
	}

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.FixRules != nil {
		result.FixRules = override.FixRules
	}

	return &result
}

// mergeRules merges per-rule configuration maps.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}
	return result
}

// mergeRuleConfig merges one rule's configuration, field by field.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.Options != nil {
		merged := make(config.Options, len(base.Options)+len(override.Options))
		for key, val := range base.Options {
			merged[key] = val
		}
		for key, val := range override.Options {
			merged[key] = val
		}
		result.Options = merged
	}

	return result
}
