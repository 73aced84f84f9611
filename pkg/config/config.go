// Package config defines core configuration types for markdownlint-mcp.
// These types are pure data structures with no dependency on the loaders
// that populate them.
package config

// Severity represents the severity level of a lint violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is a known level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration.
type RuleConfig struct {
	Enabled  *bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Severity *string `json:"severity,omitempty" yaml:"severity,omitempty"`
	Options  Options `json:"options,omitempty" yaml:"options,omitempty"`
}

// OutputFormat specifies the output format for lint results.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure.
type Config struct {
	// SeverityDefault is the severity applied to rules that don't specify one.
	SeverityDefault string `json:"severity_default,omitempty" yaml:"severity_default,omitempty"`

	// Default toggles rules without explicit configuration. Unset means
	// enabled, matching markdownlint's "default" key.
	Default *bool `json:"default,omitempty" yaml:"default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID (e.g. "MD009").
	// Unknown keys are ignored, not errors.
	Rules map[string]RuleConfig `json:"rules,omitempty" yaml:"rules,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// CLI-level options, never persisted to config files.

	// DryRun shows what would be fixed without writing files.
	DryRun bool `json:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `json:"-" yaml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `json:"-" yaml:"-"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Format:          FormatText,
	}
}

// RuleOptions returns the options map for a rule ID, or nil when the rule
// has no configuration. Rules treat a nil map as "all defaults".
func (c *Config) RuleOptions(ruleID string) Options {
	if c == nil || c.Rules == nil {
		return nil
	}
	rc, ok := c.Rules[ruleID]
	if !ok {
		return nil
	}
	return rc.Options
}

// RuleEnabled reports whether a rule is enabled. Rules without explicit
// configuration follow Default, and are enabled when Default is unset.
func (c *Config) RuleEnabled(ruleID string) bool {
	if c == nil {
		return true
	}
	if rc, ok := c.Rules[ruleID]; ok && rc.Enabled != nil {
		return *rc.Enabled
	}
	if c.Default != nil {
		return *c.Default
	}
	return true
}

// RuleSeverity returns the effective severity for a rule.
func (c *Config) RuleSeverity(ruleID string) Severity {
	if c != nil && c.Rules != nil {
		if rc, ok := c.Rules[ruleID]; ok && rc.Severity != nil {
			if s := Severity(*rc.Severity); s.IsValid() {
				return s
			}
		}
	}
	if c != nil {
		if s := Severity(c.SeverityDefault); s.IsValid() {
			return s
		}
	}
	return SeverityWarning
}
