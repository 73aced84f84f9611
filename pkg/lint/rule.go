// Package lint provides the line-oriented rule engine for markdownlint-mcp:
// the Violation data model, the Rule contract, the registry, and the
// context scanners shared by rule implementations.
package lint

import "github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"

// Violation represents a single rule breach at a specific line.
//
// Violations are produced fresh on every detection pass and are only valid
// for the document version they were computed against.
type Violation struct {
	// Line is the 1-based line number where the issue is visible.
	Line int

	// Message is the human-readable description of the issue.
	Message string

	// Column is the 1-based column where the issue starts, or 0 when the
	// violation has no sub-line range.
	Column int

	// Length is the length of the offending range, or 0.
	Length int
}

// HasRange returns true if the violation carries a column range.
func (v Violation) HasRange() bool {
	return v.Column > 0
}

// NewViolation creates a violation anchored to a line.
func NewViolation(line int, message string) Violation {
	return Violation{Line: line, Message: message}
}

// WithRange returns a copy of the violation with a column range attached.
func (v Violation) WithRange(column, length int) Violation {
	v.Column = column
	v.Length = length
	return v
}

// Rule defines the contract all lint rules implement.
//
// Rules must:
//   - Keep Detect a pure function of (lines, opts): no mutable state
//     retained between calls, no mutation of the input slice.
//   - Keep Correct total: it never panics, and on empty, unmatched, or
//     already-compliant input it returns the input content unchanged (as a
//     new slice, never the input itself).
type Rule interface {
	// ID returns the unique identifier for this rule (e.g. "MD009").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a description of what the rule checks.
	Description() string

	// Tags returns categorization tags for this rule (e.g. ["whitespace"]).
	Tags() []string

	// CanFix returns whether this rule has an implemented corrector.
	// Detection-only rules return false and their Correct is the identity.
	CanFix() bool

	// Detect scans lines and returns zero or more violations.
	Detect(lines []string, opts config.Options) []Violation

	// Correct returns a new line sequence with the rule's best safe
	// automatic correction applied.
	Correct(lines []string, opts config.Options) []string
}

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override Detect (and Correct for
// fixable rules).
//
// Fields are unexported to avoid stutter and name collisions with
// interface methods. Use NewBaseRule.
type BaseRule struct {
	id      string   // Unique identifier (e.g. "MD009")
	name    string   // Human-readable name
	desc    string   // Description
	tags    []string // Categorization tags
	fixable bool     // Whether the rule has a corrector
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{
		id:      id,
		name:    name,
		desc:    desc,
		tags:    tags,
		fixable: fixable,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// CanFix returns whether this rule has an implemented corrector.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// Detect is overridden by concrete rule implementations.
// The default reports nothing.
func (r *BaseRule) Detect(_ []string, _ config.Options) []Violation {
	return nil
}

// Correct is overridden by fixable rules. The default is the identity
// correction required of detection-only rules: a fresh copy of the input.
func (r *BaseRule) Correct(lines []string, _ config.Options) []string {
	return CloneLines(lines)
}
