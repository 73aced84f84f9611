// Package fix applies rule correctors repeatedly until the document
// settles. Correctors can reveal new violations for one another, so a
// single pass is not enough: inserting a blank line can push content
// against a heading, and trimming whitespace can empty a line.
package fix

import (
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// DefaultMaxIterations bounds the fix loop. Well-behaved correctors
// converge in two or three passes; the cap guards against a corrector
// pair that keeps undoing each other.
const DefaultMaxIterations = 10

// Reason records why the fix loop stopped.
type Reason string

const (
	// ReasonConverged means no fixable violations remain.
	ReasonConverged Reason = "converged"

	// ReasonNoProgress means fixable violations remain but a full pass
	// of correctors left the document unchanged.
	ReasonNoProgress Reason = "no_progress"

	// ReasonCapReached means the iteration cap stopped the loop.
	ReasonCapReached Reason = "cap_reached"
)

// Result describes a fix run.
type Result struct {
	// Lines is the corrected document.
	Lines []string

	// Before and After hold the violations detected on entry and on the
	// final document, across all enabled rules.
	Before []lint.RuleViolations
	After  []lint.RuleViolations

	// Fixed is the drop in total violation count. Zero when the
	// document was already clean or nothing could be fixed.
	Fixed int

	// Iterations is the number of corrector passes applied.
	Iterations int

	// Changed reports whether Lines differ from the input document.
	Changed bool

	Reason Reason
}

// fixableViolations counts violations belonging to rules with correctors.
func fixableViolations(results []lint.RuleViolations) int {
	total := 0
	for _, rv := range results {
		if rv.Fixable {
			total += len(rv.Violations)
		}
	}
	return total
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Run detects and corrects until the document converges, makes no
// progress, or hits maxIterations. A nil or empty ids slice means every
// enabled fixable rule; maxIterations <= 0 means DefaultMaxIterations.
// Detection-only rules are reported in Before and After but never block
// convergence.
func Run(reg *lint.Registry, lines []string, cfg *config.Config, ids []string, maxIterations int) Result {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	candidates := ids
	if len(candidates) == 0 {
		for _, id := range reg.FixableIDs() {
			if cfg == nil || cfg.RuleEnabled(id) {
				candidates = append(candidates, id)
			}
		}
	}

	result := Result{
		Lines:  lint.CloneLines(lines),
		Before: lint.Detect(reg, lines, cfg, nil),
		Reason: ReasonConverged,
	}

	current := lint.Detect(reg, result.Lines, cfg, candidates)
	for iter := 0; ; iter++ {
		if fixableViolations(current) == 0 {
			result.Reason = ReasonConverged
			break
		}
		if iter == maxIterations {
			result.Reason = ReasonCapReached
			break
		}

		next := reg.ApplyCorrectors(result.Lines, candidates, cfg)
		result.Iterations++
		if equalLines(next, result.Lines) {
			result.Reason = ReasonNoProgress
			break
		}
		result.Lines = next
		current = lint.Detect(reg, result.Lines, cfg, candidates)
	}

	result.After = lint.Detect(reg, result.Lines, cfg, nil)
	result.Fixed = lint.CountViolations(result.Before) - lint.CountViolations(result.After)
	result.Changed = !equalLines(result.Lines, lines)
	return result
}
