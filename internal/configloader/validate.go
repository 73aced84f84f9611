package configloader

import (
	"fmt"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// validationResult separates hard failures from advisory findings.
// Unknown rule keys are warnings so configs shared with other linters
// still load.
type validationResult struct {
	Errors   []error
	Warnings []string
}

// severityRule accepts the empty string so unset fields fall through to
// the default.
//
//nolint:gochecknoglobals // Read-only validation rule.
var severityRule = validation.In("", "error", "warning", "info")

//nolint:gochecknoglobals // Read-only validation rule.
var formatRule = validation.In(
	config.OutputFormat(""), config.FormatText, config.FormatJSON,
)

// validate checks the merged configuration before it is handed to the
// engine.
func validate(cfg *config.Config, registry *lint.Registry) *validationResult {
	result := &validationResult{}
	if cfg == nil {
		return result
	}

	if err := validation.Validate(cfg.SeverityDefault, severityRule); err != nil {
		result.Errors = append(result.Errors,
			fmt.Errorf("severity_default: %q: %w", cfg.SeverityDefault, err))
	}
	if err := validation.Validate(cfg.Format, formatRule); err != nil {
		result.Errors = append(result.Errors,
			fmt.Errorf("format: %q: %w", cfg.Format, err))
	}

	for ruleKey, ruleCfg := range cfg.Rules {
		if _, ok := registry.Get(ruleKey); !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown rule %q; it will be ignored", ruleKey))
		}
		if ruleCfg.Severity != nil {
			if err := validation.Validate(*ruleCfg.Severity, severityRule); err != nil {
				result.Errors = append(result.Errors,
					fmt.Errorf("rules.%s.severity: %q: %w", ruleKey, *ruleCfg.Severity, err))
			}
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors,
				fmt.Errorf("ignore[%d]: invalid glob pattern %q: %w", i, pattern, err))
		}
	}

	return result
}
