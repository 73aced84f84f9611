package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
)

// envVarPrefix is the prefix for all environment overrides.
const envVarPrefix = "MDLINTMCP_"

// applyEnv overlays environment variables onto cfg, returning a warning
// for each value it could not interpret.
func applyEnv(cfg *config.Config) []string {
	var warnings []string
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "SEVERITY_DEFAULT"); v != "" {
		cfg.SeverityDefault = v
	}
	if v := os.Getenv(envVarPrefix + "FORMAT"); v != "" {
		cfg.Format = config.OutputFormat(v)
	}
	if v := os.Getenv(envVarPrefix + "DRY_RUN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			warnings = append(warnings,
				fmt.Sprintf("invalid boolean for %sDRY_RUN: %q", envVarPrefix, v))
		} else {
			cfg.DryRun = b
		}
	}
	if v := os.Getenv(envVarPrefix + "IGNORE"); v != "" {
		cfg.Ignore = splitList(v)
	}
	if v := os.Getenv(envVarPrefix + "FIX_RULES"); v != "" {
		cfg.FixRules = splitList(v)
	}

	return warnings
}

// splitList parses a comma-separated value, trimming each element.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ListEnvVars describes the supported environment variables, for help
// output.
func ListEnvVars() map[string]string {
	return map[string]string{
		envVarPrefix + "SEVERITY_DEFAULT": "Default severity: error, warning, or info",
		envVarPrefix + "FORMAT":           "Output format: text or json",
		envVarPrefix + "DRY_RUN":          "Dry-run mode: true or false",
		envVarPrefix + "IGNORE":           "Comma-separated ignore patterns",
		envVarPrefix + "FIX_RULES":        "Comma-separated rule IDs to fix",
		envVarPrefix + "LOG_LEVEL":        "Log level: debug, info, warn, or error",
	}
}
