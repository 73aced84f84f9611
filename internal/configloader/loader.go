// Package configloader resolves the effective configuration from user,
// project, explicit, environment, and CLI sources, in that precedence
// order. Project files use the markdownlint shape, where a rule key maps
// to a boolean toggle or an options object.
package configloader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is the directory the project search starts from.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file given on the command line. It is
	// loaded on top of the discovered files.
	ExplicitPath string

	// IgnoreUserConfig skips the user-level config.
	IgnoreUserConfig bool

	// IgnoreEnv skips environment variable overrides.
	IgnoreEnv bool

	// CLIConfig carries flag values, merged last.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration with its provenance.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files merged, lowest precedence first.
	LoadedFrom []string

	// Warnings holds non-fatal issues found while loading.
	Warnings []string
}

// Load resolves the final configuration. Precedence, highest first:
// CLI flags, environment, explicit file, project file, user file,
// defaults.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	sources := make([]string, 0, 3)
	if !opts.IgnoreUserConfig && paths.User != "" {
		sources = append(sources, paths.User)
	}
	if paths.Project != "" {
		sources = append(sources, paths.Project)
	}
	if paths.Explicit != "" {
		sources = append(sources, paths.Explicit)
	}

	for _, path := range sources {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		cfg = merge(cfg, loaded)
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if !opts.IgnoreEnv {
		result.Warnings = append(result.Warnings, applyEnv(cfg)...)
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, lint.DefaultRegistry, result)

	validation := validate(cfg, lint.DefaultRegistry)
	if len(validation.Errors) > 0 {
		return nil, validation.Errors[0]
	}
	result.Warnings = append(result.Warnings, validation.Warnings...)

	result.Config = cfg
	return result, nil
}

// LoadFile parses a single config file. JSON files are checked against
// the schema first; YAML files go straight to the interpreter.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	raw := make(map[string]any)
	if IsJSONConfig(path) {
		if err := validateJSONConfig(content); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	return interpret(raw)
}

// interpret builds a Config from the decoded document. Reserved keys
// are read first; every remaining key is a rule entry.
func interpret(raw map[string]any) (*config.Config, error) {
	cfg := &config.Config{Rules: make(map[string]config.RuleConfig)}

	for key, value := range raw {
		switch key {
		case "default":
			if b, ok := value.(bool); ok {
				cfg.Default = &b
			}
		case "severity_default":
			if s, ok := value.(string); ok {
				cfg.SeverityDefault = s
			}
		case "ignore":
			cfg.Ignore = toStringSlice(value)
		case "rules":
			nested, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("rules: expected object, got %T", value)
			}
			for ruleKey, ruleValue := range nested {
				cfg.Rules[ruleKey] = interpretRule(ruleValue)
			}
		default:
			cfg.Rules[key] = interpretRule(value)
		}
	}
	return cfg, nil
}

// interpretRule reads one rule entry. A boolean toggles the rule; an
// object with the structured keys is taken as-is; any other object is
// an options map with the rule left enabled.
func interpretRule(value any) config.RuleConfig {
	switch v := value.(type) {
	case bool:
		return config.RuleConfig{Enabled: &v}
	case map[string]any:
		if structured(v) {
			rc := config.RuleConfig{}
			if b, ok := v["enabled"].(bool); ok {
				rc.Enabled = &b
			}
			if s, ok := v["severity"].(string); ok {
				rc.Severity = &s
			}
			if o, ok := v["options"].(map[string]any); ok {
				rc.Options = config.Options(o)
			}
			return rc
		}
		enabled := true
		return config.RuleConfig{Enabled: &enabled, Options: config.Options(v)}
	default:
		return config.RuleConfig{}
	}
}

// structured reports whether a rule object uses the explicit form
// rather than a bare options map.
func structured(v map[string]any) bool {
	for _, key := range []string{"enabled", "severity", "options"} {
		if _, ok := v[key]; ok {
			return true
		}
	}
	return false
}

func toStringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// normalizeRuleKeys rewrites rule names and aliases to canonical IDs so
// the rest of the program only ever looks up by ID.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string)

	for key, ruleCfg := range cfg.Rules {
		id, _, ok := registry.Resolve(key)
		if !ok {
			// Unknown rule, kept so validation can warn about it.
			normalized[key] = ruleCfg
			continue
		}
		if prior, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using last value",
					prior, key, id))
		}
		seen[id] = key
		normalized[id] = ruleCfg
	}
	cfg.Rules = normalized
}
