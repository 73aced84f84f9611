package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint/rules"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInterpretShapes(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"default":          true,
		"severity_default": "error",
		"ignore":           []any{"vendor/**", "CHANGELOG.md"},
		"MD009":            false,
		"MD013": map[string]any{
			"line_length": 80,
		},
		"MD003": map[string]any{
			"enabled":  true,
			"severity": "info",
			"options":  map[string]any{"style": "atx"},
		},
	}

	cfg, err := interpret(raw)
	require.NoError(t, err)

	require.NotNil(t, cfg.Default)
	assert.True(t, *cfg.Default)
	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, []string{"vendor/**", "CHANGELOG.md"}, cfg.Ignore)

	// Bare boolean toggles the rule.
	rc := cfg.Rules["MD009"]
	require.NotNil(t, rc.Enabled)
	assert.False(t, *rc.Enabled)

	// A plain object is an options map with the rule left enabled.
	rc = cfg.Rules["MD013"]
	require.NotNil(t, rc.Enabled)
	assert.True(t, *rc.Enabled)
	assert.Equal(t, 80, rc.Options.Int("line_length", 120))

	// The structured form is taken field by field.
	rc = cfg.Rules["MD003"]
	require.NotNil(t, rc.Enabled)
	require.NotNil(t, rc.Severity)
	assert.Equal(t, "info", *rc.Severity)
	assert.Equal(t, "atx", rc.Options.String("style", "consistent"))
}

func TestInterpretRulesKey(t *testing.T) {
	t.Parallel()

	cfg, err := interpret(map[string]any{
		"rules": map[string]any{
			"MD009": false,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, cfg.Rules["MD009"].Enabled)
	assert.False(t, *cfg.Rules["MD009"].Enabled)

	_, err = interpret(map[string]any{"rules": "not an object"})
	assert.Error(t, err)
}

func TestLoadFileYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), ".markdownlint.yaml", `
default: true
MD009: false
MD013:
  line_length: 80
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Default)
	assert.False(t, *cfg.Rules["MD009"].Enabled)
	assert.Equal(t, 80, cfg.Rules["MD013"].Options.Int("line_length", 120))
}

func TestLoadFileJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), ".markdownlint.json", `{
  "default": true,
  "MD009": false
}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, *cfg.Rules["MD009"].Enabled)
}

func TestLoadFileJSONSchemaViolation(t *testing.T) {
	t.Parallel()

	// "default" must be a boolean.
	path := writeFile(t, t.TempDir(), ".markdownlint.json", `{"default": "yes"}`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNormalizeRuleKeys(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	rules.RegisterAll(reg)

	off := false
	cfg := &config.Config{Rules: map[string]config.RuleConfig{
		"trailing-whitespace": {Enabled: &off}, // rule name
		"single-title":        {Enabled: &off}, // legacy alias
		"made-up-rule":        {Enabled: &off}, // unknown, kept for validation
	}}
	result := &LoadResult{}

	normalizeRuleKeys(cfg, reg, result)

	assert.Contains(t, cfg.Rules, "MD009")
	assert.Contains(t, cfg.Rules, "MD025")
	assert.Contains(t, cfg.Rules, "made-up-rule")
	assert.NotContains(t, cfg.Rules, "trailing-whitespace")
	assert.Empty(t, result.Warnings)
}

func TestNormalizeRuleKeysDuplicate(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	rules.RegisterAll(reg)

	off := false
	cfg := &config.Config{Rules: map[string]config.RuleConfig{
		"MD009":               {Enabled: &off},
		"trailing-whitespace": {Enabled: &off},
	}}
	result := &LoadResult{}

	normalizeRuleKeys(cfg, reg, result)

	assert.Len(t, cfg.Rules, 1)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "MD009")
}

func TestMergePrecedence(t *testing.T) {
	t.Parallel()

	baseOn := true
	overrideOff := false
	base := &config.Config{
		SeverityDefault: "warning",
		Rules: map[string]config.RuleConfig{
			"MD009": {Enabled: &baseOn, Options: config.Options{"br_spaces": 2}},
			"MD010": {Enabled: &baseOn},
		},
		Ignore: []string{"vendor/**"},
	}
	override := &config.Config{
		SeverityDefault: "error",
		Rules: map[string]config.RuleConfig{
			"MD009": {Enabled: &overrideOff, Options: config.Options{"strict": true}},
		},
		Ignore: []string{"dist/**"},
	}

	merged := merge(base, override)

	assert.Equal(t, "error", merged.SeverityDefault)

	// Per-rule merge: the toggle flips, the option maps combine.
	rc := merged.Rules["MD009"]
	assert.False(t, *rc.Enabled)
	assert.Equal(t, 2, rc.Options.Int("br_spaces", 0))
	assert.True(t, rc.Options.Bool("strict", false))

	// Untouched rules survive, slices replace wholesale.
	assert.True(t, *merged.Rules["MD010"].Enabled)
	assert.Equal(t, []string{"dist/**"}, merged.Ignore)

	// Base is not mutated.
	assert.Equal(t, "warning", base.SeverityDefault)
	assert.True(t, *base.Rules["MD009"].Enabled)
}

func TestMergeNil(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Same(t, cfg, merge(nil, cfg))
	assert.Same(t, cfg, merge(cfg, nil))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MDLINTMCP_SEVERITY_DEFAULT", "error")
	t.Setenv("MDLINTMCP_FORMAT", "json")
	t.Setenv("MDLINTMCP_IGNORE", "vendor/** , dist/**")
	t.Setenv("MDLINTMCP_FIX_RULES", "MD009,MD047")

	cfg := config.NewConfig()
	warnings := applyEnv(cfg)

	assert.Empty(t, warnings)
	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, []string{"vendor/**", "dist/**"}, cfg.Ignore)
	assert.Equal(t, []string{"MD009", "MD047"}, cfg.FixRules)
}

func TestApplyEnvInvalidBool(t *testing.T) {
	t.Setenv("MDLINTMCP_DRY_RUN", "maybe")

	cfg := config.NewConfig()
	warnings := applyEnv(cfg)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "DRY_RUN")
	assert.False(t, cfg.DryRun)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	rules.RegisterAll(reg)

	t.Run("clean config", func(t *testing.T) {
		t.Parallel()
		result := validate(config.NewConfig(), reg)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	})

	t.Run("bad severity default", func(t *testing.T) {
		t.Parallel()
		result := validate(&config.Config{SeverityDefault: "loud"}, reg)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0].Error(), "severity_default")
	})

	t.Run("unknown rule warns", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Rules: map[string]config.RuleConfig{
			"made-up-rule": {},
		}}
		result := validate(cfg, reg)
		assert.Empty(t, result.Errors)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "made-up-rule")
	})

	t.Run("bad rule severity", func(t *testing.T) {
		t.Parallel()
		bad := "fatal"
		cfg := &config.Config{Rules: map[string]config.RuleConfig{
			"MD009": {Severity: &bad},
		}}
		result := validate(cfg, reg)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0].Error(), "MD009")
	})

	t.Run("bad ignore pattern", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Ignore: []string{"["}}
		result := validate(cfg, reg)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0].Error(), "glob")
	})
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	want := writeFile(t, root, ".markdownlint.json", `{}`)

	nested := filepath.Join(root, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := findProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindProjectConfigStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	nested := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(nested, 0o755))

	got, err := findProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindProjectConfigPreference(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, root, ".markdownlint.yaml", "default: true\n")
	want := writeFile(t, root, ".markdownlint.json", `{}`)

	got, err := findProjectConfig(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDiscoverPathsCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DiscoverPaths(ctx, t.TempDir())
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	workDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(workDir, "no-user-config"))
	require.NoError(t, os.Mkdir(filepath.Join(workDir, ".git"), 0o755))
	projectPath := writeFile(t, workDir, ".markdownlint.yaml", `
trailing-whitespace: false
line-length:
  line_length: 80
`)

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       workDir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{projectPath}, result.LoadedFrom)
	assert.Equal(t, projectPath, result.Paths.Project)

	// Rule keys are canonical IDs after loading.
	assert.False(t, result.Config.RuleEnabled("MD009"))
	assert.Equal(t, 80, result.Config.RuleOptions("MD013").Int("line_length", 120))
}

func TestLoadExplicitPathWins(t *testing.T) {
	workDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(workDir, "no-user-config"))
	require.NoError(t, os.Mkdir(filepath.Join(workDir, ".git"), 0o755))
	writeFile(t, workDir, ".markdownlint.yaml", "MD009: false\n")
	explicit := writeFile(t, workDir, "override.yaml", "MD009: true\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       workDir,
		ExplicitPath:     explicit,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	})
	require.NoError(t, err)

	assert.True(t, result.Config.RuleEnabled("MD009"))
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoadValidationFailure(t *testing.T) {
	workDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(workDir, "no-user-config"))
	require.NoError(t, os.Mkdir(filepath.Join(workDir, ".git"), 0o755))
	writeFile(t, workDir, ".markdownlint.yaml", "severity_default: loud\n")

	_, err := Load(context.Background(), LoadOptions{
		WorkingDir:       workDir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	})
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Equal(t, []string{"a"}, splitList("a,,  ,"))
}

func TestIsJSONConfig(t *testing.T) {
	t.Parallel()

	assert.True(t, IsJSONConfig(".markdownlint.json"))
	assert.False(t, IsJSONConfig(".markdownlint.yaml"))
}
