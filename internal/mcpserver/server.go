// Package mcpserver exposes the linter over the Model Context Protocol
// via stdio transport, so editor agents can lint and fix markdown
// without shelling out to the CLI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/configloader"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/internal/logging"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/config"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/lint"
	"github.com/ernestgwilsonii/markdownlint-mcp-sub000/pkg/runner"
)

// Server wraps the MCP server with the lint and fix tools.
type Server struct {
	mcp      *server.MCPServer
	registry *lint.Registry
	logger   *log.Logger
	locks    *pathLocks
}

// New creates an MCP server with all tools registered.
func New(registry *lint.Registry, version string, logger *log.Logger) *Server {
	if registry == nil {
		registry = lint.DefaultRegistry
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Server{registry: registry, logger: logger, locks: newPathLocks()}

	s.mcp = server.NewMCPServer(
		"markdownlint-mcp",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("lint",
		mcp.WithDescription("Lint a markdown file and report style violations. "+
			"Configuration is discovered from .markdownlint.json or .markdownlint.yaml "+
			"near the file unless an explicit config path is given."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the markdown file")),
		mcp.WithString("config", mcp.Description("Optional path to a markdownlint config file")),
	), s.lint)

	s.mcp.AddTool(mcp.NewTool("fix",
		mcp.WithDescription("Auto-fix style violations in a markdown file. "+
			"Runs correctors repeatedly until the file converges, then writes it back "+
			"atomically. Detection-only violations are reported but left in place."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the markdown file")),
		mcp.WithString("config", mcp.Description("Optional path to a markdownlint config file")),
		mcp.WithString("rules", mcp.Description("Optional comma-separated rule IDs or names to fix")),
		mcp.WithBoolean("dry_run", mcp.Description("Report what would change without writing")),
	), s.fix)

	s.mcp.AddTool(mcp.NewTool("get_configuration",
		mcp.WithDescription("Show the resolved configuration for a directory: "+
			"which files were merged, the effective rule settings, and any warnings."),
		mcp.WithString("path", mcp.Description("Directory to resolve config for (defaults to the working directory)")),
		mcp.WithString("config", mcp.Description("Optional path to a markdownlint config file")),
	), s.getConfiguration)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// loadConfig resolves configuration for a file or directory path.
func (s *Server) loadConfig(ctx context.Context, target, explicit string) (*configloader.LoadResult, error) {
	workDir := target
	if workDir != "" {
		if abs, err := filepath.Abs(workDir); err == nil {
			workDir = abs
		}
		if ext := filepath.Ext(workDir); ext != "" {
			workDir = filepath.Dir(workDir)
		}
	}
	return configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: explicit,
	})
}

// violationPayload is one flattened violation in tool output.
type violationPayload struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"`
	Length   int    `json:"length,omitempty"`
	Fixable  bool   `json:"fixable"`
}

func flatten(results []lint.RuleViolations, cfg *config.Config) []violationPayload {
	payload := []violationPayload{}
	for _, rv := range results {
		severity := string(cfg.RuleSeverity(rv.RuleID))
		for _, v := range rv.Violations {
			payload = append(payload, violationPayload{
				RuleID:   rv.RuleID,
				RuleName: rv.RuleName,
				Severity: severity,
				Message:  v.Message,
				Line:     v.Line,
				Column:   v.Column,
				Length:   v.Length,
				Fixable:  rv.Fixable,
			})
		}
	}
	return payload
}

func (s *Server) lint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	explicit := req.GetString("config", "")

	loaded, err := s.loadConfig(ctx, path, explicit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load config: %v", err)), nil
	}

	result, err := runner.LintFile(ctx, path, s.registry, loaded.Config)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	violations := flatten(result.Results, loaded.Config)
	s.logger.Debug("lint tool",
		logging.FieldPath, path,
		logging.FieldViolations, len(violations))

	return jsonResult(map[string]any{
		"path":       path,
		"violations": violations,
		"total":      len(violations),
		"warnings":   loaded.Warnings,
	})
}

func (s *Server) fix(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	explicit := req.GetString("config", "")
	dryRun := req.GetBool("dry_run", false)
	var rules []string
	if raw := req.GetString("rules", ""); raw != "" {
		rules = splitRuleList(raw)
	}

	loaded, err := s.loadConfig(ctx, path, explicit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load config: %v", err)), nil
	}
	if len(rules) == 0 {
		rules = loaded.Config.FixRules
	}

	unlock := s.locks.Lock(path)
	defer unlock()

	outcome, err := runner.FixFile(ctx, path, s.registry, loaded.Config, rules, dryRun)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("fix tool",
		logging.FieldPath, path,
		logging.FieldFixed, outcome.Result.Fixed,
		logging.FieldIterations, outcome.Result.Iterations,
		logging.FieldReason, string(outcome.Result.Reason),
		logging.FieldDryRun, dryRun)

	return jsonResult(map[string]any{
		"path":       path,
		"fixed":      outcome.Result.Fixed,
		"iterations": outcome.Result.Iterations,
		"reason":     string(outcome.Result.Reason),
		"changed":    outcome.Result.Changed,
		"written":    outcome.Written,
		"dryRun":     dryRun,
		"remaining":  flatten(outcome.Result.After, loaded.Config),
	})
}

func (s *Server) getConfiguration(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := req.GetString("path", "")
	explicit := req.GetString("config", "")

	loaded, err := s.loadConfig(ctx, target, explicit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load config: %v", err)), nil
	}

	rules := map[string]any{}
	for _, rule := range s.registry.Rules() {
		rules[rule.ID()] = map[string]any{
			"name":     rule.Name(),
			"enabled":  loaded.Config.RuleEnabled(rule.ID()),
			"severity": string(loaded.Config.RuleSeverity(rule.ID())),
			"fixable":  rule.CanFix(),
			"options":  loaded.Config.RuleOptions(rule.ID()),
		}
	}

	return jsonResult(map[string]any{
		"loadedFrom":      loaded.LoadedFrom,
		"warnings":        loaded.Warnings,
		"severityDefault": loaded.Config.SeverityDefault,
		"ignore":          loaded.Config.Ignore,
		"rules":           rules,
	})
}

// splitRuleList parses a comma-separated rule list, trimming blanks.
func splitRuleList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
