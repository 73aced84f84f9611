package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldTool       = "tool"

	// Lint and fix fields.
	FieldRules      = "rules"
	FieldViolations = "violations"
	FieldFixed      = "fixed"
	FieldIterations = "iterations"
	FieldReason     = "reason"
	FieldDryRun     = "dry_run"
	FieldChanged    = "changed"

	// Configuration fields.
	FieldConfigPath = "config_path"
	FieldFormat     = "format"
	FieldSeverity   = "severity"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
