package cli

import "errors"

// ErrLintIssuesFound is returned when lint completes but issues remain.
// main turns it into ExitLintIssues without printing a stack of noise.
var ErrLintIssuesFound = errors.New("lint issues found")

// ErrConfigLoad wraps configuration loading failures so main can map
// them to ExitConfigError.
var ErrConfigLoad = errors.New("failed to load configuration")

// Exit codes, following sysexits.h where one fits.
const (
	ExitSuccess       = 0
	ExitLintIssues    = 1
	ExitInvalidUsage  = 64
	ExitConfigError   = 65
	ExitInternalError = 70
	ExitIOError       = 74
)
