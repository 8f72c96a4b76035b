package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars are set by common CI providers.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"JENKINS_HOME",
	"BUILDKITE",
	"BITRISE_IO",
	"TF_BUILD",
}

// isTerminalFn reports whether stdout is a terminal. Tests replace it.
var isTerminalFn = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

// IsInteractive reports whether spinners and prompts may be shown: stdout
// must be a terminal and no CI environment variable may be set.
func IsInteractive() bool {
	if !isTerminalFn() {
		return false
	}
	for _, env := range ciEnvVars {
		if os.Getenv(env) != "" {
			return false
		}
	}
	return true
}
