package cli

// Exit codes for the gitchangelog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitRuntimeError indicates generation failed (typically output write)
	ExitRuntimeError = 1

	// ExitConfigError indicates invalid configuration
	ExitConfigError = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3
)

// ExitCodeError carries a specific process exit code through the cobra
// RunE error path.
type ExitCodeError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	return ""
}

// NewExitError creates an error that resolves to the given exit code.
func NewExitError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}
