package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorKernel   = 2   // Indicates a kernel could not be reconfigured or run.
	ExitErrorContract = 3   // Indicates the autotuner was driven out of order.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// KernelError reports a failed kernel lifecycle or compute operation.
// A kernel that cannot be reconfigured leaves the host without a usable
// kernel, so callers treat it as fatal rather than retrying.
type KernelError struct {
	// Kernel is the label of the kernel that failed.
	Kernel string
	// Op names the kernel operation ("setup", "compute", ...).
	Op string
	// Cause is the underlying error reported by the kernel.
	Cause error
}

// Error returns a formatted message naming the kernel and operation.
func (e KernelError) Error() string {
	return fmt.Sprintf("kernel %s: %s: %v", e.Kernel, e.Op, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e KernelError) Unwrap() error { return e.Cause }

// ContractError reports that the autotuner entry point was called out of
// the required order, e.g. a search before the workload-less initialization.
type ContractError struct {
	// Kernel is the label of the kernel whose tuning state was violated.
	Kernel string
	// Message explains the violated precondition.
	Message string
}

// Error returns a formatted message describing the violation.
func (e ContractError) Error() string {
	return fmt.Sprintf("autotune contract violation for %s: %s", e.Kernel, e.Message)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error returned by the tuning pipeline to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		cfgErr      ConfigError
		valErr      ValidationError
		kernelErr   KernelError
		contractErr ContractError
	)
	switch {
	case IsContextError(err):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case errors.As(err, &kernelErr):
		return ExitErrorKernel
	case errors.As(err, &contractErr):
		return ExitErrorContract
	default:
		return ExitErrorGeneric
	}
}
