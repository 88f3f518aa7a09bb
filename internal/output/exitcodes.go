// Package output provides structured output and error handling for the grove CLI.
package output

import (
	"errors"

	"github.com/gorewood/grove/internal/git"
)

// Exit codes:
// 0 = Success
// 1 = User error (bad args, unknown revision, path or reference)
// 2 = System error (git failed, unexpected git output, I/O error)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, invalid flag values.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// FromError maps an error from the object model onto an ExitError.
// Lookups that matched nothing are the user's problem; failed or
// unparseable git invocations are the system's. An ExitError already in
// the chain is returned as is, and nil stays nil.
func FromError(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	switch {
	case errors.Is(err, git.ErrNotFound):
		return &ExitError{Code: ExitUserError, Message: err.Error(), Cause: err}
	case errors.Is(err, git.ErrCommandFailed), errors.Is(err, git.ErrParse):
		return NewSystemErrorWithCause(err.Error(), err)
	default:
		return &ExitError{Code: ExitUserError, Message: err.Error(), Cause: err}
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for untyped errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return FromError(err).Code
}
