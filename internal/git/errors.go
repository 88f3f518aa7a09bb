package git

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is. Each is matched by the concrete error type of the
// same family.
var (
	ErrCommandFailed = errors.New("git command failed")
	ErrParse         = errors.New("unexpected git output")
	ErrNotFound      = errors.New("not found")
)

// CommandError reports a git invocation that did not succeed: a non-zero
// exit status, a missing binary, or an expired context.
type CommandError struct {
	Args     []string // argv after the binary name
	ExitCode int      // -1 when the process never produced a status
	Stderr   string   // trimmed standard error
	Err      error    // underlying cause, if any
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	var b strings.Builder
	b.WriteString("git")
	for _, arg := range e.Args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	switch {
	case e.Stderr != "":
		fmt.Fprintf(&b, ": %s", e.Stderr)
	case e.Err != nil:
		fmt.Fprintf(&b, ": %v", e.Err)
	default:
		fmt.Fprintf(&b, ": exit status %d", e.ExitCode)
	}
	return b.String()
}

// Is matches ErrCommandFailed.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// ParseError reports output that was captured but did not match the
// expected grammar.
type ParseError struct {
	Source string // the command whose output was parsed, e.g. "cat-file commit"
	Line   string // offending line, empty when the violation is structural
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("parse %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("parse %s: %s: %q", e.Source, e.Reason, e.Line)
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NotFoundError reports a well-formed lookup that matched nothing.
type NotFoundError struct {
	Kind string // "reference", "revision", "tree entry", ...
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
