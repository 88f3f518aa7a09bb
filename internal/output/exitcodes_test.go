package output

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/grove/internal/git"
)

func TestExitError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ExitError
		wantCode int
		wantMsg  string
	}{
		{"user error", NewUserError("unknown format: xml"), ExitUserError, "unknown format: xml"},
		{"system error", NewSystemErrorWithCause("watching refs", nil), ExitSystemError, "watching refs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.NoError(t, tt.err.Unwrap())
		})
	}
}

func TestNewSystemErrorWithCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewSystemErrorWithCause("write failed", cause)

	assert.Equal(t, ExitSystemError, err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestFromError(t *testing.T) {
	notFound := &git.NotFoundError{Kind: "revision", Name: "nope"}
	failed := &git.CommandError{Args: []string{"cat-file", "commit", "x"}, ExitCode: 128, Stderr: "fatal: bad object"}
	parse := &git.ParseError{Source: "show-ref", Reason: "malformed"}

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantIs   error
	}{
		{"not found", notFound, ExitUserError, git.ErrNotFound},
		{"wrapped not found", fmt.Errorf("resolving: %w", notFound), ExitUserError, git.ErrNotFound},
		{"command failure", failed, ExitSystemError, git.ErrCommandFailed},
		{"parse failure", parse, ExitSystemError, git.ErrParse},
		{"untyped", errors.New("boom"), ExitUserError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.err.Error(), got.Message)
			if tt.wantIs != nil {
				assert.ErrorIs(t, got, tt.wantIs)
			}
			assert.Equal(t, tt.wantCode, GetExitCode(tt.err))
		})
	}
}

func TestFromError_KeepsExitError(t *testing.T) {
	exitErr := NewUserError("bad flag")
	assert.Same(t, exitErr, FromError(fmt.Errorf("wrapped: %w", exitErr)))
	assert.Nil(t, FromError(nil))
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
}
