package git

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFamilies(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		notWant []error
		message string
	}{
		{
			name:    "command with stderr",
			err:     &CommandError{Args: []string{"cat-file", "commit", "x"}, ExitCode: 128, Stderr: "fatal: bad object"},
			want:    ErrCommandFailed,
			notWant: []error{ErrParse, ErrNotFound},
			message: "git cat-file commit x: fatal: bad object",
		},
		{
			name:    "command without stderr",
			err:     &CommandError{Args: []string{"show-ref"}, ExitCode: 2},
			want:    ErrCommandFailed,
			message: "git show-ref: exit status 2",
		},
		{
			name:    "command with cause",
			err:     &CommandError{Args: []string{"log"}, ExitCode: -1, Err: context.DeadlineExceeded},
			want:    context.DeadlineExceeded,
			message: "git log: context deadline exceeded",
		},
		{
			name:    "parse with line",
			err:     &ParseError{Source: sourceShowRef, Line: "junk", Reason: "malformed reference line"},
			want:    ErrParse,
			notWant: []error{ErrCommandFailed, ErrNotFound},
			message: `parse show-ref: malformed reference line: "junk"`,
		},
		{
			name:    "parse structural",
			err:     &ParseError{Source: sourceCommit, Reason: "missing tree header"},
			want:    ErrParse,
			message: "parse cat-file commit: missing tree header",
		},
		{
			name:    "not found",
			err:     &NotFoundError{Kind: "reference", Name: "refs/heads/x"},
			want:    ErrNotFound,
			notWant: []error{ErrCommandFailed, ErrParse},
			message: "reference not found: refs/heads/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			wrapped := fmt.Errorf("loading: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.want)
			for _, other := range tt.notWant {
				assert.False(t, errors.Is(wrapped, other), "unexpected match for %v", other)
			}
		})
	}
}
