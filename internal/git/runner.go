package git

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Result is the captured outcome of one git invocation.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes git with the given arguments in dir.
//
// A process that runs and exits non-zero is not an error at this level: the
// status is reported in Result.ExitCode and the caller decides what it means.
// An error is returned only when no exit status could be obtained (binary
// missing, context cancelled or expired).
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (Result, error)
}

// ExecRunner runs the git binary through os/exec. Arguments are passed as
// argv, never through a shell.
type ExecRunner struct {
	// Binary is the git executable. Empty means "git" from PATH.
	Binary string
	// Timeout bounds each invocation. Zero means no limit beyond ctx.
	Timeout time.Duration
	// Logger receives one debug record per invocation. Nil disables logging.
	Logger *slog.Logger
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	binary := r.Binary
	if binary == "" {
		binary = "git"
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.log(ctx, dir, args, -1, time.Since(start))
			return res, &CommandError{Args: args, ExitCode: -1, Err: ctxErr}
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The process never started: binary not found or not executable.
			r.log(ctx, dir, args, -1, time.Since(start))
			return res, &CommandError{Args: args, ExitCode: -1, Err: err}
		}
		res.ExitCode = exitErr.ExitCode()
	}

	r.log(ctx, dir, args, res.ExitCode, time.Since(start))
	return res, nil
}

func (r *ExecRunner) log(ctx context.Context, dir string, args []string, code int, elapsed time.Duration) {
	if r.Logger == nil {
		return
	}
	r.Logger.DebugContext(ctx, "git",
		slog.String("args", strings.Join(args, " ")),
		slog.String("dir", dir),
		slog.Int("exit", code),
		slog.Duration("elapsed", elapsed),
	)
}
