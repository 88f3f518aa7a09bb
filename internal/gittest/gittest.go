// Package gittest builds throwaway git repositories for tests.
package gittest

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Repo is a repository created under t.TempDir.
type Repo struct {
	t   *testing.T
	Dir string
}

// New initializes an empty repository on branch main. The test is skipped
// when git is not installed.
func New(t *testing.T) *Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	repo := &Repo{t: t, Dir: t.TempDir()}
	repo.Git("init", "--initial-branch=main")
	repo.Git("config", "user.email", "test@example.com")
	repo.Git("config", "user.name", "Test User")
	repo.Git("config", "commit.gpgsign", "false")
	repo.Git("config", "tag.gpgsign", "false")
	return repo
}

// Git runs git in the repository and returns trimmed stdout. Author and
// committer dates are pinned so hashes are stable within a test.
func (r *Repo) Git(args ...string) string {
	r.t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_DATE=1700000000 +0100",
		"GIT_COMMITTER_DATE=1700003600 -0500",
		"GIT_CONFIG_NOSYSTEM=1",
	)
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		r.t.Fatalf("git %v failed: %v\n%s", args, err, stderr)
	}
	return strings.TrimSpace(string(out))
}

// Write creates or replaces a file relative to the repository root.
func (r *Repo) Write(path, content string) {
	r.t.Helper()
	full := filepath.Join(r.Dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
		r.t.Fatalf("write %s: %v", path, err)
	}
}

// Commit writes files, stages everything and commits. It returns the new
// commit hash.
func (r *Repo) Commit(message string, files map[string]string) string {
	r.t.Helper()
	for path, content := range files {
		r.Write(path, content)
	}
	r.Git("add", "-A")
	r.Git("commit", "--allow-empty", "-q", "-m", message)
	return r.Git("rev-parse", "HEAD")
}
