package git

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

// Repository is the composition root of the object model. It knows where the
// repository lives, runs every git command in that directory, and hands out
// Commit, Tree and Blob instances.
//
// The factories memoize: asking twice for the same hash returns the same
// pointer, so entities can be compared by identity and each object is read
// from git at most once per Repository.
type Repository struct {
	path   string
	runner Runner
	logger *slog.Logger

	gitDir lazy[string]

	mu      sync.Mutex
	commits map[Hash]*Commit
	trees   map[Hash]*Tree
	blobs   map[Hash]*Blob
	refs    *ReferenceBag
}

// Option configures a Repository.
type Option func(*Repository)

// WithRunner replaces the default ExecRunner.
func WithRunner(runner Runner) Option {
	return func(r *Repository) {
		r.runner = runner
	}
}

// WithLogger sets the logger used for entity lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// New returns a Repository rooted at path without checking that path is a
// repository. Use Open to verify it.
func New(path string, opts ...Option) *Repository {
	repo := &Repository{
		path:    path,
		commits: make(map[Hash]*Commit),
		trees:   make(map[Hash]*Tree),
		blobs:   make(map[Hash]*Blob),
	}
	for _, opt := range opts {
		opt(repo)
	}
	if repo.logger == nil {
		repo.logger = slog.New(slog.DiscardHandler)
	}
	if repo.runner == nil {
		repo.runner = &ExecRunner{Logger: repo.logger}
	}
	repo.refs = newReferenceBag(repo)
	return repo
}

// Open returns a Repository for path after confirming with git that path is
// inside a repository.
func Open(ctx context.Context, path string, opts ...Option) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	repo := New(abs, opts...)
	if _, err := repo.GitDir(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// Path returns the directory git commands run in.
func (r *Repository) Path() string {
	return r.path
}

// GitDir returns the absolute path of the repository's git directory.
func (r *Repository) GitDir(ctx context.Context) (string, error) {
	return r.gitDir.get(ctx, func(ctx context.Context) (string, error) {
		out, err := r.output(ctx, "rev-parse", "--absolute-git-dir")
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(out)), nil
	})
}

// Commit returns the commit with the given hash. Nothing is read until one of
// its accessors needs data.
func (r *Repository) Commit(hash Hash) *Commit {
	r.mu.Lock()
	defer r.mu.Unlock()

	if commit, ok := r.commits[hash]; ok {
		return commit
	}
	commit := &Commit{repo: r, hash: hash}
	r.commits[hash] = commit
	return commit
}

// Tree returns the tree with the given hash.
func (r *Repository) Tree(hash Hash) *Tree {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tree, ok := r.trees[hash]; ok {
		return tree
	}
	tree := &Tree{repo: r, hash: hash}
	r.trees[hash] = tree
	return tree
}

// Blob returns the blob with the given hash.
func (r *Repository) Blob(hash Hash) *Blob {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blob, ok := r.blobs[hash]; ok {
		return blob
	}
	blob := &Blob{repo: r, hash: hash}
	r.blobs[hash] = blob
	return blob
}

// References returns the repository's reference bag. The same bag is
// returned on every call; use ReferenceBag.Reload to observe ref changes.
func (r *Repository) References() *ReferenceBag {
	return r.refs
}

// Revision resolves a revision expression (hash, abbreviated hash, ref name,
// "HEAD~2", ...) to a commit. An expression git cannot resolve to a commit is
// reported as NotFound.
func (r *Repository) Revision(ctx context.Context, rev string) (*Commit, error) {
	args := []string{"rev-parse", "--verify", "--quiet", "--end-of-options", rev + "^{commit}"}
	res, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		// --quiet keeps stderr empty for an unknown revision; anything on
		// stderr means git itself failed.
		if len(bytes.TrimSpace(res.Stderr)) > 0 {
			return nil, commandError(args, res)
		}
		return nil, &NotFoundError{Kind: "revision", Name: rev}
	}

	hash, ok, err := ParseHashLine(res.Stdout)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Kind: "revision", Name: rev}
	}
	return r.Commit(hash), nil
}

// run executes git in the repository directory and returns the raw result.
// Only failures to obtain an exit status are errors.
func (r *Repository) run(ctx context.Context, args ...string) (Result, error) {
	return r.runner.Run(ctx, r.path, args...)
}

// output executes git and returns stdout, treating a non-zero exit status as
// a CommandError.
func (r *Repository) output(ctx context.Context, args ...string) ([]byte, error) {
	res, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, commandError(args, res)
	}
	return res.Stdout, nil
}

func commandError(args []string, res Result) *CommandError {
	return &CommandError{
		Args:     args,
		ExitCode: res.ExitCode,
		Stderr:   strings.TrimSpace(string(res.Stderr)),
	}
}
