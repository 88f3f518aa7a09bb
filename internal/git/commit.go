package git

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Commit is a lazily loaded commit. It holds only its hash until an accessor
// needs data, then reads the raw object once with `git cat-file commit` and
// keeps every field for the rest of its life.
type Commit struct {
	repo *Repository
	hash Hash

	data lazy[*commitFields]

	treeOnce sync.Once
	tree     *Tree
}

type commitFields struct {
	CommitData
	short string
}

// Hash returns the commit's identifier. It never reads from git.
func (c *Commit) Hash() Hash {
	return c.hash
}

func (c *Commit) load(ctx context.Context) (*commitFields, error) {
	return c.data.get(ctx, func(ctx context.Context) (*commitFields, error) {
		out, err := c.repo.output(ctx, "cat-file", "commit", "--end-of-options", string(c.hash))
		if err != nil {
			return nil, err
		}
		parsed, err := ParseCommit(out)
		if err != nil {
			return nil, err
		}
		c.repo.logger.DebugContext(ctx, "commit loaded",
			slog.String("hash", string(c.hash)),
			slog.Int("parents", len(parsed.Parents)),
		)
		return &commitFields{CommitData: parsed, short: shortMessage(parsed.Message)}, nil
	})
}

// Load reads the commit if it has not been read yet. Accessors call it
// implicitly; calling it directly surfaces errors early.
func (c *Commit) Load(ctx context.Context) error {
	_, err := c.load(ctx)
	return err
}

// TreeHash returns the hash of the commit's root tree.
func (c *Commit) TreeHash(ctx context.Context) (Hash, error) {
	f, err := c.load(ctx)
	if err != nil {
		return "", err
	}
	return f.Tree, nil
}

// ParentHashes returns the parent hashes in declaration order, first parent
// first. A root commit has none; a merge has two or more.
func (c *Commit) ParentHashes(ctx context.Context) ([]Hash, error) {
	f, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(f.Parents), nil
}

// Parents returns the parent commits in declaration order. They are obtained
// from the repository factory and are not loaded yet.
func (c *Commit) Parents(ctx context.Context) ([]*Commit, error) {
	f, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	parents := make([]*Commit, 0, len(f.Parents))
	for _, hash := range f.Parents {
		parents = append(parents, c.repo.Commit(hash))
	}
	return parents, nil
}

// Tree returns the commit's root tree. The same *Tree is returned on every
// call.
func (c *Commit) Tree(ctx context.Context) (*Tree, error) {
	f, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.treeOnce.Do(func() {
		c.tree = c.repo.Tree(f.Tree)
	})
	return c.tree, nil
}

// Author returns the author signature.
func (c *Commit) Author(ctx context.Context) (Signature, error) {
	f, err := c.load(ctx)
	if err != nil {
		return Signature{}, err
	}
	return f.Author, nil
}

// Committer returns the committer signature.
func (c *Commit) Committer(ctx context.Context) (Signature, error) {
	f, err := c.load(ctx)
	if err != nil {
		return Signature{}, err
	}
	return f.Committer, nil
}

// AuthorName returns the author's name.
func (c *Commit) AuthorName(ctx context.Context) (string, error) {
	sig, err := c.Author(ctx)
	return sig.Name, err
}

// AuthorEmail returns the author's email.
func (c *Commit) AuthorEmail(ctx context.Context) (string, error) {
	sig, err := c.Author(ctx)
	return sig.Email, err
}

// AuthorDate returns when the change was authored.
func (c *Commit) AuthorDate(ctx context.Context) (time.Time, error) {
	sig, err := c.Author(ctx)
	return sig.When, err
}

// CommitterName returns the committer's name.
func (c *Commit) CommitterName(ctx context.Context) (string, error) {
	sig, err := c.Committer(ctx)
	return sig.Name, err
}

// CommitterEmail returns the committer's email.
func (c *Commit) CommitterEmail(ctx context.Context) (string, error) {
	sig, err := c.Committer(ctx)
	return sig.Email, err
}

// CommitterDate returns when the commit was made.
func (c *Commit) CommitterDate(ctx context.Context) (time.Time, error) {
	sig, err := c.Committer(ctx)
	return sig.When, err
}

// Message returns the full commit message as stored.
func (c *Commit) Message(ctx context.Context) (string, error) {
	f, err := c.load(ctx)
	if err != nil {
		return "", err
	}
	return f.Message, nil
}

// ShortMessage returns the first line of the message, capped at 80
// characters followed by "..." when longer.
func (c *Commit) ShortMessage(ctx context.Context) (string, error) {
	f, err := c.load(ctx)
	if err != nil {
		return "", err
	}
	return f.short, nil
}

// LastModification returns the most recent commit reachable from c that
// touched path. A leading "/" is ignored. If no commit touched the path the
// error is a NotFoundError.
func (c *Commit) LastModification(ctx context.Context, path string) (*Commit, error) {
	path = strings.TrimPrefix(path, "/")

	out, err := c.repo.output(ctx, "log", "--format=format:%H", "-n", "1", "--end-of-options", string(c.hash), "--", path)
	if err != nil {
		return nil, err
	}
	hash, ok, err := ParseHashLine(out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Kind: "modification of path", Name: path}
	}
	return c.repo.Commit(hash), nil
}

// FirstParentHistory returns c followed by its first-parent ancestors, at
// most limit commits in total. A limit of zero or less means no limit.
func (c *Commit) FirstParentHistory(ctx context.Context, limit int) ([]*Commit, error) {
	var history []*Commit
	for current := c; current != nil; {
		history = append(history, current)
		if limit > 0 && len(history) == limit {
			break
		}

		parents, err := current.ParentHashes(ctx)
		if err != nil {
			return nil, err
		}
		current = nil
		if len(parents) > 0 {
			current = c.repo.Commit(parents[0])
		}
	}
	return history, nil
}
