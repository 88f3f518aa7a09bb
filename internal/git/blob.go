package git

import (
	"bytes"
	"context"
)

// Blob is a lazily loaded file content object, read once with
// `git cat-file blob`.
type Blob struct {
	repo *Repository
	hash Hash

	content lazy[[]byte]
}

// Hash returns the blob's identifier. It never reads from git.
func (b *Blob) Hash() Hash {
	return b.hash
}

func (b *Blob) load(ctx context.Context) ([]byte, error) {
	return b.content.get(ctx, func(ctx context.Context) ([]byte, error) {
		return b.repo.output(ctx, "cat-file", "blob", "--end-of-options", string(b.hash))
	})
}

// Content returns the blob's bytes. The returned slice is a copy.
func (b *Blob) Content(ctx context.Context) ([]byte, error) {
	content, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(content), nil
}

// Size returns the length of the content in bytes.
func (b *Blob) Size(ctx context.Context) (int, error) {
	content, err := b.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(content), nil
}
