package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gorewood/grove/internal/git"
)

func defaultRev(rev string) string {
	if rev == "" {
		return "HEAD"
	}
	return rev
}

// resolve turns a revision into a commit, rejecting an empty input.
func resolve(ctx context.Context, repo *git.Repository, rev string) (*git.Commit, error) {
	if strings.TrimSpace(rev) == "" {
		return nil, errors.New("rev is required")
	}
	commit, err := repo.Revision(ctx, rev)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", rev, err)
	}
	return commit, nil
}

// freshRefs drops the cached listing so each tool call sees current refs.
// The server is long-lived; refs move underneath it.
func freshRefs(repo *git.Repository) *git.ReferenceBag {
	refs := repo.References()
	refs.Reload()
	return refs
}

// rootTree resolves rev and returns its root tree.
func rootTree(ctx context.Context, repo *git.Repository, rev string) (*git.Tree, error) {
	commit, err := resolve(ctx, repo, rev)
	if err != nil {
		return nil, err
	}
	root, err := commit.Tree(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", commit.Hash().Short(), err)
	}
	return root, nil
}

// treeAt returns the tree at path in rev's root tree, and the cleaned path.
func treeAt(ctx context.Context, repo *git.Repository, rev, path string) (*git.Tree, string, error) {
	root, err := rootTree(ctx, repo, rev)
	if err != nil {
		return nil, "", err
	}
	dir := strings.Trim(path, "/")
	tree, err := root.TreeAt(ctx, dir)
	if err != nil {
		return nil, "", err
	}
	return tree, dir, nil
}

// blobAt returns the blob at path in rev's root tree, and the cleaned path.
func blobAt(ctx context.Context, repo *git.Repository, rev, path string) (*git.Blob, string, error) {
	clean := strings.Trim(path, "/")
	if clean == "" {
		return nil, "", errors.New("path is required")
	}
	root, err := rootTree(ctx, repo, rev)
	if err != nil {
		return nil, "", err
	}
	blob, err := root.BlobAt(ctx, clean)
	if err != nil {
		return nil, "", err
	}
	return blob, clean, nil
}

// truncateUTF8 cuts b to at most n bytes without splitting a UTF-8 sequence.
func truncateUTF8(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return b[:n]
}
