package git

import (
	"context"
	"slices"
	"strings"
)

// Tree is a lazily loaded tree object, read once with `git ls-tree`.
type Tree struct {
	repo *Repository
	hash Hash

	entries lazy[[]TreeEntry]
}

// Hash returns the tree's identifier. It never reads from git.
func (t *Tree) Hash() Hash {
	return t.hash
}

func (t *Tree) load(ctx context.Context) ([]TreeEntry, error) {
	return t.entries.get(ctx, func(ctx context.Context) ([]TreeEntry, error) {
		out, err := t.repo.output(ctx, "ls-tree", "-z", "--full-tree", "--end-of-options", string(t.hash))
		if err != nil {
			return nil, err
		}
		return ParseTree(out)
	})
}

// Entries returns the tree's entries in the order git lists them.
func (t *Tree) Entries(ctx context.Context) ([]TreeEntry, error) {
	entries, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(entries), nil
}

// Entry returns the entry called name in this tree.
func (t *Tree) Entry(ctx context.Context, name string) (TreeEntry, error) {
	entries, err := t.load(ctx)
	if err != nil {
		return TreeEntry{}, err
	}
	for _, entry := range entries {
		if entry.Name == name {
			return entry, nil
		}
	}
	return TreeEntry{}, &NotFoundError{Kind: "tree entry", Name: name}
}

// Resolve walks a slash-separated path from this tree through nested trees
// and returns the entry at its end.
func (t *Tree) Resolve(ctx context.Context, path string) (TreeEntry, error) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return TreeEntry{Mode: "040000", Type: TypeTree, Hash: t.hash}, nil
	}

	current := t
	for i, name := range parts[:len(parts)-1] {
		entry, err := current.Entry(ctx, name)
		if err != nil {
			return TreeEntry{}, err
		}
		if entry.Type != TypeTree {
			return TreeEntry{}, &NotFoundError{Kind: "tree entry", Name: strings.Join(parts[:i+2], "/")}
		}
		current = t.repo.Tree(entry.Hash)
	}
	return current.Entry(ctx, parts[len(parts)-1])
}

// TreeAt returns the tree at path below t. An empty path is t itself.
// A path that names a file or submodule is reported as NotFound.
func (t *Tree) TreeAt(ctx context.Context, path string) (*Tree, error) {
	if len(splitPath(path)) == 0 {
		return t, nil
	}
	entry, err := t.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	tree, ok := t.Subtree(entry)
	if !ok {
		return nil, &NotFoundError{Kind: "directory", Name: strings.Trim(path, "/")}
	}
	return tree, nil
}

// BlobAt returns the blob at path below t. A path that names a directory
// or submodule is reported as NotFound.
func (t *Tree) BlobAt(ctx context.Context, path string) (*Blob, error) {
	entry, err := t.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	blob, ok := t.Blob(entry)
	if !ok {
		return nil, &NotFoundError{Kind: "file", Name: strings.Trim(path, "/")}
	}
	return blob, nil
}

// Subtree returns the tree an entry points at. The entry must be a tree.
func (t *Tree) Subtree(entry TreeEntry) (*Tree, bool) {
	if entry.Type != TypeTree {
		return nil, false
	}
	return t.repo.Tree(entry.Hash), true
}

// Blob returns the blob an entry points at. The entry must be a blob.
func (t *Tree) Blob(entry TreeEntry) (*Blob, bool) {
	if entry.Type != TypeBlob {
		return nil, false
	}
	return t.repo.Blob(entry.Hash), true
}

func splitPath(path string) []string {
	var parts []string
	for part := range strings.SplitSeq(path, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}
