// Package view flattens object-model entities into plain structs for JSON,
// YAML and MCP output.
package view

import (
	"context"
	"path"

	"github.com/gorewood/grove/internal/git"
)

// Commit is the serialized form of a commit.
type Commit struct {
	Hash      string        `json:"hash"               yaml:"hash"               jsonschema:"full commit hash"`
	Short     string        `json:"short"              yaml:"short"              jsonschema:"abbreviated hash (7 chars)"`
	Tree      string        `json:"tree"               yaml:"tree"               jsonschema:"root tree hash"`
	Parents   []string      `json:"parents"            yaml:"parents"            jsonschema:"parent hashes, first parent first"`
	Author    git.Signature `json:"author"             yaml:"author"             jsonschema:"author signature"`
	Committer git.Signature `json:"committer"          yaml:"committer"          jsonschema:"committer signature"`
	Subject   string        `json:"subject"            yaml:"subject"            jsonschema:"first message line, capped at 80 characters"`
	Message   string        `json:"message"            yaml:"message"            jsonschema:"full commit message"`
	Branches  []string      `json:"branches,omitempty" yaml:"branches,omitempty" jsonschema:"branches pointing at this commit"`
	Tags      []string      `json:"tags,omitempty"     yaml:"tags,omitempty"     jsonschema:"tags pointing at this commit"`
}

// Ref is the serialized form of a reference.
type Ref struct {
	Name     string `json:"name"      yaml:"name"      jsonschema:"short name"`
	FullName string `json:"full_name" yaml:"full_name" jsonschema:"fully qualified name"`
	Kind     string `json:"kind"      yaml:"kind"      jsonschema:"branch or tag"`
	Hash     string `json:"hash"      yaml:"hash"      jsonschema:"object the reference points at"`
}

// Entry is the serialized form of a tree entry.
type Entry struct {
	Mode string `json:"mode" yaml:"mode" jsonschema:"file mode"`
	Type string `json:"type" yaml:"type" jsonschema:"blob, tree or commit"`
	Hash string `json:"hash" yaml:"hash" jsonschema:"object hash"`
	Path string `json:"path" yaml:"path" jsonschema:"path from the repository root"`
}

// NewCommit loads c and flattens it. When refs is non-nil the branches and
// tags pointing at c are included.
func NewCommit(ctx context.Context, c *git.Commit, refs *git.ReferenceBag) (Commit, error) {
	if err := c.Load(ctx); err != nil {
		return Commit{}, err
	}
	// Load succeeded, so the accessors below cannot fail.
	tree, _ := c.TreeHash(ctx)
	parents, _ := c.ParentHashes(ctx)
	author, _ := c.Author(ctx)
	committer, _ := c.Committer(ctx)
	subject, _ := c.ShortMessage(ctx)
	message, _ := c.Message(ctx)

	out := Commit{
		Hash:      c.Hash().String(),
		Short:     c.Hash().Short(),
		Tree:      tree.String(),
		Parents:   hashStrings(parents),
		Author:    author,
		Committer: committer,
		Subject:   subject,
		Message:   message,
	}

	if refs != nil {
		branches, err := refs.ResolveBranches(ctx, c.Hash())
		if err != nil {
			return Commit{}, err
		}
		tags, err := refs.ResolveTags(ctx, c.Hash())
		if err != nil {
			return Commit{}, err
		}
		out.Branches = branches
		out.Tags = tags
	}
	return out, nil
}

// NewRefs flattens references in order.
func NewRefs(refs []*git.Reference) []Ref {
	out := make([]Ref, 0, len(refs))
	for _, ref := range refs {
		out = append(out, Ref{
			Name:     ref.Name(),
			FullName: ref.FullName(),
			Kind:     ref.Kind().String(),
			Hash:     ref.CommitHash().String(),
		})
	}
	return out
}

// NewEntries flattens the entries of the tree at dir.
func NewEntries(dir string, entries []git.TreeEntry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Entry{
			Mode: entry.Mode,
			Type: string(entry.Type),
			Hash: entry.Hash.String(),
			Path: path.Join(dir, entry.Name),
		})
	}
	return out
}

func hashStrings(hashes []git.Hash) []string {
	out := make([]string, 0, len(hashes))
	for _, h := range hashes {
		out = append(out, h.String())
	}
	return out
}
