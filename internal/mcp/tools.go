package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/grove/internal/git"
	"github.com/gorewood/grove/internal/highlight"
	"github.com/gorewood/grove/internal/view"
)

const (
	defaultLogLimit = 20
	maxLogLimit     = 500
	// maxFileBytes caps read_file so one call cannot flood the agent's context.
	maxFileBytes = 256 * 1024
)

// --- show_commit ---

// ShowCommitInput is the input for the show_commit tool.
type ShowCommitInput struct {
	Rev string `json:"rev" jsonschema:"revision to show (hash, branch, tag, HEAD~1, ...)"`
}

// ShowCommitOutput is the output for the show_commit tool.
type ShowCommitOutput struct {
	Commit view.Commit `json:"commit" jsonschema:"the resolved commit"`
}

func handleShowCommit(repo *git.Repository) mcp.ToolHandlerFor[ShowCommitInput, ShowCommitOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ShowCommitInput) (*mcp.CallToolResult, ShowCommitOutput, error) {
		commit, err := resolve(ctx, repo, input.Rev)
		if err != nil {
			return nil, ShowCommitOutput{}, err
		}
		refs := freshRefs(repo)
		out, err := view.NewCommit(ctx, commit, refs)
		if err != nil {
			return nil, ShowCommitOutput{}, fmt.Errorf("reading commit %s: %w", commit.Hash().Short(), err)
		}
		return nil, ShowCommitOutput{Commit: out}, nil
	}
}

// --- log ---

// LogInput is the input for the log tool.
type LogInput struct {
	Rev   string `json:"rev,omitempty"   jsonschema:"starting revision (default HEAD)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of commits (default 20, max 500)"`
}

// LogOutput is the output for the log tool.
type LogOutput struct {
	Count   int           `json:"count"   jsonschema:"number of commits returned"`
	Commits []view.Commit `json:"commits" jsonschema:"commits, newest first"`
}

func handleLog(repo *git.Repository) mcp.ToolHandlerFor[LogInput, LogOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LogInput) (*mcp.CallToolResult, LogOutput, error) {
		limit := input.Limit
		switch {
		case limit <= 0:
			limit = defaultLogLimit
		case limit > maxLogLimit:
			limit = maxLogLimit
		}

		start, err := resolve(ctx, repo, defaultRev(input.Rev))
		if err != nil {
			return nil, LogOutput{}, err
		}
		history, err := start.FirstParentHistory(ctx, limit)
		if err != nil {
			return nil, LogOutput{}, fmt.Errorf("walking history: %w", err)
		}

		refs := freshRefs(repo)
		commits := make([]view.Commit, 0, len(history))
		for _, c := range history {
			v, err := view.NewCommit(ctx, c, refs)
			if err != nil {
				return nil, LogOutput{}, err
			}
			commits = append(commits, v)
		}
		return nil, LogOutput{Count: len(commits), Commits: commits}, nil
	}
}

// --- list_refs ---

// ListRefsInput is the input for the list_refs tool.
type ListRefsInput struct {
	Kind string `json:"kind,omitempty" jsonschema:"branch, tag, or empty for both"`
}

// ListRefsOutput is the output for the list_refs tool.
type ListRefsOutput struct {
	Count int        `json:"count" jsonschema:"number of references"`
	Refs  []view.Ref `json:"refs"  jsonschema:"references in listing order"`
}

func handleListRefs(repo *git.Repository) mcp.ToolHandlerFor[ListRefsInput, ListRefsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListRefsInput) (*mcp.CallToolResult, ListRefsOutput, error) {
		refs := freshRefs(repo)

		var (
			list []*git.Reference
			err  error
		)
		switch input.Kind {
		case "":
			list, err = refs.All(ctx)
		case "branch":
			list, err = refs.Branches(ctx)
		case "tag":
			list, err = refs.Tags(ctx)
		default:
			return nil, ListRefsOutput{}, fmt.Errorf("kind must be branch, tag or empty, got %q", input.Kind)
		}
		if err != nil {
			return nil, ListRefsOutput{}, fmt.Errorf("listing references: %w", err)
		}
		return nil, ListRefsOutput{Count: len(list), Refs: view.NewRefs(list)}, nil
	}
}

// --- resolve_refs ---

// ResolveRefsInput is the input for the resolve_refs tool.
type ResolveRefsInput struct {
	Rev string `json:"rev" jsonschema:"revision whose references to find"`
}

// ResolveRefsOutput is the output for the resolve_refs tool.
type ResolveRefsOutput struct {
	Hash     string   `json:"hash"     jsonschema:"resolved commit hash"`
	Branches []string `json:"branches" jsonschema:"branches pointing at the commit"`
	Tags     []string `json:"tags"     jsonschema:"tags pointing at the commit"`
}

func handleResolveRefs(repo *git.Repository) mcp.ToolHandlerFor[ResolveRefsInput, ResolveRefsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ResolveRefsInput) (*mcp.CallToolResult, ResolveRefsOutput, error) {
		commit, err := resolve(ctx, repo, input.Rev)
		if err != nil {
			return nil, ResolveRefsOutput{}, err
		}
		refs := freshRefs(repo)
		branches, err := refs.ResolveBranches(ctx, commit.Hash())
		if err != nil {
			return nil, ResolveRefsOutput{}, fmt.Errorf("resolving branches: %w", err)
		}
		tags, err := refs.ResolveTags(ctx, commit.Hash())
		if err != nil {
			return nil, ResolveRefsOutput{}, fmt.Errorf("resolving tags: %w", err)
		}
		return nil, ResolveRefsOutput{Hash: commit.Hash().String(), Branches: branches, Tags: tags}, nil
	}
}

// --- last_modified ---

// LastModifiedInput is the input for the last_modified tool.
type LastModifiedInput struct {
	Rev  string `json:"rev,omitempty" jsonschema:"revision to search from (default HEAD)"`
	Path string `json:"path"          jsonschema:"file or directory path from the repository root"`
}

// LastModifiedOutput is the output for the last_modified tool.
type LastModifiedOutput struct {
	Path   string      `json:"path"   jsonschema:"the path that was searched"`
	Commit view.Commit `json:"commit" jsonschema:"most recent commit touching the path"`
}

func handleLastModified(repo *git.Repository) mcp.ToolHandlerFor[LastModifiedInput, LastModifiedOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LastModifiedInput) (*mcp.CallToolResult, LastModifiedOutput, error) {
		if strings.Trim(input.Path, "/") == "" {
			return nil, LastModifiedOutput{}, errors.New("path is required")
		}
		start, err := resolve(ctx, repo, defaultRev(input.Rev))
		if err != nil {
			return nil, LastModifiedOutput{}, err
		}
		found, err := start.LastModification(ctx, input.Path)
		if err != nil {
			return nil, LastModifiedOutput{}, err
		}
		out, err := view.NewCommit(ctx, found, nil)
		if err != nil {
			return nil, LastModifiedOutput{}, err
		}
		return nil, LastModifiedOutput{Path: strings.TrimPrefix(input.Path, "/"), Commit: out}, nil
	}
}

// --- ls_tree ---

// LsTreeInput is the input for the ls_tree tool.
type LsTreeInput struct {
	Rev  string `json:"rev,omitempty"  jsonschema:"revision (default HEAD)"`
	Path string `json:"path,omitempty" jsonschema:"directory path; empty lists the root"`
}

// LsTreeOutput is the output for the ls_tree tool.
type LsTreeOutput struct {
	Tree    string       `json:"tree"    jsonschema:"hash of the listed tree"`
	Entries []view.Entry `json:"entries" jsonschema:"entries in git order"`
}

func handleLsTree(repo *git.Repository) mcp.ToolHandlerFor[LsTreeInput, LsTreeOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LsTreeInput) (*mcp.CallToolResult, LsTreeOutput, error) {
		tree, dir, err := treeAt(ctx, repo, defaultRev(input.Rev), input.Path)
		if err != nil {
			return nil, LsTreeOutput{}, err
		}
		entries, err := tree.Entries(ctx)
		if err != nil {
			return nil, LsTreeOutput{}, fmt.Errorf("listing tree: %w", err)
		}
		return nil, LsTreeOutput{Tree: tree.Hash().String(), Entries: view.NewEntries(dir, entries)}, nil
	}
}

// --- read_file ---

// ReadFileInput is the input for the read_file tool.
type ReadFileInput struct {
	Rev  string `json:"rev,omitempty" jsonschema:"revision (default HEAD)"`
	Path string `json:"path"          jsonschema:"file path from the repository root"`
}

// ReadFileOutput is the output for the read_file tool.
type ReadFileOutput struct {
	Path      string `json:"path"               jsonschema:"the file path"`
	Hash      string `json:"hash"               jsonschema:"blob hash"`
	Size      int    `json:"size"               jsonschema:"size in bytes"`
	Language  string `json:"language,omitempty" jsonschema:"detected language"`
	Binary    bool   `json:"binary"             jsonschema:"true when content is binary and omitted"`
	Truncated bool   `json:"truncated"          jsonschema:"true when content was cut at 256 KiB (on a character boundary)"`
	Content   string `json:"content,omitempty"  jsonschema:"file content"`
}

func handleReadFile(repo *git.Repository) mcp.ToolHandlerFor[ReadFileInput, ReadFileOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReadFileInput) (*mcp.CallToolResult, ReadFileOutput, error) {
		blob, entryPath, err := blobAt(ctx, repo, defaultRev(input.Rev), input.Path)
		if err != nil {
			return nil, ReadFileOutput{}, err
		}
		content, err := blob.Content(ctx)
		if err != nil {
			return nil, ReadFileOutput{}, fmt.Errorf("reading %s: %w", entryPath, err)
		}

		out := ReadFileOutput{
			Path: entryPath,
			Hash: blob.Hash().String(),
			Size: len(content),
		}
		if highlight.IsBinary(content) {
			out.Binary = true
			return nil, out, nil
		}
		out.Language = highlight.Language(entryPath, content)
		if len(content) > maxFileBytes {
			content = truncateUTF8(content, maxFileBytes)
			out.Truncated = true
		}
		out.Content = string(content)
		return nil, out, nil
	}
}
