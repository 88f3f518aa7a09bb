// Package mcp provides a Model Context Protocol server for grove.
// It exposes read-only views of a repository's commits, trees and references
// as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/grove/internal/git"
)

// NewServer creates an MCP server with all grove tools registered.
func NewServer(version string, repo *git.Repository) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "grove",
		Version: version,
	}, nil)
	registerTools(server, repo)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all grove tools to the server.
func registerTools(server *mcp.Server, repo *git.Repository) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "show_commit",
		Description: "Show one commit: hash, tree, parents, author, committer, subject, full message, and the branches and tags pointing at it. Accepts any revision (hash, branch, tag, HEAD~2).",
		Annotations: readOnlyAnnotations(),
	}, handleShowCommit(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log",
		Description: "Walk first-parent history from a revision. Returns up to limit commits (default 20), newest first.",
		Annotations: readOnlyAnnotations(),
	}, handleLog(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_refs",
		Description: "List branches and tags with the hashes they point at. Filter with kind=branch or kind=tag.",
		Annotations: readOnlyAnnotations(),
	}, handleListRefs(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_refs",
		Description: "Find the branches and tags that point exactly at a revision.",
		Annotations: readOnlyAnnotations(),
	}, handleResolveRefs(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "last_modified",
		Description: "Find the most recent commit reachable from a revision that touched a path.",
		Annotations: readOnlyAnnotations(),
	}, handleLastModified(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ls_tree",
		Description: "List the entries of a directory at a revision. An empty path lists the root.",
		Annotations: readOnlyAnnotations(),
	}, handleLsTree(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_file",
		Description: "Read a file's content at a revision. Binary files are reported but not returned.",
		Annotations: readOnlyAnnotations(),
	}, handleReadFile(repo))
}
