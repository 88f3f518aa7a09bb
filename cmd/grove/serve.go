package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	grovemcp "github.com/gorewood/grove/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run grove as a Model Context Protocol (MCP) server over stdio.

This exposes read-only repository operations as MCP tools for any
MCP-capable agent environment.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "grove": {
        "command": "grove",
        "args": ["serve", "-C", "/path/to/repo"]
      }
    }
  }

Available tools: show_commit, log, list_refs, resolve_refs, last_modified,
ls_tree, read_file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			server := grovemcp.NewServer(buildVersion(), s.repo)
			s.logger.Info("serving MCP over stdio", "repo", s.repo.Path())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
