package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/grove/internal/output"
	"github.com/gorewood/grove/internal/view"
)

// newLastModifiedCmd creates the last-modified command.
func newLastModifiedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last-modified <rev> <path>",
		Short: "Find the most recent commit that touched a path",
		Long: `Find the most recent commit reachable from a revision that changed
a file or directory. Paths are relative to the repository root.

Examples:
  grove last-modified HEAD README.md
  grove last-modified v1.0 internal/git --json`,
		Args: cobra.ExactArgs(2),
		RunE: runLastModified,
	}
}

// runLastModified executes the last-modified command.
func runLastModified(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	path := strings.TrimPrefix(args[1], "/")
	if strings.Trim(path, "/") == "" {
		return s.fail(output.NewUserError("path is required"))
	}

	start, err := s.revision(cmd, args[0])
	if err != nil {
		return s.fail(err)
	}
	found, err := start.LastModification(cmd.Context(), path)
	if err != nil {
		return s.fail(err)
	}
	v, err := view.NewCommit(cmd.Context(), found, nil)
	if err != nil {
		return s.fail(err)
	}

	if s.json {
		return s.printer.WriteJSON(map[string]any{"path": path, "commit": v})
	}
	s.printer.KeyValue("Path", path)
	s.printer.KeyValue("Commit", v.Hash)
	s.printer.KeyValue("Author", signature(v.Author))
	s.printer.KeyValue("Subject", v.Subject)
	return nil
}
