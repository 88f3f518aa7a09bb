package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/grove/internal/view"
)

// newLsTreeCmd creates the ls-tree command.
func newLsTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree [<rev> [<path>]]",
		Short: "List a directory of a commit's tree",
		Long: `List the entries of a directory in a commit's tree, in git order.
Paths are relative to the repository root; an empty path lists the root.

Examples:
  grove ls-tree                 # Root of HEAD
  grove ls-tree v1.0 internal   # internal/ at tag v1.0`,
		Args: cobra.MaximumNArgs(2),
		RunE: runLsTree,
	}
}

// runLsTree executes the ls-tree command.
func runLsTree(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	commit, err := s.revision(cmd, firstArg(args))
	if err != nil {
		return s.fail(err)
	}
	root, err := commit.Tree(cmd.Context())
	if err != nil {
		return s.fail(err)
	}

	dir := ""
	if len(args) == 2 {
		dir = strings.Trim(args[1], "/")
	}
	tree, err := root.TreeAt(cmd.Context(), dir)
	if err != nil {
		return s.fail(err)
	}
	entries, err := tree.Entries(cmd.Context())
	if err != nil {
		return s.fail(err)
	}

	views := view.NewEntries(dir, entries)
	if s.json {
		return s.printer.WriteJSON(views)
	}

	rows := make([][]string, 0, len(views))
	for _, e := range views {
		rows = append(rows, []string{e.Mode, e.Type, e.Hash, e.Path})
	}
	s.printer.Table([]string{"MODE", "TYPE", "OBJECT", "PATH"}, rows)
	return nil
}
