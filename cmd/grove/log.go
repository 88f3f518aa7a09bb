package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/grove/internal/output"
	"github.com/gorewood/grove/internal/view"
)

// newLogCmd creates the log command.
func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log [<rev>]",
		Short: "List commits along the first-parent chain",
		Long: `List commits starting at a revision and following first parents,
newest first. Each line is decorated with the branches and tags at that commit.

Examples:
  grove log                # Last 10 commits from HEAD
  grove log main -n 50     # Last 50 commits from main
  grove log v1.0 --json    # As JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, args, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of commits")

	return cmd
}

// runLog executes the log command.
func runLog(cmd *cobra.Command, args []string, limit int) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if limit <= 0 {
		return s.fail(output.NewUserError("--limit must be positive"))
	}

	start, err := s.revision(cmd, firstArg(args))
	if err != nil {
		return s.fail(err)
	}
	history, err := start.FirstParentHistory(cmd.Context(), limit)
	if err != nil {
		return s.fail(err)
	}

	refs := s.repo.References()
	commits := make([]view.Commit, 0, len(history))
	for _, c := range history {
		v, err := view.NewCommit(cmd.Context(), c, refs)
		if err != nil {
			return s.fail(err)
		}
		commits = append(commits, v)
	}

	if s.json {
		return s.printer.WriteJSON(commits)
	}
	outputLogHuman(s.printer, commits)
	return nil
}

// outputLogHuman prints one line per commit: short hash, date, subject, labels.
func outputLogHuman(printer *output.Printer, commits []view.Commit) {
	for _, c := range commits {
		line := printer.Dim(c.Short) + " " + c.Author.When.Format("2006-01-02") + " " + c.Subject
		if decor := decorate(c); decor != "" {
			line += " " + printer.Accent("("+decor+")")
		}
		printer.Println(line)
	}
}
