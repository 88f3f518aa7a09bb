package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/grove/internal/git"
	"github.com/gorewood/grove/internal/output"
	"github.com/gorewood/grove/internal/view"
)

// timeLayout is used for every date printed in human mode.
const timeLayout = "2006-01-02 15:04:05 -0700"

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [<rev>]",
		Short: "Display a single commit",
		Long: `Display a commit's hash, tree, parents, author, committer and message,
along with the branches and tags that point at it.

Examples:
  grove show                  # Show HEAD
  grove show v1.0             # Show the commit a tag points at
  grove show main~2 --json    # Show as JSON
  grove show HEAD --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, yaml")

	return cmd
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, args []string, format string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	switch format {
	case "text", "json", "yaml":
	default:
		return s.fail(output.NewUserError("invalid --format " + format + " (use text, json or yaml)"))
	}

	commit, err := s.revision(cmd, firstArg(args))
	if err != nil {
		return s.fail(err)
	}
	v, err := view.NewCommit(cmd.Context(), commit, s.repo.References())
	if err != nil {
		return s.fail(err)
	}

	switch {
	case s.json || format == "json":
		return s.printer.WriteJSON(v)
	case format == "yaml":
		return s.printer.WriteYAML(v)
	}
	outputShowHuman(s.printer, v)
	return nil
}

// outputShowHuman prints a commit in a git-show-like layout.
func outputShowHuman(printer *output.Printer, v view.Commit) {
	header := "commit " + v.Hash
	if decor := decorate(v); decor != "" {
		header += " " + printer.Accent("("+decor+")")
	}
	printer.Println(header)

	printer.KeyValue("Tree", v.Tree)
	if len(v.Parents) > 0 {
		printer.KeyValue("Parents", strings.Join(v.Parents, ", "))
	}
	printer.KeyValue("Author", signature(v.Author))
	printer.KeyValue("Committer", signature(v.Committer))

	printer.Println()
	printer.Box("Message", strings.TrimRight(v.Message, "\n"))
}

// decorate renders branch and tag labels as "main, tag: v1.0".
func decorate(v view.Commit) string {
	labels := make([]string, 0, len(v.Branches)+len(v.Tags))
	labels = append(labels, v.Branches...)
	for _, tag := range v.Tags {
		labels = append(labels, "tag: "+tag)
	}
	return strings.Join(labels, ", ")
}

func signature(sig git.Signature) string {
	return sig.Name + " <" + sig.Email + "> " + sig.When.Format(timeLayout)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
