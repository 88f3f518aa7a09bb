package main

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/grove/internal/highlight"
	"github.com/gorewood/grove/internal/output"
)

type catOptions struct {
	highlight bool
	style     string
	formatter string
}

// validate rejects style and formatter names chroma does not know.
func (o catOptions) validate() error {
	if !slices.Contains(highlight.Styles(), o.style) {
		return output.NewUserError("unknown --style " + o.style + " (one of: " + strings.Join(highlight.Styles(), ", ") + ")")
	}
	if !slices.Contains(highlight.Formatters(), o.formatter) {
		return output.NewUserError("unknown --formatter " + o.formatter + " (one of: " + strings.Join(highlight.Formatters(), ", ") + ")")
	}
	return nil
}

// catJSON is the --json shape of the cat command.
type catJSON struct {
	Path     string `json:"path"`
	Hash     string `json:"hash"`
	Size     int    `json:"size"`
	Language string `json:"language,omitempty"`
	Binary   bool   `json:"binary"`
	Content  string `json:"content,omitempty"`
}

// newCatCmd creates the cat command.
func newCatCmd() *cobra.Command {
	var opts catOptions

	cmd := &cobra.Command{
		Use:   "cat <rev> <path>",
		Short: "Print a file as of a revision",
		Long: `Print the content of a file in a commit's tree.

With --highlight, text files are syntax highlighted, for the terminal by
default or as HTML with --formatter html. Binary files are always written
unchanged.

Examples:
  grove cat HEAD README.md
  grove cat v1.0 cmd/main.go --highlight --style monokai
  grove cat HEAD README.md --highlight --formatter html > readme.html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "Syntax highlight text files")
	cmd.Flags().StringVar(&opts.style, "style", highlight.DefaultStyle, "Highlight style")
	cmd.Flags().StringVar(&opts.formatter, "formatter", highlight.DefaultFormatter, "Highlight formatter (terminal256, terminal16m, html, ...)")

	return cmd
}

// runCat executes the cat command.
func runCat(cmd *cobra.Command, args []string, opts catOptions) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	path := strings.Trim(args[1], "/")
	if path == "" {
		return s.fail(output.NewUserError("path is required"))
	}
	if opts.highlight {
		if err := opts.validate(); err != nil {
			return s.fail(err)
		}
	}

	commit, err := s.revision(cmd, args[0])
	if err != nil {
		return s.fail(err)
	}
	root, err := commit.Tree(cmd.Context())
	if err != nil {
		return s.fail(err)
	}
	blob, err := root.BlobAt(cmd.Context(), path)
	if err != nil {
		return s.fail(err)
	}
	content, err := blob.Content(cmd.Context())
	if err != nil {
		return s.fail(err)
	}

	if s.json {
		out := catJSON{Path: path, Hash: blob.Hash().String(), Size: len(content)}
		if highlight.IsBinary(content) {
			out.Binary = true
		} else {
			out.Language = highlight.Language(path, content)
			out.Content = string(content)
		}
		return s.printer.WriteJSON(out)
	}

	if opts.highlight {
		if err := highlight.Render(cmd.OutOrStdout(), path, content, highlight.Options{Style: opts.style, Formatter: opts.formatter}); err != nil {
			return s.fail(output.NewSystemErrorWithCause("highlighting "+path, err))
		}
		return nil
	}
	if _, err := cmd.OutOrStdout().Write(content); err != nil {
		return s.fail(output.NewSystemErrorWithCause("writing output", err))
	}
	return nil
}
