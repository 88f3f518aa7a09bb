package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gorewood/grove/internal/git"
	"github.com/gorewood/grove/internal/output"
	"github.com/gorewood/grove/internal/view"
	"github.com/gorewood/grove/internal/watch"
)

type refsOptions struct {
	branches bool
	tags     bool
	watch    bool
}

// newRefsCmd creates the refs command.
func newRefsCmd() *cobra.Command {
	var opts refsOptions

	cmd := &cobra.Command{
		Use:   "refs",
		Short: "List branches and tags",
		Long: `List local branches and tags with the commits they point at.

With --watch, the listing is printed again whenever a ref changes
(commit, checkout, fetch, tag, pack-refs) until interrupted.

Examples:
  grove refs               # Branches and tags
  grove refs --tags        # Tags only
  grove refs --watch       # Follow ref changes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRefs(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.branches, "branches", false, "Only list branches")
	cmd.Flags().BoolVar(&opts.tags, "tags", false, "Only list tags")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reprint the listing when refs change")
	cmd.MarkFlagsMutuallyExclusive("branches", "tags")

	return cmd
}

// runRefs executes the refs command.
func runRefs(cmd *cobra.Command, opts refsOptions) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	bag := s.repo.References()

	if err := printRefs(cmd.Context(), s.printer, bag, opts); err != nil {
		return s.fail(err)
	}
	if !opts.watch {
		return nil
	}
	return watchRefs(cmd.Context(), s, bag, opts)
}

// watchRefs reprints the listing after each debounced ref change until ctx ends.
func watchRefs(ctx context.Context, s *session, bag *git.ReferenceBag, opts refsOptions) error {
	gitDir, err := s.repo.GitDir(ctx)
	if err != nil {
		return s.fail(err)
	}

	changed := make(chan struct{}, 1)
	watcher, err := watch.NewRefWatcher(gitDir, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}, watch.WithLogger(s.logger))
	if err != nil {
		return s.fail(output.NewSystemErrorWithCause("watching "+gitDir, err))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	for {
		select {
		case <-ctx.Done():
			<-done
			return nil
		case err := <-done:
			if err != nil {
				return s.fail(output.NewSystemErrorWithCause("watching "+gitDir, err))
			}
			return nil
		case <-changed:
			bag.Reload()
			if !s.json {
				s.printer.Println()
			}
			if err := printRefs(ctx, s.printer, bag, opts); err != nil {
				// Refs can be mid-update; report and keep watching.
				s.printer.Warn("listing references: %v", err)
			}
		}
	}
}

// printRefs lists the selected references as a table or JSON.
func printRefs(ctx context.Context, printer *output.Printer, bag *git.ReferenceBag, opts refsOptions) error {
	var (
		refs []*git.Reference
		err  error
	)
	switch {
	case opts.branches:
		refs, err = bag.Branches(ctx)
	case opts.tags:
		refs, err = bag.Tags(ctx)
	default:
		refs, err = bag.All(ctx)
	}
	if err != nil {
		return err
	}

	views := view.NewRefs(refs)
	if printer.IsJSON() {
		return printer.WriteJSON(views)
	}
	if len(views) == 0 {
		printer.Println(printer.Dim("no references"))
		return nil
	}

	for _, kind := range []git.RefKind{git.KindBranch, git.KindTag} {
		var rows [][]string
		for _, r := range views {
			if r.Kind == kind.String() {
				rows = append(rows, []string{r.Name, git.Hash(r.Hash).Short()})
			}
		}
		if len(rows) == 0 {
			continue
		}
		printer.Section(sectionTitle(kind))
		printer.Table([]string{"NAME", "COMMIT"}, rows)
	}
	return nil
}

func sectionTitle(kind git.RefKind) string {
	if kind == git.KindTag {
		return "Tags"
	}
	return "Branches"
}
