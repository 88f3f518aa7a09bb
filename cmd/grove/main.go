// Package main provides the entry point for the grove CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/grove/internal/config"
	"github.com/gorewood/grove/internal/envfile"
	"github.com/gorewood/grove/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	value, _ := flagValue(cmd, "json")
	return value == "true"
}

// flagValue returns a flag's value and whether it was set on the command
// line, looking at the command's own flags first and then the root's
// persistent flags.
func flagValue(cmd *cobra.Command, name string) (string, bool) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return "", false
	}
	return flag.Value.String(), flag.Changed
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	err := fang.Execute(ctx, cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the grove CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grove",
		Short: "Browse a git repository's commits, trees and refs",
		Long: `Grove - a read-only view of a git repository's object model.

Grove reads commits, trees, blobs, branches and tags through git's plumbing
commands. Objects are read lazily and at most once per invocation.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'grove --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.StringP("repo", "C", ".", "Path inside the repository to read")
	flags.String("config", "", "Settings file to use instead of the config directory (YAML or .toml)")
	flags.String("git", "", "git executable (default \"git\" from PATH)")
	flags.Duration("timeout", 0, "Limit for each git invocation (default from config, 30s)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("color", "", "Color output: auto, always, never")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. ~/.config/grove/env (global fallback)
func loadEnvFiles() {
	_ = envfile.LoadDir(".")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "refs", Title: "Reference Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newShowCmd(), "core")
	addGroupedCommand(cmd, newLogCmd(), "core")
	addGroupedCommand(cmd, newLsTreeCmd(), "core")
	addGroupedCommand(cmd, newCatCmd(), "core")
	addGroupedCommand(cmd, newLastModifiedCmd(), "core")

	addGroupedCommand(cmd, newRefsCmd(), "refs")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
