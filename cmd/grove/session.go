package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/grove/internal/config"
	"github.com/gorewood/grove/internal/git"
	"github.com/gorewood/grove/internal/logging"
	"github.com/gorewood/grove/internal/output"
)

// session is what every repository command needs: settings, a printer,
// a logger and the opened repository.
type session struct {
	cfg     config.Config
	json    bool
	printer *output.Printer
	logger  *slog.Logger
	repo    *git.Repository
}

// newSession resolves settings (config file, environment, flags), then opens
// the repository named by --repo. Errors are printed before being returned.
func newSession(cmd *cobra.Command) (*session, error) {
	s := &session{json: isJSONMode(cmd)}

	cfg, cfgErr := loadConfig(cmd)
	out := cmd.OutOrStdout()
	s.printer = output.NewPrinter(out, s.json, output.ResolveColorMode(cfg.Color, output.IsTTY(out))).
		WithStderr(cmd.ErrOrStderr())
	if cfgErr != nil {
		return nil, s.fail(output.NewUserError(cfgErr.Error()))
	}
	s.cfg = cfg

	level, _ := config.ParseLevel(cfg.LogLevel)
	s.logger = logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, JSON: s.json})

	path, _ := flagValue(cmd, "repo")
	runner := &git.ExecRunner{
		Binary:  cfg.Git,
		Timeout: time.Duration(cfg.Timeout),
		Logger:  s.logger,
	}
	repo, err := git.Open(cmd.Context(), path, git.WithRunner(runner), git.WithLogger(s.logger))
	if err != nil {
		return nil, s.fail(err)
	}
	s.repo = repo
	s.logger.Debug("repository opened", slog.String("path", repo.Path()), slog.String("config", cfg.Source))
	return s, nil
}

// loadConfig layers flags over config.Load. On error the returned Config
// still carries usable defaults for printing the error.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path, set := flagValue(cmd, "config"); set {
		cfg, err = loadExplicitConfig(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Default(), err
	}

	if v, set := flagValue(cmd, "git"); set {
		cfg.Git = v
	}
	if v, set := flagValue(cmd, "timeout"); set {
		d, err := time.ParseDuration(v)
		if err != nil {
			return config.Default(), err
		}
		cfg.Timeout = config.Duration(d)
	}
	if v, set := flagValue(cmd, "log-level"); set {
		cfg.LogLevel = v
	}
	if v, set := flagValue(cmd, "color"); set {
		cfg.Color = v
	}

	if err := cfg.Validate(); err != nil {
		return config.Default(), err
	}
	return cfg, nil
}

// loadExplicitConfig reads the file named by --config in place of the
// config directory search. Environment variables still apply on top.
func loadExplicitConfig(path string) (config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// fail prints err with its exit classification and returns it.
func (s *session) fail(err error) error {
	exitErr := output.FromError(err)
	s.printer.Error(exitErr)
	return exitErr
}

// revision resolves rev, defaulting to HEAD.
func (s *session) revision(cmd *cobra.Command, rev string) (*git.Commit, error) {
	if rev == "" {
		rev = "HEAD"
	}
	return s.repo.Revision(cmd.Context(), rev)
}
