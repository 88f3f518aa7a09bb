package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GROVE_GIT", "GROVE_TIMEOUT", "GROVE_LOG_LEVEL", "GROVE_COLOR"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROVE_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Source)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("GROVE_CONFIG_HOME", dir)
	path := writeConfig(t, dir, "config.yaml", "git: /opt/git/bin/git\ntimeout: 5s\nlog_level: debug\ncolor: never\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/git/bin/git", cfg.Git)
	assert.Equal(t, Duration(5*time.Second), cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_TOML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("GROVE_CONFIG_HOME", dir)
	writeConfig(t, dir, "config.toml", "timeout = \"1m30s\"\nlog_level = \"info\"\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Duration(90*time.Second), cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.Color, "unset keys keep their default")
}

func TestLoad_YAMLWinsOverTOML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("GROVE_CONFIG_HOME", dir)
	writeConfig(t, dir, "config.yaml", "log_level: error\n")
	writeConfig(t, dir, "config.toml", "log_level = \"debug\"\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("GROVE_CONFIG_HOME", dir)
	writeConfig(t, dir, "config.yaml", "timeout: 5s\ncolor: never\n")
	t.Setenv("GROVE_TIMEOUT", "250ms")
	t.Setenv("GROVE_COLOR", "always")
	t.Setenv("GROVE_GIT", "/usr/local/bin/git")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.Timeout)
	assert.Equal(t, "always", cfg.Color)
	assert.Equal(t, "/usr/local/bin/git", cfg.Git)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		env     map[string]string
		wantMsg string
	}{
		{name: "bad yaml", file: "config.yaml", content: "timeout: [\n", wantMsg: "parsing"},
		{name: "bad toml", file: "config.toml", content: "timeout = \n", wantMsg: "parsing"},
		{name: "bad duration", file: "config.yaml", content: "timeout: soon\n", wantMsg: "parsing"},
		{name: "bad level", file: "config.yaml", content: "log_level: loud\n", wantMsg: "invalid log level"},
		{name: "bad color", file: "config.yaml", content: "color: rainbow\n", wantMsg: "invalid color mode"},
		{name: "negative timeout", file: "config.yaml", content: "timeout: -1s\n", wantMsg: "must not be negative"},
		{name: "bad env timeout", env: map[string]string{"GROVE_TIMEOUT": "later"}, wantMsg: "GROVE_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			t.Setenv("GROVE_CONFIG_HOME", dir)
			if tt.file != "" {
				writeConfig(t, dir, tt.file, tt.content)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "grove.toml", "git = \"git2\"\n")
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "git2", cfg.Git)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("2m")))
	assert.Equal(t, "2m0s", d.String())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2m0s", string(text))
}
