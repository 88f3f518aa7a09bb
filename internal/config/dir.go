// Package config resolves grove's configuration directory and loads its
// settings file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the grove configuration directory.
//
// Resolution:
//   - $GROVE_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/grove if set (respects XDG on any platform)
//   - %AppData%/grove on Windows
//   - ~/.config/grove on macOS and Linux
func Dir() string {
	if dir := os.Getenv("GROVE_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "grove")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "grove")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "grove")
}
