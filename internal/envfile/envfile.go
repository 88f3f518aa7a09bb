// Package envfile loads environment variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultNames are the files LoadDir looks for, most specific first.
var DefaultNames = []string{".env.local", ".env"}

// LoadDir loads DefaultNames from dir. Earlier files win over later ones,
// and the process environment wins over both.
func LoadDir(dir string) error {
	paths := make([]string, 0, len(DefaultNames))
	for _, name := range DefaultNames {
		paths = append(paths, filepath.Join(dir, name))
	}
	return Load(paths...)
}

// Load reads each .env file in order and sets any variables not already in
// the environment. Missing files are skipped. Returns an error only for
// read failures.
func Load(paths ...string) error {
	for _, path := range paths {
		vars, err := readFile(path)
		if err != nil {
			return err
		}
		for _, kv := range vars {
			if _, set := os.LookupEnv(kv[0]); !set {
				_ = os.Setenv(kv[0], kv[1])
			}
		}
	}
	return nil
}

func readFile(path string) ([][2]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	vars, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return vars, nil
}

// Parse returns the KEY=VALUE pairs of an env file in file order. Blank
// lines, comments and lines without '=' are skipped.
func Parse(r io.Reader) ([][2]string, error) {
	var vars [][2]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		vars = append(vars, [2]string{key, value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// parseEnvLine extracts KEY=VALUE from a line.
// Handles an optional export prefix and matching quotes around the value.
// An unquoted value ends at " #".
func parseEnvLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return key, value[1 : len(value)-1], true
		}
	}
	if before, _, cut := strings.Cut(value, " #"); cut {
		value = strings.TrimSpace(before)
	}
	return key, value, true
}
