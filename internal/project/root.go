package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigName is the project file searched for by FindConfig.
const ConfigName = "asls.toml"

// FindConfig walks up from startDir to locate asls.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing asls.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(configPath), true, nil
}
