package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// projectManifest is a loaded wu.toml plus where it was found.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Check   checkConfig   `toml:"check"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type checkConfig struct {
	// Source is the directory holding .wu files, relative to the manifest.
	Source string `toml:"source"`
	// MaxDiagnostics overrides the CLI default when > 0.
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// findWuToml walks up from startDir looking for wu.toml.
func findWuToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "wu.toml")
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

// loadProjectManifest finds and decodes the nearest wu.toml. The second
// return is false when no manifest exists, which is not an error.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findWuToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, true, fmt.Errorf("failed to decode %s: %w", manifestPath, err)
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}
