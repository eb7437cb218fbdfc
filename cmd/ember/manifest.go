package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Target  targetConfig  `toml:"target"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type targetConfig struct {
	Backend string `toml:"backend"`
}

func findEmberToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "ember.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// loadProjectManifest finds and parses ember.toml starting at startDir.
// Missing manifests are not an error; callers fall back to defaults.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	path, found, err := findEmberToml(startDir)
	if err != nil || !found {
		return nil, false, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// resolveBackend picks the backend from flag, then manifest, then the
// default.
func resolveBackend(flagValue string, manifest *projectManifest) string {
	if flagValue != "" {
		return flagValue
	}
	if manifest != nil && manifest.Config.Target.Backend != "" {
		return manifest.Config.Target.Backend
	}
	return "cuda"
}
