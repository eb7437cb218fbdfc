package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindEmberTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "kernels", "conv")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	manifest := filepath.Join(root, "ember.toml")
	content := "[package]\nname = \"demo\"\n\n[target]\nbackend = \"cuda\"\n"
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	path, found, err := findEmberToml(nested)
	if err != nil || !found {
		t.Fatalf("findEmberToml: found=%v err=%v", found, err)
	}
	if path != manifest {
		t.Fatalf("found %q, want %q", path, manifest)
	}

	m, found, err := loadProjectManifest(nested)
	if err != nil || !found {
		t.Fatalf("loadProjectManifest: found=%v err=%v", found, err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Target.Backend != "cuda" {
		t.Fatalf("manifest mis-parsed: %+v", m.Config)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
}

func TestLoadProjectManifestMissing(t *testing.T) {
	_, found, err := loadProjectManifest(t.TempDir())
	if err != nil {
		t.Fatalf("missing manifest should not error: %v", err)
	}
	if found {
		t.Fatalf("no manifest should be found in an empty dir")
	}
}

func TestResolveBackendPrecedence(t *testing.T) {
	m := &projectManifest{Config: projectConfig{Target: targetConfig{Backend: "rocm"}}}
	if got := resolveBackend("cuda", m); got != "cuda" {
		t.Fatalf("flag must win, got %q", got)
	}
	if got := resolveBackend("", m); got != "rocm" {
		t.Fatalf("manifest must win over default, got %q", got)
	}
	if got := resolveBackend("", nil); got != "cuda" {
		t.Fatalf("default backend should be cuda, got %q", got)
	}
}
