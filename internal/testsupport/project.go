package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"submux/internal/config"
)

// WriteProject writes configTOML into a fresh temp directory and loads it.
// Callers add episode and extra fixtures with WriteFile before planning.
func WriteProject(t testing.TB, configTOML string) (*config.Project, string) {
	t.Helper()

	dir := t.TempDir()
	WriteFile(t, filepath.Join(dir, config.ConfigFileName), configTOML)

	cfg, _, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load test project: %v", err)
	}
	return cfg, dir
}

// StubBinaries writes stub executables for the provided names and prepends
// them to PATH. If names is empty, mkvmerge is stubbed.
func StubBinaries(t testing.TB, names ...string) {
	t.Helper()

	if len(names) == 0 {
		names = []string{"mkvmerge"}
	}
	binDir := t.TempDir()
	script := []byte("#!/bin/sh\nexit 0\n")
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(binDir, name), script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
