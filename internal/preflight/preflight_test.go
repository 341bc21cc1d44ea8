package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	result := CheckDirectoryAccess("Episodes directory", dir, false)
	if !result.Passed {
		t.Fatalf("expected readable temp dir to pass, got %+v", result)
	}

	missing := CheckDirectoryAccess("Episodes directory", filepath.Join(dir, "nope"), false)
	if missing.Passed || !strings.Contains(missing.Detail, "does not exist") {
		t.Fatalf("expected missing dir failure, got %+v", missing)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	notDir := CheckDirectoryAccess("Episodes directory", file, false)
	if notDir.Passed || !strings.Contains(notDir.Detail, "not a directory") {
		t.Fatalf("expected non-directory failure, got %+v", notDir)
	}
}

func TestCheckBinary(t *testing.T) {
	// Present on any system that can run the test suite.
	sh := CheckBinary("shell", "sh")
	if !sh.Passed {
		t.Fatalf("expected sh to resolve, got %+v", sh)
	}

	missing := CheckBinary("mkvmerge", "definitely-not-a-real-binary")
	if missing.Passed || !strings.Contains(missing.Detail, "not found") {
		t.Fatalf("expected lookup failure, got %+v", missing)
	}

	blank := CheckBinary("mkvmerge", "  ")
	if blank.Passed || blank.Detail != "command not configured" {
		t.Fatalf("expected unconfigured failure, got %+v", blank)
	}
}
