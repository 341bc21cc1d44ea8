// Package preflight verifies a project is muxable before any work starts:
// the mkvmerge binary and access to the directories the batch reads and
// writes.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"submux/internal/config"
	"submux/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable checks for the project. The extras
// directory is only checked when merge rules reference it.
func RunAll(cfg *config.Project) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckBinary("mkvmerge", cfg.MkvmergeBinary()),
		CheckDirectoryAccess("Episodes directory", cfg.EpisodesPath, false),
	}
	if len(cfg.Extras.Merge) > 0 {
		results = append(results, CheckDirectoryAccess("Extras directory", cfg.ExtrasPath, false))
	}
	results = append(results, CheckDirectoryAccess("Output directory", cfg.OutputPath, true))
	return results
}

// Verify runs all checks and folds the failures into a single error.
func Verify(cfg *config.Project) error {
	var failed []string
	for _, result := range RunAll(cfg) {
		if !result.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
	}
	if len(failed) > 0 {
		return services.Wrap(services.ErrValidation, "preflight", "verify", strings.Join(failed, "; "), nil)
	}
	return nil
}

// CheckBinary verifies the command resolves on PATH.
func CheckBinary(name, command string) Result {
	command = strings.TrimSpace(command)
	if command == "" {
		return Result{Name: name, Detail: "command not configured"}
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("binary %q not found", command)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckDirectoryAccess verifies the directory exists and is traversable,
// and writable when write is set.
func CheckDirectoryAccess(name, path string, write bool) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	mode := uint32(unix.R_OK | unix.X_OK)
	if write {
		mode |= unix.W_OK
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	detail := "read ok"
	if write {
		detail = "read/write ok"
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, detail)}
}
