package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"submux/internal/config"
	"submux/internal/services"
	"submux/internal/testsupport"
)

func TestMuxCommandDryRun(t *testing.T) {
	dir := writeProject(t)

	out, _, err := runCLI(t, "mux", dir, "--dry-run")
	if err != nil {
		t.Fatalf("mux --dry-run: %v", err)
	}
	requireContains(t, out, "planned")
	requireContains(t, out, "[CliSubs] Cli Show - 01 [720p] [BD]")

	cfg, _, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store := testsupport.MustOpenHistory(t, cfg.HistoryPath())
	runs, err := store.Runs(context.Background(), 0)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 1 || !runs[0].DryRun {
		t.Fatalf("expected recorded dry run, got %+v", runs)
	}
}

func TestMuxCommandRejectsBadSelection(t *testing.T) {
	dir := writeProject(t)

	_, _, err := runCLI(t, "mux", dir, "--dry-run", "--episodes", "bogus")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestMuxCommandReportsFailures(t *testing.T) {
	dir := writeProject(t)
	two := strings.Replace(cliProjectConfig, "episodes   = 1", "episodes   = [1, 2]", 1)
	if two == cliProjectConfig {
		t.Fatal("fixture config did not contain the episodes line")
	}
	testsupport.WriteFile(t, filepath.Join(dir, "config.toml"), two)
	// episode 02 has a script but no premux video
	testsupport.WriteFile(t, filepath.Join(dir, "episodes", "02", "dialogue.ass"), cliEpisodeScript)

	out, _, err := runCLI(t, "mux", dir, "--dry-run")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 episodes failed") {
		t.Fatalf("expected batch failure, got %v", err)
	}
	requireContains(t, out, "no *.mkv")
	requireContains(t, out, "planned")
}
