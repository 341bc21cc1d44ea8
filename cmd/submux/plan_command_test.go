package main

import (
	"encoding/json"
	"errors"
	"testing"

	"submux/internal/mergeplan"
	"submux/internal/services"
)

func TestPlanCommand(t *testing.T) {
	dir := writeProject(t)

	out, _, err := runCLI(t, "plan", dir)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "Cli Show")
	requireContains(t, out, "episode_01.mkv")
	requireContains(t, out, "[CliSubs] Cli Show - 01 [720p] [BD]")
}

func TestPlanCommandJSON(t *testing.T) {
	dir := writeProject(t)

	out, _, err := runCLI(t, "plan", dir, "--json")
	if err != nil {
		t.Fatalf("plan --json: %v", err)
	}
	var plans []mergeplan.EpisodePlan
	if err := json.Unmarshal([]byte(out), &plans); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if len(plans) != 1 || plans[0].Episode != 1 {
		t.Fatalf("unexpected plans %+v", plans)
	}
	if !plans[0].Viable() {
		t.Fatalf("expected viable plan, problems: %v", plans[0].Problems)
	}
}

func TestPlanCommandMissingConfig(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCLI(t, "plan", dir)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}
