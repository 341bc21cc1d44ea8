package main

import (
	"context"
	"encoding/json"
	"testing"

	"submux/internal/config"
	"submux/internal/history"
)

func seedHistoryRun(t *testing.T, dir string) string {
	t.Helper()
	cfg, _, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	run, err := store.BeginRun(ctx, cfg.ShowName, 1, false)
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	err = store.RecordEpisode(ctx, run.ID, history.Episode{
		Episode:    1,
		OutputName: "[CliSubs] Cli Show - 01 [720p] [BD] [AAAA1111].mkv",
		CRC32:      "AAAA1111",
		Status:     history.StatusOK,
		DurationMS: 1200,
	})
	if err != nil {
		t.Fatalf("RecordEpisode failed: %v", err)
	}
	if err := store.FinishRun(ctx, run.ID); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}
	return run.ID
}

func TestHistoryList(t *testing.T) {
	dir := writeProject(t)
	runID := seedHistoryRun(t, dir)

	out, _, err := runCLI(t, "history", "list", dir)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, shortID(runID))
	requireContains(t, out, "Cli Show")
	requireContains(t, out, "ok")
}

func TestHistoryListJSON(t *testing.T) {
	dir := writeProject(t)
	runID := seedHistoryRun(t, dir)

	out, _, err := runCLI(t, "history", "list", dir, "--json")
	if err != nil {
		t.Fatalf("history list --json: %v", err)
	}
	var views []struct {
		ID       string            `json:"id"`
		Show     string            `json:"show"`
		Episodes []history.Episode `json:"episodes"`
	}
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(views) != 1 || views[0].ID != runID {
		t.Fatalf("unexpected views %+v", views)
	}
	if len(views[0].Episodes) != 1 || views[0].Episodes[0].CRC32 != "AAAA1111" {
		t.Fatalf("unexpected episodes %+v", views[0].Episodes)
	}
}

func TestHistoryClear(t *testing.T) {
	dir := writeProject(t)
	seedHistoryRun(t, dir)

	out, _, err := runCLI(t, "history", "clear", dir)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Removed 1 runs")

	out, _, err = runCLI(t, "history", "list", dir)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "No recorded runs")
}
