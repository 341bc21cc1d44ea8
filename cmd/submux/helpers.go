package main

import (
	"time"

	"submux/internal/history"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// shortID trims a run UUID to the leading group, enough to disambiguate
// within one project's history.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}

func runState(run *history.Run) string {
	switch {
	case run.FinishedAt == nil:
		return "interrupted"
	case run.EpisodesFailed > 0:
		return "failed"
	default:
		return "ok"
	}
}
