package subtitle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"submux/internal/textutil"
)

// ErrSyncLabelNotFound reports a sync label that matched no event.
var ErrSyncLabelNotFound = errors.New("sync label not found")

// MergeStats reports the effects of merging one script into another.
type MergeStats struct {
	Events        int
	Styles        int
	SkippedStyles []string
	Shift         time.Duration
}

// Merge appends the extra script's styles and events to target. When both
// labels are set, timing is aligned first: every extra event shifts by the
// gap between the target's fromLabel sync event and the extra's toLabel
// sync event, at centisecond resolution, clamping at zero. Style names
// already present in target win; colliding extra styles are dropped and
// reported in the stats. A missing sync label returns ErrSyncLabelNotFound
// and leaves target untouched.
func Merge(target, extra *Document, fromLabel, toLabel string) (MergeStats, error) {
	var stats MergeStats

	var shift time.Duration
	if fromLabel != "" && toLabel != "" {
		anchor, ok := findSyncEvent(target, fromLabel)
		if !ok {
			return stats, fmt.Errorf("%w: %q in target script", ErrSyncLabelNotFound, fromLabel)
		}
		source, ok := findSyncEvent(extra, toLabel)
		if !ok {
			return stats, fmt.Errorf("%w: %q in extra script", ErrSyncLabelNotFound, toLabel)
		}
		shift = (anchor.Start - source.Start).Round(Centisecond)
	}

	existing := make(map[string]bool, len(target.Styles))
	for _, style := range target.Styles {
		existing[strings.ToLower(style.Name)] = true
	}
	for _, style := range extra.Styles {
		key := strings.ToLower(style.Name)
		if existing[key] {
			stats.SkippedStyles = append(stats.SkippedStyles, style.Name)
			continue
		}
		target.Styles = append(target.Styles, style)
		existing[key] = true
		stats.Styles++
	}

	for _, event := range extra.Events {
		event.Start = clampZero(event.Start + shift)
		event.End = clampZero(event.End + shift)
		target.Events = append(target.Events, event)
		stats.Events++
	}
	stats.Shift = shift
	return stats, nil
}

// A sync event is a Comment whose Effect field names the label, or whose
// text equals it. Text matching accepts both a plain label and one wrapped
// in braces.
func findSyncEvent(doc *Document, label string) (Event, bool) {
	want := strings.ToLower(strings.TrimSpace(label))
	for _, event := range doc.Events {
		if !event.IsComment() {
			continue
		}
		if strings.ToLower(strings.TrimSpace(event.Effect)) == want {
			return event, true
		}
		candidates := []string{
			strings.TrimSpace(textutil.StripTags(event.Text)),
			strings.TrimSpace(strings.Trim(event.Text, "{} ")),
		}
		for _, text := range candidates {
			if text != "" && strings.ToLower(text) == want {
				return event, true
			}
		}
	}
	return Event{}, false
}

func clampZero(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
