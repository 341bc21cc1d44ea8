package subtitle

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"submux/internal/textutil"
)

// Chapter is a single chapter mark.
type Chapter struct {
	Start time.Duration
	Title string
}

// Actor-field values that mark an event as a chapter.
var chapterMarkers = map[string]bool{
	"chapter": true,
	"chptr":   true,
}

// Chapters extracts chapter marks from Comment events whose actor field is
// a chapter marker. The title comes from the event's tag-stripped text;
// untitled chapters are numbered.
func Chapters(doc *Document) []Chapter {
	var chapters []Chapter
	for _, event := range doc.Events {
		if !event.IsComment() {
			continue
		}
		if !chapterMarkers[strings.ToLower(strings.TrimSpace(event.Actor))] {
			continue
		}
		title := strings.TrimSpace(textutil.StripTags(event.Text))
		chapters = append(chapters, Chapter{Start: event.Start, Title: title})
	}
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Start < chapters[j].Start
	})
	for i := range chapters {
		if chapters[i].Title == "" {
			chapters[i].Title = fmt.Sprintf("Chapter %02d", i+1)
		}
	}
	return chapters
}

// WriteOGM writes chapters in the OGM simple format understood by
// mkvmerge --chapters.
func WriteOGM(path string, chapters []Chapter) error {
	var b strings.Builder
	for i, chapter := range chapters {
		fmt.Fprintf(&b, "CHAPTER%02d=%s\n", i+1, formatOGMTimestamp(chapter.Start))
		fmt.Fprintf(&b, "CHAPTER%02dNAME=%s\n", i+1, chapter.Title)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write chapters: %w", err)
	}
	return nil
}

func formatOGMTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Millisecond)
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)
	d -= time.Duration(seconds) * time.Second
	millis := int(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
