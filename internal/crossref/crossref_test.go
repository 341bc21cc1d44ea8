package crossref

import (
	"path/filepath"
	"testing"

	"submux/internal/testsupport"
)

const targetScript = `[Script Info]
Title: ep02

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Comment: 0,0:00:00.50,0:00:00.50,Default,,0,0,0,,Editor note on line one.
Dialogue: 0,0:00:01.00,0:00:03.00,Default,,0,0,0,,She never came back.
Dialogue: 0,0:00:04.00,0:00:06.00,Default,,0,0,0,,We meet again.
`

const sourceScript = `[Script Info]
Title: ep01

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:03.00,Default,CR-2-[2],0,0,0,,She never\Ncame   back.
Dialogue: 0,0:00:05.00,0:00:07.00,Default,CR-2-[1, 2],0,0,0,,Combined quote line.
Dialogue: 0,0:00:08.00,0:00:09.00,Default,CR-9-[1],0,0,0,,Lost line.
Dialogue: 0,0:00:10.00,0:00:11.00,Default,,0,0,0,,No marker here.
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	base := t.TempDir()
	for rel, content := range files {
		testsupport.WriteFile(t, filepath.Join(base, rel), content)
	}
	return base
}

func TestScanMarkers(t *testing.T) {
	base := writeTree(t, map[string]string{
		"01/ep01.ass": sourceScript,
		"02/ep02.ass": targetScript,
	})

	refs, err := ScanMarkers(base, []int{1, 2})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 references, got %d", len(refs))
	}

	matched := refs[0]
	if matched.Line != 1 || matched.TargetFolder != "02" {
		t.Fatalf("unexpected first reference %+v", matched)
	}
	if matched.Marker() != "CR-02-[2]" {
		t.Fatalf("unexpected marker %q", matched.Marker())
	}
	if matched.TargetFile != "ep02.ass" || matched.TargetText != "She never came back." {
		t.Fatalf("unexpected target %+v", matched)
	}
	if !matched.Matched() {
		t.Fatalf("expected line-break variant to match after normalizing, got %+v", matched)
	}

	combined := refs[1]
	if combined.Text != "Combined quote line." {
		t.Fatalf("expected comma marker to keep text intact, got %q", combined.Text)
	}
	if combined.TargetText != "Editor note on line one. She never came back." {
		t.Fatalf("expected joined target text, got %q", combined.TargetText)
	}
	if !combined.Different() || combined.Matched() {
		t.Fatalf("expected combined reference to differ, got %+v", combined)
	}
	if combined.Marker() != "CR-02-[1, 2]" {
		t.Fatalf("unexpected marker %q", combined.Marker())
	}

	lost := refs[2]
	if lost.Found() {
		t.Fatalf("expected missing folder to stay unresolved, got %+v", lost)
	}
	if lost.TargetFolder != "09" {
		t.Fatalf("expected zero-padded folder, got %q", lost.TargetFolder)
	}

	summary := Summarize(refs, refs)
	if summary.Total != 3 || summary.ExactMatches != 1 || summary.Different != 1 || summary.NotFound != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestScanMarkersSkipsMissingFolders(t *testing.T) {
	base := writeTree(t, map[string]string{
		"01/ep01.ass": sourceScript,
		"02/ep02.ass": targetScript,
	})

	refs, err := ScanMarkers(base, []int{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected missing folders to be skipped, got %d refs", len(refs))
	}

	if _, err := ScanMarkers(filepath.Join(base, "nope"), []int{1}); err == nil {
		t.Fatalf("expected error for missing base path")
	}
}

func TestApplyFilters(t *testing.T) {
	base := writeTree(t, map[string]string{
		"01/ep01.ass": sourceScript,
		"02/ep02.ass": targetScript,
	})
	refs, err := ScanMarkers(base, []int{1})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	tests := []struct {
		filter Filter
		want   int
	}{
		{FilterAll, 3},
		{FilterMatched, 1},
		{FilterDifferent, 1},
		{FilterNotFound, 1},
	}
	for _, tt := range tests {
		if got := len(Apply(refs, tt.filter)); got != tt.want {
			t.Fatalf("filter %q kept %d, want %d", tt.filter, got, tt.want)
		}
	}

	summary := Summarize(refs, Apply(refs, FilterMatched))
	if summary.Displayed != 1 || summary.Total != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestEventTextExtraction(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{
			name: "plain dialogue",
			line: "Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Hello there.",
			want: "Hello there.",
			ok:   true,
		},
		{
			name: "effect set",
			line: "Comment: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,opsync,sync text",
			want: "sync text",
			ok:   true,
		},
		{
			name: "comma in actor marker",
			line: "Dialogue: 0,0:00:01.00,0:00:02.00,Default,CR-2-[1, 2],0,0,0,,Kept whole.",
			want: "Kept whole.",
			ok:   true,
		},
		{
			name: "double comma inside text",
			line: "Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Wait,, really?",
			want: "Wait,, really?",
			ok:   true,
		},
		{
			name: "empty text",
			line: "Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,",
			ok:   false,
		},
		{
			name: "not an event line",
			line: "PlayResX: 1920",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := eventText(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("eventText(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}
