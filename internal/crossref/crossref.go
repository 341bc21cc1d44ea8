// Package crossref resolves editorial cross-reference markers between
// episode scripts. Editors leave `CR-<folder>-[lines]` markers pointing at
// event lines in another episode, and `replay <nn>` / `preview <nn>`
// callouts for lines repeated from or teasing another episode; the scans
// check the referenced text still says what the marker claims.
package crossref

import (
	"fmt"
	"strconv"
	"strings"

	"submux/internal/textutil"
)

// Reference kinds.
const (
	KindCrossRef = "CR"
	KindReplay   = "replay"
	KindPreview  = "preview"
)

// Reference is one marker resolved against its target folder.
type Reference struct {
	Folder       string `json:"folder"`
	File         string `json:"file"`
	Line         int    `json:"line"`
	Kind         string `json:"kind"`
	TargetFolder string `json:"target_folder"`
	TargetLines  []int  `json:"target_lines,omitempty"`
	Text         string `json:"text"`
	TargetFile   string `json:"target_file,omitempty"`
	TargetText   string `json:"target_text,omitempty"`
	TargetLine   int    `json:"target_line,omitempty"`
}

// Found reports whether the marker resolved to any target text.
func (r Reference) Found() bool { return r.TargetFile != "" }

// Matched reports whether source and target text agree after normalizing.
func (r Reference) Matched() bool {
	return r.Found() && textutil.NormalizeDialogue(r.Text) == textutil.NormalizeDialogue(r.TargetText)
}

// Different reports whether the target was found but no longer agrees.
func (r Reference) Different() bool {
	if !r.Found() || r.TargetText == "" {
		return false
	}
	return textutil.NormalizeDialogue(r.Text) != textutil.NormalizeDialogue(r.TargetText)
}

// Marker renders the reference the way it is written in the script.
func (r Reference) Marker() string {
	if r.Kind == KindCrossRef {
		lines := make([]string, len(r.TargetLines))
		for i, n := range r.TargetLines {
			lines[i] = strconv.Itoa(n)
		}
		return fmt.Sprintf("CR-%s-[%s]", r.TargetFolder, strings.Join(lines, ", "))
	}
	return fmt.Sprintf("%s %s", r.Kind, r.TargetFolder)
}

// Filter selects which references a report shows.
type Filter string

const (
	FilterAll       Filter = ""
	FilterMatched   Filter = "matched"
	FilterNotFound  Filter = "not-found"
	FilterDifferent Filter = "different"
)

// Apply returns the references the filter keeps.
func Apply(refs []Reference, filter Filter) []Reference {
	if filter == FilterAll {
		return refs
	}
	kept := make([]Reference, 0, len(refs))
	for _, ref := range refs {
		switch filter {
		case FilterMatched:
			if ref.Matched() {
				kept = append(kept, ref)
			}
		case FilterNotFound:
			if !ref.Found() {
				kept = append(kept, ref)
			}
		case FilterDifferent:
			if ref.Different() {
				kept = append(kept, ref)
			}
		}
	}
	return kept
}

// Summary is the roll-up block at the end of a report. Counts cover every
// reference; Displayed is the filtered count.
type Summary struct {
	Total        int `json:"total"`
	Displayed    int `json:"displayed"`
	ExactMatches int `json:"exact_matches"`
	Different    int `json:"different"`
	NotFound     int `json:"not_found"`
}

// Summarize computes the summary over all references.
func Summarize(all, displayed []Reference) Summary {
	summary := Summary{Total: len(all), Displayed: len(displayed)}
	for _, ref := range all {
		if !ref.Found() {
			summary.NotFound++
			continue
		}
		if ref.Matched() {
			summary.ExactMatches++
		}
		if ref.Different() {
			summary.Different++
		}
	}
	return summary
}

// zfill2 pads a digit string to the two-place folder convention.
func zfill2(digits string) string {
	if len(digits) < 2 {
		return "0" + digits
	}
	return digits
}
