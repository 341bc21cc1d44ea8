package terms

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"submux/internal/fileutil"
	"submux/internal/subtitle"
	"submux/internal/textutil"
)

// DefaultThreshold is the minimum similarity ratio a word/term pair needs
// before it is reported.
const DefaultThreshold = 80.0

// contextRunes is how far the context window extends past the found word on
// each side.
const contextRunes = 20

// Finding is one near-miss: a word close enough to a reference term to look
// like a misspelling.
type Finding struct {
	File    string  `json:"file,omitempty"`
	Line    int     `json:"line"`
	Found   string  `json:"found"`
	Term    string  `json:"term"`
	Ratio   float64 `json:"ratio"`
	Context string  `json:"context,omitempty"`
}

type termEntry struct {
	display    string
	normalized string
}

// Checker compares words against a term list.
type Checker struct {
	terms     []termEntry
	threshold float64
}

// NewChecker builds a checker for the given terms. A threshold of zero or
// less selects DefaultThreshold.
func NewChecker(terms []string, threshold float64) *Checker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	entries := make([]termEntry, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		entries = append(entries, termEntry{display: term, normalized: strings.ToLower(term)})
	}
	return &Checker{terms: entries, threshold: threshold}
}

// ScanFile checks one file. Subtitle scripts are scanned on dialogue text
// only, with override tags stripped and findings numbered by event; anything
// else is read as plain text, line by line.
func (c *Checker) ScanFile(path string) ([]Finding, error) {
	var findings []Finding
	if strings.EqualFold(filepath.Ext(path), ".ass") {
		doc, err := subtitle.ReadFile(path)
		if err != nil {
			return nil, err
		}
		findings = c.scanEvents(doc.Events)
	} else {
		text, err := fileText(path)
		if err != nil {
			return nil, err
		}
		findings = c.Scan(strings.Split(text, "\n"))
	}
	for i := range findings {
		findings[i].File = path
	}
	return findings, nil
}

// Scan checks plain text lines. Line numbers in findings are 1-based.
func (c *Checker) Scan(lines []string) []Finding {
	var findings []Finding
	for i, line := range lines {
		findings = append(findings, c.scanLine(i+1, line)...)
	}
	return findings
}

func (c *Checker) scanEvents(events []subtitle.Event) []Finding {
	var findings []Finding
	for i, event := range events {
		if event.IsComment() {
			continue
		}
		text := textutil.NormalizeDialogue(textutil.StripTags(event.Text))
		findings = append(findings, c.scanLine(i+1, text)...)
	}
	return findings
}

// scanLine reports every word/term pair on the line whose similarity meets
// the threshold. Exact matches are correct usage and are skipped; one word
// can match several terms.
func (c *Checker) scanLine(line int, text string) []Finding {
	var findings []Finding
	for _, word := range textutil.Words(text) {
		normalized := strings.ToLower(word.Text)
		for _, term := range c.terms {
			if normalized == term.normalized {
				continue
			}
			ratio := textutil.Ratio(normalized, term.normalized)
			if ratio < c.threshold {
				continue
			}
			findings = append(findings, Finding{
				Line:    line,
				Found:   word.Text,
				Term:    term.display,
				Ratio:   ratio,
				Context: contextWindow(text, word.Start, word.Start+len(word.Text)),
			})
		}
	}
	return findings
}

func fileText(path string) (string, error) {
	text, err := fileutil.DecodeText(path)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}

// contextWindow widens the byte range [start, end) by contextRunes runes on
// each side and trims the result.
func contextWindow(text string, start, end int) string {
	for i := 0; i < contextRunes && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	for i := 0; i < contextRunes && end < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	return strings.TrimSpace(text[start:end])
}
