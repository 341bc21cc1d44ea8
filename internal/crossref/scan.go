package crossref

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"submux/internal/textutil"
)

var (
	crPattern    = regexp.MustCompile(`CR-(\d+)-\[([0-9,\s]+)\]`)
	recapPattern = regexp.MustCompile(`(?i)(replay|preview)\s+(\d{1,3})`)
)

// ScanMarkers walks the given episode folders under base and resolves every
// CR marker found on an event line. Folders are two-digit directory names;
// missing folders are skipped.
func ScanMarkers(base string, folders []int) ([]Reference, error) {
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("path %s does not exist", base)
	}

	var refs []Reference
	for _, folder := range folders {
		folderName := fmt.Sprintf("%02d", folder)
		files, err := scriptFiles(filepath.Join(base, folderName))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			lines, err := readLines(file)
			if err != nil {
				return nil, err
			}
			for i, line := range eventLines(lines) {
				targetFolder, targetLines := findCRMarker(line)
				if targetFolder == "" {
					continue
				}
				text, ok := eventText(line)
				if !ok {
					continue
				}
				ref := Reference{
					Folder:       folderName,
					File:         baseName(file),
					Line:         i + 1,
					Kind:         KindCrossRef,
					TargetFolder: targetFolder,
					TargetLines:  targetLines,
					Text:         text,
				}
				resolveCrossRef(&ref, base)
				refs = append(refs, ref)
			}
		}
	}
	return refs, nil
}

// ScanRecaps walks every numbered folder under base and resolves replay and
// preview callouts on Dialogue lines. Line numbers here are raw file lines.
func ScanRecaps(base string) ([]Reference, error) {
	folders, err := numberedFolders(base)
	if err != nil {
		return nil, err
	}

	var refs []Reference
	for _, folderName := range folders {
		files, err := scriptFiles(filepath.Join(base, folderName))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			lines, err := readLines(file)
			if err != nil {
				return nil, err
			}
			for i, line := range lines {
				if !strings.Contains(line, "Dialogue:") {
					continue
				}
				kind, digits := findRecapMarker(line)
				if kind == "" {
					continue
				}
				text, ok := eventText(line)
				if !ok {
					continue
				}
				ref := Reference{
					Folder:       folderName,
					File:         baseName(file),
					Line:         i + 1,
					Kind:         kind,
					TargetFolder: zfill2(digits),
					Text:         text,
				}
				resolveRecap(&ref, base)
				refs = append(refs, ref)
			}
		}
	}
	return refs, nil
}

func findCRMarker(line string) (string, []int) {
	match := crPattern.FindStringSubmatch(line)
	if match == nil {
		return "", nil
	}
	var numbers []int
	for _, part := range strings.Split(match[2], ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return "", nil
		}
		numbers = append(numbers, n)
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return zfill2(match[1]), numbers
}

func findRecapMarker(line string) (string, string) {
	match := recapPattern.FindStringSubmatch(line)
	if match == nil {
		return "", ""
	}
	return strings.ToLower(match[1]), match[2]
}

// resolveCrossRef fills in the first target script that has text at the
// referenced event lines, joined with spaces.
func resolveCrossRef(ref *Reference, base string) {
	files, err := scriptFiles(filepath.Join(base, ref.TargetFolder))
	if err != nil {
		return
	}
	for _, file := range files {
		lines, err := readLines(file)
		if err != nil {
			continue
		}
		events := eventLines(lines)
		var texts []string
		for _, n := range ref.TargetLines {
			if n < 1 || n > len(events) {
				continue
			}
			if text, ok := eventText(events[n-1]); ok {
				texts = append(texts, text)
			}
		}
		if len(texts) > 0 {
			ref.TargetFile = baseName(file)
			ref.TargetText = strings.Join(texts, " ")
			return
		}
	}
}

// resolveRecap finds the referenced line in the target folder: an exact
// normalized match wins immediately, otherwise the best containment either
// way scored by length ratio.
func resolveRecap(ref *Reference, base string) {
	want := textutil.NormalizeDialogue(ref.Text)
	files, err := scriptFiles(filepath.Join(base, ref.TargetFolder))
	if err != nil {
		return
	}

	bestScore := 0.0
	for _, file := range files {
		lines, err := readLines(file)
		if err != nil {
			continue
		}
		for i, line := range lines {
			if !strings.Contains(line, "Dialogue:") {
				continue
			}
			text, ok := eventText(line)
			if !ok {
				continue
			}
			got := textutil.NormalizeDialogue(text)
			if got == want {
				ref.TargetFile = baseName(file)
				ref.TargetText = text
				ref.TargetLine = i + 1
				return
			}
			var score float64
			switch {
			case strings.Contains(got, want):
				score = float64(utf8.RuneCountInString(want)) / float64(utf8.RuneCountInString(got))
			case strings.Contains(want, got):
				score = float64(utf8.RuneCountInString(got)) / float64(utf8.RuneCountInString(want))
			default:
				continue
			}
			if score > bestScore {
				bestScore = score
				ref.TargetFile = baseName(file)
				ref.TargetText = text
				ref.TargetLine = i + 1
			}
		}
	}
}
