package crossref

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"submux/internal/fileutil"
)

// readLines loads a script as raw lines, decoding legacy encodings.
func readLines(path string) ([]string, error) {
	text, err := fileutil.DecodeText(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"), nil
}

// eventLines returns the Dialogue and Comment lines following the Format
// declaration of the [Events] section. This is the line numbering editors
// use in CR markers.
func eventLines(lines []string) []string {
	var events []string
	inEvents := false
	afterFormat := false
	for _, line := range lines {
		if strings.Contains(line, "[Events]") {
			inEvents = true
			continue
		}
		if !inEvents {
			continue
		}
		if strings.HasPrefix(line, "Format:") {
			afterFormat = true
			continue
		}
		if afterFormat && (strings.HasPrefix(line, "Dialogue:") || strings.HasPrefix(line, "Comment:")) {
			events = append(events, line)
		}
	}
	return events
}

// eventText extracts the text field of a raw event line: everything past
// the ninth comma of the standard event layout. Marker fields can carry
// embedded commas (`CR-2-[1, 2]` in the actor slot), which shifts the
// split; those lines fall back to taking what follows the last empty
// field pair.
func eventText(line string) (string, bool) {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return "", false
	}
	text := ""
	parts := strings.SplitN(value, ",", 10)
	if len(parts) == 10 && !strings.HasPrefix(parts[9], ",") {
		text = parts[9]
	} else if idx := strings.LastIndex(value, ",,"); idx >= 0 {
		text = value[idx+2:]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}

// numberedFolders lists the digit-named directories under base in order.
func numberedFolders(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", base, err)
	}
	var folders []string
	for _, entry := range entries {
		if entry.IsDir() && isDigits(entry.Name()) {
			folders = append(folders, entry.Name())
		}
	}
	sort.Strings(folders)
	return folders, nil
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// scriptFiles lists the .ass files in a folder, sorted.
func scriptFiles(folder string) ([]string, error) {
	return fileutil.FindAll(folder, "*.ass")
}

// baseName strips the directory for report display.
func baseName(path string) string {
	return filepath.Base(path)
}
