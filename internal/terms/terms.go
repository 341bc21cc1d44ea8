// Package terms flags words that nearly, but not exactly, match an entry
// from a reference terminology list. Editors keep one list per show; the
// checker surfaces likely misspellings of names and show-specific terms.
package terms

import (
	"fmt"
	"strings"

	"submux/internal/fileutil"
)

// LoadTerms reads a term list: one term per line. Blank lines and lines
// starting with # are skipped, duplicates are dropped case-insensitively.
func LoadTerms(path string) ([]string, error) {
	text, err := fileutil.DecodeText(path)
	if err != nil {
		return nil, fmt.Errorf("read terms: %w", err)
	}

	seen := make(map[string]struct{})
	var terms []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key := strings.ToLower(line)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		terms = append(terms, line)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("terms file %s has no terms", path)
	}
	return terms, nil
}
