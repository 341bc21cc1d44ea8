// Package fileutil provides filesystem helpers shared across the toolkit:
// copying, glob lookups with arity checks, and text decoding for subtitle
// files that predate UTF-8 discipline.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// CopyFile streams src to dst with default permissions (0o644).
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// FindOne returns the single file in dir matching pattern. Zero or multiple
// matches are errors that name the directory and pattern.
func FindOne(dir, pattern string) (string, error) {
	matches, err := FindAll(dir, pattern)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s file in %s", pattern, dir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%d %s files in %s, expected one", len(matches), pattern, dir)
	}
}

// FindAll returns files in dir matching pattern, sorted by name.
func FindAll(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s in %s: %w", pattern, dir, err)
	}
	files := matches[:0]
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}
	sort.Strings(files)
	return files, nil
}
