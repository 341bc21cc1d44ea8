package episode

import (
	"fmt"
	"strconv"
	"strings"
)

// Bucket is an inclusive episode interval parsed from a key like "1-5".
type Bucket struct {
	Start int
	End   int
}

// ParseBucket parses an "A-B" interval key. A single number "7" is the
// one-episode bucket 7-7.
func ParseBucket(key string) (Bucket, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return Bucket{}, fmt.Errorf("bucket key is empty")
	}
	startText, endText, found := strings.Cut(trimmed, "-")
	if !found {
		endText = startText
	}
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return Bucket{}, fmt.Errorf("bucket %q: bad start: %w", key, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endText))
	if err != nil {
		return Bucket{}, fmt.Errorf("bucket %q: bad end: %w", key, err)
	}
	if start < 1 {
		return Bucket{}, fmt.Errorf("bucket %q: episode %d is not positive", key, start)
	}
	if start > end {
		return Bucket{}, fmt.Errorf("bucket %q: start exceeds end", key)
	}
	return Bucket{Start: start, End: end}, nil
}

// Contains reports whether ep falls inside the bucket.
func (b Bucket) Contains(ep int) bool {
	return ep >= b.Start && ep <= b.End
}

// Overlaps reports whether two buckets share any episode.
func (b Bucket) Overlaps(other Bucket) bool {
	return b.Start <= other.End && other.Start <= b.End
}

// String renders the bucket in its key form.
func (b Bucket) String() string {
	if b.Start == b.End {
		return strconv.Itoa(b.Start)
	}
	return fmt.Sprintf("%d-%d", b.Start, b.End)
}

// Key returns the zero-padded identifier used for episode directories,
// two digits wide ("01", "12") and wider past 99.
func Key(ep int) string {
	return fmt.Sprintf("%02d", ep)
}
