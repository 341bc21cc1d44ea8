// Package episode resolves episode selections and range buckets.
//
// A project selects episodes with a single number, a list, or an inclusive
// range expression like "1...12". Extras-merge rules are scoped to buckets
// written as "1-5". Both forms expand to ordered, strictly increasing
// sequences of positive episode numbers.
package episode

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a resolved episode selection: non-empty, strictly increasing,
// positive numbers.
type Range struct {
	episodes []int
}

// ParseRange resolves an episode selection from a decoded TOML value.
// Accepted forms: a single integer, a list of integers, or a string,
// either "A...B" expanding to the inclusive range A through B or a
// single number.
func ParseRange(value any) (Range, error) {
	switch v := value.(type) {
	case nil:
		return Range{}, fmt.Errorf("episodes not set")
	case int:
		return rangeFromList([]int{v})
	case int64:
		return rangeFromList([]int{int(v)})
	case string:
		return parseRangeExpr(v)
	case []int:
		return rangeFromList(v)
	case []any:
		list := make([]int, 0, len(v))
		for _, item := range v {
			n, ok := item.(int64)
			if !ok {
				return Range{}, fmt.Errorf("episodes list contains non-integer %v", item)
			}
			list = append(list, int(n))
		}
		return rangeFromList(list)
	default:
		return Range{}, fmt.Errorf("episodes has unsupported type %T", value)
	}
}

func parseRangeExpr(expr string) (Range, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(expr), "...")
	if !ok {
		if n, err := strconv.Atoi(strings.TrimSpace(expr)); err == nil {
			return rangeFromList([]int{n})
		}
		return Range{}, fmt.Errorf("episode range %q: expected \"A...B\"", expr)
	}
	first, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return Range{}, fmt.Errorf("episode range %q: bad start: %w", expr, err)
	}
	last, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		return Range{}, fmt.Errorf("episode range %q: bad end: %w", expr, err)
	}
	if first > last {
		return Range{}, fmt.Errorf("episode range %q: start exceeds end", expr)
	}
	list := make([]int, 0, last-first+1)
	for ep := first; ep <= last; ep++ {
		list = append(list, ep)
	}
	return rangeFromList(list)
}

func rangeFromList(list []int) (Range, error) {
	if len(list) == 0 {
		return Range{}, fmt.Errorf("episode selection is empty")
	}
	for i, ep := range list {
		if ep < 1 {
			return Range{}, fmt.Errorf("episode %d is not positive", ep)
		}
		if i > 0 && ep <= list[i-1] {
			return Range{}, fmt.Errorf("episodes must be strictly increasing: %d follows %d", ep, list[i-1])
		}
	}
	return Range{episodes: append([]int(nil), list...)}, nil
}

// Episodes returns the resolved episode numbers in order.
func (r Range) Episodes() []int {
	return append([]int(nil), r.episodes...)
}

// Len returns the number of selected episodes.
func (r Range) Len() int {
	return len(r.episodes)
}

// Contains reports whether ep is part of the selection.
func (r Range) Contains(ep int) bool {
	for _, n := range r.episodes {
		if n == ep {
			return true
		}
	}
	return false
}

// String renders the selection as a range expression when contiguous,
// otherwise as a comma-separated list.
func (r Range) String() string {
	if len(r.episodes) == 0 {
		return ""
	}
	first := r.episodes[0]
	last := r.episodes[len(r.episodes)-1]
	if len(r.episodes) == last-first+1 {
		if first == last {
			return strconv.Itoa(first)
		}
		return fmt.Sprintf("%d...%d", first, last)
	}
	parts := make([]string, len(r.episodes))
	for i, ep := range r.episodes {
		parts[i] = strconv.Itoa(ep)
	}
	return strings.Join(parts, ", ")
}
