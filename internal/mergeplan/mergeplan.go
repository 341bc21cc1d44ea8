// Package mergeplan resolves a project's extras.merge rules and lays out the
// per-episode mux work: which video, subtitle, extras, and font files feed
// each episode and what the release is called.
package mergeplan

import (
	"fmt"
	"sort"

	"submux/internal/config"
	"submux/internal/episode"
)

// Rule attaches one extras file to the episodes of a bucket.
type Rule struct {
	File string `json:"file"`
	From string `json:"from"`
	To   string `json:"to"`
}

// RuleSet holds compiled extras.merge rules ordered by bucket start.
type RuleSet struct {
	buckets []bucketRules
}

type bucketRules struct {
	bucket episode.Bucket
	rules  []Rule
}

// Compile parses a project's extras.merge table into an ordered rule set.
// Buckets must parse and must not overlap.
func Compile(cfg *config.Project) (*RuleSet, error) {
	set := &RuleSet{}
	for key, entries := range cfg.Extras.Merge {
		bucket, err := episode.ParseBucket(key)
		if err != nil {
			return nil, fmt.Errorf("extras.merge.%q: %w", key, err)
		}
		rules := make([]Rule, 0, len(entries))
		for file, pair := range entries {
			rules = append(rules, Rule{File: file, From: pair.From, To: pair.To})
		}
		sort.Slice(rules, func(i, j int) bool { return rules[i].File < rules[j].File })
		set.buckets = append(set.buckets, bucketRules{bucket: bucket, rules: rules})
	}
	sort.Slice(set.buckets, func(i, j int) bool {
		return set.buckets[i].bucket.Start < set.buckets[j].bucket.Start
	})
	for i := 1; i < len(set.buckets); i++ {
		prev, cur := set.buckets[i-1].bucket, set.buckets[i].bucket
		if prev.Overlaps(cur) {
			return nil, fmt.Errorf("extras.merge: bucket %s overlaps %s", cur, prev)
		}
	}
	return set, nil
}

// ForEpisode returns the rules of the bucket containing ep, or nil when no
// bucket matches.
func (s *RuleSet) ForEpisode(ep int) []Rule {
	for _, b := range s.buckets {
		if b.bucket.Contains(ep) {
			rules := make([]Rule, len(b.rules))
			copy(rules, b.rules)
			return rules
		}
	}
	return nil
}

// Buckets returns the compiled buckets in order.
func (s *RuleSet) Buckets() []episode.Bucket {
	buckets := make([]episode.Bucket, 0, len(s.buckets))
	for _, b := range s.buckets {
		buckets = append(buckets, b.bucket)
	}
	return buckets
}
