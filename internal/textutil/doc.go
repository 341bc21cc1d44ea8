// Package textutil provides text processing utilities for subtitle dialogue.
//
// The primary use cases are:
//   - Normalizing ASS dialogue text (line breaks, override tags, whitespace)
//     so scripts can be compared line by line
//   - Extracting words from dialogue for terminology checks
//   - Computing a similarity ratio between two words
//   - Sanitizing release names for safe filesystem use
//
// The similarity ratio is a normalized indel distance: the fraction of the
// combined length covered by the longest common subsequence, scaled to 0-100.
package textutil
