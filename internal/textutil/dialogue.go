package textutil

import (
	"regexp"
	"strings"
)

var (
	// overrideTagPattern matches ASS override blocks like {\an8\pos(10,20)}.
	overrideTagPattern = regexp.MustCompile(`\{[^}]*\}`)
	// whitespacePattern collapses runs of whitespace during normalization.
	whitespacePattern = regexp.MustCompile(`\s+`)
	// wordPattern matches words for terminology scanning. Hyphens join
	// compound words; everything else splits.
	wordPattern = regexp.MustCompile(`[\p{L}\p{N}_-]+`)
)

// NormalizeDialogue prepares ASS dialogue text for comparison. Hard and soft
// line breaks (\N, \n) become spaces, whitespace runs collapse to a single
// space, and the result is trimmed.
func NormalizeDialogue(text string) string {
	text = strings.ReplaceAll(text, `\N`, " ")
	text = strings.ReplaceAll(text, `\n`, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// StripTags removes ASS override blocks from dialogue text.
func StripTags(text string) string {
	return overrideTagPattern.ReplaceAllString(text, "")
}

// Word is a token extracted from a line of text with its byte offset.
type Word struct {
	Text  string
	Start int
}

// Words extracts word tokens from text. Letters, digits, underscores, and
// hyphens are word characters; anything else separates words.
func Words(text string) []Word {
	matches := wordPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	words := make([]Word, 0, len(matches))
	for _, m := range matches {
		words = append(words, Word{Text: text[m[0]:m[1]], Start: m[0]})
	}
	return words
}
