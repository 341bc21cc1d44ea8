// Package language normalizes language codes for track flags and names.
//
// Project configs carry a display name and an ISO 639-1 code per track
// (audio_language / audio_lang_code). mkvmerge wants ISO 639-2 codes on its
// --language flags, and the two config fields should describe the same
// language. Both conversions live here.
package language

import "strings"

type info struct {
	iso3 string
	alt3 string // ISO 639-2/B alternate (e.g. "fre" vs "fra")
	name string
}

var byISO2 = map[string]info{
	"en": {iso3: "eng", name: "English"},
	"ja": {iso3: "jpn", name: "Japanese"},
	"es": {iso3: "spa", name: "Spanish"},
	"fr": {iso3: "fra", alt3: "fre", name: "French"},
	"de": {iso3: "deu", alt3: "ger", name: "German"},
	"it": {iso3: "ita", name: "Italian"},
	"pt": {iso3: "por", name: "Portuguese"},
	"ko": {iso3: "kor", name: "Korean"},
	"zh": {iso3: "zho", alt3: "chi", name: "Chinese"},
	"ru": {iso3: "rus", name: "Russian"},
	"ar": {iso3: "ara", name: "Arabic"},
	"hi": {iso3: "hin", name: "Hindi"},
	"nl": {iso3: "nld", alt3: "dut", name: "Dutch"},
	"pl": {iso3: "pol", name: "Polish"},
	"sv": {iso3: "swe", name: "Swedish"},
	"da": {iso3: "dan", name: "Danish"},
	"no": {iso3: "nor", name: "Norwegian"},
	"fi": {iso3: "fin", name: "Finnish"},
	"th": {iso3: "tha", name: "Thai"},
	"vi": {iso3: "vie", name: "Vietnamese"},
	"id": {iso3: "ind", name: "Indonesian"},
}

// Secondary indexes built at init time.
var (
	byISO3 map[string]string // 3-letter (incl. alternates) -> 2-letter
	byName map[string]string // lowercased display name -> 2-letter
)

func init() {
	byISO3 = make(map[string]string, len(byISO2)*2)
	byName = make(map[string]string, len(byISO2))
	for code2, e := range byISO2 {
		byISO3[e.iso3] = code2
		if e.alt3 != "" {
			byISO3[e.alt3] = code2
		}
		byName[strings.ToLower(e.name)] = code2
	}
}

func resolve(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", false
	}
	if _, ok := byISO2[code]; ok {
		return code, true
	}
	if code2, ok := byISO3[code]; ok {
		return code2, true
	}
	if code2, ok := byName[code]; ok {
		return code2, true
	}
	return "", false
}

// ToISO3 converts a recognized code or language name to ISO 639-2 (3-letter)
// for mkvmerge --language flags. Unknown 3-letter codes pass through
// unchanged; anything else unrecognized becomes "und".
func ToISO3(code string) string {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return "und"
	}
	if code2, ok := resolve(trimmed); ok {
		return byISO2[code2].iso3
	}
	if len(trimmed) == 3 {
		return trimmed
	}
	return "und"
}

// DisplayName returns a human-readable language name for a recognized code,
// the uppercased code for an unrecognized one, and "Unknown" for empty input.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	if code2, ok := resolve(trimmed); ok {
		return byISO2[code2].name
	}
	return strings.ToUpper(trimmed)
}

// Matches reports whether a language name and a code refer to the same
// language. Unrecognized names or codes cannot be checked and match
// anything.
func Matches(name, code string) bool {
	nameCode, okName := resolve(name)
	codeCode, okCode := resolve(code)
	if !okName || !okCode {
		return true
	}
	return nameCode == codeCode
}
