package fileutil

import (
	"bytes"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText reads a text file and returns its contents as UTF-8. Subtitle
// scripts in the wild arrive as UTF-8 (with or without BOM), Windows-1252,
// or Latin-1, so invalid UTF-8 falls back through the legacy encodings.
func DecodeText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return decodeBytes(raw), nil
}

func decodeBytes(raw []byte) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw)
	}
	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
		// Windows-1252 leaves a few code points undefined; the decoder
		// substitutes U+FFFD for those, which signals the wrong charset.
		if !bytes.ContainsRune(decoded, utf8.RuneError) {
			return string(decoded)
		}
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// Latin-1 maps every byte; decoding cannot fail.
		return string(raw)
	}
	return string(decoded)
}
