package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"submux/internal/fileutil"
)

// ReadFile loads and parses an ASS script, falling back to legacy encodings
// when the file is not valid UTF-8.
func ReadFile(path string) (*Document, error) {
	text, err := fileutil.DecodeText(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// WriteFile writes the document as UTF-8 with a BOM, the encoding Aegisub
// and mkvmerge both expect from .ass scripts.
func (d *Document) WriteFile(path string) error {
	data := append([]byte{0xEF, 0xBB, 0xBF}, d.Marshal()...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write subtitle: %w", err)
	}
	return nil
}

// Marshal renders the document as ASS text.
func (d *Document) Marshal() []byte {
	var b strings.Builder
	b.WriteString("[Script Info]\n")
	for _, info := range d.Info {
		if info.Raw != "" {
			b.WriteString(info.Raw)
			b.WriteByte('\n')
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", info.Key, info.Value)
	}

	b.WriteString("\n[V4+ Styles]\n")
	format := d.StyleFormat
	if format == "" {
		format = defaultStyleFormat
	}
	fmt.Fprintf(&b, "Format: %s\n", format)
	for _, style := range d.Styles {
		fmt.Fprintf(&b, "Style: %s\n", style.Raw)
	}

	b.WriteString("\n[Events]\n")
	fmt.Fprintf(&b, "Format: %s\n", strings.Join(defaultEventFormat, ", "))
	for _, event := range d.Events {
		b.WriteString(formatEvent(event))
		b.WriteByte('\n')
	}

	for _, section := range d.Extra {
		fmt.Fprintf(&b, "\n[%s]\n", section.Name)
		for _, line := range section.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}

func formatEvent(event Event) string {
	kind := event.Kind
	if kind == "" {
		kind = EventDialogue
	}
	fields := []string{
		zeroDefault(event.Layer),
		FormatTimestamp(event.Start),
		FormatTimestamp(event.End),
		event.Style,
		event.Actor,
		zeroDefault(event.MarginL),
		zeroDefault(event.MarginR),
		zeroDefault(event.MarginV),
		event.Effect,
		event.Text,
	}
	return kind + ": " + strings.Join(fields, ",")
}

func zeroDefault(value string) string {
	if value == "" {
		return "0"
	}
	return value
}
