package subtitle

import (
	"fmt"
	"strings"
	"time"
)

// Event kinds as they appear in the [Events] section.
const (
	EventDialogue = "Dialogue"
	EventComment  = "Comment"
)

// defaultEventFormat is the field layout Aegisub writes. Documents are
// marshalled back out in this layout regardless of the input ordering.
var defaultEventFormat = []string{
	"Layer", "Start", "End", "Style", "Name",
	"MarginL", "MarginR", "MarginV", "Effect", "Text",
}

const defaultStyleFormat = "Name, Fontname, Fontsize, PrimaryColour, " +
	"SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, " +
	"StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, " +
	"Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"

// InfoLine is one line of the [Script Info] section. Comment lines keep
// their raw text and leave Key empty.
type InfoLine struct {
	Key   string
	Value string
	Raw   string
}

// Style is one style definition. Raw holds the full value after "Style:"
// so unrecognized style fields survive a rewrite untouched.
type Style struct {
	Name string
	Raw  string
}

// Event is one Dialogue or Comment line.
type Event struct {
	Kind    string
	Layer   string
	Start   time.Duration
	End     time.Duration
	Style   string
	Actor   string
	MarginL string
	MarginR string
	MarginV string
	Effect  string
	Text    string
}

// IsComment reports whether the event is a Comment line.
func (e Event) IsComment() bool { return e.Kind == EventComment }

// RawSection preserves sections the muxer has no business rewriting, such
// as embedded [Fonts] or [Graphics] blocks.
type RawSection struct {
	Name  string
	Lines []string
}

// Document is a parsed ASS script.
type Document struct {
	Info        []InfoLine
	StyleFormat string
	Styles      []Style
	Events      []Event
	Extra       []RawSection
}

// Aegisub session state has no place in a release.
var discardedSections = map[string]bool{
	"aegisub project garbage": true,
	"aegisub extradata":       true,
}

// Parse reads an ASS script.
func Parse(text string) (*Document, error) {
	doc := &Document{}
	section := ""
	eventFormat := defaultEventFormat
	var raw *RawSection

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			section = strings.ToLower(name)
			raw = nil
			if !knownSection(section) && !discardedSections[section] {
				doc.Extra = append(doc.Extra, RawSection{Name: name})
				raw = &doc.Extra[len(doc.Extra)-1]
			}
			continue
		}
		if trimmed == "" || discardedSections[section] {
			continue
		}
		// Stray comments outside Script Info carry nothing worth keeping.
		if strings.HasPrefix(trimmed, ";") && section != "script info" && raw == nil {
			continue
		}
		switch {
		case raw != nil:
			raw.Lines = append(raw.Lines, line)
		case section == "script info":
			doc.Info = append(doc.Info, parseInfoLine(trimmed))
		case isStylesSection(section):
			if err := parseStyleLine(doc, trimmed); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
		case section == "events":
			format, err := parseEventLine(doc, trimmed, eventFormat)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			eventFormat = format
		}
	}
	return doc, nil
}

func knownSection(section string) bool {
	return section == "script info" || section == "events" || isStylesSection(section)
}

func isStylesSection(section string) bool {
	return strings.HasSuffix(section, "styles")
}

func parseInfoLine(line string) InfoLine {
	if strings.HasPrefix(line, ";") {
		return InfoLine{Raw: line}
	}
	key, value, found := strings.Cut(line, ":")
	if !found {
		return InfoLine{Raw: line}
	}
	return InfoLine{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)}
}

func parseStyleLine(doc *Document, line string) error {
	if value, ok := cutDescriptor(line, "Format"); ok {
		doc.StyleFormat = value
		return nil
	}
	value, ok := cutDescriptor(line, "Style")
	if !ok {
		return fmt.Errorf("unexpected styles line %q", line)
	}
	name := value
	if idx := strings.Index(value, ","); idx >= 0 {
		name = value[:idx]
	}
	doc.Styles = append(doc.Styles, Style{Name: strings.TrimSpace(name), Raw: value})
	return nil
}

func parseEventLine(doc *Document, line string, format []string) ([]string, error) {
	if value, ok := cutDescriptor(line, "Format"); ok {
		parsed, err := parseEventFormat(value)
		if err != nil {
			return nil, err
		}
		return parsed, nil
	}
	for _, kind := range []string{EventDialogue, EventComment} {
		value, ok := cutDescriptor(line, kind)
		if !ok {
			continue
		}
		event, err := parseEvent(kind, value, format)
		if err != nil {
			return nil, err
		}
		doc.Events = append(doc.Events, event)
		return format, nil
	}
	return nil, fmt.Errorf("unexpected events line %q", line)
}

// cutDescriptor splits "Dialogue: 0,..." style lines on their descriptor,
// matching the descriptor case-insensitively.
func cutDescriptor(line, descriptor string) (string, bool) {
	prefix, value, found := strings.Cut(line, ":")
	if !found || !strings.EqualFold(strings.TrimSpace(prefix), descriptor) {
		return "", false
	}
	return strings.TrimLeft(value, " \t"), true
}

func parseEventFormat(value string) ([]string, error) {
	fields := strings.Split(value, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	known := make(map[string]bool, len(defaultEventFormat))
	for _, field := range defaultEventFormat {
		known[strings.ToLower(field)] = true
	}
	for i, field := range fields {
		if !known[strings.ToLower(field)] {
			return nil, fmt.Errorf("unsupported event format field %q", field)
		}
		if strings.EqualFold(field, "Text") && i != len(fields)-1 {
			return nil, fmt.Errorf("event format field Text must come last")
		}
	}
	if !strings.EqualFold(fields[len(fields)-1], "Text") {
		return nil, fmt.Errorf("event format must end with Text")
	}
	return fields, nil
}

func parseEvent(kind, value string, format []string) (Event, error) {
	parts := strings.SplitN(value, ",", len(format))
	if len(parts) != len(format) {
		return Event{}, fmt.Errorf("event has %d fields, format declares %d", len(parts), len(format))
	}
	event := Event{Kind: kind}
	for i, field := range format {
		part := parts[i]
		if !strings.EqualFold(field, "Text") {
			part = strings.TrimSpace(part)
		}
		switch strings.ToLower(field) {
		case "layer":
			event.Layer = part
		case "start":
			start, err := ParseTimestamp(part)
			if err != nil {
				return Event{}, err
			}
			event.Start = start
		case "end":
			end, err := ParseTimestamp(part)
			if err != nil {
				return Event{}, err
			}
			event.End = end
		case "style":
			event.Style = part
		case "name":
			event.Actor = part
		case "marginl":
			event.MarginL = part
		case "marginr":
			event.MarginR = part
		case "marginv":
			event.MarginV = part
		case "effect":
			event.Effect = part
		case "text":
			event.Text = part
		}
	}
	return event, nil
}
