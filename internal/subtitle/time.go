package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Centisecond is the timing resolution of ASS timestamps.
const Centisecond = 10 * time.Millisecond

// ParseTimestamp parses an ASS timestamp of the form H:MM:SS.CC. A
// three-digit fraction is read as milliseconds and rounded down.
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	secParts := strings.SplitN(parts[2], ".", 2)
	if len(secParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(parts[0])
	minutes, errM := strconv.Atoi(parts[1])
	seconds, errS := strconv.Atoi(secParts[0])
	fraction, errF := strconv.Atoi(secParts[1])
	if errH != nil || errM != nil || errS != nil || errF != nil || hours < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	var centis int
	switch len(secParts[1]) {
	case 1:
		centis = fraction * 10
	case 2:
		centis = fraction
	case 3:
		centis = fraction / 10
	default:
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(centis)*Centisecond, nil
}

// FormatTimestamp renders a duration as an ASS timestamp (H:MM:SS.CC).
// Negative durations clamp to zero.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(Centisecond)
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)
	d -= time.Duration(seconds) * time.Second
	centis := int(d / Centisecond)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
