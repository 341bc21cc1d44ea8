// Package subtitle parses, transforms, and writes Advanced SubStation Alpha
// (.ass) scripts.
//
// The package keeps Script Info, styles, and events editable while preserving
// unknown style fields and embedded sections verbatim. Aegisub session
// bookkeeping ([Aegisub Project Garbage], [Aegisub Extradata]) is discarded
// on read. Timing operates at ASS centisecond resolution.
package subtitle
