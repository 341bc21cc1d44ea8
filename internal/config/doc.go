// Package config loads, normalizes, and validates project configuration.
//
// A project is a directory holding config.toml next to the episode, extras,
// and output directories. Loading expands every path to an absolute location,
// resolves the episode selection, fills defaults, and rejects configs whose
// merge buckets or language codes are inconsistent. A missing config file is
// reported distinctly from a malformed one so callers can suggest
// 'submux config init' only when it helps.
//
// Always obtain settings through this package so downstream code receives
// resolved paths and a validated episode range.
package config
