// Package main hosts the submux CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into batch
// muxing runs, plan inspection, terminology checks, cross-reference reports,
// history queries, and configuration scaffolding. Commands resolve their
// project directory argument into a validated configuration and hand off to
// the internal packages.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
