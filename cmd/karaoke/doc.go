// Package main hosts the karaoke CLI entrypoint and command graph.
//
// The Cobra-based command tree runs alignment and rendering in-process, starts
// the job daemon with its HTTP API, inspects the job database, and scaffolds
// configuration. It centralizes configuration resolution and logger setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
