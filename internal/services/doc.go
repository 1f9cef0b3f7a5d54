// Package services defines shared utilities consumed by the alignment and
// rendering pipelines and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs, stage names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that tag failures with
//     the stage that produced them (alignment, formatting, rendering) and
//     classify them as invalid input, collaborator failure, or missing
//     resource.
//
// Use these helpers when wiring new pipeline logic so error reporting stays
// uniform between the CLI, the job worker, and the HTTP API.
package services
