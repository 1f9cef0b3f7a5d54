// Package api defines wire-format types and converters for the HTTP API and
// the CLI's job views. It translates internal job models into
// transport-friendly DTOs so clients do not couple to storage types.
//
// # Key Types
//
// Job: transport representation of a job with its request, result, and
// failure classification.
//
// WorkflowStatus: manager running state, worker count, job stats, last job.
//
// DaemonStatus: aggregated runtime information including dependencies.
//
// # Converters
//
// FromJob: jobs.Job -> Job with millisecond RFC3339 timestamps.
//
// FromStatusSummary: workflow.StatusSummary -> WorkflowStatus.
//
// # Design Notes
//
// DTOs use snake_case JSON tags to match the alignment and render request
// payloads clients already send. Request and result are passed through as
// json.RawMessage to avoid double-encoding.
package api
