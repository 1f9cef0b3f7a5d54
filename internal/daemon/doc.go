// Package daemon coordinates the long-running karaoke process.
//
// It wires configuration, the job store, storage paths, the workflow manager,
// and the HTTP API into a single lifecycle with flock-based locking to prevent
// multiple instances. The API only validates and enqueues; alignment and
// rendering happen on workflow workers, and clients poll job status.
//
// Keep orchestration logic here: individual pipeline steps live in their
// respective packages while the daemon focuses on startup, shutdown, and
// request admission.
package daemon
