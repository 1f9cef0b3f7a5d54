// Package jobs persists alignment and render jobs in SQLite.
//
// The Store owns the database connection, applies embedded migrations on
// open, and exposes the job lifecycle used by the workflow manager and the
// HTTP API: pending jobs are claimed one at a time, run, and then either
// completed with a JSON result or failed with the error kind and stage that
// stopped them. Jobs left running by a previous process are returned to
// pending on startup.
//
// The database lives next to the logs and is treated as working state for
// in-flight and recent jobs, not as an archive of artifacts.
package jobs
