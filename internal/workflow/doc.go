// Package workflow runs queued alignment and render jobs.
//
// The Manager polls the job store, claims pending jobs in submission order,
// and hands each one to the Handler registered for its kind. Results are
// stored as JSON on the job; failures record the error kind and the pipeline
// stage that produced them. Jobs left running by an earlier process are
// returned to pending when the manager starts.
//
// Handlers never run on an HTTP request goroutine: the API enqueues and calls
// Notify, and clients poll the job until it reaches a terminal status.
package workflow
