// Package aeneas runs the aeneas forced aligner as an external process.
//
// The transcript is written one lyric line per row, aeneas is invoked through
// its execute_task tool in plain-text mode, and the JSON sync map it writes is
// converted into alignment fragments. Service implements
// alignment.ForcedAligner.
package aeneas
