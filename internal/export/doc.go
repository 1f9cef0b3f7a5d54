// Package export serializes line timings into the three artifacts produced by
// an alignment run: a JSON dump, an SRT caption list, and an LRC lyric file.
//
// Formatting is pure; Writer handles the filesystem. Writes are not
// transactional: if the SRT write fails the JSON file already on disk is left
// in place, and callers should only trust the set once WriteAll succeeds.
package export
