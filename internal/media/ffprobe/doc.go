// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no karaoke-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata (duration, stream count)
//   - Prober: audio duration lookup used to size karaoke renders
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
package ffprobe
