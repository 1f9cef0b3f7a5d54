// Package alignment binds lyric lines to audio timestamps.
//
// Two engines produce the same []LineTiming shape:
//
//   - the matching engine transcribes the audio with a Transcriber and runs
//     Match, a greedy monotonic best-match of lyric lines against speech
//     segments;
//   - the forced engine hands the transcript to a ForcedAligner and maps its
//     fragments one-to-one onto lines.
//
// Service selects an engine per request, falling back to the configured
// default, and writes the timing artifacts through an ArtifactWriter.
//
// Match never revisits a segment: the cursor only moves forward, so repeated
// lyric lines can starve later duplicates of good matches, and ties keep the
// earliest candidate. Both behaviors are intentional.
package alignment
