// Package whisperx runs WhisperX speech recognition for the segment-matching
// alignment engine.
//
// This package handles:
//   - Audio extraction to mono 16kHz WAV
//   - WhisperX invocation through uvx
//   - Loading sentence-level segments from WhisperX JSON output
//
// Service implements alignment.Transcriber. Configuration options (model,
// language, CUDA, VAD method) are passed via Config.
package whisperx
