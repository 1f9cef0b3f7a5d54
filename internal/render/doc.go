// Package render turns line timings into a karaoke video.
//
// A render resolves the scene duration, builds a Scene (a background plus a
// base and a highlight text layer per line), rasterizes frames at the
// configured rate, and streams them as raw RGBA into ffmpeg, which encodes
// the video and muxes the optional audio track.
//
// Highlight state is a pure function of time: Progress and VisibleWidth are
// evaluated per frame and nothing about the animation is cached between
// frames. That keeps frames independent, so Compositor rasterizes them in
// parallel batches and writes each batch in order.
//
// Any failure aborts the whole render and removes the partial output file.
package render
