package render

import (
	"fmt"
	"math"

	"karaoke/internal/alignment"
	"karaoke/internal/services"
)

// Epsilon floors the highlight denominator so zero-length lines do not divide
// by zero.
const Epsilon = 0.001

// ResolveDuration returns the larger of the latest line end and the audio
// duration. audioSeconds <= 0 means no audio. A non-positive result is a
// validation error.
func ResolveDuration(lines []alignment.LineTiming, audioSeconds float64) (float64, error) {
	duration := alignment.MaxEnd(lines)
	if audioSeconds > duration {
		duration = audioSeconds
	}
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, services.Wrap(services.ErrValidation, services.StageRendering, "resolve duration",
			fmt.Sprintf("scene has no duration (%d lines, audio %.3fs)", len(lines), audioSeconds), nil)
	}
	return duration, nil
}

// Progress is the fraction of line's window elapsed at t, clamped to [0, 1].
func Progress(line alignment.LineTiming, t float64) float64 {
	span := math.Max(Epsilon, line.End-line.Start)
	p := (t - line.Start) / span
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// VisibleWidth is how many pixels of a contentWidth-wide highlight layer are
// revealed at t.
func VisibleWidth(line alignment.LineTiming, t float64, contentWidth int) int {
	if contentWidth <= 0 {
		return 0
	}
	return int(math.Floor(float64(contentWidth) * Progress(line, t)))
}

// Visible reports whether t falls inside line's [Start, End) window.
func Visible(line alignment.LineTiming, t float64) bool {
	return t >= line.Start && t < line.End
}

// FrameCount is the number of frames needed to cover duration at fps.
func FrameCount(duration float64, fps int) int {
	if duration <= 0 || fps <= 0 {
		return 0
	}
	return int(math.Ceil(duration * float64(fps)))
}
