package alignment

import "karaoke/internal/lyrics"

// LyricLine is one parsed lyric line in singing order.
type LyricLine = lyrics.Line

// SpeechSegment is a transcribed span of audio. An End that does not exceed
// Start is treated as missing.
type SpeechSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// WordTiming is word-level timing. Neither engine populates it yet.
type WordTiming struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// LineTiming binds a lyric line to a [Start, End) window in seconds.
type LineTiming struct {
	Text  string       `json:"text"`
	Start float64      `json:"start"`
	End   float64      `json:"end"`
	Words []WordTiming `json:"words"`
}

// Duration returns End - Start.
func (l LineTiming) Duration() float64 {
	return l.End - l.Start
}

// Artifacts are the paths of the exported timing files.
type Artifacts struct {
	JSONPath string `json:"json_path"`
	SRTPath  string `json:"srt_path"`
	LRCPath  string `json:"lrc_path"`
}

// Result is the outcome of one alignment: one timing per lyric line, in
// lyric order, plus the exported artifacts.
type Result struct {
	Engine string       `json:"engine"`
	Lines  []LineTiming `json:"lines"`
	Artifacts
}

// MaxEnd returns the latest End across lines, or 0 for an empty slice.
func MaxEnd(lines []LineTiming) float64 {
	var maxEnd float64
	for _, line := range lines {
		if line.End > maxEnd {
			maxEnd = line.End
		}
	}
	return maxEnd
}
