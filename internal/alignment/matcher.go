package alignment

// DefaultFallbackSeconds is the span given to unmatched lines and to matched
// segments with no usable end.
const DefaultFallbackSeconds = 2.0

// Matcher assigns lyric lines to speech segments.
type Matcher struct {
	// Fallback overrides DefaultFallbackSeconds when positive.
	Fallback float64
}

// Match runs the default Matcher.
func Match(lines []LyricLine, segments []SpeechSegment) []LineTiming {
	timings, _ := Matcher{}.MatchTrace(lines, segments)
	return timings
}

// Match returns exactly one timing per line, in line order.
func (m Matcher) Match(lines []LyricLine, segments []SpeechSegment) []LineTiming {
	timings, _ := m.MatchTrace(lines, segments)
	return timings
}

// MatchTrace is Match plus the segment index chosen for each line, or -1 when
// the line fell back to a chained timing.
//
// For each line the candidates segments[cursor:] are scored with Similarity
// and the strictly highest score wins, so ties keep the earliest candidate.
// A winning score above zero consumes the segment and moves the cursor past
// it. Otherwise the line starts at the previous line's end (0 for the first
// line), spans the fallback duration, and the cursor stays put.
func (m Matcher) MatchTrace(lines []LyricLine, segments []SpeechSegment) ([]LineTiming, []int) {
	fallback := m.fallback()
	timings := make([]LineTiming, 0, len(lines))
	chosen := make([]int, 0, len(lines))
	cursor := 0

	for _, line := range lines {
		best := -1
		bestScore := 0.0
		for i := cursor; i < len(segments); i++ {
			if score := Similarity(line.Text, segments[i].Text); score > bestScore {
				best, bestScore = i, score
			}
		}

		if best >= 0 {
			seg := segments[best]
			end := seg.End
			if end <= seg.Start {
				end = seg.Start + fallback
			}
			timings = append(timings, LineTiming{Text: line.Text, Start: seg.Start, End: end})
			chosen = append(chosen, best)
			cursor = best + 1
			continue
		}

		start := 0.0
		if n := len(timings); n > 0 {
			start = timings[n-1].End
		}
		timings = append(timings, LineTiming{Text: line.Text, Start: start, End: start + fallback})
		chosen = append(chosen, -1)
	}
	return timings, chosen
}

func (m Matcher) fallback() float64 {
	if m.Fallback > 0 {
		return m.Fallback
	}
	return DefaultFallbackSeconds
}
