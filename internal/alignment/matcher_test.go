package alignment

import (
	"reflect"
	"testing"

	"karaoke/internal/lyrics"
)

func TestMatchEndToEndScenario(t *testing.T) {
	lines := lyrics.Parse("hello world\ngoodbye")
	segments := []SpeechSegment{
		{Text: "hi world", Start: 0, End: 2},
		{Text: "bye now", Start: 3, End: 5},
	}

	got, chosen := Matcher{}.MatchTrace(lines, segments)
	want := []LineTiming{
		{Text: "hello world", Start: 0, End: 2},
		{Text: "goodbye", Start: 3, End: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Match = %#v, want %#v", got, want)
	}
	if !reflect.DeepEqual(chosen, []int{0, 1}) {
		t.Fatalf("chosen = %v, want [0 1]", chosen)
	}
}

func TestMatchEmptySegmentsChainsFallbacks(t *testing.T) {
	lines := lyrics.Parse("one\ntwo\nthree")
	got := Match(lines, nil)
	if len(got) != len(lines) {
		t.Fatalf("expected %d timings, got %d", len(lines), len(got))
	}
	for i, timing := range got {
		wantStart := float64(i) * 2.0
		if timing.Start != wantStart || timing.End != wantStart+2.0 {
			t.Fatalf("line %d: got [%v, %v], want [%v, %v]", i, timing.Start, timing.End, wantStart, wantStart+2.0)
		}
		if timing.Text != lines[i].Text {
			t.Fatalf("line %d: text %q, want %q", i, timing.Text, lines[i].Text)
		}
	}
}

func TestMatchFallbackChainsFromPreviousMatch(t *testing.T) {
	lines := lyrics.Parse("hello\nzzz\nqqq")
	segments := []SpeechSegment{{Text: "hello", Start: 1, End: 3}}

	got, chosen := Matcher{}.MatchTrace(lines, segments)
	want := []LineTiming{
		{Text: "hello", Start: 1, End: 3},
		{Text: "zzz", Start: 3, End: 5},
		{Text: "qqq", Start: 5, End: 7},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Match = %#v, want %#v", got, want)
	}
	if !reflect.DeepEqual(chosen, []int{0, -1, -1}) {
		t.Fatalf("chosen = %v", chosen)
	}
}

func TestMatchFallbackLeavesCursor(t *testing.T) {
	lines := lyrics.Parse("zzz\nhello")
	segments := []SpeechSegment{{Text: "hello", Start: 4, End: 6}}

	got, chosen := Matcher{}.MatchTrace(lines, segments)
	if !reflect.DeepEqual(chosen, []int{-1, 0}) {
		t.Fatalf("chosen = %v, want [-1 0]", chosen)
	}
	if got[0].Start != 0 || got[0].End != 2 {
		t.Fatalf("first line should fall back to [0, 2], got %#v", got[0])
	}
	if got[1].Start != 4 || got[1].End != 6 {
		t.Fatalf("second line should match segment 0, got %#v", got[1])
	}
}

func TestMatchTiesKeepEarliestCandidate(t *testing.T) {
	lines := lyrics.Parse("ab")
	segments := []SpeechSegment{
		{Text: "ax", Start: 1, End: 2},
		{Text: "ay", Start: 5, End: 6},
	}
	_, chosen := Matcher{}.MatchTrace(lines, segments)
	if chosen[0] != 0 {
		t.Fatalf("expected first candidate to win tie, got %d", chosen[0])
	}
}

func TestMatchDuplicateLinesConsumeSegments(t *testing.T) {
	lines := lyrics.Parse("la la\nla la\nla la")
	segments := []SpeechSegment{
		{Text: "la la", Start: 0, End: 1},
		{Text: "la la", Start: 1, End: 2},
	}
	got, chosen := Matcher{}.MatchTrace(lines, segments)
	if !reflect.DeepEqual(chosen, []int{0, 1, -1}) {
		t.Fatalf("chosen = %v, want [0 1 -1]", chosen)
	}
	if got[2].Start != 2 || got[2].End != 4 {
		t.Fatalf("starved duplicate should chain from previous end, got %#v", got[2])
	}
}

func TestMatchMissingSegmentEnd(t *testing.T) {
	lines := lyrics.Parse("hello")
	segments := []SpeechSegment{{Text: "hello", Start: 5}}
	got := Match(lines, segments)
	if got[0].Start != 5 || got[0].End != 7 {
		t.Fatalf("expected [5, 7], got %#v", got[0])
	}
}

func TestMatchCustomFallback(t *testing.T) {
	got := Matcher{Fallback: 3.5}.Match(lyrics.Parse("a\nb"), nil)
	if got[1].Start != 3.5 || got[1].End != 7.0 {
		t.Fatalf("unexpected fallback timing %#v", got[1])
	}
}

func TestMatchCursorIsMonotonic(t *testing.T) {
	lines := lyrics.Parse("first verse\nsecond verse\nchorus line\nfirst verse\nbridge\nchorus line")
	segments := []SpeechSegment{
		{Text: "chorus line", Start: 0, End: 1},
		{Text: "first verse", Start: 1, End: 2},
		{Text: "second verse", Start: 2, End: 3},
		{Text: "bridge", Start: 3, End: 4},
		{Text: "chorus line", Start: 4, End: 5},
		{Text: "first verse", Start: 5, End: 6},
	}

	got, chosen := Matcher{}.MatchTrace(lines, segments)
	if len(got) != len(lines) {
		t.Fatalf("expected %d timings, got %d", len(lines), len(got))
	}
	last := -1
	for i, idx := range chosen {
		if idx < 0 {
			continue
		}
		if idx <= last {
			t.Fatalf("line %d matched segment %d after segment %d", i, idx, last)
		}
		last = idx
	}
	for i := range got {
		if got[i].Text != lines[i].Text {
			t.Fatalf("line %d out of order: %q", i, got[i].Text)
		}
	}
}
