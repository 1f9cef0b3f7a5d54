package ffprobe

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"karaoke/internal/testsupport"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{Duration: "123.45"},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
}

func TestDurationFallsBackToAudioStream(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "audio", Duration: "12.5"},
			{CodecType: "audio", Duration: "48.25"},
		},
		Format: Format{Duration: "N/A"},
	}
	if got := result.DurationSeconds(); got != 48.25 {
		t.Fatalf("expected stream fallback 48.25, got %v", got)
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{Format: Format{Duration: "bad"}}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
}

func TestProberDuration(t *testing.T) {
	dir := t.TempDir()
	testsupport.InstallStubs(t, filepath.Join(dir, "bin"), map[string]string{
		"ffprobe":        testsupport.FFprobeStub,
		"ffprobe-silent": "#!/bin/sh\nprintf '{\"streams\":[{\"codec_type\":\"video\"}],\"format\":{\"duration\":\"9\"}}'\n",
		"ffprobe-broken": "#!/bin/sh\necho 'Invalid data found' >&2\nexit 1\n",
	})
	audio := filepath.Join(dir, "song.mp3")
	testsupport.WriteFile(t, audio, 8)

	seconds, err := Prober{}.Duration(context.Background(), audio)
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if seconds != 50 {
		t.Fatalf("expected 50 seconds, got %v", seconds)
	}

	if _, err := (Prober{Binary: "ffprobe-silent"}).Duration(context.Background(), audio); err == nil {
		t.Fatal("expected error for file without audio")
	}
	if _, err := (Prober{Binary: "ffprobe-broken"}).Duration(context.Background(), audio); err == nil {
		t.Fatal("expected error when ffprobe fails")
	}
}
