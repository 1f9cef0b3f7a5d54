package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"karaoke/internal/alignment"
	"karaoke/internal/export"
)

func writeTimingFile(t *testing.T, lines []alignment.LineTiming) string {
	t.Helper()
	data, err := export.FormatJSON(lines)
	if err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	path := filepath.Join(t.TempDir(), "alignment.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write timings: %v", err)
	}
	return path
}

func TestTimingsFormats(t *testing.T) {
	path := writeTimingFile(t, []alignment.LineTiming{
		{Text: "hello world", Start: 0, End: 1.5},
		{Text: "goodbye", Start: 65.256, End: 67.5},
	})

	tests := []struct {
		name   string
		format string
		want   []string
	}{
		{name: "table", format: "table", want: []string{"hello world", "65.256", "2.24"}},
		{name: "srt", format: "srt", want: []string{"1\n00:00:00,000 --> 00:00:01,500\nhello world", "00:01:05,256 --> 00:01:07,500"}},
		{name: "lrc", format: "lrc", want: []string{"[00:00.00]hello world", "[01:05.25]goodbye"}},
		{name: "json", format: "json", want: []string{`"text": "goodbye"`, `"start": 65.256`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, "", "timings", path, "--format", tt.format)
			if err != nil {
				t.Fatalf("timings --format %s: %v", tt.format, err)
			}
			for _, want := range tt.want {
				requireContains(t, out, want)
			}
		})
	}
}

func TestTimingsReadsSRT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.srt")
	content := "1\n00:00:01,000 --> 00:00:02,500\nfirst line\n\n2\n00:00:03,000 --> 00:00:04,000\nsecond\nline\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}

	out, _, err := runCLI(t, "", "timings", path, "--format", "lrc")
	if err != nil {
		t.Fatalf("timings: %v", err)
	}
	requireContains(t, out, "[00:01.00]first line")
	requireContains(t, out, "[00:03.00]second line")
}

func TestTimingsErrors(t *testing.T) {
	path := writeTimingFile(t, nil)

	out, _, err := runCLI(t, "", "timings", path)
	if err != nil {
		t.Fatalf("timings on empty file: %v", err)
	}
	requireContains(t, out, "No timed lines")

	if _, _, err := runCLI(t, "", "timings", path, "--format", "yaml"); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
	if _, _, err := runCLI(t, "", "timings", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing timing file")
	}
	if _, _, err := runCLI(t, "", "timings"); err == nil {
		t.Fatal("expected argument error")
	}
}
