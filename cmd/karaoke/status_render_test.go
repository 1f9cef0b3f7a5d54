package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"karaoke/internal/deps"
	"karaoke/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Storage", statusError, "not writable", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Storage:", "[ERROR] not writable")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "Ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "FFmpeg", Available: true, Command: "ffmpeg"},
		{Name: "FFprobe", Available: false},
		{Name: "uvx", Available: false, Optional: true, Detail: "binary \"uvx\" not found"},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "[OK] Ready (command: ffmpeg)") {
		t.Fatalf("expected ready line first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[ERROR] not available") {
		t.Fatalf("expected error detail, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "[WARN] binary \"uvx\" not found") {
		t.Fatalf("expected optional dependency warning, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "Missing dependencies") || !strings.Contains(lines[3], "FFprobe") || strings.Contains(lines[3], "uvx") {
		t.Fatalf("expected only required tools in summary, got %q", lines[3])
	}
}

func TestPreflightLines(t *testing.T) {
	lines := preflightLines([]preflight.Result{
		{Name: "Storage directory", Passed: true, Detail: "/data (read/write ok)"},
		{Name: "Log directory", Detail: "/logs (error: does not exist)"},
	}, false)
	if !strings.Contains(lines[0], "[OK]") || !strings.Contains(lines[1], "[ERROR]") {
		t.Fatalf("unexpected preflight lines: %v", lines)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader("Dependencies", false)
	if lines[0] != "== Dependencies ==" || lines[1] != strings.Repeat("-", len(lines[0])) {
		t.Fatalf("unexpected header: %v", lines)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
