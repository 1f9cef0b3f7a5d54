package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"karaoke/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, services.StageRendering, "encode", "ffmpeg failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"rendering", "encode", "ffmpeg failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestStageOfSurvivesFurtherWrapping(t *testing.T) {
	err := services.Wrap(services.ErrValidation, services.StageAlignment, "parse lyrics", "no lines", nil)
	outer := fmt.Errorf("job failed: %w", err)
	if stage := services.StageOf(outer); stage != services.StageAlignment {
		t.Fatalf("expected alignment stage, got %q", stage)
	}
	if stage := services.StageOf(errors.New("plain")); stage != "" {
		t.Fatalf("expected empty stage for plain error, got %q", stage)
	}
}

func TestKindMapping(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{services.Wrap(services.ErrValidation, "rendering", "color", "bad", nil), services.KindInvalidInput},
		{services.Wrap(services.ErrNotFound, "rendering", "audio", "missing", nil), services.KindResourceNotFound},
		{services.Wrap(services.ErrExternalTool, "alignment", "whisperx", "crash", nil), services.KindCollaboratorFailure},
		{services.Wrap(services.ErrConfiguration, "alignment", "engine", "unknown", nil), services.KindConfiguration},
		{errors.New("io"), services.KindInternal},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := services.Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}
