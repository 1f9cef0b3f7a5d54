package workflow_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"karaoke/internal/alignment"
	"karaoke/internal/jobs"
	"karaoke/internal/render"
	"karaoke/internal/services"
	"karaoke/internal/storage"
	"karaoke/internal/testsupport"
	"karaoke/internal/workflow"
)

type stubAligner struct {
	got alignment.Request
}

func (s *stubAligner) Align(_ context.Context, req alignment.Request) (alignment.Result, error) {
	s.got = req
	return alignment.Result{Engine: "whisper", Artifacts: alignment.Artifacts{JSONPath: filepath.Join(req.OutputDir, "alignment.json")}}, nil
}

type stubRenderer struct {
	got render.Spec
}

func (s *stubRenderer) Render(_ context.Context, spec render.Spec) (string, error) {
	s.got = spec
	return spec.OutputPath, nil
}

func jobFor(t *testing.T, kind jobs.Kind, request any) *jobs.Job {
	t.Helper()
	payload, err := json.Marshal(request)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return &jobs.Job{ID: "job-123", Kind: kind, Status: jobs.StatusRunning, Request: payload, CreatedAt: time.Now()}
}

func TestAlignHandlerDefaultsOutputDir(t *testing.T) {
	paths, err := storage.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	aligner := &stubAligner{}
	handler := workflow.AlignHandler(aligner, paths)

	result, err := handler.Run(context.Background(), jobFor(t, jobs.KindAlign, alignment.Request{AudioPath: "a.mp3", Lyrics: "one"}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantDir := filepath.Join(paths.Outputs, "job-123")
	if aligner.got.OutputDir != wantDir {
		t.Fatalf("output dir = %q, want %q", aligner.got.OutputDir, wantDir)
	}
	res, ok := result.(alignment.Result)
	if !ok || res.JSONPath != filepath.Join(wantDir, "alignment.json") {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestRenderHandlerLoadsAlignmentFile(t *testing.T) {
	paths, err := storage.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	timings := filepath.Join(paths.Uploads, "alignment.json")
	testsupport.WriteText(t, timings, `[{"text":"hello","start":0,"end":1.5,"words":null}]`)

	renderer := &stubRenderer{}
	handler := workflow.RenderHandler(renderer, paths)
	result, err := handler.Run(context.Background(), jobFor(t, jobs.KindRender, workflow.RenderRequest{AlignmentPath: timings}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(renderer.got.Lines) != 1 || renderer.got.Lines[0].Text != "hello" {
		t.Fatalf("lines = %#v", renderer.got.Lines)
	}
	wantOut := filepath.Join(paths.Outputs, "job-123", workflow.DefaultVideoName)
	if got := result.(workflow.RenderResult).OutputPath; got != wantOut {
		t.Fatalf("output = %q, want %q", got, wantOut)
	}
}

func TestPrepareRenderRequiresTimings(t *testing.T) {
	_, err := workflow.PrepareRender(workflow.RenderRequest{})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if stage := services.StageOf(err); stage != services.StageRendering {
		t.Fatalf("stage = %q", stage)
	}

	_, err = workflow.PrepareRender(workflow.RenderRequest{AlignmentPath: filepath.Join(t.TempDir(), "missing.json")})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
