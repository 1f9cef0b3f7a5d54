package workflow

import (
	"context"
	"path/filepath"
	"strings"

	"karaoke/internal/alignment"
	"karaoke/internal/export"
	"karaoke/internal/jobs"
	"karaoke/internal/render"
	"karaoke/internal/services"
	"karaoke/internal/storage"
)

// DefaultVideoName is the file name used for renders that omit an output path.
const DefaultVideoName = "karaoke.mp4"

// RenderRequest is the payload of a render job. When Lines is empty the
// timings are loaded from AlignmentPath.
type RenderRequest struct {
	render.Spec
	AlignmentPath string `json:"alignment_path,omitempty"`
}

// RenderResult is stored on completed render jobs.
type RenderResult struct {
	OutputPath string `json:"output_path"`
}

// Aligner runs one alignment request.
type Aligner interface {
	Align(ctx context.Context, req alignment.Request) (alignment.Result, error)
}

// Renderer encodes one render spec.
type Renderer interface {
	Render(ctx context.Context, spec render.Spec) (string, error)
}

// AlignHandler runs align jobs, writing artifacts to the job's output
// directory unless the request names one.
func AlignHandler(aligner Aligner, paths storage.Paths) Handler {
	return HandlerFunc(func(ctx context.Context, job *jobs.Job) (any, error) {
		var req alignment.Request
		if err := job.DecodeRequest(&req); err != nil {
			return nil, services.Wrap(services.ErrValidation, services.StageAlignment, "decode request", "", err)
		}
		if strings.TrimSpace(req.OutputDir) == "" {
			dir, err := paths.JobDir(job.ID)
			if err != nil {
				return nil, services.Wrap(services.ErrConfiguration, services.StageAlignment, "prepare output", "", err)
			}
			req.OutputDir = dir
		}
		return aligner.Align(ctx, req)
	})
}

// RenderHandler runs render jobs, writing the video into the job's output
// directory unless the request names a path.
func RenderHandler(renderer Renderer, paths storage.Paths) Handler {
	return HandlerFunc(func(ctx context.Context, job *jobs.Job) (any, error) {
		var req RenderRequest
		if err := job.DecodeRequest(&req); err != nil {
			return nil, services.Wrap(services.ErrValidation, services.StageRendering, "decode request", "", err)
		}
		spec, err := PrepareRender(req)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(spec.OutputPath) == "" {
			dir, err := paths.JobDir(job.ID)
			if err != nil {
				return nil, services.Wrap(services.ErrConfiguration, services.StageRendering, "prepare output", "", err)
			}
			spec.OutputPath = filepath.Join(dir, DefaultVideoName)
		}
		output, err := renderer.Render(ctx, spec)
		if err != nil {
			return nil, err
		}
		return RenderResult{OutputPath: output}, nil
	})
}

// PrepareRender returns the spec of req with its timings loaded.
func PrepareRender(req RenderRequest) (render.Spec, error) {
	spec := req.Spec
	if len(spec.Lines) > 0 {
		return spec, nil
	}
	if strings.TrimSpace(req.AlignmentPath) == "" {
		return render.Spec{}, services.Wrap(services.ErrValidation, services.StageRendering, "load timings", "lines or alignment_path is required", nil)
	}
	lines, err := export.ReadJSON(req.AlignmentPath)
	if err != nil {
		return render.Spec{}, err
	}
	spec.Lines = lines
	return spec, nil
}
