package daemon

import (
	"net/http"
	"strings"

	"karaoke/internal/alignment"
	"karaoke/internal/api"
	"karaoke/internal/jobs"
	"karaoke/internal/services"
	"karaoke/internal/workflow"
)

func (s *apiServer) handleAlign(w http.ResponseWriter, r *http.Request) {
	var req alignment.Request
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := s.admitAlign(&req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.enqueue(w, r, jobs.KindAlign, req)
}

// admitAlign validates an align request and pins its paths inside storage.
func (s *apiServer) admitAlign(req *alignment.Request) error {
	paths := s.daemon.paths
	audio, err := paths.Resolve(req.AudioPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, services.StageAlignment, "admit request", "audio_path", err)
	}
	req.AudioPath = audio

	if strings.TrimSpace(req.Lyrics) == "" {
		if strings.TrimSpace(req.LyricsPath) == "" {
			return services.Wrap(services.ErrValidation, services.StageAlignment, "admit request", "lyrics or lyrics_path is required", nil)
		}
		lyricsPath, err := paths.Resolve(req.LyricsPath)
		if err != nil {
			return services.Wrap(services.ErrValidation, services.StageAlignment, "admit request", "lyrics_path", err)
		}
		req.LyricsPath = lyricsPath
	} else {
		req.LyricsPath = ""
	}

	if strings.TrimSpace(req.Engine) != "" {
		engine, err := alignment.NormalizeEngine(req.Engine)
		if err != nil {
			return err
		}
		req.Engine = engine
	}
	req.OutputDir = ""
	return nil
}

func (s *apiServer) handleRender(w http.ResponseWriter, r *http.Request) {
	var req workflow.RenderRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := s.admitRender(&req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.enqueue(w, r, jobs.KindRender, req)
}

// admitRender validates a render request and pins its paths inside storage.
func (s *apiServer) admitRender(req *workflow.RenderRequest) error {
	paths := s.daemon.paths
	wrap := func(field string, err error) error {
		return services.Wrap(services.ErrValidation, services.StageRendering, "admit request", field, err)
	}

	if len(req.Lines) == 0 {
		if strings.TrimSpace(req.AlignmentPath) == "" {
			return services.Wrap(services.ErrValidation, services.StageRendering, "admit request", "lines or alignment_path is required", nil)
		}
		resolved, err := paths.Resolve(req.AlignmentPath)
		if err != nil {
			return wrap("alignment_path", err)
		}
		req.AlignmentPath = resolved
	}
	optional := []struct {
		field string
		value *string
	}{
		{"audio_path", &req.AudioPath},
		{"background_image", &req.BackgroundImage},
		{"style.font_path", &req.Style.FontPath},
	}
	for _, opt := range optional {
		if strings.TrimSpace(*opt.value) == "" {
			continue
		}
		resolved, err := paths.Resolve(*opt.value)
		if err != nil {
			return wrap(opt.field, err)
		}
		*opt.value = resolved
	}
	req.OutputPath = ""
	return nil
}

func (s *apiServer) enqueue(w http.ResponseWriter, r *http.Request, kind jobs.Kind, request any) {
	job, err := s.daemon.Enqueue(r.Context(), kind, request)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/jobs/"+job.ID)
	s.writeJSON(w, http.StatusAccepted, api.JobResponse{Job: api.FromJob(job)})
}

func (s *apiServer) handleJobs(w http.ResponseWriter, r *http.Request) {
	var statuses []jobs.Status
	for _, value := range r.URL.Query()["status"] {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			status, err := jobs.ParseStatus(part)
			if err != nil {
				s.writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			statuses = append(statuses, status)
		}
	}

	list, err := s.jobSvc.List(r.Context(), statuses...)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if list == nil {
		list = []api.Job{}
	}
	s.writeJSON(w, http.StatusOK, api.JobListResponse{Jobs: list})
}

func (s *apiServer) handleJob(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	job, err := s.jobSvc.Describe(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if job == nil {
		s.writeError(w, http.StatusNotFound, "job not found")
		return
	}
	s.writeJSON(w, http.StatusOK, api.JobResponse{Job: *job})
}
