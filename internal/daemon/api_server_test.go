package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"karaoke/internal/alignment"
	"karaoke/internal/api"
	"karaoke/internal/jobs"
	"karaoke/internal/testsupport"
	"karaoke/internal/workflow"
)

func serve(t *testing.T, h *harness, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.daemon.api.handler.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func uploadRequest(t *testing.T) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	audio, err := mw.CreateFormFile("audio", "My Song.mp3")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	_, _ = audio.Write([]byte("ID3 fake audio"))
	if err := mw.WriteField("lyrics_text", "Hello world\nSecond line\n"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAPIUploadAlignAndPoll(t *testing.T) {
	var got alignment.Request
	handler := workflow.HandlerFunc(func(_ context.Context, job *jobs.Job) (any, error) {
		if err := job.DecodeRequest(&got); err != nil {
			return nil, err
		}
		return map[string]string{"json_path": "outputs/x/alignment.json"}, nil
	})
	h := newHarness(t, handler)
	if err := h.daemon.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	up := serve(t, h, uploadRequest(t))
	if up.Code != http.StatusCreated {
		t.Fatalf("upload status = %d body=%s", up.Code, up.Body.String())
	}
	uploaded := decode[api.UploadResponse](t, up)
	if !strings.HasPrefix(uploaded.AudioPath, "uploads/") || !strings.HasSuffix(uploaded.AudioPath, "_My Song.mp3") {
		t.Fatalf("audio path = %q", uploaded.AudioPath)
	}
	lyrics, err := os.ReadFile(filepath.Join(h.paths.Base, uploaded.LyricsPath))
	if err != nil || string(lyrics) != "Hello world\nSecond line\n" {
		t.Fatalf("stored lyrics = %q, %v", lyrics, err)
	}

	w := serve(t, h, jsonRequest(t, http.MethodPost, "/api/align", alignment.Request{
		AudioPath:  uploaded.AudioPath,
		LyricsPath: uploaded.LyricsPath,
		Engine:     "Whisper",
		OutputDir:  "/etc",
	}))
	if w.Code != http.StatusAccepted {
		t.Fatalf("align status = %d body=%s", w.Code, w.Body.String())
	}
	queued := decode[api.JobResponse](t, w).Job
	if queued.Kind != "align" || queued.Status != "pending" {
		t.Fatalf("queued job = %#v", queued)
	}
	if loc := w.Header().Get("Location"); loc != "/api/jobs/"+queued.ID {
		t.Fatalf("Location = %q", loc)
	}

	var final api.Job
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/jobs/"+queued.ID, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("job status = %d", resp.Code)
		}
		final = decode[api.JobResponse](t, resp).Job
		if final.Status == "completed" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if final.Status != "completed" {
		t.Fatalf("job did not complete: %#v", final)
	}
	if got.Engine != "whisper" || got.OutputDir != "" {
		t.Fatalf("admitted request = %#v", got)
	}
	if got.AudioPath != filepath.Join(h.paths.Base, uploaded.AudioPath) {
		t.Fatalf("audio path not pinned to storage: %q", got.AudioPath)
	}

	list := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/jobs?status=completed", nil))
	if list.Code != http.StatusOK || len(decode[api.JobListResponse](t, list).Jobs) != 1 {
		t.Fatalf("list = %d %s", list.Code, list.Body.String())
	}
}

func TestAPIAlignValidation(t *testing.T) {
	h := newHarness(t, okHandler())
	audio := testsupport.WriteText(t, filepath.Join(h.paths.Uploads, "song.mp3"), "x")

	cases := []struct {
		name     string
		body     any
		wantCode int
		wantKind string
	}{
		{
			name:     "missing lyrics",
			body:     alignment.Request{AudioPath: audio},
			wantCode: http.StatusBadRequest,
			wantKind: "invalid_input",
		},
		{
			name:     "audio outside storage",
			body:     alignment.Request{AudioPath: "/etc/hosts", Lyrics: "hi"},
			wantCode: http.StatusBadRequest,
			wantKind: "invalid_input",
		},
		{
			name:     "unknown engine",
			body:     alignment.Request{AudioPath: audio, Lyrics: "hi", Engine: "sphinx"},
			wantCode: http.StatusBadRequest,
			wantKind: "invalid_input",
		},
		{
			name:     "unknown field",
			body:     map[string]string{"audio": audio},
			wantCode: http.StatusBadRequest,
			wantKind: "invalid_input",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, h, jsonRequest(t, http.MethodPost, "/api/align", tc.body))
			if w.Code != tc.wantCode {
				t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
			}
			if resp := decode[api.ErrorResponse](t, w); resp.Kind != tc.wantKind {
				t.Fatalf("kind = %q", resp.Kind)
			}
		})
	}

	all, err := h.store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected requests must not enqueue, got %d jobs", len(all))
	}
}

func TestAPIRenderAdmission(t *testing.T) {
	h := newHarness(t, okHandler())
	timings := testsupport.WriteText(t, filepath.Join(h.paths.Outputs, "j1", "alignment.json"), "[]")

	missing := serve(t, h, jsonRequest(t, http.MethodPost, "/api/render", workflow.RenderRequest{}))
	if missing.Code != http.StatusBadRequest {
		t.Fatalf("empty render status = %d", missing.Code)
	}

	w := serve(t, h, jsonRequest(t, http.MethodPost, "/api/render", map[string]any{
		"alignment_path": "outputs/j1/alignment.json",
		"output_path":    "/tmp/elsewhere.mp4",
		"width":          640,
		"height":         360,
	}))
	if w.Code != http.StatusAccepted {
		t.Fatalf("render status = %d body=%s", w.Code, w.Body.String())
	}
	job := decode[api.JobResponse](t, w).Job
	var req workflow.RenderRequest
	if err := json.Unmarshal(job.Request, &req); err != nil {
		t.Fatalf("decode stored request: %v", err)
	}
	if req.AlignmentPath != timings || req.OutputPath != "" || req.Width != 640 {
		t.Fatalf("stored request = %#v", req)
	}
}

func TestAPIDownload(t *testing.T) {
	h := newHarness(t, okHandler())
	testsupport.WriteText(t, filepath.Join(h.paths.Outputs, "j1", "alignment.lrc"), "[00:01.00]Hello\n")

	w := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/download?path=outputs/j1/alignment.lrc", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("download status = %d", w.Code)
	}
	if w.Body.String() != "[00:01.00]Hello\n" {
		t.Fatalf("body = %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "alignment.lrc") {
		t.Fatalf("Content-Disposition = %q", cd)
	}

	escape := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/download?path=../../etc/passwd", nil))
	if escape.Code != http.StatusBadRequest {
		t.Fatalf("escape status = %d", escape.Code)
	}
	gone := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/download?path=outputs/nope.srt", nil))
	if gone.Code != http.StatusNotFound {
		t.Fatalf("missing status = %d", gone.Code)
	}
}

func TestAPIJobsErrors(t *testing.T) {
	h := newHarness(t, okHandler())

	bad := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/jobs?status=exploded", nil))
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("bad status code = %d", bad.Code)
	}
	missing := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/jobs/nope", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing job code = %d", missing.Code)
	}
	empty := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	if empty.Code != http.StatusOK || strings.TrimSpace(empty.Body.String()) != `{"jobs":[]}` {
		t.Fatalf("empty list = %d %s", empty.Code, empty.Body.String())
	}
}

func TestAPIAuthAndRequestID(t *testing.T) {
	h := newHarness(t, okHandler(), testsupport.WithAPIToken("s3cret"))

	denied := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	if denied.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", denied.Code)
	}
	if denied.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	req.Header.Set(requestIDHeader, "client-42")
	ok := serve(t, h, req)
	if ok.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", ok.Code)
	}
	if ok.Header().Get(requestIDHeader) != "client-42" {
		t.Fatalf("request id = %q", ok.Header().Get(requestIDHeader))
	}
}

func TestAPIStatus(t *testing.T) {
	h := newHarness(t, okHandler(), testsupport.WithStubbedBinaries())
	if err := h.daemon.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	status := decode[api.DaemonStatus](t, w)
	if !status.Running || !status.Workflow.Running || len(status.Dependencies) == 0 {
		t.Fatalf("unexpected status: %#v", status)
	}
	if _, ok := status.Workflow.JobStats["pending"]; !ok {
		t.Fatalf("expected pending count in stats: %#v", status.Workflow.JobStats)
	}
}
