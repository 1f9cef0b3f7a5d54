package daemon

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"karaoke/internal/api"
	"karaoke/internal/logging"
	"karaoke/internal/services"
)

// handleUpload stores multipart parts "audio", "lyrics", and "image" under
// the uploads directory. A "lyrics_text" field is stored as a lyric file.
func (s *apiServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	reader, err := r.MultipartReader()
	if err != nil {
		s.writeFailure(w, r, services.Wrap(services.ErrValidation, "", "upload", "multipart/form-data body required", err))
		return
	}

	paths := s.daemon.paths
	var resp api.UploadResponse
	var saved []string
	fail := func(err error) {
		for _, path := range saved {
			_ = os.Remove(path)
		}
		s.writeFailure(w, r, err)
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fail(services.Wrap(services.ErrValidation, "", "upload", "read multipart body", err))
			return
		}

		var target *string
		name := part.FileName()
		switch part.FormName() {
		case "audio":
			target = &resp.AudioPath
		case "lyrics":
			target = &resp.LyricsPath
		case "image":
			target = &resp.ImagePath
		case "lyrics_text":
			target = &resp.LyricsPath
			name = "lyrics.txt"
		default:
			_ = part.Close()
			continue
		}
		if name == "" {
			name = part.FormName()
		}

		path, err := paths.SaveUpload(name, part)
		_ = part.Close()
		if err != nil {
			fail(services.Wrap(services.ErrValidation, "", "upload", fmt.Sprintf("store %s", part.FormName()), err))
			return
		}
		saved = append(saved, path)
		*target = paths.Rel(path)
	}

	if resp.AudioPath == "" && resp.LyricsPath == "" && resp.ImagePath == "" {
		s.writeFailure(w, r, services.Wrap(services.ErrValidation, "", "upload", "no audio, lyrics, or image part found", nil))
		return
	}
	logging.WithContext(r.Context(), s.logger).Info("upload stored",
		logging.String("audio", resp.AudioPath),
		logging.String("lyrics", resp.LyricsPath),
		logging.String("image", resp.ImagePath))
	s.writeJSON(w, http.StatusCreated, resp)
}

// handleDownload serves a file from inside the storage root.
func (s *apiServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	path, err := s.daemon.paths.Resolve(r.URL.Query().Get("path"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	file, err := os.Open(path)
	if err != nil {
		s.writeFailure(w, r, services.Wrap(services.ErrNotFound, "", "download", path, err))
		return
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil || info.IsDir() {
		s.writeFailure(w, r, services.Wrap(services.ErrValidation, "", "download", "path is not a file", err))
		return
	}

	if ctype := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filepath.Base(path)}))
	http.ServeContent(w, r, filepath.Base(path), info.ModTime(), file)
}
