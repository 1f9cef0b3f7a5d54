package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"karaoke/internal/services"
	"karaoke/internal/testsupport"
)

func TestOpenCreatesLayout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	paths, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, dir := range []string{paths.Base, paths.Uploads, paths.Outputs, paths.Tmp} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
	if paths.Uploads != filepath.Join(cfg.Paths.StorageDir, "uploads") {
		t.Fatalf("unexpected uploads dir %q", paths.Uploads)
	}
}

func TestOpenRejectsEmptyRoot(t *testing.T) {
	if _, err := OpenAt("  "); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSaveUploadSanitizesName(t *testing.T) {
	paths, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	dest, err := paths.SaveUpload("../../etc/my:song?.mp3", strings.NewReader("audio"))
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	if filepath.Dir(dest) != paths.Uploads {
		t.Fatalf("upload escaped uploads dir: %q", dest)
	}
	if !strings.HasSuffix(dest, "_my-song.mp3") {
		t.Fatalf("unexpected upload name %q", dest)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "audio" {
		t.Fatalf("unexpected upload contents %q, %v", data, err)
	}

	second, err := paths.SaveUpload("my:song?.mp3", strings.NewReader("again"))
	if err != nil {
		t.Fatalf("SaveUpload second: %v", err)
	}
	if second == dest {
		t.Fatal("expected unique upload names")
	}
}

func TestResolveStaysInsideStorage(t *testing.T) {
	paths, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	jobDir, err := paths.JobDir("3f2a9c1e-0000")
	if err != nil {
		t.Fatalf("JobDir: %v", err)
	}
	file := testsupport.WriteText(t, filepath.Join(jobDir, "alignment.lrc"), "[00:00.00]hi")

	got, err := paths.Resolve(file)
	if err != nil || got != file {
		t.Fatalf("Resolve(abs) = %q, %v", got, err)
	}
	rel, _ := filepath.Rel(paths.Base, file)
	if got, err := paths.Resolve(rel); err != nil || got != file {
		t.Fatalf("Resolve(rel) = %q, %v", got, err)
	}
	if _, err := paths.Resolve("../outside.txt"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for escape, got %v", err)
	}
	if _, err := paths.Resolve("/etc/passwd"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for absolute escape, got %v", err)
	}
	if _, err := paths.Resolve(filepath.Join("outputs", "missing.json")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRelInsideAndOutside(t *testing.T) {
	paths, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	inside := filepath.Join(paths.Uploads, "a_song.mp3")
	if got := paths.Rel(inside); got != "uploads/a_song.mp3" {
		t.Fatalf("Rel(inside) = %q", got)
	}
	if got := paths.Rel("/tmp/elsewhere.mp3"); got != "/tmp/elsewhere.mp3" {
		t.Fatalf("Rel(outside) = %q", got)
	}
}
