package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"karaoke/internal/config"
	"karaoke/internal/services"
	"karaoke/internal/textutil"
)

// Paths is the resolved storage layout.
type Paths struct {
	Base    string
	Uploads string
	Outputs string
	Tmp     string
}

// Open resolves the layout from cfg and creates every directory.
func Open(cfg *config.Config) (Paths, error) {
	if cfg == nil {
		return Paths{}, services.Wrap(services.ErrConfiguration, "", "open storage", "config is required", nil)
	}
	return OpenAt(cfg.Paths.StorageDir)
}

// OpenAt resolves the layout rooted at base and creates every directory.
func OpenAt(base string) (Paths, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return Paths{}, services.Wrap(services.ErrConfiguration, "", "open storage", "storage directory is empty", nil)
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return Paths{}, services.Wrap(services.ErrConfiguration, "", "open storage", base, err)
	}
	p := Paths{
		Base:    abs,
		Uploads: filepath.Join(abs, "uploads"),
		Outputs: filepath.Join(abs, "outputs"),
		Tmp:     filepath.Join(abs, "tmp"),
	}
	for _, dir := range []string{p.Base, p.Uploads, p.Outputs, p.Tmp} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Paths{}, services.Wrap(services.ErrConfiguration, "", "open storage", dir, err)
		}
	}
	return p, nil
}

// JobDir returns (and creates) the output directory for a job.
func (p Paths) JobDir(id string) (string, error) {
	token := textutil.SanitizeToken(id)
	dir := filepath.Join(p.Outputs, token)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create job dir: %w", err)
	}
	return dir, nil
}

// SaveUpload streams r into the uploads directory under a unique name that
// keeps the sanitized original base name and extension.
func (p Paths) SaveUpload(name string, r io.Reader) (string, error) {
	base := textutil.SanitizeFileName(filepath.Base(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "upload"
	}
	dest := filepath.Join(p.Uploads, uuid.NewString()[:8]+"_"+base)
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("close upload: %w", err)
	}
	return dest, nil
}

// Contains reports whether path resolves inside the storage root.
func (p Paths) Contains(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(p.Base, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Resolve maps a client-supplied path onto the storage root. Relative paths
// are taken relative to Base; anything escaping the root is rejected.
func (p Paths) Resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", services.Wrap(services.ErrValidation, "", "resolve path", "path is required", nil)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.Base, path)
	}
	path = filepath.Clean(path)
	if !p.Contains(path) {
		return "", services.Wrap(services.ErrValidation, "", "resolve path", fmt.Sprintf("%s is outside storage", path), nil)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, "", "resolve path", path, err)
		}
		return "", services.Wrap(services.ErrValidation, "", "resolve path", path, err)
	}
	return path, nil
}

// Rel returns path relative to the storage root, or path unchanged when it
// lies outside storage.
func (p Paths) Rel(path string) string {
	if !p.Contains(path) {
		return path
	}
	rel, err := filepath.Rel(p.Base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
