package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"karaoke/internal/alignment"
	"karaoke/internal/logging"
	"karaoke/internal/services"
)

// Writer persists timing artifacts to a directory.
type Writer struct {
	logger *slog.Logger
}

// NewWriter returns a Writer that logs through logger (nil discards).
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{logger: logging.NewComponentLogger(logger, "export")}
}

// WriteAll writes <base>.json, <base>.srt, and <base>.lrc under dir, in that
// order, creating dir if needed. The first failure is returned; files
// written before it are kept.
func (w *Writer) WriteAll(ctx context.Context, dir, base string, lines []alignment.LineTiming) (alignment.Artifacts, error) {
	var artifacts alignment.Artifacts
	dir = strings.TrimSpace(dir)
	base = strings.TrimSpace(base)
	if dir == "" || base == "" {
		return artifacts, services.Wrap(services.ErrValidation, services.StageFormatting, "write artifacts", "output directory and base name are required", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return artifacts, services.Wrap(services.ErrExternalTool, services.StageFormatting, "ensure output dir", dir, err)
	}

	jsonData, err := FormatJSON(lines)
	if err != nil {
		return artifacts, services.Wrap(services.ErrValidation, services.StageFormatting, "format json", "", err)
	}

	outputs := []struct {
		ext  string
		data []byte
		dst  *string
	}{
		{ext: ".json", data: jsonData, dst: &artifacts.JSONPath},
		{ext: ".srt", data: []byte(FormatSRT(lines)), dst: &artifacts.SRTPath},
		{ext: ".lrc", data: []byte(FormatLRC(lines)), dst: &artifacts.LRCPath},
	}
	for _, out := range outputs {
		if err := ctx.Err(); err != nil {
			return artifacts, services.Wrap(services.ErrTransient, services.StageFormatting, "write artifacts", "cancelled", err)
		}
		path := filepath.Join(dir, base+out.ext)
		if err := os.WriteFile(path, out.data, 0o644); err != nil {
			return artifacts, services.Wrap(services.ErrExternalTool, services.StageFormatting, "write "+strings.TrimPrefix(out.ext, "."), path, err)
		}
		*out.dst = path
	}

	logging.WithContext(ctx, w.logger).Info("timing artifacts written",
		logging.String("dir", dir),
		logging.String("base", base),
		logging.Int("lines", len(lines)))
	return artifacts, nil
}

// ReadJSON loads a timing file written by WriteAll.
func ReadJSON(path string) ([]alignment.LineTiming, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, services.StageRendering, "read timings", path, err)
		}
		return nil, services.Wrap(services.ErrValidation, services.StageRendering, "read timings", path, err)
	}
	lines, err := ParseJSON(data)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, services.StageRendering, "read timings", fmt.Sprintf("%s is not a timing file", path), err)
	}
	return lines, nil
}
