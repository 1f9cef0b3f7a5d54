package lyrics

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"karaoke/internal/services"
)

// Line is a single lyric line with its ordinal position.
type Line struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Parse splits raw lyric text into non-empty trimmed lines.
func Parse(raw string) []Line {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	var lines []Line
	for _, part := range strings.Split(raw, "\n") {
		text := strings.TrimSpace(part)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Index: len(lines), Text: text})
	}
	return lines
}

// Texts returns the text of each line in order.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Text
	}
	return out
}

// Transcript joins the lines into the plain-text form forced aligners expect:
// one lyric line per row.
func Transcript(lines []Line) string {
	return strings.Join(Texts(lines), "\n")
}

// ReadFile reads a lyric file, dropping invalid UTF-8 sequences and a leading BOM.
// An MP3 yields the lyrics embedded in its ID3 tag.
func ReadFile(path string) (string, error) {
	if HasTagLyrics(path) {
		return ReadTagLyrics(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, services.StageAlignment, "read lyrics", path, err)
		}
		return "", services.Wrap(services.ErrValidation, services.StageAlignment, "read lyrics", path, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		data = bytes.ToValidUTF8(data, nil)
	}
	return string(data), nil
}

// Resolve returns lyric lines from inline text, falling back to the file at
// path. Supplying neither, or input with no non-blank lines, is a validation
// failure.
func Resolve(text, path string) ([]Line, error) {
	raw := text
	if strings.TrimSpace(raw) == "" {
		path = strings.TrimSpace(path)
		if path == "" {
			return nil, services.Wrap(services.ErrValidation, services.StageAlignment, "resolve lyrics", "lyrics text or lyrics file is required", nil)
		}
		contents, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = contents
	}
	lines := Parse(raw)
	if len(lines) == 0 {
		return nil, services.Wrap(services.ErrValidation, services.StageAlignment, "resolve lyrics", fmt.Sprintf("no lyric lines in %d bytes of input", len(raw)), nil)
	}
	return lines, nil
}
