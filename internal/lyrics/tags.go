package lyrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"

	"karaoke/internal/services"
)

const usltFrame = "Unsynchronised lyrics/text transcription"

// HasTagLyrics reports whether path names an audio container whose embedded
// lyric frames ReadTagLyrics understands.
func HasTagLyrics(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

// ReadTagLyrics returns the unsynchronised lyrics embedded in an MP3's ID3v2
// tag. Multiple USLT frames are joined in tag order.
func ReadTagLyrics(path string) (string, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{usltFrame}})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, services.StageAlignment, "read tag lyrics", path, err)
		}
		return "", services.Wrap(services.ErrValidation, services.StageAlignment, "read tag lyrics", path, err)
	}
	defer tag.Close()

	var parts []string
	for _, frame := range tag.GetFrames(tag.CommonID(usltFrame)) {
		uslt, ok := frame.(id3v2.UnsynchronisedLyricsFrame)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(uslt.Lyrics); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", services.Wrap(services.ErrValidation, services.StageAlignment, "read tag lyrics", "no embedded lyrics in "+filepath.Base(path), nil)
	}
	return strings.Join(parts, "\n"), nil
}
