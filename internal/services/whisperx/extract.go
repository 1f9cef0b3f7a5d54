package whisperx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// buildExtractArgs returns ffmpeg arguments that convert the first audio
// stream of source into mono 16kHz PCM at dest.
func buildExtractArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

// ExtractAudio converts source into a mono 16kHz WAV file suitable for WhisperX.
func ExtractAudio(ctx context.Context, ffmpegBinary, source, dest string) error {
	cmd := exec.CommandContext(ctx, ffmpegBinary, buildExtractArgs(source, dest)...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
