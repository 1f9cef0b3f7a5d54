package render_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"karaoke/internal/alignment"
	"karaoke/internal/render"
	"karaoke/internal/services"
	"karaoke/internal/testsupport"
)

type fixedProber struct {
	seconds float64
	err     error
}

func (p fixedProber) Duration(context.Context, string) (float64, error) {
	return p.seconds, p.err
}

var renderLines = []alignment.LineTiming{
	{Text: "hello world", Start: 0, End: 1},
	{Text: "goodbye", Start: 1, End: 2.5},
}

func readArgs(t *testing.T, output string) []string {
	t.Helper()
	data, err := os.ReadFile(output + ".args")
	if err != nil {
		t.Fatalf("read recorded ffmpeg args: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func hasPair(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestCompositorRenderWithoutAudio(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubScripts(map[string]string{"ffmpeg": testsupport.FFmpegStub}))
	output := filepath.Join(t.TempDir(), "out", "karaoke.mp4")

	got, err := render.NewCompositor(cfg, nil, nil).Render(context.Background(), render.Spec{
		Lines:      renderLines,
		OutputPath: output,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != output {
		t.Fatalf("Render returned %q, want %q", got, output)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}

	args := readArgs(t, output)
	for _, pair := range [][2]string{
		{"-f", "rawvideo"},
		{"-pix_fmt", "rgba"},
		{"-s", "64x36"},
		{"-r", "4"},
		{"-c:v", "libx264"},
		{"-pix_fmt", "yuv420p"},
		{"-t", "2.500"},
	} {
		if !hasPair(args, pair[0], pair[1]) {
			t.Errorf("expected %s %s in %v", pair[0], pair[1], args)
		}
	}
	if hasPair(args, "-map", "1:a:0") {
		t.Errorf("did not expect an audio map without audio: %v", args)
	}
}

func TestCompositorRenderMuxesAudio(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubScripts(map[string]string{"ffmpeg": testsupport.FFmpegStub}))
	audio := filepath.Join(t.TempDir(), "song.mp3")
	testsupport.WriteFile(t, audio, 16)
	output := filepath.Join(t.TempDir(), "karaoke.mp4")

	_, err := render.NewCompositor(cfg, fixedProber{seconds: 3}, nil).Render(context.Background(), render.Spec{
		Lines:          renderLines,
		AudioPath:      audio,
		OutputPath:     output,
		HighlightColor: "#00FF00",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	args := readArgs(t, output)
	for _, pair := range [][2]string{
		{"-i", audio},
		{"-map", "1:a:0"},
		{"-c:a", "aac"},
		{"-t", "3.000"},
	} {
		if !hasPair(args, pair[0], pair[1]) {
			t.Errorf("expected %s %s in %v", pair[0], pair[1], args)
		}
	}
}

func TestCompositorRenderFailures(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "song.mp3")
	testsupport.WriteFile(t, audio, 16)

	tests := []struct {
		name   string
		stub   string
		prober render.DurationProber
		spec   render.Spec
		marker error
	}{
		{
			name:   "malformed color",
			stub:   testsupport.FFmpegStub,
			spec:   render.Spec{Lines: renderLines, BackgroundColor: "#12345"},
			marker: services.ErrValidation,
		},
		{
			name:   "zero duration",
			stub:   testsupport.FFmpegStub,
			spec:   render.Spec{},
			marker: services.ErrValidation,
		},
		{
			name:   "missing audio",
			stub:   testsupport.FFmpegStub,
			prober: fixedProber{seconds: 3},
			spec:   render.Spec{Lines: renderLines, AudioPath: filepath.Join(dir, "missing.mp3")},
			marker: services.ErrNotFound,
		},
		{
			name:   "missing background",
			stub:   testsupport.FFmpegStub,
			spec:   render.Spec{Lines: renderLines, BackgroundImage: filepath.Join(dir, "missing.png")},
			marker: services.ErrNotFound,
		},
		{
			name:   "probe failure",
			stub:   testsupport.FFmpegStub,
			prober: fixedProber{err: errors.New("ffprobe: exit status 1")},
			spec:   render.Spec{Lines: renderLines, AudioPath: audio},
			marker: services.ErrExternalTool,
		},
		{
			name:   "encoder failure",
			stub:   testsupport.FFmpegFailStub,
			spec:   render.Spec{Lines: renderLines},
			marker: services.ErrExternalTool,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testsupport.NewConfig(t, testsupport.WithStubScripts(map[string]string{"ffmpeg": tc.stub}))
			output := filepath.Join(t.TempDir(), "karaoke.mp4")
			tc.spec.OutputPath = output

			_, err := render.NewCompositor(cfg, tc.prober, nil).Render(context.Background(), tc.spec)
			if !errors.Is(err, tc.marker) {
				t.Fatalf("expected %v, got %v", tc.marker, err)
			}
			if services.StageOf(err) != services.StageRendering {
				t.Fatalf("expected rendering stage, got %q", services.StageOf(err))
			}
			if _, statErr := os.Stat(output); !errors.Is(statErr, os.ErrNotExist) {
				t.Fatalf("expected no output after failure, stat err %v", statErr)
			}
		})
	}
}

func TestCompositorEncoderFailureIncludesStderr(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubScripts(map[string]string{"ffmpeg": testsupport.FFmpegFailStub}))
	_, err := render.NewCompositor(cfg, nil, nil).Render(context.Background(), render.Spec{
		Lines:      renderLines,
		OutputPath: filepath.Join(t.TempDir(), "karaoke.mp4"),
	})
	if err == nil || !strings.Contains(err.Error(), "encoder exploded") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}
