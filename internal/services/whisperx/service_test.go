package whisperx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"karaoke/internal/alignment"
)

func argValue(args []string, flag string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func TestTranscribeRunsExtractAndWhisperX(t *testing.T) {
	svc := NewService(Config{Language: "english", WorkDir: t.TempDir()}, nil)
	var calls [][]string
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		if name != UVXCommand {
			return nil
		}
		outDir := argValue(args, "--output_dir")
		payload := `{"segments":[
			{"text":" hi world ","start":0.0,"end":2.0},
			{"text":"bye now","start":3.0}
		]}`
		return os.WriteFile(filepath.Join(outDir, "audio.json"), []byte(payload), 0o644)
	})

	segments, err := svc.Transcribe(context.Background(), "/music/song.mp3")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	want := []alignment.SpeechSegment{
		{Text: "hi world", Start: 0, End: 2},
		{Text: "bye now", Start: 3, End: 3},
	}
	if !reflect.DeepEqual(segments, want) {
		t.Fatalf("segments = %#v, want %#v", segments, want)
	}

	if len(calls) != 2 || calls[0][0] != FFmpegCommand || calls[1][0] != UVXCommand {
		t.Fatalf("unexpected command sequence %v", calls)
	}
	uvx := calls[1][1:]
	if argValue(uvx, "--language") != "en" {
		t.Fatalf("expected language en, got %v", uvx)
	}
	if argValue(uvx, "--model") != DefaultModel {
		t.Fatalf("expected default model, got %v", uvx)
	}
	if argValue(uvx, "--device") != CPUDevice {
		t.Fatalf("expected cpu device, got %v", uvx)
	}
	if !strings.HasSuffix(argValue(calls[0][1:], "-c:a"), "pcm_s16le") {
		t.Fatalf("expected pcm extraction, got %v", calls[0])
	}
}

func TestTranscribePropagatesFailures(t *testing.T) {
	svc := NewService(Config{WorkDir: t.TempDir()}, nil)
	boom := errors.New("exit status 2")
	svc.WithCommandRunner(func(_ context.Context, name string, _ ...string) error {
		if name == UVXCommand {
			return boom
		}
		return nil
	})
	if _, err := svc.Transcribe(context.Background(), "/music/song.mp3"); !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
}

func TestBuildArgsCUDAAndPyannote(t *testing.T) {
	svc := NewService(Config{Model: "large-v3", CUDAEnabled: true, VADMethod: VADMethodPyannote, HFToken: "hf"}, nil)
	args := svc.buildArgs("in.wav", "out")
	if argValue(args, "--index-url") != CUDAIndexURL {
		t.Fatalf("expected CUDA index, got %v", args)
	}
	if argValue(args, "--hf_token") != "hf" || argValue(args, "--vad_method") != VADMethodPyannote {
		t.Fatalf("expected pyannote token, got %v", args)
	}
	if argValue(args, "--device") != CUDADevice || argValue(args, "--model") != "large-v3" {
		t.Fatalf("unexpected device/model in %v", args)
	}
	if argValue(args, "--language") != "" {
		t.Fatalf("expected no language flag without a language, got %v", args)
	}
}
