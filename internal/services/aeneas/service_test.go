package aeneas

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"karaoke/internal/alignment"
)

func TestAlignRunsExecuteTask(t *testing.T) {
	svc := NewService(Config{Language: "en", WorkDir: t.TempDir()}, nil)
	var gotName string
	var gotArgs []string
	var gotTranscript string
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		data, err := os.ReadFile(args[3])
		if err != nil {
			return err
		}
		gotTranscript = string(data)
		payload := `{"fragments":[
			{"id":"f000001","begin":"0.000","end":"1.960","lines":["hello world"]},
			{"id":"f000002","begin":1.96,"end":"4.000","lines":["goodbye"]}
		]}`
		return os.WriteFile(args[5], []byte(payload), 0o644)
	})

	fragments, err := svc.Align(context.Background(), "/music/song.mp3", "hello world\ngoodbye")
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	want := []alignment.Fragment{
		{ID: "f000001", Lines: []string{"hello world"}, Start: 0, End: 1.96},
		{ID: "f000002", Lines: []string{"goodbye"}, Start: 1.96, End: 4},
	}
	if !reflect.DeepEqual(fragments, want) {
		t.Fatalf("fragments = %#v, want %#v", fragments, want)
	}
	if gotName != DefaultPython || gotArgs[0] != "-m" || gotArgs[1] != "aeneas.tools.execute_task" {
		t.Fatalf("unexpected command %s %v", gotName, gotArgs)
	}
	if gotArgs[2] != "/music/song.mp3" {
		t.Fatalf("expected audio path argument, got %v", gotArgs)
	}
	if gotArgs[4] != "task_language=eng|is_text_type=plain|os_task_file_format=json" {
		t.Fatalf("unexpected task config %q", gotArgs[4])
	}
	if gotTranscript != "hello world\ngoodbye" {
		t.Fatalf("unexpected transcript %q", gotTranscript)
	}
}

func TestTaskConfigLanguage(t *testing.T) {
	if got := NewService(Config{Language: "de"}, nil).TaskConfig(); got != "task_language=deu|is_text_type=plain|os_task_file_format=json" {
		t.Fatalf("unexpected task config %q", got)
	}
	if got := NewService(Config{}, nil).TaskConfig(); got != "task_language=eng|is_text_type=plain|os_task_file_format=json" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestAlignErrors(t *testing.T) {
	svc := NewService(Config{WorkDir: t.TempDir()}, nil)
	if _, err := svc.Align(context.Background(), "a.mp3", "  "); err == nil {
		t.Fatal("expected error for empty transcript")
	}

	boom := errors.New("exit status 1")
	svc.WithCommandRunner(func(context.Context, string, ...string) error { return boom })
	if _, err := svc.Align(context.Background(), "a.mp3", "line"); !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
}
