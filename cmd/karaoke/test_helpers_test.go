package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"karaoke/internal/config"
	"karaoke/internal/testsupport"
)

// aeneasStub stands in for `python3 -m aeneas.tools.execute_task audio text
// task output`; it writes a two-fragment sync map to the output argument.
const aeneasStub = `#!/bin/sh
cat > "$6" <<'JSON'
{"fragments":[{"id":"f000001","begin":"0.000","end":"1.500","lines":["Hello world"]},{"id":"f000002","begin":"1.500","end":"3.250","lines":["Second line"]}]}
JSON
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("ALIGNER_ENGINE", "")
	t.Setenv("STORAGE_DIR", "")
	t.Setenv("KARAOKE_API_TOKEN", "")

	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	python := filepath.Join(binDir, "python-aeneas")
	ffmpeg := filepath.Join(binDir, "ffmpeg-stub")
	for path, body := range map[string]string{python: aeneasStub, ffmpeg: testsupport.FFmpegStub} {
		if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", path, err)
		}
	}

	configPath := filepath.Join(base, "karaoke.toml")
	content := fmt.Sprintf(`[paths]
storage_dir = %q
log_dir = %q
api_bind = "127.0.0.1:0"
api_token = "secret-token"

[alignment]
engine = "aeneas"
aeneas_python = %q

[render]
width = 64
height = 36
fps = 4
font_size = 8
line_height = 10
line_gap = 2
margin_bottom = 4
side_margin = 4
workers = 2

[tools]
ffmpeg_binary = %q
`, filepath.Join(base, "data"), filepath.Join(base, "logs"), python, ffmpeg)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
