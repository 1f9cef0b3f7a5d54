package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// WriteText writes contents to path, creating parent directories.
func WriteText(t testing.TB, path, contents string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// FFmpegStub is a shell body for a fake ffmpeg that drains stdin, records its
// arguments next to the output, and writes a placeholder output file.
const FFmpegStub = `#!/bin/sh
for last; do :; done
printf '%s\n' "$@" > "$last.args"
cat > /dev/null
printf 'video' > "$last"
`

// FFmpegFailStub drains stdin, writes a partial output, and exits non-zero.
const FFmpegFailStub = `#!/bin/sh
for last; do :; done
cat > /dev/null
printf 'partial' > "$last"
echo "encoder exploded" >&2
exit 1
`

// FFprobeStub reports a fixed 50 second duration.
const FFprobeStub = `#!/bin/sh
printf '{"streams":[{"index":0,"codec_type":"audio","codec_name":"mp3"}],"format":{"duration":"50.000000","nb_streams":1}}'
`
