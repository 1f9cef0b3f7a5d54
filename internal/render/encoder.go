package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// EncodeSettings are the encoder options shared by every render.
type EncodeSettings struct {
	Binary     string
	VideoCodec string
	AudioCodec string
	Preset     string
}

// ffmpegArgs builds the command line that reads raw RGBA frames on stdin,
// muxes the optional audio track, and trims output to duration.
func ffmpegArgs(settings EncodeSettings, spec Spec, duration float64) []string {
	fps := strconv.Itoa(spec.FPS)
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"-r", fps,
		"-i", "pipe:0",
	}
	if spec.AudioPath != "" {
		args = append(args, "-i", spec.AudioPath)
	}
	args = append(args, "-map", "0:v:0")
	if spec.AudioPath != "" {
		args = append(args, "-map", "1:a:0")
	}
	args = append(args,
		"-c:v", settings.VideoCodec,
		"-preset", settings.Preset,
		"-pix_fmt", "yuv420p",
		"-r", fps,
	)
	if spec.AudioPath != "" {
		args = append(args, "-c:a", settings.AudioCodec)
	}
	args = append(args,
		"-t", strconv.FormatFloat(duration, 'f', 3, 64),
		"-movflags", "+faststart",
		spec.OutputPath,
	)
	return args
}

type encoder struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer

	waitOnce sync.Once
	waitErr  error
}

func startEncoder(ctx context.Context, binary string, args []string) (*encoder, error) {
	enc := &encoder{}
	enc.cmd = exec.CommandContext(ctx, binary, args...) //nolint:gosec
	enc.cmd.Stderr = &enc.stderr
	stdin, err := enc.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encoder stdin: %w", err)
	}
	enc.stdin = stdin
	if err := enc.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}
	return enc, nil
}

func (e *encoder) WriteFrame(frame *image.RGBA) error {
	if _, err := e.stdin.Write(frame.Pix); err != nil {
		_ = e.wait()
		return e.describe(fmt.Errorf("write frame: %w", err))
	}
	return nil
}

// Finish closes stdin and waits for the encoder to exit.
func (e *encoder) Finish() error {
	_ = e.stdin.Close()
	if err := e.wait(); err != nil {
		return e.describe(err)
	}
	return nil
}

// Abort kills the encoder if it is still running.
func (e *encoder) Abort() {
	_ = e.stdin.Close()
	if e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
	_ = e.wait()
}

func (e *encoder) wait() error {
	e.waitOnce.Do(func() {
		e.waitErr = e.cmd.Wait()
	})
	return e.waitErr
}

func (e *encoder) describe(err error) error {
	if msg := strings.TrimSpace(e.stderr.String()); msg != "" {
		return fmt.Errorf("%w: %s", err, msg)
	}
	return err
}
