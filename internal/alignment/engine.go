package alignment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"karaoke/internal/logging"
	"karaoke/internal/lyrics"
	"karaoke/internal/services"
)

// Engine names accepted on requests and in configuration.
const (
	EngineAeneas  = "aeneas"
	EngineWhisper = "whisper"
)

// Fragment is one timed span returned by a forced aligner. Lines holds the
// transcript rows covered by the fragment.
type Fragment struct {
	ID    string   `json:"id"`
	Lines []string `json:"lines"`
	Start float64  `json:"start"`
	End   float64  `json:"end"`
}

// ForcedAligner maps a known transcript onto audio.
type ForcedAligner interface {
	Align(ctx context.Context, audioPath, transcript string) ([]Fragment, error)
}

// Transcriber produces speech segments ordered by start time.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]SpeechSegment, error)
}

// Engine turns audio plus lyric lines into line timings.
type Engine interface {
	Name() string
	Align(ctx context.Context, audioPath string, lines []LyricLine) ([]LineTiming, error)
}

// ForcedEngine delegates timing to a ForcedAligner.
type ForcedEngine struct {
	Aligner ForcedAligner
}

// Name implements Engine.
func (ForcedEngine) Name() string { return EngineAeneas }

// Align implements Engine. Fragments map one-to-one onto timings, each taking
// the first transcript row it covers as its text.
func (e ForcedEngine) Align(ctx context.Context, audioPath string, lines []LyricLine) ([]LineTiming, error) {
	if e.Aligner == nil {
		return nil, services.Wrap(services.ErrConfiguration, services.StageAlignment, "forced align", "no forced aligner configured", nil)
	}
	fragments, err := e.Aligner.Align(ctx, audioPath, lyrics.Transcript(lines))
	if err != nil {
		return nil, collaboratorError("forced align", EngineAeneas, err)
	}
	return FragmentsToTimings(fragments), nil
}

// FragmentsToTimings converts forced-alignment fragments into line timings.
func FragmentsToTimings(fragments []Fragment) []LineTiming {
	timings := make([]LineTiming, 0, len(fragments))
	for _, frag := range fragments {
		text := ""
		if len(frag.Lines) > 0 {
			text = frag.Lines[0]
		}
		timings = append(timings, LineTiming{Text: text, Start: frag.Start, End: frag.End})
	}
	return timings
}

// MatchingEngine transcribes audio and matches lyric lines against the
// resulting speech segments.
type MatchingEngine struct {
	Transcriber Transcriber
	Matcher     Matcher
	Logger      *slog.Logger
}

// Name implements Engine.
func (MatchingEngine) Name() string { return EngineWhisper }

// Align implements Engine.
func (e MatchingEngine) Align(ctx context.Context, audioPath string, lines []LyricLine) ([]LineTiming, error) {
	if e.Transcriber == nil {
		return nil, services.Wrap(services.ErrConfiguration, services.StageAlignment, "transcribe", "no transcriber configured", nil)
	}
	segments, err := e.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, collaboratorError("transcribe", EngineWhisper, err)
	}
	timings, chosen := e.Matcher.MatchTrace(lines, segments)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(e.Logger, "matcher"))
	fallbacks := 0
	for i, idx := range chosen {
		if idx < 0 {
			fallbacks++
			logger.Debug("lyric line fell back to chained timing",
				logging.Args(append(logging.DecisionAttrs("segment_match", "fallback", "no segment scored above zero"),
					logging.Int("line", i),
					logging.Float64("start", timings[i].Start))...)...)
			continue
		}
		logger.Debug("lyric line matched segment",
			logging.Args(append(logging.DecisionAttrs("segment_match", "matched", "best similarity"),
				logging.Int("line", i),
				logging.Int("segment", idx))...)...)
	}
	logger.Info("segment matching complete",
		logging.Int("lines", len(lines)),
		logging.Int("segments", len(segments)),
		logging.Int("fallbacks", fallbacks))
	return timings, nil
}

// collaboratorError tags engine failures as external tool errors unless the
// collaborator already classified them.
func collaboratorError(operation, engine string, err error) error {
	var se *services.Error
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrTransient, services.StageAlignment, operation, engine, err)
	}
	return services.Wrap(services.ErrExternalTool, services.StageAlignment, operation, engine, err)
}

// NormalizeEngine lowercases and validates an engine name.
func NormalizeEngine(name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case EngineAeneas, EngineWhisper:
		return normalized, nil
	default:
		return "", services.Wrap(services.ErrValidation, services.StageAlignment, "select engine", fmt.Sprintf("unsupported engine %q", name), nil)
	}
}
