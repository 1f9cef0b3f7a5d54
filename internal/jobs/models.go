package jobs

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind names the operation a job runs.
type Kind string

const (
	KindAlign  Kind = "align"
	KindRender Kind = "render"
)

// Status represents the lifecycle of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusRunning,
	StatusCompleted,
	StatusFailed,
}

// AllStatuses returns every known status in lifecycle order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus converts a user-supplied string into a Status.
func ParseStatus(value string) (Status, error) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == normalized {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown job status %q", value)
}

// ParseKind converts a user-supplied string into a Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindAlign:
		return KindAlign, nil
	case KindRender:
		return KindRender, nil
	default:
		return "", fmt.Errorf("unknown job kind %q", value)
	}
}

// Job is a persisted unit of work.
type Job struct {
	ID           string          `json:"id"`
	Kind         Kind            `json:"kind"`
	Status       Status          `json:"status"`
	Request      json.RawMessage `json:"request"`
	Result       json.RawMessage `json:"result,omitempty"`
	ErrorKind    string          `json:"error_kind,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	FailedStage  string          `json:"failed_stage,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
}

// IsTerminal reports whether the job will not change state again.
func (j *Job) IsTerminal() bool {
	return j != nil && (j.Status == StatusCompleted || j.Status == StatusFailed)
}

// DecodeRequest unmarshals the stored request into dst.
func (j *Job) DecodeRequest(dst any) error {
	if j == nil || len(j.Request) == 0 {
		return fmt.Errorf("job has no request")
	}
	if err := json.Unmarshal(j.Request, dst); err != nil {
		return fmt.Errorf("decode %s request: %w", j.Kind, err)
	}
	return nil
}

// DecodeResult unmarshals the stored result into dst.
func (j *Job) DecodeResult(dst any) error {
	if j == nil || len(j.Result) == 0 {
		return fmt.Errorf("job has no result")
	}
	if err := json.Unmarshal(j.Result, dst); err != nil {
		return fmt.Errorf("decode %s result: %w", j.Kind, err)
	}
	return nil
}
