package api

import (
	"time"

	"karaoke/internal/jobs"
	"karaoke/internal/workflow"
)

// FromJob converts a job record to its API representation.
func FromJob(job *jobs.Job) Job {
	if job == nil {
		return Job{}
	}
	return Job{
		ID:           job.ID,
		Kind:         string(job.Kind),
		Status:       string(job.Status),
		Request:      job.Request,
		Result:       job.Result,
		ErrorKind:    job.ErrorKind,
		ErrorMessage: job.ErrorMessage,
		FailedStage:  job.FailedStage,
		CreatedAt:    formatTime(job.CreatedAt),
		UpdatedAt:    formatTime(job.UpdatedAt),
		StartedAt:    formatTimePtr(job.StartedAt),
		FinishedAt:   formatTimePtr(job.FinishedAt),
	}
}

// FromJobs converts a slice of job records.
func FromJobs(list []*jobs.Job) []Job {
	out := make([]Job, 0, len(list))
	for _, job := range list {
		if job == nil {
			continue
		}
		out = append(out, FromJob(job))
	}
	return out
}

// FromStatusSummary converts a workflow summary to its API representation.
func FromStatusSummary(summary workflow.StatusSummary) WorkflowStatus {
	status := WorkflowStatus{
		Running:   summary.Running,
		Workers:   summary.Workers,
		JobStats:  MergeJobStats(summary.JobStats),
		LastError: summary.LastError,
	}
	if summary.LastJob != nil {
		job := FromJob(summary.LastJob)
		status.LastJob = &job
	}
	return status
}

// MergeJobStats keys stats by status string, filling every known status.
func MergeJobStats(stats map[jobs.Status]int) map[string]int {
	out := make(map[string]int, len(stats))
	for _, status := range jobs.AllStatuses() {
		out[string(status)] = stats[status]
	}
	for status, count := range stats {
		out[string(status)] = count
	}
	return out
}

// ParseTime parses an API timestamp, returning the zero time on failure.
func ParseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	return time.Time{}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
