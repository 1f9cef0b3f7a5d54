package jobs

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const jobColumns = `id, kind, status, request_json, result_json, error_kind, error_message,
    failed_stage, created_at, updated_at, started_at, finished_at`

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id, kind, status, request   string
		result, errorKind, errorMsg sql.NullString
		failedStage                 sql.NullString
		createdRaw, updatedRaw      string
		startedRaw, finishedRaw     sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&kind,
		&status,
		&request,
		&result,
		&errorKind,
		&errorMsg,
		&failedStage,
		&createdRaw,
		&updatedRaw,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:           id,
		Kind:         Kind(kind),
		Status:       Status(status),
		Request:      json.RawMessage(request),
		ErrorKind:    errorKind.String,
		ErrorMessage: errorMsg.String,
		FailedStage:  failedStage.String,
	}
	if result.Valid && result.String != "" {
		job.Result = json.RawMessage(result.String)
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		job.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		job.UpdatedAt = updated
	}
	job.StartedAt = parseNullableTime(startedRaw)
	job.FinishedAt = parseNullableTime(finishedRaw)
	return job, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseNullableTime(value sql.NullString) *time.Time {
	if !value.Valid {
		return nil
	}
	t, err := parseTimeString(value.String)
	if err != nil {
		return nil
	}
	return &t
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", count), ",")
}
