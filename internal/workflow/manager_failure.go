package workflow

import (
	"context"

	"karaoke/internal/jobs"
	"karaoke/internal/logging"
	"karaoke/internal/services"
)

func (m *Manager) handleFailure(ctx context.Context, job *jobs.Job, jobErr error) {
	logger := logging.WithContext(ctx, m.logger)
	m.setLastError(jobErr)

	stage := services.StageOf(jobErr)
	logging.ErrorWithContext(logger, "job failed", "job_failed",
		logging.String("kind", string(job.Kind)),
		logging.String("error_kind", services.Kind(jobErr)),
		logging.String("failed_stage", stage),
		logging.Error(jobErr),
		logging.String(logging.FieldErrorHint, failureHint(jobErr)),
	)

	if err := m.store.Fail(ctx, job.ID, jobErr); err != nil {
		logger.Error("failed to persist job failure", logging.Error(err))
	}
}

func failureHint(err error) string {
	switch services.Kind(err) {
	case services.KindInvalidInput:
		return "fix the request and resubmit"
	case services.KindResourceNotFound:
		return "check that referenced files exist in storage"
	case services.KindCollaboratorFailure:
		return "run karaoke doctor to verify external tools"
	case services.KindConfiguration:
		return "review the karaoke configuration"
	default:
		return "inspect the daemon log for details"
	}
}
