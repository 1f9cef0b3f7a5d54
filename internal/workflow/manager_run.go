package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"karaoke/internal/jobs"
	"karaoke/internal/logging"
	"karaoke/internal/services"
)

// Start resets interrupted jobs and begins background processing.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow already running")
	}
	if len(m.handlers) == 0 {
		m.mu.Unlock()
		return errors.New("workflow handlers not configured")
	}
	m.mu.Unlock()

	reset, err := m.store.ResetRunning(ctx)
	if err != nil {
		return fmt.Errorf("reset running jobs: %w", err)
	}
	if reset > 0 {
		m.logger.Info("requeued interrupted jobs",
			logging.Int64("count", reset),
			logging.String(logging.FieldEventType, "jobs_requeued"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("workflow already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(m.workers)
	for i := 0; i < m.workers; i++ {
		go m.runWorker(runCtx, i)
	}
	m.logger.Info("workflow started", logging.Int("workers", m.workers))
	return nil
}

// Stop terminates background processing and waits for in-flight jobs to
// observe cancellation.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

func (m *Manager) runWorker(ctx context.Context, index int) {
	defer m.wg.Done()
	logger := m.logger.With(logging.Int("worker", index))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := m.store.ClaimNext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.setLastError(err)
			logger.Error("failed to claim next job",
				logging.Error(err),
				logging.String(logging.FieldEventType, "job_claim_failed"),
				logging.String(logging.FieldErrorHint, "check job database access"),
			)
			m.wait(ctx)
			continue
		}
		if job == nil {
			m.wait(ctx)
			continue
		}

		m.processJob(ctx, job)
	}
}

func (m *Manager) wait(ctx context.Context) {
	timer := time.NewTimer(m.pollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-m.wake:
	case <-timer.C:
	}
}

func (m *Manager) processJob(ctx context.Context, job *jobs.Job) {
	ctx = services.WithJobID(ctx, job.ID)
	logger := logging.WithContext(ctx, m.logger).With(logging.String("kind", string(job.Kind)))
	m.setLastJob(job)

	handler, ok := m.handler(job.Kind)
	if !ok {
		m.handleFailure(ctx, job, services.Wrap(services.ErrConfiguration, "", "dispatch job", fmt.Sprintf("no handler for %q jobs", job.Kind), nil))
		return
	}

	logger.Info("job started")
	started := time.Now()
	result, err := handler.Run(ctx, job)
	if err != nil {
		if ctx.Err() != nil {
			logger.Info("job interrupted by shutdown; it will be requeued on next start",
				logging.String(logging.FieldEventType, "job_interrupted"))
			return
		}
		m.handleFailure(ctx, job, err)
		return
	}

	if err := m.store.Complete(ctx, job.ID, result); err != nil {
		m.setLastError(err)
		logger.Error("failed to persist job result",
			logging.Error(err),
			logging.String(logging.FieldEventType, "job_persist_failed"),
			logging.String(logging.FieldErrorHint, "check job database access"),
		)
		return
	}
	logger.Info("job completed",
		logging.Duration("elapsed", time.Since(started)),
		logging.String(logging.FieldEventType, "job_completed"))
}
