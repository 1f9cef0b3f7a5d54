package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"karaoke/internal/config"
	"karaoke/internal/jobs"
	"karaoke/internal/logging"
)

// Handler executes one kind of job and returns a JSON-serializable result.
type Handler interface {
	Run(ctx context.Context, job *jobs.Job) (any, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, job *jobs.Job) (any, error)

// Run calls f.
func (f HandlerFunc) Run(ctx context.Context, job *jobs.Job) (any, error) {
	return f(ctx, job)
}

// Manager coordinates job processing using registered handlers.
type Manager struct {
	store        *jobs.Store
	logger       *slog.Logger
	pollInterval time.Duration
	workers      int
	wake         chan struct{}

	mu       sync.RWMutex
	handlers map[jobs.Kind]Handler
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	lastErr  error
	lastJob  *jobs.Job
}

// NewManager constructs a workflow manager.
func NewManager(cfg *config.Config, store *jobs.Store, logger *slog.Logger) *Manager {
	poll := time.Duration(cfg.Workflow.PollInterval) * time.Second
	if poll <= 0 {
		poll = time.Second
	}
	workers := cfg.Workflow.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Manager{
		store:        store,
		logger:       logging.NewComponentLogger(logger, "workflow-manager"),
		pollInterval: poll,
		workers:      workers,
		wake:         make(chan struct{}, 1),
		handlers:     make(map[jobs.Kind]Handler),
	}
}

// Register installs the handler for kind, replacing any previous one.
func (m *Manager) Register(kind jobs.Kind, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if handler == nil {
		delete(m.handlers, kind)
		return
	}
	m.handlers[kind] = handler
}

// Notify wakes an idle worker so a freshly enqueued job starts without
// waiting for the next poll.
func (m *Manager) Notify() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Manager) handler(kind jobs.Kind) (Handler, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.handlers[kind]
	return h, ok
}
