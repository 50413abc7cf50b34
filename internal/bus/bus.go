// Package bus carries acknowledged slash commands from the webhook handler
// to the pipeline runner.
package bus

import (
	"log/slog"
	"sync"
	"time"

	"healthbot/internal/domain"
	"healthbot/internal/metrics"
)

const publishTimeout = 10 * time.Second

// InMemoryBus is a Go-channel based job queue for in-process handoff.
type InMemoryBus struct {
	jobs   chan domain.AssessmentJob
	mu     sync.RWMutex
	closed bool
	logger *slog.Logger
}

// New creates a new InMemoryBus with the given buffer size.
func New(bufferSize int, logger *slog.Logger) *InMemoryBus {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &InMemoryBus{
		jobs:   make(chan domain.AssessmentJob, bufferSize),
		logger: logger,
	}
}

// Publish enqueues a job. Blocks up to 10 seconds if the bus is full
// instead of dropping.
func (b *InMemoryBus) Publish(job domain.AssessmentJob) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.logger.Warn("attempted to publish to closed bus", "job", job.ID)
		return
	}

	select {
	case b.jobs <- job:
		metrics.QueuedJobs.Inc()
	default:
		b.logger.Warn("job bus full, waiting...", "job", job.ID, "company", job.Request.Company)
		timer := time.NewTimer(publishTimeout)
		defer timer.Stop()
		select {
		case b.jobs <- job:
			metrics.QueuedJobs.Inc()
			b.logger.Info("job enqueued after wait", "job", job.ID)
		case <-timer.C:
			b.logger.Error("job dropped: bus full for 10s",
				"job", job.ID,
				"company", job.Request.Company,
			)
		}
	}
}

func (b *InMemoryBus) Subscribe() <-chan domain.AssessmentJob {
	return b.jobs
}

func (b *InMemoryBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.jobs)
	}
}
