// Package pipeline drives an assessment job from queue to delivery:
// receive job → fetch tenant data → score and render → chunk → post back.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"healthbot/internal/assess"
	"healthbot/internal/atlan"
	"healthbot/internal/chunk"
	"healthbot/internal/domain"
	"healthbot/internal/metrics"
)

const defaultConcurrency = 3

// RunnerConfig holds the dependencies and tuning parameters for the runner.
type RunnerConfig struct {
	Bus         domain.JobBus
	Fetcher     domain.TenantFetcher
	Renderer    *assess.Renderer
	Sender      *chunk.Sender
	Store       domain.AssessmentStore // optional; nil disables history
	ChunkLimit  int
	Concurrency int // max jobs processed in parallel (default 3)
	Logger      *slog.Logger
}

// Runner consumes assessment jobs from the bus and processes them.
type Runner struct {
	bus         domain.JobBus
	fetcher     domain.TenantFetcher
	renderer    *assess.Renderer
	sender      *chunk.Sender
	store       domain.AssessmentStore
	chunkLimit  int
	concurrency int
	logger      *slog.Logger
}

func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.ChunkLimit <= 0 {
		cfg.ChunkLimit = chunk.DefaultLimit
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return &Runner{
		bus:         cfg.Bus,
		fetcher:     cfg.Fetcher,
		renderer:    cfg.Renderer,
		sender:      cfg.Sender,
		store:       cfg.Store,
		chunkLimit:  cfg.ChunkLimit,
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
	}
}

// Run consumes queued jobs and processes them with bounded concurrency.
// It returns when ctx is cancelled or the bus is closed.
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info("pipeline started", "concurrency", r.concurrency)

	sem := make(chan struct{}, r.concurrency)
	jobs := r.bus.Subscribe()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("pipeline stopping")
			return
		case job, ok := <-jobs:
			if !ok {
				r.logger.Info("job queue closed, pipeline stopping")
				return
			}
			sem <- struct{}{}
			go func(j domain.AssessmentJob) {
				defer func() { <-sem }()
				r.process(ctx, j)
			}(job)
		}
	}
}

// process runs one job end to end. Fetch failures degrade to the fallback
// dataset instead of dropping the job.
func (r *Runner) process(ctx context.Context, job domain.AssessmentJob) {
	start := time.Now()
	metrics.QueuedJobs.Dec()

	r.logger.Info("processing assessment",
		"job_id", job.ID,
		"company", job.Request.Company,
		"industry", job.Request.Industry,
	)

	overview, err := r.fetcher.FetchOverview(ctx, job.Request.TenantURL, job.Request.Filters)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.Warn("tenant fetch failed, using fallback data",
			"job_id", job.ID, "err", err)
		overview = atlan.FallbackOverview()
		metrics.FallbacksTotal.Inc()
	}

	doc := r.renderer.Render(job.Request, overview)
	chunks := chunk.Split(doc.Text(), r.chunkLimit)

	delivered := 0
	if job.Request.ResponseURL == "" {
		r.logger.Warn("job has no response_url, skipping delivery", "job_id", job.ID)
	} else {
		delivered = r.sender.Send(ctx, job.Request.ResponseURL, chunks)
	}

	metrics.AssessmentsTotal.Inc()
	metrics.PipelineLatency.Observe(time.Since(start).Seconds())

	if r.store != nil {
		rec := domain.AssessmentRecord{
			ID:         job.ID,
			Company:    doc.Company,
			Industry:   doc.Industry,
			TenantURL:  doc.TenantURL,
			Score:      doc.Score.Overall,
			ChunkCount: len(chunks),
			Delivered:  delivered,
			Fallback:   overview.Fallback,
			CreatedAt:  doc.GeneratedAt,
		}
		if err := r.store.SaveAssessment(ctx, rec); err != nil {
			r.logger.Error("failed to save assessment history",
				"job_id", job.ID, "err", err)
		}
	}

	r.logger.Info("assessment complete",
		"job_id", job.ID,
		"company", doc.Company,
		"score", doc.Score.Overall,
		"chunks", len(chunks),
		"delivered", delivered,
		"duration", time.Since(start),
	)
}
