// Package scheduler drives periodic sitemap regeneration. A cron ticker
// checks whether the configured interval has elapsed and hands the actual
// work to a background queue so slow upstream calls never block the ticker.
package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/service"
	"github.com/nexjob/nexjob-api/pkg/config"
	"github.com/nexjob/nexjob-api/pkg/jobs"
)

const refreshJobKind = "sitemap:refresh"

// Scheduler owns the cron loop and its worker queue.
type Scheduler struct {
	cron     *cron.Cron
	queue    *jobs.Queue
	sitemaps *service.SitemapService
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New builds the scheduler around the sitemap service.
func New(sitemaps *service.SitemapService, cfg config.SitemapConfig, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scheduler{
		cron:     cron.New(),
		sitemaps: sitemaps,
		logger:   logger,
	}

	s.queue = jobs.NewQueue("sitemap", s.handle, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: cfg.WorkerRetries,
		RetryDelay: 30 * time.Second,
		Logger:     logger,
	})

	return s
}

// Start launches the worker queue and the cron loop. The first check runs
// immediately so a cold deployment gets sitemaps without waiting a full tick.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.queue.Start(s.ctx)

	if _, err := s.cron.AddFunc("@every 1m", s.tick); err != nil {
		return err
	}

	go s.tick()
	s.cron.Start()

	s.logger.Info("sitemap scheduler started")
	return nil
}

// Stop halts the cron loop and drains the queue.
func (s *Scheduler) Stop() {
	cronCtx := s.cron.Stop()
	<-cronCtx.Done()
	if s.cancel != nil {
		s.cancel()
	}
	s.queue.Stop()
	s.logger.Info("sitemap scheduler stopped")
}

func (s *Scheduler) tick() {
	if !s.sitemaps.ShouldRefresh(s.ctx) {
		return
	}

	err := s.queue.Enqueue(jobs.Job{
		ID:   uuid.NewString(),
		Kind: refreshJobKind,
	})
	if err != nil {
		s.logger.Warn("enqueue sitemap refresh failed", zap.Error(err))
	}
}

func (s *Scheduler) handle(ctx context.Context, job jobs.Job) error {
	s.logger.Debug("sitemap refresh starting", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
	return s.sitemaps.Refresh(ctx)
}
