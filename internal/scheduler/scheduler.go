package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Refresher refreshes watchlist prices.
type Refresher interface {
	RefreshPrices(ctx context.Context)
}

// Scheduler runs periodic watchlist refreshes.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher Refresher
	Ctx       context.Context

	running sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, r Refresher) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: r,
		Ctx:       ctx,
	}
}

// Register adds the price refresh task on refreshCron (six fields, seconds first).
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	slog.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	slog.Info("scheduler stopped")
}

// RunNow executes the refresh task immediately.
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

// refreshTask skips a tick while the previous refresh is still running.
func (s *Scheduler) refreshTask() {
	if !s.running.TryLock() {
		slog.Debug("price refresh still running, skipping tick")
		return
	}
	defer s.running.Unlock()

	if s.Ctx.Err() != nil {
		return
	}
	slog.Debug("running scheduled price refresh")
	s.Refresher.RefreshPrices(s.Ctx)
}
