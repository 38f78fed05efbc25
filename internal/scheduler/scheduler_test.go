package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingRefresher struct {
	calls atomic.Int32
	block chan struct{}
}

func (c *countingRefresher) RefreshPrices(context.Context) {
	c.calls.Add(1)
	if c.block != nil {
		<-c.block
	}
}

func TestRegister_InvalidCron(t *testing.T) {
	s := NewScheduler(context.Background(), &countingRefresher{})
	if err := s.Register("not a cron"); err == nil {
		t.Errorf("expected error for invalid cron expression")
	}
	if err := s.Register("0 */5 * * * *"); err != nil {
		t.Errorf("expected valid six-field cron expression, got %v", err)
	}
}

func TestRunNow(t *testing.T) {
	r := &countingRefresher{}
	s := NewScheduler(context.Background(), r)
	s.RunNow()
	if r.calls.Load() != 1 {
		t.Errorf("expected 1 refresh, got %d", r.calls.Load())
	}
}

func TestRefresh_SkipsOverlappingTick(t *testing.T) {
	r := &countingRefresher{block: make(chan struct{})}
	s := NewScheduler(context.Background(), r)

	done := make(chan struct{})
	go func() {
		s.RunNow()
		close(done)
	}()
	for r.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	s.RunNow()
	close(r.block)
	<-done

	if r.calls.Load() != 1 {
		t.Errorf("expected overlapping tick skipped, got %d calls", r.calls.Load())
	}
}

func TestRefresh_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &countingRefresher{}
	NewScheduler(ctx, r).RunNow()
	if r.calls.Load() != 0 {
		t.Errorf("expected no refresh after cancellation")
	}
}

func TestStartStop(t *testing.T) {
	r := &countingRefresher{}
	s := NewScheduler(context.Background(), r)
	if err := s.Register("* * * * * *"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	s.Start()
	deadline := time.Now().Add(3 * time.Second)
	for r.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	s.Stop()
	if r.calls.Load() == 0 {
		t.Errorf("expected at least one scheduled refresh")
	}
}
