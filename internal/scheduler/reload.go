// Package scheduler runs periodic dataset reloads.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// Reloader refreshes a dataset
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadScheduler triggers Reload on a cron schedule.
// Runs never overlap: a tick that fires while a reload is in flight is skipped.
type ReloadScheduler struct {
	cron     *cron.Cron
	reloader Reloader
	timeout  time.Duration

	mu        sync.Mutex
	running   bool
	lastRun   time.Time
	lastError error

	ctx    context.Context
	cancel context.CancelFunc
}

// New parses expr (standard five-field cron or a descriptor like "@every 1h")
// and returns a stopped scheduler
func New(expr string, reloader Reloader, timeout time.Duration) (*ReloadScheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	ctx, cancel := context.WithCancel(context.Background())
	s := &ReloadScheduler{
		cron:     c,
		reloader: reloader,
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
	}

	if _, err := c.AddFunc(expr, s.RunOnce); err != nil {
		cancel()
		return nil, errors.Wrapf(err, "invalid reload schedule %q", expr)
	}
	return s, nil
}

// Start begins firing on schedule
func (s *ReloadScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	log.Printf("[scheduler] reload scheduler started, next run %v", s.next())
}

// Stop halts the schedule and waits for an in-flight reload to return
func (s *ReloadScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	<-s.cron.Stop().Done()
	log.Println("[scheduler] reload scheduler stopped")
}

// RunOnce performs a single reload with the configured timeout
func (s *ReloadScheduler) RunOnce() {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := s.reloader.Reload(ctx)

	s.mu.Lock()
	s.lastRun = start
	s.lastError = err
	s.mu.Unlock()

	if err != nil {
		log.Printf("[scheduler] reload failed after %v: %v", time.Since(start).Round(time.Millisecond), err)
		return
	}
	log.Printf("[scheduler] reload completed in %v", time.Since(start).Round(time.Millisecond))
}

// LastRun returns when the last reload started and how it ended
func (s *ReloadScheduler) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastError
}

func (s *ReloadScheduler) next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
