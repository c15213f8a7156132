package escalation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

type scanner interface {
	RunScan(ctx context.Context, now time.Time) (ScanResult, error)
}

// Scheduler runs escalation scans on a cron schedule. A tick that fires
// while the previous scan is still running is skipped, so at most one scan
// is in flight per process.
type Scheduler struct {
	scanner scanner
	cron    *cron.Cron
	now     func() time.Time
	log     *slog.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// NewScheduler creates a Scheduler for a cron schedule such as "@every 5m".
func NewScheduler(log *slog.Logger, scanner scanner, schedule string) (*Scheduler, error) {
	log = log.With("component", "escalation_scheduler")
	cl := cronLogger{log: log}

	s := &Scheduler{
		scanner: scanner,
		now:     time.Now,
		log:     log,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("escalation schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins firing scans. Scans run with a context derived from ctx that
// is cancelled by Stop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.cron.Start()
	s.log.InfoContext(ctx, "escalation scheduler started")
}

// Stop prevents new scans and waits for a running one to finish, or for
// ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		cancel()
		s.log.InfoContext(ctx, "escalation scheduler stopped")
		return nil
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

// RunOnce performs a single scan at now.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) (ScanResult, error) {
	res, err := s.scanner.RunScan(ctx, now)
	if err != nil {
		s.log.ErrorContext(ctx, "escalation scan aborted", slog.String("error", err.Error()))
		return res, err
	}
	return res, nil
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}
	_, _ = s.RunOnce(ctx, s.now())
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
