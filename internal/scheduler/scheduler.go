// Package scheduler runs the job import on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

type Runner interface {
	RunOnce(ctx context.Context) error
}

// Scheduler wraps robfig/cron. Overlapping runs are skipped, including the
// immediate run Start kicks off.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
	logger *log.Logger

	running atomic.Bool
	wg      sync.WaitGroup
}

func New(runner Runner, spec string, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	cronLogger := cron.VerbosePrintfLogger(logger)
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		runner: runner,
		spec:   spec,
		logger: logger,
	}
}

// Start registers the import job, starts cron, and kicks off one run right away.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.runner == nil {
		return fmt.Errorf("nil runner")
	}
	if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Printf("[Scheduler] cron started spec=%s", s.spec)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
	return nil
}

// Stop waits for a running import to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.logger.Printf("[Scheduler] cron stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Printf("[Scheduler] previous import still running, skipping")
		return
	}
	defer s.running.Store(false)

	if err := s.runner.RunOnce(ctx); err != nil {
		s.logger.Printf("[Scheduler] import run failed: %v", err)
	}
}

// Validate reports whether spec is a schedule cron accepts.
func Validate(spec string) error {
	_, err := cron.ParseStandard(spec)
	return err
}
