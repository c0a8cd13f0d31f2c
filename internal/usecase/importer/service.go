package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"lawjobs/internal/domain/job"
	"lawjobs/internal/infrastructure/feed"
	"lawjobs/internal/pkg/workerpool"
	"lawjobs/internal/repository"
	"lawjobs/internal/ws"
)

type SourceLoader func() ([]feed.Source, error)

type CacheInvalidator interface {
	InvalidateJobs(ctx context.Context) error
}

type Notifier interface {
	Notify(ctx context.Context, evt ws.Event) error
}

type Options struct {
	Workers    int
	RatePerSec int
}

type Service struct {
	sources  SourceLoader
	fetcher  feed.Fetcher
	jobs     repository.JobRepository
	cache    CacheInvalidator
	notifier Notifier
	opts     Options
	logger   *log.Logger
	now      func() time.Time
}

func NewService(sources SourceLoader, fetcher feed.Fetcher, jobs repository.JobRepository, cache CacheInvalidator, notifier Notifier, opts Options, logger *log.Logger) *Service {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		sources:  sources,
		fetcher:  fetcher,
		jobs:     jobs,
		cache:    cache,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// RunOnce imports every configured source. It fails only when no source
// could be imported at all.
func (s *Service) RunOnce(ctx context.Context) error {
	runs, err := s.Run(ctx)
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range runs {
		if r.Err != nil {
			failed++
		}
	}
	if len(runs) > 0 && failed == len(runs) {
		return fmt.Errorf("all %d sources failed", failed)
	}
	return nil
}

// Run imports each source as one task on a rate-limited worker pool and
// returns a report per source.
func (s *Service) Run(ctx context.Context) ([]job.ImportRun, error) {
	sources, err := s.sources()
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		s.logger.Printf("[Import] no sources configured")
		return nil, nil
	}

	pool := workerpool.New(s.opts.Workers, len(sources))
	pool.SetRateLimit(s.opts.RatePerSec)
	results := pool.Run(ctx)

	var mu sync.Mutex
	runs := make([]job.ImportRun, 0, len(sources))
	for _, src := range sources {
		src := src
		err := pool.Submit(ctx, func(ctx context.Context) error {
			r := s.importSource(ctx, src)
			mu.Lock()
			runs = append(runs, r)
			mu.Unlock()
			return r.Err
		})
		if err != nil {
			pool.Close()
			return nil, err
		}
	}
	pool.Close()
	for res := range results {
		if res.Err != nil {
			s.logger.Printf("[Import] source failed: %v", res.Err)
		}
	}
	if err := ctx.Err(); err != nil {
		return runs, err
	}

	changed := 0
	for _, r := range runs {
		if r.Changed() {
			changed += r.Upserted + r.Deactivated
		}
	}
	if changed > 0 {
		s.publish(ctx, changed)
	}
	s.logger.Printf("[Import] run complete sources=%d changed=%d", len(runs), changed)
	return runs, nil
}

func (s *Service) importSource(ctx context.Context, src feed.Source) (run job.ImportRun) {
	run = job.ImportRun{Source: src.Name, StartedAt: s.now().UTC()}
	defer func() {
		run.FinishedAt = s.now().UTC()
	}()

	raw, err := s.fetcher.Fetch(ctx, src)
	if err != nil {
		run.Err = fmt.Errorf("fetch %s: %w", src.Name, err)
		return run
	}
	records := feed.NormalizeAll(raw)
	run.Fetched = len(records)

	if len(records) == 0 {
		run.Err = fmt.Errorf("source %s: %w", src.Name, ErrEmptyFeed)
		return run
	}

	n, err := s.jobs.Upsert(ctx, src.Name, records, run.StartedAt)
	if err != nil {
		run.Err = fmt.Errorf("upsert %s: %w", src.Name, err)
		return run
	}
	run.Upserted = n

	d, err := s.jobs.DeactivateMissing(ctx, src.Name, run.StartedAt)
	if err != nil {
		run.Err = fmt.Errorf("deactivate %s: %w", src.Name, err)
		return run
	}
	run.Deactivated = d

	s.logger.Printf("[Import] source=%s fetched=%d changed=%d deactivated=%d", src.Name, run.Fetched, run.Upserted, run.Deactivated)
	return run
}

// ErrEmptyFeed marks a source that returned no usable postings. Its existing
// jobs are left active.
var ErrEmptyFeed = errors.New("feed returned no postings")

func (s *Service) publish(ctx context.Context, changed int) {
	if s.cache != nil {
		if err := s.cache.InvalidateJobs(ctx); err != nil {
			s.logger.Printf("[Import] cache invalidate failed: %v", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, ws.JobsUpdated("import", changed)); err != nil {
			s.logger.Printf("[Import] notify failed: %v", err)
		}
	}
}
