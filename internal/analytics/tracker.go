// Package analytics records product events in the analytics_events table.
// Events are written asynchronously and never fail the calling request.
package analytics

import (
	"context"
	"log"
	"sync"
	"time"

	"lawjobs/internal/pkg/workerpool"
	"lawjobs/internal/repository"

	"github.com/google/uuid"
)

const (
	JobBoardViewed         = "job_board_viewed"
	FavoritesViewed        = "favorites_viewed"
	AutoStateFilterApplied = "auto_state_filter_applied"
	JobSearchPerformed     = "job_search_performed"
	StateFilterChanged     = "state_filter_changed"
	AreaOfLawFilterChanged = "area_of_law_filter_changed"
	JobViewed              = "job_viewed"
	FavoriteSaved          = "favorite_saved"
	FavoriteRemoved        = "favorite_removed"
)

type Event struct {
	Name       string
	UserID     *uuid.UUID
	Properties map[string]any
}

type Sink interface {
	Insert(ctx context.Context, e repository.AnalyticsEvent) error
}

type Tracker struct {
	sink    Sink
	pool    *workerpool.WorkerPool
	logger  *log.Logger
	now     func() time.Time
	timeout time.Duration

	startOnce sync.Once
	done      chan struct{}
}

func NewTracker(sink Sink, workers, queue int, logger *log.Logger) *Tracker {
	return &Tracker{
		sink:    sink,
		pool:    workerpool.New(workers, queue),
		logger:  logger,
		now:     time.Now,
		timeout: 5 * time.Second,
		done:    make(chan struct{}),
	}
}

// Start launches the writers. Call Close to flush queued events.
func (t *Tracker) Start() {
	if t == nil {
		return
	}
	t.startOnce.Do(func() {
		results := t.pool.Run(context.Background())
		go func() {
			defer close(t.done)
			for r := range results {
				if r.Err != nil && t.logger != nil {
					t.logger.Printf("[Analytics] write failed: %v", r.Err)
				}
			}
		}()
	})
}

// Track queues e. A full queue drops the event.
func (t *Tracker) Track(_ context.Context, e Event) {
	if t == nil || t.sink == nil || e.Name == "" {
		return
	}
	rec := repository.AnalyticsEvent{
		Name:       e.Name,
		UserID:     e.UserID,
		Properties: e.Properties,
		CreatedAt:  t.now().UTC(),
	}
	err := t.pool.TrySubmit(func(ctx context.Context) error {
		wctx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()
		return t.sink.Insert(wctx, rec)
	})
	if err != nil && t.logger != nil {
		t.logger.Printf("[Analytics] dropped event=%s reason=%v", e.Name, err)
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (t *Tracker) Close(ctx context.Context) error {
	if t == nil {
		return nil
	}
	t.pool.Close()
	t.Start()
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Nop discards every event.
type Nop struct{}

func (Nop) Track(context.Context, Event) {}
