package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"lawjobs/internal/analytics"
	"lawjobs/internal/domain/board"
	"lawjobs/internal/domain/job"
	"lawjobs/internal/repository"
	"lawjobs/internal/ws"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	jobs    []job.Job
	listErr error
	lists   int
}

func (r *fakeJobRepo) ListActive(context.Context) ([]job.Job, error) {
	r.lists++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]job.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if j.IsActive {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	for _, j := range r.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, repository.ErrJobNotFound
}

func (r *fakeJobRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := r.GetByID(ctx, id)
	return err == nil, nil
}

func (r *fakeJobRepo) Upsert(context.Context, string, []job.Record, time.Time) (int, error) {
	return 0, nil
}

func (r *fakeJobRepo) DeactivateMissing(context.Context, string, time.Time) (int, error) {
	return 0, nil
}

type fakeFavoriteRepo struct {
	jobs  *fakeJobRepo
	saved map[uuid.UUID][]uuid.UUID
	err   error
}

func newFakeFavoriteRepo(jobs *fakeJobRepo) *fakeFavoriteRepo {
	return &fakeFavoriteRepo{jobs: jobs, saved: map[uuid.UUID][]uuid.UUID{}}
}

func (r *fakeFavoriteRepo) Add(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, id := range r.saved[userID] {
		if id == jobID {
			return false, nil
		}
	}
	r.saved[userID] = append([]uuid.UUID{jobID}, r.saved[userID]...)
	return true, nil
}

func (r *fakeFavoriteRepo) Remove(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	ids := r.saved[userID]
	for i, id := range ids {
		if id == jobID {
			r.saved[userID] = append(ids[:i:i], ids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) ListJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]job.Job, 0)
	for _, id := range r.saved[userID] {
		if j, err := r.jobs.GetByID(ctx, id); err == nil {
			out = append(out, j)
		}
	}
	return out, nil
}

// fakeCache stores JSON so hits decode the same way redis would.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = b
	c.mu.Unlock()
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	c.mu.Unlock()
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}

type fakeSessions struct {
	m   map[string]board.FilterState
	err error
}

func newFakeSessions() *fakeSessions { return &fakeSessions{m: map[string]board.FilterState{}} }

func (s *fakeSessions) Get(_ context.Context, userID string) (board.FilterState, bool, error) {
	if s.err != nil {
		return board.FilterState{}, false, s.err
	}
	st, ok := s.m[userID]
	return st, ok, nil
}

func (s *fakeSessions) Put(_ context.Context, userID string, st board.FilterState) error {
	if s.err != nil {
		return s.err
	}
	s.m[userID] = st
	return nil
}

type fakeTracker struct {
	events []analytics.Event
}

func (t *fakeTracker) Track(_ context.Context, e analytics.Event) {
	t.events = append(t.events, e)
}

func (t *fakeTracker) names() []string {
	out := make([]string, 0, len(t.events))
	for _, e := range t.events {
		out = append(out, e.Name)
	}
	return out
}

func (t *fakeTracker) find(name string) (analytics.Event, bool) {
	for _, e := range t.events {
		if e.Name == name {
			return e, true
		}
	}
	return analytics.Event{}, false
}

type fakeNotifier struct {
	events []ws.Event
}

func (n *fakeNotifier) Notify(_ context.Context, evt ws.Event) error {
	n.events = append(n.events, evt)
	return nil
}

func lawJob(title, firm, location, area string) job.Job {
	return job.Job{
		ID:        uuid.New(),
		Source:    "test",
		Title:     title,
		FirmName:  firm,
		Location:  location,
		AreaOfLaw: area,
		IsActive:  true,
	}
}
