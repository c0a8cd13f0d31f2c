package importer

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"lawjobs/internal/domain/job"
	"lawjobs/internal/infrastructure/feed"
	"lawjobs/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	bySource map[string][]job.Record
	errs     map[string]error
}

func (f fakeFetcher) Fetch(_ context.Context, src feed.Source) ([]job.Record, error) {
	if err := f.errs[src.Name]; err != nil {
		return nil, err
	}
	return f.bySource[src.Name], nil
}

type fakeJobRepo struct {
	mu          sync.Mutex
	upserted    map[string][]job.Record
	deactivated map[string]int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{upserted: map[string][]job.Record{}, deactivated: map[string]int{}}
}

func (r *fakeJobRepo) ListActive(context.Context) ([]job.Job, error)       { return nil, nil }
func (r *fakeJobRepo) GetByID(context.Context, uuid.UUID) (job.Job, error) { return job.Job{}, nil }
func (r *fakeJobRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) { return false, nil }
func (r *fakeJobRepo) Upsert(_ context.Context, source string, recs []job.Record, _ time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserted[source] = recs
	return len(recs), nil
}
func (r *fakeJobRepo) DeactivateMissing(_ context.Context, source string, _ time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deactivated[source], nil
}

type fakeCache struct{ invalidations int }

func (c *fakeCache) InvalidateJobs(context.Context) error {
	c.invalidations++
	return nil
}

type fakeNotifier struct{ events []ws.Event }

func (n *fakeNotifier) Notify(_ context.Context, evt ws.Event) error {
	n.events = append(n.events, evt)
	return nil
}

func staticSources(srcs ...feed.Source) SourceLoader {
	return func() ([]feed.Source, error) { return srcs, nil }
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestService_RunImportsAllSources(t *testing.T) {
	repo := newFakeJobRepo()
	repo.deactivated["firm"] = 2
	c := &fakeCache{}
	n := &fakeNotifier{}

	svc := NewService(
		staticSources(feed.Source{Name: "feed", Kind: feed.KindJSON}, feed.Source{Name: "firm", Kind: feed.KindHTML}),
		fakeFetcher{bySource: map[string][]job.Record{
			"feed": {{ExternalID: "1", Title: " 1L  Summer Associate "}, {ExternalID: "2", Title: ""}},
			"firm": {{Title: "Diversity Fellow", URL: "https://firm.example/jobs/9"}},
		}},
		repo, c, n, Options{Workers: 2}, quietLogger(),
	)

	runs, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)

	require.Len(t, repo.upserted["feed"], 1, "titleless records are dropped")
	assert.Equal(t, "1L Summer Associate", repo.upserted["feed"][0].Title)
	assert.NotEmpty(t, repo.upserted["firm"][0].ExternalID)

	assert.Equal(t, 1, c.invalidations)
	require.Len(t, n.events, 1)
	assert.Equal(t, ws.EventJobsUpdated, n.events[0].Type)
	assert.Equal(t, 4, n.events[0].Changed)
}

func TestService_EmptyOrFailingSourceKeepsJobs(t *testing.T) {
	repo := newFakeJobRepo()
	c := &fakeCache{}
	n := &fakeNotifier{}

	svc := NewService(
		staticSources(feed.Source{Name: "empty"}, feed.Source{Name: "down"}),
		fakeFetcher{
			bySource: map[string][]job.Record{"empty": {}},
			errs:     map[string]error{"down": errors.New("502")},
		},
		repo, c, n, Options{Workers: 1}, quietLogger(),
	)

	runs, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, r := range runs {
		assert.Error(t, r.Err)
	}
	assert.Empty(t, repo.upserted)
	assert.Zero(t, c.invalidations)
	assert.Empty(t, n.events)

	assert.Error(t, svc.RunOnce(context.Background()), "all sources failing fails the run")
}

func TestService_RunsRecordFinishTime(t *testing.T) {
	svc := NewService(
		staticSources(feed.Source{Name: "feed"}, feed.Source{Name: "down"}),
		fakeFetcher{
			bySource: map[string][]job.Record{"feed": {{ExternalID: "1", Title: "Summer Associate"}}},
			errs:     map[string]error{"down": errors.New("502")},
		},
		newFakeJobRepo(), nil, nil, Options{Workers: 1}, quietLogger(),
	)
	var mu sync.Mutex
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}

	runs, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, r := range runs {
		assert.False(t, r.FinishedAt.IsZero(), "source %s", r.Source)
		assert.True(t, r.FinishedAt.After(r.StartedAt), "source %s", r.Source)
	}
}

func TestService_NoSources(t *testing.T) {
	svc := NewService(staticSources(), fakeFetcher{}, newFakeJobRepo(), nil, nil, Options{}, quietLogger())
	assert.NoError(t, svc.RunOnce(context.Background()))
}

func TestService_SourceLoaderError(t *testing.T) {
	svc := NewService(func() ([]feed.Source, error) { return nil, errors.New("bad yaml") }, fakeFetcher{}, newFakeJobRepo(), nil, nil, Options{}, quietLogger())
	assert.Error(t, svc.RunOnce(context.Background()))
}
