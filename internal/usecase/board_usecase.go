package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"lawjobs/internal/analytics"
	"lawjobs/internal/domain/board"
	"lawjobs/internal/domain/job"
	"lawjobs/internal/infrastructure/cache"
	"lawjobs/internal/repository"

	"github.com/google/uuid"
)

const jobsListLockKey = "jobs:lock:list:all"

type BoardParams struct {
	View    board.ViewMode
	UserID  *uuid.UUID
	Filters board.FilterState
	// StateProvided is true when the request carried a state parameter,
	// even an empty one. It suppresses the default state.
	StateProvided bool
}

type BoardResult struct {
	board.Result
	View             board.ViewMode
	AutoStateApplied bool
	FavoriteIDs      map[string]bool
}

type BoardUsecase interface {
	ListBoard(ctx context.Context, params BoardParams) (BoardResult, error)
	GetJob(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (job.Job, bool, error)
}

type Board struct {
	jobs         repository.JobRepository
	favorites    repository.FavoriteRepository
	cache        JobCache
	sessions     SessionStore
	tracker      Tracker
	defaultState string
	logger       *log.Logger
}

func NewBoardUsecase(jobs repository.JobRepository, favorites repository.FavoriteRepository, cache JobCache, sessions SessionStore, tracker Tracker, defaultState string, logger *log.Logger) *Board {
	if tracker == nil {
		tracker = analytics.Nop{}
	}
	return &Board{jobs: jobs, favorites: favorites, cache: cache, sessions: sessions, tracker: tracker, defaultState: defaultState, logger: logger}
}

func (u *Board) ListBoard(ctx context.Context, params BoardParams) (BoardResult, error) {
	if params.View == "" {
		params.View = board.ViewAll
	}
	if params.View != board.ViewAll && params.View != board.ViewFavorites {
		return BoardResult{}, ErrInvalidInput
	}
	if params.View == board.ViewFavorites && params.UserID == nil {
		return BoardResult{}, ErrUnauthorized
	}

	var favorites []job.Job
	if params.UserID != nil {
		favs, err := u.favoriteJobs(ctx, *params.UserID)
		if err != nil {
			return BoardResult{}, ErrInternal
		}
		favorites = favs
	}

	var source []job.Job
	if params.View == board.ViewFavorites {
		source = favorites
	} else {
		all, err := u.activeJobs(ctx)
		if err != nil {
			return BoardResult{}, ErrInternal
		}
		source = all
	}

	filters := params.Filters
	if filters.CurrentPage < 1 {
		filters.CurrentPage = 1
	}
	autoApplied := false
	if !params.StateProvided && filters.StateFilter == "" && u.defaultState != "" && len(source) > 0 {
		filters.StateFilter = u.defaultState
		filters.CurrentPage = 1
		autoApplied = true
	}

	res := board.Board(job.ToBoard(source), filters)

	prev := board.DefaultFilterState()
	if params.UserID != nil && u.sessions != nil {
		uid := params.UserID.String()
		if saved, ok, err := u.sessions.Get(ctx, uid); err == nil && ok {
			prev = saved
		}
		if err := u.sessions.Put(ctx, uid, res.Filters); err != nil && u.logger != nil {
			u.logger.Printf("[Jobs] save board session failed user=%s: %v", uid, err)
		}
	}

	favIDs := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		favIDs[f.ID.String()] = true
	}

	u.trackListing(ctx, params, prev, res, autoApplied)

	return BoardResult{
		Result:           res,
		View:             params.View,
		AutoStateApplied: autoApplied,
		FavoriteIDs:      favIDs,
	}, nil
}

// GetJob returns a job and whether the caller has it saved.
func (u *Board) GetJob(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (job.Job, bool, error) {
	if id == uuid.Nil {
		return job.Job{}, false, ErrInvalidInput
	}
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, false, ErrJobNotFound
		}
		return job.Job{}, false, ErrInternal
	}

	saved := false
	if userID != nil {
		favs, err := u.favoriteJobs(ctx, *userID)
		if err == nil {
			for _, f := range favs {
				if f.ID == id {
					saved = true
					break
				}
			}
		}
	}

	u.tracker.Track(ctx, analytics.Event{
		Name:   analytics.JobViewed,
		UserID: userID,
		Properties: map[string]any{
			"job_id":    j.ID.String(),
			"job_title": j.Title,
			"company":   j.FirmName,
			"location":  j.Location,
		},
	})
	return j, saved, nil
}

func (u *Board) activeJobs(ctx context.Context) ([]job.Job, error) {
	if u.cache != nil {
		var cached []job.Job
		hit, err := u.cache.GetJSON(ctx, cache.JobsListAllKey, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Jobs] Cache HIT: %s", cache.JobsListAllKey)
			}
			return cached, nil
		}
		if u.logger != nil {
			u.logger.Printf("[Jobs] Cache MISS: %s", cache.JobsListAllKey)
		}
	}

	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, jobsListLockKey, "1", 30*time.Second)
		if err == nil && ok {
			defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), jobsListLockKey) }()
		} else if err == nil && !ok {
			jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(300*time.Millisecond + jitter):
			}
			var cached []job.Job
			hit, err2 := u.cache.GetJSON(ctx, cache.JobsListAllKey, &cached)
			if err2 == nil && hit {
				return cached, nil
			}
			if u.logger != nil {
				u.logger.Printf("[Jobs] Lock wait fallback: %s", jobsListLockKey)
			}
		}
	}

	jobs, err := u.jobs.ListActive(ctx)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] list active failed: %v", err)
		}
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cache.JobsListAllKey, jobs, 0); err == nil && u.logger != nil {
			u.logger.Printf("[Jobs] Cache SET: %s", cache.JobsListAllKey)
		}
	}
	return jobs, nil
}

func (u *Board) favoriteJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	key := cache.FavoritesKey(userID.String())
	if u.cache != nil {
		var cached []job.Job
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	favs, err := u.favorites.ListJobs(ctx, userID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] list favorites failed user=%s: %v", userID, err)
		}
		return nil, err
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, favs, 0)
	}
	return favs, nil
}

func (u *Board) trackListing(ctx context.Context, params BoardParams, prev board.FilterState, res board.Result, autoApplied bool) {
	filters := res.Filters
	viewEvent := analytics.JobBoardViewed
	if params.View == board.ViewFavorites {
		viewEvent = analytics.FavoritesViewed
	}
	u.tracker.Track(ctx, analytics.Event{
		Name:   viewEvent,
		UserID: params.UserID,
		Properties: map[string]any{
			"total_jobs":    res.Page.TotalItems,
			"page":          res.Page.CurrentPage,
			"total_pages":   res.Page.TotalPages,
			"state_filter":  filters.StateFilter,
			"area_of_law":   filters.AreaOfLawFilter,
			"has_search":    strings.TrimSpace(filters.SearchQuery) != "",
			"results_count": res.FilteredCount,
		},
	})

	if autoApplied {
		u.tracker.Track(ctx, analytics.Event{
			Name:       analytics.AutoStateFilterApplied,
			UserID:     params.UserID,
			Properties: map[string]any{"state": filters.StateFilter},
		})
	}

	if filters.SearchQuery != "" && filters.SearchQuery != prev.SearchQuery {
		u.tracker.Track(ctx, analytics.Event{
			Name:   analytics.JobSearchPerformed,
			UserID: params.UserID,
			Properties: map[string]any{
				"query":         filters.SearchQuery,
				"results_count": res.FilteredCount,
			},
		})
	}
	if !autoApplied && filters.StateFilter != prev.StateFilter {
		u.tracker.Track(ctx, analytics.Event{
			Name:       analytics.StateFilterChanged,
			UserID:     params.UserID,
			Properties: map[string]any{"state": filters.StateFilter},
		})
	}
	if filters.AreaOfLawFilter != prev.AreaOfLawFilter {
		u.tracker.Track(ctx, analytics.Event{
			Name:       analytics.AreaOfLawFilterChanged,
			UserID:     params.UserID,
			Properties: map[string]any{"area_of_law": filters.AreaOfLawFilter},
		})
	}
}
