package usecase

import (
	"context"
	"log"

	"lawjobs/internal/analytics"
	"lawjobs/internal/infrastructure/cache"
	"lawjobs/internal/repository"
	"lawjobs/internal/ws"

	"github.com/google/uuid"
)

const (
	MessageFavoriteSaved        = "Saved to your favorites!"
	MessageFavoriteRemoved      = "Removed from your favorites!"
	MessageFavoriteSaveFailed   = "Failed to save favorite job. Please try again."
	MessageFavoriteRemoveFailed = "Failed to remove from favorites. Please try again."
	MessageFavoriteSignIn       = "Please sign in to save favorite jobs"
)

type FavoriteResult struct {
	JobID   uuid.UUID
	Saved   bool
	Message string
}

type FavoritesUsecase interface {
	AddFavorite(ctx context.Context, userID *uuid.UUID, jobID uuid.UUID) (FavoriteResult, error)
	RemoveFavorite(ctx context.Context, userID *uuid.UUID, jobID uuid.UUID) (FavoriteResult, error)
}

type Favorites struct {
	jobs      repository.JobRepository
	favorites repository.FavoriteRepository
	cache     JobCache
	notifier  EventNotifier
	tracker   Tracker
	logger    *log.Logger
}

func NewFavoritesUsecase(jobs repository.JobRepository, favorites repository.FavoriteRepository, cache JobCache, notifier EventNotifier, tracker Tracker, logger *log.Logger) *Favorites {
	if tracker == nil {
		tracker = analytics.Nop{}
	}
	return &Favorites{jobs: jobs, favorites: favorites, cache: cache, notifier: notifier, tracker: tracker, logger: logger}
}

func (u *Favorites) AddFavorite(ctx context.Context, userID *uuid.UUID, jobID uuid.UUID) (FavoriteResult, error) {
	if userID == nil || *userID == uuid.Nil {
		return FavoriteResult{}, ErrUnauthorized
	}
	if err := u.ensureJob(ctx, jobID); err != nil {
		return FavoriteResult{}, err
	}

	created, err := u.favorites.Add(ctx, *userID, jobID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Favorites] add failed user=%s job=%s: %v", userID, jobID, err)
		}
		return FavoriteResult{}, ErrInternal
	}

	if created {
		u.afterChange(ctx, *userID, jobID, analytics.FavoriteSaved)
	}
	return FavoriteResult{JobID: jobID, Saved: true, Message: MessageFavoriteSaved}, nil
}

func (u *Favorites) RemoveFavorite(ctx context.Context, userID *uuid.UUID, jobID uuid.UUID) (FavoriteResult, error) {
	if userID == nil || *userID == uuid.Nil {
		return FavoriteResult{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return FavoriteResult{}, ErrInvalidInput
	}

	existed, err := u.favorites.Remove(ctx, *userID, jobID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Favorites] remove failed user=%s job=%s: %v", userID, jobID, err)
		}
		return FavoriteResult{}, ErrInternal
	}
	if !existed {
		return FavoriteResult{}, ErrFavoriteNotFound
	}

	u.afterChange(ctx, *userID, jobID, analytics.FavoriteRemoved)
	return FavoriteResult{JobID: jobID, Saved: false, Message: MessageFavoriteRemoved}, nil
}

func (u *Favorites) ensureJob(ctx context.Context, jobID uuid.UUID) error {
	if jobID == uuid.Nil {
		return ErrInvalidInput
	}
	ok, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return ErrInternal
	}
	if !ok {
		return ErrJobNotFound
	}
	return nil
}

func (u *Favorites) afterChange(ctx context.Context, userID, jobID uuid.UUID, event string) {
	if u.cache != nil {
		if err := u.cache.Delete(ctx, cache.FavoritesKey(userID.String())); err != nil && u.logger != nil {
			u.logger.Printf("[Favorites] cache invalidate failed user=%s: %v", userID, err)
		}
	}
	if u.notifier != nil {
		if err := u.notifier.Notify(ctx, ws.FavoritesUpdated(userID.String(), jobID.String())); err != nil && u.logger != nil {
			u.logger.Printf("[Favorites] notify failed user=%s: %v", userID, err)
		}
	}
	uid := userID
	u.tracker.Track(ctx, analytics.Event{
		Name:       event,
		UserID:     &uid,
		Properties: map[string]any{"job_id": jobID.String()},
	})
}
