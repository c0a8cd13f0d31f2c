package usecase

import (
	"context"
	"log"

	"lawjobs/internal/domain/board"

	"github.com/google/uuid"
)

type SessionStore interface {
	Get(ctx context.Context, userID string) (board.FilterState, bool, error)
	Put(ctx context.Context, userID string, st board.FilterState) error
}

// SessionPatch holds the fields a client wants to change. Nil means unchanged.
type SessionPatch struct {
	SearchQuery     *string
	StateFilter     *string
	AreaOfLawFilter *string
	CurrentPage     *int
}

type SessionResult struct {
	Filters     board.FilterState
	ScrollToTop bool
}

type SessionUsecase interface {
	GetSession(ctx context.Context, userID uuid.UUID) (board.FilterState, error)
	UpdateSession(ctx context.Context, userID uuid.UUID, patch SessionPatch) (SessionResult, error)
	ResetSession(ctx context.Context, userID uuid.UUID) (board.FilterState, error)
}

type Session struct {
	store  SessionStore
	logger *log.Logger
}

func NewSessionUsecase(store SessionStore, logger *log.Logger) *Session {
	return &Session{store: store, logger: logger}
}

func (u *Session) GetSession(ctx context.Context, userID uuid.UUID) (board.FilterState, error) {
	if userID == uuid.Nil {
		return board.FilterState{}, ErrUnauthorized
	}
	st, ok, err := u.store.Get(ctx, userID.String())
	if err != nil {
		return board.FilterState{}, ErrInternal
	}
	if !ok {
		return board.DefaultFilterState(), nil
	}
	if st.CurrentPage < 1 {
		st.CurrentPage = 1
	}
	return st, nil
}

// UpdateSession applies patch. Any changed filter moves back to page 1 and
// an explicit page in the same patch is ignored; a page-only change asks the
// client to scroll to the top.
func (u *Session) UpdateSession(ctx context.Context, userID uuid.UUID, patch SessionPatch) (SessionResult, error) {
	if patch.CurrentPage != nil && *patch.CurrentPage < 1 {
		return SessionResult{}, ErrInvalidInput
	}
	cur, err := u.GetSession(ctx, userID)
	if err != nil {
		return SessionResult{}, err
	}

	next := cur
	filterChanged := false
	if patch.SearchQuery != nil && *patch.SearchQuery != cur.SearchQuery {
		next = next.WithSearch(*patch.SearchQuery)
		filterChanged = true
	}
	if patch.StateFilter != nil && *patch.StateFilter != cur.StateFilter {
		next = next.WithState(*patch.StateFilter)
		filterChanged = true
	}
	if patch.AreaOfLawFilter != nil && *patch.AreaOfLawFilter != cur.AreaOfLawFilter {
		next = next.WithArea(*patch.AreaOfLawFilter)
		filterChanged = true
	}

	scroll := false
	if !filterChanged && patch.CurrentPage != nil {
		next, scroll = next.WithPage(*patch.CurrentPage)
	}

	if err := u.store.Put(ctx, userID.String(), next); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Session] save failed user=%s: %v", userID, err)
		}
		return SessionResult{}, ErrInternal
	}
	return SessionResult{Filters: next, ScrollToTop: scroll}, nil
}

func (u *Session) ResetSession(ctx context.Context, userID uuid.UUID) (board.FilterState, error) {
	if userID == uuid.Nil {
		return board.FilterState{}, ErrUnauthorized
	}
	st := board.DefaultFilterState()
	st.Reset()
	if err := u.store.Put(ctx, userID.String(), st); err != nil {
		return board.FilterState{}, ErrInternal
	}
	return st, nil
}
