package usecase

import (
	"context"
	"errors"
	"testing"

	"lawjobs/internal/domain/board"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestSession_DefaultsWhenMissing(t *testing.T) {
	uc := NewSessionUsecase(newFakeSessions(), nil)

	st, err := uc.GetSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, board.DefaultFilterState(), st)

	_, err = uc.GetSession(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSession_FilterChangeResetsPage(t *testing.T) {
	store := newFakeSessions()
	uid := uuid.New()
	store.m[uid.String()] = board.FilterState{StateFilter: "Georgia", CurrentPage: 3}
	uc := NewSessionUsecase(store, nil)

	res, err := uc.UpdateSession(context.Background(), uid, SessionPatch{
		AreaOfLawFilter: strPtr("Tax"),
		CurrentPage:     intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Filters.CurrentPage)
	assert.Equal(t, "Tax", res.Filters.AreaOfLawFilter)
	assert.Equal(t, "Georgia", res.Filters.StateFilter)
	assert.False(t, res.ScrollToTop)
	assert.Equal(t, res.Filters, store.m[uid.String()])
}

func TestSession_PageChangeScrolls(t *testing.T) {
	store := newFakeSessions()
	uid := uuid.New()
	store.m[uid.String()] = board.FilterState{CurrentPage: 1}
	uc := NewSessionUsecase(store, nil)

	res, err := uc.UpdateSession(context.Background(), uid, SessionPatch{CurrentPage: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Filters.CurrentPage)
	assert.True(t, res.ScrollToTop)

	res, err = uc.UpdateSession(context.Background(), uid, SessionPatch{CurrentPage: intPtr(2)})
	require.NoError(t, err)
	assert.True(t, res.ScrollToTop, "same page is still a navigation")

	// same filter value is not a change
	res, err = uc.UpdateSession(context.Background(), uid, SessionPatch{SearchQuery: strPtr(""), CurrentPage: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Filters.CurrentPage)
}

func TestSession_InvalidPage(t *testing.T) {
	uc := NewSessionUsecase(newFakeSessions(), nil)
	_, err := uc.UpdateSession(context.Background(), uuid.New(), SessionPatch{CurrentPage: intPtr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSession_Reset(t *testing.T) {
	store := newFakeSessions()
	uid := uuid.New()
	store.m[uid.String()] = board.FilterState{SearchQuery: "tax", StateFilter: "Georgia", AreaOfLawFilter: "Tax", CurrentPage: 4}
	uc := NewSessionUsecase(store, nil)

	st, err := uc.ResetSession(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, board.FilterState{CurrentPage: 1}, st)
	assert.Equal(t, st, store.m[uid.String()])
}

func TestSession_StoreFailure(t *testing.T) {
	store := newFakeSessions()
	store.err = errors.New("redis down")
	uc := NewSessionUsecase(store, nil)

	_, err := uc.GetSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}
