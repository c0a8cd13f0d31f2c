package usecase

import (
	"context"
	"testing"
	"time"

	"lawjobs/internal/domain/user"
	"lawjobs/internal/pkg/jwt"
	ucauth "lawjobs/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byID map[uuid.UUID]user.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{byID: map[uuid.UUID]user.User{}} }

func (r *fakeUserRepo) CreateUser(_ context.Context, u user.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, u user.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func newTestAuth() (*Auth, *fakeUserRepo, jwt.Service) {
	repo := newFakeUserRepo()
	svc := jwt.NewHMACService("lawjobs", "access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthUsecase(repo, svc), repo, svc
}

func TestAuth_RegisterLoginRefresh(t *testing.T) {
	uc, _, svc := newTestAuth()
	ctx := context.Background()

	u, toks, err := uc.Register(ctx, ucauth.RegisterInput{Email: " Student@Law.edu ", FullName: "Ada", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "student@law.edu", u.Email)
	assert.Empty(t, u.PasswordHash)
	assert.NotEmpty(t, toks.AccessToken)

	claims, err := svc.Validate(toks.AccessToken, jwt.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, _, err = uc.Login(ctx, ucauth.LoginInput{Email: "student@law.edu", Password: "wrong-password"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	_, toks, err = uc.Login(ctx, ucauth.LoginInput{Email: "student@law.edu", Password: "longenough"})
	require.NoError(t, err)

	next, err := uc.Refresh(ctx, toks.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)

	_, err = uc.Refresh(ctx, toks.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken, "access token cannot refresh")
}

func TestAuth_RegisterValidation(t *testing.T) {
	uc, _, _ := newTestAuth()
	ctx := context.Background()

	_, _, err := uc.Register(ctx, ucauth.RegisterInput{Email: "not-an-email", Password: "longenough"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidInput)

	_, _, err = uc.Register(ctx, ucauth.RegisterInput{Email: "a@b.co", Password: "short"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidInput)

	_, _, err = uc.Register(ctx, ucauth.RegisterInput{Email: "a@b.co", Password: "longenough"})
	require.NoError(t, err)
	_, _, err = uc.Register(ctx, ucauth.RegisterInput{Email: "A@B.co", Password: "longenough"})
	assert.ErrorIs(t, err, ucauth.ErrEmailAlreadyRegistered)
}

func TestAuth_RefreshUnknownUser(t *testing.T) {
	uc, _, svc := newTestAuth()

	tok, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	_, err = uc.Refresh(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = uc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
