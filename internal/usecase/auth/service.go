package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lawjobs/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Service owns account creation and password checks. Token issuing lives a
// layer up so this package stays free of JWT concerns.
type Service struct {
	users user.Repository
	cost  int

	// decoy is compared against when the email is unknown so that both
	// failure paths pay for one bcrypt comparison.
	decoy user.User
}

func NewService(users user.Repository) *Service {
	return newService(users, bcrypt.DefaultCost)
}

func newService(users user.Repository, cost int) *Service {
	s := &Service{users: users, cost: cost}
	if hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost); err == nil {
		s.decoy = user.User{PasswordHash: string(hash)}
	}
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email, err := user.ParseEmail(in.Email)
	if err != nil {
		return user.User{}, ErrInvalidInput
	}
	name, err := user.CleanFullName(in.FullName)
	if err != nil {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := user.HashPassword(in.Password, s.cost)
	if errors.Is(err, user.ErrWeakPassword) {
		return user.User{}, ErrInvalidInput
	}
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{ID: uuid.New(), Email: email, FullName: name, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return created.Public(), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := user.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrNotFound):
		_ = s.decoy.PasswordMatches(in.Password)
		return user.User{}, ErrInvalidCredentials
	case err != nil:
		return user.User{}, ErrInternal
	}

	if !u.PasswordMatches(in.Password) {
		return user.User{}, ErrInvalidCredentials
	}
	return u.Public(), nil
}
