package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrJobNotFound         = errors.New("job not found")
	ErrFavoriteNotFound    = errors.New("favorite not found")
	ErrInternal            = errors.New("internal error")
)
