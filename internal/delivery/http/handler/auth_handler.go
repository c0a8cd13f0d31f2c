package handler

import (
	"errors"
	"strings"

	"lawjobs/internal/delivery/http/dto"
	"lawjobs/internal/delivery/http/middleware"
	"lawjobs/internal/domain/user"
	"lawjobs/internal/pkg/response"
	"lawjobs/internal/usecase"
	ucauth "lawjobs/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadRequest("Bad request", err)
	}

	usr, toks, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Created(c, authResponse(usr, toks))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadRequest("Bad request", err)
	}

	usr, toks, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, authResponse(usr, toks))
}

// Refresh accepts the refresh token as a bearer header or in the body.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		var req refreshRequest
		if len(c.Body()) > 0 {
			if err := c.Bind().Body(&req); err != nil {
				return middleware.BadRequest("Bad request", err)
			}
		}
		tok = strings.TrimSpace(req.RefreshToken)
	}
	if tok == "" {
		return middleware.Unauthorized("Unauthorized", nil)
	}

	toks, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRefreshTokenExpired):
			return middleware.Unauthorized("Refresh token expired", err)
		case errors.Is(err, usecase.ErrInvalidRefreshToken):
			return middleware.Unauthorized("Invalid refresh token", err)
		case errors.Is(err, usecase.ErrUnauthorized):
			return middleware.Unauthorized("Unauthorized", err)
		default:
			return middleware.Internal(err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{
		AccessToken:  toks.AccessToken,
		RefreshToken: toks.RefreshToken,
	})
}

func authResponse(usr user.User, toks usecase.Tokens) dto.AuthResponse {
	profile := dto.NewUserProfile(usr)
	return dto.AuthResponse{User: &profile, AccessToken: toks.AccessToken, RefreshToken: toks.RefreshToken}
}

func mapAuthUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.Conflict("Email already registered", err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.Unauthorized("Invalid email or password", err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.BadRequest("Bad request", err)
	default:
		return middleware.Internal(err)
	}
}
