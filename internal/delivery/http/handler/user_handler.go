package handler

import (
	"errors"

	"lawjobs/internal/delivery/http/dto"
	"lawjobs/internal/delivery/http/middleware"
	"lawjobs/internal/domain/user"
	"lawjobs/internal/pkg/response"
	"lawjobs/internal/usecase"
	useruc "lawjobs/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return middleware.Unauthorized("Unauthorized", nil)
	}

	u, err := h.uc.GetProfile(c.Context(), *userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfile(u))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return middleware.Unauthorized("Unauthorized", nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadRequest("Invalid request payload", err)
	}

	u, err := h.uc.UpdateProfile(c.Context(), *userID, useruc.UpdateMeInput{
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfile(u))
}

func mapUserUsecaseError(err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return middleware.NotFound("User not found", err)
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.BadRequest("Invalid request payload", err)
	default:
		return middleware.Internal(err)
	}
}
