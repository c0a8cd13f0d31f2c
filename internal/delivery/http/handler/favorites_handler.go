package handler

import (
	"errors"

	"lawjobs/internal/delivery/http/dto"
	"lawjobs/internal/delivery/http/middleware"
	"lawjobs/internal/pkg/response"
	"lawjobs/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type FavoritesHandler struct {
	uc usecase.FavoritesUsecase
}

func NewFavoritesHandler(uc usecase.FavoritesUsecase) *FavoritesHandler {
	return &FavoritesHandler{uc: uc}
}

// RegisterRoutes expects the optional auth middleware so anonymous callers
// get the sign-in prompt instead of a bare 401.
func (h *FavoritesHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:jobId", h.HandleAdd)
	r.Delete("/:jobId", h.HandleRemove)
}

func (h *FavoritesHandler) HandleAdd(c fiber.Ctx) error {
	return h.toggle(c, true)
}

func (h *FavoritesHandler) HandleRemove(c fiber.Ctx) error {
	return h.toggle(c, false)
}

func (h *FavoritesHandler) toggle(c fiber.Ctx, save bool) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return middleware.Unauthorized(usecase.MessageFavoriteSignIn, nil)
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.BadRequest("Invalid job id", err)
	}

	var res usecase.FavoriteResult
	failMsg := usecase.MessageFavoriteSaveFailed
	if save {
		res, err = h.uc.AddFavorite(c.Context(), userID, jobID)
	} else {
		failMsg = usecase.MessageFavoriteRemoveFailed
		res, err = h.uc.RemoveFavorite(c.Context(), userID, jobID)
	}
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnauthorized):
			return middleware.Unauthorized(usecase.MessageFavoriteSignIn, err)
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.BadRequest("Invalid job id", err)
		case errors.Is(err, usecase.ErrJobNotFound):
			return middleware.NotFound("Job not found", err)
		case errors.Is(err, usecase.ErrFavoriteNotFound):
			return middleware.NotFound("Favorite not found", err)
		default:
			return middleware.Exposed(fiber.StatusInternalServerError, failMsg, err)
		}
	}

	return response.Success(c, fiber.StatusOK, res.Message, dto.FavoriteResponse{
		JobID:      res.JobID.String(),
		IsFavorite: res.Saved,
	})
}
