package handler

import (
	"errors"

	"lawjobs/internal/delivery/http/dto"
	"lawjobs/internal/delivery/http/middleware"
	"lawjobs/internal/pkg/response"
	"lawjobs/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SessionHandler struct {
	uc usecase.SessionUsecase
}

type updateSessionRequest struct {
	SearchQuery     *string `json:"search_query"`
	StateFilter     *string `json:"state_filter"`
	AreaOfLawFilter *string `json:"area_of_law_filter"`
	CurrentPage     *int    `json:"current_page"`
}

func NewSessionHandler(uc usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/session", h.HandleGet)
	r.Put("/session", h.HandleUpdate)
	r.Post("/session/reset", h.HandleReset)
}

func (h *SessionHandler) HandleGet(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return middleware.Unauthorized("Unauthorized", nil)
	}

	st, err := h.uc.GetSession(c.Context(), *userID)
	if err != nil {
		return mapSessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SessionResponse{Filters: dto.NewFilters(st)})
}

func (h *SessionHandler) HandleUpdate(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return middleware.Unauthorized("Unauthorized", nil)
	}

	var req updateSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.BadRequest("Invalid request payload", err)
	}

	res, err := h.uc.UpdateSession(c.Context(), *userID, usecase.SessionPatch{
		SearchQuery:     req.SearchQuery,
		StateFilter:     req.StateFilter,
		AreaOfLawFilter: req.AreaOfLawFilter,
		CurrentPage:     req.CurrentPage,
	})
	if err != nil {
		return mapSessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SessionResponse{
		Filters:     dto.NewFilters(res.Filters),
		ScrollToTop: res.ScrollToTop,
	})
}

func (h *SessionHandler) HandleReset(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return middleware.Unauthorized("Unauthorized", nil)
	}

	st, err := h.uc.ResetSession(c.Context(), *userID)
	if err != nil {
		return mapSessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SessionResponse{Filters: dto.NewFilters(st)})
}

func mapSessionUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.BadRequest("Invalid page", err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.Unauthorized("Unauthorized", err)
	default:
		return middleware.Internal(err)
	}
}
