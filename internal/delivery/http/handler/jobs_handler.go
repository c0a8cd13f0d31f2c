package handler

import (
	"errors"
	"strconv"
	"strings"

	"lawjobs/internal/delivery/http/dto"
	"lawjobs/internal/delivery/http/middleware"
	"lawjobs/internal/domain/board"
	"lawjobs/internal/pkg/response"
	"lawjobs/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	uc usecase.BoardUsecase
}

func NewJobsHandler(uc usecase.BoardUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleListBoard)
	r.Get("/:id", h.HandleGetJob)
}

// HandleListBoard serves GET /jobs?q=&state=&area=&page=&view=.
func (h *JobsHandler) HandleListBoard(c fiber.Ctx) error {
	view, err := board.ParseViewMode(c.Query("view"))
	if err != nil {
		return middleware.BadRequest("Invalid view", err)
	}

	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil || page < 1 {
		return middleware.BadRequest("Invalid page", err)
	}

	res, err := h.uc.ListBoard(c.Context(), usecase.BoardParams{
		View:   view,
		UserID: middleware.UserID(c),
		Filters: board.FilterState{
			SearchQuery:     c.Query("q"),
			StateFilter:     strings.TrimSpace(c.Query("state")),
			AreaOfLawFilter: strings.TrimSpace(c.Query("area")),
			CurrentPage:     page,
		},
		StateProvided: c.Request().URI().QueryArgs().Has("state"),
	})
	if err != nil {
		return mapBoardUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBoardResponse(res))
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid job id", err)
	}

	j, saved, err := h.uc.GetJob(c.Context(), id, middleware.UserID(c))
	if err != nil {
		return mapBoardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobDetail(j, saved))
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func mapBoardUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.BadRequest("Bad request", err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.Unauthorized("Please sign in to view favorite jobs", err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NotFound("Job not found", err)
	default:
		return middleware.Internal(err)
	}
}
