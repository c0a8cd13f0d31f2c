package dto

import (
	"time"

	"lawjobs/internal/domain/job"
)

type JobDetailResponse struct {
	JobCardResponse
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewJobDetail(j job.Job, favorite bool) JobDetailResponse {
	return JobDetailResponse{
		JobCardResponse: NewJobCard(j.Board(), favorite),
		IsActive:        j.IsActive,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

type FavoriteResponse struct {
	JobID      string `json:"job_id"`
	IsFavorite bool   `json:"is_favorite"`
}
