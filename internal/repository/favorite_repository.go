package repository

import (
	"context"

	"lawjobs/internal/database"
	"lawjobs/internal/domain/job"

	"github.com/google/uuid"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	Remove(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	ListJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error)
}

type PostgresFavoriteRepository struct {
	db database.DB
}

func NewPostgresFavoriteRepository(db database.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

// Add reports whether a new favorite row was created.
func (r *PostgresFavoriteRepository) Add(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`INSERT INTO favorites (user_id, job_id) VALUES ($1, $2) ON CONFLICT (user_id, job_id) DO NOTHING`,
		userID, jobID,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Remove reports whether a favorite row existed.
func (r *PostgresFavoriteRepository) Remove(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListJobs returns the user's favorited jobs, most recently saved first.
// Inactive jobs stay listed so a saved posting does not silently disappear.
func (r *PostgresFavoriteRepository) ListJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT j.id, j.source, j.external_id, j.job_title, j.firm_name, j.job_description, j.location, j.area_of_law,
			j.application_deadline, j.url, j.is_active, j.created_at, j.updated_at
		 FROM favorites f
		 JOIN jobs j ON j.id = f.job_id
		 WHERE f.user_id = $1
		 ORDER BY f.created_at DESC, j.id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}
