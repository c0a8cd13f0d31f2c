package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lawjobs/internal/database"
	"lawjobs/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	ListActive(ctx context.Context) ([]job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Upsert(ctx context.Context, source string, records []job.Record, seenAt time.Time) (int, error)
	DeactivateMissing(ctx context.Context, source string, seenBefore time.Time) (int, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, source, external_id, job_title, firm_name, job_description, location, area_of_law,
	application_deadline, url, is_active, created_at, updated_at`

func (r *PostgresJobRepository) ListActive(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE is_active = true
		 ORDER BY created_at DESC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

// Upsert writes all records of one source in a single transaction and marks
// them seen at seenAt. It returns the number of inserted or changed rows.
func (r *PostgresJobRepository) Upsert(ctx context.Context, source string, records []job.Record, seenAt time.Time) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	changed := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, rec := range records {
			n, err := upsertRecord(ctx, tx, source, rec, seenAt)
			if err != nil {
				return err
			}
			changed += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

func upsertRecord(ctx context.Context, q database.Querier, source string, rec job.Record, seenAt time.Time) (int, error) {
	var changed bool
	err := q.QueryRow(ctx,
		`INSERT INTO jobs (id, source, external_id, job_title, firm_name, job_description, location,
			area_of_law, application_deadline, url, is_active, last_seen_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true, $11)
		 ON CONFLICT (source, external_id) DO UPDATE SET
			job_title = EXCLUDED.job_title,
			firm_name = EXCLUDED.firm_name,
			job_description = EXCLUDED.job_description,
			location = EXCLUDED.location,
			area_of_law = EXCLUDED.area_of_law,
			application_deadline = EXCLUDED.application_deadline,
			url = EXCLUDED.url,
			is_active = true,
			last_seen_at = EXCLUDED.last_seen_at,
			updated_at = CASE WHEN (jobs.job_title, jobs.firm_name, jobs.job_description, jobs.location,
					jobs.area_of_law, jobs.application_deadline, jobs.url, jobs.is_active)
				IS DISTINCT FROM (EXCLUDED.job_title, EXCLUDED.firm_name, EXCLUDED.job_description, EXCLUDED.location,
					EXCLUDED.area_of_law, EXCLUDED.application_deadline, EXCLUDED.url, true)
				THEN now() ELSE jobs.updated_at END
		 RETURNING (xmax = 0) OR updated_at = now()`,
		uuid.New(), source, rec.ExternalID, rec.Title, rec.FirmName, rec.Description, rec.Location,
		rec.AreaOfLaw, rec.ApplicationDeadline, rec.URL, seenAt,
	).Scan(&changed)
	if err != nil || !changed {
		return 0, err
	}
	return 1, nil
}

func (r *PostgresJobRepository) DeactivateMissing(ctx context.Context, source string, seenBefore time.Time) (int, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET is_active = false, updated_at = now()
		 WHERE source = $1 AND is_active = true AND last_seen_at < $2`,
		source, seenBefore,
	)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.Source, &j.ExternalID, &j.Title, &j.FirmName, &j.Description, &j.Location, &j.AreaOfLaw,
		&j.ApplicationDeadline, &j.URL, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
	)
	return j, err
}

func scanJobs(rows database.Rows) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
