package repository

import (
	"context"
	"encoding/json"
	"time"

	"lawjobs/internal/database"

	"github.com/google/uuid"
)

type AnalyticsEvent struct {
	Name       string
	UserID     *uuid.UUID
	Properties map[string]any
	CreatedAt  time.Time
}

type AnalyticsEventRepository interface {
	Insert(ctx context.Context, e AnalyticsEvent) error
}

type PostgresAnalyticsEventRepository struct {
	db database.DB
}

func NewPostgresAnalyticsEventRepository(db database.DB) *PostgresAnalyticsEventRepository {
	return &PostgresAnalyticsEventRepository{db: db}
}

func (r *PostgresAnalyticsEventRepository) Insert(ctx context.Context, e AnalyticsEvent) error {
	props := e.Properties
	if props == nil {
		props = map[string]any{}
	}
	b, err := json.Marshal(props)
	if err != nil {
		return err
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO analytics_events (name, user_id, properties, created_at) VALUES ($1, $2, $3, $4)`,
		e.Name, e.UserID, b, createdAt,
	)
	return err
}
