package usecase

import (
	"context"
	"time"

	"lawjobs/internal/analytics"
	"lawjobs/internal/ws"
)

type JobCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type Tracker interface {
	Track(ctx context.Context, e analytics.Event)
}

type EventNotifier interface {
	Notify(ctx context.Context, evt ws.Event) error
}
