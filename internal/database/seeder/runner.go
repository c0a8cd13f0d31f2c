package seeder

import (
	"context"
	"fmt"
	"log"

	"lawjobs/internal/database"
)

// Seeder inserts fixture rows. Seeders must be safe to run repeatedly.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Defaults is the fixture set used by `importer -seed`: a demo account and a
// handful of jobs so the board renders before the first import.
func Defaults() []Seeder {
	return []Seeder{
		DemoUserSeeder{},
		SampleJobsSeeder{},
	}
}

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

// Run stops at the first failing seeder.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[seed] %s done", s.Name())
		}
	}
	return nil
}
