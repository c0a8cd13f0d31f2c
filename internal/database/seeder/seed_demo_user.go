package seeder

import (
	"context"
	"fmt"

	"lawjobs/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoUserEmail    = "demo@lawjobs.local"
	DemoUserPassword = "demo-password"
)

type DemoUserSeeder struct{}

func (DemoUserSeeder) Name() string { return "demo_user" }

func (DemoUserSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "users", "id", "email", "full_name", "password_hash"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO users (id, email, full_name, password_hash) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(),
		DemoUserEmail,
		"Demo Student",
		string(hash),
	)
	return err
}
