package postgres

import (
	"context"
	"errors"
	"testing"

	"lawjobs/internal/config"
	"lawjobs/internal/database"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5432",
		DBUser:     "law",
		DBPassword: "secret",
		DBName:     "lawjobs",
		DBSSLMode:  "disable",
	}
	want := "host=db port=5432 user=law password=secret dbname=lawjobs sslmode=disable"
	if got := DSN(cfg); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}

	cfg.URL = "postgres://law:secret@db:5432/lawjobs"
	if got := DSN(cfg); got != cfg.URL {
		t.Fatalf("expected url to win, got %q", got)
	}
}

func TestPool_NilSafe(t *testing.T) {
	var p *Pool
	if err := p.Ping(context.Background()); !errors.Is(err, database.ErrNilDB) {
		t.Fatalf("expected ErrNilDB from Ping, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close on nil pool: %v", err)
	}

	empty := &Pool{}
	if _, err := empty.Exec(context.Background(), "SELECT 1"); !errors.Is(err, database.ErrNilDB) {
		t.Fatalf("expected ErrNilDB from Exec, got %v", err)
	}
	var n int
	if err := empty.QueryRow(context.Background(), "SELECT 1").Scan(&n); !errors.Is(err, database.ErrNilDB) {
		t.Fatalf("expected ErrNilDB from QueryRow, got %v", err)
	}
	if _, err := empty.Begin(context.Background()); !errors.Is(err, database.ErrNilDB) {
		t.Fatalf("expected ErrNilDB from Begin, got %v", err)
	}
}
