package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error) { return 1, nil }
func (t *fakeTx) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) Row      { return nil }
func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return t.commitErr
}
func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (d *fakeDB) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (d *fakeDB) QueryRow(context.Context, string, ...any) Row      { return nil }
func (d *fakeDB) Ping(context.Context) error                         { return nil }
func (d *fakeDB) Close() error                                       { return nil }
func (d *fakeDB) SQLDB() *sql.DB                                     { return nil }
func (d *fakeDB) Begin(context.Context) (Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func TestWithTx_Commits(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	err := WithTx(context.Background(), db, func(tx Tx) error {
		_, err := tx.Exec(context.Background(), "UPDATE jobs SET is_active = true")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !db.tx.committed || db.tx.rolledBack {
		t.Fatalf("expected commit only, got %+v", db.tx)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	boom := errors.New("boom")
	db := &fakeDB{tx: &fakeTx{}}
	err := WithTx(context.Background(), db, func(Tx) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if db.tx.committed || !db.tx.rolledBack {
		t.Fatalf("expected rollback only, got %+v", db.tx)
	}
}

func TestWithTx_CommitFailure(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{commitErr: errors.New("serialization failure")}}
	err := WithTx(context.Background(), db, func(Tx) error { return nil })
	if err == nil {
		t.Fatalf("expected commit error")
	}
	if !db.tx.rolledBack {
		t.Fatalf("expected rollback after failed commit")
	}
}

func TestWithTx_NilAndBeginErrors(t *testing.T) {
	if err := WithTx(context.Background(), nil, func(Tx) error { return nil }); !errors.Is(err, ErrNilDB) {
		t.Fatalf("expected ErrNilDB, got %v", err)
	}
	down := errors.New("connection refused")
	err := WithTx(context.Background(), &fakeDB{beginErr: down}, func(Tx) error {
		t.Fatalf("fn must not run")
		return nil
	})
	if !errors.Is(err, down) {
		t.Fatalf("expected begin error, got %v", err)
	}
}
