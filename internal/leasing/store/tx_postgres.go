package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"leasegate/pkg/domain"
	"leasegate/pkg/sentinel"
)

// PostgresTxRunner runs the signing transaction against PostgreSQL. A row
// lock on the lease serializes concurrent sign attempts; whoever loses the
// race sees the winner's committed state when the lock is granted.
type PostgresTxRunner struct {
	db *sql.DB
}

// NewPostgresTxRunner constructs the transaction runner for a PostgreSQL
// store.
func NewPostgresTxRunner(db *sql.DB) *PostgresTxRunner {
	return &PostgresTxRunner{db: db}
}

func (t *PostgresTxRunner) RunInTx(ctx context.Context, id domain.LeaseID, fn func(Store) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var locked uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM leases WHERE id = $1 FOR UPDATE`, uuid.UUID(id)).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock lease: %w", err)
	}

	if err := fn(NewPostgresTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
