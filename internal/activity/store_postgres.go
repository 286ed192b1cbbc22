package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"leasegate/pkg/domain"
)

// PostgresStore persists activity entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPostgres constructs a PostgreSQL-backed activity store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresTx constructs an activity store bound to a transaction.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{tx: tx}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) execer() dbExecutor {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, entry *Entry) error {
	const query = `
		INSERT INTO activity_log (id, user_id, action, entity_type, entity_id, details, ip_address, user_agent, device, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.execer().ExecContext(ctx, query,
		entry.ID,
		uuid.UUID(entry.UserID),
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Details,
		entry.IPAddress,
		entry.UserAgent,
		entry.Device,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append activity entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string, limit int) ([]*Entry, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, details, ip_address, user_agent, device, created_at
		FROM activity_log
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	return s.list(ctx, query, args...)
}

func (s *PostgresStore) ListByEntity(ctx context.Context, entityType, entityID string) ([]*Entry, error) {
	const query = `
		SELECT id, user_id, action, entity_type, entity_id, details, ip_address, user_agent, device, created_at
		FROM activity_log
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at ASC
	`
	return s.list(ctx, query, entityType, entityID)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*Entry, error) {
	rows, err := s.execer().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity entries: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		var e Entry
		var userID uuid.UUID
		if err := rows.Scan(&e.ID, &userID, &e.Action, &e.EntityType, &e.EntityID, &e.Details, &e.IPAddress, &e.UserAgent, &e.Device, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		e.UserID = domain.UserID(userID)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity entries: %w", err)
	}
	return out, nil
}
