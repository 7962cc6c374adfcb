package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ecomarket/storefront-core/database"
	"github.com/ecomarket/storefront-core/internal/model"
)

var _ model.KeyValue = (*Store)(nil)

// Store is a postgres-backed key-value store over a single kv_slots table.
// It goes through database/sql on the pgx stdlib driver so the same code
// path serves unit tests (sqlmock) and real connections.
type Store struct {
	db *sql.DB
}

// New opens a connection pool for the DSN, verifies it with a ping and runs
// the schema migrations.
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing handle without migrating, mainly for tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Read returns the value for key or model.ErrNotFound.
func (s *Store) Read(ctx context.Context, key string) (string, error) {
	var value string
	query := `SELECT value FROM kv_slots WHERE key = $1`

	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", model.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return value, nil
}

// Write upserts value under key.
func (s *Store) Write(ctx context.Context, key string, value string) error {
	query := `INSERT INTO kv_slots (key, value) VALUES ($1, $2)
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_slots WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
