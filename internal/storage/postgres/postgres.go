// Package postgres provides the production storage.Store backed by PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdg1/budgetcoach/internal/storage"
)

// Postgres SQLSTATE codes mapped to storage sentinels.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// Ensure PostgresStore implements storage.Store
var _ storage.Store = (*PostgresStore)(nil)

// PostgresStore implements storage.Store on a pgx connection pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New connects to databaseURL, verifies the connection and bootstraps the schema.
// Bootstrap problems are logged, not returned: the API keeps serving whatever
// tables already exist.
func New(ctx context.Context, databaseURL string, logger *slog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Database connected successfully")

	s := &PostgresStore{pool: pool, logger: logger}
	if err := s.Bootstrap(ctx); err != nil {
		logger.Error("Database initialization failed, continuing without it", "error", err)
	}
	return s, nil
}

// Backend implements storage.Store.
func (s *PostgresStore) Backend() string { return "postgres" }

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
