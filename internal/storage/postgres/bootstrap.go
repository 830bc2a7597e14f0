package postgres

import (
	"context"
	"fmt"
)

type tableDef struct {
	name string
	sql  string
}

var coreTables = []tableDef{
	{
		name: "users",
		sql: `CREATE TABLE users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			region_code TEXT,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
	},
	{
		name: "households",
		sql: `CREATE TABLE households (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			household_size INTEGER NOT NULL,
			monthly_income INTEGER NOT NULL
		)`,
	},
	{
		name: "transactions",
		sql: `CREATE TABLE transactions (
			id SERIAL PRIMARY KEY,
			household_id INTEGER REFERENCES households(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			amount INTEGER NOT NULL
		)`,
	},
	{
		name: "poverty_aggregate",
		sql: `CREATE TABLE poverty_aggregate (
			id SERIAL PRIMARY KEY,
			region_code TEXT,
			poverty_index NUMERIC
		)`,
	},
}

const (
	regionsWithGeom = `CREATE TABLE regions (
		id SERIAL PRIMARY KEY,
		region_code TEXT UNIQUE,
		name TEXT,
		geom geometry(MultiPolygon, 4326)
	)`
	regionsPlain = `CREATE TABLE regions (
		id SERIAL PRIMARY KEY,
		region_code TEXT UNIQUE,
		name TEXT
	)`
)

// Bootstrap creates any missing table. PostGIS is optional: without it the
// regions table is created without its geometry column.
func (s *PostgresStore) Bootstrap(ctx context.Context) error {
	s.logger.Info("Checking database state")

	postgis, err := s.ensurePostGIS(ctx)
	if err != nil {
		s.logger.Warn("PostGIS unavailable, regions will have no geometry", "error", err)
	}

	tables := append([]tableDef{}, coreTables...)
	regions := tableDef{name: "regions", sql: regionsPlain}
	if postgis {
		regions.sql = regionsWithGeom
	}
	tables = append(tables, regions)

	for _, table := range tables {
		exists, err := s.tableExists(ctx, table.name)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table.name, err)
		}
		if exists {
			s.logger.Debug("Table already exists", "table", table.name)
			continue
		}
		if _, err := s.pool.Exec(ctx, table.sql); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
		s.logger.Info("Created table", "table", table.name)
	}

	s.logger.Info("Database initialization complete")
	return nil
}

func (s *PostgresStore) tableExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`, name).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) ensurePostGIS(ctx context.Context) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'postgis')",
	).Scan(&exists); err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}
	if _, err := s.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS postgis"); err != nil {
		return false, err
	}
	s.logger.Info("PostGIS extension created")
	return true, nil
}
