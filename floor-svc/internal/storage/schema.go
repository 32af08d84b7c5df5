package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"overcooked-tables/floor-svc/internal/domain"

	"github.com/google/uuid"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id UUID PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		price NUMERIC(10, 2) NOT NULL,
		category TEXT,
		is_available BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS tables (
		id UUID PRIMARY KEY,
		label TEXT NOT NULL,
		x INTEGER NOT NULL DEFAULT 0,
		y INTEGER NOT NULL DEFAULT 0,
		shape TEXT NOT NULL DEFAULT 'RECT',
		capacity INTEGER NOT NULL CHECK (capacity > 0),
		CONSTRAINT tables_label_key UNIQUE (label) DEFERRABLE INITIALLY DEFERRED
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		table_number TEXT,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		payment_method TEXT,
		total_amount NUMERIC(10, 2) NOT NULL DEFAULT 0,
		number_of_people INTEGER NOT NULL DEFAULT 1 CHECK (number_of_people > 0),
		mains_started BOOLEAN NOT NULL DEFAULT FALSE,
		created_by TEXT,
		validated_by TEXT,
		version BIGINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS orders_active_table_idx ON orders (table_number)
		WHERE type = 'DINE_IN' AND status <> 'PAID' AND table_number IS NOT NULL AND table_number <> '?'`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id),
		menu_item_id UUID NOT NULL REFERENCES menu_items(id),
		position INTEGER NOT NULL DEFAULT 0,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(10, 2) NOT NULL,
		notes TEXT,
		is_prepared BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS order_status_log (
		id BIGSERIAL PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id),
		status TEXT NOT NULL,
		changed_by TEXT,
		changed_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// SeedTables stores the default floor plan when no table exists yet.
func SeedTables(ctx context.Context, repo *TableRepository) error {
	n, err := repo.CountTables(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tables := make([]domain.Table, len(DefaultTables))
	copy(tables, DefaultTables)
	for i := range tables {
		tables[i].ID = uuid.NewString()
	}
	if err := repo.SaveLayout(ctx, tables); err != nil {
		return err
	}
	log.Printf("Seeded default floor plan with %d tables", len(tables))
	return nil
}
