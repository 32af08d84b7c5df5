package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"overcooked-tables/floor-svc/internal/domain"

	"github.com/lib/pq"
)

// DefaultTables is the floor plan seeded into an empty database.
var DefaultTables = []domain.Table{
	{Label: "1", X: 50, Y: 50, Shape: domain.ShapeRect, Capacity: 4},
	{Label: "2", X: 200, Y: 50, Shape: domain.ShapeRect, Capacity: 2},
	{Label: "3", X: 50, Y: 200, Shape: domain.ShapeRect, Capacity: 6},
	{Label: "4", X: 200, Y: 200, Shape: domain.ShapeRect, Capacity: 4},
	{Label: "5", X: 350, Y: 125, Shape: domain.ShapeRect, Capacity: 2},
}

type TableRepository struct {
	DB *sql.DB
}

func NewTableRepository(db *sql.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) ListTables(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, label, x, y, shape, capacity
		FROM tables
		ORDER BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []domain.Table
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, *table)
	}
	return tables, rows.Err()
}

func (r *TableRepository) GetTable(ctx context.Context, id string) (*domain.Table, error) {
	table, err := scanTable(r.DB.QueryRowContext(ctx, `
		SELECT id, label, x, y, shape, capacity
		FROM tables
		WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTableNotFound
	}
	return table, err
}

// SaveLayout makes the stored floor plan equal to tables: rows are upserted
// by id and tables missing from the list are removed. Label uniqueness is
// checked at commit, so labels may be swapped within one save.
func (r *TableRepository) SaveLayout(ctx context.Context, tables []domain.Table) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ids := make([]string, 0, len(tables))
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tables (id, label, x, y, shape, capacity)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE
			SET label = EXCLUDED.label, x = EXCLUDED.x, y = EXCLUDED.y,
				shape = EXCLUDED.shape, capacity = EXCLUDED.capacity
		`, t.ID, t.Label, t.X, t.Y, string(t.Shape), t.Capacity); err != nil {
			return mapWriteError(err, domain.ErrDuplicateLabel)
		}
		ids = append(ids, t.ID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tables WHERE NOT (id = ANY($1))`, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to remove tables: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return mapWriteError(err, domain.ErrDuplicateLabel)
	}
	return nil
}

func (r *TableRepository) CountTables(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tables`).Scan(&n)
	return n, err
}

func scanTable(row scanner) (*domain.Table, error) {
	var (
		table domain.Table
		shape string
	)
	if err := row.Scan(&table.ID, &table.Label, &table.X, &table.Y, &shape, &table.Capacity); err != nil {
		return nil, err
	}
	table.Shape = domain.TableShape(shape)
	return &table, nil
}
