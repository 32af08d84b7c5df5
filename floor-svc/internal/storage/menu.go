package storage

import (
	"context"
	"database/sql"
	"fmt"

	"overcooked-tables/floor-svc/internal/domain"

	"github.com/lib/pq"
)

// MenuCatalog reads menu items. The catalog is managed elsewhere.
type MenuCatalog struct {
	DB *sql.DB
}

func NewMenuCatalog(db *sql.DB) *MenuCatalog {
	return &MenuCatalog{DB: db}
}

func (c *MenuCatalog) MenuItems(ctx context.Context, ids []string) (map[string]domain.MenuItem, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT id, code, name, price, COALESCE(category, ''), is_available
		FROM menu_items
		WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string]domain.MenuItem, len(ids))
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Code, &item.Name, &item.Price, &item.Category, &item.IsAvailable); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items[item.ID] = item
	}
	return items, rows.Err()
}
