package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"overcooked-tables/floor-svc/internal/domain"

	"github.com/lib/pq"
)

const orderColumns = `id, COALESCE(table_number, ''), type, status, COALESCE(payment_method, ''),
	total_amount, number_of_people, mains_started, COALESCE(created_by, ''),
	COALESCE(validated_by, ''), version, created_at, updated_at`

const uniqueViolation = "23505"

type scanner interface {
	Scan(dest ...interface{}) error
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, table_number, type, status, payment_method, total_amount,
			number_of_people, mains_started, created_by, validated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING version, created_at, updated_at
	`, order.ID, nullString(order.TableNumber), string(order.Type), string(order.Status),
		nullString(string(order.PaymentMethod)), order.TotalAmount, order.NumberOfPeople,
		order.MainsStarted, nullString(order.CreatedBy), nullString(order.ValidatedBy)).
		Scan(&order.Version, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return mapWriteError(err, domain.ErrConflict)
	}

	for i, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, menu_item_id, position, quantity, unit_price, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, item.ID, order.ID, item.MenuItemID, i, item.Quantity, item.UnitPrice, nullString(item.Notes)); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := logStatus(ctx, tx, order.ID, order.Status, order.CreatedBy); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) FetchOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	items, err := loadItems(ctx, r.DB, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *PostgresRepository) FetchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		conds = append(conds, fmt.Sprintf("created_by = $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	items, err := loadItems(ctx, r.DB, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// UpdateOrder applies the patch only if the stored version still equals
// expectedVersion, bumping the version on success.
func (r *PostgresRepository) UpdateOrder(ctx context.Context, id string, expectedVersion int64, patch domain.OrderPatch, changedBy string) (*domain.Order, error) {
	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.TableNumber != nil {
		set("table_number", nullString(*patch.TableNumber))
	}
	if patch.NumberOfPeople != nil {
		set("number_of_people", *patch.NumberOfPeople)
	}
	if patch.MainsStarted != nil {
		set("mains_started", *patch.MainsStarted)
	}
	if patch.ValidatedBy != nil {
		set("validated_by", nullString(*patch.ValidatedBy))
	}
	sets = append(sets, "version = version + 1", "updated_at = now()")
	args = append(args, id, expectedVersion)

	query := fmt.Sprintf(`UPDATE orders SET %s WHERE id = $%d AND version = $%d RETURNING `+orderColumns,
		strings.Join(sets, ", "), len(args)-1, len(args))

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	order, err := scanOrder(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
				return nil, fmt.Errorf("failed to check order: %w", err)
			}
			if !exists {
				return nil, domain.ErrOrderNotFound
			}
			return nil, domain.ErrConflict
		}
		return nil, mapWriteError(err, domain.ErrConflict)
	}

	if patch.Status != nil {
		if err := logStatus(ctx, tx, id, *patch.Status, changedBy); err != nil {
			return nil, err
		}
	}

	items, err := loadItems(ctx, tx, []string{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]

	if err := tx.Commit(); err != nil {
		return nil, mapWriteError(err, domain.ErrConflict)
	}
	return order, nil
}

// UpdateOrderItemPrepared flips the prepared flag and returns the owning
// order id. The order's version moves with it, so undo tokens and CAS
// writes taken before the toggle go stale.
func (r *PostgresRepository) UpdateOrderItemPrepared(ctx context.Context, itemID string, prepared bool) (string, error) {
	var orderID string
	err := r.DB.QueryRowContext(ctx, `
		WITH item AS (
			UPDATE order_items SET is_prepared = $1 WHERE id = $2 RETURNING order_id
		)
		UPDATE orders SET version = version + 1, updated_at = now()
		FROM item
		WHERE orders.id = item.order_id
		RETURNING orders.id
	`, prepared, itemID).Scan(&orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrItemNotFound
	}
	return orderID, err
}

func logStatus(ctx context.Context, tx *sql.Tx, orderID string, status domain.OrderStatus, changedBy string) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, now())
	`, orderID, string(status), nullString(changedBy)); err != nil {
		return fmt.Errorf("failed to log status: %w", err)
	}
	return nil
}

func scanOrder(row scanner) (*domain.Order, error) {
	var (
		order         domain.Order
		orderType     string
		status        string
		paymentMethod string
	)
	if err := row.Scan(&order.ID, &order.TableNumber, &orderType, &status, &paymentMethod,
		&order.TotalAmount, &order.NumberOfPeople, &order.MainsStarted, &order.CreatedBy,
		&order.ValidatedBy, &order.Version, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	order.Type = domain.OrderType(orderType)
	order.Status = domain.OrderStatus(status)
	order.PaymentMethod = domain.PaymentMethod(paymentMethod)
	return &order, nil
}

func loadItems(ctx context.Context, q queryer, orderIDs []string) (map[string][]domain.OrderItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.unit_price,
			COALESCE(oi.notes, ''), oi.is_prepared,
			m.code, m.name, m.price, COALESCE(m.category, ''), m.is_available
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.position
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			item domain.OrderItem
			menu domain.MenuItem
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.UnitPrice,
			&item.Notes, &item.IsPrepared,
			&menu.Code, &menu.Name, &menu.Price, &menu.Category, &menu.IsAvailable); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		menu.ID = item.MenuItemID
		item.MenuItem = &menu
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, rows.Err()
}

func mapWriteError(err error, onUnique error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return onUnique
	}
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
