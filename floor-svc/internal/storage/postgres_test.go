package storage

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"overcooked-tables/floor-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var orderRowColumns = []string{"id", "table_number", "type", "status", "payment_method", "total_amount",
	"number_of_people", "mains_started", "created_by", "validated_by", "version", "created_at", "updated_at"}

var itemRowColumns = []string{"id", "order_id", "menu_item_id", "quantity", "unit_price", "notes", "is_prepared",
	"code", "name", "price", "category", "is_available"}

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPostgresRepository_UpdateOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	patch := domain.OrderPatch{
		Status:      domain.StatusPtr(domain.StatusValidated),
		TableNumber: domain.StringPtr("5"),
		ValidatedBy: domain.StringPtr("waiter-1"),
	}
	updateQuery := regexp.QuoteMeta("UPDATE orders SET status = $1, table_number = $2, validated_by = $3, version = version + 1, updated_at = now() WHERE id = $4 AND version = $5")

	tests := []struct {
		name          string
		prepareMocks  func(mock sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			prepareMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(updateQuery).
					WithArgs("VALIDATED", "5", "waiter-1", "o1", int64(1)).
					WillReturnRows(sqlmock.NewRows(orderRowColumns).
						AddRow("o1", "5", "DINE_IN", "VALIDATED", "CARD", 25.0, 2, false, "guest-1", "waiter-1", int64(2), now, now))
				mock.ExpectExec("INSERT INTO order_status_log").
					WithArgs("o1", "VALIDATED", "waiter-1").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectQuery("FROM order_items oi").
					WithArgs(pq.Array([]string{"o1"})).
					WillReturnRows(sqlmock.NewRows(itemRowColumns).
						AddRow("i1", "o1", "m1", 2, 12.5, "", false, "B01", "Burger", 12.5, "mains", true))
				mock.ExpectCommit()
			},
		},
		{
			name: "version_mismatch",
			prepareMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(updateQuery).WillReturnRows(sqlmock.NewRows(orderRowColumns))
				mock.ExpectQuery("SELECT EXISTS").WithArgs("o1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			expectedError: domain.ErrConflict,
		},
		{
			name: "missing_order",
			prepareMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(updateQuery).WillReturnRows(sqlmock.NewRows(orderRowColumns))
				mock.ExpectQuery("SELECT EXISTS").WithArgs("o1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectRollback()
			},
			expectedError: domain.ErrOrderNotFound,
		},
		{
			name: "table_taken_by_active_order",
			prepareMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(updateQuery).WillReturnError(&pq.Error{Code: "23505"})
				mock.ExpectRollback()
			},
			expectedError: domain.ErrConflict,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			testCase.prepareMocks(mock)

			order, err := NewPostgresRepository(db).UpdateOrder(ctx, "o1", 1, patch, "waiter-1")

			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.StatusValidated, order.Status)
				assert.Equal(t, "5", order.TableNumber)
				assert.Equal(t, int64(2), order.Version)
				assert.Len(t, order.Items, 1)
				assert.Equal(t, "Burger", order.Items[0].MenuItem.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_UpdateOrderWithoutStatusSkipsLog(t *testing.T) {
	ctx := context.Background()
	db, mock := setupTestDB(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE orders SET mains_started = $1, version = version + 1")).
		WithArgs(true, "o1", int64(4)).
		WillReturnRows(sqlmock.NewRows(orderRowColumns).
			AddRow("o1", "2", "DINE_IN", "VALIDATED", "CASH", 10.0, 2, true, "", "", int64(5), now, now))
	mock.ExpectQuery("FROM order_items oi").WillReturnRows(sqlmock.NewRows(itemRowColumns))
	mock.ExpectCommit()

	order, err := NewPostgresRepository(db).UpdateOrder(ctx, "o1", 4, domain.OrderPatch{MainsStarted: domain.BoolPtr(true)}, "chef-1")
	assert.NoError(t, err)
	assert.True(t, order.MainsStarted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CreateOrder(t *testing.T) {
	ctx := context.Background()
	db, mock := setupTestDB(t)
	now := time.Now()

	order := &domain.Order{
		ID:             "o1",
		TableNumber:    domain.UnassignedTable,
		Type:           domain.TypeDineIn,
		Status:         domain.StatusPending,
		PaymentMethod:  domain.PaymentCard,
		TotalAmount:    28,
		NumberOfPeople: 2,
		CreatedBy:      "guest-1",
		Items: []domain.OrderItem{
			{ID: "i1", MenuItemID: "m1", Quantity: 2, UnitPrice: 12.5},
			{ID: "i2", MenuItemID: "m2", Quantity: 1, UnitPrice: 3, Notes: "no ice"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("o1", "?", "DINE_IN", "PENDING", "CARD", 28.0, 2, false, "guest-1", nil).
		WillReturnRows(sqlmock.NewRows([]string{"version", "created_at", "updated_at"}).AddRow(int64(1), now, now))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs("i1", "o1", "m1", 0, 2, 12.5, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs("i2", "o1", "m2", 1, 1, 3.0, "no ice").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_status_log").
		WithArgs("o1", "PENDING", "guest-1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := NewPostgresRepository(db).CreateOrder(ctx, order)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), order.Version)
	assert.Equal(t, now, order.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_FetchOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("not_found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		mock.ExpectQuery("FROM orders WHERE id = ").WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := NewPostgresRepository(db).FetchOrder(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("with_items", func(t *testing.T) {
		db, mock := setupTestDB(t)
		now := time.Now()
		mock.ExpectQuery("FROM orders WHERE id = ").WithArgs("o1").
			WillReturnRows(sqlmock.NewRows(orderRowColumns).
				AddRow("o1", "Takeaway", "TAKEAWAY", "READY", "CASH", 9.0, 1, false, "", "waiter-1", int64(3), now, now))
		mock.ExpectQuery("FROM order_items oi").
			WillReturnRows(sqlmock.NewRows(itemRowColumns).
				AddRow("i1", "o1", "m1", 1, 6.0, "", true, "S01", "Soup", 6.0, "", true).
				AddRow("i2", "o1", "m2", 1, 3.0, "cold", false, "D01", "Lemonade", 3.0, "drinks", true))

		order, err := NewPostgresRepository(db).FetchOrder(ctx, "o1")
		assert.NoError(t, err)
		assert.Equal(t, domain.TypeTakeaway, order.Type)
		assert.Len(t, order.Items, 2)
		assert.True(t, order.Items[0].IsPrepared)
		assert.Equal(t, "cold", order.Items[1].Notes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_FetchOrders(t *testing.T) {
	ctx := context.Background()
	db, mock := setupTestDB(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE status = ANY($1) AND created_by = $2 ORDER BY created_at DESC LIMIT 1")).
		WithArgs(pq.Array([]string{"PENDING", "VALIDATED"}), "guest-1").
		WillReturnRows(sqlmock.NewRows(orderRowColumns).
			AddRow("o1", "?", "DINE_IN", "PENDING", "CARD", 12.5, 1, false, "guest-1", "", int64(1), now, now))
	mock.ExpectQuery("FROM order_items oi").
		WithArgs(pq.Array([]string{"o1"})).
		WillReturnRows(sqlmock.NewRows(itemRowColumns))

	orders, err := NewPostgresRepository(db).FetchOrders(ctx, domain.OrderFilter{
		CreatedBy: "guest-1",
		Statuses:  []domain.OrderStatus{domain.StatusPending, domain.StatusValidated},
		Limit:     1,
	})
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateOrderItemPrepared(t *testing.T) {
	ctx := context.Background()
	db, mock := setupTestDB(t)
	repo := NewPostgresRepository(db)

	toggleQuery := `(?s)UPDATE order_items SET is_prepared = \$1 WHERE id = \$2 RETURNING order_id.*UPDATE orders SET version = version \+ 1`
	mock.ExpectQuery(toggleQuery).WithArgs(true, "i1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("o1"))
	mock.ExpectQuery(toggleQuery).WithArgs(false, "nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	orderID, err := repo.UpdateOrderItemPrepared(ctx, "i1", true)
	assert.NoError(t, err)
	assert.Equal(t, "o1", orderID)

	_, err = repo.UpdateOrderItemPrepared(ctx, "nope", false)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuCatalog_MenuItems(t *testing.T) {
	ctx := context.Background()
	db, mock := setupTestDB(t)

	mock.ExpectQuery("FROM menu_items").
		WithArgs(pq.Array([]string{"m1", "m9"})).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "price", "category", "is_available"}).
			AddRow("m1", "B01", "Burger", 12.5, "mains", true))

	items, err := NewMenuCatalog(db).MenuItems(ctx, []string{"m1", "m9"})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Burger", items["m1"].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuCatalog_MenuItemsScanError(t *testing.T) {
	ctx := context.Background()
	db, mock := setupTestDB(t)

	mock.ExpectQuery("FROM menu_items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "price", "category", "is_available"}).
			AddRow("m1", "B01", "Burger", "not-a-price", "mains", true))

	items, err := NewMenuCatalog(db).MenuItems(ctx, []string{"m1"})
	assert.Error(t, err)
	assert.Nil(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}
