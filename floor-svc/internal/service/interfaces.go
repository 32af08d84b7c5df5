package service

import (
	"context"

	"overcooked-tables/floor-svc/internal/domain"
	"overcooked-tables/floor-svc/internal/storage"
)

type OrderServiceInterface interface {
	Create(ctx context.Context, in domain.NewOrder, actor domain.Actor) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	ActiveOrder(ctx context.Context, userID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, actor domain.Actor) (*domain.Order, error)
	StartMains(ctx context.Context, id string, actor domain.Actor) (*domain.Order, error)
	SetNumberOfPeople(ctx context.Context, id string, people int, actor domain.Actor) (*domain.Order, error)
	SetItemPrepared(ctx context.Context, itemID string, prepared bool, actor domain.Actor) (*domain.Order, error)
	KitchenQueue() []domain.Order
	WaiterList(orderType domain.OrderType) []domain.Order
	UnassignedQueue() []domain.Order
}

type AssignmentServiceInterface interface {
	AttemptAssign(ctx context.Context, orderID, tableID string, actor domain.Actor) (*Outcome, error)
	Undo(ctx context.Context, token string, actor domain.Actor) (*domain.Order, error)
}

type TableServiceInterface interface {
	List(ctx context.Context) ([]domain.Table, error)
	SaveLayout(ctx context.Context, tables []domain.Table, actor domain.Actor) ([]domain.Table, error)
	Floor(ctx context.Context) ([]FloorTable, error)
	QRCode(ctx context.Context, tableID string) ([]byte, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	FetchOrder(ctx context.Context, id string) (*domain.Order, error)
	FetchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, id string, expectedVersion int64, patch domain.OrderPatch, changedBy string) (*domain.Order, error)
	UpdateOrderItemPrepared(ctx context.Context, itemID string, prepared bool) (string, error)
}

type TableRepository interface {
	ListTables(ctx context.Context) ([]domain.Table, error)
	GetTable(ctx context.Context, id string) (*domain.Table, error)
	SaveLayout(ctx context.Context, tables []domain.Table) error
}

type MenuCatalog interface {
	MenuItems(ctx context.Context, ids []string) (map[string]domain.MenuItem, error)
}

type ClaimStore interface {
	Claim(ctx context.Context, tableID, orderID string) (bool, error)
	Release(ctx context.Context, tableID, orderID string) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

var (
	_ OrderServiceInterface      = (*OrderService)(nil)
	_ AssignmentServiceInterface = (*AssignmentService)(nil)
	_ TableServiceInterface      = (*TableService)(nil)

	_ OrderRepository = (*storage.PostgresRepository)(nil)
	_ TableRepository = (*storage.TableRepository)(nil)
	_ MenuCatalog     = (*storage.MenuCatalog)(nil)
	_ ClaimStore      = (*storage.RedisClaims)(nil)
	_ EventPublisher  = (*storage.KafkaPublisher)(nil)
)
