package service

import (
	"context"
	"errors"
	"log"
	"time"

	"overcooked-tables/floor-svc/internal/domain"
	"overcooked-tables/floor-svc/internal/occupancy"
	"overcooked-tables/floor-svc/internal/realtime"

	"github.com/google/uuid"
)

type OrderService struct {
	*committer
	tables  TableRepository
	catalog MenuCatalog
}

func NewOrderService(repo OrderRepository, tables TableRepository, catalog MenuCatalog, publisher EventPublisher, store *realtime.Store) *OrderService {
	return &OrderService{
		committer: &committer{
			repo:      repo,
			store:     store,
			publisher: publisher,
			nowFunc:   time.Now,
		},
		tables:  tables,
		catalog: catalog,
	}
}

// Warm loads the current order set into the local store.
func (s *OrderService) Warm(ctx context.Context) error {
	orders, err := s.repo.FetchOrders(ctx, domain.OrderFilter{})
	if err != nil {
		return err
	}
	s.store.Load(orders)
	log.Printf("Loaded %d orders into the local store", len(orders))
	return nil
}

func (s *OrderService) Create(ctx context.Context, in domain.NewOrder, actor domain.Actor) (*domain.Order, error) {
	if !in.Type.Valid() {
		return nil, domain.ErrInvalidOrder
	}

	items := make([]domain.NewOrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	order := &domain.Order{
		ID:             uuid.NewString(),
		Type:           in.Type,
		Status:         domain.InitialStatus(actor.Role),
		PaymentMethod:  in.PaymentMethod,
		NumberOfPeople: in.NumberOfPeople,
		CreatedBy:      actor.ID,
	}

	if actor.Role.IsStaff() {
		order.PaymentMethod = domain.PaymentCash
	} else if !order.PaymentMethod.Valid() {
		return nil, domain.ErrInvalidOrder
	}
	if order.Status == domain.StatusValidated {
		order.ValidatedBy = actor.ID
	}

	switch order.Type {
	case domain.TypeTakeaway:
		order.TableNumber = domain.TakeawayTable
		order.NumberOfPeople = 1
	case domain.TypeDineIn:
		if order.NumberOfPeople < 0 {
			return nil, domain.ErrInvalidOrder
		}
		if order.NumberOfPeople == 0 {
			order.NumberOfPeople = 1
		}
		order.TableNumber = domain.UnassignedTable
		if !domain.IsReservedLabel(in.TableNumber) {
			if err := s.checkTableAvailable(ctx, in.TableNumber, order); err != nil {
				return nil, err
			}
			order.TableNumber = in.TableNumber
		}
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.MenuItemID
	}
	menu, err := s.catalog.MenuItems(ctx, ids)
	if err != nil {
		return nil, persistenceError(err)
	}

	for _, item := range items {
		menuItem, ok := menu[item.MenuItemID]
		if !ok || !menuItem.IsAvailable {
			return nil, domain.ErrInvalidOrder
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			MenuItemID: item.MenuItemID,
			MenuItem:   &menuItem,
			Quantity:   item.Quantity,
			UnitPrice:  menuItem.Price,
			Notes:      item.Notes,
		})
		order.TotalAmount += menuItem.Price * float64(item.Quantity)
	}

	if err := order.CheckInvariants(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, persistenceError(err)
	}

	s.store.Apply(*order)
	s.publish(ctx, domain.EventOrderCreated, order, "")
	log.Printf("Created %s order %s with status %s", order.Type, order.ID, order.Status)
	return order, nil
}

// checkTableAvailable validates a table chosen at creation time the same way
// an assignment would.
func (s *OrderService) checkTableAvailable(ctx context.Context, label string, order *domain.Order) error {
	tables, err := s.tables.ListTables(ctx)
	if err != nil {
		return persistenceError(err)
	}
	for _, t := range tables {
		if t.Label != label {
			continue
		}
		orders, _ := s.store.Snapshot()
		if !occupancy.Resolve([]domain.Table{t}, orders).IsFree(t.ID) {
			return domain.ErrTableOccupied
		}
		if t.Capacity < order.Party() {
			return domain.ErrCapacityExceeded
		}
		return nil
	}
	return domain.ErrTableNotFound
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	orders, err := s.repo.FetchOrders(ctx, filter)
	if err != nil {
		return nil, persistenceError(err)
	}
	return orders, nil
}

// ActiveOrder returns the newest order of the user that is still waiting or
// in the kitchen.
func (s *OrderService) ActiveOrder(ctx context.Context, userID string) (*domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrOrderNotFound
	}
	orders, err := s.repo.FetchOrders(ctx, domain.OrderFilter{
		CreatedBy: userID,
		Statuses:  []domain.OrderStatus{domain.StatusPending, domain.StatusValidated},
		Limit:     1,
	})
	if err != nil {
		return nil, persistenceError(err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return &orders[0], nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, actor domain.Actor) (*domain.Order, error) {
	if !actor.Role.Allowed(status) {
		return nil, domain.ErrForbidden
	}

	current, err := s.load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			log.Printf("Status update to %s for unknown order %s ignored", status, id)
		}
		return nil, err
	}
	if err := current.CheckTransition(status); err != nil {
		log.Printf("Rejected status change %s -> %s for order %s", current.Status, status, id)
		return nil, err
	}

	patch := domain.OrderPatch{Status: domain.StatusPtr(status)}
	if status == domain.StatusValidated && actor.ID != "" {
		patch.ValidatedBy = domain.StringPtr(actor.ID)
	}
	return s.apply(ctx, current, patch, actor.ID)
}

// StartMains raises the one-way mains flag. Raising it again is a no-op.
func (s *OrderService) StartMains(ctx context.Context, id string, actor domain.Actor) (*domain.Order, error) {
	if actor.Role == domain.RoleGuest {
		return nil, domain.ErrForbidden
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := current.CheckMainsStarted(); err != nil {
		return nil, err
	}
	if current.MainsStarted {
		return &current, nil
	}
	return s.apply(ctx, current, domain.OrderPatch{MainsStarted: domain.BoolPtr(true)}, actor.ID)
}

func (s *OrderService) SetNumberOfPeople(ctx context.Context, id string, people int, actor domain.Actor) (*domain.Order, error) {
	if !actor.Role.CanSeat() {
		return nil, domain.ErrForbidden
	}
	if people <= 0 {
		return nil, domain.ErrInvalidOrder
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Type != domain.TypeDineIn || current.Status == domain.StatusPaid {
		return nil, domain.ErrInvalidTransition
	}
	if current.NumberOfPeople == people {
		return &current, nil
	}

	if !domain.IsUnassigned(current.TableNumber) {
		tables, err := s.tables.ListTables(ctx)
		if err != nil {
			return nil, persistenceError(err)
		}
		for _, t := range tables {
			if t.Label == current.TableNumber && t.Capacity < people {
				return nil, domain.ErrCapacityExceeded
			}
		}
	}

	return s.apply(ctx, current, domain.OrderPatch{NumberOfPeople: domain.IntPtr(people)}, actor.ID)
}

func (s *OrderService) SetItemPrepared(ctx context.Context, itemID string, prepared bool, actor domain.Actor) (*domain.Order, error) {
	if !actor.Role.CanCook() {
		return nil, domain.ErrForbidden
	}

	orderID, err := s.repo.UpdateOrderItemPrepared(ctx, itemID, prepared)
	if err != nil {
		return nil, persistenceError(err)
	}

	order, err := s.repo.FetchOrder(ctx, orderID)
	if err != nil {
		return nil, persistenceError(err)
	}
	s.store.Apply(*order)
	s.publish(ctx, domain.EventOrderItemUpdated, order, itemID)
	return order, nil
}

func (s *OrderService) KitchenQueue() []domain.Order {
	orders, _ := s.store.Snapshot()
	return realtime.KitchenQueue(orders)
}

func (s *OrderService) WaiterList(orderType domain.OrderType) []domain.Order {
	orders, _ := s.store.Snapshot()
	return realtime.WaiterList(orders, orderType)
}

func (s *OrderService) UnassignedQueue() []domain.Order {
	orders, _ := s.store.Snapshot()
	return realtime.UnassignedQueue(orders)
}
