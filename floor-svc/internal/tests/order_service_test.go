package tests

import (
	"context"
	"errors"
	"testing"

	"overcooked-tables/floor-svc/internal/domain"
	"overcooked-tables/floor-svc/internal/mocks"
	"overcooked-tables/floor-svc/internal/realtime"
	"overcooked-tables/floor-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	guest = domain.Actor{ID: "guest-1", Role: domain.RoleGuest}
	chef  = domain.Actor{ID: "chef-1", Role: domain.RoleChef}
)

var menu = map[string]domain.MenuItem{
	"m1": {ID: "m1", Code: "B01", Name: "Burger", Price: 12.5, IsAvailable: true},
	"m2": {ID: "m2", Code: "D01", Name: "Lemonade", Price: 3, IsAvailable: true},
	"m3": {ID: "m3", Code: "S01", Name: "Soup", Price: 6, IsAvailable: false},
}

var floorTables = []domain.Table{
	{ID: "t1", Label: "1", Shape: domain.ShapeRect, Capacity: 4},
	{ID: "t2", Label: "2", Shape: domain.ShapeRect, Capacity: 2},
}

type orderFixture struct {
	repo      *mocks.OrderRepository
	tables    *mocks.TableRepository
	catalog   *mocks.MenuCatalog
	publisher *mocks.EventPublisher
	store     *realtime.Store
	svc       *service.OrderService
}

func newOrderFixture(t *testing.T, orders ...domain.Order) *orderFixture {
	f := &orderFixture{
		repo:      mocks.NewOrderRepository(t),
		tables:    mocks.NewTableRepository(t),
		catalog:   mocks.NewMenuCatalog(t),
		publisher: mocks.NewEventPublisher(t),
		store:     realtime.NewStore(),
	}
	f.store.Load(orders)
	f.svc = service.NewOrderService(f.repo, f.tables, f.catalog, f.publisher, f.store)
	return f
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	occupant := dineIn("busy", 2)
	occupant.Status = domain.StatusValidated
	occupant.TableNumber = "2"

	tests := []struct {
		name          string
		input         domain.NewOrder
		actor         domain.Actor
		existing      []domain.Order
		prepareMocks  func(f *orderFixture)
		check         func(t *testing.T, order *domain.Order)
		expectedError error
	}{
		{
			name: "guest_dine_in_pending",
			input: domain.NewOrder{
				Type:          domain.TypeDineIn,
				PaymentMethod: domain.PaymentCard,
				Items: []domain.NewOrderItem{
					{MenuItemID: "m1", Quantity: 2, Notes: "no onions"},
					{MenuItemID: "m2", Quantity: 0},
				},
			},
			actor: guest,
			prepareMocks: func(f *orderFixture) {
				f.catalog.On("MenuItems", ctx, []string{"m1"}).Return(menu, nil).Once()
				f.repo.On("CreateOrder", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
				f.publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(e domain.OrderEvent) bool {
					return e.Type == domain.EventOrderCreated
				})).Return(nil).Once()
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, domain.StatusPending, order.Status)
				assert.Equal(t, domain.UnassignedTable, order.TableNumber)
				assert.Equal(t, 1, order.NumberOfPeople)
				assert.Len(t, order.Items, 1)
				assert.Equal(t, "no onions", order.Items[0].Notes)
				assert.InDelta(t, 25.0, order.TotalAmount, 0.001)
				assert.Empty(t, order.ValidatedBy)
			},
		},
		{
			name: "waiter_order_validated_cash",
			input: domain.NewOrder{
				Type:           domain.TypeDineIn,
				PaymentMethod:  domain.PaymentCard,
				NumberOfPeople: 3,
				Items:          []domain.NewOrderItem{{MenuItemID: "m2", Quantity: 3}},
			},
			actor: waiter,
			prepareMocks: func(f *orderFixture) {
				f.catalog.On("MenuItems", ctx, []string{"m2"}).Return(menu, nil).Once()
				f.repo.On("CreateOrder", ctx, mock.Anything).Return(nil).Once()
				f.publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, domain.StatusValidated, order.Status)
				assert.Equal(t, domain.PaymentCash, order.PaymentMethod)
				assert.Equal(t, waiter.ID, order.ValidatedBy)
				assert.Equal(t, 3, order.NumberOfPeople)
			},
		},
		{
			name: "takeaway_gets_sentinel",
			input: domain.NewOrder{
				Type:           domain.TypeTakeaway,
				PaymentMethod:  domain.PaymentTicketCard,
				NumberOfPeople: 4,
				Items:          []domain.NewOrderItem{{MenuItemID: "m1", Quantity: 1}},
			},
			actor: guest,
			prepareMocks: func(f *orderFixture) {
				f.catalog.On("MenuItems", ctx, []string{"m1"}).Return(menu, nil).Once()
				f.repo.On("CreateOrder", ctx, mock.Anything).Return(nil).Once()
				f.publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, domain.TakeawayTable, order.TableNumber)
				assert.Equal(t, 1, order.NumberOfPeople)
			},
		},
		{
			name: "table_picked_at_creation",
			input: domain.NewOrder{
				Type:           domain.TypeDineIn,
				PaymentMethod:  domain.PaymentCash,
				TableNumber:    "1",
				NumberOfPeople: 2,
				Items:          []domain.NewOrderItem{{MenuItemID: "m1", Quantity: 1}},
			},
			actor: guest,
			prepareMocks: func(f *orderFixture) {
				f.tables.On("ListTables", ctx).Return(floorTables, nil).Once()
				f.catalog.On("MenuItems", ctx, []string{"m1"}).Return(menu, nil).Once()
				f.repo.On("CreateOrder", ctx, mock.Anything).Return(nil).Once()
				f.publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, "1", order.TableNumber)
			},
		},
		{
			name: "picked_table_occupied",
			input: domain.NewOrder{
				Type:          domain.TypeDineIn,
				PaymentMethod: domain.PaymentCash,
				TableNumber:   "2",
				Items:         []domain.NewOrderItem{{MenuItemID: "m1", Quantity: 1}},
			},
			actor:    guest,
			existing: []domain.Order{occupant},
			prepareMocks: func(f *orderFixture) {
				f.tables.On("ListTables", ctx).Return(floorTables, nil).Once()
			},
			expectedError: domain.ErrTableOccupied,
		},
		{
			name: "picked_table_too_small",
			input: domain.NewOrder{
				Type:           domain.TypeDineIn,
				PaymentMethod:  domain.PaymentCash,
				TableNumber:    "2",
				NumberOfPeople: 3,
				Items:          []domain.NewOrderItem{{MenuItemID: "m1", Quantity: 1}},
			},
			actor: guest,
			prepareMocks: func(f *orderFixture) {
				f.tables.On("ListTables", ctx).Return(floorTables, nil).Once()
			},
			expectedError: domain.ErrCapacityExceeded,
		},
		{
			name: "empty_cart",
			input: domain.NewOrder{
				Type:          domain.TypeDineIn,
				PaymentMethod: domain.PaymentCard,
				Items:         []domain.NewOrderItem{{MenuItemID: "m1", Quantity: 0}},
			},
			actor:         guest,
			prepareMocks:  func(f *orderFixture) {},
			expectedError: domain.ErrEmptyOrder,
		},
		{
			name: "guest_without_payment",
			input: domain.NewOrder{
				Type:  domain.TypeDineIn,
				Items: []domain.NewOrderItem{{MenuItemID: "m1", Quantity: 1}},
			},
			actor:         guest,
			prepareMocks:  func(f *orderFixture) {},
			expectedError: domain.ErrInvalidOrder,
		},
		{
			name: "unavailable_item",
			input: domain.NewOrder{
				Type:          domain.TypeDineIn,
				PaymentMethod: domain.PaymentCard,
				Items:         []domain.NewOrderItem{{MenuItemID: "m3", Quantity: 1}},
			},
			actor: guest,
			prepareMocks: func(f *orderFixture) {
				f.catalog.On("MenuItems", ctx, []string{"m3"}).Return(menu, nil).Once()
			},
			expectedError: domain.ErrInvalidOrder,
		},
		{
			name: "database_down",
			input: domain.NewOrder{
				Type:          domain.TypeDineIn,
				PaymentMethod: domain.PaymentCard,
				Items:         []domain.NewOrderItem{{MenuItemID: "m1", Quantity: 1}},
			},
			actor: guest,
			prepareMocks: func(f *orderFixture) {
				f.catalog.On("MenuItems", ctx, []string{"m1"}).Return(menu, nil).Once()
				f.repo.On("CreateOrder", ctx, mock.Anything).Return(errors.New("connection reset")).Once()
			},
			expectedError: domain.ErrPersistenceUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newOrderFixture(t, testCase.existing...)
			testCase.prepareMocks(f)

			order, err := f.svc.Create(ctx, testCase.input, testCase.actor)

			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				assert.Nil(t, order)
				assert.Equal(t, len(testCase.existing), f.store.Len())
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, order.ID)
			assert.NoError(t, order.CheckInvariants())
			testCase.check(t, order)

			stored, ok := f.store.Get(order.ID)
			assert.True(t, ok)
			assert.Equal(t, order.Status, stored.Status)
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	validated := dineIn("o1", 2)
	validated.Status = domain.StatusValidated
	validated.TableNumber = "1"

	tests := []struct {
		name          string
		status        domain.OrderStatus
		actor         domain.Actor
		orderID       string
		prepareMocks  func(f *orderFixture)
		expectedError error
	}{
		{
			name:    "chef_marks_ready",
			status:  domain.StatusReady,
			actor:   chef,
			orderID: "o1",
			prepareMocks: func(f *orderFixture) {
				ready := validated.Clone()
				ready.Status = domain.StatusReady
				ready.Version = 2
				f.repo.On("UpdateOrder", ctx, "o1", int64(1), domain.OrderPatch{Status: domain.StatusPtr(domain.StatusReady)}, chef.ID).
					Return(&ready, nil).Once()
				f.publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:          "skip_forward",
			status:        domain.StatusPaid,
			actor:         waiter,
			orderID:       "o1",
			prepareMocks:  func(f *orderFixture) {},
			expectedError: domain.ErrInvalidTransition,
		},
		{
			name:          "backwards",
			status:        domain.StatusPending,
			actor:         waiter,
			orderID:       "o1",
			prepareMocks:  func(f *orderFixture) {},
			expectedError: domain.ErrInvalidTransition,
		},
		{
			name:          "chef_cannot_take_payment",
			status:        domain.StatusPaid,
			actor:         chef,
			orderID:       "o1",
			prepareMocks:  func(f *orderFixture) {},
			expectedError: domain.ErrForbidden,
		},
		{
			name:    "unknown_order",
			status:  domain.StatusReady,
			actor:   waiter,
			orderID: "ghost",
			prepareMocks: func(f *orderFixture) {
				f.repo.On("FetchOrder", ctx, "ghost").Return(nil, domain.ErrOrderNotFound).Once()
			},
			expectedError: domain.ErrOrderNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newOrderFixture(t, validated)
			testCase.prepareMocks(f)

			order, err := f.svc.UpdateStatus(ctx, testCase.orderID, testCase.status, testCase.actor)

			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				got, _ := f.store.Get("o1")
				assert.Equal(t, validated, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.status, order.Status)
			got, _ := f.store.Get("o1")
			assert.Equal(t, testCase.status, got.Status)
		})
	}
}

func TestOrderService_ValidateRecordsWaiter(t *testing.T) {
	ctx := context.Background()
	pending := dineIn("o1", 2)
	f := newOrderFixture(t, pending)

	validated := pending.Clone()
	validated.Status = domain.StatusValidated
	validated.ValidatedBy = waiter.ID
	validated.Version = 2

	f.repo.On("UpdateOrder", ctx, "o1", int64(1), mock.MatchedBy(func(p domain.OrderPatch) bool {
		return p.ValidatedBy != nil && *p.ValidatedBy == waiter.ID
	}), waiter.ID).Return(&validated, nil).Once()
	f.publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

	order, err := f.svc.UpdateStatus(ctx, "o1", domain.StatusValidated, waiter)
	assert.NoError(t, err)
	assert.Equal(t, waiter.ID, order.ValidatedBy)
}

func TestOrderService_StartMains(t *testing.T) {
	ctx := context.Background()

	t.Run("pending_rejected", func(t *testing.T) {
		f := newOrderFixture(t, dineIn("o1", 2))
		_, err := f.svc.StartMains(ctx, "o1", waiter)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("validated_sets_flag", func(t *testing.T) {
		order := dineIn("o1", 2)
		order.Status = domain.StatusValidated
		f := newOrderFixture(t, order)

		started := order.Clone()
		started.MainsStarted = true
		started.Version = 2
		f.repo.On("UpdateOrder", ctx, "o1", int64(1), domain.OrderPatch{MainsStarted: domain.BoolPtr(true)}, chef.ID).
			Return(&started, nil).Once()
		f.publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

		got, err := f.svc.StartMains(ctx, "o1", chef)
		assert.NoError(t, err)
		assert.True(t, got.MainsStarted)
	})

	t.Run("already_started_is_noop", func(t *testing.T) {
		order := dineIn("o1", 2)
		order.Status = domain.StatusReady
		order.MainsStarted = true
		f := newOrderFixture(t, order)

		got, err := f.svc.StartMains(ctx, "o1", waiter)
		assert.NoError(t, err)
		assert.True(t, got.MainsStarted)
	})

	t.Run("guest_forbidden", func(t *testing.T) {
		f := newOrderFixture(t, dineIn("o1", 2))
		_, err := f.svc.StartMains(ctx, "o1", guest)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestOrderService_SetNumberOfPeople(t *testing.T) {
	ctx := context.Background()

	seatedAtTwo := dineIn("o1", 2)
	seatedAtTwo.Status = domain.StatusValidated
	seatedAtTwo.TableNumber = "2"

	t.Run("exceeds_table", func(t *testing.T) {
		f := newOrderFixture(t, seatedAtTwo)
		f.tables.On("ListTables", ctx).Return(floorTables, nil).Once()

		_, err := f.svc.SetNumberOfPeople(ctx, "o1", 3, waiter)
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	})

	t.Run("unassigned_any_size", func(t *testing.T) {
		f := newOrderFixture(t, dineIn("o2", 2))
		updated := dineIn("o2", 8)
		updated.Version = 2
		f.repo.On("UpdateOrder", ctx, "o2", int64(1), domain.OrderPatch{NumberOfPeople: domain.IntPtr(8)}, waiter.ID).
			Return(&updated, nil).Once()
		f.publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

		got, err := f.svc.SetNumberOfPeople(ctx, "o2", 8, waiter)
		assert.NoError(t, err)
		assert.Equal(t, 8, got.NumberOfPeople)
	})

	t.Run("zero_rejected", func(t *testing.T) {
		f := newOrderFixture(t, seatedAtTwo)
		_, err := f.svc.SetNumberOfPeople(ctx, "o1", 0, waiter)
		assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	})
}

func TestOrderService_SetItemPrepared(t *testing.T) {
	ctx := context.Background()
	order := dineIn("o1", 2)
	order.Status = domain.StatusValidated
	f := newOrderFixture(t, order)

	toggled := order.Clone()
	toggled.Items[0].IsPrepared = true

	f.repo.On("UpdateOrderItemPrepared", ctx, "o1-1", true).Return("o1", nil).Once()
	f.repo.On("FetchOrder", ctx, "o1").Return(&toggled, nil).Once()
	f.publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderItemUpdated && e.ItemID == "o1-1"
	})).Return(nil).Once()

	got, err := f.svc.SetItemPrepared(ctx, "o1-1", true, chef)
	assert.NoError(t, err)
	assert.True(t, got.Items[0].IsPrepared)
	assert.Equal(t, domain.StatusValidated, got.Status)

	stored, _ := f.store.Get("o1")
	assert.True(t, stored.Items[0].IsPrepared)

	_, err = f.svc.SetItemPrepared(ctx, "o1-1", false, guest)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOrderService_ActiveOrder(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	order := dineIn("o1", 2)
	f.repo.On("FetchOrders", ctx, domain.OrderFilter{
		CreatedBy: guest.ID,
		Statuses:  []domain.OrderStatus{domain.StatusPending, domain.StatusValidated},
		Limit:     1,
	}).Return([]domain.Order{order}, nil).Once()

	got, err := f.svc.ActiveOrder(ctx, guest.ID)
	assert.NoError(t, err)
	assert.Equal(t, "o1", got.ID)

	f.repo.On("FetchOrders", ctx, mock.Anything).Return([]domain.Order{}, nil).Once()
	_, err = f.svc.ActiveOrder(ctx, "someone-else")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderService_Views(t *testing.T) {
	ctx := context.Background()
	validated := dineIn("v", 2)
	validated.Status = domain.StatusValidated
	validated.TableNumber = "1"

	f := newOrderFixture(t)
	f.repo.On("FetchOrders", ctx, domain.OrderFilter{}).Return([]domain.Order{validated, dineIn("p", 1)}, nil).Once()
	assert.NoError(t, f.svc.Warm(ctx))

	assert.Len(t, f.svc.KitchenQueue(), 1)
	assert.Len(t, f.svc.UnassignedQueue(), 1)
	assert.Len(t, f.svc.WaiterList(domain.TypeDineIn), 2)
	assert.Empty(t, f.svc.WaiterList(domain.TypeTakeaway))
}
