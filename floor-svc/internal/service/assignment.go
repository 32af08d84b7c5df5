package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"overcooked-tables/floor-svc/internal/domain"
	"overcooked-tables/floor-svc/internal/occupancy"
	"overcooked-tables/floor-svc/internal/realtime"

	"github.com/google/uuid"
)

// UndoSnapshot captures what a successful drop overwrote. It can be redeemed
// once, and only while the order still carries Version.
type UndoSnapshot struct {
	Token               string             `json:"token"`
	OrderID             string             `json:"order_id"`
	TableID             string             `json:"table_id"`
	TableLabel          string             `json:"table_label"`
	PreviousStatus      domain.OrderStatus `json:"previous_status"`
	PreviousTableNumber string             `json:"previous_table_number"`
	Version             int64              `json:"version"`
	CreatedAt           time.Time          `json:"created_at"`
}

// DefaultUndoTTL bounds how long a drop stays undoable.
const DefaultUndoTTL = 5 * time.Minute

type Outcome struct {
	Order *domain.Order `json:"order"`
	Undo  UndoSnapshot  `json:"undo"`
}

type AssignmentService struct {
	*committer
	tables TableRepository
	claims ClaimStore

	// UndoTTL is how long an unredeemed undo token is kept.
	UndoTTL time.Duration

	mu          sync.Mutex
	tableClaims map[string]string   // table label -> order id
	orderClaims map[string][]string // order id -> claimed labels
	undo        map[string]UndoSnapshot
	latest      map[string]string // order id -> newest undo token
}

func NewAssignmentService(repo OrderRepository, tables TableRepository, claims ClaimStore, publisher EventPublisher, store *realtime.Store) *AssignmentService {
	return &AssignmentService{
		committer: &committer{
			repo:      repo,
			store:     store,
			publisher: publisher,
			nowFunc:   time.Now,
		},
		tables:      tables,
		claims:      claims,
		UndoTTL:     DefaultUndoTTL,
		tableClaims: make(map[string]string),
		orderClaims: make(map[string][]string),
		undo:        make(map[string]UndoSnapshot),
		latest:      make(map[string]string),
	}
}

// AttemptAssign seats a dine-in order at a table. A PENDING order is validated
// in the same write. Drag-and-drop and manual assignment both land here.
func (s *AssignmentService) AttemptAssign(ctx context.Context, orderID, tableID string, actor domain.Actor) (*Outcome, error) {
	if !actor.Role.CanSeat() {
		return nil, domain.ErrForbidden
	}

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	table, err := s.tables.GetTable(ctx, tableID)
	if err != nil {
		return nil, persistenceError(err)
	}

	if order.Type != domain.TypeDineIn || order.Status == domain.StatusPaid {
		return nil, domain.ErrInvalidTransition
	}

	release, err := s.claimLocal(order.ID, table.Label)
	if err != nil {
		log.Printf("Drop of order %s on table %s refused: %v", order.ID, table.Label, err)
		return nil, err
	}
	defer release()

	// Re-read under the claim so the checks see the newest local state.
	if fresh, ok := s.store.Get(order.ID); ok {
		order = fresh
	}

	orders, _ := s.store.Snapshot()
	slot := occupancy.Resolve([]domain.Table{*table}, orders)[table.ID]
	if slot.Status == occupancy.Occupied && slot.Order.ID != order.ID {
		log.Printf("Drop of order %s refused: table %s held by order %s", order.ID, table.Label, slot.Order.ID)
		return nil, domain.ErrTableOccupied
	}
	if table.Capacity < order.Party() {
		log.Printf("Drop of order %s refused: party of %d exceeds capacity %d of table %s",
			order.ID, order.Party(), table.Capacity, table.Label)
		return nil, domain.ErrCapacityExceeded
	}

	if s.claims != nil {
		ok, err := s.claims.Claim(ctx, table.ID, order.ID)
		switch {
		case err != nil:
			log.Printf("Warning: failed to claim table %s in redis: %v", table.ID, err)
		case !ok:
			return nil, domain.ErrTableOccupied
		default:
			defer func() {
				if err := s.claims.Release(context.WithoutCancel(ctx), table.ID, order.ID); err != nil {
					log.Printf("Warning: failed to release claim on table %s: %v", table.ID, err)
				}
			}()
		}
	}

	previousStatus := order.Status
	previousTable := order.TableNumber
	if previousTable == "" {
		previousTable = domain.UnassignedTable
	}

	updated, err := s.apply(ctx, order, order.AssignmentPatch(table.Label, actor.ID), actor.ID)
	if err != nil {
		// Another writer may have taken the table between the check and the write.
		if errors.Is(err, domain.ErrConflict) && !occupancy.Resolve([]domain.Table{*table}, s.snapshot()).IsFree(table.ID) {
			return nil, domain.ErrTableOccupied
		}
		return nil, err
	}

	snapshot := UndoSnapshot{
		Token:               uuid.NewString(),
		OrderID:             updated.ID,
		TableID:             table.ID,
		TableLabel:          table.Label,
		PreviousStatus:      previousStatus,
		PreviousTableNumber: previousTable,
		Version:             updated.Version,
		CreatedAt:           s.nowFunc(),
	}
	s.remember(snapshot)

	log.Printf("Order %s seated at table %s (%s -> %s)", updated.ID, table.Label, previousStatus, updated.Status)
	return &Outcome{Order: updated, Undo: snapshot}, nil
}

// Undo reverts the drop identified by token. A token is consumed by the first
// attempt that reaches a verdict; a later mutation of the order makes it stale.
func (s *AssignmentService) Undo(ctx context.Context, token string, actor domain.Actor) (*domain.Order, error) {
	if !actor.Role.CanSeat() {
		return nil, domain.ErrForbidden
	}

	snapshot, ok := s.take(token)
	if !ok {
		return nil, domain.ErrUndoUnavailable
	}

	labels := []string{snapshot.TableLabel}
	if !domain.IsUnassigned(snapshot.PreviousTableNumber) && snapshot.PreviousTableNumber != snapshot.TableLabel {
		labels = append(labels, snapshot.PreviousTableNumber)
	}
	release, err := s.claimLocal(snapshot.OrderID, labels...)
	if err != nil {
		log.Printf("Undo for order %s deferred: %v", snapshot.OrderID, err)
		s.putBack(snapshot)
		return nil, err
	}
	defer release()

	current, err := s.load(ctx, snapshot.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrPersistenceUnavailable) {
			s.putBack(snapshot)
		}
		return nil, err
	}
	if current.Version != snapshot.Version {
		log.Printf("Undo for order %s refused: version %d, snapshot %d", current.ID, current.Version, snapshot.Version)
		return nil, domain.ErrStaleUndo
	}

	if !domain.IsUnassigned(snapshot.PreviousTableNumber) {
		for _, o := range s.snapshot() {
			if o.ID != current.ID && o.IsActiveAt(snapshot.PreviousTableNumber) {
				return nil, domain.ErrTableOccupied
			}
		}
	}

	patch := domain.OrderPatch{
		Status:      domain.StatusPtr(snapshot.PreviousStatus),
		TableNumber: domain.StringPtr(snapshot.PreviousTableNumber),
	}
	if snapshot.PreviousStatus == domain.StatusPending {
		patch.ValidatedBy = domain.StringPtr("")
	}

	reverted, err := s.apply(ctx, current, patch, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			return nil, domain.ErrStaleUndo
		case errors.Is(err, domain.ErrPersistenceUnavailable):
			s.putBack(snapshot)
		}
		return nil, err
	}

	log.Printf("Undid drop of order %s on table %s", reverted.ID, snapshot.TableLabel)
	return reverted, nil
}

// claimLocal marks the order and every listed table label as in flight for
// this process. Either all are claimed or none.
func (s *AssignmentService) claimLocal(orderID string, labels ...string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orderClaims[orderID]; ok {
		return nil, domain.ErrConflict
	}
	for _, label := range labels {
		if holder, ok := s.tableClaims[label]; ok && holder != orderID {
			return nil, domain.ErrTableOccupied
		}
	}
	for _, label := range labels {
		s.tableClaims[label] = orderID
	}
	s.orderClaims[orderID] = labels

	return func() {
		s.mu.Lock()
		for _, label := range labels {
			delete(s.tableClaims, label)
		}
		delete(s.orderClaims, orderID)
		s.mu.Unlock()
	}, nil
}

// remember stores the snapshot as the only redeemable undo for its order.
func (s *AssignmentService) remember(snapshot UndoSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	if old, ok := s.latest[snapshot.OrderID]; ok && old != snapshot.Token {
		delete(s.undo, old)
	}
	s.undo[snapshot.Token] = snapshot
	s.latest[snapshot.OrderID] = snapshot.Token
}

// putBack returns an unredeemed token unless a newer drop replaced it.
func (s *AssignmentService) putBack(snapshot UndoSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.latest[snapshot.OrderID]; ok {
		return
	}
	s.undo[snapshot.Token] = snapshot
	s.latest[snapshot.OrderID] = snapshot.Token
}

func (s *AssignmentService) take(token string) (UndoSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	snapshot, ok := s.undo[token]
	if !ok {
		return UndoSnapshot{}, false
	}
	s.forgetLocked(snapshot)
	return snapshot, true
}

// pruneLocked drops tokens older than UndoTTL. s.mu must be held.
func (s *AssignmentService) pruneLocked() {
	if s.UndoTTL <= 0 {
		return
	}
	cutoff := s.nowFunc().Add(-s.UndoTTL)
	for _, snapshot := range s.undo {
		if snapshot.CreatedAt.Before(cutoff) {
			s.forgetLocked(snapshot)
		}
	}
}

func (s *AssignmentService) forgetLocked(snapshot UndoSnapshot) {
	delete(s.undo, snapshot.Token)
	if s.latest[snapshot.OrderID] == snapshot.Token {
		delete(s.latest, snapshot.OrderID)
	}
}

func (s *AssignmentService) snapshot() []domain.Order {
	orders, _ := s.store.Snapshot()
	return orders
}
