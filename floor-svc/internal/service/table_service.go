package service

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"sync"

	"overcooked-tables/floor-svc/internal/domain"
	"overcooked-tables/floor-svc/internal/occupancy"
	"overcooked-tables/floor-svc/internal/realtime"

	"github.com/google/uuid"
)

// FloorTable is one table of the floor plan with its derived occupancy.
type FloorTable struct {
	domain.Table
	Status occupancy.Status `json:"status"`
	Order  *domain.Order    `json:"order,omitempty"`
}

type TableService struct {
	repo  TableRepository
	store *realtime.Store
	qr    QRGenerator
	cache *occupancy.Cache

	mu         sync.Mutex
	layout     []domain.Table
	generation uint64
}

func NewTableService(repo TableRepository, store *realtime.Store, qr QRGenerator) *TableService {
	return &TableService{
		repo:  repo,
		store: store,
		qr:    qr,
		cache: occupancy.NewCache(),
	}
}

func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	tables, _, err := s.refresh(ctx)
	return tables, err
}

// refresh reloads the layout and bumps the generation when it changed.
func (s *TableService) refresh(ctx context.Context) ([]domain.Table, uint64, error) {
	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, 0, persistenceError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !reflect.DeepEqual(s.layout, tables) {
		s.layout = tables
		s.generation++
	}
	out := make([]domain.Table, len(s.layout))
	copy(out, s.layout)
	return out, s.generation, nil
}

// SaveLayout replaces the floor plan. Tables without an id are new. A table
// holding an active order cannot be removed, renamed or shrunk below its party.
func (s *TableService) SaveLayout(ctx context.Context, tables []domain.Table, actor domain.Actor) ([]domain.Table, error) {
	if actor.Role != "" && !actor.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}

	labels := make(map[string]struct{}, len(tables))
	next := make([]domain.Table, len(tables))
	for i, t := range tables {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: table %q", err, t.Label)
		}
		if _, dup := labels[t.Label]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateLabel, t.Label)
		}
		labels[t.Label] = struct{}{}
		next[i] = t
	}

	current, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, persistenceError(err)
	}
	orders, _ := s.store.Snapshot()
	floor := occupancy.Resolve(current, orders)

	byID := make(map[string]domain.Table, len(next))
	for _, t := range next {
		byID[t.ID] = t
	}
	for _, old := range current {
		slot := floor[old.ID]
		if slot.Status != occupancy.Occupied {
			continue
		}
		updated, kept := byID[old.ID]
		if !kept || updated.Label != old.Label {
			log.Printf("Layout save refused: table %s is held by order %s", old.Label, slot.Order.ID)
			return nil, domain.ErrTableOccupied
		}
		if updated.Capacity < slot.Order.Party() {
			return nil, domain.ErrCapacityExceeded
		}
	}

	if err := s.repo.SaveLayout(ctx, next); err != nil {
		return nil, persistenceError(err)
	}
	s.cache.Invalidate()

	saved, _, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("Saved floor layout with %d tables", len(saved))
	return saved, nil
}

// Floor joins the layout with the occupancy derived from the local order set.
func (s *TableService) Floor(ctx context.Context) ([]FloorTable, error) {
	tables, tablesGen, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	orders, ordersGen := s.store.Snapshot()
	floor := s.cache.Resolve(occupancy.Key{Orders: ordersGen, Tables: tablesGen}, tables, orders)

	out := make([]FloorTable, 0, len(tables))
	for _, t := range tables {
		slot := floor[t.ID]
		status := slot.Status
		if status == "" {
			status = occupancy.Free
		}
		out = append(out, FloorTable{Table: t, Status: status, Order: slot.Order})
	}
	return out, nil
}

func (s *TableService) QRCode(ctx context.Context, tableID string) ([]byte, error) {
	table, err := s.repo.GetTable(ctx, tableID)
	if err != nil {
		return nil, persistenceError(err)
	}
	png, err := s.qr.Generate(table.Label)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
