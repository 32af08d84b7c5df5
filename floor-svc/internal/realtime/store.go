// Package realtime keeps the process-wide order set converged with the
// authoritative store.
package realtime

import (
	"reflect"
	"sync"

	"overcooked-tables/floor-svc/internal/domain"
)

// Store is the shared local order set. Inbound snapshots and optimistic local
// writes both go through it; views read copies.
type Store struct {
	mu         sync.RWMutex
	orders     []domain.Order
	index      map[string]int
	generation uint64
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Load installs the initial fetch. Orders the subscription delivered before
// the fetch returned survive: unknown ones stay in front, and a held order
// keeps its version when the fetched copy is older.
func (s *Store) Load(orders []domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fetched := make(map[string]struct{}, len(orders))
	for i := range orders {
		fetched[orders[i].ID] = struct{}{}
	}

	merged := make([]domain.Order, 0, len(orders)+len(s.orders))
	for i := range s.orders {
		if _, ok := fetched[s.orders[i].ID]; !ok {
			merged = append(merged, s.orders[i])
		}
	}
	for i := range orders {
		if j, ok := s.index[orders[i].ID]; ok && s.orders[j].Version > orders[i].Version {
			merged = append(merged, s.orders[j])
			continue
		}
		merged = append(merged, orders[i].Clone())
	}

	s.orders = merged
	s.reindex()
	s.generation++
}

// Apply reconciles an inbound snapshot. A known id is replaced in place, an
// unknown id is prepended. Snapshots older than the held version are dropped.
// It reports whether the set changed.
func (s *Store) Apply(order domain.Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[order.ID]; ok {
		current := &s.orders[i]
		if order.Version < current.Version {
			return false
		}
		if reflect.DeepEqual(*current, order) {
			return false
		}
		s.orders[i] = order.Clone()
		s.generation++
		return true
	}

	s.prepend(order)
	return true
}

// Put writes the order regardless of version. Used for optimistic writes and
// for rolling them back.
func (s *Store) Put(order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[order.ID]; ok {
		s.orders[i] = order.Clone()
		s.generation++
		return
	}
	s.prepend(order)
}

// Restore puts prev back only while the store still holds the optimistic
// value written for it. Anything newer that arrived meanwhile is kept.
func (s *Store) Restore(optimistic, prev domain.Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[optimistic.ID]
	if !ok || !reflect.DeepEqual(s.orders[i], optimistic) {
		return false
	}
	s.orders[i] = prev.Clone()
	s.generation++
	return true
}

func (s *Store) Get(id string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return domain.Order{}, false
	}
	return s.orders[i].Clone(), true
}

// Snapshot returns a copy of the set in store order with its generation.
func (s *Store) Snapshot() ([]domain.Order, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, len(s.orders))
	for i := range s.orders {
		out[i] = s.orders[i].Clone()
	}
	return out, s.generation
}

func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *Store) prepend(order domain.Order) {
	s.orders = append(s.orders, domain.Order{})
	copy(s.orders[1:], s.orders)
	s.orders[0] = order.Clone()
	s.reindex()
	s.generation++
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.orders))
	for i := range s.orders {
		s.index[s.orders[i].ID] = i
	}
}

// FilterStatus wraps a snapshot callback so only orders in the given status
// reach it. An empty status passes everything.
func FilterStatus(status domain.OrderStatus, fn func(domain.Order)) func(domain.Order) {
	if status == "" {
		return fn
	}
	return func(o domain.Order) {
		if o.Status == status {
			fn(o)
		}
	}
}
