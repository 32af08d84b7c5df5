// Package occupancy derives table occupancy from the live order set.
package occupancy

import (
	"sync"

	"overcooked-tables/floor-svc/internal/domain"
)

type Status string

const (
	Free     Status = "FREE"
	Occupied Status = "OCCUPIED"
)

type Occupancy struct {
	Status Status        `json:"status"`
	Order  *domain.Order `json:"order,omitempty"`
}

// Floor maps table id to its occupancy.
type Floor map[string]Occupancy

// Resolve scans the orders for each table and takes the first active dine-in
// order carrying the table label. When two tables share a label both report
// the same first match.
func Resolve(tables []domain.Table, orders []domain.Order) Floor {
	byLabel := make(map[string]int, len(orders))
	for i := range orders {
		o := &orders[i]
		if !o.IsActiveAt(o.TableNumber) {
			continue
		}
		if _, seen := byLabel[o.TableNumber]; !seen {
			byLabel[o.TableNumber] = i
		}
	}

	floor := make(Floor, len(tables))
	for _, t := range tables {
		idx, ok := byLabel[t.Label]
		if !ok {
			floor[t.ID] = Occupancy{Status: Free}
			continue
		}
		order := orders[idx].Clone()
		floor[t.ID] = Occupancy{Status: Occupied, Order: &order}
	}
	return floor
}

func (f Floor) IsFree(tableID string) bool {
	return f[tableID].Status != Occupied
}

// Key identifies one state of the inputs: the order store generation and the
// table layout generation.
type Key struct {
	Orders uint64
	Tables uint64
}

// Cache keeps the last resolved floor and recomputes only when the key moves.
type Cache struct {
	mu    sync.Mutex
	key   Key
	floor Floor
	valid bool
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Resolve(key Key, tables []domain.Table, orders []domain.Order) Floor {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.key == key {
		return c.floor
	}
	c.floor = Resolve(tables, orders)
	c.key = key
	c.valid = true
	return c.floor
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}
