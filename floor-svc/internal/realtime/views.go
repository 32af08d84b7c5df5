package realtime

import (
	"sort"

	"overcooked-tables/floor-svc/internal/domain"
)

// KitchenQueue lists validated orders oldest first.
func KitchenQueue(orders []domain.Order) []domain.Order {
	queue := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == domain.StatusValidated {
			queue = append(queue, o)
		}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].CreatedAt.Before(queue[j].CreatedAt)
	})
	return queue
}

// WaiterList lists orders newest first, optionally narrowed to one type.
func WaiterList(orders []domain.Order, orderType domain.OrderType) []domain.Order {
	list := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if orderType != "" && o.Type != orderType {
			continue
		}
		list = append(list, o)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

// UnassignedQueue lists active dine-in orders still waiting for a table, in
// store order.
func UnassignedQueue(orders []domain.Order) []domain.Order {
	queue := make([]domain.Order, 0)
	for _, o := range orders {
		if o.IsUnassigned() && o.Status != domain.StatusPaid {
			queue = append(queue, o)
		}
	}
	return queue
}
