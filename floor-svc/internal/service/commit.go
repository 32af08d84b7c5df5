package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"overcooked-tables/floor-svc/internal/domain"
	"overcooked-tables/floor-svc/internal/realtime"
)

// committer is the single write path for order mutations: optimistic local
// apply, versioned write, then confirm or roll back.
type committer struct {
	repo      OrderRepository
	store     *realtime.Store
	publisher EventPublisher
	nowFunc   func() time.Time
}

func (c *committer) load(ctx context.Context, id string) (domain.Order, error) {
	if order, ok := c.store.Get(id); ok {
		return order, nil
	}
	order, err := c.repo.FetchOrder(ctx, id)
	if err != nil {
		return domain.Order{}, persistenceError(err)
	}
	c.store.Apply(*order)
	return *order, nil
}

func (c *committer) apply(ctx context.Context, current domain.Order, patch domain.OrderPatch, changedBy string) (*domain.Order, error) {
	optimistic := current.Apply(patch)
	optimistic.Version = current.Version + 1
	c.store.Put(optimistic)

	updated, err := c.repo.UpdateOrder(ctx, current.ID, current.Version, patch, changedBy)
	if err != nil {
		c.store.Restore(optimistic, current)
		err = persistenceError(err)
		if errors.Is(err, domain.ErrConflict) {
			c.resync(ctx, current.ID)
		}
		log.Printf("Rolled back order %s: %v", current.ID, err)
		return nil, err
	}

	c.store.Apply(*updated)
	c.publish(ctx, domain.EventOrderUpdated, updated, "")
	return updated, nil
}

// resync pulls the authoritative order after a lost race so the next attempt
// starts from the winning version.
func (c *committer) resync(ctx context.Context, id string) {
	order, err := c.repo.FetchOrder(ctx, id)
	if err != nil {
		log.Printf("Warning: failed to resync order %s: %v", id, err)
		return
	}
	c.store.Apply(*order)
}

func (c *committer) publish(ctx context.Context, eventType string, order *domain.Order, itemID string) {
	if c.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		ItemID:    itemID,
		Version:   order.Version,
		Timestamp: c.nowFunc(),
	}
	if err := c.publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s for order %s: %v", eventType, order.ID, err)
	}
}

// persistenceError keeps domain sentinels and folds anything else into
// ErrPersistenceUnavailable.
func persistenceError(err error) error {
	for _, known := range []error{
		domain.ErrOrderNotFound,
		domain.ErrTableNotFound,
		domain.ErrItemNotFound,
		domain.ErrConflict,
		domain.ErrDuplicateLabel,
		domain.ErrPersistenceUnavailable,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
}
