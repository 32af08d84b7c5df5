package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"overcooked-tables/floor-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type OrderFetcher interface {
	FetchOrder(ctx context.Context, id string) (*domain.Order, error)
}

type Broadcaster interface {
	BroadcastOrder(ctx context.Context, order domain.Order) error
}

// Relay turns order change events into full order snapshots: every event
// triggers a refetch of the complete order, which is then broadcast.
type Relay struct {
	Reader      *kafka.Reader
	Orders      OrderFetcher
	Broadcaster Broadcaster
}

func NewRelay(reader *kafka.Reader, orders OrderFetcher, broadcaster Broadcaster) *Relay {
	return &Relay{
		Reader:      reader,
		Orders:      orders,
		Broadcaster: broadcaster,
	}
}

func (r *Relay) Start(ctx context.Context) error {
	log.Println("Starting order snapshot relay...")
	for {
		message, err := r.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		r.ProcessEvent(ctx, event)
	}
}

func (r *Relay) ProcessEvent(ctx context.Context, event domain.OrderEvent) {
	switch event.Type {
	case domain.EventOrderCreated, domain.EventOrderUpdated, domain.EventOrderItemUpdated:
	default:
		return
	}
	if event.OrderID == "" {
		return
	}

	order, err := r.Orders.FetchOrder(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			log.Printf("Skipping %s for unknown order %s", event.Type, event.OrderID)
			return
		}
		log.Printf("Error refetching order %s: %v", event.OrderID, err)
		return
	}

	if err := r.Broadcaster.BroadcastOrder(ctx, *order); err != nil {
		log.Printf("Error broadcasting order %s: %v", event.OrderID, err)
		return
	}
}
