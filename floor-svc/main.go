package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"overcooked-tables/config"
	httpapi "overcooked-tables/floor-svc/internal/api/http"
	"overcooked-tables/floor-svc/internal/domain"
	"overcooked-tables/floor-svc/internal/realtime"
	"overcooked-tables/floor-svc/internal/service"
	"overcooked-tables/floor-svc/internal/storage"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg, cfg.OrderEventsTopic)
	defer writer.Close()

	if err := storage.EnsureSchema(ctx, db); err != nil {
		log.Fatal("Failed to apply schema:", err)
	}

	orderRepo := storage.NewPostgresRepository(db)
	tableRepo := storage.NewTableRepository(db)
	if err := storage.SeedTables(ctx, tableRepo); err != nil {
		log.Fatal("Failed to seed tables:", err)
	}

	store := realtime.NewStore()
	publisher := storage.NewKafkaPublisher(writer)
	pubsub := storage.NewRedisPubSub(rdb, cfg.OrderSnapshotsChannel)

	orderSvc := service.NewOrderService(orderRepo, tableRepo, storage.NewMenuCatalog(db), publisher, store)
	assignSvc := service.NewAssignmentService(orderRepo, tableRepo, storage.NewRedisClaims(rdb, cfg.ClaimTTL), publisher, store)
	tableSvc := service.NewTableService(tableRepo, store, service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL})

	unsubscribe, err := syncOrders(ctx, pubsub, orderSvc, store)
	if err != nil {
		log.Fatal("Failed to sync orders:", err)
	}
	defer unsubscribe()

	handler := httpapi.NewHandler(orderSvc, assignSvc, tableSvc)
	server := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(handler))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(gctx) })

	if cfg.RelayEnabled {
		reader := config.NewKafkaReader(cfg, cfg.OrderEventsTopic, cfg.RelayGroupID)
		defer reader.Close()
		relay := realtime.NewRelay(reader, orderRepo, pubsub)
		g.Go(func() error { return relay.Start(gctx) })
	}

	if err := g.Wait(); err != nil {
		log.Printf("Floor Service stopped: %v", err)
		return
	}
	log.Println("Floor Service stopped")
}

type snapshotSubscriber interface {
	Subscribe(ctx context.Context, onOrderChanged func(domain.Order)) (func() error, error)
}

type orderWarmer interface {
	Warm(ctx context.Context) error
}

// syncOrders subscribes to order snapshots before the initial fetch, so a
// snapshot published while the fetch runs still reaches the store.
func syncOrders(ctx context.Context, sub snapshotSubscriber, orders orderWarmer, store *realtime.Store) (func() error, error) {
	unsubscribe, err := sub.Subscribe(ctx, realtime.FilterStatus("", func(order domain.Order) {
		store.Apply(order)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to order snapshots: %w", err)
	}

	if err := orders.Warm(ctx); err != nil {
		unsubscribe()
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return unsubscribe, nil
}
