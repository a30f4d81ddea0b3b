package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/kv"
	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/adapter/memory"
	"github.com/YelzhanWeb/tableorder/internal/adapter/postgres"
	"github.com/YelzhanWeb/tableorder/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/tableorder/internal/app/cart"
	"github.com/YelzhanWeb/tableorder/internal/app/catalog"
	"github.com/YelzhanWeb/tableorder/internal/app/checkout"
	"github.com/YelzhanWeb/tableorder/internal/app/order"
	"github.com/YelzhanWeb/tableorder/internal/app/payment"
	"github.com/YelzhanWeb/tableorder/internal/app/revenue"
	"github.com/YelzhanWeb/tableorder/internal/app/session"
	"github.com/YelzhanWeb/tableorder/internal/app/tracking"
	"github.com/YelzhanWeb/tableorder/internal/config"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"

	amqpAdapter "github.com/YelzhanWeb/tableorder/internal/adapter/amqp"
	httpAdapter "github.com/YelzhanWeb/tableorder/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "api", "Service mode: api, kitchen-display, notification-subscriber (both need rabbitmq.host), order-tracker (needs storage.driver: postgres)")
	configPath := flag.String("config", "config.yaml", "Path to the config file")
	port := flag.Int("port", 3000, "HTTP port")
	orderID := flag.String("order-id", "", "Order to follow (for order-tracker)")
	interval := flag.Duration("interval", 5*time.Second, "Refresh interval (for order-tracker)")
	prefetch := flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lgr := logger.NewWithWriter(*mode, cfg.App.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "api":
		err = runAPI(ctx, cfg, lgr, *port)

	case "kitchen-display":
		err = runConsumer(ctx, cfg, lgr, *prefetch, func(c interfaces.MessageConsumer) error {
			return c.ConsumeOrders(ctx, amqpAdapter.NewOrderHandler(os.Stdout, lgr).HandleOrder)
		})

	case "notification-subscriber":
		err = runConsumer(ctx, cfg, lgr, 1, func(c interfaces.MessageConsumer) error {
			return c.ConsumeNotifications(ctx, amqpAdapter.NewNotificationHandler(os.Stdout, lgr).HandleNotification)
		})

	case "order-tracker":
		if *orderID == "" {
			log.Fatal("--order-id is required for order-tracker mode")
		}
		err = runTracker(ctx, cfg, lgr, *orderID, *interval)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		lgr.Error("service_failed", "Service stopped with error", "runtime", nil, err)
		os.Exit(1)
	}
}

// openStore returns the configured storage backend and its cleanup.
func openStore(ctx context.Context, cfg *config.Config, lgr logger.Logger) (interfaces.KeyValueStore, func(), error) {
	if cfg.Storage.Driver != "postgres" {
		lgr.Info("storage_ready", "Using in-memory storage", "startup", nil)
		return memory.NewStore(), func() {}, nil
	}

	db, err := postgres.Connect(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, nil, err
	}

	store := postgres.NewKeyValueStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})
	return store, db.Close, nil
}

func newOrderService(cfg *config.Config, store interfaces.KeyValueStore, publisher interfaces.MessagePublisher, lgr logger.Logger) *order.Service {
	return order.NewService(kv.NewOrderRepository(store, lgr), publisher, lgr, order.Options{
		StrictTransitions: cfg.Orders.StrictTransitions,
		MinEstimate:       cfg.Orders.MinEstimate,
		MaxEstimate:       cfg.Orders.MaxEstimate,
		Location:          cfg.Location(),
		Delays: order.Delays{
			Create:  cfg.Simulation.CreateDelay,
			Status:  cfg.Simulation.StatusDelay,
			History: cfg.Simulation.HistoryDelay,
		},
	})
}

func runAPI(ctx context.Context, cfg *config.Config, lgr logger.Logger, port int) error {
	store, closeStore, err := openStore(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer closeStore()

	var publisher interfaces.MessagePublisher
	if cfg.MessagingEnabled() {
		mqConn, err := rabbitmq.Connect(cfg.RabbitMQURL())
		if err != nil {
			return err
		}
		defer mqConn.Close()

		publisher = rabbitmq.NewPublisher(mqConn)
		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		})
	}

	menu := catalog.NewService(kv.NewMenuRepository(store, lgr), lgr, catalog.Delays{
		List:  cfg.Simulation.MenuDelay,
		Item:  cfg.Simulation.ItemDelay,
		Write: cfg.Simulation.ItemDelay,
	})

	carts, err := cart.NewService(ctx, kv.NewCartRepository(store, lgr), menu, lgr)
	if err != nil {
		return err
	}

	orders := newOrderService(cfg, store, publisher, lgr)
	payments := payment.NewService(cfg.Payment.SuccessRate, cfg.Simulation.PaymentDelay, nil, lgr)
	sessions := session.NewService(kv.NewSessionRepository(store), lgr, cfg.Staff.Password, cfg.Simulation.ValidateDelay)

	handler := httpAdapter.NewRouter(httpAdapter.Services{
		Catalog:  menu,
		Cart:     carts,
		Orders:   orders,
		Payments: payments,
		Checkout: checkout.NewService(sessions, carts, orders, payments, lgr),
		Tracking: tracking.NewService(orders, lgr),
		Revenue:  revenue.NewService(orders, lgr, cfg.Simulation.RevenueDelay),
		Session:  sessions,
	}, lgr)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go sweepUnpaid(ctx, orders, cfg.Orders.PaymentTTL, cfg.Orders.SweepInterval, lgr)

	lgr.Info("service_started", fmt.Sprintf("API started on port %d", port), "startup", map[string]interface{}{
		"port":    port,
		"storage": cfg.Storage.Driver,
	})

	go func() {
		<-ctx.Done()
		lgr.Info("shutdown_initiated", "Shutting down API", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// sweepUnpaid cancels orders whose payment never completed.
func sweepUnpaid(ctx context.Context, orders *order.Service, ttl, every time.Duration, lgr logger.Logger) {
	if ttl <= 0 || every <= 0 {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := orders.ExpireUnpaid(ctx, ttl); err != nil && ctx.Err() == nil {
				lgr.Error("sweep_failed", "Failed to expire unpaid orders", "runtime", nil, err)
			}
		}
	}
}

func runConsumer(ctx context.Context, cfg *config.Config, lgr logger.Logger, prefetch int, consume func(interfaces.MessageConsumer) error) error {
	if !cfg.MessagingEnabled() {
		return errors.New("rabbitmq.host is not configured")
	}

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQURL())
	if err != nil {
		return err
	}
	defer mqConn.Close()

	lgr.Info("service_started", "Consumer started", "startup", map[string]interface{}{
		"host":     cfg.RabbitMQ.Host,
		"prefetch": prefetch,
	})

	err = consume(rabbitmq.NewConsumer(mqConn, prefetch, lgr))
	lgr.Info("shutdown_initiated", "Consumer stopped", "shutdown", nil)
	return err
}

func runTracker(ctx context.Context, cfg *config.Config, lgr logger.Logger, orderID string, interval time.Duration) error {
	if !cfg.SharedStorage() {
		return fmt.Errorf("order-tracker reads orders written by the api process: storage driver %q is not shared, use postgres", cfg.Storage.Driver)
	}

	store, closeStore, err := openStore(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer closeStore()

	orders := newOrderService(cfg, store, nil, lgr)
	poller := tracking.NewPoller(tracking.NewService(orders, lgr), orderID, interval, func(v *interfaces.OrderStatusView) {
		fmt.Printf("Order %s: %s (%d%%)\n", v.OrderID, v.Status, v.Progress)
	}, lgr)

	return poller.Run(ctx)
}
