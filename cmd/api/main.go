package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tailorpos/internal/config"
	"tailorpos/internal/handler"
	"tailorpos/internal/logger"
	"tailorpos/internal/queue"
	"tailorpos/internal/repository"
	"tailorpos/internal/service"
	"tailorpos/internal/store"
)

const version = "1.0.0"

func main() {
	// Load .env file (ignore error in production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.IsDevelopment(), cfg.LogLevel); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.L()

	ctx := context.Background()

	kv, err := store.Open(ctx, cfg.StoreOptions(), log)
	if err != nil {
		log.Fatal("Failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer kv.Close()
	log.Info("Store opened", zap.String("driver", cfg.Store.Driver))

	orders := repository.NewOrderRepository(kv)
	customers := repository.NewCustomerRepository(kv)
	settings := repository.NewSettingsRepository(kv)
	sequence := repository.NewCustomerSequence(kv)

	// Notifications are optional; without RabbitMQ the shop still works
	var (
		publisher   service.NotificationPublisher
		queueStatus service.QueueStatus
	)
	if cfg.Notifications.Enabled {
		conn, err := queue.NewConnection(cfg.GetRabbitMQURL(), log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer conn.Close()

		pub, err := queue.NewPublisher(conn, cfg.Notifications.Queue)
		if err != nil {
			log.Fatal("Failed to create publisher", zap.Error(err))
		}
		defer pub.Close()

		publisher = pub
		queueStatus = conn
		log.Info("Pickup notifications enabled", zap.String("queue", cfg.Notifications.Queue))
	}

	// one lock for every service: each request is a read-modify-write of whole collections
	mu := &sync.Mutex{}
	orderSvc := service.NewOrderService(mu, orders, customers, sequence, publisher, log)
	customerSvc := service.NewCustomerService(mu, customers, sequence, log)

	router := handler.NewRouter(handler.Handlers{
		Health:    handler.NewHealthHandler(service.NewHealthService(kv, queueStatus, version)),
		Customers: handler.NewCustomerHandler(customerSvc, orderSvc),
		Orders: handler.NewOrderHandler(
			orderSvc,
			service.NewInvoiceService(mu, orders, customers, settings),
			service.NewExportService(mu, orders, customers),
		),
		Settings:  handler.NewSettingsHandler(service.NewSettingsService(mu, settings)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(mu, orders, customers)),
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("API server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	log.Info("API server stopped")
}
