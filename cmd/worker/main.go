package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tailorpos/internal/config"
	"tailorpos/internal/logger"
	"tailorpos/internal/queue"
	"tailorpos/internal/repository"
	"tailorpos/internal/service"
	"tailorpos/internal/store"
)

// jobTimeout bounds the store reads of a single notification
const jobTimeout = 30 * time.Second

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

	kv, err := store.Open(context.Background(), cfg.StoreOptions(), log)
	if err != nil {
		log.Fatal("Failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer kv.Close()

	conn, err := queue.NewConnection(cfg.GetRabbitMQURL(), log)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer conn.Close()

	publisher, err := queue.NewPublisher(conn, cfg.Notifications.Queue)
	if err != nil {
		log.Fatal("Failed to create publisher", zap.Error(err))
	}

	notifier, err := service.NewNotificationService(
		repository.NewOrderRepository(kv),
		repository.NewCustomerRepository(kv),
		repository.NewSettingsRepository(kv),
		service.NewTemplateService(),
		cfg.Notifications.Template,
		service.NewSenderService(cfg.Notifications.SuccessRate, true),
		publisher,
		log,
	)
	if err != nil {
		log.Fatal("Failed to create notification service", zap.Error(err))
	}

	consumer, err := queue.NewConsumer(conn, cfg.Notifications.Queue, func(job *queue.NotificationJob) error {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		return notifier.Process(ctx, job)
	}, log)
	if err != nil {
		log.Fatal("Failed to create consumer", zap.Error(err))
	}

	if err := consumer.Start(); err != nil {
		log.Fatal("Failed to start consumer", zap.Error(err))
	}
	log.Info("Worker started", zap.String("queue", cfg.Notifications.Queue))

	metricsSrv := &http.Server{
		Addr:              ":" + cfg.Notifications.MetricsPort,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-sigChan:
		log.Info("Shutting down gracefully")
	case <-consumer.Done():
		// exit non-zero so the supervisor restarts the worker
		log.Error("Consumer stopped unexpectedly, shutting down")
		exitCode = 1
	}

	if err := consumer.Stop(); err != nil {
		log.Error("Error stopping consumer", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = metricsSrv.Shutdown(shutdownCtx)
	cancel()

	log.Info("Worker stopped")
	if exitCode != 0 {
		// os.Exit skips the deferred closes
		conn.Close()
		kv.Close()
		logger.Sync()
		os.Exit(exitCode)
	}
}
