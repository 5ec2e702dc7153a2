package config

import (
	"testing"

	"tailorpos/internal/queue"
	"tailorpos/internal/store"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "STORE_DRIVER", "SQLITE_PATH",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"NOTIFICATIONS_ENABLED", "NOTIFY_QUEUE", "NOTIFY_TEMPLATE", "SENDER_SUCCESS_RATE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Store.Driver != store.DriverSQLite {
		t.Errorf("Expected sqlite driver, got %s", cfg.Store.Driver)
	}
	if cfg.Store.SQLitePath != "tailorpos.db" {
		t.Errorf("Expected tailorpos.db, got %s", cfg.Store.SQLitePath)
	}
	if cfg.Notifications.Enabled {
		t.Error("Expected notifications disabled by default")
	}
	if cfg.Notifications.Queue != queue.DefaultNotificationQueue {
		t.Errorf("Expected queue %s, got %s", queue.DefaultNotificationQueue, cfg.Notifications.Queue)
	}
	if !cfg.IsDevelopment() {
		t.Error("Expected development env by default")
	}
}

func TestLoad_PostgresRequiresPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")

	if _, err := Load(); err == nil || err.Error() != "POSTGRES_PASSWORD is required" {
		t.Fatalf("Expected POSTGRES_PASSWORD error, got %v", err)
	}

	t.Setenv("POSTGRES_PASSWORD", "secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "host=localhost port=5432 user=tailorpos password=secret dbname=tailorpos sslmode=disable"
	if got := cfg.StoreOptions().PostgresDSN; got != want {
		t.Errorf("Expected DSN %q, got %q", want, got)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for unknown driver")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("NOTIFICATIONS_ENABLED", "true")
	t.Setenv("SENDER_SUCCESS_RATE", "0.5")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	opts := cfg.StoreOptions()
	if opts.Driver != store.DriverRedis || opts.RedisAddr != "cache:6380" || opts.RedisDB != 3 {
		t.Errorf("Unexpected store options: %+v", opts)
	}
	if !cfg.Notifications.Enabled || cfg.Notifications.SuccessRate != 0.5 {
		t.Errorf("Unexpected notification config: %+v", cfg.Notifications)
	}
	if cfg.IsDevelopment() {
		t.Error("Expected production env")
	}
}

func TestLoad_InvalidSuccessRate(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENDER_SUCCESS_RATE", "1.5")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for success rate above 1")
	}
}

func TestGetRabbitMQURL(t *testing.T) {
	cfg := &Config{RabbitMQ: RabbitMQConfig{Host: "mq", Port: "5672", User: "u", Password: "p"}}
	if got := cfg.GetRabbitMQURL(); got != "amqp://u:p@mq:5672/" {
		t.Errorf("Unexpected URL %s", got)
	}
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	t.Setenv("REDIS_DB", "three")
	if got := getEnvAsInt("REDIS_DB", 7); got != 7 {
		t.Errorf("Expected default 7, got %d", got)
	}
}
