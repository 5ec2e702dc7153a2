package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"tailorpos/internal/queue"
	"tailorpos/internal/service"
	"tailorpos/internal/store"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	RabbitMQ      RabbitMQConfig
	Notifications NotificationConfig
	Env           string
	LogLevel      string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// StoreConfig selects the key-value backend
type StoreConfig struct {
	Driver     string
	SQLitePath string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RabbitMQConfig holds RabbitMQ configuration
type RabbitMQConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

// NotificationConfig controls pickup notifications
type NotificationConfig struct {
	Enabled     bool
	Queue       string
	Template    string
	SuccessRate float64
	MetricsPort string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", store.DriverSQLite)),
			SQLitePath: getEnv("SQLITE_PATH", "tailorpos.db"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "tailorpos"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "tailorpos"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnv("RABBITMQ_PORT", "5672"),
			User:     getEnv("RABBITMQ_DEFAULT_USER", "guest"),
			Password: getEnv("RABBITMQ_DEFAULT_PASS", "guest"),
		},
		Notifications: NotificationConfig{
			Enabled:     getEnvAsBool("NOTIFICATIONS_ENABLED", false),
			Queue:       getEnv("NOTIFY_QUEUE", queue.DefaultNotificationQueue),
			Template:    getEnv("NOTIFY_TEMPLATE", service.DefaultNotificationTemplate),
			SuccessRate: getEnvAsFloat("SENDER_SUCCESS_RATE", 0.95),
			MetricsPort: getEnv("WORKER_METRICS_PORT", "9091"),
		},
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),
	}

	// Validate required fields
	switch config.Store.Driver {
	case store.DriverSQLite, store.DriverRedis, store.DriverMemory:
	case store.DriverPostgres:
		if config.Database.Password == "" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be one of sqlite, postgres, redis, memory; got %q", config.Store.Driver)
	}

	if config.Notifications.SuccessRate < 0 || config.Notifications.SuccessRate > 1 {
		return nil, fmt.Errorf("SENDER_SUCCESS_RATE must be between 0 and 1")
	}

	return config, nil
}

// StoreOptions returns the options for store.Open
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Driver:        c.Store.Driver,
		SQLitePath:    c.Store.SQLitePath,
		PostgresDSN:   c.GetDatabaseDSN(),
		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,
	}
}

// GetDatabaseDSN returns PostgreSQL connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// GetRabbitMQURL returns RabbitMQ connection URL
func (c *Config) GetRabbitMQURL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		c.RabbitMQ.User,
		c.RabbitMQ.Password,
		c.RabbitMQ.Host,
		c.RabbitMQ.Port,
	)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// getEnv gets environment variable or returns default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets environment variable as integer or returns default
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
