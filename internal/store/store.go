// Package store provides the key-value byte store that application state is persisted in.
// Each key holds one whole JSON document, overwritten on every save.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNotFound is returned by Get when the key has never been written
var ErrNotFound = errors.New("key not found")

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Store is a key-value byte store with read-your-writes semantics
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Options selects and configures a backend
type Options struct {
	Driver        string
	SQLitePath    string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open connects to the backend named by opts.Driver.
// SQL backends have their schema created before they are returned.
func Open(ctx context.Context, opts Options, log *zap.Logger) (Store, error) {
	switch opts.Driver {
	case DriverSQLite:
		s, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return migrated(ctx, s, log)
	case DriverPostgres:
		s, err := OpenPostgres(opts.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return migrated(ctx, s, log)
	case DriverRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, log)
	case DriverMemory:
		log.Warn("Using in-memory store, data will not survive a restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

func migrated(ctx context.Context, s *SQLStore, log *zap.Logger) (Store, error) {
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	log.Info("SQL store ready", zap.String("driver", s.DriverName()))
	return s, nil
}
