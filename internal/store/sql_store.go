package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know the bind type of
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

const schema = `
CREATE TABLE IF NOT EXISTS kv_store (
	store_key   TEXT PRIMARY KEY,
	store_value TEXT NOT NULL,
	updated_at  TEXT NOT NULL
)`

// Entry describes one stored key
type Entry struct {
	Key       string `db:"store_key"`
	Size      int64  `db:"size"`
	UpdatedAt string `db:"updated_at"`
}

// SQLStore keeps every key as one row of the kv_store table
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open database
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// OpenSQLite opens (or creates) a SQLite database file
func OpenSQLite(path string) (*SQLStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sqlx.Connect(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// single writer
	db.SetMaxOpenConns(1)

	return NewSQLStore(db), nil
}

// OpenPostgres connects to a PostgreSQL database
func OpenPostgres(dsn string) (*SQLStore, error) {
	db, err := sqlx.Connect(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return NewSQLStore(db), nil
}

// DriverName returns the name of the underlying database driver
func (s *SQLStore) DriverName() string {
	return s.db.DriverName()
}

// Migrate creates the kv_store table if it does not exist
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}

// Get returns the value stored under key
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := s.db.Rebind(`SELECT store_value FROM kv_store WHERE store_key = ?`)

	var value string
	err := s.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return []byte(value), nil
}

// Set stores value under key, replacing any previous value.
// Values are written as text so both backends keep them in a TEXT column.
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := s.db.Rebind(`
		INSERT INTO kv_store (store_key, store_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (store_key) DO UPDATE
		SET store_value = excluded.store_value, updated_at = excluded.updated_at
	`)

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, query, key, string(value), updatedAt); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	return nil
}

// Entries lists the stored keys with their value size, ordered by key
func (s *SQLStore) Entries(ctx context.Context) ([]Entry, error) {
	query := `SELECT store_key, LENGTH(store_value) AS size, updated_at FROM kv_store ORDER BY store_key`

	var entries []Entry
	if err := s.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	return entries, nil
}

// Ping checks the database connection
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *SQLStore) Close() error {
	return s.db.Close()
}
