package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"tailorpos/internal/store"
	"tailorpos/internal/testutil"
)

func TestSQLStore_Get(t *testing.T) {
	db, mock := testutil.NewMockDB(t, store.DriverPostgres)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT store_value FROM kv_store WHERE store_key = $1")).
		WithArgs("thobe_pos_orders").
		WillReturnRows(sqlmock.NewRows([]string{"store_value"}).AddRow(`{"version":1,"data":[]}`))

	s := store.NewSQLStore(db)
	value, err := s.Get(context.Background(), "thobe_pos_orders")

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(value), `{"version":1,"data":[]}`)
	testutil.AssertNoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Get_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t, store.DriverPostgres)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT store_value FROM kv_store WHERE store_key = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"store_value"}))

	s := store.NewSQLStore(db)
	_, err := s.Get(context.Background(), "missing")

	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound but got %v", err)
	}
}

func TestSQLStore_Get_SQLitePlaceholders(t *testing.T) {
	db, mock := testutil.NewMockDB(t, store.DriverSQLite)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT store_value FROM kv_store WHERE store_key = ?")).
		WithArgs("thobe_pos_settings").
		WillReturnRows(sqlmock.NewRows([]string{"store_value"}).AddRow(`{}`))

	s := store.NewSQLStore(db)
	_, err := s.Get(context.Background(), "thobe_pos_settings")

	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Get_DatabaseError(t *testing.T) {
	db, mock := testutil.NewMockDB(t, store.DriverPostgres)
	defer db.Close()

	mock.ExpectQuery("SELECT store_value FROM kv_store").
		WillReturnError(errors.New("connection reset"))

	s := store.NewSQLStore(db)
	_, err := s.Get(context.Background(), "thobe_pos_orders")

	testutil.AssertError(t, err, "failed to read key thobe_pos_orders: connection reset")
}

func TestSQLStore_Set(t *testing.T) {
	db, mock := testutil.NewMockDB(t, store.DriverPostgres)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO kv_store \(store_key, store_value, updated_at\)\s+VALUES \(\$1, \$2, \$3\)\s+ON CONFLICT \(store_key\) DO UPDATE`).
		WithArgs("thobe_pos_customers", `{"version":1,"data":[]}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := store.NewSQLStore(db)
	err := s.Set(context.Background(), "thobe_pos_customers", []byte(`{"version":1,"data":[]}`))

	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Migrate(t *testing.T) {
	db, mock := testutil.NewMockDB(t, store.DriverSQLite)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := store.NewSQLStore(db)
	testutil.AssertNoError(t, s.Migrate(context.Background()))
	testutil.AssertNoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Entries(t *testing.T) {
	db, mock := testutil.NewMockDB(t, store.DriverPostgres)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"store_key", "size", "updated_at"}).
		AddRow("thobe_pos_customers", 120, "2026-10-01T08:00:00Z").
		AddRow("thobe_pos_orders", 480, "2026-10-02T09:30:00Z")
	mock.ExpectQuery("SELECT store_key, LENGTH\\(store_value\\) AS size, updated_at FROM kv_store").
		WillReturnRows(rows)

	s := store.NewSQLStore(db)
	entries, err := s.Entries(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(entries), 2)
	testutil.AssertEqual(t, entries[1].Key, "thobe_pos_orders")
	testutil.AssertEqual(t, entries[1].Size, int64(480))
}
