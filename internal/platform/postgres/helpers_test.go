package postgres

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var (
	fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	personCols  = []string{"id", "alt_id", "name", "email", "created_by", "created_at", "last_changed_by", "last_update"}
	itemCols    = []string{"id", "alt_id", "name", "description", "unit_price", "created_by", "created_at", "last_changed_by", "last_update"}
	invoiceCols = []string{"id", "alt_id", "user_id", "total", "paid", "created_by", "created_at", "last_changed_by", "last_update"}
)

const (
	personID  = "6f1c7a52-2a0e-4d8e-8d1e-0f3b1f7c2a01"
	itemID    = "0b7e2d0a-3c39-4c8c-9b0f-3f0e8f1b6a11"
	itemID2   = "9d2f3e44-5b1a-4f0c-a7e2-6c8d9e0f1a22"
	invoiceID = "3a5b7c9d-1e2f-4a6b-8c0d-2e4f6a8b0c33"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func personRow(seq int64, altID, name, email string) []driver.Value {
	return []driver.Value{seq, altID, name, email, "alice", fixedTime, "alice", fixedTime}
}

func itemRow(seq int64, altID, name string, price float64) []driver.Value {
	return []driver.Value{seq, altID, name, "desc", price, "alice", fixedTime, "alice", fixedTime}
}

func invoiceRow(seq int64, altID string, total float64, paid bool) []driver.Value {
	return []driver.Value{seq, altID, personID, total, paid, "alice", fixedTime, "alice", fixedTime}
}
