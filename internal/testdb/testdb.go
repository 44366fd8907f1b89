// Package testdb connects integration tests to a real PostgreSQL database.
//
// The database URL is read from INVENTORY_TEST_DB_URL, then DATABASE_URL.
// Outside CI a missing URL skips the test; in CI it fails it, so a
// misconfigured pipeline cannot pass by skipping every database test.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/redact"
)

// Environment variables consulted for the test database URL, in order.
const (
	EnvTestDBURL   = "INVENTORY_TEST_DB_URL"
	EnvDatabaseURL = "DATABASE_URL"
)

// ciVars are set by the common CI providers.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// IsCI reports whether the tests run under a CI provider.
func IsCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// DatabaseURL returns the first non-empty test database URL, or "".
func DatabaseURL() string {
	for i, name := range []string{EnvTestDBURL, EnvDatabaseURL} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			if i > 0 {
				slog.Debug("using fallback test database variable",
					slog.String("used_var", name),
					slog.String("preferred_var", EnvTestDBURL))
			}
			return v
		}
	}
	return ""
}

// Open connects to the test database and closes it when t ends.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		if IsCI() {
			t.Fatalf("%s or %s must be set in CI", EnvTestDBURL, EnvDatabaseURL)
		}
		t.Skipf("%s not set", EnvTestDBURL)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("open test database: %v", redact.Error(err))
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("ping test database: %v", redact.Error(err))
	}
	return sqlx.NewDb(db, "pgx")
}

// Truncate empties tables and restarts their sequences.
func Truncate(t *testing.T, db *sqlx.DB, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		return
	}
	stmt := "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
	if _, err := db.ExecContext(context.Background(), stmt); err != nil {
		t.Fatalf("truncate %v: %v", tables, redact.Error(err))
	}
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sqlx.DB, fn func(t *testing.T, tx *sqlx.Tx)) {
	t.Helper()

	tx, err := db.BeginTxx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin test transaction: %v", redact.Error(err))
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("rollback test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
