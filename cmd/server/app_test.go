package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/config"
	"github.com/phrazzld/inventory-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := auth.HashSecret("client-secret", bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "error", RequestTimeoutSeconds: 5},
		Database: config.DatabaseConfig{
			URL:                    "postgres://localhost/inventory",
			MaxOpenConns:           4,
			ConnMaxLifetimeMinutes: 5,
		},
		Auth: config.AuthConfig{
			JWTSecret:            testSecret,
			TokenLifetimeMinutes: 60,
			ClientID:             "billing",
			ClientSecretHash:     hash,
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*application, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := newApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), sqlx.NewDb(db, "sqlmock"))
	require.NoError(t, err)
	return app, mock
}

func TestNewApplicationRejectsWeakSecret(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Auth.JWTSecret = "short"

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = newApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), sqlx.NewDb(db, "sqlmock"))
	assert.ErrorIs(t, err, auth.ErrWeakSecret)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t, testConfig(t))

	rec := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestTokenThenListPersons(t *testing.T) {
	t.Parallel()
	app, mock := newTestApp(t, testConfig(t))
	router := app.setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth",
		strings.NewReader(`{"client_id":"billing","client_secret":"client-secret"}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.NotEmpty(t, token.Token)
	exp, err := time.Parse(time.RFC3339, token.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	now := time.Now().UTC()
	mock.ExpectQuery(`FROM persons ORDER BY id ASC LIMIT \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "alt_id", "name", "email", "created_by", "created_at", "last_changed_by", "last_update",
		}).AddRow(int64(1), "6f1c7a52-2a0e-4d8e-8d1e-0f3b1f7c2a01", "Ada", "ada@example.com", "billing", now, "billing", now))

	req := httptest.NewRequest(http.MethodGet, "/persons?page_size=2", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Data     []map[string]any `json:"data"`
		LastID   *int64           `json:"last_id"`
		PageSize int              `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "ada@example.com", page.Data[0]["email"])
	require.NotNil(t, page.LastID)
	assert.Equal(t, int64(1), *page.LastID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWrongClientSecret(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t, testConfig(t))

	rec := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth",
		strings.NewReader(`{"client_id":"billing","client_secret":"guess"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":401,"error":"Wrong credentials"}`, rec.Body.String())
}

func TestDriverFailureIs500(t *testing.T) {
	t.Parallel()
	app, mock := newTestApp(t, testConfig(t))
	token, _, err := app.tokenCodec.Issue(context.Background(), "billing")
	require.NoError(t, err)

	mock.ExpectQuery(`FROM items`).WillReturnError(assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":500,"error":"An unexpected error occurred"}`, rec.Body.String())
}
