package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/api"
	"github.com/phrazzld/inventory-api/internal/api/middleware"
	"github.com/phrazzld/inventory-api/internal/api/shared"
	"github.com/phrazzld/inventory-api/internal/mocks"
	"github.com/phrazzld/inventory-api/internal/service"
	"github.com/phrazzld/inventory-api/internal/store"
	"github.com/stretchr/testify/require"
)

const (
	personID  = "6f1c7a52-2a0e-4d8e-8d1e-0f3b1f7c2a01"
	itemID    = "0b7e2d0a-3c39-4c8c-9b0f-3f0e8f1b6a11"
	invoiceID = "3a5b7c9d-1e2f-4a6b-8c0d-2e4f6a8b0c33"
)

var fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// testEnv wires the real services over mock stores behind the full router.
type testEnv struct {
	persons  *mocks.MockPersonStore
	items    *mocks.MockItemStore
	invoices *mocks.MockInvoiceStore
	codec    *mocks.MockTokenCodec
	creds    *mocks.TestifyMockCredentialVerifier
	sql      sqlmock.Sqlmock
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	env := &testEnv{
		persons:  &mocks.MockPersonStore{},
		items:    &mocks.MockItemStore{},
		invoices: &mocks.MockInvoiceStore{},
		codec:    mocks.NewMockTokenCodec(),
		creds:    &mocks.TestifyMockCredentialVerifier{},
		sql:      sqlMock,
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	personSvc := service.NewPersonService(env.persons, log)
	itemSvc := service.NewItemService(env.items, log)
	invoiceSvc := service.NewInvoiceService(env.invoices, env.persons, sqlx.NewDb(db, "sqlmock"), log)

	r := chi.NewRouter()
	r.Use(middleware.Trace(log))
	api.RegisterRoutes(r, api.Handlers{
		Auth:     api.NewAuthHandler(env.codec, env.creds, log),
		Persons:  api.NewPersonHandler(personSvc, invoiceSvc, log),
		Items:    api.NewItemHandler(itemSvc, log),
		Invoices: api.NewInvoiceHandler(invoiceSvc, log),
	}, middleware.NewAuthMiddleware(env.codec).Authenticate)
	env.router = r

	return env
}

// do sends an authenticated request.
func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	return e.send(method, path, body, "Bearer test-token")
}

func (e *testEnv) send(method, path, body, authorization string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	body := decode[shared.ErrorResponse](t, rec)
	require.Equal(t, status, body.Status)
	if message != "" {
		require.Equal(t, message, body.Error)
	}
}

func audit(by string) store.Audit {
	return store.Audit{CreatedBy: by, CreatedAt: fixedTime, LastChangedBy: by, LastUpdate: fixedTime}
}
