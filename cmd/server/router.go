package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/inventory-api/internal/api"
	apiMiddleware "github.com/phrazzld/inventory-api/internal/api/middleware"
)

// setupRouter creates the application router with middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.Deadline(time.Duration(app.config.Server.RequestTimeoutSeconds) * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenCodec)
	api.RegisterRoutes(r, api.Handlers{
		Auth:     api.NewAuthHandler(app.tokenCodec, app.credentials, app.logger),
		Persons:  api.NewPersonHandler(app.personService, app.invoiceService, app.logger),
		Items:    api.NewItemHandler(app.itemService, app.logger),
		Invoices: api.NewInvoiceHandler(app.invoiceService, app.logger),
	}, authMiddleware.Authenticate)

	return r
}
