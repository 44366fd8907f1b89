package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/inventory-api/internal/config"
	"github.com/phrazzld/inventory-api/internal/platform/postgres"
	"github.com/phrazzld/inventory-api/internal/service"
	"github.com/phrazzld/inventory-api/internal/service/auth"
	"github.com/phrazzld/inventory-api/internal/store"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	personStore  store.PersonStore
	itemStore    store.ItemStore
	invoiceStore store.InvoiceStore

	tokenCodec  auth.TokenCodec
	credentials auth.CredentialVerifier

	personService  service.PersonService
	itemService    service.ItemService
	invoiceService service.InvoiceService
}

// newApplication wires stores, services and auth around an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sqlx.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenCodec, err = auth.NewTokenCodec(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	logger.Info("token codec initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.credentials, err = auth.NewClientCredentials(cfg.Auth, auth.NewBcryptVerifier())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize client credentials: %w", err)
	}

	app.personStore = postgres.NewPostgresPersonStore(db, logger)
	app.itemStore = postgres.NewPostgresItemStore(db, logger)
	app.invoiceStore = postgres.NewPostgresInvoiceStore(db, logger)

	app.personService = service.NewPersonService(app.personStore, logger)
	app.itemService = service.NewItemService(app.itemStore, logger)
	app.invoiceService = service.NewInvoiceService(app.invoiceStore, app.personStore, db, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
