package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/inventory-api/internal/service"
	"github.com/phrazzld/inventory-api/internal/service/auth"
	"github.com/phrazzld/inventory-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	claims    = auth.Claims{Subject: "test-client", ExpiresAt: time.Now().Add(time.Hour)}
	fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

func audit(by string) store.Audit {
	return store.Audit{CreatedBy: by, CreatedAt: fixedTime, LastChangedBy: by, LastUpdate: fixedTime}
}

func requireKind(t *testing.T, err error, want service.Kind) {
	t.Helper()
	var svcErr *service.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, want, svcErr.Kind, "error: %v", err)
}

func newID() uuid.UUID { return uuid.New() }
