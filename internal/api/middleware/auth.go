package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/inventory-api/internal/api/shared"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/service/auth"
)

// InvalidTokenMessage is the error text of every rejected bearer token.
const InvalidTokenMessage = "Invalid token"

// AuthMiddleware authenticates requests with a bearer token.
type AuthMiddleware struct {
	codec auth.TokenCodec
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(codec auth.TokenCodec) *AuthMiddleware {
	if codec == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("token codec cannot be nil")
	}
	return &AuthMiddleware{codec: codec}
}

// Authenticate verifies the Authorization bearer token and stores its claims
// in the request context. A missing, malformed or unverifiable token ends the
// request with 400.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, InvalidTokenMessage, auth.ErrMissingToken)
			return
		}

		claims, err := m.codec.Verify(r.Context(), token)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, InvalidTokenMessage, err)
			return
		}

		ctx := shared.WithClaims(r.Context(), *claims)
		log := logger.FromContextOrDefault(ctx, slog.Default()).
			With(slog.String("subject", claims.Subject))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}
