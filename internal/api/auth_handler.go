package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/inventory-api/internal/api/shared"
	"github.com/phrazzld/inventory-api/internal/platform/logger"
	"github.com/phrazzld/inventory-api/internal/service/auth"
)

// TokenRequest defines the payload for POST /auth.
type TokenRequest struct {
	ClientID     string `json:"client_id"     validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
}

// TokenResponse defines the successful response for POST /auth.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"` // RFC 3339
}

// AuthHandler issues bearer tokens in exchange for client credentials.
type AuthHandler struct {
	codec       auth.TokenCodec
	credentials auth.CredentialVerifier
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(codec auth.TokenCodec, credentials auth.CredentialVerifier, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		codec:       codec,
		credentials: credentials,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Token handles POST /auth.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "client_id and client_secret are required", err)
		return
	}

	if err := h.credentials.Verify(req.ClientID, req.ClientSecret); err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, auth.ErrWrongCredentials) {
			status = http.StatusInternalServerError
		}
		shared.RespondWithErrorAndLog(w, r, status, "Wrong credentials", err)
		return
	}

	token, expiresAt, err := h.codec.Issue(r.Context(), req.ClientID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("token issued",
		slog.String("subject", req.ClientID))
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}
