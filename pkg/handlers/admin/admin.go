package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/contact-unlock/pkg/admin"
	"github.com/chris/contact-unlock/pkg/api"
	"github.com/chris/contact-unlock/pkg/mapping"
	"github.com/chris/contact-unlock/pkg/models"
	"go.uber.org/zap"
)

// SessionIssuer issues and revokes admin sessions.
type SessionIssuer interface {
	Issue(ctx context.Context, email, password string) (*models.AdminSession, error)
	Revoke(ctx context.Context, token string) error
}

// AdminHandler serves the admin console login.
type AdminHandler struct {
	Sessions SessionIssuer
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(sessions SessionIssuer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Sessions: sessions, logger: logger}
}

// AdminLogin exchanges the admin credential for a session token.
func (h *AdminHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var login api.AdminLogin
	if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	session, err := h.Sessions.Issue(r.Context(), string(login.Email), login.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.Error("failed to issue admin session", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiAdminSession(session)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// AdminLogout revokes the session the request was authorized with.
func (h *AdminHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	session := admin.SessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "admin session required", http.StatusUnauthorized)
		return
	}

	if err := h.Sessions.Revoke(r.Context(), session.Token); err != nil {
		h.logger.Error("failed to revoke admin session", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
