package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/contact-unlock/pkg/admin"
	"github.com/chris/contact-unlock/pkg/api"
	"github.com/chris/contact-unlock/pkg/entitlement"
	adminhandler "github.com/chris/contact-unlock/pkg/handlers/admin"
	"github.com/chris/contact-unlock/pkg/handlers/payments"
	paymentmocks "github.com/chris/contact-unlock/pkg/handlers/payments/mocks"
	"github.com/chris/contact-unlock/pkg/handlers/properties"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/middleware"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/chris/contact-unlock/pkg/storage/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef"

type testServer struct {
	router   http.Handler
	catalog  *mocks.CatalogStore
	ledger   *mocks.Ledger
	sessions *mocks.AdminSessionStore
	payments *paymentmocks.PaymentService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		catalog:  new(mocks.CatalogStore),
		ledger:   new(mocks.Ledger),
		sessions: new(mocks.AdminSessionStore),
		payments: new(paymentmocks.PaymentService),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	gate := admin.NewGate("admin@example.com", string(hash), ts.sessions, zap.NewNop())
	resolver := entitlement.NewResolver(ts.ledger, zap.NewNop())

	h := NewApiHandler(
		properties.NewPropertiesHandler(ts.catalog, resolver, zap.NewNop()),
		payments.NewPaymentsHandler(ts.payments, "", zap.NewNop()),
		adminhandler.NewAdminHandler(gate, zap.NewNop()),
	)

	router := chi.NewRouter()
	router.Use(middleware.Identity(identity.NewVerifier(testSecret)))
	ts.router = api.HandlerWithOptions(h, api.ChiServerOptions{
		BaseRouter:  router,
		Middlewares: []api.MiddlewareFunc{middleware.RequireAdmin(gate, zap.NewNop())},
	})
	return ts
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouting(t *testing.T) {
	property := &models.Property{Id: "prop-1", Name: "Sea View", OwnerName: "Asha", OwnerPhone: "98765 43210"}

	t.Run("Public Route Skips Admin Check", func(t *testing.T) {
		ts := newTestServer(t)
		ts.catalog.On("GetProperty", mock.Anything, "prop-1").Return(property, nil)

		rr := httptest.NewRecorder()
		ts.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/properties/prop-1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		ts.sessions.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
	})

	t.Run("Admin Route Requires Session", func(t *testing.T) {
		ts := newTestServer(t)
		ts.sessions.On("GetSession", mock.Anything, "stale").Return(nil, storage.ErrSessionNotFound)

		body, _ := json.Marshal(api.NewProperty{Name: "x", Price: "1", Location: "y", OwnerName: "z", OwnerPhone: "1"})
		req := httptest.NewRequest(http.MethodPost, "/admin/properties", bytes.NewReader(body))
		req.Header.Set(middleware.AdminTokenHeader, "stale")
		rr := httptest.NewRecorder()
		ts.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		ts.catalog.AssertNotCalled(t, "CreateProperty", mock.Anything, mock.Anything)
	})

	t.Run("Admin Route With Session", func(t *testing.T) {
		ts := newTestServer(t)
		ts.sessions.On("GetSession", mock.Anything, "tok").
			Return(&models.AdminSession{Token: "tok", Email: "admin@example.com", IssuedAt: time.Now()}, nil)
		ts.payments.On("ListPropertyAttempts", mock.Anything, "prop-1").Return([]models.PaymentAttempt{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/admin/properties/prop-1/payments", nil)
		req.Header.Set(middleware.AdminTokenHeader, "tok")
		rr := httptest.NewRecorder()
		ts.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		ts.payments.AssertExpectations(t)
	})

	t.Run("Bad Attempt ID", func(t *testing.T) {
		ts := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/payments/not-a-uuid", nil)
		req.Header.Set("Authorization", bearer(t, "user-1"))
		rr := httptest.NewRecorder()
		ts.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Attempt Lookup Carries Caller", func(t *testing.T) {
		ts := newTestServer(t)
		id := uuid.New()
		ts.payments.On("GetAttempt", mock.Anything, &identity.User{ID: "user-1"}, id.String()).
			Return(&models.PaymentAttempt{Id: id.String(), UserId: "user-1", Status: models.PENDING}, nil)

		req := httptest.NewRequest(http.MethodGet, "/payments/"+id.String(), nil)
		req.Header.Set("Authorization", bearer(t, "user-1"))
		rr := httptest.NewRecorder()
		ts.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		ts.payments.AssertExpectations(t)
	})
}
