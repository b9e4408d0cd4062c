package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/chris/contact-unlock/pkg/api"
	"github.com/chris/contact-unlock/pkg/entitlement"
	"github.com/chris/contact-unlock/pkg/gateway"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/mapping"
	"github.com/chris/contact-unlock/pkg/models"
	svc "github.com/chris/contact-unlock/pkg/payments"
	"go.uber.org/zap"
)

// maxWebhookBody caps the Stripe payload we are willing to read.
const maxWebhookBody = 65536

// PaymentService is the part of the payment workflow exposed over HTTP.
type PaymentService interface {
	Initiate(ctx context.Context, user *identity.User, propertyID string) (*svc.Initiation, error)
	ListMyAttempts(ctx context.Context, user *identity.User) ([]models.PaymentAttempt, error)
	GetAttempt(ctx context.Context, user *identity.User, attemptID string) (*models.PaymentAttempt, error)
	ListPropertyAttempts(ctx context.Context, propertyID string) ([]models.PaymentAttempt, error)
	ReportOutcome(ctx context.Context, attemptID, gatewayReference string, outcome models.Outcome) (*models.PaymentAttempt, error)
	Policy() svc.Policy
}

// PaymentsHandler holds the dependencies for payment-related handlers.
type PaymentsHandler struct {
	Payments      PaymentService
	WebhookSecret string
	logger        *zap.Logger
}

// NewPaymentsHandler creates a new PaymentsHandler. An empty webhookSecret
// disables the Stripe webhook.
func NewPaymentsHandler(payments PaymentService, webhookSecret string, logger *zap.Logger) *PaymentsHandler {
	return &PaymentsHandler{Payments: payments, WebhookSecret: webhookSecret, logger: logger}
}

// UnlockProperty starts a payment for the caller to unlock a property's contact.
func (h *PaymentsHandler) UnlockProperty(w http.ResponseWriter, r *http.Request, propertyId api.PropertyId) {
	initiation, err := h.Payments.Initiate(r.Context(), identity.UserFromContext(r.Context()), propertyId)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := api.Unlock{
		Attempt: *mapping.ToApiPaymentAttempt(initiation.Attempt),
		Price:   h.Payments.Policy().DisplayPrice(),
	}
	if initiation.RedirectURL != "" {
		resp.RedirectUrl = &initiation.RedirectURL
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListMyPayments returns the caller's attempts, newest first.
func (h *PaymentsHandler) ListMyPayments(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.Payments.ListMyAttempts(r.Context(), identity.UserFromContext(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiPaymentAttempts(attempts))
}

// GetPayment returns one of the caller's attempts.
func (h *PaymentsHandler) GetPayment(w http.ResponseWriter, r *http.Request, attemptId api.AttemptId) {
	attempt, err := h.Payments.GetAttempt(r.Context(), identity.UserFromContext(r.Context()), attemptId.String())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiPaymentAttempt(attempt))
}

// ListPropertyPayments returns every attempt made against a property. Admin only.
func (h *PaymentsHandler) ListPropertyPayments(w http.ResponseWriter, r *http.Request, propertyId api.PropertyId) {
	attempts, err := h.Payments.ListPropertyAttempts(r.Context(), propertyId)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiPaymentAttempts(attempts))
}

// ReportPaymentOutcome applies an outcome entered by an admin.
func (h *PaymentsHandler) ReportPaymentOutcome(w http.ResponseWriter, r *http.Request, attemptId api.AttemptId) {
	var body api.PaymentOutcome
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	ref := ""
	if body.GatewayReference != nil {
		ref = *body.GatewayReference
	}
	attempt, err := h.Payments.ReportOutcome(r.Context(), attemptId.String(), ref, models.Outcome(body.Outcome))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("payment outcome reported manually",
		zap.String("attempt_id", attempt.Id),
		zap.String("outcome", string(body.Outcome)),
	)
	writeJSON(w, http.StatusOK, mapping.ToApiPaymentAttempt(attempt))
}

// HandleStripeWebhook applies Checkout session outcomes sent by Stripe. Events for
// unknown or already-settled attempts are acknowledged so Stripe stops retrying;
// ledger failures are not, so Stripe delivers them again.
func (h *PaymentsHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	if h.WebhookSecret == "" {
		http.Error(w, "Webhooks are not enabled", http.StatusNotFound)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	report, err := gateway.ParseStripeWebhook(payload, r.Header.Get("Stripe-Signature"), h.WebhookSecret)
	if errors.Is(err, gateway.ErrIgnoredEvent) {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		h.logger.Warn("rejected stripe webhook", zap.Error(err))
		http.Error(w, "Invalid webhook", http.StatusBadRequest)
		return
	}

	_, err = h.Payments.ReportOutcome(r.Context(), report.AttemptID, report.GatewayReference, report.Outcome)
	switch {
	case err == nil:
	case errors.Is(err, svc.ErrAttemptNotFound), errors.Is(err, svc.ErrConflictingFinalize):
		h.logger.Warn("stripe webhook not applied",
			zap.String("attempt_id", report.AttemptID),
			zap.String("gateway_reference", report.GatewayReference),
			zap.Error(err),
		)
	default:
		h.logger.Error("failed to apply stripe webhook", zap.String("attempt_id", report.AttemptID), zap.Error(err))
		http.Error(w, "Failed to apply outcome", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// writeError maps payment workflow errors to HTTP statuses.
func (h *PaymentsHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrUnauthenticated):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, svc.ErrPropertyNotFound), errors.Is(err, svc.ErrAttemptNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, svc.ErrAlreadyEntitled), errors.Is(err, svc.ErrPaymentInProgress), errors.Is(err, svc.ErrConflictingFinalize):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, svc.ErrInvalidOutcome):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, svc.ErrGatewayFailed):
		http.Error(w, svc.ErrGatewayFailed.Error(), http.StatusBadGateway)
	case errors.Is(err, svc.ErrLedgerUnavailable), errors.Is(err, svc.ErrCatalogUnavailable), errors.Is(err, entitlement.ErrResolverUnavailable):
		h.logger.Error("payment dependency unavailable", zap.Error(err))
		http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
	default:
		h.logger.Error("payment request failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
