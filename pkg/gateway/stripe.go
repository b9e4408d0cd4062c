package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chris/contact-unlock/pkg/models"
	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"go.uber.org/zap"
)

// Stripe only accepts checkout expiries between 30 minutes and 24 hours out.
const (
	MinCheckoutSessionTTL = 30 * time.Minute
	MaxCheckoutSessionTTL = 24 * time.Hour
)

// SessionCreator creates Stripe Checkout sessions. checkoutsession.Client satisfies it.
type SessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeCheckout hands attempts off to a hosted Stripe Checkout page. The attempt
// ID travels as client_reference_id so the outcome callback can find the row.
type StripeCheckout struct {
	sessions    SessionCreator
	productName string
	successURL  string
	cancelURL   string
	sessionTTL  time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

// NewStripeCheckout creates a StripeCheckout using the given API key.
// Sessions expire sessionTTL after creation; the ledger's pending timeout must
// be longer so a session can never be paid after its attempt was abandoned.
func NewStripeCheckout(apiKey, successURL, cancelURL string, sessionTTL time.Duration, logger *zap.Logger) *StripeCheckout {
	client := checkoutsession.Client{B: stripe.GetBackend(stripe.APIBackend), Key: apiKey}
	return NewStripeCheckoutWithSessions(client, successURL, cancelURL, sessionTTL, logger)
}

// NewStripeCheckoutWithSessions creates a StripeCheckout around an existing session creator.
// sessionTTL is clamped to the range Stripe accepts.
func NewStripeCheckoutWithSessions(sessions SessionCreator, successURL, cancelURL string, sessionTTL time.Duration, logger *zap.Logger) *StripeCheckout {
	return &StripeCheckout{
		sessions:    sessions,
		productName: "Property owner contact",
		successURL:  successURL,
		cancelURL:   cancelURL,
		sessionTTL:  clampSessionTTL(sessionTTL),
		now:         time.Now,
		logger:      logger,
	}
}

func clampSessionTTL(ttl time.Duration) time.Duration {
	if ttl < MinCheckoutSessionTTL {
		return MinCheckoutSessionTTL
	}
	if ttl > MaxCheckoutSessionTTL {
		return MaxCheckoutSessionTTL
	}
	return ttl
}

var _ CompletionSource = (*StripeCheckout)(nil)

// Begin creates a one-item Checkout session priced at the attempt amount.
func (s *StripeCheckout) Begin(ctx context.Context, attempt *models.PaymentAttempt) (Handoff, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(attempt.Currency)),
					UnitAmount: stripe.Int64(attempt.AmountMinorUnits),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(s.productName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.successURL),
		CancelURL:         stripe.String(s.cancelURL),
		ClientReferenceID: stripe.String(attempt.Id),
		ExpiresAt:         stripe.Int64(s.now().Add(s.sessionTTL).Unix()),
	}
	params.Context = ctx
	params.AddMetadata("property_id", attempt.PropertyId)
	params.AddMetadata("user_id", attempt.UserId)

	session, err := s.sessions.New(params)
	if err != nil {
		return Handoff{}, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Info("checkout session created",
		zap.String("attempt_id", attempt.Id),
		zap.String("session_id", session.ID),
	)

	return Handoff{RedirectURL: session.URL, SessionID: session.ID}, nil
}
