package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chris/contact-unlock/pkg/entitlement"
	"github.com/chris/contact-unlock/pkg/events"
	"github.com/chris/contact-unlock/pkg/gateway"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/metrics"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/chris/contact-unlock/pkg/websockets"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Catalog looks up properties.
type Catalog interface {
	GetProperty(ctx context.Context, propertyID string) (*models.Property, error)
}

// Resolver decides entitlement for a (user, property) pair.
type Resolver interface {
	Resolve(ctx context.Context, user *identity.User, propertyID string) (entitlement.Decision, error)
}

// Policy holds the fixed terms of an unlock.
type Policy struct {
	AmountMinorUnits int64
	Currency         string
	// PendingTimeout is how long a pending attempt blocks new ones before it is abandoned.
	PendingTimeout time.Duration
}

// DisplayPrice renders the unlock fee, e.g. "99.00 INR".
func (p Policy) DisplayPrice() string {
	return decimal.New(p.AmountMinorUnits, -2).StringFixed(2) + " " + strings.ToUpper(p.Currency)
}

// Initiation is the result of starting an unlock.
type Initiation struct {
	Attempt     *models.PaymentAttempt
	RedirectURL string
}

// Service runs the unlock payment workflow. It holds no mutable state of its own;
// all coordination between concurrent calls goes through the ledger's constraints.
type Service struct {
	ledger   storage.Ledger
	catalog  Catalog
	resolver Resolver
	source   gateway.CompletionSource
	policy   Policy
	events   events.Publisher
	notifier websockets.Publisher
	logger   *zap.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// Option configures optional collaborators of a Service.
type Option func(*Service)

// WithEventPublisher publishes ledger events through p.
func WithEventPublisher(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithNotifier pushes entitlement updates to the user's websocket clients.
func WithNotifier(n websockets.Publisher) Option {
	return func(s *Service) { s.notifier = n }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a payment Service.
func NewService(ledger storage.Ledger, catalog Catalog, resolver Resolver, source gateway.CompletionSource, policy Policy, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		ledger:   ledger,
		catalog:  catalog,
		resolver: resolver,
		source:   source,
		policy:   policy,
		events:   events.NoopPublisher{},
		notifier: &websockets.NoOpPublisher{},
		logger:   logger,
		tracer:   otel.Tracer("github.com/chris/contact-unlock/pkg/payments"),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the unlock terms.
func (s *Service) Policy() Policy {
	return s.policy
}

// Initiate starts an unlock for the user and property. It creates a pending attempt
// and hands it to the completion source.
func (s *Service) Initiate(ctx context.Context, user *identity.User, propertyID string) (_ *Initiation, err error) {
	ctx, span := s.tracer.Start(ctx, "payments.Initiate", trace.WithAttributes(attribute.String("property.id", propertyID)))
	defer func() { endSpan(span, err) }()

	if user == nil || user.ID == "" {
		return nil, ErrUnauthenticated
	}
	span.SetAttributes(attribute.String("user.id", user.ID))

	if _, err := s.catalog.GetProperty(ctx, propertyID); err != nil {
		if errors.Is(err, storage.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	decision, err := s.resolver.Resolve(ctx, user, propertyID)
	if err != nil {
		return nil, err
	}
	if decision == entitlement.Unlocked {
		metrics.RecordPaymentAttempt(metrics.AttemptAlreadyEntitled)
		return nil, ErrAlreadyEntitled
	}

	attempt, err := s.ledger.CreateAttempt(ctx, &models.PaymentAttempt{
		UserId:           user.ID,
		PropertyId:       propertyID,
		AmountMinorUnits: s.policy.AmountMinorUnits,
		Currency:         s.policy.Currency,
	}, s.policy.PendingTimeout)
	if err != nil {
		if errors.Is(err, storage.ErrPairClaimed) {
			return nil, s.explainClaimed(ctx, user, propertyID)
		}
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}

	span.SetAttributes(attribute.String("attempt.id", attempt.Id))
	metrics.RecordPaymentAttempt(metrics.AttemptInitiated)
	s.logger.Info("payment attempt created",
		zap.String("attempt_id", attempt.Id),
		zap.String("user_id", user.ID),
		zap.String("property_id", propertyID),
		zap.Int64("amount_minor_units", attempt.AmountMinorUnits),
	)
	s.publish(ctx, events.AttemptCreated, attempt)

	handoff, err := s.source.Begin(ctx, attempt)
	if err != nil {
		metrics.RecordPaymentAttempt(metrics.AttemptGatewayFailed)
		s.logger.Warn("gateway hand-off failed", zap.String("attempt_id", attempt.Id), zap.Error(err))

		if _, ferr := s.finalize(ctx, attempt, models.OutcomeFailed, nil, "gateway error: "+err.Error()); ferr != nil {
			s.logger.Error("failed to mark attempt failed after gateway error", zap.String("attempt_id", attempt.Id), zap.Error(ferr))
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailed, err)
	}

	return &Initiation{Attempt: attempt, RedirectURL: handoff.RedirectURL}, nil
}

// explainClaimed turns a lost pair claim into the caller-facing reason by resolving again.
func (s *Service) explainClaimed(ctx context.Context, user *identity.User, propertyID string) error {
	decision, err := s.resolver.Resolve(ctx, user, propertyID)
	if err != nil {
		return err
	}
	if decision == entitlement.Unlocked {
		metrics.RecordPaymentAttempt(metrics.AttemptAlreadyEntitled)
		return ErrAlreadyEntitled
	}
	metrics.RecordPaymentAttempt(metrics.AttemptInProgress)
	return ErrPaymentInProgress
}

// ListMyAttempts returns the caller's attempts, newest first.
func (s *Service) ListMyAttempts(ctx context.Context, user *identity.User) ([]models.PaymentAttempt, error) {
	if user == nil || user.ID == "" {
		return nil, ErrUnauthenticated
	}
	attempts, err := s.ledger.ListAttemptsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	return attempts, nil
}

// GetAttempt returns one of the caller's attempts. Attempts owned by someone else
// are reported as not found.
func (s *Service) GetAttempt(ctx context.Context, user *identity.User, attemptID string) (*models.PaymentAttempt, error) {
	if user == nil || user.ID == "" {
		return nil, ErrUnauthenticated
	}
	attempt, err := s.ledger.GetAttempt(ctx, attemptID)
	if err != nil {
		if errors.Is(err, storage.ErrAttemptNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	if attempt.UserId != user.ID {
		return nil, ErrAttemptNotFound
	}
	return attempt, nil
}

// ListPropertyAttempts returns every attempt made against a property. Admin only.
func (s *Service) ListPropertyAttempts(ctx context.Context, propertyID string) ([]models.PaymentAttempt, error) {
	attempts, err := s.ledger.ListAttemptsByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	return attempts, nil
}

func (s *Service) publish(ctx context.Context, eventType string, attempt *models.PaymentAttempt) {
	if err := s.events.PublishLedgerEvent(ctx, events.NewLedgerEvent(eventType, attempt, s.now())); err != nil {
		s.logger.Warn("failed to publish ledger event",
			zap.String("event_type", eventType),
			zap.String("attempt_id", attempt.Id),
			zap.Error(err),
		)
	}
}

func (s *Service) notify(ctx context.Context, attempt *models.PaymentAttempt) {
	if err := s.notifier.Publish(ctx, attempt.UserId, websockets.NewEntitlementUpdate(attempt)); err != nil {
		s.logger.Warn("failed to push entitlement update",
			zap.String("attempt_id", attempt.Id),
			zap.String("user_id", attempt.UserId),
			zap.Error(err),
		)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
