package payments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chris/contact-unlock/pkg/disclosure"
	"github.com/chris/contact-unlock/pkg/entitlement"
	"github.com/chris/contact-unlock/pkg/events"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/chris/contact-unlock/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testPolicy = Policy{AmountMinorUnits: 9900, Currency: "inr", PendingTimeout: 15 * time.Minute}

type fixture struct {
	svc      *Service
	ledger   *memLedger
	clock    *fakeClock
	source   *fakeSource
	events   *recordingEvents
	notifier *recordingNotifier
	resolver *entitlement.Resolver
	property *models.Property
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &fakeClock{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	ledger := newMemLedger(clock.Now)
	property := &models.Property{Id: "prop-1", Name: "Sea View Flat", OwnerName: "Asha", OwnerPhone: "+91 98765 43210"}
	catalog := &fakeCatalog{properties: map[string]*models.Property{property.Id: property}}
	resolver := entitlement.NewResolver(ledger, zap.NewNop())
	f := &fixture{
		ledger:   ledger,
		clock:    clock,
		source:   &fakeSource{},
		events:   &recordingEvents{},
		notifier: &recordingNotifier{},
		resolver: resolver,
		property: property,
	}
	f.svc = NewService(ledger, catalog, resolver, f.source, testPolicy, zap.NewNop(),
		WithEventPublisher(f.events),
		WithNotifier(f.notifier),
		WithClock(clock.Now),
	)
	return f
}

func TestPolicyDisplayPrice(t *testing.T) {
	assert.Equal(t, "99.00 INR", testPolicy.DisplayPrice())
	assert.Equal(t, "0.50 USD", Policy{AmountMinorUnits: 50, Currency: "usd"}.DisplayPrice())
}

func TestInitiate(t *testing.T) {
	ctx := context.Background()
	user := &identity.User{ID: "user-1"}

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)

		started, err := f.svc.Initiate(ctx, user, "prop-1")

		require.NoError(t, err)
		assert.Equal(t, models.PENDING, started.Attempt.Status)
		assert.Equal(t, int64(9900), started.Attempt.AmountMinorUnits)
		assert.Equal(t, "inr", started.Attempt.Currency)
		assert.Equal(t, "https://pay.example/"+started.Attempt.Id, started.RedirectURL)
		assert.Equal(t, []string{started.Attempt.Id}, f.source.begun)
		assert.Equal(t, []string{events.AttemptCreated}, f.events.types())
	})

	t.Run("Anonymous", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Initiate(ctx, nil, "prop-1")

		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Equal(t, 0, f.ledger.count())
	})

	t.Run("Unknown Property", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Initiate(ctx, user, "nope")

		assert.ErrorIs(t, err, ErrPropertyNotFound)
		assert.Equal(t, 0, f.ledger.count())
	})

	t.Run("Catalog Down", func(t *testing.T) {
		ledger := new(mocks.Ledger)
		catalog := &fakeCatalog{err: errors.New("connection refused")}
		svc := NewService(ledger, catalog, entitlement.NewResolver(ledger, zap.NewNop()), &fakeSource{}, testPolicy, zap.NewNop())

		_, err := svc.Initiate(ctx, user, "prop-1")

		assert.ErrorIs(t, err, ErrCatalogUnavailable)
		ledger.AssertExpectations(t)
	})

	t.Run("Pending Attempt Blocks Second", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Initiate(ctx, user, "prop-1")
		require.NoError(t, err)

		_, err = f.svc.Initiate(ctx, user, "prop-1")

		assert.ErrorIs(t, err, ErrPaymentInProgress)
		assert.Equal(t, 1, f.ledger.count())
	})

	t.Run("Other Users Are Independent", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Initiate(ctx, user, "prop-1")
		require.NoError(t, err)

		_, err = f.svc.Initiate(ctx, &identity.User{ID: "user-2"}, "prop-1")

		assert.NoError(t, err)
		assert.Equal(t, 2, f.ledger.count())
	})

	t.Run("Already Entitled", func(t *testing.T) {
		f := newFixture(t)
		started, err := f.svc.Initiate(ctx, user, "prop-1")
		require.NoError(t, err)
		_, err = f.svc.Finalize(ctx, started.Attempt.Id, models.OutcomeCompleted, nil)
		require.NoError(t, err)

		_, err = f.svc.Initiate(ctx, user, "prop-1")

		assert.ErrorIs(t, err, ErrAlreadyEntitled)
		assert.Equal(t, 1, f.ledger.count())
	})

	t.Run("Failed Attempt Does Not Block Retry", func(t *testing.T) {
		f := newFixture(t)
		first, err := f.svc.Initiate(ctx, user, "prop-1")
		require.NoError(t, err)
		_, err = f.svc.Finalize(ctx, first.Attempt.Id, models.OutcomeFailed, nil)
		require.NoError(t, err)

		second, err := f.svc.Initiate(ctx, user, "prop-1")

		require.NoError(t, err)
		assert.NotEqual(t, first.Attempt.Id, second.Attempt.Id)
		decision, err := f.resolver.Resolve(ctx, user, "prop-1")
		require.NoError(t, err)
		assert.Equal(t, entitlement.Locked, decision)
	})

	t.Run("Abandoned Pending Attempt Does Not Block", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Initiate(ctx, user, "prop-1")
		require.NoError(t, err)

		f.clock.Advance(testPolicy.PendingTimeout + time.Minute)
		_, err = f.svc.Initiate(ctx, user, "prop-1")

		assert.NoError(t, err)
		assert.Equal(t, 2, f.ledger.count())
	})

	t.Run("Gateway Error", func(t *testing.T) {
		f := newFixture(t)
		f.source.err = errors.New("stripe unreachable")

		started, err := f.svc.Initiate(ctx, user, "prop-1")

		assert.ErrorIs(t, err, ErrGatewayFailed)
		assert.Nil(t, started)
		attempts, _ := f.svc.ListMyAttempts(ctx, user)
		require.Len(t, attempts, 1)
		assert.Equal(t, models.FAILED, attempts[0].Status)
		assert.Equal(t, "gateway error: stripe unreachable", *attempts[0].FailureReason)
		assert.Equal(t, []string{events.AttemptCreated, events.AttemptFailed}, f.events.types())

		f.source.err = nil
		_, err = f.svc.Initiate(ctx, user, "prop-1")
		assert.NoError(t, err)
	})

	t.Run("Resolver Unavailable", func(t *testing.T) {
		ledger := new(mocks.Ledger)
		ledger.On("FindCompletedAttempt", mock.Anything, "user-1", "prop-1").Return(nil, errors.New("timeout")).Once()
		catalog := &fakeCatalog{properties: map[string]*models.Property{"prop-1": {Id: "prop-1"}}}
		svc := NewService(ledger, catalog, entitlement.NewResolver(ledger, zap.NewNop()), &fakeSource{}, testPolicy, zap.NewNop())

		_, err := svc.Initiate(ctx, user, "prop-1")

		assert.ErrorIs(t, err, entitlement.ErrResolverUnavailable)
		ledger.AssertNotCalled(t, "CreateAttempt", mock.Anything, mock.Anything, mock.Anything)
		ledger.AssertExpectations(t)
	})

	t.Run("Ledger Write Fails", func(t *testing.T) {
		ledger := new(mocks.Ledger)
		ledger.On("FindCompletedAttempt", mock.Anything, "user-1", "prop-1").Return(nil, storage.ErrAttemptNotFound).Once()
		ledger.On("CreateAttempt", mock.Anything, mock.AnythingOfType("*models.PaymentAttempt"), testPolicy.PendingTimeout).
			Return(nil, errors.New("throughput exceeded")).Once()
		catalog := &fakeCatalog{properties: map[string]*models.Property{"prop-1": {Id: "prop-1"}}}
		svc := NewService(ledger, catalog, entitlement.NewResolver(ledger, zap.NewNop()), &fakeSource{}, testPolicy, zap.NewNop())

		_, err := svc.Initiate(ctx, user, "prop-1")

		assert.ErrorIs(t, err, ErrLedgerUnavailable)
		ledger.AssertExpectations(t)
	})
}

func TestInitiateConcurrent(t *testing.T) {
	f := newFixture(t)
	user := &identity.User{ID: "user-1"}

	const callers = 16
	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]error, callers)
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, results[i] = f.svc.Initiate(context.Background(), user, "prop-1")
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrPaymentInProgress)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.ledger.count())
}

func TestUnlockDisclosesContact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := &identity.User{ID: "user-1"}
	gate := disclosure.NewGate(f.resolver)

	before, err := gate.GetDisplayContact(ctx, user, f.property)
	require.NoError(t, err)
	assert.True(t, before.Locked)
	assert.Equal(t, "+XX XXXXX XXXXX", before.Phone)

	started, err := f.svc.Initiate(ctx, user, "prop-1")
	require.NoError(t, err)
	_, err = f.svc.ReportOutcome(ctx, started.Attempt.Id, "cs_test_123", models.OutcomeCompleted)
	require.NoError(t, err)

	after, err := gate.GetDisplayContact(ctx, user, f.property)
	require.NoError(t, err)
	assert.False(t, after.Locked)
	assert.Equal(t, "+91 98765 43210", after.Phone)

	other, err := gate.GetDisplayContact(ctx, &identity.User{ID: "user-2"}, f.property)
	require.NoError(t, err)
	assert.True(t, other.Locked)

	anonymous, err := gate.GetDisplayContact(ctx, nil, f.property)
	require.NoError(t, err)
	assert.True(t, anonymous.Locked)
}

func TestListAndGetAttempts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := &identity.User{ID: "user-1"}
	started, err := f.svc.Initiate(ctx, owner, "prop-1")
	require.NoError(t, err)

	t.Run("Owner", func(t *testing.T) {
		attempt, err := f.svc.GetAttempt(ctx, owner, started.Attempt.Id)
		require.NoError(t, err)
		assert.Equal(t, started.Attempt.Id, attempt.Id)
	})

	t.Run("Someone Else", func(t *testing.T) {
		_, err := f.svc.GetAttempt(ctx, &identity.User{ID: "user-2"}, started.Attempt.Id)
		assert.ErrorIs(t, err, ErrAttemptNotFound)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := f.svc.GetAttempt(ctx, owner, "missing")
		assert.ErrorIs(t, err, ErrAttemptNotFound)
	})

	t.Run("Mine", func(t *testing.T) {
		attempts, err := f.svc.ListMyAttempts(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, attempts, 1)

		_, err = f.svc.ListMyAttempts(ctx, nil)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("By Property", func(t *testing.T) {
		attempts, err := f.svc.ListPropertyAttempts(ctx, "prop-1")
		require.NoError(t, err)
		assert.Len(t, attempts, 1)
	})
}
