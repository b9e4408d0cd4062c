package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/contact-unlock/pkg/config"
	"github.com/chris/contact-unlock/pkg/events"
	"github.com/chris/contact-unlock/pkg/gateway"
	"github.com/chris/contact-unlock/pkg/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testDeps() *Deps {
	return &Deps{Config: config.Default(), Logger: zap.NewNop()}
}

func TestCompletionSource(t *testing.T) {
	t.Run("Simulated", func(t *testing.T) {
		d := testDeps()
		assert.IsType(t, &gateway.Simulated{}, d.CompletionSource(scheduler.NewLocalScheduler(zap.NewNop())))
	})

	t.Run("Gateway", func(t *testing.T) {
		d := testDeps()
		d.Config.Completion.Mode = "gateway"
		d.Config.Stripe.SecretKey = "sk_test_123"
		assert.IsType(t, &gateway.StripeCheckout{}, d.CompletionSource(nil))
	})
}

func TestScheduler(t *testing.T) {
	d := testDeps()
	s, err := d.Scheduler(context.Background())

	require.NoError(t, err)
	assert.IsType(t, &scheduler.LocalScheduler{}, s)

	d.Close()
	assert.ErrorIs(t, s.ScheduleCompletion(context.Background(), "attempt1", time.Second), scheduler.ErrSchedulerClosed)
}

func TestEventsWithoutBrokers(t *testing.T) {
	p, err := testDeps().Events()

	require.NoError(t, err)
	assert.Equal(t, events.NoopPublisher{}, p)
}

func TestNotifierWithoutEndpoint(t *testing.T) {
	n, err := testDeps().Notifier(context.Background())

	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestPolicy(t *testing.T) {
	p := testDeps().Policy()

	assert.Equal(t, int64(9900), p.AmountMinorUnits)
	assert.Equal(t, 15*time.Minute, p.PendingTimeout)
	assert.Equal(t, "99.00 INR", p.DisplayPrice())
}

func TestCloseOrder(t *testing.T) {
	var order []int
	d := testDeps()
	d.closers = []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return errors.New("already closed") },
	}

	d.Close()

	assert.Equal(t, []int{2, 1}, order)
}
