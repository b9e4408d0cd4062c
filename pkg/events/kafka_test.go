package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKafkaPublisher_PublishLedgerEvent(t *testing.T) {
	attempt := &models.PaymentAttempt{Id: "attempt1", UserId: "user1", PropertyId: "prop1", Status: models.COMPLETED, AmountMinorUnits: 9900, Currency: "inr"}
	event := NewLedgerEvent(AttemptCompleted, attempt, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	t.Run("Success", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var got LedgerEvent
			if err := json.Unmarshal(val, &got); err != nil {
				return err
			}
			if got.AttemptID != "attempt1" || got.EventType != AttemptCompleted {
				return errors.New("unexpected event body")
			}
			return nil
		})
		publisher := NewKafkaPublisher(producer, "ledger-events", zap.NewNop())

		err := publisher.PublishLedgerEvent(context.Background(), event)

		require.NoError(t, err)
		require.NoError(t, producer.Close())
	})

	t.Run("Broker Error", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
		publisher := NewKafkaPublisher(producer, "ledger-events", zap.NewNop())

		err := publisher.PublishLedgerEvent(context.Background(), event)

		assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
		require.NoError(t, producer.Close())
	})
}

func TestHeaderCarrier(t *testing.T) {
	c := make(headerCarrier, 0)
	c.Set("traceparent", "00-abc-def-01")

	assert.Equal(t, "00-abc-def-01", c.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())
	assert.Empty(t, c.Get("missing"))
}
