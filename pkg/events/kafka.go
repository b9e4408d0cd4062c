package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// NewSyncProducer connects a Kafka producer that waits for all in-sync replicas.
func NewSyncProducer(brokers []string, logger *zap.Logger) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info("Kafka producer initialized", zap.Strings("brokers", brokers))
	return producer, nil
}

// KafkaPublisher publishes ledger events to a Kafka topic keyed by attempt ID.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewKafkaPublisher creates a KafkaPublisher.
func NewKafkaPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

var _ Publisher = (*KafkaPublisher)(nil)

// PublishLedgerEvent sends the event with the current trace context in its headers.
func (p *KafkaPublisher) PublishLedgerEvent(ctx context.Context, event LedgerEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := make(headerCarrier, 0)
	otel.GetTextMapPropagator().Inject(ctx, &carrier)

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder(event.AttemptID),
		Value:   sarama.ByteEncoder(eventJSON),
		Headers: []sarama.RecordHeader(carrier),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	traceID := ""
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		traceID = span.SpanContext().TraceID().String()
	}

	p.logger.Debug("ledger event published",
		zap.String("trace_id", traceID),
		zap.String("topic", p.topic),
		zap.String("event_type", event.EventType),
		zap.String("attempt_id", event.AttemptID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)

	return nil
}

// headerCarrier adapts Kafka record headers to the otel TextMapCarrier interface.
type headerCarrier []sarama.RecordHeader

func (c headerCarrier) Get(key string) string {
	for _, h := range c {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	*c = append(*c, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, len(c))
	for i, h := range c {
		keys[i] = string(h.Key)
	}
	return keys
}
