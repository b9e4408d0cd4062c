// Package bootstrap builds the shared dependency graph for the API server and
// the lambdas from a loaded configuration.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/contact-unlock/pkg/catalog"
	"github.com/chris/contact-unlock/pkg/config"
	"github.com/chris/contact-unlock/pkg/entitlement"
	"github.com/chris/contact-unlock/pkg/events"
	"github.com/chris/contact-unlock/pkg/gateway"
	"github.com/chris/contact-unlock/pkg/payments"
	"github.com/chris/contact-unlock/pkg/scheduler"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/chris/contact-unlock/pkg/storage/dynamodb"
	"github.com/chris/contact-unlock/pkg/storage/postgres"
	"github.com/chris/contact-unlock/pkg/websockets"
	"go.uber.org/zap"
)

// Store is what every binary needs from the data layer.
type Store interface {
	storage.Storage
	storage.WebSocketManager
}

// Deps holds the long-lived collaborators built from the configuration.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   Store
	Catalog *catalog.CachedCatalog

	closers []func() error
	aws     *aws.Config
}

// New opens the store and the property catalog.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Deps, error) {
	d := &Deps{Config: cfg, Logger: logger}

	switch cfg.Store.Driver {
	case "postgres":
		store, err := postgres.Open(ctx, cfg.Store.PostgresDSN, logger)
		if err != nil {
			return nil, err
		}
		d.Store = store
		d.closers = append(d.closers, store.Close)
	default:
		awsCfg, err := d.AWS(ctx)
		if err != nil {
			return nil, err
		}
		t := cfg.Store.Tables
		d.Store = dynamodb.New(awsdynamodb.NewFromConfig(awsCfg), dynamodb.Tables{
			Attempts:             t.Attempts,
			Entitlements:         t.Entitlements,
			Properties:           t.Properties,
			AdminSessions:        t.AdminSessions,
			WebsocketConnections: t.WebsocketConnections,
		})
	}

	var cache catalog.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := catalog.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, logger)
		if err != nil {
			// The catalog works without its cache.
			logger.Warn("property cache disabled", zap.Error(err))
		} else {
			cache = rdb
			d.closers = append(d.closers, rdb.Close)
		}
	}
	d.Catalog = catalog.NewCachedCatalog(d.Store, cache, cfg.Redis.CatalogTTL, logger)

	return d, nil
}

// AWS loads the default AWS configuration once.
func (d *Deps) AWS(ctx context.Context) (aws.Config, error) {
	if d.aws != nil {
		return *d.aws, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	d.aws = &cfg
	return cfg, nil
}

// Scheduler builds the scheduler for simulated completions. A LocalScheduler
// must be bound to the payment service before it fires.
func (d *Deps) Scheduler(ctx context.Context) (scheduler.Scheduler, error) {
	if d.Config.Completion.Scheduler == "local" {
		local := scheduler.NewLocalScheduler(d.Logger)
		d.closers = append(d.closers, local.Close)
		return local, nil
	}
	awsCfg, err := d.AWS(ctx)
	if err != nil {
		return nil, err
	}
	return scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), d.Config.Completion.QueueURL), nil
}

// CompletionSource picks the real gateway or the simulated one.
func (d *Deps) CompletionSource(s scheduler.Scheduler) gateway.CompletionSource {
	if d.Config.Completion.Mode == "gateway" {
		st := d.Config.Stripe
		return gateway.NewStripeCheckout(st.SecretKey, st.SuccessURL, st.CancelURL, st.SessionTTL, d.Logger)
	}
	return gateway.NewSimulated(s, d.Config.Completion.Delay)
}

// Events returns the Kafka ledger event publisher, or a no-op one when no
// brokers are configured.
func (d *Deps) Events() (events.Publisher, error) {
	if len(d.Config.Kafka.Brokers) == 0 {
		return events.NoopPublisher{}, nil
	}
	producer, err := events.NewSyncProducer(d.Config.Kafka.Brokers, d.Logger)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, producer.Close)
	return events.NewKafkaPublisher(producer, d.Config.Kafka.Topic, d.Logger), nil
}

// Notifier returns the API Gateway websocket publisher when an endpoint is
// configured, and nil otherwise.
func (d *Deps) Notifier(ctx context.Context) (websockets.Publisher, error) {
	if d.Config.Websocket.APIEndpoint == "" {
		return nil, nil
	}
	return websockets.NewPublisher(ctx, d.Store, d.Store, d.Config.Websocket.APIEndpoint, d.Logger)
}

// Policy returns the configured unlock terms.
func (d *Deps) Policy() payments.Policy {
	u := d.Config.Unlock
	return payments.Policy{AmountMinorUnits: u.AmountMinorUnits, Currency: u.Currency, PendingTimeout: u.PendingTimeout}
}

// Resolver builds the entitlement resolver over the store.
func (d *Deps) Resolver() *entitlement.Resolver {
	return entitlement.NewResolver(d.Store, d.Logger)
}

// PaymentService wires the payment workflow. notifier may be nil.
func (d *Deps) PaymentService(source gateway.CompletionSource, publisher events.Publisher, notifier websockets.Publisher) *payments.Service {
	opts := []payments.Option{payments.WithEventPublisher(publisher)}
	if notifier != nil {
		opts = append(opts, payments.WithNotifier(notifier))
	}
	return payments.NewService(
		d.Store,
		d.Catalog,
		d.Resolver(),
		source,
		d.Policy(),
		d.Logger,
		opts...,
	)
}

// Close releases everything New and the builders opened, newest first.
func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.Logger.Warn("failed to close dependency", zap.Error(err))
		}
	}
}
