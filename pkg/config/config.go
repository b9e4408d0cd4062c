package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// checkoutExpiryMargin covers the gap between creating an attempt and creating
// its checkout session.
const checkoutExpiryMargin = time.Minute

// Config holds every setting for the API server and the lambdas.
type Config struct {
	Env      string `yaml:"env" validate:"required"`
	LogLevel string `yaml:"log_level" validate:"required,oneof=debug info warn error"`
	HTTPPort string `yaml:"http_port" validate:"required,numeric"`

	Store struct {
		Driver      string `yaml:"driver" validate:"required,oneof=dynamodb postgres"`
		PostgresDSN string `yaml:"postgres_dsn" validate:"required_if=Driver postgres"`
		Tables      struct {
			Attempts             string `yaml:"attempts"`
			Entitlements         string `yaml:"entitlements"`
			Properties           string `yaml:"properties"`
			AdminSessions        string `yaml:"admin_sessions"`
			WebsocketConnections string `yaml:"websocket_connections"`
		} `yaml:"tables"`
	} `yaml:"store"`

	Redis struct {
		Addr       string        `yaml:"addr"`
		Password   string        `yaml:"password"`
		CatalogTTL time.Duration `yaml:"catalog_ttl" validate:"gte=0"`
	} `yaml:"redis"`

	Auth struct {
		JWTSecret         string `yaml:"jwt_secret" validate:"omitempty,min=16"`
		AdminEmail        string `yaml:"admin_email" validate:"omitempty,email"`
		AdminPasswordHash string `yaml:"admin_password_hash"`
	} `yaml:"auth"`

	Unlock struct {
		AmountMinorUnits int64         `yaml:"amount_minor_units" validate:"gt=0"`
		Currency         string        `yaml:"currency" validate:"required,len=3"`
		PendingTimeout   time.Duration `yaml:"pending_timeout" validate:"gt=0"`
	} `yaml:"unlock"`

	Completion struct {
		Mode      string        `yaml:"mode" validate:"required,oneof=gateway simulated"`
		Delay     time.Duration `yaml:"delay" validate:"gte=0,lte=15m"`
		Scheduler string        `yaml:"scheduler" validate:"required,oneof=sqs local"`
		QueueURL  string        `yaml:"queue_url" validate:"required_if=Scheduler sqs"`
	} `yaml:"completion"`

	Stripe struct {
		SecretKey     string `yaml:"secret_key"`
		WebhookSecret string `yaml:"webhook_secret"`
		SuccessURL    string `yaml:"success_url" validate:"omitempty,url"`
		CancelURL     string `yaml:"cancel_url" validate:"omitempty,url"`
		// SessionTTL bounds how long a Checkout page can be paid.
		SessionTTL time.Duration `yaml:"session_ttl" validate:"gte=30m,lte=24h"`
	} `yaml:"stripe"`

	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`

	Websocket struct {
		APIEndpoint string `yaml:"api_endpoint"`
	} `yaml:"websocket"`

	Tracing struct {
		ServiceName    string `yaml:"service_name" validate:"required"`
		JaegerEndpoint string `yaml:"jaeger_endpoint"`
	} `yaml:"tracing"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	cfg := &Config{Env: "local", LogLevel: "info", HTTPPort: "8080"}
	cfg.Store.Driver = "dynamodb"
	cfg.Redis.CatalogTTL = 5 * time.Minute
	cfg.Unlock.AmountMinorUnits = 9900
	cfg.Unlock.Currency = "inr"
	cfg.Unlock.PendingTimeout = 15 * time.Minute
	cfg.Completion.Mode = "simulated"
	cfg.Completion.Delay = 2 * time.Second
	cfg.Stripe.SessionTTL = 30 * time.Minute
	cfg.Completion.Scheduler = "local"
	cfg.Kafka.Topic = "payment-ledger"
	cfg.Tracing.ServiceName = "contact-unlock"
	return cfg
}

// Load builds the configuration from defaults, an optional YAML file at
// CONFIG_PATH, and environment variables, in that order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Env, "APP_ENV")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.HTTPPort, "HTTP_PORT")

	setString(&c.Store.Driver, "STORE_DRIVER")
	setString(&c.Store.PostgresDSN, "POSTGRES_DSN")
	setString(&c.Store.Tables.Attempts, "DYNAMODB_ATTEMPTS_TABLE_NAME")
	setString(&c.Store.Tables.Entitlements, "DYNAMODB_ENTITLEMENTS_TABLE_NAME")
	setString(&c.Store.Tables.Properties, "DYNAMODB_PROPERTIES_TABLE_NAME")
	setString(&c.Store.Tables.AdminSessions, "DYNAMODB_ADMIN_SESSIONS_TABLE_NAME")
	setString(&c.Store.Tables.WebsocketConnections, "DYNAMODB_WEBSOCKET_CONNECTIONS_TABLE_NAME")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.AdminEmail, "ADMIN_EMAIL")
	setString(&c.Auth.AdminPasswordHash, "ADMIN_PASSWORD_HASH")

	setString(&c.Unlock.Currency, "UNLOCK_CURRENCY")
	setString(&c.Completion.Mode, "COMPLETION_MODE")
	setString(&c.Completion.Scheduler, "COMPLETION_SCHEDULER")
	setString(&c.Completion.QueueURL, "SQS_QUEUE_URL")

	setString(&c.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	setString(&c.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&c.Stripe.SuccessURL, "STRIPE_SUCCESS_URL")
	setString(&c.Stripe.CancelURL, "STRIPE_CANCEL_URL")

	setString(&c.Kafka.Topic, "KAFKA_TOPIC")
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}

	setString(&c.Websocket.APIEndpoint, "WEBSOCKET_API_ENDPOINT")
	setString(&c.Tracing.ServiceName, "OTEL_SERVICE_NAME")
	setString(&c.Tracing.JaegerEndpoint, "JAEGER_ENDPOINT")

	if v := os.Getenv("UNLOCK_AMOUNT_MINOR_UNITS"); v != "" {
		amount, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UNLOCK_AMOUNT_MINOR_UNITS %q: %w", v, err)
		}
		c.Unlock.AmountMinorUnits = amount
	}
	for env, dst := range map[string]*time.Duration{
		"UNLOCK_PENDING_TIMEOUT": &c.Unlock.PendingTimeout,
		"COMPLETION_DELAY":       &c.Completion.Delay,
		"CATALOG_CACHE_TTL":      &c.Redis.CatalogTTL,
		"STRIPE_SESSION_TTL":     &c.Stripe.SessionTTL,
	} {
		if err := setDuration(dst, env); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the struct tags and the settings every binary needs.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Store.Driver == "dynamodb" {
		t := c.Store.Tables
		if t.Attempts == "" || t.Entitlements == "" || t.Properties == "" || t.AdminSessions == "" || t.WebsocketConnections == "" {
			return errors.New("invalid configuration: one or more DynamoDB table names are not set")
		}
	}
	// A checkout page must expire before its attempt can be abandoned.
	if c.Completion.Mode == "gateway" && c.Unlock.PendingTimeout < c.Stripe.SessionTTL+checkoutExpiryMargin {
		return fmt.Errorf("invalid configuration: UNLOCK_PENDING_TIMEOUT must be at least %s in gateway mode", c.Stripe.SessionTTL+checkoutExpiryMargin)
	}
	return nil
}

// RequireAPI checks the settings only the HTTP server needs.
func (c *Config) RequireAPI() error {
	if c.Auth.JWTSecret == "" || c.Auth.AdminEmail == "" || c.Auth.AdminPasswordHash == "" {
		return errors.New("invalid configuration: JWT_SECRET, ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required")
	}
	if c.Completion.Mode == "gateway" && (c.Stripe.SecretKey == "" || c.Stripe.WebhookSecret == "") {
		return errors.New("invalid configuration: STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET are required in gateway mode")
	}
	return nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, env string) error {
	v := os.Getenv(env)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", env, v, err)
	}
	*dst = d
	return nil
}
