package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

// Store implements the Storage interface on PostgreSQL.
type Store struct {
	DB *sql.DB
}

// New creates a Store over an open database handle.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Make sure we conform to the interfaces
var (
	_ storage.Storage          = (*Store)(nil)
	_ storage.WebSocketManager = (*Store)(nil)
)

// Open connects to PostgreSQL, checks the connection and applies the schema.
func Open(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := New(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Database connection established")
	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}

// schema creates the tables on first start. The two partial unique indexes are
// what keep a pair to one pending and one completed attempt.
const schema = `
CREATE TABLE IF NOT EXISTS payment_attempts (
	id UUID PRIMARY KEY,
	user_id VARCHAR(255) NOT NULL,
	property_id VARCHAR(255) NOT NULL,
	amount_minor_units BIGINT NOT NULL,
	currency VARCHAR(8) NOT NULL,
	status VARCHAR(16) NOT NULL,
	gateway_reference VARCHAR(255),
	failure_reason TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	unlocked_at TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS payment_attempts_one_completed
	ON payment_attempts (user_id, property_id) WHERE status = 'completed';
CREATE UNIQUE INDEX IF NOT EXISTS payment_attempts_one_pending
	ON payment_attempts (user_id, property_id) WHERE status = 'pending';
CREATE INDEX IF NOT EXISTS payment_attempts_user ON payment_attempts (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS payment_attempts_property ON payment_attempts (property_id, created_at DESC);

CREATE TABLE IF NOT EXISTS properties (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	price VARCHAR(64) NOT NULL,
	location VARCHAR(255) NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	bedrooms INTEGER NOT NULL DEFAULT 0,
	bathrooms INTEGER NOT NULL DEFAULT 0,
	area VARCHAR(64) NOT NULL DEFAULT '',
	type VARCHAR(64) NOT NULL DEFAULT '',
	details TEXT NOT NULL DEFAULT '',
	owner_name VARCHAR(255) NOT NULL,
	owner_phone VARCHAR(64) NOT NULL,
	date_posted TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS admin_sessions (
	token VARCHAR(64) PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	issued_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS websocket_connections (
	connection_id VARCHAR(255) PRIMARY KEY,
	user_id VARCHAR(255) NOT NULL
);
CREATE INDEX IF NOT EXISTS websocket_connections_user ON websocket_connections (user_id);
`

// Migrate creates any missing tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// timestamp returns the current UTC time at second precision, matching the
// DynamoDB store so both backends report identical values.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
