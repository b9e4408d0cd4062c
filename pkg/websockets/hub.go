package websockets

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// defaultWriteTimeout bounds a single push so a client that stopped reading
// cannot stall the payment flow that triggered it.
const defaultWriteTimeout = 5 * time.Second

// LocalHub tracks gorilla websocket connections held by this process. It is the
// Publisher for the local HTTP server, where there is no API Gateway to push through.
type LocalHub struct {
	mu           sync.RWMutex
	conns        map[string]map[string]*hubConn
	writeTimeout time.Duration
	logger       *zap.Logger
}

type hubConn struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewLocalHub creates an empty LocalHub.
func NewLocalHub(logger *zap.Logger) *LocalHub {
	return &LocalHub{
		conns:        make(map[string]map[string]*hubConn),
		writeTimeout: defaultWriteTimeout,
		logger:       logger,
	}
}

var _ Publisher = (*LocalHub)(nil)

// Register adds a connection for userID and returns its connection ID.
func (h *LocalHub) Register(userID string, conn *websocket.Conn) string {
	id := uuid.New().String()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[string]*hubConn)
	}
	h.conns[userID][id] = &hubConn{id: id, conn: conn}
	return id
}

// Unregister forgets a connection.
func (h *LocalHub) Unregister(userID, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[userID], connectionID)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// Publish writes the message to each of the user's local connections. A
// connection whose write fails or times out is closed and dropped.
func (h *LocalHub) Publish(_ context.Context, userID string, message Message) error {
	h.mu.RLock()
	targets := make([]*hubConn, 0, len(h.conns[userID]))
	for _, c := range h.conns[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.mu.Lock()
		err := c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err == nil {
			err = c.conn.WriteJSON(message)
		}
		c.mu.Unlock()
		if err != nil {
			h.logger.Warn("dropping local connection after failed write",
				zap.String("user_id", userID),
				zap.String("connection_id", c.id),
				zap.Error(err),
			)
			c.conn.Close()
			h.Unregister(userID, c.id)
		}
	}
	return nil
}
