package websockets

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/websockets"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// TokenVerifier turns a bearer token into a user.
type TokenVerifier interface {
	Verify(token string) (*identity.User, error)
}

// Handler handles WebSocket connections. Browsers cannot set headers on the
// upgrade request, so the bearer token travels in the "token" query parameter.
type Handler struct {
	connManager websockets.ConnectionManager
	hub         *websockets.LocalHub
	verifier    TokenVerifier
	logger      *zap.Logger
}

// NewHandler creates a Handler for API Gateway connections.
func NewHandler(connManager websockets.ConnectionManager, verifier TokenVerifier, logger *zap.Logger) *Handler {
	return &Handler{connManager: connManager, verifier: verifier, logger: logger}
}

// NewLocalHandler creates a Handler that holds connections in hub, for the
// local HTTP server.
func NewLocalHandler(hub *websockets.LocalHub, verifier TokenVerifier, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, verifier: verifier, logger: logger}
}

// HandleConnect registers a connection for the authenticated user.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	user, err := h.verifier.Verify(request.QueryStringParameters["token"])
	if err != nil {
		h.logger.Info("rejected websocket connection", zap.String("connection_id", connectionID), zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusUnauthorized}, nil
	}

	if err := h.connManager.AddConnection(ctx, connectionID, user.ID); err != nil {
		h.logger.Error("failed to save connection ID", zap.String("connection_id", connectionID), zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}

	h.logger.Info("client connected", zap.String("connection_id", connectionID), zap.String("user_id", user.ID))
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDisconnect forgets a connection.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	h.logger.Info("client disconnected", zap.String("connection_id", connectionID))

	if err := h.connManager.RemoveConnection(ctx, connectionID); err != nil {
		h.logger.Error("failed to delete connection ID", zap.String("connection_id", connectionID), zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDefault handles messages sent from a client. Clients only listen, so
// messages are logged and dropped.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logger.Debug("received message", zap.String("connection_id", request.RequestContext.ConnectionID))
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections for local development.
		return true
	},
}

// ServeHTTP handles WebSocket requests for the local development server.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, err := h.verifier.Verify(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	connectionID := h.hub.Register(user.ID, conn)
	h.logger.Info("client connected locally", zap.String("connection_id", connectionID), zap.String("user_id", user.ID))
	defer func() {
		h.hub.Unregister(user.ID, connectionID)
		h.logger.Info("client disconnected locally", zap.String("connection_id", connectionID))
	}()

	// The read loop only detects when the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("unexpected close error", zap.Error(err))
			}
			break
		}
	}
}
