package websockets_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	wshandler "github.com/chris/contact-unlock/pkg/handlers/websockets"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/storage/mocks"
	"github.com/chris/contact-unlock/pkg/websockets"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef"

func signToken(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func connectRequest(connectionID, token string) events.APIGatewayWebsocketProxyRequest {
	return events.APIGatewayWebsocketProxyRequest{
		QueryStringParameters: map[string]string{"token": token},
		RequestContext:        events.APIGatewayWebsocketProxyRequestContext{ConnectionID: connectionID},
	}
}

func TestHandleConnect(t *testing.T) {
	verifier := identity.NewVerifier(testSecret)

	t.Run("Success", func(t *testing.T) {
		mockConns := new(mocks.WebSocketManager)
		mockConns.On("AddConnection", context.Background(), "conn-1", "user-1").Return(nil)

		h := wshandler.NewHandler(mockConns, verifier, zap.NewNop())
		resp, err := h.HandleConnect(context.Background(), connectRequest("conn-1", signToken(t, "user-1")))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockConns.AssertExpectations(t)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		mockConns := new(mocks.WebSocketManager)

		h := wshandler.NewHandler(mockConns, verifier, zap.NewNop())
		resp, err := h.HandleConnect(context.Background(), connectRequest("conn-1", "garbage"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		mockConns.AssertNotCalled(t, "AddConnection")
	})

	t.Run("Store Error", func(t *testing.T) {
		mockConns := new(mocks.WebSocketManager)
		mockConns.On("AddConnection", context.Background(), "conn-1", "user-1").Return(assert.AnError)

		h := wshandler.NewHandler(mockConns, verifier, zap.NewNop())
		resp, err := h.HandleConnect(context.Background(), connectRequest("conn-1", signToken(t, "user-1")))

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHandleDisconnect(t *testing.T) {
	mockConns := new(mocks.WebSocketManager)
	mockConns.On("RemoveConnection", context.Background(), "conn-1").Return(nil)

	h := wshandler.NewHandler(mockConns, identity.NewVerifier(testSecret), zap.NewNop())
	resp, err := h.HandleDisconnect(context.Background(), connectRequest("conn-1", ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockConns.AssertExpectations(t)
}

func TestServeHTTP(t *testing.T) {
	hub := websockets.NewLocalHub(zap.NewNop())
	srv := httptest.NewServer(wshandler.NewLocalHandler(hub, identity.NewVerifier(testSecret), zap.NewNop()))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	t.Run("Rejects Missing Token", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)

		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Receives Own Updates", func(t *testing.T) {
		client, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+signToken(t, "user-1"), nil)
		require.NoError(t, err)
		defer client.Close()

		msg := websockets.Message{
			Type:    websockets.MessageTypeEntitlementUpdate,
			Payload: websockets.EntitlementUpdatePayload{PropertyID: "prop-1", AttemptID: "a-1", Status: "completed"},
		}
		// Registration happens after the upgrade completes, so retry until it lands.
		require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
		received := make(chan websockets.EntitlementUpdatePayload, 1)
		go func() {
			var got struct {
				Payload websockets.EntitlementUpdatePayload `json:"payload"`
			}
			if err := client.ReadJSON(&got); err == nil {
				received <- got.Payload
			}
		}()

		deadline := time.After(2 * time.Second)
		tick := time.NewTicker(20 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case got := <-received:
				assert.Equal(t, "prop-1", got.PropertyID)
				return
			case <-tick.C:
				require.NoError(t, hub.Publish(context.Background(), "user-1", msg))
			case <-deadline:
				t.Fatal("update was not delivered")
			}
		}
	})
}
