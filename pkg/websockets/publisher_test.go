package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type fakeAPIGateway struct {
	posted []string
	data   [][]byte
	errs   map[string]error
}

func (f *fakeAPIGateway) PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error) {
	id := aws.ToString(params.ConnectionId)
	f.posted = append(f.posted, id)
	f.data = append(f.data, params.Data)
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	return &apigatewaymanagementapi.PostToConnectionOutput{}, nil
}

func TestDefaultPublisher_Publish(t *testing.T) {
	attempt := &models.PaymentAttempt{Id: "attempt1", UserId: "user1", PropertyId: "prop1", Status: models.COMPLETED}

	t.Run("Only User Connections Receive", func(t *testing.T) {
		store := new(mocks.WebSocketManager)
		store.On("GetConnectionsByUser", mock.Anything, "user1").Return([]string{"c1", "c2"}, nil).Once()
		api := &fakeAPIGateway{}
		p := NewPublisherWithClient(store, store, api, zap.NewNop())

		err := p.Publish(context.Background(), "user1", NewEntitlementUpdate(attempt))

		assert.NoError(t, err)
		assert.Equal(t, []string{"c1", "c2"}, api.posted)

		var msg struct {
			Type    MessageType              `json:"type"`
			Payload EntitlementUpdatePayload `json:"payload"`
		}
		assert.NoError(t, json.Unmarshal(api.data[0], &msg))
		assert.Equal(t, MessageTypeEntitlementUpdate, msg.Type)
		assert.Equal(t, "prop1", msg.Payload.PropertyID)
		store.AssertExpectations(t)
	})

	t.Run("Gone Connection Is Removed", func(t *testing.T) {
		store := new(mocks.WebSocketManager)
		store.On("GetConnectionsByUser", mock.Anything, "user1").Return([]string{"stale", "live"}, nil).Once()
		store.On("RemoveConnection", mock.Anything, "stale").Return(nil).Once()
		api := &fakeAPIGateway{errs: map[string]error{"stale": &apigwtypes.GoneException{}}}
		p := NewPublisherWithClient(store, store, api, zap.NewNop())

		err := p.Publish(context.Background(), "user1", NewEntitlementUpdate(attempt))

		assert.NoError(t, err)
		assert.Equal(t, []string{"stale", "live"}, api.posted)
		store.AssertExpectations(t)
	})

	t.Run("Lookup Fails", func(t *testing.T) {
		store := new(mocks.WebSocketManager)
		store.On("GetConnectionsByUser", mock.Anything, "user1").Return(nil, errors.New("query failed")).Once()
		p := NewPublisherWithClient(store, store, &fakeAPIGateway{}, zap.NewNop())

		err := p.Publish(context.Background(), "user1", NewEntitlementUpdate(attempt))

		assert.Error(t, err)
		store.AssertExpectations(t)
	})
}
