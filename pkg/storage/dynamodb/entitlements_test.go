package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/chris/contact-unlock/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFindCompletedAttempt(t *testing.T) {
	onTable := func(name string) interface{} {
		return mock.MatchedBy(func(input *dynamodb.GetItemInput) bool {
			return aws.ToString(input.TableName) == name
		})
	}

	t.Run("Completed Claim", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AttemptsTableName: "attempts", EntitlementsTableName: "entitlements"}

		claimAV, _ := attributevalue.MarshalMap(models.EntitlementClaim{PairKey: "user1#prop1", AttemptId: "attempt1", Status: models.COMPLETED})
		completed := pendingAttempt()
		completed.Status = models.COMPLETED
		attemptAV, _ := attributevalue.MarshalMap(completed)

		mockClient.On("GetItem", mock.Anything, onTable("entitlements")).Return(&dynamodb.GetItemOutput{Item: claimAV}, nil).Once()
		mockClient.On("GetItem", mock.Anything, onTable("attempts")).Return(&dynamodb.GetItemOutput{Item: attemptAV}, nil).Once()

		result, err := store.FindCompletedAttempt(context.Background(), "user1", "prop1")

		require.NoError(t, err)
		assert.Equal(t, "attempt1", result.Id)
		assert.Equal(t, models.COMPLETED, result.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("No Claim", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AttemptsTableName: "attempts", EntitlementsTableName: "entitlements"}

		mockClient.On("GetItem", mock.Anything, onTable("entitlements")).Return(&dynamodb.GetItemOutput{}, nil).Once()

		_, err := store.FindCompletedAttempt(context.Background(), "user1", "prop1")

		assert.ErrorIs(t, err, storage.ErrAttemptNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Pending Claim", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AttemptsTableName: "attempts", EntitlementsTableName: "entitlements"}

		claimAV, _ := attributevalue.MarshalMap(models.EntitlementClaim{PairKey: "user1#prop1", AttemptId: "attempt1", Status: models.PENDING})
		mockClient.On("GetItem", mock.Anything, onTable("entitlements")).Return(&dynamodb.GetItemOutput{Item: claimAV}, nil).Once()

		_, err := store.FindCompletedAttempt(context.Background(), "user1", "prop1")

		assert.ErrorIs(t, err, storage.ErrAttemptNotFound)
		mockClient.AssertNotCalled(t, "GetItem", mock.Anything, onTable("attempts"))
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AttemptsTableName: "attempts", EntitlementsTableName: "entitlements"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("unavailable")).Once()

		_, err := store.FindCompletedAttempt(context.Background(), "user1", "prop1")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrAttemptNotFound)
		mockClient.AssertExpectations(t)
	})
}
