package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/chris/contact-unlock/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateAttempt(t *testing.T) {
	newAttempt := func() *models.PaymentAttempt {
		return &models.PaymentAttempt{UserId: "user1", PropertyId: "prop1", AmountMinorUnits: 9900, Currency: "inr"}
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AttemptsTableName: "attempts", EntitlementsTableName: "entitlements"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			if len(input.TransactItems) != 2 {
				return false
			}
			claim, attempt := input.TransactItems[0].Put, input.TransactItems[1].Put
			return aws.ToString(claim.TableName) == "entitlements" &&
				aws.ToString(attempt.TableName) == "attempts" &&
				claim.Item["pair_key"].(*types.AttributeValueMemberS).Value == "user1#prop1" &&
				attempt.Item["status"].(*types.AttributeValueMemberS).Value == "pending"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		created, err := store.CreateAttempt(context.Background(), newAttempt(), 15*time.Minute)

		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, models.PENDING, created.Status)
		assert.Equal(t, "user1#prop1", created.PairKey)
		assert.Nil(t, created.GatewayReference)
		assert.Nil(t, created.UnlockedAt)
		assert.False(t, created.CreatedAt.IsZero())
		mockClient.AssertExpectations(t)
	})

	t.Run("Pair Already Claimed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AttemptsTableName: "attempts", EntitlementsTableName: "entitlements"}

		canceled := &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, canceled).Once()

		created, err := store.CreateAttempt(context.Background(), newAttempt(), 15*time.Minute)

		assert.Nil(t, created)
		assert.ErrorIs(t, err, storage.ErrPairClaimed)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AttemptsTableName: "attempts", EntitlementsTableName: "entitlements"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

		_, err := store.CreateAttempt(context.Background(), newAttempt(), 15*time.Minute)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrPairClaimed)
		assert.Contains(t, err.Error(), "failed to create payment attempt in DynamoDB")
		mockClient.AssertExpectations(t)
	})
}
