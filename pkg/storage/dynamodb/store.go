package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/contact-unlock/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables holds the DynamoDB table names used by the Store.
type Tables struct {
	Attempts             string
	Entitlements         string
	Properties           string
	AdminSessions        string
	WebsocketConnections string
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                        DynamoDBAPI
	AttemptsTableName             string
	EntitlementsTableName         string
	PropertiesTableName           string
	AdminSessionsTableName        string
	WebsocketConnectionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client:                        client,
		AttemptsTableName:             tables.Attempts,
		EntitlementsTableName:         tables.Entitlements,
		PropertiesTableName:           tables.Properties,
		AdminSessionsTableName:        tables.AdminSessions,
		WebsocketConnectionsTableName: tables.WebsocketConnections,
	}
}

// Make sure we conform to the interfaces
var (
	_ storage.Storage          = (*Store)(nil)
	_ storage.WebSocketManager = (*Store)(nil)
)

// timestamp returns the current UTC time at second precision. Stored times are
// RFC3339 strings, so a fixed width keeps range conditions on them ordered.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// canceledByCondition reports whether a TransactWriteItems call was canceled
// because the condition on the item at index failed.
func canceledByCondition(err error, index int) bool {
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return false
	}
	if index >= len(canceled.CancellationReasons) {
		return false
	}
	return aws.ToString(canceled.CancellationReasons[index].Code) == "ConditionalCheckFailed"
}
