package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sicko7947/gamestate"
)

// DynamoDBHistory implements gamestate.HistoryStore using AWS DynamoDB
type DynamoDBHistory struct {
	client    DynamoDBClient
	tableName string
}

// NewDynamoDBHistory creates a new DynamoDB-backed history store
func NewDynamoDBHistory(client DynamoDBClient, tableName string) gamestate.HistoryStore {
	return &DynamoDBHistory{
		client:    client,
		tableName: tableName,
	}
}

func (s *DynamoDBHistory) Append(ctx context.Context, entry *gamestate.HistoryEntry) error {
	// Marshal the entry
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	// Add keys
	item[AttrPK] = &types.AttributeValueMemberS{Value: sessionPK(entry.SessionID)}
	item[AttrSK] = &types.AttributeValueMemberS{Value: historyEntrySK(entry.Kind, entry.Seq)}
	item[AttrEntityType] = &types.AttributeValueMemberS{Value: EntityTypeHistoryEntry}

	// Entries are append-only
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var conflict *types.ConditionalCheckFailedException
		if errors.As(err, &conflict) {
			msg := fmt.Sprintf("history entry %s/%d already exists", entry.SessionID, entry.Seq)
			return fmt.Errorf("%w: %w", gamestate.NewStoreError(gamestate.ErrCodeConflict, msg), err)
		}
		return persistenceError("failed to append history entry", err)
	}

	return nil
}

func (s *DynamoDBHistory) List(ctx context.Context, sessionID string, filter gamestate.HistoryFilter) ([]*gamestate.HistoryEntry, error) {
	var entries []*gamestate.HistoryEntry

	err := s.query(ctx, sessionID, entryKindPrefix(filter.Kind), func(item map[string]types.AttributeValue) error {
		var entry gamestate.HistoryEntry
		if err := attributevalue.UnmarshalMap(item, &entry); err != nil {
			return fmt.Errorf("failed to unmarshal history entry: %w", err)
		}
		entries = append(entries, &entry)
		return nil
	})
	if err != nil {
		return nil, persistenceError("failed to list history", err)
	}

	// SK groups entries by kind; callers expect mutation order
	sortBySeq(entries)
	return applyLimit(entries, filter.Limit), nil
}

func (s *DynamoDBHistory) DeleteSession(ctx context.Context, sessionID string) error {
	var keys []map[string]types.AttributeValue

	err := s.query(ctx, sessionID, entryPrefix(), func(item map[string]types.AttributeValue) error {
		keys = append(keys, map[string]types.AttributeValue{
			AttrPK: item[AttrPK],
			AttrSK: item[AttrSK],
		})
		return nil
	})
	if err != nil {
		return persistenceError("failed to delete history", err)
	}

	if len(keys) == 0 {
		return gamestate.NewStoreError(gamestate.ErrCodeNotFound,
			fmt.Sprintf("no history for session %s", sessionID))
	}

	for _, key := range keys {
		_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.tableName),
			Key:       key,
		})
		if err != nil {
			return persistenceError("failed to delete history entry", err)
		}
	}

	return nil
}

// query pages through every item in a session whose SK starts with prefix
func (s *DynamoDBHistory) query(ctx context.Context, sessionID, prefix string, visit func(map[string]types.AttributeValue) error) error {
	var lastEvaluatedKey map[string]types.AttributeValue

	// Paginate through all results
	for {
		queryInput := &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: sessionPK(sessionID)},
				":sk": &types.AttributeValueMemberS{Value: prefix},
			},
		}

		if lastEvaluatedKey != nil {
			queryInput.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := s.client.Query(ctx, queryInput)
		if err != nil {
			return err
		}

		for _, item := range result.Items {
			if err := visit(item); err != nil {
				return err
			}
		}

		// Check if there are more results
		if len(result.LastEvaluatedKey) == 0 {
			return nil
		}
		lastEvaluatedKey = result.LastEvaluatedKey
	}
}

// persistenceError tags a backend failure while keeping the SDK error
// reachable through errors.As
func persistenceError(msg string, err error) error {
	return fmt.Errorf("%w: %w", gamestate.NewStoreError(gamestate.ErrCodePersistence, msg), err)
}
