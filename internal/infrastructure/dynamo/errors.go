package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/nyssa-notify/internal/domain"
)

// ErrorRepo appends dispatch failures to the errors table.
type ErrorRepo struct {
	client    API
	tableName string
}

func NewErrorRepo(client API, tableName string) *ErrorRepo {
	return &ErrorRepo{client: client, tableName: tableName}
}

func (r *ErrorRepo) Put(ctx context.Context, e *domain.ErrorRecord) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal error record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put error record %s: %w", e.ID, err)
	}
	return nil
}
