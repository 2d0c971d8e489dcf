package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

// CreateTablesIfNotExist creates the audit-log table for local development
func CreateTablesIfNotExist(ctx context.Context, client *dynamodb.Client, config DynamoConfig, logger zerolog.Logger) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(config.AuditLogTable),
	})
	if err == nil {
		logger.Info().Str("table", config.AuditLogTable).Msg("table already exists")
		return nil
	}

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(config.AuditLogTable),
		KeySchema: []dbtypes.KeySchemaElement{
			{AttributeName: aws.String("DateKey"), KeyType: dbtypes.KeyTypeHash},
			{AttributeName: aws.String("EventID"), KeyType: dbtypes.KeyTypeRange},
		},
		AttributeDefinitions: []dbtypes.AttributeDefinition{
			{AttributeName: aws.String("DateKey"), AttributeType: dbtypes.ScalarAttributeTypeS},
			{AttributeName: aws.String("EventID"), AttributeType: dbtypes.ScalarAttributeTypeS},
		},
		BillingMode: dbtypes.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", config.AuditLogTable, err)
	}
	logger.Info().Str("table", config.AuditLogTable).Msg("table created")
	return nil
}

// TruncateAll deletes all items from the audit-log table (scan + batch delete)
func (s *DynamoDBStore) TruncateAll() error {
	ctx := context.Background()

	scan, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:            aws.String(s.config.AuditLogTable),
		ProjectionExpression: aws.String("DateKey, EventID"),
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", s.config.AuditLogTable, err)
	}

	// BatchWriteItem accepts at most 25 requests per call
	for start := 0; start < len(scan.Items); start += 25 {
		end := start + 25
		if end > len(scan.Items) {
			end = len(scan.Items)
		}

		requests := make([]dbtypes.WriteRequest, 0, end-start)
		for _, item := range scan.Items[start:end] {
			requests = append(requests, dbtypes.WriteRequest{
				DeleteRequest: &dbtypes.DeleteRequest{
					Key: map[string]dbtypes.AttributeValue{
						"DateKey": item["DateKey"],
						"EventID": item["EventID"],
					},
				},
			})
		}

		_, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]dbtypes.WriteRequest{
				s.config.AuditLogTable: requests,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to batch delete from %s: %w", s.config.AuditLogTable, err)
		}
	}

	return nil
}
