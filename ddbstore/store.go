// Package ddbstore implements versionpager.VersionReader on top of DynamoDB.
//
// Table schema:
//   - Partition key: pk (string) - "<hex entity id>#<family>:<qualifier>"
//   - Sort key: ts (number) - version timestamp
//   - val (binary) - version value
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name versions \
//	  --attribute-definitions AttributeName=pk,AttributeType=S AttributeName=ts,AttributeType=N \
//	  --key-schema AttributeName=pk,KeyType=HASH AttributeName=ts,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package ddbstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Alp4ka/versionpager"
)

const (
	attrPartitionKey = "pk"
	attrTimestamp    = "ts"
	attrValue        = "val"
)

// ErrInvalidItem is returned when a stored item misses an attribute or has
// the wrong attribute type.
var ErrInvalidItem = errors.New("invalid version item")

// Client is the subset of *dynamodb.Client the store uses.
type Client interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store reads and writes versions in a DynamoDB table.
type Store struct {
	client    Client
	tableName string
}

func New(client Client, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// NewFromConfig builds a store with a client from the default AWS
// configuration chain (environment, shared config, instance role).
func NewFromConfig(ctx context.Context, tableName string, optFns ...func(*config.LoadOptions) error) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return New(dynamodb.NewFromConfig(cfg), tableName), nil
}

func partitionKey(entityID versionpager.EntityID, column versionpager.ColumnName) string {
	return entityID.String() + "#" + column.String()
}

func formatTimestamp(ts int64) string {
	return strconv.FormatInt(ts, 10)
}

// Put writes one version, replacing the version with the same timestamp.
func (s *Store) Put(ctx context.Context, entityID versionpager.EntityID, column versionpager.ColumnName, timestamp int64, value []byte) error {
	if !column.IsFullyQualified() {
		return fmt.Errorf("%w: column '%s' is not fully qualified", versionpager.ErrInvalidArgument, column)
	}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			attrPartitionKey: &types.AttributeValueMemberS{Value: partitionKey(entityID, column)},
			attrTimestamp:    &types.AttributeValueMemberN{Value: formatTimestamp(timestamp)},
			attrValue:        &types.AttributeValueMemberB{Value: value},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put version to DynamoDB: %w", err)
	}

	return nil
}

// ReadVersions - implements versionpager.VersionReader.
//
// DynamoDB applies Limit before the filter expression and caps every reply
// at 1MB, so the query is continued from LastEvaluatedKey until the window
// is full or the partition is exhausted.
func (s *Store) ReadVersions(ctx context.Context, read versionpager.PointRead) ([]versionpager.Cell, error) {
	if read.MaxVersions <= 0 || read.MaxTimestamp <= read.MinTimestamp {
		return nil, nil
	}

	input := s.queryInput(read)
	cells := make([]versionpager.Cell, 0, min(read.MaxVersions, 64))

	for {
		remaining := read.MaxVersions - len(cells)
		input.Limit = aws.Int32(int32(min(remaining, math.MaxInt32)))

		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query DynamoDB: %w", err)
		}

		for _, item := range out.Items {
			if len(cells) >= read.MaxVersions {
				break
			}

			cell, err := toCell(item, read.Column)
			if err != nil {
				return nil, err
			}
			cells = append(cells, cell)
		}

		if len(cells) >= read.MaxVersions || len(out.LastEvaluatedKey) == 0 {
			return cells, nil
		}

		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (s *Store) queryInput(read versionpager.PointRead) *dynamodb.QueryInput {
	names := map[string]string{
		"#pk": attrPartitionKey,
		"#ts": attrTimestamp,
	}
	values := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: partitionKey(read.EntityID, read.Column)},
		":lo": &types.AttributeValueMemberN{Value: formatTimestamp(read.MinTimestamp)},
		// BETWEEN is inclusive, the max timestamp is not.
		":hi": &types.AttributeValueMemberN{Value: formatTimestamp(read.MaxTimestamp - 1)},
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    aws.String("#pk = :pk AND #ts BETWEEN :lo AND :hi"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(false), // Newest first.
		ConsistentRead:            aws.Bool(true),
	}

	if !read.Filter.IsEmpty() {
		names["#val"] = attrValue

		conds := make([]string, 0, len(read.Filter))
		for i, c := range read.Filter {
			placeholder := fmt.Sprintf(":f%d", i)
			values[placeholder] = &types.AttributeValueMemberB{Value: c.Operand}
			conds = append(conds, fmt.Sprintf("#val %s %s", c.Operator, placeholder))
		}
		input.FilterExpression = aws.String(strings.Join(conds, " AND "))
	}

	return input
}

func toCell(item map[string]types.AttributeValue, column versionpager.ColumnName) (versionpager.Cell, error) {
	tsAttr, ok := item[attrTimestamp].(*types.AttributeValueMemberN)
	if !ok {
		return versionpager.Cell{}, fmt.Errorf("%w: missing %s attribute", ErrInvalidItem, attrTimestamp)
	}

	ts, err := strconv.ParseInt(tsAttr.Value, 10, 64)
	if err != nil {
		return versionpager.Cell{}, fmt.Errorf("%w: failed to parse timestamp: %w", ErrInvalidItem, err)
	}

	cell := versionpager.Cell{
		Family:    column.Family,
		Qualifier: column.Qualifier,
		Timestamp: ts,
	}

	// A version may legitimately have no value.
	if valAttr, ok := item[attrValue].(*types.AttributeValueMemberB); ok {
		cell.Value = valAttr.Value
	}

	return cell, nil
}

var _ versionpager.VersionReader = (*Store)(nil)
