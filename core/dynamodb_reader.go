package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBClient defines the interface needed for scanning.
type DynamoDBClient interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoDBTableReader scans a DynamoDB table. Items become rows; the columns
// are the sorted union of attribute names.
type DynamoDBTableReader struct {
	Client    DynamoDBClient
	TableName string
}

// NewDynamoDBTableReader creates a reader with the given AWS config.
func NewDynamoDBTableReader(cfg aws.Config, table string) *DynamoDBTableReader {
	return &DynamoDBTableReader{
		Client:    dynamodb.NewFromConfig(cfg),
		TableName: table,
	}
}

func (r *DynamoDBTableReader) Read(ctx context.Context) (*Table, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.TableName),
	}

	paginator := dynamodb.NewScanPaginator(r.Client, input)
	var items []map[string]interface{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", r.TableName, err)
		}

		var pageItems []map[string]interface{}
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		items = append(items, pageItems...)
	}

	seen := make(map[string]struct{})
	var columns []string
	for _, item := range items {
		for k := range item {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	data := make([][]string, 0, len(items))
	for _, item := range items {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = stringify(item[c])
		}
		data = append(data, row)
	}
	return NewTable(columns, data), nil
}
