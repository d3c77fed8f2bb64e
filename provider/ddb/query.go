/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/entitymap/errors"
)

// Index names the key attributes of a table or secondary index. The attribute
// names are also the index map entries their values are expanded from.
type Index struct {
	// Name is the secondary index name; empty for the table itself.
	Name string
	// PartitionKey is the partition key attribute, e.g. "GSI1PK".
	PartitionKey string
	// SortKey is the sort key attribute, e.g. "GSI1SK". Optional.
	SortKey string
}

// TableIndex is the table's own PK/SK key.
var TableIndex = Index{PartitionKey: "PK", SortKey: "SK"}

// GSI returns the conventional index "GSI<n>" keyed by "GSI<n>PK" and "GSI<n>SK".
func GSI(n int) Index {
	name := fmt.Sprintf("GSI%d", n)
	return Index{Name: name, PartitionKey: name + "PK", SortKey: name + "SK"}
}

// QueryBuilder builds a Query request for an entity type with an index map.
// Key values fill the macros of the index map template of the key attribute,
// so with {"GSI1PK": "EMAIL#{Email}"} a partition value "a@b.c" queries
// "EMAIL#a@b.c".
type QueryBuilder struct {
	b          *StatementBuilder
	t          reflect.Type
	index      Index
	pkValue    string
	skValue    string
	skValue2   string
	skOperator string
	filters    []string
	filterVals map[string]types.AttributeValue
	limit      *int32
	descending bool
}

// Query starts a query of entity type t on the table key.
func (b *StatementBuilder) Query(t reflect.Type) *QueryBuilder {
	return &QueryBuilder{b: b, t: t, index: TableIndex, filterVals: make(map[string]types.AttributeValue)}
}

// OnIndex queries index instead of the table key.
func (q *QueryBuilder) OnIndex(index Index) *QueryBuilder {
	q.index = index
	return q
}

// WithPartitionKey sets the partition key value
func (q *QueryBuilder) WithPartitionKey(value string) *QueryBuilder {
	q.pkValue = value
	return q
}

// WithSortKey sets the sort key value with equals operator
func (q *QueryBuilder) WithSortKey(value string) *QueryBuilder {
	q.skValue, q.skOperator = value, "="
	return q
}

// WithSortKeyPrefix sets the sort key to use begins_with operator
func (q *QueryBuilder) WithSortKeyPrefix(prefix string) *QueryBuilder {
	q.skValue, q.skOperator = prefix, "begins_with"
	return q
}

// WithSortKeyCompare sets the sort key to use op, one of "<", "<=", ">" and ">=".
func (q *QueryBuilder) WithSortKeyCompare(op, value string) *QueryBuilder {
	q.skValue, q.skOperator = value, op
	return q
}

// WithSortKeyBetween sets the sort key to use BETWEEN operator
func (q *QueryBuilder) WithSortKeyBetween(start, end string) *QueryBuilder {
	q.skValue, q.skValue2, q.skOperator = start, end, "BETWEEN"
	return q
}

// WithFilter adds a filter expression
func (q *QueryBuilder) WithFilter(expression string, values map[string]types.AttributeValue) *QueryBuilder {
	q.filters = append(q.filters, expression)
	for k, v := range values {
		q.filterVals[k] = v
	}
	return q
}

// WithLimit sets the page size
func (q *QueryBuilder) WithLimit(limit int32) *QueryBuilder {
	q.limit = aws.Int32(limit)
	return q
}

// Descending reverses the sort key order
func (q *QueryBuilder) Descending() *QueryBuilder {
	q.descending = true
	return q
}

// Build constructs the Query request.
func (q *QueryBuilder) Build() (*sdk.QueryInput, error) {
	t, table, err := q.b.table(q.t)
	if err != nil {
		return nil, err
	}
	if q.pkValue == "" {
		return nil, errors.NewNullArgumentError("partitionKey")
	}
	if q.index.PartitionKey == "" {
		return nil, errors.NewInvalidArgumentError("index", "partition key attribute is required")
	}

	indexMap, ok := q.b.IndexMap(t)
	if !ok {
		return nil, errors.NewInvalidArgumentError("type", fmt.Sprintf("no index map for %s", t))
	}
	expand := func(attr, value string) (string, error) {
		template, ok := indexMap[attr]
		if !ok {
			return "", errors.NewInvalidArgumentError("index", fmt.Sprintf("%s is not in the index map of %s", attr, t))
		}
		return macroPattern.ReplaceAllLiteralString(template, value), nil
	}

	names := map[string]string{"#pk": q.index.PartitionKey}
	values := make(map[string]types.AttributeValue, len(q.filterVals)+3)

	pk, err := expand(q.index.PartitionKey, q.pkValue)
	if err != nil {
		return nil, err
	}
	values[":pk"] = &types.AttributeValueMemberS{Value: pk}
	conditions := []string{"#pk = :pk"}

	if q.skOperator != "" {
		if q.index.SortKey == "" {
			return nil, errors.NewInvalidArgumentError("index", "index has no sort key")
		}
		sk, err := expand(q.index.SortKey, q.skValue)
		if err != nil {
			return nil, err
		}
		names["#sk"] = q.index.SortKey
		values[":sk"] = &types.AttributeValueMemberS{Value: sk}

		switch q.skOperator {
		case "=", "<", "<=", ">", ">=":
			conditions = append(conditions, "#sk "+q.skOperator+" :sk")
		case "begins_with":
			conditions = append(conditions, "begins_with(#sk, :sk)")
		case "BETWEEN":
			sk2, err := expand(q.index.SortKey, q.skValue2)
			if err != nil {
				return nil, err
			}
			values[":sk2"] = &types.AttributeValueMemberS{Value: sk2}
			conditions = append(conditions, "#sk BETWEEN :sk AND :sk2")
		default:
			return nil, errors.NewInvalidArgumentError("operator", fmt.Sprintf("unsupported sort key operator %q", q.skOperator))
		}
	}

	input := &sdk.QueryInput{
		TableName:                table,
		KeyConditionExpression:   aws.String(strings.Join(conditions, " AND ")),
		ExpressionAttributeNames: names,
		Limit:                    q.limit,
	}
	if q.index.Name != "" {
		input.IndexName = aws.String(q.index.Name)
	}
	if q.descending {
		input.ScanIndexForward = aws.Bool(false)
	}
	if len(q.filters) > 0 {
		input.FilterExpression = aws.String(strings.Join(q.filters, " AND "))
		for k, v := range q.filterVals {
			values[k] = v
		}
	}
	input.ExpressionAttributeValues = values
	return input, nil
}

// StreamResult is one item of a Stream, or the error that ended it.
type StreamResult[T any] struct {
	Item  *T
	Page  int
	Index int64
	Error error
}

// Stream runs input page by page on client and sends the decoded items. The
// channel is closed after the last page, the first error, or when ctx is done.
func Stream[T any](ctx context.Context, b *StatementBuilder, client sdk.QueryAPIClient, input *sdk.QueryInput) <-chan StreamResult[T] {
	out := make(chan StreamResult[T])

	go func() {
		defer close(out)

		send := func(r StreamResult[T]) bool {
			select {
			case out <- r:
				return true
			case <-ctx.Done():
				return false
			}
		}

		var index int64
		p := sdk.NewQueryPaginator(client, input)
		for page := 1; p.HasMorePages(); page++ {
			res, err := p.NextPage(ctx)
			if err != nil {
				send(StreamResult[T]{Page: page, Index: index, Error: fmt.Errorf("query page %d: %w", page, err)})
				return
			}
			b.logger.Debug("query page", zap.Int("page", page), zap.Int("items", len(res.Items)))

			for _, item := range res.Items {
				entity, err := UnmarshalItem[T](b, item)
				if err != nil {
					send(StreamResult[T]{Page: page, Index: index, Error: err})
					return
				}
				if !send(StreamResult[T]{Item: entity, Page: page, Index: index}) {
					return
				}
				index++
			}
		}
	}()

	return out
}

// QueryAll runs input on client and returns the items of every page.
func QueryAll[T any](ctx context.Context, b *StatementBuilder, client sdk.QueryAPIClient, input *sdk.QueryInput) ([]*T, error) {
	var items []*T
	for r := range Stream[T](ctx, b, client, input) {
		if r.Error != nil {
			return nil, r.Error
		}
		items = append(items, r.Item)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
