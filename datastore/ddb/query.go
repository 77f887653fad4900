/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/sync/errgroup"

	"github.com/suparena/docstore/codec"
	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/expr"
	"github.com/suparena/docstore/storagemodels"
)

// GetDocumentsByProp scans for documents whose field equals value.
func (d *DynamodbDocumentStore) GetDocumentsByProp(ctx context.Context, table, field string, value any, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	return d.GetDocumentsByProps(ctx, table, map[string]any{field: value}, opts...)
}

// GetDocumentsByProps scans for documents matching every field/value pair.
func (d *DynamodbDocumentStore) GetDocumentsByProps(ctx context.Context, table string, props map[string]any, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)

	fields := make([]string, 0, len(props))
	for f := range props {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	preds := make([]expr.Predicate, 0, len(fields))
	for _, f := range fields {
		p, err := d.equals(f, props[f])
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}

	b := expr.NewBuilder().
		Where(preds...).
		Visibility(expr.VisibilityFor(o.IncludeInactive)).
		Index(o.IndexName)
	return d.scan(ctx, table, b, o.Limit)
}

// QueryDocumentsByProp finds documents whose field starts with text
// (compared lower-cased) through an index sorted by field. The index defaults
// to the field name. Archived documents are filtered unless IncludeInactive.
func (d *DynamodbDocumentStore) QueryDocumentsByProp(ctx context.Context, table, field, text string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)

	index := o.IndexName
	if index == "" {
		index = field
	}

	b := expr.NewBuilder().
		KeyPrefix(field, text).
		Visibility(expr.VisibilityFor(o.IncludeInactive)).
		Index(index)
	if d.indexes.PartitionKey != "" {
		b.KeyEquals(d.indexes.PartitionKey, table)
	}
	return d.query(ctx, table, b, o.Limit, !o.Descending)
}

// GetDocumentsWhereInProp matches any of values by running one scan per
// distinct value concurrently. Results keep the order in which values first
// appear and are truncated to the limit once every scan has finished; one
// failed scan fails the call.
func (d *DynamodbDocumentStore) GetDocumentsWhereInProp(ctx context.Context, table, field string, values []any, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)
	values, err := d.distinct(field, values)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []storagemodels.Document{}, nil
	}

	slots := make([][]storagemodels.Document, len(values))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.fanOut)
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			docs, err := d.GetDocumentsByProp(gctx, table, field, v, opts...)
			if err != nil {
				return err
			}
			slots[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]storagemodels.Document, 0, o.Limit)
	for _, docs := range slots {
		out = append(out, docs...)
	}
	if int32(len(out)) > o.Limit {
		out = out[:o.Limit]
	}
	d.logger.Debug().Str("table", table).Str("field", field).Int("candidates", len(values)).Int("count", len(out)).Msg("membership query complete")
	return out, nil
}

// GetAllDocuments lists documents regardless of the active flag.
func (d *DynamodbDocumentStore) GetAllDocuments(ctx context.Context, table string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)
	return d.scan(ctx, table, expr.NewBuilder().Visibility(expr.All).Index(o.IndexName), o.Limit)
}

// GetActiveDocuments lists active documents only.
func (d *DynamodbDocumentStore) GetActiveDocuments(ctx context.Context, table string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)
	return d.scan(ctx, table, expr.NewBuilder().Visibility(expr.ActiveOnly).Index(o.IndexName), o.Limit)
}

// GetRecentDocuments lists documents newest first through the recency index.
func (d *DynamodbDocumentStore) GetRecentDocuments(ctx context.Context, table string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)
	if d.indexes.PartitionKey == "" {
		return nil, storeerrors.NewValidationError("", "recent documents need an index partition key")
	}

	index := o.IndexName
	if index == "" {
		index = d.indexes.RecentIndex
	}

	b := expr.NewBuilder().
		KeyEquals(d.indexes.PartitionKey, table).
		Visibility(expr.VisibilityFor(o.IncludeInactive)).
		Index(index)
	return d.query(ctx, table, b, o.Limit, false)
}

// GetMyDocuments lists the active documents created by userID.
func (d *DynamodbDocumentStore) GetMyDocuments(ctx context.Context, table, userID string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	return d.owned(ctx, table, userID, expr.ActiveOnly, opts)
}

// GetUserDocuments lists every document created by userID, archived ones included.
func (d *DynamodbDocumentStore) GetUserDocuments(ctx context.Context, table, userID string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	return d.owned(ctx, table, userID, expr.All, opts)
}

func (d *DynamodbDocumentStore) owned(ctx context.Context, table, userID string, v expr.Visibility, opts []storagemodels.ReadOption) ([]storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)
	b := expr.NewBuilder().
		Where(expr.Eq(storagemodels.FieldCreatedBy, userID)).
		Visibility(v).
		Index(o.IndexName)
	return d.scan(ctx, table, b, o.Limit)
}

// distinct drops repeated candidates, comparing them in their stored form so
// 184 and "184" on a number field count once. First occurrences are kept.
func (d *DynamodbDocumentStore) distinct(field string, values []any) ([]any, error) {
	typ, declared := d.stored.TypeOf(field)
	seen := make(map[string]struct{}, len(values))
	out := make([]any, 0, len(values))
	for _, v := range values {
		native := v
		if declared {
			var err error
			if native, err = codec.Native(field, v, typ); err != nil {
				return nil, err
			}
		}
		k := fmt.Sprintf("%T:%v", native, native)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// equals coerces value to the declared type of field so the comparison
// matches what was written.
func (d *DynamodbDocumentStore) equals(field string, value any) (expr.Predicate, error) {
	typ, ok := d.stored.TypeOf(field)
	if !ok {
		return expr.Eq(field, value), nil
	}
	native, err := codec.Native(field, value, typ)
	if err != nil {
		return expr.Predicate{}, err
	}
	return expr.Eq(field, native), nil
}

func (d *DynamodbDocumentStore) scan(ctx context.Context, table string, b *expr.Builder, limit int32) ([]storagemodels.Document, error) {
	e, err := b.Build()
	if err != nil {
		return nil, err
	}

	p := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName:                 aws.String(table),
		IndexName:                 e.IndexName,
		FilterExpression:          e.Filter,
		ExpressionAttributeNames:  e.Names,
		ExpressionAttributeValues: e.Values,
		Limit:                     aws.Int32(limit),
	})
	return d.collect(ctx, "Scan", table, limit, p.HasMorePages, func(ctx context.Context) ([]map[string]types.AttributeValue, error) {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		return out.Items, nil
	})
}

func (d *DynamodbDocumentStore) query(ctx context.Context, table string, b *expr.Builder, limit int32, forward bool) ([]storagemodels.Document, error) {
	e, err := b.Build()
	if err != nil {
		return nil, err
	}

	p := dynamodb.NewQueryPaginator(d.client, &dynamodb.QueryInput{
		TableName:                 aws.String(table),
		IndexName:                 e.IndexName,
		KeyConditionExpression:    e.KeyCondition,
		FilterExpression:          e.Filter,
		ExpressionAttributeNames:  e.Names,
		ExpressionAttributeValues: e.Values,
		Limit:                     aws.Int32(limit),
		ScanIndexForward:          aws.Bool(forward),
	})
	return d.collect(ctx, "Query", table, limit, p.HasMorePages, func(ctx context.Context) ([]map[string]types.AttributeValue, error) {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		return out.Items, nil
	})
}

// collect pages until limit documents are gathered or the backend runs out.
// A filtered page may hold fewer items than the page limit, hence the loop.
func (d *DynamodbDocumentStore) collect(
	ctx context.Context,
	op, table string,
	limit int32,
	more func() bool,
	next func(context.Context) ([]map[string]types.AttributeValue, error),
) ([]storagemodels.Document, error) {
	docs := make([]storagemodels.Document, 0)
	pages := 0
	for more() && int32(len(docs)) < limit {
		items, err := next(ctx)
		if err != nil {
			return nil, d.backend(op, table, err)
		}
		pages++
		for _, item := range items {
			doc, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	if int32(len(docs)) > limit {
		docs = docs[:limit]
	}

	d.logger.Debug().Str("op", op).Str("table", table).Int("pages", pages).Int("count", len(docs)).Msg("read complete")
	return docs, nil
}
