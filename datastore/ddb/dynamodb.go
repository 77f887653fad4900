/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"

	"github.com/suparena/docstore/codec"
	"github.com/suparena/docstore/datastore"
	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/expr"
	"github.com/suparena/docstore/schema"
	"github.com/suparena/docstore/storagemodels"
)

const defaultFanOut = 8

// DynamodbDocumentStore implements datastore.DocumentStore on AWS DynamoDB.
// Items are keyed by a string "id" attribute.
type DynamodbDocumentStore struct {
	client  Client
	schema  schema.Schema
	stored  schema.Schema
	indexes IndexConfig
	logger  zerolog.Logger
	now     func() time.Time
	fanOut  int
}

var _ datastore.DocumentStore = (*DynamodbDocumentStore)(nil)

// Option configures a DynamodbDocumentStore
type Option func(*DynamodbDocumentStore)

// WithLogger sets the logger used for backend calls
func WithLogger(logger zerolog.Logger) Option {
	return func(d *DynamodbDocumentStore) {
		d.logger = logger
	}
}

// WithIndexConfig overrides DefaultIndexConfig
func WithIndexConfig(cfg IndexConfig) Option {
	return func(d *DynamodbDocumentStore) {
		d.indexes = cfg
	}
}

// WithClock sets the time source for created/modified stamps
func WithClock(now func() time.Time) Option {
	return func(d *DynamodbDocumentStore) {
		d.now = now
	}
}

// WithFanOut bounds the concurrent scans of a membership query
func WithFanOut(n int) Option {
	return func(d *DynamodbDocumentStore) {
		if n > 0 {
			d.fanOut = n
		}
	}
}

// NewDynamodbDocumentStore constructs a store for documents shaped by s.
// The schema is validated here so an unsupported type tag, a retyped metadata
// field or a field named like the index partition key fails before first use.
func NewDynamodbDocumentStore(client Client, s schema.Schema, opts ...Option) (*DynamodbDocumentStore, error) {
	if client == nil {
		return nil, storeerrors.NewValidationError("client", "is required")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	d := &DynamodbDocumentStore{
		client:  client,
		schema:  s,
		stored:  s.WithMetadata(),
		indexes: DefaultIndexConfig(),
		logger:  zerolog.Nop(),
		now:     time.Now,
		fanOut:  defaultFanOut,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := s.CheckReserved(d.indexes.PartitionKey); err != nil {
		return nil, err
	}
	return d, nil
}

// CreateDocument writes doc with a fresh active flag and, unless suppressed,
// created/modified stamps. It returns doc merged with its id.
func (d *DynamodbDocumentStore) CreateDocument(ctx context.Context, table, userID string, doc storagemodels.Document, opts ...storagemodels.WriteOption) (storagemodels.Document, error) {
	o := storagemodels.ApplyWriteOptions(opts...)

	id := doc.ID()
	if id == "" {
		return nil, storeerrors.NewValidationError(storagemodels.FieldID, "is required")
	}

	item, err := codec.Encode(doc, d.schema)
	if err != nil {
		return nil, err
	}
	item[storagemodels.FieldID] = &types.AttributeValueMemberS{Value: id}
	item[storagemodels.FieldIsActive] = &types.AttributeValueMemberBOOL{Value: true}
	if d.indexes.PartitionKey != "" {
		item[d.indexes.PartitionKey] = &types.AttributeValueMemberS{Value: table}
	}
	if !o.NoMetadata {
		stamp := &types.AttributeValueMemberN{Value: string(d.stamp())}
		item[storagemodels.FieldCreated] = stamp
		item[storagemodels.FieldModified] = stamp
		if userID != "" {
			item[storagemodels.FieldCreatedBy] = &types.AttributeValueMemberS{Value: userID}
			item[storagemodels.FieldModifiedBy] = &types.AttributeValueMemberS{Value: userID}
		}
	}

	input := &sdk.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	}
	if o.NoOverwrite {
		e, err := expr.NewBuilder().RequireAbsent(storagemodels.FieldID).Build()
		if err != nil {
			return nil, err
		}
		input.ConditionExpression = e.Condition
		input.ExpressionAttributeNames = e.Names
	}

	if _, err := d.client.PutItem(ctx, input); err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil, storeerrors.NewAlreadyExistsError(table, id)
		}
		return nil, d.backend("PutItem", table, err)
	}

	d.logger.Debug().Str("table", table).Str("id", id).Msg("document created")
	return doc.Merge(storagemodels.Document{storagemodels.FieldID: id}), nil
}

// GetDocumentByID fetches one document. Archived documents are NotFound
// unless IncludeInactive is given.
func (d *DynamodbDocumentStore) GetDocumentByID(ctx context.Context, table, id string, opts ...storagemodels.ReadOption) (storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(table),
		Key:       key(id),
	})
	if err != nil {
		return nil, d.backend("GetItem", table, err)
	}
	if len(out.Item) == 0 {
		return nil, storeerrors.NewNotFoundError(table, id)
	}

	doc, err := d.decode(out.Item)
	if err != nil {
		return nil, err
	}
	if !o.IncludeInactive && !doc.IsActive() {
		return nil, storeerrors.NewNotFoundError(table, id)
	}
	return doc, nil
}

// UpdateDocument applies a SET over the supplied fields and returns the
// updated document. id, created and createdBy cannot be changed. modified and
// modifiedBy are stamped when userID is given, unless suppressed.
func (d *DynamodbDocumentStore) UpdateDocument(ctx context.Context, table, userID, id string, updates storagemodels.Document, opts ...storagemodels.WriteOption) (storagemodels.Document, error) {
	o := storagemodels.ApplyWriteOptions(opts...)
	if id == "" {
		return nil, storeerrors.NewValidationError(storagemodels.FieldID, "is required")
	}

	fields := updates.Clone()
	delete(fields, storagemodels.FieldID)
	delete(fields, storagemodels.FieldCreated)
	delete(fields, storagemodels.FieldCreatedBy)
	if !o.NoMetadata && userID != "" {
		fields[storagemodels.FieldModified] = d.stamp()
		fields[storagemodels.FieldModifiedBy] = userID
	}

	// Encoding validates every value against its declared type.
	item, err := codec.Encode(fields, d.stored)
	if err != nil {
		return nil, err
	}
	if len(item) == 0 {
		return nil, storeerrors.NewValidationError("", "no updates provided")
	}

	b := expr.NewBuilder().RequireExists(storagemodels.FieldID)
	for field := range item {
		typ, _ := d.stored.TypeOf(field)
		value, err := codec.Native(field, fields[field], typ)
		if err != nil {
			return nil, err
		}
		b.Set(field, value)
	}
	e, err := b.Build()
	if err != nil {
		return nil, err
	}

	out, err := d.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       key(id),
		UpdateExpression:          e.Update,
		ConditionExpression:       e.Condition,
		ExpressionAttributeNames:  e.Names,
		ExpressionAttributeValues: e.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil, storeerrors.NewNotFoundError(table, id)
		}
		return nil, d.backend("UpdateItem", table, err)
	}

	d.logger.Debug().Str("table", table).Str("id", id).Int("fields", len(item)).Msg("document updated")
	return d.decode(out.Attributes)
}

// ArchiveDocument soft-deletes a document.
func (d *DynamodbDocumentStore) ArchiveDocument(ctx context.Context, table, userID, id string) (storagemodels.Document, error) {
	return d.UpdateDocument(ctx, table, userID, id, storagemodels.Document{storagemodels.FieldIsActive: false})
}

// DearchiveDocument restores an archived document.
func (d *DynamodbDocumentStore) DearchiveDocument(ctx context.Context, table, userID, id string) (storagemodels.Document, error) {
	return d.UpdateDocument(ctx, table, userID, id, storagemodels.Document{storagemodels.FieldIsActive: true})
}

// DeleteDocument physically removes a document, active or not.
func (d *DynamodbDocumentStore) DeleteDocument(ctx context.Context, table, id string) (storagemodels.Document, error) {
	if _, err := d.GetDocumentByID(ctx, table, id, storagemodels.IncludeInactive()); err != nil {
		return nil, err
	}

	if _, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key(id),
	}); err != nil {
		return nil, d.backend("DeleteItem", table, err)
	}

	d.logger.Debug().Str("table", table).Str("id", id).Msg("document deleted")
	return storagemodels.Document{storagemodels.FieldID: id}, nil
}

func (d *DynamodbDocumentStore) stamp() attributevalue.Number {
	return attributevalue.Number(strconv.FormatInt(storagemodels.EpochMillis(d.now()), 10))
}

func (d *DynamodbDocumentStore) decode(item map[string]types.AttributeValue) (storagemodels.Document, error) {
	doc, err := codec.Decode(item)
	if err != nil {
		return nil, err
	}
	if d.indexes.PartitionKey != "" {
		delete(doc, d.indexes.PartitionKey)
	}
	return doc, nil
}

func (d *DynamodbDocumentStore) backend(op, table string, err error) error {
	d.logger.Error().Err(err).Str("op", op).Str("table", table).Msg("dynamodb call failed")
	return storeerrors.NewBackendError(op, table, err)
}

func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		storagemodels.FieldID: &types.AttributeValueMemberS{Value: id},
	}
}
