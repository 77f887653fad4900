/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory DocumentStore for testing code that
// depends on datastore.DocumentStore.
package mock

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/storagemodels"
)

// DocumentStore keeps documents per table in memory. Values compare by their
// printed form, so 184 and "184" are equal, close to how the DynamoDB store
// coerces comparison values to the declared field type.
type DocumentStore struct {
	mu     sync.RWMutex
	tables map[string]map[string]storagemodels.Document
	now    func() time.Time

	createError error
	updateError error
	deleteError error
	readError   error
}

var _ datastore.DocumentStore = (*DocumentStore)(nil)

// New creates an empty mock DocumentStore
func New() *DocumentStore {
	return &DocumentStore{
		tables: make(map[string]map[string]storagemodels.Document),
		now:    time.Now,
	}
}

// WithClock sets the time source for created/modified stamps
func (m *DocumentStore) WithClock(now func() time.Time) *DocumentStore {
	m.now = now
	return m
}

// WithCreateError makes CreateDocument return an error
func (m *DocumentStore) WithCreateError(err error) *DocumentStore {
	m.createError = err
	return m
}

// WithUpdateError makes UpdateDocument, ArchiveDocument and DearchiveDocument return an error
func (m *DocumentStore) WithUpdateError(err error) *DocumentStore {
	m.updateError = err
	return m
}

// WithDeleteError makes DeleteDocument return an error
func (m *DocumentStore) WithDeleteError(err error) *DocumentStore {
	m.deleteError = err
	return m
}

// WithReadError makes every read and Stream return an error
func (m *DocumentStore) WithReadError(err error) *DocumentStore {
	m.readError = err
	return m
}

// CreateDocument stores a copy of doc with the active flag and stamps
func (m *DocumentStore) CreateDocument(ctx context.Context, table, userID string, doc storagemodels.Document, opts ...storagemodels.WriteOption) (storagemodels.Document, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	o := storagemodels.ApplyWriteOptions(opts...)
	id := doc.ID()
	if id == "" {
		return nil, errors.NewValidationError(storagemodels.FieldID, "is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.table(table)
	if _, exists := t[id]; exists && o.NoOverwrite {
		return nil, errors.NewAlreadyExistsError(table, id)
	}

	stored := doc.Clone()
	stored[storagemodels.FieldIsActive] = true
	if !o.NoMetadata {
		stamp := storagemodels.EpochMillis(m.now())
		stored[storagemodels.FieldCreated] = stamp
		stored[storagemodels.FieldModified] = stamp
		if userID != "" {
			stored[storagemodels.FieldCreatedBy] = userID
			stored[storagemodels.FieldModifiedBy] = userID
		}
	}
	t[id] = stored
	return doc.Merge(storagemodels.Document{storagemodels.FieldID: id}), nil
}

// GetDocumentByID retrieves a document; archived ones need IncludeInactive
func (m *DocumentStore) GetDocumentByID(ctx context.Context, table, id string, opts ...storagemodels.ReadOption) (storagemodels.Document, error) {
	if m.readError != nil {
		return nil, m.readError
	}
	o := storagemodels.ApplyReadOptions(opts...)

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.tables[table][id]
	if !ok || (!o.IncludeInactive && !doc.IsActive()) {
		return nil, errors.NewNotFoundError(table, id)
	}
	return doc.Clone(), nil
}

// GetDocumentsByProp lists documents whose field equals value
func (m *DocumentStore) GetDocumentsByProp(ctx context.Context, table, field string, value any, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	return m.GetDocumentsByProps(ctx, table, map[string]any{field: value}, opts...)
}

// GetDocumentsByProps lists documents matching every field/value pair
func (m *DocumentStore) GetDocumentsByProps(ctx context.Context, table string, props map[string]any, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)
	return m.list(table, o, !o.IncludeInactive, func(doc storagemodels.Document) bool {
		for field, want := range props {
			if !equal(doc[field], want) {
				return false
			}
		}
		return true
	})
}

// QueryDocumentsByProp lists documents whose field starts with text, compared
// lower-cased, ordered by field
func (m *DocumentStore) QueryDocumentsByProp(ctx context.Context, table, field, text string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	if m.readError != nil {
		return nil, m.readError
	}
	o := storagemodels.ApplyReadOptions(opts...)
	prefix := strings.ToLower(text)

	m.mu.RLock()
	var matched []storagemodels.Document
	for _, doc := range m.sorted(table) {
		s, ok := doc[field].(string)
		if !ok || !strings.HasPrefix(s, prefix) {
			continue
		}
		if !o.IncludeInactive && !doc.IsActive() {
			continue
		}
		matched = append(matched, doc)
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i][field].(string), matched[j][field].(string)
		if o.Descending {
			return a > b
		}
		return a < b
	})
	return truncate(matched, o.Limit), nil
}

// GetDocumentsWhereInProp concatenates the matches of each distinct value in order
func (m *DocumentStore) GetDocumentsWhereInProp(ctx context.Context, table, field string, values []any, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)
	out := make([]storagemodels.Document, 0)
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[fmt.Sprint(v)] {
			continue
		}
		seen[fmt.Sprint(v)] = true
		docs, err := m.GetDocumentsByProp(ctx, table, field, v, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, docs...)
	}
	return truncate(out, o.Limit), nil
}

// GetAllDocuments lists every document
func (m *DocumentStore) GetAllDocuments(ctx context.Context, table string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	return m.list(table, storagemodels.ApplyReadOptions(opts...), false, nil)
}

// GetActiveDocuments lists active documents
func (m *DocumentStore) GetActiveDocuments(ctx context.Context, table string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	return m.list(table, storagemodels.ApplyReadOptions(opts...), true, nil)
}

// GetRecentDocuments lists documents newest first by created stamp
func (m *DocumentStore) GetRecentDocuments(ctx context.Context, table string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	o := storagemodels.ApplyReadOptions(opts...)
	docs, err := m.list(table, storagemodels.ReadOptions{Limit: math.MaxInt32}, !o.IncludeInactive, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		a, _ := docs[i].CreatedAt()
		b, _ := docs[j].CreatedAt()
		return time.Time(a).After(time.Time(b))
	})
	return truncate(docs, o.Limit), nil
}

// GetMyDocuments lists active documents created by userID
func (m *DocumentStore) GetMyDocuments(ctx context.Context, table, userID string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	return m.list(table, storagemodels.ApplyReadOptions(opts...), true, func(doc storagemodels.Document) bool {
		return doc.CreatedBy() == userID
	})
}

// GetUserDocuments lists every document created by userID
func (m *DocumentStore) GetUserDocuments(ctx context.Context, table, userID string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error) {
	return m.list(table, storagemodels.ApplyReadOptions(opts...), false, func(doc storagemodels.Document) bool {
		return doc.CreatedBy() == userID
	})
}

// UpdateDocument merges updates into an existing document
func (m *DocumentStore) UpdateDocument(ctx context.Context, table, userID, id string, updates storagemodels.Document, opts ...storagemodels.WriteOption) (storagemodels.Document, error) {
	if m.updateError != nil {
		return nil, m.updateError
	}
	o := storagemodels.ApplyWriteOptions(opts...)

	fields := updates.Clone()
	delete(fields, storagemodels.FieldID)
	delete(fields, storagemodels.FieldCreated)
	delete(fields, storagemodels.FieldCreatedBy)
	if !o.NoMetadata && userID != "" {
		fields[storagemodels.FieldModified] = storagemodels.EpochMillis(m.now())
		fields[storagemodels.FieldModifiedBy] = userID
	}
	if len(fields) == 0 {
		return nil, errors.NewValidationError("", "no updates provided")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.tables[table][id]
	if !ok {
		return nil, errors.NewNotFoundError(table, id)
	}
	updated := doc.Merge(fields)
	m.tables[table][id] = updated
	return updated.Clone(), nil
}

// ArchiveDocument clears the active flag
func (m *DocumentStore) ArchiveDocument(ctx context.Context, table, userID, id string) (storagemodels.Document, error) {
	return m.UpdateDocument(ctx, table, userID, id, storagemodels.Document{storagemodels.FieldIsActive: false})
}

// DearchiveDocument sets the active flag
func (m *DocumentStore) DearchiveDocument(ctx context.Context, table, userID, id string) (storagemodels.Document, error) {
	return m.UpdateDocument(ctx, table, userID, id, storagemodels.Document{storagemodels.FieldIsActive: true})
}

// DeleteDocument removes a document, active or not
func (m *DocumentStore) DeleteDocument(ctx context.Context, table, id string) (storagemodels.Document, error) {
	if m.deleteError != nil {
		return nil, m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[table][id]; !ok {
		return nil, errors.NewNotFoundError(table, id)
	}
	delete(m.tables[table], id)
	return storagemodels.Document{storagemodels.FieldID: id}, nil
}

// Stream emits the table's documents in id order
func (m *DocumentStore) Stream(ctx context.Context, table string, opts ...storagemodels.StreamOption) <-chan storagemodels.DocumentResult {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultChan := make(chan storagemodels.DocumentResult, options.BufferSize)
	go func() {
		defer close(resultChan)

		if m.readError != nil {
			select {
			case <-ctx.Done():
			case resultChan <- storagemodels.DocumentResult{Error: m.readError}:
			}
			return
		}

		m.mu.RLock()
		docs := m.sorted(table)
		m.mu.RUnlock()

		index := int64(0)
		for _, doc := range docs {
			if !options.IncludeInactive && !doc.IsActive() {
				continue
			}
			select {
			case <-ctx.Done():
				select {
				case resultChan <- storagemodels.DocumentResult{Error: ctx.Err()}:
				default:
				}
				return
			case resultChan <- storagemodels.DocumentResult{
				Item: doc,
				Meta: storagemodels.StreamMeta{
					Index:      index,
					PageNumber: 1,
					Timestamp:  time.Now(),
				},
			}:
				index++
			}
		}
	}()

	return resultChan
}

func (m *DocumentStore) list(table string, o storagemodels.ReadOptions, activeOnly bool, keep func(storagemodels.Document) bool) ([]storagemodels.Document, error) {
	if m.readError != nil {
		return nil, m.readError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]storagemodels.Document, 0)
	for _, doc := range m.sorted(table) {
		if activeOnly && !doc.IsActive() {
			continue
		}
		if keep != nil && !keep(doc) {
			continue
		}
		out = append(out, doc)
	}
	return truncate(out, o.Limit), nil
}

// sorted returns copies of the table's documents in id order. Callers hold mu.
func (m *DocumentStore) sorted(table string) []storagemodels.Document {
	docs := make([]storagemodels.Document, 0, len(m.tables[table]))
	for _, doc := range m.tables[table] {
		docs = append(docs, doc.Clone())
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID() < docs[j].ID() })
	return docs
}

func (m *DocumentStore) table(name string) map[string]storagemodels.Document {
	t, ok := m.tables[name]
	if !ok {
		t = make(map[string]storagemodels.Document)
		m.tables[name] = t
	}
	return t
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func truncate(docs []storagemodels.Document, limit int32) []storagemodels.Document {
	if docs == nil {
		docs = []storagemodels.Document{}
	}
	if limit > 0 && int32(len(docs)) > limit {
		return docs[:limit]
	}
	return docs
}
