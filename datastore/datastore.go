/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/docstore/storagemodels"
)

// DocumentStore is the operation surface over one table shape. The table name
// is passed per call; the schema is fixed per instance.
type DocumentStore interface {
	CreateDocument(ctx context.Context, table, userID string, doc storagemodels.Document, opts ...storagemodels.WriteOption) (storagemodels.Document, error)

	GetDocumentByID(ctx context.Context, table, id string, opts ...storagemodels.ReadOption) (storagemodels.Document, error)

	GetDocumentsByProp(ctx context.Context, table, field string, value any, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error)

	GetDocumentsByProps(ctx context.Context, table string, props map[string]any, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error)

	QueryDocumentsByProp(ctx context.Context, table, field, text string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error)

	GetDocumentsWhereInProp(ctx context.Context, table, field string, values []any, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error)

	GetAllDocuments(ctx context.Context, table string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error)

	GetActiveDocuments(ctx context.Context, table string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error)

	GetRecentDocuments(ctx context.Context, table string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error)

	GetMyDocuments(ctx context.Context, table, userID string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error)

	GetUserDocuments(ctx context.Context, table, userID string, opts ...storagemodels.ReadOption) ([]storagemodels.Document, error)

	UpdateDocument(ctx context.Context, table, userID, id string, updates storagemodels.Document, opts ...storagemodels.WriteOption) (storagemodels.Document, error)

	ArchiveDocument(ctx context.Context, table, userID, id string) (storagemodels.Document, error)

	DearchiveDocument(ctx context.Context, table, userID, id string) (storagemodels.Document, error)

	DeleteDocument(ctx context.Context, table, id string) (storagemodels.Document, error)

	Stream(ctx context.Context, table string, opts ...storagemodels.StreamOption) <-chan storagemodels.DocumentResult
}
