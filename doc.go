/*
Package docstore provides schema-typed document persistence on DynamoDB.

A collection pairs a table with a schema of field type tags (S, N, BOOL) and
optional validation rules. Documents are plain maps; the store maintains the
active flag and created/modified stamps, and archived documents stay hidden
from reads unless explicitly requested.

Packages:
  - schema: type tags, field definitions and rule validation
  - codec: document to DynamoDB attribute conversion
  - expr: filter, key, update and condition expressions
  - datastore: the DocumentStore interface, with DynamoDB (ddb) and in-memory (mock) implementations
  - config, logger: YAML/env configuration and zerolog setup

Basic Usage:

	cfg, _ := config.Load("config.yaml")
	catalog, _ := docstore.Open(ctx, cfg, logger.Configure(cfg.Logging))

	books, _ := catalog.Get("books")
	doc, err := books.Create(ctx, "alice", storagemodels.Document{
	    "id":    uuid.NewString(),
	    "title": "The Left Hand of Darkness",
	    "pages": 304,
	})

	recent, err := books.Store.GetRecentDocuments(ctx, books.Table, books.ReadOptions()...)
*/
package docstore
