/*
Package ddb provides a DynamoDB implementation of the DocumentStore interface.

The DynamodbDocumentStore supports:
  - Items keyed by a string "id" attribute, typed by a per-instance schema
  - Soft delete through the isActive flag, applied to every read path
  - created/modified stamps in epoch milliseconds, createdBy/modifiedBy identities
  - Prefix queries and newest-first listings over secondary indexes
  - Paginated reads that keep paging until the limit is filled
  - Streaming with retry of throttling errors and progress callbacks

Index Layout:
Every item carries a partition attribute (docType by default) holding its
table name, so secondary indexes can be queried per table:

	created-index   hash: docType  range: created   (GetRecentDocuments)
	title           hash: docType  range: title     (QueryDocumentsByProp on title)

Override the layout with WithIndexConfig. Prefix queries compare lower-cased
text, so indexed string fields should be stored lower-cased.

Usage:

	client, err := ddb.NewDynamoDBClient(ctx, ddb.ClientConfig{Region: "us-east-1"})
	store, err := ddb.NewDynamodbDocumentStore(client, schema.Schema{
	    "title": schema.String,
	    "pages": schema.Number,
	}, ddb.WithLogger(logger))

	results := store.Stream(ctx, "Books",
	    storagemodels.WithPageSize(25),
	    storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
	        logger.Info().Int64("documents", p.Documents).Bool("done", p.Done).Msg("progress")
	    }),
	)
*/
package ddb
