/*
Package datastore defines the document store interface.

DocumentStore exposes create, point reads, predicate scans, prefix queries
over sorted indexes, the simulated membership query, ownership and recency
listings, updates, archive/dearchive and delete:

	doc, err := store.CreateDocument(ctx, "Books", user, storagemodels.Document{
	    "id":    id,
	    "title": "the dispossessed",
	    "pages": 387,
	})

	docs, err := store.QueryDocumentsByProp(ctx, "Books", "title", "the dis")

Archived documents (isActive = false) are hidden from every read unless the
call passes storagemodels.IncludeInactive(). DeleteDocument is the only
operation that removes an item.

Implementations:
  - ddb: DynamoDB
  - mock: in-memory, for tests of code that depends on a store
*/
package datastore
