/*
Package storagemodels defines the data structures shared by every document store.

Document:
A generic record keyed by field name. Stores maintain the metadata fields
id, isActive, created, createdBy, modified and modifiedBy:

	doc := storagemodels.Document{"id": "b-1", "title": "the left hand of darkness", "pages": int64(304)}
	doc.IsActive()  // true until archived
	doc.CreatedAt() // strfmt.DateTime decoded from epoch millis

ReadOptions / WriteOptions:
Per-call knobs passed as functional options:

	docs, err := store.GetActiveDocuments(ctx, "Books",
	    storagemodels.WithLimit(10),
	    storagemodels.WithIndex("title"),
	)

	_, err = store.UpdateDocument(ctx, "Books", user, id, changes,
	    storagemodels.WithoutMetadata(),
	)

DocumentResult / StreamOptions:
Stream elements carry a document or an error plus their scan position;
options tune buffering, paging and throttling retries:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
