/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/suparena/docstore/datastore/mock"
	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/storagemodels"
)

func newStore() *mock.DocumentStore {
	tick := time.UnixMilli(1700000000000)
	return mock.New().WithClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})
}

func ids(docs []storagemodels.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID())
	}
	return out
}

func equalIDs(t *testing.T, got []storagemodels.Document, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got ids %v, want %v", g, want)
	}
	for i := range g {
		if g[i] != want[i] {
			t.Fatalf("got ids %v, want %v", g, want)
		}
	}
}

func TestMockDocumentStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		store := newStore()

		_, err := store.CreateDocument(ctx, "Books", "alice", storagemodels.Document{"id": "b-1", "title": "x"})
		if err != nil {
			t.Fatalf("CreateDocument failed: %v", err)
		}

		doc, err := store.GetDocumentByID(ctx, "Books", "b-1")
		if err != nil {
			t.Fatalf("GetDocumentByID failed: %v", err)
		}
		if doc.CreatedBy() != "alice" || !doc.IsActive() {
			t.Fatalf("unexpected document: %v", doc)
		}

		if _, err := store.ArchiveDocument(ctx, "Books", "bob", "b-1"); err != nil {
			t.Fatalf("ArchiveDocument failed: %v", err)
		}
		if _, err := store.GetDocumentByID(ctx, "Books", "b-1"); !errors.IsNotFound(err) {
			t.Fatalf("expected not found for archived document, got: %v", err)
		}

		deleted, err := store.DeleteDocument(ctx, "Books", "b-1")
		if err != nil {
			t.Fatalf("DeleteDocument failed: %v", err)
		}
		if deleted.ID() != "b-1" {
			t.Fatalf("unexpected delete result: %v", deleted)
		}
		if _, err := store.DeleteDocument(ctx, "Books", "b-1"); !errors.IsNotFound(err) {
			t.Fatalf("expected not found, got: %v", err)
		}
	})

	t.Run("Queries", func(t *testing.T) {
		store := newStore()
		for _, d := range []storagemodels.Document{
			{"id": "b-1", "title": "the dispossessed", "pages": 387},
			{"id": "b-2", "title": "the lathe of heaven", "pages": 184},
			{"id": "b-3", "title": "a wizard of earthsea", "pages": 183},
		} {
			if _, err := store.CreateDocument(ctx, "Books", "alice", d); err != nil {
				t.Fatalf("CreateDocument failed: %v", err)
			}
		}

		docs, _ := store.GetDocumentsByProp(ctx, "Books", "pages", "184")
		equalIDs(t, docs, "b-2")

		docs, _ = store.QueryDocumentsByProp(ctx, "Books", "title", "The")
		equalIDs(t, docs, "b-1", "b-2")

		docs, _ = store.GetRecentDocuments(ctx, "Books", storagemodels.WithLimit(2))
		equalIDs(t, docs, "b-3", "b-2")

		docs, _ = store.GetDocumentsWhereInProp(ctx, "Books", "pages", []any{183, 387})
		equalIDs(t, docs, "b-3", "b-1")

		docs, _ = store.GetDocumentsWhereInProp(ctx, "Books", "pages", []any{183, "183", 387, 183})
		equalIDs(t, docs, "b-3", "b-1")

		docs, _ = store.GetMyDocuments(ctx, "Books", "bob")
		equalIDs(t, docs)
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		boom := stderrors.New("boom")
		store := mock.New().WithCreateError(boom).WithReadError(boom)

		if _, err := store.CreateDocument(ctx, "Books", "", storagemodels.Document{"id": "b-1"}); err != boom {
			t.Fatalf("expected create error, got: %v", err)
		}
		if _, err := store.GetAllDocuments(ctx, "Books"); err != boom {
			t.Fatalf("expected read error, got: %v", err)
		}
		for r := range store.Stream(ctx, "Books") {
			if r.Error != boom {
				t.Fatalf("expected stream error, got: %v", r.Error)
			}
		}
	})

	t.Run("Stream", func(t *testing.T) {
		store := newStore()
		for _, id := range []string{"b-2", "b-1", "b-3"} {
			if _, err := store.CreateDocument(ctx, "Books", "", storagemodels.Document{"id": id}); err != nil {
				t.Fatalf("CreateDocument failed: %v", err)
			}
		}
		if _, err := store.ArchiveDocument(ctx, "Books", "", "b-3"); err != nil {
			t.Fatalf("ArchiveDocument failed: %v", err)
		}

		var got []storagemodels.Document
		for r := range store.Stream(ctx, "Books") {
			got = append(got, r.Item)
		}
		equalIDs(t, got, "b-1", "b-2")
	})
}
