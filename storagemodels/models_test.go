/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentAccessors(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := Document{
		FieldID:         "b-1",
		FieldCreatedBy:  "alice",
		FieldModifiedBy: "bob",
		FieldCreated:    EpochMillis(created),
		FieldModified:   "1740830400000",
	}

	assert.Equal(t, "b-1", doc.ID())
	assert.Equal(t, "alice", doc.CreatedBy())
	assert.Equal(t, "bob", doc.ModifiedBy())
	assert.True(t, doc.IsActive(), "missing flag means active")

	at, ok := doc.CreatedAt()
	require.True(t, ok)
	assert.True(t, time.Time(at).Equal(created))

	mod, ok := doc.ModifiedAt()
	require.True(t, ok)
	assert.Equal(t, int64(1740830400000), time.Time(mod).UnixMilli())

	doc[FieldIsActive] = false
	assert.False(t, doc.IsActive())

	_, ok = Document{FieldCreated: "yesterday"}.CreatedAt()
	assert.False(t, ok)
}

func TestDocumentCloneAndMerge(t *testing.T) {
	base := Document{"id": "1", "title": "a"}
	merged := base.Merge(Document{"title": "b", "pages": int64(3)})

	assert.Equal(t, Document{"id": "1", "title": "a"}, base, "merge must not mutate the receiver")
	assert.Equal(t, Document{"id": "1", "title": "b", "pages": int64(3)}, merged)

	clone := base.Clone()
	clone["title"] = "z"
	assert.Equal(t, "a", base["title"])
}

func TestReadOptions(t *testing.T) {
	o := ApplyReadOptions()
	assert.Equal(t, DefaultLimit, o.Limit)
	assert.False(t, o.IncludeInactive)

	o = ApplyReadOptions(WithLimit(5), OrderBy("title"), Descending(), IncludeInactive())
	assert.Equal(t, ReadOptions{Limit: 5, IndexName: "title", Descending: true, IncludeInactive: true}, o)

	o = ApplyReadOptions(WithLimit(0))
	assert.Equal(t, DefaultLimit, o.Limit)
}

func TestWriteOptions(t *testing.T) {
	assert.Equal(t, WriteOptions{}, ApplyWriteOptions())
	assert.Equal(t, WriteOptions{NoMetadata: true, NoOverwrite: true},
		ApplyWriteOptions(WithoutMetadata(), WithoutOverwrite()))
}

func TestStreamOptions(t *testing.T) {
	o := DefaultStreamOptions()
	for _, opt := range []StreamOption{WithPageSize(10), WithMaxRetries(0), WithInactiveItems(true), WithBufferSize(1)} {
		opt(&o)
	}
	assert.Equal(t, int32(10), o.PageSize)
	assert.Equal(t, 0, o.MaxRetries)
	assert.Equal(t, 1, o.BufferSize)
	assert.True(t, o.IncludeInactive)
	assert.Equal(t, time.Second, o.RetryBackoff)
}
