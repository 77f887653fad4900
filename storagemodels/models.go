/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"strconv"
	"time"

	"github.com/go-openapi/strfmt"
)

// Metadata attributes maintained by the store on every persisted document.
const (
	FieldID         = "id"
	FieldIsActive   = "isActive"
	FieldCreated    = "created"
	FieldCreatedBy  = "createdBy"
	FieldModified   = "modified"
	FieldModifiedBy = "modifiedBy"
	// FieldDocType holds the table name on every item so secondary indexes have a partition key.
	// It is stripped on read.
	FieldDocType = "docType"
)

// Document is a generic record. Leaf values are strings, numbers or booleans.
type Document map[string]any

// ID returns the document identifier, or "" when unset.
func (d Document) ID() string {
	id, _ := d[FieldID].(string)
	return id
}

// IsActive reports the soft-delete flag. A document without the flag is active.
func (d Document) IsActive() bool {
	active, ok := d[FieldIsActive].(bool)
	return !ok || active
}

// CreatedBy returns the identity that created the document.
func (d Document) CreatedBy() string {
	s, _ := d[FieldCreatedBy].(string)
	return s
}

// ModifiedBy returns the identity of the last update.
func (d Document) ModifiedBy() string {
	s, _ := d[FieldModifiedBy].(string)
	return s
}

// CreatedAt decodes the created stamp (epoch millis).
func (d Document) CreatedAt() (strfmt.DateTime, bool) {
	return millisField(d, FieldCreated)
}

// ModifiedAt decodes the modified stamp (epoch millis).
func (d Document) ModifiedAt() (strfmt.DateTime, bool) {
	return millisField(d, FieldModified)
}

// Clone returns a shallow copy.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge returns a copy of d overlaid with the fields of other.
func (d Document) Merge(other Document) Document {
	out := d.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// EpochMillis renders t the way created/modified stamps are stored.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func millisField(d Document, field string) (strfmt.DateTime, bool) {
	var ms int64
	switch v := d[field].(type) {
	case int64:
		ms = v
	case int:
		ms = int64(v)
	case float64:
		ms = int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return strfmt.DateTime{}, false
		}
		ms = n
	default:
		return strfmt.DateTime{}, false
	}
	return strfmt.DateTime(time.UnixMilli(ms).UTC()), true
}
