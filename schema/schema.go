/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/storagemodels"
)

// AttributeType is the wire type tag of a persisted field.
type AttributeType string

const (
	String  AttributeType = "S"
	Number  AttributeType = "N"
	Boolean AttributeType = "BOOL"
)

// Valid reports whether t is one of the supported tags.
func (t AttributeType) Valid() bool {
	switch t {
	case String, Number, Boolean:
		return true
	}
	return false
}

// ParseAttributeType accepts the wire tags (S, N, BOOL) and their long names
// (string, number, boolean), case-insensitively.
func ParseAttributeType(s string) (AttributeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "string":
		return String, nil
	case "n", "number":
		return Number, nil
	case "bool", "boolean":
		return Boolean, nil
	}
	return "", storeerrors.NewUnsupportedTypeError("", s)
}

// UnmarshalYAML rejects unknown tags while the definition is being read.
func (t *AttributeType) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseAttributeType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Schema maps field names to their type tags. It is the authoritative list of
// what gets persisted: fields outside it are dropped on encode.
type Schema map[string]AttributeType

var metadata = Schema{
	storagemodels.FieldID:         String,
	storagemodels.FieldIsActive:   Boolean,
	storagemodels.FieldCreated:    Number,
	storagemodels.FieldCreatedBy:  String,
	storagemodels.FieldModified:   Number,
	storagemodels.FieldModifiedBy: String,
}

// Validate fails on the first empty field name or unsupported tag, in field order.
func (s Schema) Validate() error {
	for _, field := range s.Fields() {
		if field == "" {
			return storeerrors.NewValidationError("", "schema contains an empty field name")
		}
		if t := s[field]; !t.Valid() {
			return storeerrors.NewUnsupportedTypeError(field, string(t))
		}
	}
	return nil
}

// CheckReserved fails when s redeclares a store-maintained field with another
// tag or declares one of the reserved names, which the store overwrites.
func (s Schema) CheckReserved(reserved ...string) error {
	for _, field := range s.Fields() {
		if t, ok := metadata[field]; ok && s[field] != t {
			return storeerrors.NewValidationError(field, "is maintained by the store as "+string(t))
		}
		for _, r := range reserved {
			if r != "" && field == r {
				return storeerrors.NewValidationError(field, "is reserved by the store")
			}
		}
	}
	return nil
}

// TypeOf returns the declared tag of field.
func (s Schema) TypeOf(field string) (AttributeType, bool) {
	t, ok := s[field]
	return t, ok
}

// Fields returns the field names in sorted order.
func (s Schema) Fields() []string {
	fields := make([]string, 0, len(s))
	for f := range s {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Restrict returns the subset of doc the schema would persist.
func (s Schema) Restrict(doc storagemodels.Document) storagemodels.Document {
	out := make(storagemodels.Document, len(doc))
	for field, value := range doc {
		if _, ok := s[field]; ok && value != nil {
			out[field] = value
		}
	}
	return out
}

// WithMetadata returns a copy of s extended with the store-maintained fields.
// Declared fields win over metadata of the same name; CheckReserved rejects
// declarations that would change a metadata tag.
func (s Schema) WithMetadata() Schema {
	out := make(Schema, len(s)+len(metadata))
	for f, t := range metadata {
		out[f] = t
	}
	for f, t := range s {
		out[f] = t
	}
	return out
}

// IsMetadata reports whether field is maintained by the store.
func IsMetadata(field string) bool {
	_, ok := metadata[field]
	return ok
}
