/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// DefaultLimit bounds every listing when the caller does not ask for a limit.
const DefaultLimit int32 = 50

// ReadOptions configures a single read call
type ReadOptions struct {
	Limit           int32  // Maximum documents returned (default: 50)
	IndexName       string // Secondary index to read through, "" for the table
	Descending      bool   // Reverse index order on queries
	IncludeInactive bool   // Return archived documents as well
}

// ReadOption is a functional option for configuring reads
type ReadOption func(*ReadOptions)

// DefaultReadOptions returns default read options
func DefaultReadOptions() ReadOptions {
	return ReadOptions{Limit: DefaultLimit}
}

// ApplyReadOptions folds opts over the defaults.
func ApplyReadOptions(opts ...ReadOption) ReadOptions {
	o := DefaultReadOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLimit sets the maximum number of documents; non-positive values keep the default
func WithLimit(limit int32) ReadOption {
	return func(opts *ReadOptions) {
		if limit > 0 {
			opts.Limit = limit
		} else {
			opts.Limit = DefaultLimit
		}
	}
}

// WithIndex selects the secondary index to read through
func WithIndex(name string) ReadOption {
	return func(opts *ReadOptions) {
		opts.IndexName = name
	}
}

// OrderBy selects an index the way older callers did, where the index name also
// implied the sort field. It does not verify the index is sorted by that field.
func OrderBy(index string) ReadOption {
	return WithIndex(index)
}

// Descending reverses index order on query-backed reads
func Descending() ReadOption {
	return func(opts *ReadOptions) {
		opts.Descending = true
	}
}

// IncludeInactive makes archived documents visible
func IncludeInactive() ReadOption {
	return WithInactive(true)
}

// WithInactive sets inactive visibility from a flag
func WithInactive(include bool) ReadOption {
	return func(opts *ReadOptions) {
		opts.IncludeInactive = include
	}
}

// WriteOptions configures a single create or update call
type WriteOptions struct {
	NoMetadata  bool // Skip created/modified stamps
	NoOverwrite bool // Fail create when the id already exists
}

// WriteOption is a functional option for configuring writes
type WriteOption func(*WriteOptions)

// ApplyWriteOptions folds opts over the zero options.
func ApplyWriteOptions(opts ...WriteOption) WriteOptions {
	var o WriteOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithoutMetadata suppresses created/modified stamping
func WithoutMetadata() WriteOption {
	return func(opts *WriteOptions) {
		opts.NoMetadata = true
	}
}

// WithoutOverwrite makes create fail with AlreadyExists for a taken id
func WithoutOverwrite() WriteOption {
	return func(opts *WriteOptions) {
		opts.NoOverwrite = true
	}
}
