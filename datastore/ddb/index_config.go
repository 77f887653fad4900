/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

// IndexConfig describes the secondary index layout the store queries.
//
// Every item carries PartitionKey = <table name>, so each index used for
// prefix or recency queries is keyed (PartitionKey, <sort field>). Prefix
// queries on a field go through the index named after that field unless the
// call selects another one.
type IndexConfig struct {
	// PartitionKey is the attribute written on every item (e.g. "docType").
	// Empty disables it; prefix queries then run on the sort key alone.
	PartitionKey string
	// RecentIndex is sorted by the created stamp (e.g. "created-index").
	RecentIndex string
}

// DefaultIndexConfig returns the default index layout
func DefaultIndexConfig() IndexConfig {
	return IndexConfig{
		PartitionKey: "docType",
		RecentIndex:  "created-index",
	}
}
