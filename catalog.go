/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/suparena/docstore/config"
	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/datastore/ddb"
	"github.com/suparena/docstore/schema"
	"github.com/suparena/docstore/storagemodels"
)

// Collection binds a logical name to a table, its schema and the store that
// serves it. Create and Update run the field rules before the store sees
// the document; reads go straight to Store with Table.
type Collection struct {
	Name      string
	Table     string
	Schema    schema.Schema
	Validator *schema.Validator
	Store     datastore.DocumentStore
	// Limit is the page size applied when a read gives none.
	Limit int32
}

// NewCollection builds a collection from its field definitions
func NewCollection(name, table string, def schema.Definition, store datastore.DocumentStore) (*Collection, error) {
	s, err := def.Schema()
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", name, err)
	}
	return &Collection{
		Name:      name,
		Table:     table,
		Schema:    s,
		Validator: schema.NewValidator(def),
		Store:     store,
		Limit:     storagemodels.DefaultLimit,
	}, nil
}

// Create validates doc against the field rules and stores it
func (c *Collection) Create(ctx context.Context, userID string, doc storagemodels.Document, opts ...storagemodels.WriteOption) (storagemodels.Document, error) {
	if err := c.Validator.ValidateCreate(ctx, doc); err != nil {
		return nil, err
	}
	return c.Store.CreateDocument(ctx, c.Table, userID, doc, opts...)
}

// Update validates the supplied fields and applies them
func (c *Collection) Update(ctx context.Context, userID, id string, updates storagemodels.Document, opts ...storagemodels.WriteOption) (storagemodels.Document, error) {
	if err := c.Validator.ValidateUpdate(ctx, updates); err != nil {
		return nil, err
	}
	return c.Store.UpdateDocument(ctx, c.Table, userID, id, updates, opts...)
}

// ReadOptions prepends the collection's default limit to opts, so an explicit
// WithLimit still wins.
func (c *Collection) ReadOptions(opts ...storagemodels.ReadOption) []storagemodels.ReadOption {
	return append([]storagemodels.ReadOption{storagemodels.WithLimit(c.Limit)}, opts...)
}

// Catalog is a thread-safe registry of collections
type Catalog struct {
	mu          sync.RWMutex
	collections map[string]*Collection
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		collections: make(map[string]*Collection),
	}
}

// Register adds a collection under its name
func (c *Catalog) Register(col *Collection) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.collections[col.Name]; exists {
		return fmt.Errorf("collection %q already registered", col.Name)
	}
	c.collections[col.Name] = col
	return nil
}

// Get retrieves a collection by name
func (c *Catalog) Get(name string) (*Collection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, exists := c.collections[name]
	if !exists {
		return nil, fmt.Errorf("collection %q not found", name)
	}
	return col, nil
}

// Remove deletes a collection by name
func (c *Catalog) Remove(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.collections[name]; !exists {
		return fmt.Errorf("collection %q not found", name)
	}
	delete(c.collections, name)
	return nil
}

// List returns the registered collection names, sorted
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.collections))
	for name := range c.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open connects to DynamoDB with cfg.AWS and registers every configured collection.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Catalog, error) {
	client, err := ddb.NewDynamoDBClient(ctx, ddb.ClientConfig{
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	return OpenWithClient(client, cfg, logger)
}

// OpenWithClient registers every configured collection on client.
func OpenWithClient(client ddb.Client, cfg *config.Config, logger zerolog.Logger) (*Catalog, error) {
	catalog := NewCatalog()
	indexes := ddb.IndexConfig{
		PartitionKey: cfg.Indexes.PartitionKey,
		RecentIndex:  cfg.Indexes.RecentIndex,
	}

	for _, cc := range cfg.Collections {
		s, err := cc.Fields.Schema()
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", cc.Name, err)
		}
		store, err := ddb.NewDynamodbDocumentStore(client, s,
			ddb.WithIndexConfig(indexes),
			ddb.WithLogger(logger.With().Str("collection", cc.Name).Logger()),
		)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", cc.Name, err)
		}

		col, err := NewCollection(cc.Name, cc.Table, cc.Fields, store)
		if err != nil {
			return nil, err
		}
		if cfg.Defaults.Limit > 0 {
			col.Limit = cfg.Defaults.Limit
		}
		if err := catalog.Register(col); err != nil {
			return nil, err
		}
		logger.Debug().Str("collection", cc.Name).Str("table", cc.Table).Msg("collection registered")
	}
	return catalog, nil
}
