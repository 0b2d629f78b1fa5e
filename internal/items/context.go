/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package items

import (
	"context"

	"github.com/suparena/docrepo/repository/memrepo"
	"github.com/suparena/docrepo/repository/mongorepo"
)

// Context gives the service its items repository and transaction control.
// StartTransaction returns a context whose repository runs inside the new
// transaction; it must be finished with exactly one Commit or Abort.
type Context interface {
	Items() Repository
	StartTransaction(ctx context.Context) (Context, error)
	CommitTransaction(ctx context.Context) error
	AbortTransaction(ctx context.Context) error
}

var (
	_ Context = (*MongoContext)(nil)
	_ Context = (*MemoryContext)(nil)
	_ Context = (*DirectContext)(nil)
)

// MongoContext backs items with MongoDB.
type MongoContext struct {
	mongo *mongorepo.Context
	items Repository
}

func NewMongoContext(c *mongorepo.Context) *MongoContext {
	return &MongoContext{
		mongo: c,
		items: mongorepo.Open[Item, Spec, Patch, Filter](c),
	}
}

func (c *MongoContext) Items() Repository {
	return c.items
}

func (c *MongoContext) StartTransaction(ctx context.Context) (Context, error) {
	tx, err := c.mongo.StartTransaction(ctx)
	if err != nil {
		return nil, err
	}
	return NewMongoContext(tx), nil
}

func (c *MongoContext) CommitTransaction(ctx context.Context) error {
	return c.mongo.CommitTransaction(ctx)
}

func (c *MongoContext) AbortTransaction(ctx context.Context) error {
	return c.mongo.AbortTransaction(ctx)
}

// MemoryContext backs items with an in-memory store.
type MemoryContext struct {
	store *memrepo.Store
	items Repository
}

func NewMemoryContext(s *memrepo.Store) *MemoryContext {
	return &MemoryContext{
		store: s,
		items: memrepo.Open[Item, Spec, Patch, Filter](s),
	}
}

func (c *MemoryContext) Items() Repository {
	return c.items
}

func (c *MemoryContext) StartTransaction(ctx context.Context) (Context, error) {
	tx, err := c.store.StartTransaction(ctx)
	if err != nil {
		return nil, err
	}
	return NewMemoryContext(tx), nil
}

func (c *MemoryContext) CommitTransaction(ctx context.Context) error {
	return c.store.CommitTransaction(ctx)
}

func (c *MemoryContext) AbortTransaction(ctx context.Context) error {
	return c.store.AbortTransaction(ctx)
}

// DirectContext wraps a repository without transaction support, such as the
// DynamoDB one. Writes apply immediately: AbortTransaction cannot undo them.
type DirectContext struct {
	items Repository
}

func NewDirectContext(items Repository) *DirectContext {
	return &DirectContext{items: items}
}

func (c *DirectContext) Items() Repository {
	return c.items
}

func (c *DirectContext) StartTransaction(context.Context) (Context, error) {
	return c, nil
}

func (c *DirectContext) CommitTransaction(context.Context) error {
	return nil
}

func (c *DirectContext) AbortTransaction(context.Context) error {
	return nil
}
