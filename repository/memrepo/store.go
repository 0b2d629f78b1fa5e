/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memrepo provides an in-memory repository.Repository for tests.
//
// Documents are kept as BSON and matched with the same translation rules as
// mongorepo, so a kind that works here serializes correctly for MongoDB.
package memrepo

import (
	"context"
	stderrors "errors"
	"maps"
	"sync"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/suparena/docrepo/errors"
)

// Operation names accepted by FailNext
const (
	OpInsert = "insert"
	OpFind   = "find"
	OpUpdate = "update"
	OpDelete = "delete"
	OpCommit = "commit transaction"
)

// ErrWriteConflict is wrapped in the store error returned by a commit whose
// collections were changed by another writer after the transaction started.
var ErrWriteConflict = stderrors.New("write conflict")

// database is the state shared by a Store and its transactions. Collection
// slices are never modified in place, so readers may keep them after unlocking.
// versions counts the committed writes to each collection.
type database struct {
	mu          sync.RWMutex
	collections map[string][]bson.Raw
	versions    map[string]uint64
	faults      map[string]error
	logger      zerolog.Logger
}

type transaction struct {
	mu          sync.Mutex
	finished    bool
	collections map[string][]bson.Raw
	versions    map[string]uint64
	touched     map[string]bool
}

// Store is an in-memory document store. The value returned by New is
// non-transactional; StartTransaction returns a transactional handle on the
// same data.
type Store struct {
	db *database
	tx *transaction
}

// Option configures a Store
type Option func(*database)

// WithLogger sets the logger used for transaction lifecycle events
func WithLogger(logger zerolog.Logger) Option {
	return func(db *database) {
		db.logger = logger
	}
}

// New creates an empty store
func New(opts ...Option) *Store {
	db := &database{
		collections: make(map[string][]bson.Raw),
		versions:    make(map[string]uint64),
		faults:      make(map[string]error),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return &Store{db: db}
}

// FailNext makes the next op on any handle of this store fail with err,
// reported as a store error.
func (s *Store) FailNext(op string, err error) *Store {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.faults[op] = err
	return s
}

func (s *Store) takeFault(op string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	err, ok := s.db.faults[op]
	if !ok {
		return nil
	}
	delete(s.db.faults, op)
	return err
}

// InTransaction reports whether s is a transactional handle.
func (s *Store) InTransaction() bool {
	return s.tx != nil
}

// StartTransaction snapshots the store. Writes through the returned handle
// stay invisible to other handles until CommitTransaction.
func (s *Store) StartTransaction(ctx context.Context) (*Store, error) {
	if s.tx != nil {
		return nil, errors.ErrNestedTransaction
	}

	s.db.mu.RLock()
	snapshot := maps.Clone(s.db.collections)
	versions := maps.Clone(s.db.versions)
	s.db.mu.RUnlock()

	s.db.logger.Debug().Msg("transaction started")
	return &Store{
		db: s.db,
		tx: &transaction{
			collections: snapshot,
			versions:    versions,
			touched:     make(map[string]bool),
		},
	}, nil
}

// CommitTransaction writes the collections touched by the transaction back to
// the store. It fails with ErrWriteConflict, publishing nothing, when any of
// them was written by another handle since StartTransaction. The handle
// cannot be used afterwards.
func (s *Store) CommitTransaction(ctx context.Context) error {
	tx, err := s.finish()
	if err != nil {
		return err
	}
	if err := s.takeFault(OpCommit); err != nil {
		return errors.NewStoreError(OpCommit, "", err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for location := range tx.touched {
		if s.db.versions[location] != tx.versions[location] {
			s.db.logger.Debug().Str("collection", location).Msg("transaction conflicted")
			return errors.NewStoreError(OpCommit, location, ErrWriteConflict)
		}
	}
	for location := range tx.touched {
		s.db.collections[location] = tx.collections[location]
		s.db.versions[location]++
	}
	s.db.logger.Debug().Int("collections", len(tx.touched)).Msg("transaction committed")
	return nil
}

// AbortTransaction discards the transaction. The handle cannot be used afterwards.
func (s *Store) AbortTransaction(ctx context.Context) error {
	if _, err := s.finish(); err != nil {
		return err
	}
	s.db.logger.Debug().Msg("transaction aborted")
	return nil
}

func (s *Store) finish() (*transaction, error) {
	if s.tx == nil {
		return nil, errors.ErrNoTransaction
	}
	s.tx.mu.Lock()
	defer s.tx.mu.Unlock()
	if s.tx.finished {
		return nil, errors.ErrTransactionClosed
	}
	s.tx.finished = true
	return s.tx, nil
}

// WithTransaction runs fn inside a new transaction, committing when fn
// returns nil and aborting otherwise.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx *Store) error) error {
	tx, err := s.StartTransaction(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.AbortTransaction(ctx)
		return err
	}
	return tx.CommitTransaction(ctx)
}

// read returns the documents of a collection in insertion order.
func (s *Store) read(location string) ([]bson.Raw, error) {
	if s.tx != nil {
		s.tx.mu.Lock()
		defer s.tx.mu.Unlock()
		if s.tx.finished {
			return nil, errors.ErrTransactionClosed
		}
		return s.tx.collections[location], nil
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.collections[location], nil
}

// write replaces a collection with the result of fn. fn must return a new
// slice rather than modify its argument.
func (s *Store) write(location string, fn func(docs []bson.Raw) ([]bson.Raw, error)) error {
	if s.tx != nil {
		s.tx.mu.Lock()
		defer s.tx.mu.Unlock()
		if s.tx.finished {
			return errors.ErrTransactionClosed
		}
		next, err := fn(s.tx.collections[location])
		if err != nil {
			return err
		}
		s.tx.collections[location] = next
		s.tx.touched[location] = true
		return nil
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	next, err := fn(s.db.collections[location])
	if err != nil {
		return err
	}
	s.db.collections[location] = next
	s.db.versions[location]++
	return nil
}

// Count returns the number of committed documents in a collection.
func (s *Store) Count(location string) int {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return len(s.db.collections[location])
}

// Clear removes all committed data and pending faults. Open transactions
// that touched a cleared collection fail to commit.
func (s *Store) Clear() {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for location := range s.db.collections {
		s.db.versions[location]++
	}
	s.db.collections = make(map[string][]bson.Raw)
	s.db.faults = make(map[string]error)
}
