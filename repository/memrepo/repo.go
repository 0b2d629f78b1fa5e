/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memrepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/errors"
	"github.com/suparena/docrepo/repository"
	"github.com/suparena/docrepo/repository/internal/bsondoc"
)

// Repo is the in-memory repository of kind E
type Repo[E repository.Reposable, S any, P repository.Patch, F repository.Filter[F]] struct {
	store    *Store
	location string
}

// Open returns the repository of kind E on s, inside its transaction if s has one.
func Open[E repository.Reposable, S any, P repository.Patch, F repository.Filter[F]](s *Store) *Repo[E, S, P, F] {
	return &Repo[E, S, P, F]{
		store:    s,
		location: repository.Location[E](),
	}
}

func (r *Repo[E, S, P, F]) fail(op string, err error) error {
	if errors.Is(err, errors.ErrTransactionClosed) || errors.IsValidationError(err) {
		return err
	}
	return errors.NewStoreError(op, r.location, err)
}

// Create stores spec under a fresh identifier
func (r *Repo[E, S, P, F]) Create(ctx context.Context, spec S) (entity.ID, error) {
	doc, err := bsondoc.Marshal(spec)
	if err != nil {
		return entity.ID{}, r.fail(OpInsert, err)
	}
	if bsondoc.HasID(doc) {
		return entity.ID{}, errors.NewValidationError(bsondoc.IDField, "a spec must not carry an identifier")
	}
	if err := r.store.takeFault(OpInsert); err != nil {
		return entity.ID{}, r.fail(OpInsert, err)
	}

	id := entity.NewID()
	doc, err = bsondoc.WithID(doc, id)
	if err != nil {
		return entity.ID{}, r.fail(OpInsert, err)
	}

	err = r.store.write(r.location, func(docs []bson.Raw) ([]bson.Raw, error) {
		next := make([]bson.Raw, len(docs), len(docs)+1)
		copy(next, docs)
		return append(next, doc), nil
	})
	if err != nil {
		return entity.ID{}, r.fail(OpInsert, err)
	}
	return id, nil
}

// Retrieve returns the entity with the given id, or nil when there is none
func (r *Repo[E, S, P, F]) Retrieve(ctx context.Context, id entity.ID) (*E, error) {
	match, err := bsondoc.IDFilter[F](id)
	if err != nil {
		return nil, r.fail(OpFind, err)
	}
	results, err := r.find(match, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// RetrieveAll returns every entity of the kind
func (r *Repo[E, S, P, F]) RetrieveAll(ctx context.Context) ([]E, error) {
	var zero F
	return r.FindAll(ctx, zero)
}

// RetrievePage returns a window over every entity of the kind
func (r *Repo[E, S, P, F]) RetrievePage(ctx context.Context, offset, limit int) ([]E, error) {
	var zero F
	return r.FindPage(ctx, zero, offset, limit)
}

// FindAll returns every entity matching filter, in insertion order
func (r *Repo[E, S, P, F]) FindAll(ctx context.Context, filter F) ([]E, error) {
	match, err := bsondoc.MarshalPartial(filter)
	if err != nil {
		return nil, r.fail(OpFind, err)
	}
	return r.find(match, 0, 0)
}

// FindPage skips offset matches and returns at most limit of the rest
func (r *Repo[E, S, P, F]) FindPage(ctx context.Context, filter F, offset, limit int) ([]E, error) {
	nonEmpty, err := repository.CheckWindow(offset, limit)
	if err != nil {
		return nil, err
	}
	if !nonEmpty {
		return []E{}, nil
	}

	match, err := bsondoc.MarshalPartial(filter)
	if err != nil {
		return nil, r.fail(OpFind, err)
	}
	return r.find(match, offset, limit)
}

// find decodes the matching documents after skipping offset; limit 0 means no limit.
func (r *Repo[E, S, P, F]) find(match bson.Raw, offset, limit int) ([]E, error) {
	if err := r.store.takeFault(OpFind); err != nil {
		return nil, r.fail(OpFind, err)
	}
	docs, err := r.store.read(r.location)
	if err != nil {
		return nil, r.fail(OpFind, err)
	}

	results := make([]E, 0)
	skipped := 0
	for _, doc := range docs {
		ok, err := bsondoc.Matches(doc, match)
		if err != nil {
			return nil, r.fail(OpFind, err)
		}
		if !ok {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}

		var e E
		if err := bson.Unmarshal(doc, &e); err != nil {
			return nil, r.fail(OpFind, errors.NewDecodeError(r.location, err))
		}
		results = append(results, e)
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results, nil
}

// Update merges the fields set in patch into its target and reports whether the target exists
func (r *Repo[E, S, P, F]) Update(ctx context.Context, patch P) (bool, error) {
	match, err := bsondoc.IDFilter[F](patch.TargetID())
	if err != nil {
		return false, r.fail(OpUpdate, err)
	}
	set, _, err := bsondoc.SetFields(patch)
	if err != nil {
		return false, r.fail(OpUpdate, err)
	}
	if err := r.store.takeFault(OpUpdate); err != nil {
		return false, r.fail(OpUpdate, err)
	}

	var found bool
	err = r.store.write(r.location, func(docs []bson.Raw) ([]bson.Raw, error) {
		for i, doc := range docs {
			ok, err := bsondoc.Matches(doc, match)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			merged, err := bsondoc.ApplySet(doc, set)
			if err != nil {
				return nil, err
			}
			found = true
			next := make([]bson.Raw, len(docs))
			copy(next, docs)
			next[i] = merged
			return next, nil
		}
		return docs, nil
	})
	if err != nil {
		return false, r.fail(OpUpdate, err)
	}
	return found, nil
}

// Delete removes the entity with the given id and reports whether it existed
func (r *Repo[E, S, P, F]) Delete(ctx context.Context, id entity.ID) (bool, error) {
	match, err := bsondoc.IDFilter[F](id)
	if err != nil {
		return false, r.fail(OpDelete, err)
	}
	if err := r.store.takeFault(OpDelete); err != nil {
		return false, r.fail(OpDelete, err)
	}

	var deleted bool
	err = r.store.write(r.location, func(docs []bson.Raw) ([]bson.Raw, error) {
		for i, doc := range docs {
			ok, err := bsondoc.Matches(doc, match)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			deleted = true
			next := make([]bson.Raw, 0, len(docs)-1)
			next = append(next, docs[:i]...)
			return append(next, docs[i+1:]...), nil
		}
		return docs, nil
	})
	if err != nil {
		return false, r.fail(OpDelete, err)
	}
	return deleted, nil
}
