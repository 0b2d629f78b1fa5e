/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongorepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/errors"
	"github.com/suparena/docrepo/repository"
	"github.com/suparena/docrepo/repository/internal/bsondoc"
)

// Repo is the MongoDB repository of kind E. A Repo opened from a
// transactional Context runs every call inside that transaction.
type Repo[E repository.Reposable, S any, P repository.Patch, F repository.Filter[F]] struct {
	client   *mongo.Client
	session  *Session
	settings settings
}

// NewRepo returns a non-transactional repository over client.
func NewRepo[E repository.Reposable, S any, P repository.Patch, F repository.Filter[F]](client *mongo.Client, opts ...Option) *Repo[E, S, P, F] {
	return &Repo[E, S, P, F]{
		client:   client,
		settings: newSettings(opts),
	}
}

// Open returns the repository of kind E bound to c and its session, if any.
func Open[E repository.Reposable, S any, P repository.Patch, F repository.Filter[F]](c *Context) *Repo[E, S, P, F] {
	return &Repo[E, S, P, F]{
		client:   c.client,
		session:  c.session,
		settings: c.settings,
	}
}

func (r *Repo[E, S, P, F]) collection() *mongo.Collection {
	var zero E
	return r.client.Database(zero.DatabaseName()).Collection(zero.CollectionName())
}

// exec runs one exchange with the server, inside the session when there is one.
func (r *Repo[E, S, P, F]) exec(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.session == nil {
		return fn(ctx)
	}
	return r.session.run(ctx, fn)
}

func (r *Repo[E, S, P, F]) fail(op string, err error) error {
	if errors.Is(err, errors.ErrTransactionClosed) || errors.IsValidationError(err) {
		return err
	}
	location := repository.Location[E]()
	r.settings.logger.Debug().Err(err).Str("op", op).Str("collection", location).Msg("store operation failed")
	return errors.NewStoreError(op, location, err)
}

func (r *Repo[E, S, P, F]) findOptions() *options.FindOptions {
	opts := options.Find()
	if r.settings.batchSize > 0 {
		opts.SetBatchSize(r.settings.batchSize)
	}
	return opts
}

// Create inserts spec and returns the identifier assigned by the server.
func (r *Repo[E, S, P, F]) Create(ctx context.Context, spec S) (entity.ID, error) {
	doc, err := bsondoc.Marshal(spec)
	if err != nil {
		return entity.ID{}, r.fail("insert", err)
	}
	if bsondoc.HasID(doc) {
		return entity.ID{}, errors.NewValidationError(bsondoc.IDField, "a spec must not carry an identifier")
	}

	var res *mongo.InsertOneResult
	err = r.exec(ctx, func(ctx context.Context) error {
		var err error
		res, err = r.collection().InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return entity.ID{}, r.fail("insert", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		panic(fmt.Sprintf("mongorepo: %s assigned a non-ObjectID identifier %v", repository.Location[E](), res.InsertedID))
	}
	return entity.IDFromObjectID(oid), nil
}

// Retrieve returns the entity with the given id, or nil when there is none.
func (r *Repo[E, S, P, F]) Retrieve(ctx context.Context, id entity.ID) (*E, error) {
	match, err := bsondoc.IDFilter[F](id)
	if err != nil {
		return nil, r.fail("find one", err)
	}

	var (
		out   E
		found bool
	)
	err = r.exec(ctx, func(ctx context.Context) error {
		res := r.collection().FindOne(ctx, match)
		if err := res.Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil
			}
			return err
		}
		if err := res.Decode(&out); err != nil {
			return errors.NewDecodeError(repository.Location[E](), err)
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, r.fail("find one", err)
	}
	if !found {
		return nil, nil
	}
	return &out, nil
}

// RetrieveAll returns every entity of the kind.
func (r *Repo[E, S, P, F]) RetrieveAll(ctx context.Context) ([]E, error) {
	var zero F
	return r.FindAll(ctx, zero)
}

// RetrievePage returns a window over every entity of the kind.
func (r *Repo[E, S, P, F]) RetrievePage(ctx context.Context, offset, limit int) ([]E, error) {
	var zero F
	return r.FindPage(ctx, zero, offset, limit)
}

// FindAll returns every entity matching filter, in store order.
func (r *Repo[E, S, P, F]) FindAll(ctx context.Context, filter F) ([]E, error) {
	return r.find(ctx, filter, r.findOptions())
}

// FindPage skips offset matches and returns at most limit of the rest.
func (r *Repo[E, S, P, F]) FindPage(ctx context.Context, filter F, offset, limit int) ([]E, error) {
	nonEmpty, err := repository.CheckWindow(offset, limit)
	if err != nil {
		return nil, err
	}
	if !nonEmpty {
		return []E{}, nil
	}

	opts := r.findOptions().
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *Repo[E, S, P, F]) find(ctx context.Context, filter F, opts *options.FindOptions) ([]E, error) {
	match, err := bsondoc.MarshalPartial(filter)
	if err != nil {
		return nil, r.fail("find", err)
	}

	var results []E
	err = r.exec(ctx, func(ctx context.Context) error {
		cursor, err := r.collection().Find(ctx, match, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		results = make([]E, 0)
		for cursor.Next(ctx) {
			var e E
			if err := cursor.Decode(&e); err != nil {
				return errors.NewDecodeError(repository.Location[E](), err)
			}
			results = append(results, e)
		}
		return cursor.Err()
	})
	if err != nil {
		return nil, r.fail("find", err)
	}
	return results, nil
}

// Update applies the fields set in patch to its target. It reports whether the
// target exists; a patch that changes nothing still reports true.
func (r *Repo[E, S, P, F]) Update(ctx context.Context, patch P) (bool, error) {
	match, err := bsondoc.IDFilter[F](patch.TargetID())
	if err != nil {
		return false, r.fail("update", err)
	}
	set, hasFields, err := bsondoc.SetFields(patch)
	if err != nil {
		return false, r.fail("update", err)
	}

	var found bool
	err = r.exec(ctx, func(ctx context.Context) error {
		coll := r.collection()
		if !hasFields {
			n, err := coll.CountDocuments(ctx, match, options.Count().SetLimit(1))
			found = n > 0
			return err
		}
		res, err := coll.UpdateOne(ctx, match, bson.D{{Key: "$set", Value: set}})
		if err != nil {
			return err
		}
		found = res.MatchedCount > 0
		return nil
	})
	if err != nil {
		return false, r.fail("update", err)
	}
	return found, nil
}

// Delete removes the entity with the given id and reports whether it existed.
func (r *Repo[E, S, P, F]) Delete(ctx context.Context, id entity.ID) (bool, error) {
	match, err := bsondoc.IDFilter[F](id)
	if err != nil {
		return false, r.fail("delete", err)
	}

	var deleted bool
	err = r.exec(ctx, func(ctx context.Context) error {
		res, err := r.collection().DeleteOne(ctx, match)
		if err != nil {
			return err
		}
		deleted = res.DeletedCount > 0
		return nil
	})
	if err != nil {
		return false, r.fail("delete", err)
	}
	return deleted, nil
}
