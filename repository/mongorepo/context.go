/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongorepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suparena/docrepo/errors"
)

// Context carries a client and, when transactional, the session every
// repository opened from it shares.
type Context struct {
	client   *mongo.Client
	session  *Session
	settings settings
}

// NewContext returns a non-transactional context over client.
func NewContext(client *mongo.Client, opts ...Option) *Context {
	return &Context{
		client:   client,
		settings: newSettings(opts),
	}
}

// Client returns the underlying driver client.
func (c *Context) Client() *mongo.Client {
	return c.client
}

// InTransaction reports whether the context carries a transaction session.
func (c *Context) InTransaction() bool {
	return c.session != nil
}

// StartTransaction opens a session, starts a transaction on it and returns a
// new transactional context. The receiver is left unchanged.
func (c *Context) StartTransaction(ctx context.Context) (*Context, error) {
	if c.session != nil {
		return nil, errors.ErrNestedTransaction
	}

	sess, err := c.client.StartSession()
	if err != nil {
		return nil, errors.NewStoreError("start session", "", err)
	}

	var txOpts []*options.TransactionOptions
	if c.settings.txOptions != nil {
		txOpts = append(txOpts, c.settings.txOptions)
	}
	if err := sess.StartTransaction(txOpts...); err != nil {
		sess.EndSession(ctx)
		return nil, errors.NewStoreError("start transaction", "", err)
	}

	c.settings.logger.Debug().Msg("transaction started")

	return &Context{
		client:   c.client,
		session:  newSession(sess),
		settings: c.settings,
	}, nil
}

// CommitTransaction commits the transaction. The context cannot be used afterwards.
func (c *Context) CommitTransaction(ctx context.Context) error {
	return c.finish(ctx, true)
}

// AbortTransaction discards the transaction. The context cannot be used afterwards.
func (c *Context) AbortTransaction(ctx context.Context) error {
	return c.finish(ctx, false)
}

func (c *Context) finish(ctx context.Context, commit bool) error {
	if c.session == nil {
		return errors.ErrNoTransaction
	}

	op := "abort transaction"
	if commit {
		op = "commit transaction"
	}

	err := c.session.finish(ctx, commit)
	if errors.Is(err, errors.ErrTransactionClosed) {
		return err
	}
	if err != nil {
		c.settings.logger.Debug().Err(err).Str("op", op).Msg("transaction failed to finish")
		return errors.NewStoreError(op, "", err)
	}

	c.settings.logger.Debug().Str("op", op).Msg("transaction finished")
	return nil
}

// WithTransaction runs fn inside a new transaction. The transaction commits
// when fn returns nil and is aborted otherwise; fn must not finish it itself.
func (c *Context) WithTransaction(ctx context.Context, fn func(tx *Context) error) error {
	tx, err := c.StartTransaction(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if abortErr := tx.AbortTransaction(ctx); abortErr != nil && !errors.Is(abortErr, errors.ErrTransactionClosed) {
			c.settings.logger.Warn().Err(abortErr).Msg("failed to abort transaction")
		}
		return err
	}

	return tx.CommitTransaction(ctx)
}
