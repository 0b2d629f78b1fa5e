/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongorepo

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/suparena/docrepo/errors"
)

// Session is a transaction session shared by every repository opened from the
// same transactional Context. A driver session is not safe for concurrent use,
// so each exchange with the server holds the lock for its whole duration.
type Session struct {
	mu       sync.Mutex
	sess     mongo.Session
	finished bool
}

func newSession(sess mongo.Session) *Session {
	return &Session{sess: sess}
}

// run executes one exchange with the session attached to ctx.
func (s *Session) run(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return errors.ErrTransactionClosed
	}
	return fn(mongo.NewSessionContext(ctx, s.sess))
}

// finish commits or aborts the transaction and ends the session. It succeeds at most once.
func (s *Session) finish(ctx context.Context, commit bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return errors.ErrTransactionClosed
	}
	s.finished = true
	defer s.sess.EndSession(ctx)

	if commit {
		return s.sess.CommitTransaction(ctx)
	}
	return s.sess.AbortTransaction(ctx)
}

// Finished reports whether the transaction was committed or aborted.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}
