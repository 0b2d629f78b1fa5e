/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongorepo

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/errors"
)

// fakeSession records how the transaction was finished. Methods not
// overridden here panic through the nil embedded interface.
type fakeSession struct {
	mongo.Session

	mu        sync.Mutex
	commits   int
	aborts    int
	ends      int
	commitErr error
}

func (f *fakeSession) CommitTransaction(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits++
	return f.commitErr
}

func (f *fakeSession) AbortTransaction(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aborts++
	return nil
}

func (f *fakeSession) EndSession(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ends++
}

func transactionalContext(sess mongo.Session) *Context {
	return &Context{
		session:  newSession(sess),
		settings: defaultSettings(),
	}
}

func TestSessionRunAttachesSession(t *testing.T) {
	fake := &fakeSession{}
	s := newSession(fake)

	var attached mongo.Session
	err := s.run(context.Background(), func(ctx context.Context) error {
		attached = mongo.SessionFromContext(ctx)
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, fake, attached)
}

func TestSessionRunSerializesExchanges(t *testing.T) {
	s := newSession(&fakeSession{})

	var (
		wg      sync.WaitGroup
		active  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.run(context.Background(), func(context.Context) error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestContextCommitIsSingleShot(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSession{}
	tx := transactionalContext(fake)
	require.True(t, tx.InTransaction())

	require.NoError(t, tx.CommitTransaction(ctx))
	assert.Equal(t, 1, fake.commits)
	assert.Equal(t, 1, fake.ends)
	assert.True(t, tx.session.Finished())

	assert.ErrorIs(t, tx.CommitTransaction(ctx), errors.ErrTransactionClosed)
	assert.ErrorIs(t, tx.AbortTransaction(ctx), errors.ErrTransactionClosed)
	assert.Equal(t, 1, fake.commits)
	assert.Equal(t, 0, fake.aborts)
	assert.Equal(t, 1, fake.ends)
}

func TestContextAbort(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSession{}
	tx := transactionalContext(fake)

	require.NoError(t, tx.AbortTransaction(ctx))
	assert.Equal(t, 1, fake.aborts)
	assert.Equal(t, 1, fake.ends)
	assert.ErrorIs(t, tx.CommitTransaction(ctx), errors.ErrTransactionClosed)
}

func TestContextCommitFailureIsStoreError(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSession{commitErr: stderrors.New("write conflict")}
	tx := transactionalContext(fake)

	err := tx.CommitTransaction(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsStoreError(err))
	assert.Equal(t, 1, fake.ends, "the session ends even when commit fails")
	assert.ErrorIs(t, tx.AbortTransaction(ctx), errors.ErrTransactionClosed)
}

func TestNonTransactionalContext(t *testing.T) {
	ctx := context.Background()
	c := NewContext(nil)

	assert.False(t, c.InTransaction())
	assert.ErrorIs(t, c.CommitTransaction(ctx), errors.ErrNoTransaction)
	assert.ErrorIs(t, c.AbortTransaction(ctx), errors.ErrNoTransaction)
}

func TestNestedTransactionRejected(t *testing.T) {
	tx := transactionalContext(&fakeSession{})

	_, err := tx.StartTransaction(context.Background())
	assert.ErrorIs(t, err, errors.ErrNestedTransaction)

	err = tx.WithTransaction(context.Background(), func(*Context) error { return nil })
	assert.ErrorIs(t, err, errors.ErrNestedTransaction)
}

func TestRepoAfterFinishIsClosed(t *testing.T) {
	ctx := context.Background()
	tx := transactionalContext(&fakeSession{})
	widgets := Open[widget, widgetSpec, widgetPatch, widgetFilter](tx)
	require.NoError(t, tx.AbortTransaction(ctx))

	_, err := widgets.Create(ctx, widgetSpec{Name: "late"})
	assert.ErrorIs(t, err, errors.ErrTransactionClosed)

	_, err = widgets.Retrieve(ctx, entity.NewID())
	assert.ErrorIs(t, err, errors.ErrTransactionClosed)

	_, err = widgets.FindAll(ctx, widgetFilter{})
	assert.ErrorIs(t, err, errors.ErrTransactionClosed)

	_, err = widgets.Update(ctx, widgetPatch{ID: entity.NewID(), Name: ptr("x")})
	assert.ErrorIs(t, err, errors.ErrTransactionClosed)

	_, err = widgets.Delete(ctx, entity.NewID())
	assert.ErrorIs(t, err, errors.ErrTransactionClosed)
}

func TestFindPageWindowValidation(t *testing.T) {
	ctx := context.Background()
	// No client: these calls must not reach the server.
	widgets := NewRepo[widget, widgetSpec, widgetPatch, widgetFilter](nil)

	_, err := widgets.FindPage(ctx, widgetFilter{}, -1, 10)
	assert.True(t, errors.IsValidationError(err))

	_, err = widgets.RetrievePage(ctx, 0, -1)
	assert.True(t, errors.IsValidationError(err))

	page, err := widgets.RetrievePage(ctx, 5, 0)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}
