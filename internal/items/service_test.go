/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package items

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/errors"
	"github.com/suparena/docrepo/repository"
	"github.com/suparena/docrepo/repository/memrepo"
)

func newTestService(t *testing.T) (*Service, *memrepo.Store) {
	t.Helper()
	store := memrepo.New()
	return NewService(NewMemoryContext(store), zerolog.Nop()), store
}

func ptr[T any](v T) *T {
	return &v
}

func TestServiceCreateItem(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	item, err := svc.CreateItem(ctx, Spec{Name: "Widget", Size: SizeMedium})
	require.NoError(t, err)
	assert.False(t, item.ID.IsZero())
	assert.Equal(t, Name("Widget"), item.Name)
	assert.Equal(t, SizeMedium, item.Size)
	assert.Equal(t, 1, store.Count(repository.Location[Item]()))

	got, err := svc.Item(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, *item, *got)
}

func TestServiceRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	tests := []struct {
		name  string
		spec  Spec
		field string
	}{
		{name: "empty name", spec: Spec{Size: SizeSmall}, field: "name"},
		{name: "missing size", spec: Spec{Name: "crate"}, field: "size"},
		{name: "unknown size", spec: Spec{Name: "crate", Size: "Huge"}, field: "size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(ctx, tt.spec)
			require.True(t, errors.IsValidationError(err), "got %v", err)

			var ve *errors.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	_, err := svc.UpdateItem(ctx, Patch{ID: entity.NewID(), Name: ptr(Name(""))})
	assert.True(t, errors.IsValidationError(err))

	assert.Equal(t, 0, store.Count(repository.Location[Item]()), "nothing reaches the store")
}

func TestServiceUpdateItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	item, err := svc.CreateItem(ctx, Spec{Name: "Widget", Size: SizeSmall})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, Patch{ID: item.ID, Name: ptr(Name("Gadget"))})
	require.NoError(t, err)
	assert.Equal(t, Item{ID: item.ID, Name: "Gadget", Size: SizeSmall}, *updated)

	_, err = svc.UpdateItem(ctx, Patch{ID: entity.NewID(), Size: ptr(SizeLarge)})
	assert.True(t, errors.IsNotFound(err))
}

func TestServiceDeleteItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	item, err := svc.CreateItem(ctx, Spec{Name: "Widget", Size: SizeSmall})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	assert.True(t, errors.IsNotFound(svc.DeleteItem(ctx, item.ID)))

	_, err = svc.Item(ctx, item.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestServiceQueries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, spec := range []Spec{
		{Name: "a", Size: SizeSmall},
		{Name: "b", Size: SizeLarge},
		{Name: "c", Size: SizeSmall},
		{Name: "d", Size: SizeMedium},
	} {
		_, err := svc.CreateItem(ctx, spec)
		require.NoError(t, err)
	}

	all, err := svc.AllItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	small, err := svc.FindItems(ctx, Filter{Size: ptr(SizeSmall)})
	require.NoError(t, err)
	require.Len(t, small, 2)
	assert.Equal(t, Name("a"), small[0].Name)
	assert.Equal(t, Name("c"), small[1].Name)

	page, err := svc.ItemsPage(ctx, Filter{}, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, Name("b"), page[0].Name)

	_, err = svc.ItemsPage(ctx, Filter{}, -1, 2)
	assert.True(t, errors.IsValidationError(err))
}

func TestServiceAbortsOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	item, err := svc.CreateItem(ctx, Spec{Name: "Widget", Size: SizeSmall})
	require.NoError(t, err)

	boom := stderrors.New("connection reset")
	store.FailNext(memrepo.OpFind, boom)

	// The update succeeds inside the transaction, the re-read fails.
	_, err = svc.UpdateItem(ctx, Patch{ID: item.ID, Name: ptr(Name("Gadget"))})
	require.Error(t, err)
	assert.True(t, errors.IsStoreError(err))

	got, err := svc.Item(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, Name("Widget"), got.Name, "the aborted update is not visible")

	store.FailNext(memrepo.OpCommit, boom)
	_, err = svc.CreateItem(ctx, Spec{Name: "Lost", Size: SizeSmall})
	assert.True(t, errors.IsStoreError(err))

	all, err := svc.AllItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDirectContext(t *testing.T) {
	ctx := context.Background()
	store := memrepo.New()
	svc := NewService(NewDirectContext(memrepo.Open[Item, Spec, Patch, Filter](store)), zerolog.Nop())

	item, err := svc.CreateItem(ctx, Spec{Name: "Widget", Size: SizeSmall})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Count(repository.Location[Item]()))

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	assert.Equal(t, 0, store.Count(repository.Location[Item]()))
}
