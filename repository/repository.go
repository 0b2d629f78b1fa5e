/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package repository

import (
	"context"

	"github.com/suparena/docrepo/entity"
)

// Reposable is an Entity kind with its own storage location. The location is
// read from the zero value, so it must not depend on field values.
type Reposable interface {
	entity.Entity
	DatabaseName() string
	CollectionName() string
}

// Patch is a partial update of one entity. Optional fields are pointers tagged
// omitempty; the target identifier itself must not be serialized.
type Patch interface {
	TargetID() entity.ID
}

// Filter is a partial-match predicate. The zero value matches everything and
// unset (nil, omitempty) fields impose no constraint. WithID returns a copy
// constrained to the given identifier.
type Filter[F any] interface {
	WithID(id entity.ID) F
}

// Repository stores entities of kind E, created from S, updated by P and queried by F.
//
// Absence is structural: Retrieve returns (nil, nil) and Update/Delete return
// false. Errors are either validation errors raised before any store call or
// StoreErrors wrapping the driver failure.
type Repository[E Reposable, S any, P Patch, F Filter[F]] interface {
	Create(ctx context.Context, spec S) (entity.ID, error)

	Retrieve(ctx context.Context, id entity.ID) (*E, error)

	RetrieveAll(ctx context.Context) ([]E, error)

	RetrievePage(ctx context.Context, offset, limit int) ([]E, error)

	FindAll(ctx context.Context, filter F) ([]E, error)

	FindPage(ctx context.Context, filter F, offset, limit int) ([]E, error)

	Update(ctx context.Context, patch P) (bool, error)

	Delete(ctx context.Context, id entity.ID) (bool, error)
}

// Location returns "database.collection" for kind E.
func Location[E Reposable]() string {
	var zero E
	return zero.DatabaseName() + "." + zero.CollectionName()
}
