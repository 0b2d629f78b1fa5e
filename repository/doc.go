/*
Package repository defines the generic persistence contract of docrepo.

An entity kind E becomes storable by implementing Reposable and declaring three
companion types: a Spec S carrying the fields needed to create an instance, a
Patch P targeting one instance by identifier with optional fields, and a
Filter F of optional fields. The main interface is Repository:

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

Implementations:
  - mongorepo: MongoDB, with an optional shared transaction session
  - ddbrepo: DynamoDB, one table per kind, no transactions
  - memrepo: in-memory store for tests, with snapshot transactions

Every implementation is written once and serves all kinds through type parameters.
*/
package repository
