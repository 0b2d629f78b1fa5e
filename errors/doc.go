/*
Package errors provides semantic error types for docrepo.

The taxonomy follows who is at fault:

	ErrMalformedID        // identifier string did not parse (client input)
	ErrInvalidInput       // spec/patch/filter failed a domain constraint (client input)
	ErrStore              // the backing store driver reported a failure (server side)
	ErrNotFound           // raised by service layers; repositories report absence structurally
	ErrTransactionClosed  // a finished transaction was used again
	ErrNoTransaction      // commit/abort on a non-transactional context
	ErrNestedTransaction  // start a transaction from a transactional context

Usage:

	item, err := svc.Item(ctx, id)
	if err != nil {
	    switch {
	    case errors.IsNotFound(err):
	        // "no such item"
	    case errors.IsValidationError(err):
	        // client input error
	    default:
	        // server side failure
	    }
	}

Repositories never retry; a StoreError carries the operation and collection
and unwraps to the driver error.
*/
package errors
