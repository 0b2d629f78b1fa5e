/*
Package mongorepo implements repository.Repository on MongoDB.

One generic Repo serves every entity kind. Queries are expressed by marshaling
the kind's companion types to BSON:

  - Create inserts the marshaled Spec and returns the ObjectID the server assigned
  - Update matches Filter{}.WithID(target) and applies {$set: Patch}
  - Retrieve and Delete match by the same identifier filter
  - FindAll and FindPage use the marshaled Filter as an equality match

Transactions are driven through Context:

	tx, err := mongorepo.NewContext(client).StartTransaction(ctx)
	if err != nil {
	    return err
	}
	items := mongorepo.Open[Item, ItemSpec, ItemPatch, ItemFilter](tx)
	id, err := items.Create(ctx, spec)
	if err != nil {
	    _ = tx.AbortTransaction(ctx)
	    return err
	}
	return tx.CommitTransaction(ctx)

Every repository opened from a transactional Context shares its Session. The
session lock is held for one driver exchange at a time, so concurrent callers
interleave their operations inside the same transaction. Once committed or
aborted, the Context and its repositories return errors.ErrTransactionClosed.
*/
package mongorepo
