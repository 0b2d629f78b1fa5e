/*
Package ddbrepo implements repository.Repository on Amazon DynamoDB.

Each entity kind lives in its own table named "<database>.<collection>" with a
string partition key "_id" holding the identifier's hex form. Companion types
are marshaled with attributevalue, so they carry dynamodbav tags next to their
bson ones:

	type ItemPatch struct {
	    ID   entity.ID `bson:"-" dynamodbav:"-"`
	    Name *string   `bson:"name,omitempty" dynamodbav:"name,omitempty"`
	}

Translation:

  - Create assigns a fresh identifier client side and writes with
    attribute_not_exists(_id)
  - Update issues "SET ..." conditioned on attribute_exists(_id); a failed
    condition reports false
  - Delete returns the old attributes; none reports false
  - FindAll and FindPage scan with an equality filter expression, skipping
    offset matches while the scan pages stream in

DynamoDB has no interactive transactions, so this package has no
transactional context.
*/
package ddbrepo
