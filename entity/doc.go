/*
Package entity defines the identifier and entity contracts every stored kind builds on.

An ID is a 12-byte object identifier. It round-trips through its hex string,
BSON (as a native ObjectID), DynamoDB (as a string attribute) and JSON text:

	id, err := entity.ParseID("65f1c0de8a1b2c3d4e5f6a7b")
	if errors.IsMalformedID(err) {
	    // reject the request
	}
	fmt.Println(id) // 65f1c0de8a1b2c3d4e5f6a7b

An Entity only exposes its identifier. Retrieved entities are plain values with
no binding back to the store.
*/
package entity
