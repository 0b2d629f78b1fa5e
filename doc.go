/*
Package docrepo provides generic, typed repositories over document stores.

An entity kind declares where it lives and three companion types: a Spec to
create it, a Patch to change some of its fields and a Filter to find it. One
implementation per store then serves every kind:

	type Widget struct {
	    ID   entity.ID `bson:"_id"`
	    Name string    `bson:"name"`
	}

	func (w Widget) GetID() entity.ID     { return w.ID }
	func (Widget) DatabaseName() string   { return "shop" }
	func (Widget) CollectionName() string { return "widgets" }

	client, _ := mongorepo.Connect(ctx, mongorepo.ClientConfig{Host: "127.0.0.1"})
	c := mongorepo.NewContext(client)

	tx, _ := c.StartTransaction(ctx)
	widgets := mongorepo.Open[Widget, WidgetSpec, WidgetPatch, WidgetFilter](tx)
	id, _ := widgets.Create(ctx, WidgetSpec{Name: "bolt"})
	_ = tx.CommitTransaction(ctx)

Packages:
  - entity: identifiers and the Entity contract
  - repository: the generic Repository contract and paging helpers
  - repository/mongorepo: MongoDB, with shared transaction sessions
  - repository/ddbrepo: DynamoDB, one table per kind
  - repository/memrepo: in-memory store for tests
  - errors: semantic error types

The itemctl command exercises the library end to end over the items kind.
*/
package docrepo
