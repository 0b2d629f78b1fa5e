/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mongorepo

import (
	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/repository"
)

type widget struct {
	ID    entity.ID `bson:"_id"`
	Name  string    `bson:"name"`
	Color string    `bson:"color"`
	Count int       `bson:"count"`
}

func (w widget) GetID() entity.ID     { return w.ID }
func (widget) DatabaseName() string   { return "repotest" }
func (widget) CollectionName() string { return "widgets" }

type widgetSpec struct {
	Name  string `bson:"name"`
	Color string `bson:"color"`
	Count int    `bson:"count"`
}

type widgetPatch struct {
	ID    entity.ID `bson:"-"`
	Name  *string   `bson:"name,omitempty"`
	Color *string   `bson:"color,omitempty"`
	Count *int      `bson:"count,omitempty"`
}

func (p widgetPatch) TargetID() entity.ID { return p.ID }

type widgetFilter struct {
	ID    *entity.ID `bson:"_id,omitempty"`
	Name  *string    `bson:"name,omitempty"`
	Color *string    `bson:"color,omitempty"`
	Count *int       `bson:"count,omitempty"`
}

func (f widgetFilter) WithID(id entity.ID) widgetFilter {
	f.ID = &id
	return f
}

type gadget struct {
	ID   entity.ID `bson:"_id"`
	Name string    `bson:"name"`
}

func (g gadget) GetID() entity.ID     { return g.ID }
func (gadget) DatabaseName() string   { return "repotest" }
func (gadget) CollectionName() string { return "gadgets" }

type gadgetSpec struct {
	Name string `bson:"name"`
}

type gadgetPatch struct {
	ID   entity.ID `bson:"-"`
	Name *string   `bson:"name,omitempty"`
}

func (p gadgetPatch) TargetID() entity.ID { return p.ID }

type gadgetFilter struct {
	ID   *entity.ID `bson:"_id,omitempty"`
	Name *string    `bson:"name,omitempty"`
}

func (f gadgetFilter) WithID(id entity.ID) gadgetFilter {
	f.ID = &id
	return f
}

type widgetRepo = Repo[widget, widgetSpec, widgetPatch, widgetFilter]

var (
	_ repository.Repository[widget, widgetSpec, widgetPatch, widgetFilter] = (*widgetRepo)(nil)
	_ repository.Repository[gadget, gadgetSpec, gadgetPatch, gadgetFilter] = (*Repo[gadget, gadgetSpec, gadgetPatch, gadgetFilter])(nil)
)

func ptr[T any](v T) *T {
	return &v
}
