/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package items

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/errors"
	"github.com/suparena/docrepo/repository"
)

const (
	databaseName   = "repotest"
	collectionName = "items"
)

// Name is a non-empty item name.
type Name string

// ParseName rejects the empty string.
func ParseName(s string) (Name, error) {
	if s == "" {
		return "", errors.NewValidationError("name", "a name cannot be an empty string")
	}
	return Name(s), nil
}

func (n Name) String() string {
	return string(n)
}

func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// UnmarshalBSONValue rejects stored empty names the same way ParseName does.
func (n *Name) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("cannot decode BSON %s into a name", t)
	}
	parsed, err := ParseName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Size is one of Small, Medium or Large.
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// Sizes lists the valid sizes from smallest to largest.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// ParseSize matches a size name case-insensitively.
func ParseSize(s string) (Size, error) {
	for _, size := range Sizes {
		if strings.EqualFold(s, string(size)) {
			return size, nil
		}
	}
	return "", errors.NewValidationError("size", fmt.Sprintf("%q is not one of Small, Medium, Large", s))
}

func (s Size) String() string {
	return string(s)
}

// Item is a named item with a size.
type Item struct {
	ID   entity.ID `bson:"_id" dynamodbav:"_id" json:"id"`
	Name Name      `bson:"name" dynamodbav:"name" json:"name"`
	Size Size      `bson:"size" dynamodbav:"size" json:"size"`
}

func (i Item) GetID() entity.ID {
	return i.ID
}

func (Item) DatabaseName() string {
	return databaseName
}

func (Item) CollectionName() string {
	return collectionName
}

// Spec holds the fields needed to create an item.
type Spec struct {
	Name Name `bson:"name" dynamodbav:"name" json:"name" validate:"required"`
	Size Size `bson:"size" dynamodbav:"size" json:"size" validate:"required,oneof=Small Medium Large"`
}

// Patch changes the fields it sets on the item with ID.
type Patch struct {
	ID   entity.ID `bson:"-" dynamodbav:"-" json:"id"`
	Name *Name     `bson:"name,omitempty" dynamodbav:"name,omitempty" json:"name,omitempty" validate:"omitnil,min=1"`
	Size *Size     `bson:"size,omitempty" dynamodbav:"size,omitempty" json:"size,omitempty" validate:"omitnil,oneof=Small Medium Large"`
}

func (p Patch) TargetID() entity.ID {
	return p.ID
}

// Filter matches items on the fields it sets.
type Filter struct {
	ID   *entity.ID `bson:"_id,omitempty" dynamodbav:"_id,omitempty" json:"id,omitempty"`
	Name *Name      `bson:"name,omitempty" dynamodbav:"name,omitempty" json:"name,omitempty"`
	Size *Size      `bson:"size,omitempty" dynamodbav:"size,omitempty" json:"size,omitempty"`
}

func (f Filter) WithID(id entity.ID) Filter {
	f.ID = &id
	return f
}

// Repository stores items.
type Repository = repository.Repository[Item, Spec, Patch, Filter]
