/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/suparena/docrepo/errors"
)

// ID is a 12-byte object identifier. Two IDs are equal iff their bytes are equal,
// so ID is comparable and usable as a map key.
type ID strfmt.ObjectId

// NewID returns a fresh identifier for backends that assign ids client side.
func NewID() ID {
	return IDFromObjectID(primitive.NewObjectID())
}

// ParseID parses the 24-character hex form produced by String.
func ParseID(s string) (ID, error) {
	if !strfmt.IsBSONObjectID(s) {
		return ID{}, errors.NewMalformedIDError(s, nil)
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return ID{}, errors.NewMalformedIDError(s, err)
	}
	return IDFromObjectID(oid), nil
}

// IDFromObjectID converts the BSON native identifier.
func IDFromObjectID(oid primitive.ObjectID) ID {
	return ID(strfmt.ObjectId(oid))
}

// ObjectID returns the BSON native identifier.
func (id ID) ObjectID() primitive.ObjectID {
	return primitive.ObjectID(id)
}

func (id ID) String() string {
	return id.ObjectID().Hex()
}

// IsZero reports whether id is the all-zero identifier.
func (id ID) IsZero() bool {
	return id.ObjectID().IsZero()
}

// MarshalBSONValue stores the identifier as a BSON ObjectID.
func (id ID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(id.ObjectID())
}

// UnmarshalBSONValue accepts a BSON ObjectID or its hex string form.
func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	if oid, ok := raw.ObjectIDOK(); ok {
		*id = IDFromObjectID(oid)
		return nil
	}
	if s, ok := raw.StringValueOK(); ok {
		parsed, err := ParseID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	return fmt.Errorf("cannot decode BSON %s into an identifier", t)
}

// MarshalDynamoDBAttributeValue stores the identifier as its hex string.
func (id ID) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberS{Value: id.String()}, nil
}

// UnmarshalDynamoDBAttributeValue decodes the hex string form.
func (id *ID) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return fmt.Errorf("cannot decode DynamoDB %T into an identifier", av)
	}
	parsed, err := ParseID(s.Value)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
