/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package bsondoc translates specs, patches and filters into BSON documents.
// The MongoDB and in-memory repositories share these rules.
package bsondoc

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/repository"
)

// IDField is the document key holding the identifier.
const IDField = "_id"

// Marshal encodes a spec as the document to insert.
func Marshal(v any) (bson.Raw, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return bson.Raw(data), nil
}

// MarshalPartial encodes a filter or patch. Unset fields must be omitted: a
// null value would match or write null instead of meaning "no constraint".
func MarshalPartial(v any) (bson.Raw, error) {
	doc, err := Marshal(v)
	if err != nil {
		return nil, err
	}

	elems, err := doc.Elements()
	if err != nil {
		return nil, fmt.Errorf("failed to read %T document: %w", v, err)
	}
	for _, elem := range elems {
		if elem.Value().Type == bsontype.Null {
			return nil, fmt.Errorf("field %q of %T serialized as null; optional fields must be omitempty", elem.Key(), v)
		}
	}
	return doc, nil
}

// IDFilter builds the document matching a single identifier from the kind's filter type.
func IDFilter[F repository.Filter[F]](id entity.ID) (bson.Raw, error) {
	var zero F
	return MarshalPartial(zero.WithID(id))
}

// SetFields encodes the fields a patch sets. It reports false when the patch
// sets none.
func SetFields(patch repository.Patch) (bson.Raw, bool, error) {
	doc, err := MarshalPartial(patch)
	if err != nil {
		return nil, false, err
	}
	if HasID(doc) {
		return nil, false, fmt.Errorf("patch %T must not serialize its target %s", patch, IDField)
	}

	elems, err := doc.Elements()
	if err != nil {
		return nil, false, err
	}
	return doc, len(elems) > 0, nil
}

// HasID reports whether doc carries an identifier.
func HasID(doc bson.Raw) bool {
	_, err := doc.LookupErr(IDField)
	return err == nil
}

// WithID returns doc with id prepended as its identifier.
func WithID(doc bson.Raw, id entity.ID) (bson.Raw, error) {
	elems, err := doc.Elements()
	if err != nil {
		return nil, err
	}
	out := make(bson.D, 0, len(elems)+1)
	out = append(out, bson.E{Key: IDField, Value: id.ObjectID()})
	for _, elem := range elems {
		out = append(out, bson.E{Key: elem.Key(), Value: elem.Value()})
	}
	return Marshal(out)
}

// Matches reports whether every field of filter is present in doc with an
// equal value. An empty filter matches every document.
func Matches(doc, filter bson.Raw) (bool, error) {
	elems, err := filter.Elements()
	if err != nil {
		return false, err
	}
	for _, elem := range elems {
		value, err := doc.LookupErr(elem.Key())
		if err != nil {
			return false, nil
		}
		if !value.Equal(elem.Value()) {
			return false, nil
		}
	}
	return true, nil
}

// ApplySet merges set into doc the way $set does for top-level keys:
// existing keys keep their position, new keys are appended.
func ApplySet(doc, set bson.Raw) (bson.Raw, error) {
	elems, err := doc.Elements()
	if err != nil {
		return nil, err
	}
	setElems, err := set.Elements()
	if err != nil {
		return nil, err
	}

	out := make(bson.D, 0, len(elems)+len(setElems))
	index := make(map[string]int, len(elems))
	for _, elem := range elems {
		index[elem.Key()] = len(out)
		out = append(out, bson.E{Key: elem.Key(), Value: elem.Value()})
	}
	for _, elem := range setElems {
		if i, ok := index[elem.Key()]; ok {
			out[i].Value = elem.Value()
			continue
		}
		out = append(out, bson.E{Key: elem.Key(), Value: elem.Value()})
	}
	return Marshal(out)
}
