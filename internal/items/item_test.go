/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package items

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/errors"
	"github.com/suparena/docrepo/repository"
)

func TestParseName(t *testing.T) {
	name, err := ParseName("crate")
	require.NoError(t, err)
	assert.Equal(t, Name("crate"), name)

	_, err = ParseName("")
	assert.True(t, errors.IsValidationError(err))
}

func TestNameDecodingRejectsEmpty(t *testing.T) {
	var name Name
	require.NoError(t, json.Unmarshal([]byte(`"crate"`), &name))
	assert.Equal(t, Name("crate"), name)

	assert.Error(t, json.Unmarshal([]byte(`""`), &name))

	raw, err := bson.Marshal(bson.D{{Key: "_id", Value: entity.NewID()}, {Key: "name", Value: ""}, {Key: "size", Value: "Small"}})
	require.NoError(t, err)
	var item Item
	assert.Error(t, bson.Unmarshal(raw, &item))
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    Size
		wantErr bool
	}{
		{in: "Small", want: SizeSmall},
		{in: "medium", want: SizeMedium},
		{in: "LARGE", want: SizeLarge},
		{in: "huge", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemLocation(t *testing.T) {
	assert.Equal(t, "repotest.items", repository.Location[Item]())
}

func TestItemBSONRoundTrip(t *testing.T) {
	id := entity.NewID()
	item := Item{ID: id, Name: "crate", Size: SizeLarge}

	raw, err := bson.Marshal(item)
	require.NoError(t, err)
	assert.Equal(t, id.ObjectID(), bson.Raw(raw).Lookup("_id").ObjectID())
	assert.Equal(t, "Large", bson.Raw(raw).Lookup("size").StringValue())

	var decoded Item
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, item, decoded)
}

func TestPatchAndFilterOmitUnsetFields(t *testing.T) {
	id := entity.NewID()
	size := SizeSmall

	raw, err := bson.Marshal(Patch{ID: id, Size: &size})
	require.NoError(t, err)
	elems, err := bson.Raw(raw).Elements()
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, "size", elems[0].Key())

	raw, err = bson.Marshal(Filter{}.WithID(id))
	require.NoError(t, err)
	elems, err = bson.Raw(raw).Elements()
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, "_id", elems[0].Key())
}
