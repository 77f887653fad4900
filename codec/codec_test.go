/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/schema"
	"github.com/suparena/docstore/storagemodels"
)

var books = schema.Schema{
	"title": schema.String,
	"pages": schema.Number,
	"price": schema.Number,
	"draft": schema.Boolean,
}

func TestEncode(t *testing.T) {
	t.Parallel()

	item, err := Encode(storagemodels.Document{
		"title":  "The Word for World Is Forest",
		"pages":  189,
		"price":  12.5,
		"draft":  false,
		"author": "dropped",
		"isbn":   nil,
	}, books)
	require.NoError(t, err)

	assert.Equal(t, map[string]types.AttributeValue{
		"title": &types.AttributeValueMemberS{Value: "The Word for World Is Forest"},
		"pages": &types.AttributeValueMemberN{Value: "189"},
		"price": &types.AttributeValueMemberN{Value: "12.5"},
		"draft": &types.AttributeValueMemberBOOL{Value: false},
	}, item)
}

func TestEncodeNumberForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want string
	}{
		{int64(-7), "-7"},
		{uint16(9), "9"},
		{float64(42), "42"},
		{float32(0.5), "0.5"},
		{json.Number("1e3"), "1000"},
		{attributevalue.Number("17"), "17"},
		{" 3.25 ", "3.25"},
	}
	for _, c := range cases {
		item, err := Encode(storagemodels.Document{"pages": c.in}, books)
		require.NoError(t, err, "%v", c.in)
		assert.Equal(t, &types.AttributeValueMemberN{Value: c.want}, item["pages"], "%v", c.in)
	}
}

func TestEncodeMismatch(t *testing.T) {
	t.Parallel()

	for _, doc := range []storagemodels.Document{
		{"title": 12},
		{"pages": "many"},
		{"pages": math.NaN()},
		{"draft": "yes"},
	} {
		_, err := Encode(doc, books)
		assert.True(t, storeerrors.IsValidationError(err), "%v: %v", doc, err)
	}
}

func TestEncodeUnsupportedSchemaType(t *testing.T) {
	t.Parallel()

	bad := schema.Schema{"title": schema.String, "tags": schema.AttributeType("SS")}
	// Fails even when the document never mentions the bad field
	_, err := Encode(storagemodels.Document{"title": "x"}, bad)
	require.Error(t, err)
	assert.True(t, storeerrors.IsUnsupportedType(err))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	doc, err := Decode(map[string]types.AttributeValue{
		"id":       &types.AttributeValueMemberS{Value: "b-1"},
		"pages":    &types.AttributeValueMemberN{Value: "189"},
		"price":    &types.AttributeValueMemberN{Value: "12.5"},
		"isActive": &types.AttributeValueMemberBOOL{Value: true},
		"note":     &types.AttributeValueMemberNULL{Value: true},
		"docType":  &types.AttributeValueMemberS{Value: "Books"},
	})
	require.NoError(t, err)
	assert.Equal(t, storagemodels.Document{
		"id":       "b-1",
		"pages":    int64(189),
		"price":    12.5,
		"isActive": true,
		"note":     nil,
		"docType":  "Books",
	}, doc)
}

func TestDecodeUnsupportedMember(t *testing.T) {
	t.Parallel()

	_, err := Decode(map[string]types.AttributeValue{
		"tags": &types.AttributeValueMemberSS{Value: []string{"a"}},
	})
	require.Error(t, err)
	var uerr *storeerrors.UnsupportedTypeError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "tags", uerr.Field)
	assert.Equal(t, "SS", uerr.Type)
}

func TestRoundTripRestrictsToSchema(t *testing.T) {
	t.Parallel()

	docs := []storagemodels.Document{
		{"title": "Always Coming Home", "pages": int64(523), "price": 19.99, "draft": true, "extra": "x"},
		{"title": ""},
		{},
		{"pages": int64(0), "draft": false, "unknown": int64(1)},
	}
	for _, d := range docs {
		item, err := Encode(d, books)
		require.NoError(t, err)
		back, err := Decode(item)
		require.NoError(t, err)
		assert.Equal(t, books.Restrict(d), back)
	}
}

func TestNative(t *testing.T) {
	t.Parallel()

	v, err := Native("pages", "42", schema.Number)
	require.NoError(t, err)
	assert.Equal(t, attributevalue.Number("42"), v)

	v, err = Native("draft", "true", schema.Boolean)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = Native("title", 7, schema.String)
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	_, err = Native("pages", "x", schema.Number)
	assert.True(t, storeerrors.IsValidationError(err))

	_, err = Native("tags", "a", schema.AttributeType("SS"))
	assert.True(t, storeerrors.IsUnsupportedType(err))
}
