/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/schema"
	"github.com/suparena/docstore/storagemodels"
)

// Encode wraps every schema field of doc with its declared type tag.
// Fields outside the schema and nil values are skipped.
func Encode(doc storagemodels.Document, s schema.Schema) (map[string]types.AttributeValue, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	item := make(map[string]types.AttributeValue, len(doc))
	for field, value := range doc {
		typ, ok := s.TypeOf(field)
		if !ok || value == nil {
			continue
		}
		av, err := encodeValue(field, value, typ)
		if err != nil {
			return nil, err
		}
		item[field] = av
	}
	return item, nil
}

func encodeValue(field string, value any, typ schema.AttributeType) (types.AttributeValue, error) {
	switch typ {
	case schema.String:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch(field, value, typ)
		}
		return &types.AttributeValueMemberS{Value: s}, nil
	case schema.Number:
		n, err := canonicalNumber(value)
		if err != nil {
			return nil, storeerrors.NewValidationError(field, err.Error())
		}
		return &types.AttributeValueMemberN{Value: n}, nil
	case schema.Boolean:
		b, ok := value.(bool)
		if !ok {
			return nil, mismatch(field, value, typ)
		}
		return &types.AttributeValueMemberBOOL{Value: b}, nil
	}
	return nil, storeerrors.NewUnsupportedTypeError(field, string(typ))
}

// Decode strips the type tags of item. Index attributes are left to the caller.
func Decode(item map[string]types.AttributeValue) (storagemodels.Document, error) {
	doc := make(storagemodels.Document, len(item))
	for field, av := range item {
		value, err := decodeValue(field, av)
		if err != nil {
			return nil, err
		}
		doc[field] = value
	}
	return doc, nil
}

// DecodeAll decodes a page of items, preserving order.
func DecodeAll(items []map[string]types.AttributeValue) ([]storagemodels.Document, error) {
	docs := make([]storagemodels.Document, 0, len(items))
	for _, item := range items {
		doc, err := Decode(item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeValue(field string, av types.AttributeValue) (any, error) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value, nil
	case *types.AttributeValueMemberBOOL:
		return v.Value, nil
	case *types.AttributeValueMemberNULL:
		return nil, nil
	case *types.AttributeValueMemberN:
		var n attributevalue.Number
		if err := attributevalue.Unmarshal(v, &n); err != nil {
			return nil, fmt.Errorf("decode %s: %w", field, err)
		}
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", field, err)
		}
		return f, nil
	}
	return nil, storeerrors.NewUnsupportedTypeError(field, memberTag(av))
}

// Native converts a caller-supplied value into the form expression values take
// for the declared type: string, attributevalue.Number or bool.
func Native(field string, value any, typ schema.AttributeType) (any, error) {
	switch typ {
	case schema.String:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprint(value), nil
	case schema.Number:
		n, err := canonicalNumber(value)
		if err != nil {
			return nil, storeerrors.NewValidationError(field, err.Error())
		}
		return attributevalue.Number(n), nil
	case schema.Boolean:
		switch b := value.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return nil, mismatch(field, value, typ)
			}
			return parsed, nil
		}
		return nil, mismatch(field, value, typ)
	}
	return nil, storeerrors.NewUnsupportedTypeError(field, string(typ))
}

// canonicalNumber renders numeric values the way the N tag carries them.
func canonicalNumber(value any) (string, error) {
	switch n := value.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float32:
		return formatFloat(float64(n))
	case float64:
		return formatFloat(n)
	case json.Number:
		return parseNumber(string(n))
	case attributevalue.Number:
		return parseNumber(string(n))
	case string:
		return parseNumber(n)
	}
	return "", fmt.Errorf("expected a number, got %T", value)
}

func parseNumber(s string) (string, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("%q is not a number", s)
	}
	return formatFloat(f)
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%v cannot be stored as a number", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10), nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func mismatch(field string, value any, typ schema.AttributeType) error {
	return storeerrors.NewValidationError(field, fmt.Sprintf("expected %s value, got %T", typ, value))
}

func memberTag(av types.AttributeValue) string {
	switch av.(type) {
	case *types.AttributeValueMemberB:
		return "B"
	case *types.AttributeValueMemberSS:
		return "SS"
	case *types.AttributeValueMemberNS:
		return "NS"
	case *types.AttributeValueMemberBS:
		return "BS"
	case *types.AttributeValueMemberL:
		return "L"
	case *types.AttributeValueMemberM:
		return "M"
	}
	return fmt.Sprintf("%T", av)
}
