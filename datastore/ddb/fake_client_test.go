/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient is an in-memory DynamoDB good enough for the expressions the
// store generates: equality, <>, BETWEEN, begins_with, contains,
// attribute_exists/attribute_not_exists, AND, and SET updates. Items are
// keyed by their "id" attribute and scanned in id order.
type fakeClient struct {
	mu       sync.Mutex
	tables   map[string]map[string]map[string]types.AttributeValue
	sortKeys map[string]string

	// scanHook, when set, runs before every Scan and may fail it.
	scanHook func(*sdk.ScanInput) error

	scans   []*sdk.ScanInput
	queries []*sdk.QueryInput
}

var _ Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		tables:   make(map[string]map[string]map[string]types.AttributeValue),
		sortKeys: map[string]string{"created-index": "created"},
	}
}

func (f *fakeClient) table(name string) map[string]map[string]types.AttributeValue {
	t, ok := f.tables[name]
	if !ok {
		t = make(map[string]map[string]types.AttributeValue)
		f.tables[name] = t
	}
	return t
}

func (f *fakeClient) GetItem(_ context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := f.table(*in.TableName)[idOf(in.Key)]
	return &sdk.GetItemOutput{Item: clone(item)}, nil
}

func (f *fakeClient) PutItem(_ context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(*in.TableName)
	id := idOf(in.Item)
	if in.ConditionExpression != nil {
		ok, err := eval(*in.ConditionExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues, t[id])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional check failed")}
		}
	}
	t[id] = clone(in.Item)
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) UpdateItem(_ context.Context, in *sdk.UpdateItemInput, _ ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(*in.TableName)
	id := idOf(in.Key)
	item := clone(t[id])
	if item == nil {
		item = clone(in.Key)
	}
	if in.ConditionExpression != nil {
		ok, err := eval(*in.ConditionExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues, t[id])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional check failed")}
		}
	}

	update := strings.TrimSpace(aws.ToString(in.UpdateExpression))
	if !strings.HasPrefix(update, "SET ") {
		return nil, fmt.Errorf("fake: unsupported update %q", update)
	}
	for _, assignment := range strings.Split(strings.TrimPrefix(update, "SET "), ",") {
		m := assignRe.FindStringSubmatch(strings.TrimSpace(assignment))
		if m == nil {
			return nil, fmt.Errorf("fake: unsupported assignment %q", assignment)
		}
		item[in.ExpressionAttributeNames[m[1]]] = in.ExpressionAttributeValues[m[2]]
	}
	t[id] = item
	return &sdk.UpdateItemOutput{Attributes: clone(item)}, nil
}

func (f *fakeClient) DeleteItem(_ context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.table(*in.TableName), idOf(in.Key))
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) Scan(_ context.Context, in *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	f.scans = append(f.scans, in)
	hook := f.scanHook
	f.mu.Unlock()
	if hook != nil {
		if err := hook(in); err != nil {
			return nil, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.sorted(*in.TableName, "id", true)
	page, last, err := paginate(items, in.ExclusiveStartKey, in.Limit, func(item map[string]types.AttributeValue) (bool, error) {
		if in.FilterExpression == nil {
			return true, nil
		}
		return eval(*in.FilterExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues, item)
	})
	if err != nil {
		return nil, err
	}
	return &sdk.ScanOutput{Items: page, Count: int32(len(page)), LastEvaluatedKey: last}, nil
}

func (f *fakeClient) Query(_ context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, in)

	if in.KeyConditionExpression == nil {
		return nil, fmt.Errorf("fake: query without key condition")
	}
	sortKey := "id"
	if in.IndexName != nil {
		sortKey = *in.IndexName
		if mapped, ok := f.sortKeys[sortKey]; ok {
			sortKey = mapped
		}
	}

	var matched []map[string]types.AttributeValue
	for _, item := range f.sorted(*in.TableName, sortKey, aws.ToBool(in.ScanIndexForward)) {
		ok, err := eval(*in.KeyConditionExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues, item)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, item)
		}
	}

	page, last, err := paginate(matched, in.ExclusiveStartKey, in.Limit, func(item map[string]types.AttributeValue) (bool, error) {
		if in.FilterExpression == nil {
			return true, nil
		}
		return eval(*in.FilterExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues, item)
	})
	if err != nil {
		return nil, err
	}
	return &sdk.QueryOutput{Items: page, Count: int32(len(page)), LastEvaluatedKey: last}, nil
}

// put stores a raw item directly, bypassing the store.
func (f *fakeClient) put(table string, item map[string]types.AttributeValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table(table)[idOf(item)] = item
}

func (f *fakeClient) sorted(table, attr string, ascending bool) []map[string]types.AttributeValue {
	items := make([]map[string]types.AttributeValue, 0, len(f.tables[table]))
	for _, item := range f.tables[table] {
		if _, ok := item[attr]; ok {
			items = append(items, clone(item))
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		c, _ := compare(items[i][attr], items[j][attr])
		if c == 0 {
			c = strings.Compare(idOf(items[i]), idOf(items[j]))
		}
		if ascending {
			return c < 0
		}
		return c > 0
	})
	return items
}

// paginate evaluates up to limit items after the start key, the way DynamoDB
// applies Limit before the filter.
func paginate(
	items []map[string]types.AttributeValue,
	start map[string]types.AttributeValue,
	limit *int32,
	keep func(map[string]types.AttributeValue) (bool, error),
) ([]map[string]types.AttributeValue, map[string]types.AttributeValue, error) {
	from := 0
	if len(start) > 0 {
		startID := idOf(start)
		for i, item := range items {
			if idOf(item) == startID {
				from = i + 1
				break
			}
		}
	}

	end := len(items)
	if limit != nil && from+int(*limit) < end {
		end = from + int(*limit)
	}

	page := make([]map[string]types.AttributeValue, 0, end-from)
	for _, item := range items[from:end] {
		ok, err := keep(item)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			page = append(page, item)
		}
	}

	var last map[string]types.AttributeValue
	if end < len(items) && end > from {
		last = map[string]types.AttributeValue{"id": items[end-1]["id"]}
	}
	return page, last, nil
}

var (
	assignRe   = regexp.MustCompile(`^(#\w+) = (:\w+)$`)
	equalRe    = regexp.MustCompile(`^(#\w+) = (:\w+)$`)
	notEqualRe = regexp.MustCompile(`^(#\w+) <> (:\w+)$`)
	betweenRe  = regexp.MustCompile(`^(#\w+) BETWEEN (:\w+) AND (:\w+)$`)
	beginsRe   = regexp.MustCompile(`^begins_with ?\((#\w+), ?(:\w+)\)$`)
	containsRe = regexp.MustCompile(`^contains ?\((#\w+), ?(:\w+)\)$`)
	existsRe   = regexp.MustCompile(`^attribute_exists ?\((#\w+)\)$`)
	absentRe   = regexp.MustCompile(`^attribute_not_exists ?\((#\w+)\)$`)
)

func eval(expr string, names map[string]string, values map[string]types.AttributeValue, item map[string]types.AttributeValue) (bool, error) {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "(") {
		for _, part := range splitAnd(expr) {
			ok, err := eval(strings.TrimSuffix(strings.TrimPrefix(part, "("), ")"), names, values, item)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}

	if m := betweenRe.FindStringSubmatch(expr); m != nil {
		v, ok := item[names[m[1]]]
		if !ok {
			return false, nil
		}
		lo, _ := compare(v, values[m[2]])
		hi, _ := compare(v, values[m[3]])
		return lo >= 0 && hi <= 0, nil
	}
	if m := equalRe.FindStringSubmatch(expr); m != nil {
		c, ok := compare(item[names[m[1]]], values[m[2]])
		return ok && c == 0, nil
	}
	if m := notEqualRe.FindStringSubmatch(expr); m != nil {
		c, ok := compare(item[names[m[1]]], values[m[2]])
		return !ok || c != 0, nil
	}
	if m := beginsRe.FindStringSubmatch(expr); m != nil {
		s, ok := item[names[m[1]]].(*types.AttributeValueMemberS)
		p, _ := values[m[2]].(*types.AttributeValueMemberS)
		return ok && p != nil && strings.HasPrefix(s.Value, p.Value), nil
	}
	if m := containsRe.FindStringSubmatch(expr); m != nil {
		s, ok := item[names[m[1]]].(*types.AttributeValueMemberS)
		p, _ := values[m[2]].(*types.AttributeValueMemberS)
		return ok && p != nil && strings.Contains(s.Value, p.Value), nil
	}
	if m := existsRe.FindStringSubmatch(expr); m != nil {
		_, ok := item[names[m[1]]]
		return ok, nil
	}
	if m := absentRe.FindStringSubmatch(expr); m != nil {
		_, ok := item[names[m[1]]]
		return !ok, nil
	}
	return false, fmt.Errorf("fake: unsupported expression %q", expr)
}

// splitAnd splits "(a) AND (b) AND (c)" at top-level ANDs.
func splitAnd(expr string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && strings.HasPrefix(expr[i:], " AND ") {
			parts = append(parts, strings.TrimSpace(expr[start:i]))
			start = i + len(" AND ")
			i = start - 1
		}
	}
	return append(parts, strings.TrimSpace(expr[start:]))
}

// compare orders two attribute values of the same type.
func compare(a, b types.AttributeValue) (int, bool) {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		if !ok {
			return 0, false
		}
		return strings.Compare(av.Value, bv.Value), true
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		if !ok {
			return 0, false
		}
		x, _ := strconv.ParseFloat(av.Value, 64)
		y, _ := strconv.ParseFloat(bv.Value, 64)
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		if !ok || av.Value != bv.Value {
			return 1, ok
		}
		return 0, true
	}
	return 0, false
}

func idOf(item map[string]types.AttributeValue) string {
	if s, ok := item["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func clone(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
