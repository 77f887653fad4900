/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/docstore/errors"
)

// PrefixCeiling is appended to a lower-cased prefix to form the upper bound of
// a BETWEEN range. It sorts after every character used in practice.
const PrefixCeiling = "\uf8ff"

// Expression holds everything one SDK request needs. Unset parts are nil.
type Expression struct {
	Filter       *string
	KeyCondition *string
	Update       *string
	Condition    *string
	IndexName    *string
	Names        map[string]string
	Values       map[string]types.AttributeValue
}

type keyEquals struct {
	field string
	value any
}

type keyRange struct {
	field      string
	start, end string
}

// Builder collects predicates, key conditions and updates and compiles them
// with the DynamoDB expression package. The zero visibility is All.
type Builder struct {
	predicates []Predicate
	visibility Visibility
	index      string
	partition  *keyEquals
	sortRange  *keyRange
	updates    map[string]any
	exists     []string
	absent     []string
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Where adds filter predicates, joined with AND.
func (b *Builder) Where(preds ...Predicate) *Builder {
	b.predicates = append(b.predicates, preds...)
	return b
}

// Visibility sets the soft-delete policy.
func (b *Builder) Visibility(v Visibility) *Builder {
	b.visibility = v
	return b
}

// Index selects a secondary index; "" means the table itself.
func (b *Builder) Index(name string) *Builder {
	b.index = name
	return b
}

// KeyEquals sets the partition key condition.
func (b *Builder) KeyEquals(field string, value any) *Builder {
	b.partition = &keyEquals{field: field, value: value}
	return b
}

// KeyPrefix sets a sort key range matching values that start with the
// lower-cased text.
func (b *Builder) KeyPrefix(field, text string) *Builder {
	lower := strings.ToLower(text)
	b.sortRange = &keyRange{field: field, start: lower, end: lower + PrefixCeiling}
	return b
}

// Set adds a field assignment to the update expression.
func (b *Builder) Set(field string, value any) *Builder {
	if b.updates == nil {
		b.updates = make(map[string]any)
	}
	b.updates[field] = value
	return b
}

// RequireExists conditions a write on field being present.
func (b *Builder) RequireExists(field string) *Builder {
	b.exists = append(b.exists, field)
	return b
}

// RequireAbsent conditions a write on field being absent.
func (b *Builder) RequireAbsent(field string) *Builder {
	b.absent = append(b.absent, field)
	return b
}

// Build compiles the collected parts. A builder with nothing set yields an
// empty Expression, not an error.
func (b *Builder) Build() (Expression, error) {
	var out Expression
	if b.index != "" {
		out.IndexName = aws.String(b.index)
	}

	builder := expression.NewBuilder()
	empty := true

	filter, ok, err := b.filter()
	if err != nil {
		return Expression{}, err
	}
	if ok {
		builder = builder.WithFilter(filter)
		empty = false
	}

	key, ok, err := b.keyCondition()
	if err != nil {
		return Expression{}, err
	}
	if ok {
		builder = builder.WithKeyCondition(key)
		empty = false
	}

	if update, ok := b.update(); ok {
		builder = builder.WithUpdate(update)
		empty = false
	}

	if cond, ok := b.condition(); ok {
		builder = builder.WithCondition(cond)
		empty = false
	}

	if empty {
		return out, nil
	}

	compiled, err := builder.Build()
	if err != nil {
		return Expression{}, fmt.Errorf("build expression: %w", err)
	}
	out.Filter = compiled.Filter()
	out.KeyCondition = compiled.KeyCondition()
	out.Update = compiled.Update()
	out.Condition = compiled.Condition()
	out.Names = compiled.Names()
	out.Values = compiled.Values()
	return out, nil
}

func (b *Builder) filter() (expression.ConditionBuilder, bool, error) {
	conds := make([]expression.ConditionBuilder, 0, len(b.predicates)+1)
	for _, p := range b.predicates {
		c, err := p.condition()
		if err != nil {
			return expression.ConditionBuilder{}, false, err
		}
		conds = append(conds, c)
	}
	if c, ok := b.visibility.condition(); ok {
		conds = append(conds, c)
	}
	c, ok := and(conds)
	return c, ok, nil
}

func (b *Builder) keyCondition() (expression.KeyConditionBuilder, bool, error) {
	var (
		kc  expression.KeyConditionBuilder
		set bool
	)
	if b.partition != nil {
		if b.partition.field == "" {
			return kc, false, storeerrors.NewValidationError("", "key condition without a field name")
		}
		kc = expression.Key(b.partition.field).Equal(expression.Value(b.partition.value))
		set = true
	}
	if b.sortRange != nil {
		if b.sortRange.field == "" {
			return kc, false, storeerrors.NewValidationError("", "key range without a field name")
		}
		between := expression.Key(b.sortRange.field).Between(
			expression.Value(b.sortRange.start), expression.Value(b.sortRange.end))
		if set {
			kc = kc.And(between)
		} else {
			kc = between
		}
		set = true
	}
	return kc, set, nil
}

func (b *Builder) update() (expression.UpdateBuilder, bool) {
	if len(b.updates) == 0 {
		return expression.UpdateBuilder{}, false
	}
	fields := make([]string, 0, len(b.updates))
	for f := range b.updates {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	ub := expression.Set(expression.Name(fields[0]), expression.Value(b.updates[fields[0]]))
	for _, f := range fields[1:] {
		ub = ub.Set(expression.Name(f), expression.Value(b.updates[f]))
	}
	return ub, true
}

func (b *Builder) condition() (expression.ConditionBuilder, bool) {
	conds := make([]expression.ConditionBuilder, 0, len(b.exists)+len(b.absent))
	for _, f := range b.exists {
		conds = append(conds, expression.AttributeExists(expression.Name(f)))
	}
	for _, f := range b.absent {
		conds = append(conds, expression.AttributeNotExists(expression.Name(f)))
	}
	return and(conds)
}

func and(conds []expression.ConditionBuilder) (expression.ConditionBuilder, bool) {
	switch len(conds) {
	case 0:
		return expression.ConditionBuilder{}, false
	case 1:
		return conds[0], true
	}
	return expression.And(conds[0], conds[1], conds[2:]...), true
}
