/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expr

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/storagemodels"
)

// Operator is the comparison a Predicate applies.
type Operator int

const (
	Equal Operator = iota
	NotEqual
	BeginsWith
	Contains
)

func (o Operator) String() string {
	switch o {
	case Equal:
		return "="
	case NotEqual:
		return "<>"
	case BeginsWith:
		return "begins_with"
	case Contains:
		return "contains"
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Predicate is one filter clause. Value must already be in native expression
// form (string, attributevalue.Number or bool).
type Predicate struct {
	Field string
	Op    Operator
	Value any
}

// Eq is shorthand for an equality predicate.
func Eq(field string, value any) Predicate {
	return Predicate{Field: field, Op: Equal, Value: value}
}

func (p Predicate) condition() (expression.ConditionBuilder, error) {
	if p.Field == "" {
		return expression.ConditionBuilder{}, storeerrors.NewValidationError("", "predicate without a field name")
	}
	name := expression.Name(p.Field)
	switch p.Op {
	case Equal:
		return name.Equal(expression.Value(p.Value)), nil
	case NotEqual:
		return name.NotEqual(expression.Value(p.Value)), nil
	case BeginsWith, Contains:
		s, ok := p.Value.(string)
		if !ok {
			return expression.ConditionBuilder{}, storeerrors.NewValidationError(p.Field,
				fmt.Sprintf("%s needs a string operand, got %T", p.Op, p.Value))
		}
		if p.Op == BeginsWith {
			return name.BeginsWith(s), nil
		}
		return name.Contains(s), nil
	}
	return expression.ConditionBuilder{}, storeerrors.NewValidationError(p.Field, fmt.Sprintf("unknown operator %s", p.Op))
}

// Visibility is the soft-delete policy applied to a read.
type Visibility int

const (
	// All leaves archived documents in the result.
	All Visibility = iota
	// ActiveOnly appends isActive = true to the filter.
	ActiveOnly
)

// VisibilityFor maps the per-call include-inactive flag to a policy.
func VisibilityFor(includeInactive bool) Visibility {
	if includeInactive {
		return All
	}
	return ActiveOnly
}

func (v Visibility) String() string {
	if v == ActiveOnly {
		return "active-only"
	}
	return "all"
}

func (v Visibility) condition() (expression.ConditionBuilder, bool) {
	if v != ActiveOnly {
		return expression.ConditionBuilder{}, false
	}
	return expression.Name(storagemodels.FieldIsActive).Equal(expression.Value(true)), true
}
