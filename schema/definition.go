/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/storagemodels"
)

// Field declares one collection field: its type tag and validator rules,
// e.g. {type: S, validate: "required,min=10,max=1000"}.
type Field struct {
	Type  AttributeType `yaml:"type" validate:"required"`
	Rules string        `yaml:"validate,omitempty"`
}

// Definition is the declarative form of a collection, as read from config.
type Definition map[string]Field

// Schema extracts the type tags and validates them.
func (d Definition) Schema() (Schema, error) {
	s := make(Schema, len(d))
	for name, f := range d {
		s[name] = f.Type
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validator applies the per-field rules of a Definition to documents before
// they reach a store.
type Validator struct {
	validate *validator.Validate
	rules    map[string]string
}

// NewValidator builds a Validator for def. Fields without rules are not checked.
func NewValidator(def Definition) *Validator {
	rules := make(map[string]string, len(def))
	for name, f := range def {
		if f.Rules != "" {
			rules[name] = f.Rules
		}
	}
	return &Validator{validate: validator.New(), rules: rules}
}

// ValidateCreate checks a complete document; required fields must be present.
func (v *Validator) ValidateCreate(ctx context.Context, doc storagemodels.Document) error {
	return v.check(ctx, doc, false)
}

// ValidateUpdate checks only the fields present in a partial document.
func (v *Validator) ValidateUpdate(ctx context.Context, doc storagemodels.Document) error {
	return v.check(ctx, doc, true)
}

func (v *Validator) check(ctx context.Context, doc storagemodels.Document, partial bool) error {
	for _, field := range sortedKeys(v.rules) {
		rules := v.rules[field]
		value, present := doc[field]
		if !present || value == nil {
			if !partial && hasRule(rules, "required") {
				return storeerrors.NewValidationError(field, "is required")
			}
			continue
		}
		if err := v.validate.VarCtx(ctx, value, rules); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return storeerrors.NewValidationError(field, describe(verrs[0]))
			}
			return fmt.Errorf("validate %s: %w", field, err)
		}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("failed on the '%s=%s' rule", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

func hasRule(rules, name string) bool {
	for _, r := range strings.Split(rules, ",") {
		if strings.TrimSpace(r) == name {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
