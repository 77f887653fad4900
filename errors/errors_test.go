/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("Books", "123")

	expected := "Books:123 not found"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("Books", "abc")

	expected := "Books:abc already exists"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrAlreadyExists) {
		t.Error("AlreadyExistsError should match ErrAlreadyExists")
	}

	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "title",
			message:  "failed on min",
			expected: `validation failed for field "title": failed on min`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "no updates provided",
			expected: "validation failed: no updates provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Error("ValidationError should match ErrInvalidInput")
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestUnsupportedTypeError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		typ      string
		expected string
	}{
		{"with field", "tags", "SS", `unsupported attribute type "SS" for field "tags"`},
		{"without field", "", "L", `unsupported attribute type "L"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUnsupportedTypeError(tt.field, tt.typ)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsUnsupportedType(err) {
				t.Error("IsUnsupportedType should return true for UnsupportedTypeError")
			}
		})
	}
}

func TestBackendError(t *testing.T) {
	err := NewBackendError("Scan", "Books", context.DeadlineExceeded)

	expected := "Scan on Books failed: context deadline exceeded"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsBackendFailure(err) {
		t.Error("IsBackendFailure should return true for BackendError")
	}

	// The cause stays reachable for callers that inspect SDK errors
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("BackendError should unwrap to its cause")
	}

	var be *BackendError
	if !errors.As(fmt.Errorf("list: %w", err), &be) || be.Op != "Scan" {
		t.Errorf("errors.As should find the BackendError, got %v", be)
	}
}

func TestErrorWrapping(t *testing.T) {
	original := NewNotFoundError("Books", "123")
	wrapped := fmt.Errorf("delete failed: %w", original)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("Wrapped NotFoundError should still match ErrNotFound")
	}

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should work with wrapped errors")
	}

	if IsBackendFailure(wrapped) {
		t.Error("NotFoundError must not be classified as a backend failure")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrUnsupportedType,
		ErrBackend,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
