/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a document is absent, or inactive and not requested
	ErrNotFound = errors.New("document not found")

	// ErrAlreadyExists is returned when a create must not overwrite an existing document
	ErrAlreadyExists = errors.New("document already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType is returned for attribute type tags outside S, N and BOOL
	ErrUnsupportedType = errors.New("unsupported attribute type")

	// ErrBackend is returned when the backing store call itself fails
	ErrBackend = errors.New("backend failure")
)

// NotFoundError represents a document that could not be found in a table
type NotFoundError struct {
	Table string
	ID    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s:%s not found", e.Table, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents a document id that is already taken
type AlreadyExistsError struct {
	Table string
	ID    string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s:%s already exists", e.Table, e.ID)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnsupportedTypeError reports a type tag the codec does not recognize.
// Field is empty when the tag was rejected outside of a schema.
type UnsupportedTypeError struct {
	Field string
	Type  string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("unsupported attribute type %q for field %q", e.Type, e.Field)
	}
	return fmt.Sprintf("unsupported attribute type %q", e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// BackendError wraps a failed call to the backing store.
type BackendError struct {
	Op    string
	Table string
	Err   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s on %s failed: %v", e.Op, e.Table, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(table, id string) error {
	return &NotFoundError{Table: table, ID: id}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(table, id string) error {
	return &AlreadyExistsError{Table: table, ID: id}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewUnsupportedTypeError creates a new UnsupportedTypeError
func NewUnsupportedTypeError(field, typ string) error {
	return &UnsupportedTypeError{Field: field, Type: typ}
}

// NewBackendError creates a new BackendError
func NewBackendError(op, table string, err error) error {
	return &BackendError{Op: op, Table: table, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnsupportedType checks if an error is an unsupported type error
func IsUnsupportedType(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// IsBackendFailure checks if an error came from the backing store
func IsBackendFailure(err error) bool {
	return errors.Is(err, ErrBackend)
}
