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
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedID is returned when a string does not parse as an identifier
	ErrMalformedID = errors.New("malformed identifier")

	// ErrStore is matched by every failure reported by a backing store
	ErrStore = errors.New("backing store failure")

	// ErrTransactionClosed is returned when a committed or aborted transaction is used again
	ErrTransactionClosed = errors.New("transaction already finished")

	// ErrNoTransaction is returned when commit or abort is called outside a transaction
	ErrNoTransaction = errors.New("context is not transactional")

	// ErrNestedTransaction is returned when a transaction is started from a transactional context
	ErrNestedTransaction = errors.New("nested transactions are not supported")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
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

// MalformedIDError represents a string that could not be parsed as an identifier
type MalformedIDError struct {
	Input string
	Err   error
}

func (e *MalformedIDError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed identifier %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("malformed identifier %q", e.Input)
}

// Is matches both ErrMalformedID and ErrInvalidInput: a bad identifier is client input.
func (e *MalformedIDError) Is(target error) bool {
	return target == ErrMalformedID || target == ErrInvalidInput
}

func (e *MalformedIDError) Unwrap() error {
	return e.Err
}

// StoreError wraps a failure reported by the backing store driver
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// DecodeError reports a stored document that does not decode into its kind.
// It does not unwrap, so domain errors raised while decoding are not mistaken
// for client input.
type DecodeError struct {
	Collection string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode document from %s: %v", e.Collection, e.Err)
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewMalformedIDError creates a new MalformedIDError
func NewMalformedIDError(input string, cause error) error {
	return &MalformedIDError{Input: input, Err: cause}
}

// NewStoreError wraps err as a StoreError. A nil err yields nil.
func NewStoreError(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Collection: collection, Err: err}
}

// NewDecodeError wraps a document decoding failure. A nil err yields nil.
func NewDecodeError(collection string, err error) error {
	if err == nil {
		return nil
	}
	return &DecodeError{Collection: collection, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a client input error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformedID checks if an error is a malformed identifier error
func IsMalformedID(err error) bool {
	return errors.Is(err, ErrMalformedID)
}

// IsStoreError checks if an error came from the backing store
func IsStoreError(err error) bool {
	return errors.Is(err, ErrStore)
}

// Is and As forward to the standard library so callers importing this package
// under its own name keep access to them.

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
