// Package apperr defines the error taxonomy shared by all services:
// validation, not-found, authentication and store failures. Services never
// recover locally; every failure is surfaced to the caller as one of these.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError indicates the input failed schema constraints before any
// store access took place.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a referenced entity id did not resolve.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Ref)
}

// NotFound builds a NotFoundError for the given entity and reference.
func NotFound(entity, ref string) error {
	return &NotFoundError{Entity: entity, Ref: ref}
}

// AuthenticationError indicates no acting identity was present.
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string {
	return "authentication required"
}

// Unauthenticated returns the uniform no-identity failure.
func Unauthenticated() error {
	return &AuthenticationError{}
}

// StoreError wraps an underlying store failure (connectivity, constraint
// violation). It is propagated unmodified; retrying is the caller's call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError for the named operation.
func Store(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsAuthentication reports whether err is an AuthenticationError.
func IsAuthentication(err error) bool {
	var e *AuthenticationError
	return errors.As(err, &e)
}

// IsStore reports whether err is a StoreError.
func IsStore(err error) bool {
	var e *StoreError
	return errors.As(err, &e)
}
