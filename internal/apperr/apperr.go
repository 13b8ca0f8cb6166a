// Package apperr defines the error kinds the services hand to the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries per-field messages. Nothing is written when one is
// returned.
type ValidationError struct {
	Fields map[string]string
}

func NewValidation() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Field builds a ValidationError with a single field message.
func Field(field, msg string) *ValidationError {
	v := NewValidation()
	v.Add(field, msg)
	return v
}

// Add records msg for field unless the field already has a message.
func (v *ValidationError) Add(field, msg string) {
	if _, ok := v.Fields[field]; ok {
		return
	}
	v.Fields[field] = msg
}

func (v *ValidationError) Empty() bool {
	return len(v.Fields) == 0
}

// OrNil returns v as an error, or nil when no field failed.
func (v *ValidationError) OrNil() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports a lookup by id that matched nothing.
type NotFoundError struct {
	Entity string
	ID     uint
}

func NotFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// IntegrityError reports a multi-row write that failed after its first step
// and was rolled back as a whole.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s rolled back: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
