// Package forms validates editor dialog input and tracks unsaved changes.
package forms

import (
	"errors"
	"sort"
	"strings"
)

// Message keys resolved through the AdminResources bundle.
const (
	MsgRequired          = "validation.required"
	MsgTooLong           = "validation.too_long"
	MsgInvalidEmail      = "validation.invalid_email"
	MsgPasswordsMismatch = "validation.passwords_mismatch"
	MsgPasswordTooShort  = "validation.password_too_short"
	MsgNotUnique         = "validation.not_unique"
	MsgInvalidValue      = "validation.invalid_value"
)

// Errors maps a form field name to a message key.
type Errors map[string]string

// Add records key for field unless the field already has an error.
func (e Errors) Add(field, key string) {
	if _, exists := e[field]; exists {
		return
	}
	e[field] = key
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the fields with errors in lexical order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for field := range e {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Err returns a *ValidationError when any field failed, nil otherwise.
func (e Errors) Err() error {
	if e.Valid() {
		return nil
	}
	return &ValidationError{Fields: e}
}

type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields.Fields(), ", ")
}

// FieldErrors extracts the per-field errors carried by err, if any.
func FieldErrors(err error) (Errors, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) && verr != nil {
		return verr.Fields, true
	}
	return nil, false
}

// FieldError builds a validation error for a single field.
func FieldError(field, key string) error {
	return &ValidationError{Fields: Errors{field: key}}
}
