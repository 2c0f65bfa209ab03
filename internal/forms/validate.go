package forms

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"
)

func (e Errors) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, MsgRequired)
		return false
	}
	return true
}

func (e Errors) MaxLength(field, value string, max int) bool {
	if utf8.RuneCountInString(value) > max {
		e.Add(field, MsgTooLong)
		return false
	}
	return true
}

// Email accepts a bare address only; display names are rejected.
func (e Errors) Email(field, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Name != "" || addr.Address != value {
		e.Add(field, MsgInvalidEmail)
		return false
	}
	return true
}

func (e Errors) PasswordsMatch(field, password, confirmation string) bool {
	if password != confirmation {
		e.Add(field, MsgPasswordsMismatch)
		return false
	}
	return true
}

func (e Errors) MinLength(field, value string, min int, key string) bool {
	if utf8.RuneCountInString(value) < min {
		e.Add(field, key)
		return false
	}
	return true
}

// UniqueLookup reports whether value is already taken by a record other than
// the one being edited.
type UniqueLookup func(ctx context.Context, value string) (bool, error)

// Unique runs lookup before save. The check is not transactional; callers map
// a unique violation raised by the save itself back to the same field.
func (e Errors) Unique(ctx context.Context, field, value string, lookup UniqueLookup) error {
	if e.Has(field) || strings.TrimSpace(value) == "" {
		return nil
	}
	taken, err := lookup(ctx, value)
	if err != nil {
		return err
	}
	if taken {
		e.Add(field, MsgNotUnique)
	}
	return nil
}
