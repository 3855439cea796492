// Package contact holds the address book data model: names, validated phone
// numbers, records, and the in-memory book keyed by name.
package contact

import (
	"errors"
	"fmt"
)

// PhoneLength is the exact number of digits a phone number must have.
const PhoneLength = 10

// ErrInvalidPhone indicates a phone value is not exactly PhoneLength ASCII digits.
var ErrInvalidPhone = errors.New("contact: invalid phone number format")

// Field wraps a single string value.
type Field struct {
	value string
}

// Value returns the wrapped string.
func (f Field) Value() string { return f.value }

func (f Field) String() string { return f.value }

// Name is the identity of a Record.
type Name struct {
	Field
}

// NewName wraps s as a Name. Names are not normalized.
func NewName(s string) Name {
	return Name{Field{value: s}}
}

// Phone is a validated phone number. The zero value is not a valid phone.
type Phone struct {
	Field
}

// NewPhone validates raw and returns it as a Phone.
func NewPhone(raw string) (Phone, error) {
	if !ValidPhone(raw) {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return Phone{Field{value: raw}}, nil
}

// ValidPhone reports whether raw is exactly PhoneLength ASCII digits.
func ValidPhone(raw string) bool {
	if len(raw) != PhoneLength {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}
