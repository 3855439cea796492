package contact

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrPhoneNotFound indicates a record has no phone with the requested value.
var ErrPhoneNotFound = errors.New("contact: phone not found")

// Record is one contact: a name and an ordered list of phones.
// Duplicate phones are permitted.
type Record struct {
	name   Name
	phones []Phone
}

// NewRecord creates a Record with no phones.
func NewRecord(name string) *Record {
	return &Record{name: NewName(name)}
}

// Name returns the record's name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the record's phones in order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// AddPhone validates raw and appends it.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes every phone equal to value. Absent values are a no-op.
func (r *Record) RemovePhone(value string) {
	r.phones = slices.DeleteFunc(r.phones, func(p Phone) bool {
		return p.Value() == value
	})
}

// EditPhone replaces the first phone equal to old with newRaw, keeping its position.
// The record is unchanged if newRaw is invalid or old is absent.
func (r *Record) EditPhone(old, newRaw string) error {
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	i := r.index(old)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, old)
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the first phone equal to value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	i := r.index(value)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

func (r *Record) index(value string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool {
		return p.Value() == value
	})
}

// JoinPhones joins the record's phone values with sep.
func (r *Record) JoinPhones(sep string) string {
	vals := make([]string, len(r.phones))
	for i, p := range r.phones {
		vals[i] = p.Value()
	}
	return strings.Join(vals, sep)
}

func (r *Record) String() string {
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, r.JoinPhones(", "))
}
