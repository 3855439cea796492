package contact

import "slices"

// AddressBook maps names to records and remembers insertion order.
// It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// NewAddressBook creates an empty AddressBook.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name, replacing any existing record with that name.
// A replaced name keeps its original position.
func (b *AddressBook) AddRecord(r *Record) {
	key := r.Name().Value()
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name and reports whether one existed.
func (b *AddressBook) Delete(name string) bool {
	if _, ok := b.records[name]; !ok {
		return false
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
	return true
}

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, len(b.order))
	for i, name := range b.order {
		out[i] = b.records[name]
	}
	return out
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.order) }
