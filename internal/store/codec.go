// Package store persists an address book to a line-oriented text file.
//
// Each record is one line of the form name:phone1;phone2;...;phoneN.
// Names and phones are not escaped, so a name containing ':' or ';' does not
// survive a round trip.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/smileynet/phonebook/internal/contact"
)

const (
	nameSep  = ":"
	phoneSep = ";"
)

// ErrMalformedLine indicates a persisted line could not be parsed into a record.
var ErrMalformedLine = errors.New("store: malformed line")

// Encode writes one line per record in book order.
func Encode(w io.Writer, book *contact.AddressBook) error {
	bw := bufio.NewWriter(w)
	for _, r := range book.Records() {
		if _, err := fmt.Fprintf(bw, "%s%s%s\n", r.Name().Value(), nameSep, r.JoinPhones(phoneSep)); err != nil {
			return fmt.Errorf("store: encoding %s: %w", r.Name(), err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("store: encoding: %w", err)
	}
	return nil
}

// Decode parses every line of r into a fresh AddressBook. Lines have no
// length limit, so anything Encode writes decodes back.
// Blank lines are skipped. The first malformed line aborts decoding with an
// error wrapping ErrMalformedLine.
func Decode(r io.Reader) (*contact.AddressBook, error) {
	book := contact.NewAddressBook()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := decodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrMalformedLine, lineNo, err)
		}
		book.AddRecord(rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("store: reading: %w", err)
	}
	return book, nil
}

func decodeLine(line string) (*contact.Record, error) {
	name, phones, ok := strings.Cut(line, nameSep)
	if !ok {
		return nil, fmt.Errorf("missing %q separator", nameSep)
	}
	if name == "" {
		return nil, errors.New("empty name")
	}
	rec := contact.NewRecord(name)
	if phones == "" {
		return rec, nil
	}
	for _, p := range strings.Split(phones, phoneSep) {
		if err := rec.AddPhone(p); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
