// Package sharedstrings builds and queries a workbook's shared-string
// table for both container formats (XLSX `sharedStrings.xml`, XLSB
// `sharedStrings.bin`), tracking which indices resolve to a "null" string
// so the extractor can suppress cells that reference them.
//
// XLSX and XLSB disagree on how a null index is keyed in their own source
// material (4-byte little-endian in XLSB, decimal string in XLSX); rather
// than normalize that away this package keeps both namespaces, each queried
// with the key shape its own format naturally produces.
package sharedstrings

import (
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/rxlsgo/rxls/biff12"
	"github.com/rxlsgo/rxls/record"
)

// NullPredicate decides whether a shared string's text should be treated as
// null (e.g. empty string, or a caller-supplied sentinel list).
type NullPredicate func(s string) bool

// DefaultNullPredicate treats only the empty string as null.
func DefaultNullPredicate(s string) bool { return s == "" }

// Table is a workbook's shared-string arena plus its null-index sets.
type Table struct {
	strings  []string
	nullXLSB map[[4]byte]bool
	nullXLSX map[string]bool
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.strings) }

// Get returns the string at idx, or "" if idx is out of range.
func (t *Table) Get(idx uint32) string {
	if int(idx) >= len(t.strings) {
		return ""
	}
	return t.strings[idx]
}

// IsNullXLSB reports whether the 4-byte little-endian shared-string index
// raw was recorded as null while building this table.
func (t *Table) IsNullXLSB(raw [4]byte) bool { return t.nullXLSB[raw] }

// IsNullXLSX reports whether the decimal-string form of a shared-string
// index was recorded as null while building this table.
func (t *Table) IsNullXLSX(decimal string) bool { return t.nullXLSX[decimal] }

func build(strs []string, isNull NullPredicate) *Table {
	t := &Table{
		strings:  strs,
		nullXLSB: make(map[[4]byte]bool),
		nullXLSX: make(map[string]bool),
	}
	for i, s := range strs {
		if !isNull(s) {
			continue
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(i))
		t.nullXLSB[b] = true
		t.nullXLSX[strconv.Itoa(i)] = true
	}
	return t
}

// NewFromXLSB scans xl/sharedStrings.bin: a sequence of Si (0x0013) records
// terminated by SstEnd (0x01A0), each holding a flags byte (bit0 = rich
// string with a run-count to skip, bit1 = phonetic/extended data with a
// size to skip) followed by a length-prefixed UTF-16LE string.
func NewFromXLSB(data []byte, isNull NullPredicate) (*Table, error) {
	if isNull == nil {
		isNull = DefaultNullPredicate
	}
	var strs []string
	for rec := range record.Scan(record.NewReader(bytes.NewReader(data))) {
		if rec.ID == biff12.SstEnd {
			break
		}
		if rec.ID != biff12.Si {
			continue
		}
		s, err := parseSI(rec.Data)
		if err != nil {
			return nil, fmt.Errorf("sharedstrings: parsing Si record: %w", err)
		}
		strs = append(strs, s)
	}
	return build(strs, isNull), nil
}

func parseSI(data []byte) (string, error) {
	rr := record.NewRecordReader(data)
	flags, err := rr.ReadUint8()
	if err != nil {
		return "", err
	}
	if flags&0x1 != 0 { // fRichStr: a run count to skip
		if err := rr.Skip(4); err != nil {
			return "", err
		}
	}
	if flags&0x2 != 0 { // fExtStr: phonetic/extended data size to skip
		if err := rr.Skip(4); err != nil {
			return "", err
		}
	}
	return rr.ReadString()
}

// NewFromXLSX parses xl/sharedStrings.xml: a sequence of <si> elements,
// each containing either a single <t> or one or more <r><t> runs whose text
// is concatenated.
func NewFromXLSX(data []byte, isNull NullPredicate) (*Table, error) {
	if isNull == nil {
		isNull = DefaultNullPredicate
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var strs []string
	var cur *string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "si" {
				s := ""
				cur = &s
			} else if el.Name.Local == "t" && cur != nil {
				var text string
				if err := dec.DecodeElement(&text, &el); err == nil {
					*cur += text
				}
			}
		case xml.EndElement:
			if el.Name.Local == "si" && cur != nil {
				strs = append(strs, *cur)
				cur = nil
			}
		}
	}
	return build(strs, isNull), nil
}
