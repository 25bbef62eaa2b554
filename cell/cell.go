// Package cell defines the tagged-variant value every extractor (XLSX and
// XLSB) emits for one occupied position in a worksheet, and the bitset that
// tags its logical shape before the column engine has had a chance to
// materialize it into a concrete Go value.
package cell

// Type is the TYPE half of a cell's raw_type bitset: what broad kind of
// value is stored, independent of its representation on the wire.
type Type uint8

const (
	TypeNull    Type = 0x00
	TypeString  Type = 0x10
	TypeNumeric Type = 0x20
)

// Repr is the REPR half of a cell's raw_type bitset: how the value is
// represented on the wire, or how it should be reinterpreted once
// dereferenced. Bits combine freely with a Type via bitwise OR.
type Repr uint8

const (
	ReprPlain    Repr = 0x00
	ReprShared   Repr = 0x01 // string: index into the shared-string table
	ReprRKNumber Repr = 0x01 // numeric: RK-compressed encoding, not IEEE-754
	ReprBoolean  Repr = 0x02
	ReprTemporal Repr = 0x04 // numeric: serial date/time, convert before use
	ReprPrepared Repr = 0x08 // already materialized, no further decode needed
)

// RawType is the full TYPE|REPR bitset carried by a Cell, matching the
// tagged-variant model cells use on the wire before the column engine
// resolves them into typed, null-aware columns.
type RawType uint8

// Type extracts the TYPE bits (the low nibble's TYPE field).
func (rt RawType) Type() Type { return Type(rt) & (TypeString | TypeNumeric) }

// Has reports whether every bit in r is set on rt.
func (rt RawType) Has(r Repr) bool { return RawType(r)&rt == RawType(r) }

// IsNull reports whether rt carries no TYPE bits at all.
func (rt RawType) IsNull() bool { return rt.Type() == TypeNull }

// Cell is one occupied worksheet position along with its tagged raw value.
// Val holds the representation implied by RawType: a string index (uint32)
// when ReprShared is set, a raw float64 bits pattern or RK-encoded uint32
// when numeric-and-not-prepared, or an already-decoded value when
// ReprPrepared is set. Extractors never interpret Val themselves — that is
// the column engine's job — so Cell stays a thin, allocation-light carrier.
type Cell struct {
	Row     int
	Col     int
	RawType RawType
	Val     any
}
