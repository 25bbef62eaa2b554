// Package column implements the per-column chunk/series accumulator: the
// part of the system that turns a stream of tagged Cell values into a
// single typed, null-aware Array per column.
package column

import (
	"github.com/rxlsgo/rxls/cell"
	"github.com/rxlsgo/rxls/sharedstrings"
)

// Chunk is a homogeneous run of values within one column. Exactly one of the
// raw* fields holds data before Prepare runs, and exactly one of the
// prepared fields holds data afterward — which one is determined by
// RawType. A NULL chunk carries no data at all; Size alone is its length.
type Chunk struct {
	RawType cell.RawType
	Size    int

	rawStrings []string
	rawIndices []uint32
	rawRK      []uint32
	rawFloats  []float64
	rawBools   []bool

	prepared bool
	Strings  []string
	Floats   []float64
	Millis   []int64
	Bools    []bool
}

// NullChunk builds a NULL chunk of the given length. Its Size IS its data.
func NullChunk(n int) *Chunk {
	return &Chunk{RawType: cell.RawType(cell.TypeNull), Size: n, prepared: true}
}

// StringChunk builds a STRING chunk, either owned (isShared=false, values in
// owned) or shared (isShared=true, indices holds shared-string table indices
// as uint32 — see sharedstrings for how indices are derived).
func StringChunk(owned []string, indices []uint32, isShared bool) *Chunk {
	rt := cell.RawType(cell.TypeString)
	if isShared {
		rt |= cell.RawType(cell.ReprShared)
		return &Chunk{RawType: rt, Size: len(indices), rawIndices: indices}
	}
	return &Chunk{RawType: rt, Size: len(owned), rawStrings: owned}
}

// NumericRKChunk builds a NUMERIC|RKNUMBER chunk, optionally tagged temporal.
func NumericRKChunk(vals []uint32, temporal bool) *Chunk {
	rt := cell.RawType(cell.TypeNumeric) | cell.RawType(cell.ReprRKNumber)
	if temporal {
		rt |= cell.RawType(cell.ReprTemporal)
	}
	return &Chunk{RawType: rt, Size: len(vals), rawRK: vals}
}

// NumericFloatChunk builds a plain NUMERIC chunk of raw f64 values,
// optionally tagged temporal (the floats are then Excel serial dates).
func NumericFloatChunk(vals []float64, temporal bool) *Chunk {
	rt := cell.RawType(cell.TypeNumeric)
	if temporal {
		rt |= cell.RawType(cell.ReprTemporal)
	}
	return &Chunk{RawType: rt, Size: len(vals), rawFloats: vals}
}

// NumericBoolChunk builds a NUMERIC|BOOLEAN chunk.
func NumericBoolChunk(vals []bool) *Chunk {
	rt := cell.RawType(cell.TypeNumeric) | cell.RawType(cell.ReprBoolean)
	return &Chunk{RawType: rt, Size: len(vals), rawBools: vals}
}

// IsEmpty reports whether the chunk carries zero elements.
func (c *Chunk) IsEmpty() bool { return c.Size == 0 }

// IsNull reports whether this is a NULL chunk.
func (c *Chunk) IsNull() bool { return c.RawType.IsNull() }

// IsTemporal reports whether the chunk's values should be interpreted as
// Excel serial dates once prepared.
func (c *Chunk) IsTemporal() bool { return c.RawType.Has(cell.ReprTemporal) }

// IsNumeric reports whether the chunk's TYPE bits are NUMERIC.
func (c *Chunk) IsNumeric() bool { return c.RawType.Type() == cell.TypeNumeric }

// Prepare rewrites the chunk's raw payload into its final in-memory form.
// Idempotent: a second call is a no-op. shared may be nil when the chunk is
// known not to reference the shared-string table.
func (c *Chunk) Prepare(shared *sharedstrings.Table) {
	if c.prepared {
		return
	}
	defer func() { c.prepared = true }()

	switch {
	case c.IsNull():
		return

	case c.RawType.Type() == cell.TypeString && c.RawType.Has(cell.ReprShared):
		c.Strings = make([]string, len(c.rawIndices))
		for i, idx := range c.rawIndices {
			if shared != nil {
				c.Strings[i] = shared.Get(idx)
			}
		}

	case c.RawType.Type() == cell.TypeString:
		c.Strings = c.rawStrings

	case c.RawType.Has(cell.ReprRKNumber):
		c.Floats = make([]float64, len(c.rawRK))
		for i, v := range c.rawRK {
			c.Floats[i] = RKToFloat64(v)
		}
		if c.IsTemporal() {
			c.Millis = make([]int64, len(c.Floats))
			for i, f := range c.Floats {
				c.Millis[i] = SerialToMillis(f)
			}
			c.Floats = nil
		}

	case c.RawType.Has(cell.ReprBoolean):
		c.Bools = c.rawBools

	case c.IsTemporal():
		c.Millis = make([]int64, len(c.rawFloats))
		for i, f := range c.rawFloats {
			c.Millis[i] = SerialToMillis(f)
		}

	default:
		c.Floats = c.rawFloats
	}
}
