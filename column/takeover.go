package column

import "github.com/rxlsgo/rxls/cell"

// TakeOver configures the slicing step applied to a chunk list before
// concatenation, mirroring the reference accumulator's `take_over(chunks,
// offset, length, index)`.
//
// When Index is non-nil it takes priority over Offset/Length and selects
// elements by boolean mask (its population count becomes the output
// length). Otherwise Offset elements are dropped from the front and, when
// Length is positive, the result is capped to exactly Length elements,
// padded with a trailing NULL chunk if fewer are available.
type TakeOver struct {
	Offset int
	Length int // <=0 means unbounded (no cap, no padding)
	Index  []bool
}

// TakeOverChunks applies the slicing step to chunks, returning a new chunk
// list. It must run before Prepare: it operates on each Chunk's raw,
// not-yet-decoded payload.
func TakeOverChunks(chunks []*Chunk, t TakeOver) []*Chunk {
	if t.Index != nil {
		return filterChunksByMask(chunks, t.Index)
	}
	return sliceChunks(chunks, t.Offset, t.Length)
}

func sliceChunks(chunks []*Chunk, offset, length int) []*Chunk {
	var out []*Chunk
	skip := offset
	unbounded := length <= 0
	taken := 0

	for _, c := range chunks {
		if skip > 0 {
			if c.Size <= skip {
				skip -= c.Size
				continue
			}
			c = c.sliceRange(skip, c.Size)
			skip = 0
		}
		if !unbounded {
			remaining := length - taken
			if remaining <= 0 {
				break
			}
			if c.Size > remaining {
				c = c.sliceRange(0, remaining)
			}
		}
		out = append(out, c)
		taken += c.Size
		if !unbounded && taken >= length {
			break
		}
	}

	if !unbounded && taken < length {
		out = append(out, NullChunk(length-taken))
	}
	return out
}

func filterChunksByMask(chunks []*Chunk, mask []bool) []*Chunk {
	var out []*Chunk
	pos := 0
	for _, c := range chunks {
		end := pos + c.Size
		if end > len(mask) {
			end = len(mask)
		}
		sub := mask[pos:end]
		if kept := countTrue(sub); kept > 0 {
			out = append(out, c.selectMask(sub))
		}
		pos += c.Size
		if pos >= len(mask) {
			break
		}
	}
	return out
}

func countTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}

// sliceRange returns a new Chunk holding the contiguous raw elements
// [start, end) of c. c must not have been Prepared yet.
func (c *Chunk) sliceRange(start, end int) *Chunk {
	out := &Chunk{RawType: c.RawType, Size: end - start}
	switch {
	case c.IsNull():
		// Size alone carries the data.
	case c.RawType.Type() == cell.TypeString && c.RawType.Has(cell.ReprShared):
		out.rawIndices = append([]uint32(nil), c.rawIndices[start:end]...)
	case c.RawType.Type() == cell.TypeString:
		out.rawStrings = append([]string(nil), c.rawStrings[start:end]...)
	case c.RawType.Has(cell.ReprRKNumber):
		out.rawRK = append([]uint32(nil), c.rawRK[start:end]...)
	case c.RawType.Has(cell.ReprBoolean):
		out.rawBools = append([]bool(nil), c.rawBools[start:end]...)
	default:
		out.rawFloats = append([]float64(nil), c.rawFloats[start:end]...)
	}
	return out
}

// selectMask returns a new Chunk holding the raw elements of c at the
// positions where keep is true, in order. c must not have been Prepared yet.
func (c *Chunk) selectMask(keep []bool) *Chunk {
	out := &Chunk{RawType: c.RawType, Size: countTrue(keep)}
	switch {
	case c.IsNull():
		// Size alone carries the data.
	case c.RawType.Type() == cell.TypeString && c.RawType.Has(cell.ReprShared):
		for i, b := range keep {
			if b {
				out.rawIndices = append(out.rawIndices, c.rawIndices[i])
			}
		}
	case c.RawType.Type() == cell.TypeString:
		for i, b := range keep {
			if b {
				out.rawStrings = append(out.rawStrings, c.rawStrings[i])
			}
		}
	case c.RawType.Has(cell.ReprRKNumber):
		for i, b := range keep {
			if b {
				out.rawRK = append(out.rawRK, c.rawRK[i])
			}
		}
	case c.RawType.Has(cell.ReprBoolean):
		for i, b := range keep {
			if b {
				out.rawBools = append(out.rawBools, c.rawBools[i])
			}
		}
	default:
		for i, b := range keep {
			if b {
				out.rawFloats = append(out.rawFloats, c.rawFloats[i])
			}
		}
	}
	return out
}
