package column

import "github.com/rxlsgo/rxls/cell"

// ConflictResolve controls how the Series resolves a column that saw more
// than one logical type while accumulating.
type ConflictResolve int

const (
	// ConflictNone leaves mixed columns as-is (they finalize to string).
	ConflictNone ConflictResolve = iota
	// ConflictTemporal coerces numeric chunks to temporal and attempts to
	// parse string chunks as dates under the configured formats.
	ConflictTemporal
	// ConflictNumeric attempts to parse string chunks as numbers.
	ConflictNumeric
	// ConflictAll applies both coercions.
	ConflictAll
)

// Series accumulates one column's cells into an ordered list of chunks,
// exactly mirroring the reference accumulator's state machine: EMPTY ->
// OPEN(type) flips between types as the raw_type changes, flushing the
// open buffer on every transition and on every row-index gap, and never
// retroactively revisiting rows already seen.
type Series struct {
	chunks []*Chunk

	openType cell.RawType
	strings  []string
	indices  []uint32
	rk       []uint32
	floatsF  []float64
	bools    []bool

	pendingNullRun int
	sRow, eRow     int

	Conflict        ConflictResolve
	DatetimeFormats []string
	FloatPrecision  int
}

// NewSeries creates an empty series with the given conflict-resolution
// policy and float rounding precision (the reference default is 6).
func NewSeries(conflict ConflictResolve, datetimeFormats []string, floatPrecision int) *Series {
	if floatPrecision <= 0 {
		floatPrecision = 6
	}
	return &Series{
		sRow: -1, eRow: -1,
		Conflict:        conflict,
		DatetimeFormats: datetimeFormats,
		FloatPrecision:  floatPrecision,
	}
}

// Len reports the number of rows spanned by the series so far (including
// any interior null gaps), matching e_row - s_row + 1.
func (s *Series) Len() int {
	if s.eRow < 0 {
		return 0
	}
	return s.eRow - s.sRow + 1
}

func (s *Series) hasOpenBuffer() bool {
	return len(s.strings) > 0 || len(s.indices) > 0 || len(s.rk) > 0 || len(s.floatsF) > 0 || len(s.bools) > 0
}

// pullChunk flushes the currently-open buffer (if any) into s.chunks,
// prefixed by a NULL chunk for any pending row-gap, exactly as the
// reference series does in its "pull chunk" step.
func (s *Series) pullChunk() {
	if s.hasOpenBuffer() {
		var c *Chunk
		switch {
		case s.openType.Type() == cell.TypeString && s.openType.Has(cell.ReprShared):
			c = StringChunk(nil, s.indices, true)
		case s.openType.Type() == cell.TypeString:
			c = StringChunk(s.strings, nil, false)
		case s.openType.Has(cell.ReprRKNumber):
			c = NumericRKChunk(s.rk, s.openType.Has(cell.ReprTemporal))
		case s.openType.Has(cell.ReprBoolean):
			c = NumericBoolChunk(s.bools)
		default:
			c = NumericFloatChunk(s.floatsF, s.openType.Has(cell.ReprTemporal))
		}
		if s.pendingNullRun > 0 {
			s.chunks = append(s.chunks, NullChunk(s.pendingNullRun))
			s.pendingNullRun = 0
		}
		s.chunks = append(s.chunks, c)
	} else if s.pendingNullRun > 0 {
		s.chunks = append(s.chunks, NullChunk(s.pendingNullRun))
		s.pendingNullRun = 0
	}
	s.strings, s.indices, s.rk, s.floatsF, s.bools = nil, nil, nil, nil, nil
}

// Add appends one cell's value to the series, returning the row index it
// was recorded at (or the series' current end row, unchanged, if the cell
// arrived for a row already seen — the reference guards against duplicate
// ROW records this way).
func (s *Series) Add(c cell.Cell) int {
	if c.Row <= s.eRow {
		return s.eRow
	}

	if c.Row > s.eRow+1 {
		if s.hasOpenBuffer() {
			s.pullChunk()
		}
		s.pendingNullRun += c.Row - s.eRow - 1
		s.openType = cell.RawType(cell.TypeNull)
	}

	if c.RawType != s.openType {
		if s.hasOpenBuffer() {
			s.pullChunk()
		}
		s.openType = c.RawType
	}

	switch v := c.Val.(type) {
	case string:
		s.strings = append(s.strings, v)
	case uint32:
		if s.openType.Has(cell.ReprShared) {
			s.indices = append(s.indices, v)
		} else {
			s.rk = append(s.rk, v)
		}
	case float64:
		s.floatsF = append(s.floatsF, v)
	case bool:
		s.bools = append(s.bools, v)
	}

	s.eRow = c.Row
	if s.sRow < 0 {
		s.sRow = c.Row
	}
	return s.eRow
}

// Chunks flushes any open buffer and returns the full ordered chunk list.
// Calling Chunks does not prevent further Add calls (the series simply
// reopens), matching the documented EMPTY -> OPEN -> FINALIZED state shape
// where "finalized" is a snapshot, not a terminal state.
func (s *Series) Chunks() []*Chunk {
	s.pullChunk()
	return s.chunks
}
