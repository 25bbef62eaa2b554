package extract

import (
	"bytes"

	"github.com/rxlsgo/rxls/biff12"
	"github.com/rxlsgo/rxls/byteio"
	"github.com/rxlsgo/rxls/cell"
	"github.com/rxlsgo/rxls/record"
	"github.com/rxlsgo/rxls/sharedstrings"
	"github.com/rxlsgo/rxls/style"
)

var xlsbCellRecordIDs = []int{
	biff12.Row, biff12.Num, biff12.Bool, biff12.Float, biff12.InlineStr,
	biff12.String, biff12.FormulaString, biff12.FormulaFloat,
	biff12.FormulaBool, biff12.BoolErr, biff12.FormulaBoolErr,
}

// XLSB drives the BIFF12 scanner over a worksheet's binary stream, yielding
// one Cell per occupied, non-suppressed position in document order.
func XLSB(data []byte, shared *sharedstrings.Table, styles *style.Catalog, opts Options) func(yield func(cell.Cell) bool) {
	return func(yield func(cell.Cell) bool) {
		r := record.NewReader(bytes.NewReader(data))

		row := -1
		loggedRows := 0
		emittedThisRow := false

		for rec := range record.Scan(r, xlsbCellRecordIDs...) {
			switch rec.ID {
			case biff12.Row:
				if row >= 0 && (!opts.TakeRowsNonEmpty || emittedThisRow) {
					loggedRows++
					if opts.RowCallback != nil {
						opts.RowCallback()
					}
					if opts.TakeRows > 0 && loggedRows >= opts.TakeRows {
						return
					}
				}
				rr := record.NewRecordReader(rec.Data)
				rowIdx, err := rr.ReadUint32()
				if err != nil {
					return
				}
				row++
				_ = rowIdx // the logical row counter is our own, matching skip/take semantics
				emittedThisRow = false
				continue

			default:
				if row < opts.SkipRows {
					continue
				}
				c, ok := decodeXLSBCell(rec, row, shared, styles, opts)
				if !ok {
					continue
				}
				emittedThisRow = true
				if !yield(c) {
					return
				}
			}
		}
	}
}

func decodeXLSBCell(rec record.Record, row int, shared *sharedstrings.Table, styles *style.Catalog, opts Options) (cell.Cell, bool) {
	rr := record.NewRecordReader(rec.Data)
	colU, err := rr.ReadUint32()
	if err != nil {
		return cell.Cell{}, false
	}
	col := int(colU)
	if opts.SkipCols[col] {
		return cell.Cell{}, false
	}
	styleIdx32, err := rr.ReadUint32()
	if err != nil {
		return cell.Cell{}, false
	}
	styleIdx := int(styleIdx32)
	temporal := styles != nil && styles.Tag(styleIdx).IsTemporal()

	switch rec.ID {
	case biff12.Num: // BrtCellRk
		v, err := rr.ReadUint32()
		if err != nil {
			return cell.Cell{}, false
		}
		rt := cell.RawType(cell.TypeNumeric) | cell.RawType(cell.ReprRKNumber)
		if temporal {
			rt |= cell.RawType(cell.ReprTemporal)
		}
		return cell.Cell{Row: row, Col: col, RawType: rt, Val: v}, true

	case biff12.Bool, biff12.FormulaBool:
		b, err := rr.ReadUint8()
		if err != nil {
			return cell.Cell{}, false
		}
		rt := cell.RawType(cell.TypeNumeric) | cell.RawType(cell.ReprBoolean)
		return cell.Cell{Row: row, Col: col, RawType: rt, Val: b != 0}, true

	case biff12.Float, biff12.FormulaFloat: // BrtCellReal / BrtFmlaNum
		f, err := rr.ReadDouble()
		if err != nil {
			return cell.Cell{}, false
		}
		rt := cell.RawType(cell.TypeNumeric)
		if temporal {
			rt |= cell.RawType(cell.ReprTemporal)
		}
		return cell.Cell{Row: row, Col: col, RawType: rt, Val: f}, true

	case biff12.InlineStr, biff12.FormulaString: // BrtCellSt / BrtFmlaString
		s, err := rr.ReadString()
		if err != nil || opts.isSuppressed(s) {
			return cell.Cell{}, false
		}
		return cell.Cell{Row: row, Col: col, RawType: cell.RawType(cell.TypeString), Val: s}, true

	case biff12.String: // BrtCellIsst
		idx, err := rr.ReadUint32()
		if err != nil {
			return cell.Cell{}, false
		}
		if shared != nil {
			var raw [4]byte
			b := byteio.PutUint32(nil, idx)
			copy(raw[:], b)
			if shared.IsNullXLSB(raw) {
				return cell.Cell{}, false
			}
		}
		rt := cell.RawType(cell.TypeString) | cell.RawType(cell.ReprShared)
		return cell.Cell{Row: row, Col: col, RawType: rt, Val: idx}, true

	case biff12.BoolErr, biff12.FormulaBoolErr:
		// Error codes are always suppressed: never emitted as a cell.
		return cell.Cell{}, false
	}
	return cell.Cell{}, false
}
