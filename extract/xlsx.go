package extract

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/rxlsgo/rxls/cell"
	"github.com/rxlsgo/rxls/sharedstrings"
	"github.com/rxlsgo/rxls/style"
)

// cellXML mirrors the handful of attributes and children of a <c> element
// this extractor cares about; everything else (formulas' bodies, comments,
// etc.) is skipped unread.
type cellXML struct {
	Ref     string `xml:"r,attr"`
	Type    string `xml:"t,attr"`
	StyleID string `xml:"s,attr"`
	Value   string `xml:"v"`
	Inline  struct {
		Text string `xml:"t"`
	} `xml:"is"`
}

// XLSX drives a streaming SAX decoder over one worksheet's XML body,
// yielding one Cell per occupied, non-suppressed position in document order.
// Row positions come from each <row r="..."> attribute and column positions
// from each <c r="..."> reference rather than document order alone, since
// XLSX omits empty cells and rows entirely.
func XLSX(r io.Reader, shared *sharedstrings.Table, styles *style.Catalog, opts Options) func(yield func(cell.Cell) bool) {
	return func(yield func(cell.Cell) bool) {
		dec := xml.NewDecoder(r)

		row := -1
		loggedRows := 0
		emittedThisRow := false
		inSheetData := false

		for {
			tok, err := dec.Token()
			if err != nil {
				return
			}
			switch t := tok.(type) {
			case xml.StartElement:
				switch t.Name.Local {
				case "sheetData":
					inSheetData = true
				case "row":
					if !inSheetData {
						continue
					}
					if row >= 0 && (!opts.TakeRowsNonEmpty || emittedThisRow) {
						loggedRows++
						if opts.RowCallback != nil {
							opts.RowCallback()
						}
						if opts.TakeRows > 0 && loggedRows >= opts.TakeRows {
							return
						}
					}
					row = rowAttrOrNext(t, row)
					emittedThisRow = false
				case "c":
					if !inSheetData || row < opts.SkipRows {
						continue
					}
					var cx cellXML
					if err := dec.DecodeElement(&cx, &t); err != nil {
						return
					}
					c, ok := decodeXLSXCell(cx, row, shared, styles, opts)
					if !ok {
						continue
					}
					emittedThisRow = true
					if !yield(c) {
						return
					}
				}
			case xml.EndElement:
				if t.Name.Local == "sheetData" {
					return
				}
			}
		}
	}
}

// rowAttrOrNext parses the row element's r attribute (1-based) into a
// zero-based row index, falling back to prev+1 when the attribute is absent
// or malformed.
func rowAttrOrNext(t xml.StartElement, prev int) int {
	for _, a := range t.Attr {
		if a.Name.Local == "r" {
			if n, err := strconv.Atoi(a.Value); err == nil && n > 0 {
				return n - 1
			}
		}
	}
	return prev + 1
}

func decodeXLSXCell(cx cellXML, row int, shared *sharedstrings.Table, styles *style.Catalog, opts Options) (cell.Cell, bool) {
	col, _ := splitCellRef(cx.Ref)
	colIdx := ColIdx(col)
	if colIdx < 0 || opts.SkipCols[colIdx] {
		return cell.Cell{}, false
	}

	styleIdx := 0
	if cx.StyleID != "" {
		styleIdx, _ = strconv.Atoi(cx.StyleID)
	}
	temporal := styles != nil && styles.Tag(styleIdx).IsTemporal()

	switch cx.Type {
	case "s": // shared string: v holds the decimal index
		if shared != nil && shared.IsNullXLSX(cx.Value) {
			return cell.Cell{}, false
		}
		idx, err := strconv.ParseUint(cx.Value, 10, 32)
		if err != nil {
			return cell.Cell{}, false
		}
		rt := cell.RawType(cell.TypeString) | cell.RawType(cell.ReprShared)
		return cell.Cell{Row: row, Col: colIdx, RawType: rt, Val: uint32(idx)}, true

	case "str": // formula string result
		if opts.isSuppressed(cx.Value) {
			return cell.Cell{}, false
		}
		return cell.Cell{Row: row, Col: colIdx, RawType: cell.RawType(cell.TypeString), Val: cx.Value}, true

	case "inlineStr":
		s := cx.Inline.Text
		if opts.isSuppressed(s) {
			return cell.Cell{}, false
		}
		return cell.Cell{Row: row, Col: colIdx, RawType: cell.RawType(cell.TypeString), Val: s}, true

	case "b":
		b := cx.Value == "1"
		rt := cell.RawType(cell.TypeNumeric) | cell.RawType(cell.ReprBoolean)
		return cell.Cell{Row: row, Col: colIdx, RawType: rt, Val: b}, true

	case "e": // error code: always suppressed
		return cell.Cell{}, false

	default: // "n" or absent: plain numeric
		if cx.Value == "" {
			return cell.Cell{}, false
		}
		f, err := strconv.ParseFloat(cx.Value, 64)
		if err != nil {
			return cell.Cell{}, false
		}
		rt := cell.RawType(cell.TypeNumeric)
		if temporal {
			rt |= cell.RawType(cell.ReprTemporal)
		}
		return cell.Cell{Row: row, Col: colIdx, RawType: rt, Val: f}, true
	}
}
