// Package style builds a unified style catalog from either container
// format's style stream (XLSX styles.xml or XLSB styles.bin) and resolves a
// cell-format (XF) index to a semantic type tag: integer, float, date,
// datetime, time, duration, or none.
//
// Excel's "is this a date?" is a property of the style, not the cell: the
// same float 45000.0 renders as "45000" or as "2023-03-15" purely because
// of the format code attached to its XF. This package is where that
// resolution happens, once per workbook, so every cell lookup afterward is
// a map access.
package style

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/rxlsgo/rxls/biff12"
	"github.com/rxlsgo/rxls/internal/dateformat"
	"github.com/rxlsgo/rxls/record"
)

// Tag is the semantic type a style resolves to.
type Tag int

const (
	TagNone Tag = iota
	TagInteger
	TagFloat
	TagDate
	TagDateTime
	TagTime
	TagDuration
)

// IsTemporal reports whether tag represents any date/time/duration shape.
func (t Tag) IsTemporal() bool {
	switch t {
	case TagDate, TagDateTime, TagTime, TagDuration:
		return true
	}
	return false
}

// IsNumeric reports whether tag represents integer or float.
func (t Tag) IsNumeric() bool { return t == TagInteger || t == TagFloat }

// builtinTag resolves Excel's fixed numFmtId range (< 164) to a Tag,
// grounded in the reference reader's TEMPORAL_STYLES/NUMERIC_STYLES sets
// rather than the broader (and unverified) CJK locale ranges some
// implementations also special-case.
func builtinTag(id int) Tag {
	switch {
	case id == 0x01:
		return TagInteger
	case id == 0x02, id == 0x03, id == 0x04, id == 0x25, id == 0x26, id == 0x27, id == 0x28, id == 0x30:
		return TagFloat
	case id >= 0x0E && id <= 0x11: // 14-17: date-only builtins
		return TagDate
	case id >= 0x12 && id <= 0x15: // 18-21: time-only builtins
		return TagTime
	case id == 0x16: // 22: datetime builtin
		return TagDateTime
	case id >= 0x2D && id <= 0x2F: // 45-47: elapsed-time/duration builtins
		return TagDuration
	}
	return TagNone
}

// classifyCustom implements spec step 4.C.3: strip quoted literals and
// bracketed tokens, then look for unescaped date/time characters to decide
// between date, time, datetime, and duration, falling back to numeric
// (integer/float) detection, matching the shape of the reference
// implementation's check_datefmt.
func classifyCustom(code string) Tag {
	stripped, bracketHasTime := stripLiteralsTrackBrackets(code)
	hasTime := containsAny(stripped, "hHsS") || bracketHasTime
	// m/M reads as minutes next to an hour or second token, as month otherwise.
	hasDate := containsAny(stripped, "dDyY") || (containsAny(stripped, "mM") && !hasTime)

	switch {
	case bracketHasTime:
		return TagDuration
	case hasDate && hasTime:
		return TagDateTime
	case hasDate:
		return TagDate
	case hasTime:
		return TagTime
	}

	if stripped == "0" {
		return TagInteger
	}
	if strings.Contains(stripped, ".00") || strings.Contains(stripped, ".0") {
		return TagFloat
	}
	if dateformat.ScanFormatStr(code) {
		// A date/era token survived stripping logic differences; treat
		// conservatively as a generic date rather than drop classification.
		return TagDate
	}
	return TagNone
}

// stripLiteralsTrackBrackets removes double-quoted literal text and
// bracketed sections (colors, conditions, locale tags) from code, returning
// the remainder plus whether any bracketed section itself contained an
// hour/minute/second token — Excel's duration notation ("[h]:mm:ss") uses
// exactly that shape to mean "elapsed hours may exceed 24", which is what
// distinguishes a duration from a time-of-day.
func stripLiteralsTrackBrackets(code string) (string, bool) {
	var out strings.Builder
	inQuote, inBracket := false, false
	bracketHasTime := false
	for _, ch := range code {
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case inBracket:
			if ch == 'h' || ch == 'H' || ch == 'm' || ch == 'M' || ch == 's' || ch == 'S' {
				bracketHasTime = true
			}
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		default:
			out.WriteRune(ch)
		}
	}
	return out.String(), bracketHasTime
}

func containsAny(s, chars string) bool {
	return strings.ContainsAny(s, chars)
}

// Catalog maps an XF (cell-format) index to its resolved semantic Tag.
type Catalog struct {
	tags []Tag
}

// Tag returns the resolved semantic type for XF index xf, or TagNone when
// xf is out of range.
func (c *Catalog) Tag(xf int) Tag {
	if xf < 0 || xf >= len(c.tags) {
		return TagNone
	}
	return c.tags[xf]
}

// Len returns the number of XF entries in the catalog.
func (c *Catalog) Len() int { return len(c.tags) }

func resolveTags(numFmtOf []int, customFmt map[int]string) []Tag {
	tags := make([]Tag, len(numFmtOf))
	for i, fmtID := range numFmtOf {
		if fmtID < 164 {
			tags[i] = builtinTag(fmtID)
			continue
		}
		code, ok := customFmt[fmtID]
		if !ok {
			tags[i] = TagNone
			continue
		}
		tags[i] = classifyCustom(code)
	}
	return tags
}

// NewFromXLSB parses xl/styles.bin: NumFmt records build the
// format-id -> format-code map; CellXfs/Xf records (skipping
// CellStyleXfs, which precede CellXfs in file order) build the ordered XF
// list whose numFmtId each entry carries.
func NewFromXLSB(data []byte) (*Catalog, error) {
	r := record.NewReader(bytes.NewReader(data))
	customFmt := make(map[int]string)
	var numFmtOf []int
	inCellXfs := false
	for rec := range record.Scan(r) {
		switch rec.ID {
		case biff12.Fmt:
			id, code, err := parseFmtRecord(rec.Data)
			if err == nil {
				customFmt[id] = code
			}
		case biff12.CellXfs:
			inCellXfs = true
		case biff12.CellXfsEnd:
			inCellXfs = false
		case biff12.Xf:
			if inCellXfs {
				numFmtOf = append(numFmtOf, parseXfNumFmtID(rec.Data))
			}
		}
	}
	return &Catalog{tags: resolveTags(numFmtOf, customFmt)}, nil
}

func parseFmtRecord(data []byte) (int, string, error) {
	rr := record.NewRecordReader(data)
	id, err := rr.ReadUint16()
	if err != nil {
		return 0, "", err
	}
	code, err := rr.ReadString()
	if err != nil {
		return 0, "", err
	}
	return int(id), code, nil
}

func parseXfNumFmtID(data []byte) int {
	if len(data) < 4 {
		return 0
	}
	// BrtXF: ixfeParent(u16) iFmt(u16) ...
	return int(data[2]) | int(data[3])<<8
}

// NewFromXLSX parses xl/styles.xml: <numFmts><numFmt numFmtId=".." formatCode=".."/></numFmts>
// and <cellXfs><xf numFmtId=".."/></cellXfs>.
func NewFromXLSX(data []byte) (*Catalog, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	customFmt := make(map[int]string)
	var numFmtOf []int
	inCellXfs := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "numFmt":
			var id int
			var code string
			for _, a := range start.Attr {
				switch a.Name.Local {
				case "numFmtId":
					id, _ = strconv.Atoi(a.Value)
				case "formatCode":
					code = a.Value
				}
			}
			customFmt[id] = code
		case "cellXfs":
			inCellXfs = true
		case "xf":
			if inCellXfs {
				id := 0
				for _, a := range start.Attr {
					if a.Name.Local == "numFmtId" {
						id, _ = strconv.Atoi(a.Value)
					}
				}
				numFmtOf = append(numFmtOf, id)
			}
		}
		if end, ok := tok.(xml.EndElement); ok && end.Name.Local == "cellXfs" {
			inCellXfs = false
		}
	}
	return &Catalog{tags: resolveTags(numFmtOf, customFmt)}, nil
}
