package workbook_test

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/rxlsgo/rxls/column"
	"github.com/rxlsgo/rxls/extract"
	"github.com/rxlsgo/rxls/workbook"
)

// ── BIFF12 byte-level helpers, mirroring the wire format built by the
// root package's own fixture builders. ──────────────────────────────────────

func writeRecID(buf *bytes.Buffer, id int) {
	if id < 0x80 {
		buf.WriteByte(byte(id))
	} else {
		buf.WriteByte(byte(id & 0xFF))
		buf.WriteByte(byte(id >> 8))
	}
}

func writeRecLen(buf *bytes.Buffer, n int) {
	for {
		b := n & 0x7F
		n >>= 7
		if n > 0 {
			buf.WriteByte(byte(b) | 0x80)
		} else {
			buf.WriteByte(byte(b))
			break
		}
	}
}

func writeRec(buf *bytes.Buffer, id int, payload []byte) {
	writeRecID(buf, id)
	writeRecLen(buf, len(payload))
	buf.Write(payload)
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func encBiffStr(s string) []byte {
	runes := []rune(s)
	var sb bytes.Buffer
	_ = binary.Write(&sb, binary.LittleEndian, uint32(len(runes)))
	for _, r := range runes {
		_ = binary.Write(&sb, binary.LittleEndian, uint16(r))
	}
	return sb.Bytes()
}

// buildXLSBWorkbookZip assembles a minimal but complete .xlsb archive with a
// single sheet holding two numeric rows in column 0, exercising the
// typed-columnar read path end to end.
func buildXLSBWorkbookZip(t *testing.T) []byte {
	t.Helper()

	var wbBin bytes.Buffer
	writeRec(&wbBin, 0x0183, nil) // WORKBOOK start
	writeRec(&wbBin, 0x018F, nil) // SHEETS start
	var sheetRec bytes.Buffer
	sheetRec.Write(le32(0))
	sheetRec.Write(le32(1))
	sheetRec.Write(encBiffStr("rId1"))
	sheetRec.Write(encBiffStr("Data"))
	writeRec(&wbBin, 0x019C, sheetRec.Bytes())
	writeRec(&wbBin, 0x0190, nil) // SHEETS end
	writeRec(&wbBin, 0x0184, nil) // WORKBOOK end

	var ws bytes.Buffer
	writeRec(&ws, 0x0181, nil) // WORKSHEET start
	writeRec(&ws, 0x0191, nil) // SHEETDATA start

	writeRec(&ws, 0x0000, le32(0)) // ROW 0
	var cellA bytes.Buffer
	cellA.Write(le32(0))
	cellA.Write(le32(0))
	cellA.Write(le32(402)) // RK integer 100: (100<<2)|intFlag(0x2)
	writeRec(&ws, 0x0002, cellA.Bytes())

	writeRec(&ws, 0x0000, le32(1)) // ROW 1
	var cellB bytes.Buffer
	cellB.Write(le32(0))
	cellB.Write(le32(0))
	cellB.Write(le32(802)) // RK integer 200: (200<<2)|intFlag(0x2)
	writeRec(&ws, 0x0002, cellB.Bytes())

	writeRec(&ws, 0x0192, nil) // SHEETDATA end
	writeRec(&ws, 0x0182, nil) // WORKSHEET end

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	addFile := func(name string, data []byte) {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := f.Write(data); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	relsXML := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.bin"/>` +
		`</Relationships>`
	addFile("xl/_rels/workbook.bin.rels", []byte(relsXML))
	addFile("xl/workbook.bin", wbBin.Bytes())
	addFile("xl/worksheets/sheet1.bin", ws.Bytes())
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return zipBuf.Bytes()
}

func TestWorkbookColumnsXLSB(t *testing.T) {
	data := buildXLSBWorkbookZip(t)
	wb, err := workbook.OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer wb.Close()

	if wb.Format != workbook.FormatXLSB {
		t.Fatalf("Format = %v, want FormatXLSB", wb.Format)
	}

	cols, err := wb.Columns("Data", workbook.ColumnOptions{FloatPrecision: 6})
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	col0, ok := cols[0]
	if !ok {
		t.Fatalf("expected column 0, got %+v", cols)
	}
	if col0.Kind != column.KindInt64 {
		t.Errorf("col0.Kind = %v, want KindInt64", col0.Kind)
	}
	if col0.Len() != 2 || col0.Int64s[0] != 100 || col0.Int64s[1] != 200 {
		t.Errorf("col0 = %+v, want [100 200]", col0)
	}
}

func TestWorkbookColumnsAtResolvesByIndex(t *testing.T) {
	data := buildXLSBWorkbookZip(t)
	wb, err := workbook.OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer wb.Close()

	byName, err := wb.Columns("Data", workbook.ColumnOptions{FloatPrecision: 6})
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	byIdx, err := wb.ColumnsAt(1, workbook.ColumnOptions{FloatPrecision: 6})
	if err != nil {
		t.Fatalf("ColumnsAt: %v", err)
	}
	if byIdx[0].Len() != byName[0].Len() || byIdx[0].Int64s[0] != byName[0].Int64s[0] {
		t.Errorf("ColumnsAt(1) = %+v, want same as Columns(\"Data\") = %+v", byIdx[0], byName[0])
	}

	if _, err := wb.ColumnsAt(0, workbook.ColumnOptions{}); err == nil {
		t.Error("ColumnsAt(0): expected out-of-range error, got nil")
	}
	if _, err := wb.ColumnsAt(99, workbook.ColumnOptions{}); err == nil {
		t.Error("ColumnsAt(99): expected out-of-range error, got nil")
	}
}

func TestWorkbookColumnsRejectsNegativeSkipRows(t *testing.T) {
	data := buildXLSBWorkbookZip(t)
	wb, err := workbook.OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer wb.Close()

	_, err = wb.Columns("Data", workbook.ColumnOptions{
		Extract: extract.Options{SkipRows: -1},
	})
	if !errors.Is(err, extract.ErrBadArgument) {
		t.Fatalf("Columns with negative SkipRows: got %v, want ErrBadArgument", err)
	}
}

func TestWorkbookColumnsAppliesSlice(t *testing.T) {
	data := buildXLSBWorkbookZip(t)
	wb, err := workbook.OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer wb.Close()

	cols, err := wb.Columns("Data", workbook.ColumnOptions{
		FloatPrecision: 6,
		Slice:          column.TakeOver{Offset: 1},
	})
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	col0 := cols[0]
	if col0.Len() != 1 || col0.Int64s[0] != 200 {
		t.Errorf("col0 = %+v, want single element [200]", col0)
	}
}

func buildXLSXWorkbookZip(t *testing.T) []byte {
	t.Helper()

	workbookXML := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
		`<sheets><sheet name="Data" r:id="rId1"/></sheets></workbook>`
	relsXML := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/>` +
		`</Relationships>`
	sheetXML := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">` +
		`<sheetData>` +
		`<row r="1"><c r="A1"><v>100</v></c></row>` +
		`<row r="2"><c r="A2"><v>200</v></c></row>` +
		`</sheetData></worksheet>`

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	addFile := func(name string, data string) {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(data)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	addFile("xl/workbook.xml", workbookXML)
	addFile("xl/_rels/workbook.xml.rels", relsXML)
	addFile("xl/worksheets/sheet1.xml", sheetXML)
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return zipBuf.Bytes()
}

func TestWorkbookColumnsXLSX(t *testing.T) {
	data := buildXLSXWorkbookZip(t)
	wb, err := workbook.OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer wb.Close()

	if wb.Format != workbook.FormatXLSX {
		t.Fatalf("Format = %v, want FormatXLSX", wb.Format)
	}

	cols, err := wb.Columns("Data", workbook.ColumnOptions{FloatPrecision: 6})
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	col0, ok := cols[0]
	if !ok {
		t.Fatalf("expected column 0, got %+v", cols)
	}
	if col0.Kind != column.KindInt64 {
		t.Errorf("col0.Kind = %v, want KindInt64", col0.Kind)
	}
	if col0.Len() != 2 || col0.Int64s[0] != 100 || col0.Int64s[1] != 200 {
		t.Errorf("col0 = %+v, want [100 200]", col0)
	}

	if _, err := wb.Sheet(0); err == nil {
		t.Errorf("Sheet should be rejected for FormatXLSX workbooks")
	}
}
