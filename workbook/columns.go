package workbook

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rxlsgo/rxls/column"
	"github.com/rxlsgo/rxls/extract"
)

// ColumnOptions configures a typed columnar extraction pass over one sheet.
type ColumnOptions struct {
	Extract         extract.Options
	Conflict        column.ConflictResolve
	DatetimeFormats []string
	FloatPrecision  int
	// Slice configures the take_over step applied to each column's chunk
	// list before concatenation (offset/length capping-and-padding, or
	// boolean-mask filtering). The zero value takes every row.
	Slice column.TakeOver
	// Async runs the XLSX extractor's decode loop on its own goroutine,
	// feeding cells through a buffered channel instead of a direct
	// range-over-func call. It has no effect on XLSB workbooks.
	Async bool
}

// Columns drives the extract+column pipeline over the named sheet (case-
// insensitive) and returns one finalized, null-aware Array per occupied
// column index. This is the typed counterpart to SheetByName's raw
// cell.Cell stream.
func (wb *Workbook) Columns(sheetName string, opts ColumnOptions) (map[int]*column.Array, error) {
	entry, err := wb.findSheetEntry(sheetName)
	if err != nil {
		return nil, err
	}
	return wb.columnsForEntry(entry, opts)
}

// ColumnsAt drives the same pipeline as Columns but selects the sheet by its
// 1-based position, matching Sheet's indexing convention.
func (wb *Workbook) ColumnsAt(idx int, opts ColumnOptions) (map[int]*column.Array, error) {
	if idx < 1 || idx > len(wb.sheets) {
		return nil, fmt.Errorf("workbook: sheet index %d out of range [1, %d]", idx, len(wb.sheets))
	}
	return wb.columnsForEntry(wb.sheets[idx-1], opts)
}

func (wb *Workbook) columnsForEntry(entry sheetEntry, opts ColumnOptions) (map[int]*column.Array, error) {
	if err := opts.Extract.Validate(); err != nil {
		return nil, err
	}

	series := make(map[int]*column.Series)
	seriesFor := func(col int) *column.Series {
		s, ok := series[col]
		if !ok {
			s = column.NewSeries(opts.Conflict, opts.DatetimeFormats, opts.FloatPrecision)
			series[col] = s
		}
		return s
	}

	switch wb.Format {
	case FormatXLSB:
		zipPath := xlsbSheetZipPath(entry.target)
		data, err := wb.readZipEntry(zipPath)
		if err != nil {
			return nil, fmt.Errorf("workbook: open sheet %q: %w", entry.name, err)
		}
		for c := range extract.XLSB(data, wb.shared, wb.tags, opts.Extract) {
			seriesFor(c.Col).Add(c)
		}

	case FormatXLSX:
		zipPath := xlsxSheetZipPath(entry.target)
		data, err := wb.readZipEntry(zipPath)
		if err != nil {
			return nil, fmt.Errorf("workbook: open sheet %q: %w", entry.name, err)
		}
		if opts.Async {
			for c := range extract.XLSXAsync(bytes.NewReader(data), wb.shared, wb.tags, opts.Extract, 0) {
				seriesFor(c.Col).Add(c)
			}
		} else {
			for c := range extract.XLSX(bytes.NewReader(data), wb.shared, wb.tags, opts.Extract) {
				seriesFor(c.Col).Add(c)
			}
		}

	default:
		return nil, fmt.Errorf("workbook: unknown container format")
	}

	cols := make(map[int]*column.Array, len(series))
	for idx, s := range series {
		cols[idx] = column.Concatenate(s.Chunks(), wb.shared, opts.Conflict, opts.DatetimeFormats, opts.FloatPrecision, opts.Slice)
	}
	return cols, nil
}

func (wb *Workbook) findSheetEntry(name string) (sheetEntry, error) {
	lower := strings.ToLower(name)
	for _, s := range wb.sheets {
		if strings.ToLower(s.name) == lower {
			return s, nil
		}
	}
	return sheetEntry{}, fmt.Errorf("workbook: sheet %q not found", name)
}

// xlsbSheetZipPath resolves a workbook.bin.rels target (e.g.
// "worksheets/sheet1.bin") to its full in-archive path.
func xlsbSheetZipPath(target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return "xl/" + target
}
