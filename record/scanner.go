package record

import "io"

// Record is one decoded BIFF12 record: its type id and raw payload bytes.
// Data is the payload slice Reader.Next allocated for this record (nil for a
// zero-length record); it is not reused by later calls to Next/Scan.
type Record struct {
	ID   int
	Data []byte
}

// Scan lazily yields every record from r whose ID is in only (or every
// record, when only is empty), stopping at the first error or at EOF.
// It mirrors the teacher's Reader.Next loop, generalized into the
// range-over-func iterator shape used throughout this module so callers can
// `for rec := range record.Scan(r) { ... }` without managing an explicit
// error-checked loop, and break early to stop the scan (e.g. once a
// terminating record id is seen).
func Scan(r *Reader, only ...int) func(yield func(Record) bool) {
	allow := toSet(only)
	return func(yield func(Record) bool) {
		for {
			id, data, err := r.Next()
			if err != nil {
				return
			}
			if len(allow) > 0 && !allow[id] {
				continue
			}
			if !yield(Record{ID: id, Data: data}) {
				return
			}
		}
	}
}

// ScanBreakOn behaves like Scan but additionally stops the moment a record
// whose ID is in breakOn is encountered, leaving the stream positioned
// immediately BEFORE that record (seek-restore), so a caller resuming the
// scan — e.g. a row loop calling ScanBreakOn repeatedly to read one row's
// cells before the next Row record — sees it again. This mirrors the
// original scanner's break_on handling exactly (it restores position with a
// seek rather than consuming the terminating record).
func ScanBreakOn(r *Reader, breakOn []int, only ...int) func(yield func(Record) bool) {
	stop := toSet(breakOn)
	allow := toSet(only)
	return func(yield func(Record) bool) {
		for {
			pos, tellErr := r.Tell()
			if tellErr != nil {
				return
			}
			id, data, err := r.Next()
			if err != nil {
				return
			}
			if stop[id] {
				if _, err := r.Seek(pos, io.SeekStart); err != nil {
					return
				}
				return
			}
			if len(allow) > 0 && !allow[id] {
				continue
			}
			if !yield(Record{ID: id, Data: data}) {
				return
			}
		}
	}
}

func toSet(ids []int) map[int]bool {
	if len(ids) == 0 {
		return nil
	}
	m := make(map[int]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
