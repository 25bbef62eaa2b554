package column

import (
	"testing"

	"github.com/rxlsgo/rxls/cell"
)

func floatCell(row int, v float64) cell.Cell {
	return cell.Cell{Row: row, RawType: cell.RawType(cell.TypeNumeric), Val: v}
}

func stringCell(row int, v string) cell.Cell {
	return cell.Cell{Row: row, RawType: cell.RawType(cell.TypeString), Val: v}
}

func TestSeriesFlushesOnRowGap(t *testing.T) {
	s := NewSeries(ConflictNone, nil, 6)
	s.Add(floatCell(0, 1))
	s.Add(floatCell(1, 2))
	s.Add(floatCell(3, 3)) // gap at row 2

	chunks := s.Chunks()
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks (numeric, null, numeric), got %d", len(chunks))
	}
	if !chunks[1].IsNull() || chunks[1].Size != 1 {
		t.Fatalf("expected a 1-row null gap chunk, got %+v", chunks[1])
	}
}

func TestSeriesFlushesOnTypeChange(t *testing.T) {
	s := NewSeries(ConflictNone, nil, 6)
	s.Add(floatCell(0, 1))
	s.Add(stringCell(1, "x"))

	chunks := s.Chunks()
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks on type change, got %d", len(chunks))
	}
}

func TestSeriesIgnoresDuplicateRow(t *testing.T) {
	s := NewSeries(ConflictNone, nil, 6)
	s.Add(floatCell(0, 1))
	before := s.Len()
	s.Add(floatCell(0, 99)) // row already seen
	if s.Len() != before {
		t.Fatalf("series length changed on duplicate row: %d -> %d", before, s.Len())
	}
}

func TestSeriesLen(t *testing.T) {
	s := NewSeries(ConflictNone, nil, 6)
	s.Add(floatCell(2, 1))
	s.Add(floatCell(5, 2))
	if got := s.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4 (rows 2..5 inclusive)", got)
	}
}
