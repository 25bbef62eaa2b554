// Package extract implements the two worksheet cell extractors (XLSX,
// XLSB), each producing a lazy, document-ordered sequence of cell.Cell
// values subject to the same skip/take/filter policies.
package extract

import (
	"errors"
	"fmt"
)

// ErrBadArgument is returned by Options.Validate when an option value
// violates its documented invariant (a negative SkipRows or TakeRows).
var ErrBadArgument = errors.New("extract: bad argument")

// errorStrings is the set of locale error-text values that are always
// suppressed rather than emitted as a string cell — English plus the
// Russian equivalents carried over from the source reader this module is
// grounded on.
var errorStrings = map[string]bool{
	"#NULL!":         true,
	"#DIV/0!":        true,
	"#VALUE!":        true,
	"#REF!":          true,
	"#NAME?":         true,
	"#NUM!":          true,
	"#N/A":           true,
	"#GETTING_DATA":  true,
	"#ДЕЛ/0!":        true,
	"#ЗНАЧ!":         true,
	"#ССЫЛКА!":       true,
	"#ИМЯ?":          true,
	"#ЧИСЛО!":        true,
	"#Н/Д":           true,
}

// Options configures both extractors identically.
type Options struct {
	SkipRows         int
	TakeRows         int // <=0 means unbounded
	TakeRowsNonEmpty bool
	SkipCols         map[int]bool
	RowCallback      func()
	NullStrings      []string
}

// Validate reports a non-nil ErrBadArgument-wrapping error if o's SkipRows
// or TakeRows is negative. TakeRows <= 0 is otherwise treated as "unbounded"
// rather than invalid; only a negative value is rejected.
func (o Options) Validate() error {
	if o.SkipRows < 0 {
		return fmt.Errorf("%w: skip_rows must be >= 0, got %d", ErrBadArgument, o.SkipRows)
	}
	if o.TakeRows < 0 {
		return fmt.Errorf("%w: take_rows must be >= 0, got %d", ErrBadArgument, o.TakeRows)
	}
	return nil
}

func (o Options) isSuppressed(s string) bool {
	if errorStrings[s] {
		return true
	}
	for _, n := range o.NullStrings {
		if s == n {
			return true
		}
	}
	return false
}

// ColIdx decodes a spreadsheet column letter reference ("A", "Z", "AA", ...)
// into a zero-based column index, via the standard base-26 byte fold:
// "A"->0, "Z"->25, "AA"->26, "AZ"->51, "ZZ"->701, "AAA"->702.
func ColIdx(col string) int {
	idx := 0
	for i := 0; i < len(col); i++ {
		c := col[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}

// splitCellRef splits a cell reference like "AB12" into its column letters
// and row number components.
func splitCellRef(ref string) (col string, row string) {
	i := 0
	for i < len(ref) && (ref[i] < '0' || ref[i] > '9') {
		i++
	}
	return ref[:i], ref[i:]
}
