package column

import (
	"strconv"
	"time"

	"github.com/rxlsgo/rxls/sharedstrings"
)

// Kind is the resolved common type of a finalized Array.
type Kind int

const (
	KindString Kind = iota
	KindInt64
	KindFloat64
	KindMillis
	KindBool
)

// String returns the lowercase name of k, for diagnostics and CLI output.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindMillis:
		return "datetime"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Array is the finalized, null-aware, single-typed column produced by
// concatenating a Series' chunks. Exactly one typed slice is populated,
// selected by Kind; Valid marks which positions are non-null.
type Array struct {
	Kind    Kind
	Valid   []bool
	Strings []string
	Int64s  []int64
	Floats  []float64
	Millis  []int64
	Bools   []bool
}

// Len reports the number of elements (valid or null) in the array.
func (a *Array) Len() int { return len(a.Valid) }

// flat is an intermediate per-row representation built while walking
// chunks, before the common type is decided.
type flat struct {
	isNull   []bool
	isTemp   []bool // true: value is a unix-ms timestamp in millis
	isString []bool
	millis   []int64
	floats   []float64
	strings  []string
}

// Concatenate resolves a Series' chunk list into one finalized Array,
// implementing the cross-type conflict-resolution decision tree: temporal
// takes precedence when present and the caller opted in, then numeric+
// string coexistence, then pure numeric (int64 vs float64 via the
// integer-feasibility predicate), then pure temporal, then string, with an
// all-null column finalizing to an all-null string array.
//
// slice is applied first (take_over): it drops/caps/pads the chunk list or
// filters it by boolean mask before any chunk is prepared or categorized.
func Concatenate(chunks []*Chunk, shared *sharedstrings.Table, conflict ConflictResolve, datetimeFormats []string, floatPrecision int, slice TakeOver) *Array {
	chunks = TakeOverChunks(chunks, slice)

	for _, c := range chunks {
		c.Prepare(shared)
	}

	f := &flat{}
	hasTemporal, hasNumeric, hasString := false, false, false

	for _, c := range chunks {
		switch {
		case c.IsNull():
			for i := 0; i < c.Size; i++ {
				f.push(true, false, false, 0, 0, "")
			}
		case c.Millis != nil:
			hasTemporal = true
			for _, m := range c.Millis {
				f.push(false, true, false, m, 0, "")
			}
		case c.Strings != nil:
			hasString = true
			for _, s := range c.Strings {
				f.push(false, false, true, 0, 0, s)
			}
		case c.Bools != nil:
			hasNumeric = true
			for _, b := range c.Bools {
				v := 0.0
				if b {
					v = 1.0
				}
				f.push(false, false, false, 0, v, "")
			}
		default: // Floats
			hasNumeric = true
			for _, v := range c.Floats {
				f.push(false, false, false, 0, v, "")
			}
		}
	}

	n := len(f.isNull)
	valid := make([]bool, n)
	for i := range valid {
		valid[i] = !f.isNull[i]
	}

	switch {
	case hasTemporal && (conflict == ConflictTemporal || conflict == ConflictAll):
		return finalizeTemporal(f, valid, datetimeFormats, conflict == ConflictAll || conflict == ConflictNumeric)

	case hasNumeric && hasString && (conflict == ConflictNumeric || conflict == ConflictAll):
		return finalizeNumericStringCoerced(f, valid)

	case hasNumeric && !hasString && !hasTemporal:
		return finalizeNumeric(f, valid, floatPrecision)

	case hasTemporal && !hasNumeric && !hasString:
		return &Array{Kind: KindMillis, Valid: valid, Millis: f.millis}

	case hasString:
		return downgradeToString(f, valid)

	default:
		return downgradeToString(f, valid)
	}
}

func (f *flat) push(isNull, isTemp, isString bool, millis int64, floatVal float64, s string) {
	f.isNull = append(f.isNull, isNull)
	f.isTemp = append(f.isTemp, isTemp)
	f.isString = append(f.isString, isString)
	f.millis = append(f.millis, millis)
	f.floats = append(f.floats, floatVal)
	f.strings = append(f.strings, s)
}

func finalizeNumeric(f *flat, valid []bool, prec int) *Array {
	vals := make([]float64, 0, len(valid))
	for i, ok := range valid {
		if ok {
			vals = append(vals, f.floats[i])
		}
	}
	if F8IsI8(vals, prec) {
		ints := make([]int64, len(valid))
		for i, ok := range valid {
			if ok {
				ints[i] = int64(f.floats[i])
			}
		}
		return &Array{Kind: KindInt64, Valid: valid, Int64s: ints}
	}
	return &Array{Kind: KindFloat64, Valid: valid, Floats: f.floats}
}

func finalizeNumericStringCoerced(f *flat, valid []bool) *Array {
	floats := make([]float64, len(valid))
	copy(floats, f.floats)
	for i, ok := range valid {
		if !ok || !f.isString[i] {
			continue
		}
		parsed, err := strconv.ParseFloat(f.strings[i], 64)
		if err != nil {
			// A string that doesn't parse as a number leaves the whole
			// column as strings, per the documented downgrade rule.
			return downgradeToString(f, valid)
		}
		floats[i] = parsed
	}
	return &Array{Kind: KindFloat64, Valid: valid, Floats: floats}
}

func finalizeTemporal(f *flat, valid []bool, formats []string, fallbackNumeric bool) *Array {
	millis := make([]int64, len(valid))
	copy(millis, f.millis)
	for i, ok := range valid {
		if !ok {
			continue
		}
		switch {
		case f.isTemp[i]:
			millis[i] = f.millis[i]
		case f.isString[i]:
			t, err := parseWithFormats(f.strings[i], formats)
			if err != nil {
				if fallbackNumeric {
					if n, perr := strconv.ParseFloat(f.strings[i], 64); perr == nil {
						millis[i] = SerialToMillis(n)
						continue
					}
				}
				return downgradeToString(f, valid)
			}
			millis[i] = t.UnixMilli()
		default:
			// plain numeric value coerced to temporal: interpret as serial date.
			millis[i] = SerialToMillis(f.floats[i])
		}
	}
	return &Array{Kind: KindMillis, Valid: valid, Millis: millis}
}

func downgradeToString(f *flat, valid []bool) *Array {
	strs := make([]string, len(valid))
	for i, ok := range valid {
		if !ok {
			continue
		}
		switch {
		case f.isString[i]:
			strs[i] = f.strings[i]
		case f.isTemp[i]:
			strs[i] = time.UnixMilli(f.millis[i]).UTC().Format(time.RFC3339)
		default:
			strs[i] = strconv.FormatFloat(f.floats[i], 'g', -1, 64)
		}
	}
	return &Array{Kind: KindString, Valid: valid, Strings: strs}
}

func parseWithFormats(s string, formats []string) (time.Time, error) {
	if len(formats) == 0 {
		formats = DefaultDatetimeFormats
	}
	var lastErr error
	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// DefaultDatetimeFormats mirrors the reference implementation's
// cross-product of date and time layouts tried, in order, when coercing a
// string chunk into a temporal column.
var DefaultDatetimeFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"15:04:05",
}
