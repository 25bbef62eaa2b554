package column

import "math"

const msPerDay = 86_400_000.0

// boundary1900_01_01 is the unix-ms value of Excel serial date 1.0 using the
// 25568-day offset (d in [1,60)): (1-25568)*86_400_000.
const boundary1900_01_01 = -2_208_988_800_000

// boundary1900_03_01 is the unix-ms value of 1900-03-01 00:00, i.e. serial
// 61 under the 25569-day offset (numerically (60-25568)*86_400_000).
// MillisToSerial uses the 25568-day offset below it and the 25569-day offset
// at or above it — the one-day gap between the two offsets is Excel's
// spurious 1900-02-29.
const boundary1900_03_01 = -2_203_891_200_000

// RKToFloat64 decodes a 4-byte RK-compressed number into a float64.
// v's low 2 bits are (centFlag, intFlag) from LSB to bit 1; the remaining 30
// bits hold either a sign-extended 30-bit integer (intFlag set) or the high
// 30 bits of an IEEE-754 double whose low 34 bits are zero (intFlag clear).
// centFlag, when set, means the decoded value is in hundredths.
func RKToFloat64(v uint32) float64 {
	intFlag := v&0x2 != 0
	centFlag := v&0x1 != 0
	body := v >> 2

	var f float64
	if intFlag {
		f = float64(int32(v) >> 2)
		if centFlag {
			f /= 100
		}
	} else {
		bits := uint64(body) << 34
		f = math.Float64frombits(bits)
		if centFlag {
			f /= 100
		}
		f = roundTo(f, 6)
	}
	return f
}

// Float64ToRK encodes f as a 4-byte RK number, choosing the integer
// representation when f round-trips exactly through int32 and the cent
// encoding otherwise never being necessary for exact floats (cent encoding is
// inherently lossy, so the encoder only ever produces centFlag=0). It exists
// to exercise the round-trip testable property RKToFloat64(Float64ToRK(f))==f
// for integral f within the 30-bit signed range.
func Float64ToRK(f float64) (uint32, bool) {
	i := int64(f)
	if float64(i) != f {
		return 0, false
	}
	if i < -(1<<29) || i >= (1<<29) {
		return 0, false
	}
	return (uint32(int32(i)) << 2) | 0x2, true
}

// SerialToMillis converts an Excel serial date (days since 1899-12-31,
// fractional part = time of day) into unix milliseconds, applying the
// spurious 1900 leap-year correction: serial >= 60 (the fictitious
// 1900-02-29 and every date from 1900-03-01 on) subtracts 25569 days, so
// serial 60 lands on the same day as serial 59; dates from 1900-01-01 up to
// 1900-02-28 (1 <= serial < 60) subtract 25568; values below 1 (pure
// time-of-day, no date part) are left unshifted.
func SerialToMillis(d float64) int64 {
	if d >= 1.0 {
		if d >= 60.0 {
			d -= 25569.0
		} else {
			d -= 25568.0
		}
	}
	return int64(math.Round(d * msPerDay))
}

// MillisToSerial is the inverse of SerialToMillis for the "real date" domain
// (ms produced by the d>=1 branch above); the fictitious serial 60 shares
// its ms value with serial 59 and so comes back as 59. Nothing else in the
// column engine calls it.
func MillisToSerial(ms int64) float64 {
	m := float64(ms)
	if m < boundary1900_03_01 {
		return m/msPerDay + 25568.0
	}
	return m/msPerDay + 25569.0
}

// TimeOfDayMillis converts a fractional-day value in [0,1) — a pure
// time-of-day with no date component — to milliseconds since midnight,
// coercing a negative result into [0, 86_400_000) by taking it modulo one
// day.
func TimeOfDayMillis(frac float64) int64 {
	ms := int64(math.Round(frac * msPerDay))
	if ms < 0 {
		ms = ((ms % int64(msPerDay)) + int64(msPerDay)) % int64(msPerDay)
	}
	return ms
}

// F8IsI8 reports whether every value in xs is "really" an integer: rounding
// to prec decimal places agrees with truncation for each value. A column
// passing this check can be stored as int64 instead of float64 without loss.
func F8IsI8(xs []float64, prec int) bool {
	for _, x := range xs {
		if math.Trunc(x) != roundTo(x, prec) {
			return false
		}
	}
	return true
}

func roundTo(x float64, prec int) float64 {
	p := math.Pow(10, float64(prec))
	return math.Round(x*p) / p
}
