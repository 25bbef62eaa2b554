package column

import (
	"math"
	"testing"
)

func TestRKToFloat64Integer(t *testing.T) {
	cases := []struct {
		v    uint32
		want float64
	}{
		{0x2, 0},
		{(100 << 2) | 0x2, 100},
	}
	for _, c := range cases {
		if got := RKToFloat64(c.v); got != c.want {
			t.Errorf("RKToFloat64(%#x) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestRKFloat64RoundTrip(t *testing.T) {
	for _, want := range []float64{0, 1, -1, 42, -500000, 536870911, -536870912} {
		rk, ok := Float64ToRK(want)
		if !ok {
			t.Fatalf("Float64ToRK(%v): not representable", want)
		}
		got := RKToFloat64(rk)
		if got != want {
			t.Errorf("round-trip %v -> %#x -> %v", want, rk, got)
		}
	}
}

func TestSerialDate60IsFictitious(t *testing.T) {
	ms59 := SerialToMillis(59.0)
	ms60 := SerialToMillis(60.0)
	ms61 := SerialToMillis(61.0)
	// A real calendar would have exactly one day (86_400_000 ms) between
	// consecutive serial values; the spurious Feb-29 1900 breaks that
	// for the 59->60 step but not for 60->61.
	if ms60-ms59 == 86_400_000 {
		t.Fatalf("expected serial 59->60 step to NOT be a real calendar day")
	}
	if ms61-ms60 != 86_400_000 {
		t.Errorf("expected serial 60->61 step to be exactly one day, got %d", ms61-ms60)
	}
}

func TestSerialMillisRoundTrip(t *testing.T) {
	for _, d := range []float64{1, 2, 59, 61, 100, 25569, 44197, 44197.5} {
		ms := SerialToMillis(d)
		back := MillisToSerial(ms)
		if math.Abs(back-d) > 1e-6 {
			t.Errorf("round-trip serial %v -> ms %d -> %v", d, ms, back)
		}
	}
}

func TestF8IsI8(t *testing.T) {
	if !F8IsI8([]float64{1, 2, 3, -4}, 6) {
		t.Error("expected integral slice to pass f8_is_i8")
	}
	if F8IsI8([]float64{1.5, 2}, 6) {
		t.Error("expected fractional slice to fail f8_is_i8")
	}
}

func TestTimeOfDayMillisNegativeWraps(t *testing.T) {
	got := TimeOfDayMillis(-0.25)
	if got < 0 || got >= 86_400_000 {
		t.Errorf("TimeOfDayMillis(-0.25) = %d, want value in [0, 86400000)", got)
	}
}
