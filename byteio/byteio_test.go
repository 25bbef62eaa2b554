package byteio

import "testing"

func TestFixedWidthRoundTrip(t *testing.T) {
	if got := Uint16(PutUint16(nil, 0xBEEF)); got != 0xBEEF {
		t.Fatalf("Uint16 round-trip: got 0x%X", got)
	}
	if got := Uint32(PutUint32(nil, 0xDEADBEEF)); got != 0xDEADBEEF {
		t.Fatalf("Uint32 round-trip: got 0x%X", got)
	}
	if got := Uint64(PutUint64(nil, 0x0102030405060708)); got != 0x0102030405060708 {
		t.Fatalf("Uint64 round-trip: got 0x%X", got)
	}
}

func TestDecodeIDByteLengths(t *testing.T) {
	cases := []struct {
		id      int
		wantLen int
	}{
		{0x00, 1},
		{0x7F, 1},
		{0x80, 2},
		{0x3FFF, 2},
		{0x4000, 3},
	}
	for _, c := range cases {
		buf := EncodeID(nil, c.id)
		if len(buf) != c.wantLen {
			t.Errorf("EncodeID(%#x): got %d bytes, want %d (%x)", c.id, len(buf), c.wantLen, buf)
		}
		got, n, err := DecodeID(buf)
		if err != nil {
			t.Fatalf("DecodeID(%x): %v", buf, err)
		}
		if got != c.id || n != len(buf) {
			t.Errorf("DecodeID(%x) = (%d, %d), want (%d, %d)", buf, got, n, c.id, len(buf))
		}
	}
}

func TestDecodeSizeRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 0x7F, 0x80, 0x3FFF, 0x4000, 0x1FFFFF, 0x200000, 1 << 24} {
		buf := EncodeSize(nil, size)
		got, n, err := DecodeSize(buf)
		if err != nil {
			t.Fatalf("DecodeSize(%d) -> %x: %v", size, buf, err)
		}
		if got != size || n != len(buf) {
			t.Errorf("DecodeSize round-trip for %d: got (%d,%d) from %x", size, got, n, buf)
		}
	}
}

func TestDecodeIDShortBuffer(t *testing.T) {
	if _, _, err := DecodeID([]byte{0x80}); err == nil {
		t.Fatal("expected error decoding truncated continuation byte")
	}
}

func TestDecodeSizeFourthByteContinuation(t *testing.T) {
	buf := []byte{0x80, 0x80, 0x80, 0x80}
	if _, _, err := DecodeSize(buf); err == nil {
		t.Fatal("expected error on 4th byte continuation bit")
	}
}
