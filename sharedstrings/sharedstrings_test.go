package sharedstrings

import (
	"testing"

	"github.com/rxlsgo/rxls/biff12"
	"github.com/rxlsgo/rxls/record"
)

func buildXLSB(t *testing.T, strs []string) []byte {
	t.Helper()
	var recs []record.Record
	for _, s := range strs {
		u16 := encodeUTF16LE(s)
		payload := append([]byte{0x00}, leU32(uint32(len(s)))...)
		payload = append(payload, u16...)
		recs = append(recs, record.Record{ID: biff12.Si, Data: payload})
	}
	recs = append(recs, record.Record{ID: biff12.SstEnd})
	return record.EncodeAll(recs)
}

func leU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func encodeUTF16LE(s string) []byte {
	var out []byte
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func TestNewFromXLSB(t *testing.T) {
	data := buildXLSB(t, []string{"hello", "", "world"})
	tbl, err := NewFromXLSB(data, nil)
	if err != nil {
		t.Fatalf("NewFromXLSB: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
	if tbl.Get(0) != "hello" || tbl.Get(2) != "world" {
		t.Fatalf("unexpected strings: %v", tbl.strings)
	}
	var idx1 [4]byte
	idx1[0] = 1
	if !tbl.IsNullXLSB(idx1) {
		t.Error("expected index 1 to be null (empty string)")
	}
	if !tbl.IsNullXLSX("1") {
		t.Error("expected decimal index \"1\" to be null")
	}
	if tbl.IsNullXLSX("0") {
		t.Error("index 0 should not be null")
	}
}

func TestNewFromXLSX(t *testing.T) {
	data := []byte(`<sst><si><t>foo</t></si><si><r><t>ba</t></r><r><t>r</t></r></si></sst>`)
	tbl, err := NewFromXLSX(data, nil)
	if err != nil {
		t.Fatalf("NewFromXLSX: %v", err)
	}
	if tbl.Get(0) != "foo" || tbl.Get(1) != "bar" {
		t.Fatalf("unexpected strings: %v", tbl.strings)
	}
}
